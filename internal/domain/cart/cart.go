package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kopitoko/backend/internal/domain/shared"
)

// Cart is the aggregate root for a customer's shopping cart.
// Each customer has at most one cart; it is created lazily on first use.
type Cart struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is a line in the cart referencing a product
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int64     `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// TableName specifies the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for a customer
func NewCart(customerID uuid.UUID) *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Items:             []CartItem{},
	}
}

// IsEmpty returns true if the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity returns the total number of units across all lines
func (c *Cart) TotalQuantity() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// AddItem adds a product to the cart. Adding a product already in the
// cart merges into the existing line by increasing its quantity.
func (c *Cart) AddItem(productID uuid.UUID, quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.IncrementVersion()
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	c.IncrementVersion()
	return nil
}

// UpdateQuantity sets the quantity of an existing line.
// Setting quantity to zero removes the line.
func (c *Cart) UpdateQuantity(productID uuid.UUID, quantity int64) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if quantity == 0 {
		return c.RemoveItem(productID)
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_IN_CART", "Product is not in the cart")
}

// RemoveItem removes a product line from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_IN_CART", "Product is not in the cart")
}

// Clear empties the cart, done after a successful checkout
func (c *Cart) Clear() {
	c.Items = []CartItem{}
	c.IncrementVersion()
}

// Subtotal computes the merchandise total given a price lookup.
// Prices come from the catalog at computation time, not from the cart.
func (c *Cart) Subtotal(priceOf func(productID uuid.UUID) (decimal.Decimal, bool)) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range c.Items {
		price, ok := priceOf(item.ProductID)
		if !ok {
			return decimal.Zero, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product in cart is no longer available")
		}
		total = total.Add(price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total, nil
}
