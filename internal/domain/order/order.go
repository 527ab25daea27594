package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kopitoko/backend/internal/domain/shared"
)

// Status represents the fulfilment status of an order
type Status string

const (
	StatusProcessed Status = "PROCESSED"
	StatusShipped   Status = "SHIPPED"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// validTransitions defines the fulfilment state machine.
// COMPLETED and CANCELED are terminal.
var validTransitions = map[Status][]Status{
	StatusProcessed: {StatusShipped, StatusCanceled},
	StatusShipped:   {StatusCompleted, StatusCanceled},
	StatusCompleted: {},
	StatusCanceled:  {},
}

// CanTransitionTo checks if the status can move to the target status
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true when no further transitions are possible
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Order is the aggregate root for a placed order.
// OrderNo is the per-customer sequence number: every customer's orders
// are numbered 1, 2, 3, ... independent of other customers.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_customer_order_no"`
	OrderNo      int64           `gorm:"not null;uniqueIndex:idx_customer_order_no"`
	AddressID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CourierCode  string          `gorm:"not null;size:16"`
	Note         string          `gorm:"size:255"`
	Status       Status          `gorm:"not null;default:'PROCESSED';size:16"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Total        decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment      *Payment        `gorm:"foreignKey:OrderID"`
}

// OrderItem is a line of a placed order. Product name and unit price
// are snapshotted at checkout so later catalog edits don't rewrite
// order history.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"not null;size:255"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Quantity    int64           `gorm:"not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(20,2);not null"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName specifies the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// ItemSnapshot carries the data needed to build an order line at checkout
type ItemSnapshot struct {
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int64
}

// NewOrder builds an order from checkout snapshots. Totals are computed
// here, not taken from the caller.
func NewOrder(customerID uuid.UUID, orderNo int64, addressID uuid.UUID, courierCode string, shippingCost decimal.Decimal, items []ItemSnapshot) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.ErrCartEmpty
	}
	if orderNo <= 0 {
		return nil, shared.NewDomainError("INVALID_ORDER_NO", "Order number must be positive")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		OrderNo:           orderNo,
		AddressID:         addressID,
		CourierCode:       courierCode,
		Status:            StatusProcessed,
		ShippingCost:      shippingCost,
	}

	subtotal := decimal.Zero
	for _, snap := range items {
		if snap.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
		}
		lineTotal := snap.UnitPrice.Mul(decimal.NewFromInt(snap.Quantity))
		o.Items = append(o.Items, OrderItem{
			BaseEntity:  shared.NewBaseEntity(),
			OrderID:     o.ID,
			ProductID:   snap.ProductID,
			ProductName: snap.ProductName,
			UnitPrice:   snap.UnitPrice,
			Quantity:    snap.Quantity,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	o.Subtotal = subtotal
	o.Total = subtotal.Add(shippingCost)
	return o, nil
}

// transition moves the order to a new status if the state machine allows it
func (o *Order) transition(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}
	o.Status = target
	o.IncrementVersion()
	return nil
}

// Ship marks the order as handed to the courier
func (o *Order) Ship() error {
	return o.transition(StatusShipped)
}

// Complete marks the order as delivered
func (o *Order) Complete() error {
	return o.transition(StatusCompleted)
}

// Cancel cancels an order that has not completed.
// Canceling does not restock automatically; restocking is an explicit
// admin action on the product.
func (o *Order) Cancel() error {
	return o.transition(StatusCanceled)
}

// BelongsTo reports whether the order is owned by the given customer
func (o *Order) BelongsTo(customerID uuid.UUID) bool {
	return o.CustomerID == customerID
}
