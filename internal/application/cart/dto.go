package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a request to change a line quantity
type UpdateItemRequest struct {
	Quantity int64 `json:"quantity" binding:"min=0"`
}

// CartItemResponse represents a cart line with current catalog data
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Available   bool            `json:"available"`
}

// CartResponse represents the customer's cart
type CartResponse struct {
	Items           []CartItemResponse `json:"items"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	SubtotalDisplay string             `json:"subtotal_display"`
}
