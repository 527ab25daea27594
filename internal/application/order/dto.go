package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainorder "github.com/kopitoko/backend/internal/domain/order"
)

// OrderListFilter represents filter options for order listing
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=PROCESSED SHIPPED COMPLETED CANCELED"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ConfirmPaymentRequest carries the reference for a confirmed payment
type ConfirmPaymentRequest struct {
	Reference string `json:"reference" binding:"max=128"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	OrderID   uuid.UUID       `json:"order_id"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *domainorder.Payment) PaymentResponse {
	return PaymentResponse{
		OrderID:   p.OrderID,
		Method:    string(p.Method),
		Status:    string(p.Status),
		Amount:    p.Amount,
		Reference: p.Reference,
	}
}
