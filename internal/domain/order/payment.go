package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kopitoko/backend/internal/domain/shared"
)

// PaymentMethod is how the customer pays for the order
type PaymentMethod string

const (
	PaymentMethodCOD          PaymentMethod = "COD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodEWallet      PaymentMethod = "EWALLET"
)

// IsValid checks whether the method is one of the supported methods
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodBankTransfer, PaymentMethodEWallet:
		return true
	}
	return false
}

// PaymentStatus is the confirmation status of a payment
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment records the single payment attached to an order.
// It starts PENDING; an admin confirms or rejects it, and a FAILED
// payment can be reset so the customer may try again.
type Payment struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Method    PaymentMethod   `gorm:"not null;size:16"`
	Status    PaymentStatus   `gorm:"not null;default:'PENDING';size:16"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Reference string          `gorm:"size:128"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a pending payment for an order
func NewPayment(orderID uuid.UUID, method PaymentMethod, amount decimal.Decimal) (*Payment, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}
	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Method:     method,
		Status:     PaymentStatusPending,
		Amount:     amount,
	}, nil
}

// Confirm marks a pending payment as successful
func (p *Payment) Confirm(reference string) error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can be confirmed")
	}
	p.Status = PaymentStatusSuccess
	p.Reference = reference
	return nil
}

// Reject marks a pending payment as failed
func (p *Payment) Reject() error {
	if p.Status != PaymentStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending payments can be rejected")
	}
	p.Status = PaymentStatusFailed
	return nil
}

// Reset returns a failed payment to pending for another attempt
func (p *Payment) Reset() error {
	if p.Status != PaymentStatusFailed {
		return shared.NewDomainError("INVALID_STATE", "Only failed payments can be reset")
	}
	p.Status = PaymentStatusPending
	p.Reference = ""
	return nil
}
