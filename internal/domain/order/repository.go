package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/kopitoko/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*Order, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Order, int64, error)
	Save(ctx context.Context, order *Order) error
}

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	Save(ctx context.Context, payment *Payment) error
}
