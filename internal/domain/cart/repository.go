package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for carts
type Repository interface {
	// FindByCustomer returns the customer's cart, or shared.ErrNotFound
	// if none exists yet.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	// ClearItems deletes all item rows for the cart
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}
