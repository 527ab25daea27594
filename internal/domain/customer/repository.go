package customer

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for customers
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
}

// AddressRepository defines persistence operations for addresses
type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Address, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Address, error)
	Save(ctx context.Context, address *Address) error
	// HasOrders reports whether any order references the address
	HasOrders(ctx context.Context, addressID uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
