package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kopitoko/backend/internal/application/checkout"
	"github.com/kopitoko/backend/internal/domain/cart"
	"github.com/kopitoko/backend/internal/domain/catalog"
	"github.com/kopitoko/backend/internal/domain/order"
	"github.com/kopitoko/backend/internal/domain/shared"
)

// GormCheckoutScope implements checkout.TransactionScope using GORM
// transactions. All repositories handed to the callback share one
// transaction; the callback's error rolls everything back.
type GormCheckoutScope struct {
	db *gorm.DB
}

// NewGormCheckoutScope creates a new GormCheckoutScope
func NewGormCheckoutScope(db *gorm.DB) *GormCheckoutScope {
	return &GormCheckoutScope{db: db}
}

// Execute runs fn within a database transaction
func (s *GormCheckoutScope) Execute(ctx context.Context, fn func(repos checkout.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

// gormCheckoutRepositories provides repositories bound to one transaction
type gormCheckoutRepositories struct {
	tx *gorm.DB
}

func (r *gormCheckoutRepositories) Products() checkout.ProductTxRepository {
	return &gormProductTxRepository{tx: r.tx}
}

func (r *gormCheckoutRepositories) Customers() checkout.CustomerTxRepository {
	return &gormCustomerTxRepository{tx: r.tx}
}

func (r *gormCheckoutRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormCheckoutRepositories) Payments() order.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormCheckoutRepositories) Carts() cart.Repository {
	return NewGormCartRepository(r.tx)
}

// gormProductTxRepository implements checkout.ProductTxRepository
type gormProductTxRepository struct {
	tx *gorm.DB
}

func (r *gormProductTxRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return NewGormProductRepository(r.tx).FindByID(ctx, id)
}

// DecrementStock subtracts quantity from the product's stock in a
// single conditional UPDATE. Zero affected rows means the guard
// `stock >= quantity` failed, so the product would oversell.
func (r *gormProductTxRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error {
	result := r.tx.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return checkout.ErrInsufficientStock
	}
	return nil
}

// gormCustomerTxRepository implements checkout.CustomerTxRepository
type gormCustomerTxRepository struct {
	tx *gorm.DB
}

// AllocateOrderNo claims the customer's next order number by advancing
// the counter in one atomic UPDATE. The pre-increment value is the
// number assigned to this order.
func (r *gormCustomerTxRepository) AllocateOrderNo(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var next int64
	err := r.tx.WithContext(ctx).Raw(
		"UPDATE customers SET next_order_no = next_order_no + 1 WHERE id = ? RETURNING next_order_no",
		customerID,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	if next == 0 {
		return 0, shared.ErrNotFound
	}
	return next - 1, nil
}

var _ checkout.TransactionScope = (*GormCheckoutScope)(nil)
var _ checkout.TransactionalRepositories = (*gormCheckoutRepositories)(nil)
