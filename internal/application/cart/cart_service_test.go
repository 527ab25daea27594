package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/domain/cart"
	"github.com/kopitoko/backend/internal/domain/catalog"
	"github.com/kopitoko/backend/internal/domain/shared"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCartServiceAddItem(t *testing.T) {
	customerID := uuid.New()

	t.Run("creates cart on first add", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(cartRepo, productRepo, zap.NewNop())

		product, _ := catalog.NewProduct("KOPI-GAYO", "Aceh Gayo", "", decimal.NewFromInt(95000), 10)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)
		cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*cart.Cart")).Return(nil)

		resp, err := svc.AddItem(context.Background(), customerID, AddItemRequest{ProductID: product.ID, Quantity: 2})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, int64(2), resp.Items[0].Quantity)
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(190000)))
		cartRepo.AssertExpectations(t)
	})

	t.Run("inactive product rejected", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(cartRepo, productRepo, zap.NewNop())

		product, _ := catalog.NewProduct("KOPI-OLD", "Retired", "", decimal.NewFromInt(1000), 5)
		product.Deactivate()
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		_, err := svc.AddItem(context.Background(), customerID, AddItemRequest{ProductID: product.ID, Quantity: 1})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_UNAVAILABLE", domainErr.Code)
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(cartRepo, productRepo, zap.NewNop())

		id := uuid.New()
		productRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := svc.AddItem(context.Background(), customerID, AddItemRequest{ProductID: id, Quantity: 1})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartServiceUpdateItem(t *testing.T) {
	customerID := uuid.New()
	product, _ := catalog.NewProduct("KOPI-HOUSE", "House Blend", "", decimal.NewFromInt(65000), 20)

	newLoadedCart := func() *cart.Cart {
		c := cart.NewCart(customerID)
		_ = c.AddItem(product.ID, 2)
		return c
	}

	t.Run("quantity updated", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(cartRepo, productRepo, zap.NewNop())

		c := newLoadedCart()
		cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)
		cartRepo.On("Save", mock.Anything, c).Return(nil)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		resp, err := svc.UpdateItem(context.Background(), customerID, product.ID, UpdateItemRequest{Quantity: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.Items[0].Quantity)
	})

	t.Run("zero quantity removes line", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(cartRepo, productRepo, zap.NewNop())

		c := newLoadedCart()
		cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)
		cartRepo.On("Save", mock.Anything, c).Return(nil)

		resp, err := svc.UpdateItem(context.Background(), customerID, product.ID, UpdateItemRequest{Quantity: 0})
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})
}

func TestCartServiceGet(t *testing.T) {
	customerID := uuid.New()

	t.Run("empty cart for new customer", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(cartRepo, productRepo, zap.NewNop())

		cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(nil, shared.ErrNotFound)

		resp, err := svc.Get(context.Background(), customerID)
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.True(t, resp.Subtotal.IsZero())
	})

	t.Run("deactivated product shown as unavailable", func(t *testing.T) {
		cartRepo := new(MockCartRepository)
		productRepo := new(MockProductRepository)
		svc := NewService(cartRepo, productRepo, zap.NewNop())

		product, _ := catalog.NewProduct("KOPI-GONE", "Gone", "", decimal.NewFromInt(50000), 5)
		c := cart.NewCart(customerID)
		require.NoError(t, c.AddItem(product.ID, 1))
		product.Deactivate()

		cartRepo.On("FindByCustomer", mock.Anything, customerID).Return(c, nil)
		productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

		resp, err := svc.Get(context.Background(), customerID)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.False(t, resp.Items[0].Available)
		assert.True(t, resp.Subtotal.IsZero(), "unavailable lines don't count toward subtotal")
	})
}
