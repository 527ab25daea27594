package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/domain/cart"
	"github.com/kopitoko/backend/internal/domain/catalog"
	"github.com/kopitoko/backend/internal/domain/customer"
	"github.com/kopitoko/backend/internal/domain/order"
	"github.com/kopitoko/backend/internal/domain/shared"
	"github.com/kopitoko/backend/internal/domain/shipping"
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

// MockAddressRepository is a mock implementation of customer.AddressRepository
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Address), args.Error(1)
}

func (m *MockAddressRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*customer.Address, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]*customer.Address), args.Error(1)
}

func (m *MockAddressRepository) Save(ctx context.Context, address *customer.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) HasOrders(ctx context.Context, addressID uuid.UUID) (bool, error) {
	args := m.Called(ctx, addressID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductTxRepository mocks ProductTxRepository
type MockProductTxRepository struct {
	mock.Mock
}

func (m *MockProductTxRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductTxRepository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

// MockCustomerTxRepository mocks CustomerTxRepository
type MockCustomerTxRepository struct {
	mock.Mock
}

func (m *MockCustomerTxRepository) AllocateOrderNo(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository mocks order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockPaymentRepository mocks order.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*order.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, payment *order.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// stubScope runs the transactional function against mock repositories,
// reporting whether the transaction committed or rolled back.
type stubScope struct {
	products   *MockProductTxRepository
	customers  *MockCustomerTxRepository
	orders     *MockOrderRepository
	payments   *MockPaymentRepository
	carts      *MockCartRepository
	rolledBack bool
}

func (s *stubScope) Products() ProductTxRepository   { return s.products }
func (s *stubScope) Customers() CustomerTxRepository { return s.customers }
func (s *stubScope) Orders() order.Repository        { return s.orders }
func (s *stubScope) Payments() order.PaymentRepository {
	return s.payments
}
func (s *stubScope) Carts() cart.Repository { return s.carts }

func (s *stubScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	if err := fn(s); err != nil {
		s.rolledBack = true
		return err
	}
	return nil
}

type checkoutFixture struct {
	customerID uuid.UUID
	address    *customer.Address
	cart       *cart.Cart
	product    *catalog.Product
	cartRepo   *MockCartRepository
	addrRepo   *MockAddressRepository
	scope      *stubScope
	svc        *Service
}

func newFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	customerID := uuid.New()

	address, err := customer.NewAddress(customerID, "Rumah", "Budi", "0812", "Jl. Merdeka 1", "Bandung", "Jawa Barat", "40111")
	require.NoError(t, err)

	product, err := catalog.NewProduct("KOPI-GAYO-250", "Aceh Gayo 250g", "", decimal.NewFromInt(95000), 10)
	require.NoError(t, err)

	c := cart.NewCart(customerID)
	require.NoError(t, c.AddItem(product.ID, 3))

	f := &checkoutFixture{
		customerID: customerID,
		address:    address,
		cart:       c,
		product:    product,
		cartRepo:   new(MockCartRepository),
		addrRepo:   new(MockAddressRepository),
		scope: &stubScope{
			products:  new(MockProductTxRepository),
			customers: new(MockCustomerTxRepository),
			orders:    new(MockOrderRepository),
			payments:  new(MockPaymentRepository),
			carts:     new(MockCartRepository),
		},
	}
	f.svc = NewService(f.cartRepo, f.addrRepo, f.scope, zap.NewNop())
	return f
}

func validRequest(f *checkoutFixture) PlaceOrderRequest {
	return PlaceOrderRequest{
		AddressID:     f.address.ID,
		CourierCode:   "JNE",
		PaymentMethod: order.PaymentMethodBankTransfer,
	}
}

func TestPlaceOrder(t *testing.T) {
	t.Run("successful checkout", func(t *testing.T) {
		f := newFixture(t)

		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cart, nil)
		f.scope.products.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)
		f.scope.products.On("DecrementStock", mock.Anything, f.product.ID, int64(3)).Return(nil)
		f.scope.customers.On("AllocateOrderNo", mock.Anything, f.customerID).Return(int64(1), nil)
		f.scope.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		f.scope.payments.On("Save", mock.Anything, mock.AnythingOfType("*order.Payment")).Return(nil)
		f.scope.carts.On("ClearItems", mock.Anything, f.cart.ID).Return(nil)

		resp, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.OrderNo)
		assert.Equal(t, "PROCESSED", resp.Status)
		// 3 x 95000 merchandise, JNE 12000 + 2 x 3000 shipping
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(285000)))
		assert.True(t, resp.ShippingCost.Equal(decimal.NewFromInt(18000)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(303000)))
		assert.Equal(t, "PENDING", resp.PaymentStatus)
		f.scope.carts.AssertCalled(t, "ClearItems", mock.Anything, f.cart.ID)
	})

	t.Run("unknown courier rejected before any work", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest(f)
		req.CourierCode = "GOSEND"
		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, req)
		assert.ErrorIs(t, err, shipping.ErrUnknownCourier)
		f.addrRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("address of another customer rejected", func(t *testing.T) {
		f := newFixture(t)

		other, err := customer.NewAddress(uuid.New(), "Rumah", "Siti", "0813", "Jl. Lain 2", "Jakarta", "DKI Jakarta", "10210")
		require.NoError(t, err)
		f.addrRepo.On("FindByID", mock.Anything, other.ID).Return(other, nil)

		req := validRequest(f)
		req.AddressID = other.ID
		_, err = f.svc.PlaceOrder(context.Background(), f.customerID, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ADDRESS_NOT_FOUND", domainErr.Code)
	})

	t.Run("archived address rejected", func(t *testing.T) {
		f := newFixture(t)

		f.address.Archive()
		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)

		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ADDRESS_NOT_FOUND", domainErr.Code)
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		f := newFixture(t)

		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(cart.NewCart(f.customerID), nil)

		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		assert.ErrorIs(t, err, shared.ErrCartEmpty)
	})

	t.Run("missing cart treated as empty", func(t *testing.T) {
		f := newFixture(t)

		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		assert.ErrorIs(t, err, shared.ErrCartEmpty)
	})

	t.Run("insufficient stock rolls back", func(t *testing.T) {
		f := newFixture(t)

		f.product.Stock = 2
		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cart, nil)
		f.scope.products.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)
		f.scope.products.On("DecrementStock", mock.Anything, f.product.ID, int64(3)).Return(ErrInsufficientStock)

		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Contains(t, err.Error(), f.product.Name, "error names the offending product")
		assert.Contains(t, err.Error(), "2 left", "error reports the remaining stock")
		assert.True(t, f.scope.rolledBack)
		f.scope.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.scope.carts.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
	})

	t.Run("deactivated product fails checkout", func(t *testing.T) {
		f := newFixture(t)

		f.product.Deactivate()
		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cart, nil)
		f.scope.products.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)

		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		assert.ErrorIs(t, err, ErrProductUnavailable)
		assert.Contains(t, err.Error(), f.product.Name, "error names the offending product")
		f.scope.products.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("product lookup failure propagates unchanged", func(t *testing.T) {
		f := newFixture(t)

		dbErr := errors.New("connection reset by peer")
		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cart, nil)
		f.scope.products.On("FindByID", mock.Anything, f.product.ID).Return(nil, dbErr)

		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrProductUnavailable)
		assert.True(t, f.scope.rolledBack)
	})

	t.Run("missing product reported as unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.cartRepo.On("FindByCustomer", mock.Anything, f.customerID).Return(f.cart, nil)
		f.scope.products.On("FindByID", mock.Anything, f.product.ID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		assert.ErrorIs(t, err, ErrProductUnavailable)
		assert.Contains(t, err.Error(), f.product.ID.String())
	})

	t.Run("address lookup failure propagates unchanged", func(t *testing.T) {
		f := newFixture(t)

		dbErr := errors.New("dial tcp: i/o timeout")
		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(nil, dbErr)

		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, validRequest(f))
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrAddressNotFound)
	})

	t.Run("invalid payment method rejected", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest(f)
		req.PaymentMethod = "BARTER"
		_, err := f.svc.PlaceOrder(context.Background(), f.customerID, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PAYMENT_METHOD", domainErr.Code)
	})
}

func TestBuyNow(t *testing.T) {
	validBuyNow := func(f *checkoutFixture) BuyNowRequest {
		return BuyNowRequest{
			ProductID:     f.product.ID,
			Quantity:      2,
			AddressID:     f.address.ID,
			CourierCode:   "SICEPAT",
			PaymentMethod: order.PaymentMethodCOD,
			Note:          "titip di satpam",
		}
	}

	t.Run("places order without touching the cart", func(t *testing.T) {
		f := newFixture(t)

		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.scope.products.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)
		f.scope.products.On("DecrementStock", mock.Anything, f.product.ID, int64(2)).Return(nil)
		f.scope.customers.On("AllocateOrderNo", mock.Anything, f.customerID).Return(int64(4), nil)
		f.scope.orders.On("Save", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
		f.scope.payments.On("Save", mock.Anything, mock.AnythingOfType("*order.Payment")).Return(nil)

		resp, err := f.svc.BuyNow(context.Background(), f.customerID, validBuyNow(f))
		require.NoError(t, err)

		assert.Equal(t, int64(4), resp.OrderNo)
		assert.Equal(t, "titip di satpam", resp.Note)
		// 2 x 95000 merchandise, SICEPAT 11000 + 1 x 2000 shipping
		assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(190000)))
		assert.True(t, resp.ShippingCost.Equal(decimal.NewFromInt(13000)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(203000)))
		f.cartRepo.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything)
		f.scope.carts.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		f := newFixture(t)

		req := validBuyNow(f)
		req.Quantity = 0
		_, err := f.svc.BuyNow(context.Background(), f.customerID, req)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
	})

	t.Run("insufficient stock rolls back", func(t *testing.T) {
		f := newFixture(t)

		f.addrRepo.On("FindByID", mock.Anything, f.address.ID).Return(f.address, nil)
		f.scope.products.On("FindByID", mock.Anything, f.product.ID).Return(f.product, nil)
		f.scope.products.On("DecrementStock", mock.Anything, f.product.ID, int64(2)).Return(ErrInsufficientStock)

		_, err := f.svc.BuyNow(context.Background(), f.customerID, validBuyNow(f))
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.True(t, f.scope.rolledBack)
		f.scope.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestQuoteShipping(t *testing.T) {
	svc := NewService(nil, nil, nil, zap.NewNop())

	t.Run("JNE single item", func(t *testing.T) {
		resp, err := svc.QuoteShipping(ShippingQuoteRequest{CourierCode: "JNE", ItemCount: 1})
		require.NoError(t, err)
		assert.True(t, resp.Cost.Equal(decimal.NewFromInt(12000)))
	})

	t.Run("JNE three items", func(t *testing.T) {
		resp, err := svc.QuoteShipping(ShippingQuoteRequest{CourierCode: "JNE", ItemCount: 3})
		require.NoError(t, err)
		assert.True(t, resp.Cost.Equal(decimal.NewFromInt(18000)))
	})

	t.Run("unknown courier", func(t *testing.T) {
		_, err := svc.QuoteShipping(ShippingQuoteRequest{CourierCode: "XX", ItemCount: 1})
		assert.ErrorIs(t, err, shipping.ErrUnknownCourier)
	})
}

func TestCouriersListing(t *testing.T) {
	svc := NewService(nil, nil, nil, zap.NewNop())
	list := svc.Couriers()
	require.Len(t, list, 4)
	assert.Equal(t, "JNE", list[0].Code)
}
