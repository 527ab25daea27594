package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/domain/cart"
	"github.com/kopitoko/backend/internal/domain/catalog"
	"github.com/kopitoko/backend/internal/domain/customer"
	"github.com/kopitoko/backend/internal/domain/order"
	"github.com/kopitoko/backend/internal/domain/shared"
	"github.com/kopitoko/backend/internal/domain/shipping"
)

// ErrInsufficientStock is returned when a conditional stock decrement
// affects no rows, meaning another checkout got there first.
var ErrInsufficientStock = shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for a product in the cart")

// ErrProductUnavailable is returned when a cart references a product
// that no longer exists or is inactive.
var ErrProductUnavailable = shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product in cart is no longer available")

// ErrAddressNotFound is returned when the shipping address does not
// exist, belongs to someone else, or has been archived.
var ErrAddressNotFound = shared.NewDomainError("ADDRESS_NOT_FOUND", "Shipping address not found")

// insufficientStockError names the offending product and how many
// units are actually left.
func insufficientStockError(name string, remaining int64) error {
	return shared.NewDomainError("INSUFFICIENT_STOCK",
		fmt.Sprintf("Not enough stock for %s: %d left", name, remaining))
}

// productUnavailableError names the product that can no longer be ordered
func productUnavailableError(name string) error {
	return shared.NewDomainError("PRODUCT_UNAVAILABLE",
		fmt.Sprintf("Product %s is no longer available", name))
}

// ProductTxRepository exposes the product operations needed inside the
// checkout transaction.
type ProductTxRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	// DecrementStock atomically subtracts quantity from stock, failing
	// with ErrInsufficientStock when stock would go negative.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error
}

// CustomerTxRepository exposes the customer operations needed inside
// the checkout transaction.
type CustomerTxRepository interface {
	// AllocateOrderNo atomically claims the customer's next order
	// number and advances the counter.
	AllocateOrderNo(ctx context.Context, customerID uuid.UUID) (int64, error)
}

// TransactionalRepositories provides access to repositories bound to a
// single database transaction.
type TransactionalRepositories interface {
	Products() ProductTxRepository
	Customers() CustomerTxRepository
	Orders() order.Repository
	Payments() order.PaymentRepository
	Carts() cart.Repository
}

// TransactionScope executes a function within a database transaction.
// The function's error rolls everything back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// Service coordinates the checkout flow: it validates the request,
// then places the order inside a single transaction.
type Service struct {
	cartRepo    cart.Repository
	addressRepo customer.AddressRepository
	scope       TransactionScope
	logger      *zap.Logger
}

// NewService creates a new checkout Service
func NewService(cartRepo cart.Repository, addressRepo customer.AddressRepository, scope TransactionScope, logger *zap.Logger) *Service {
	return &Service{
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		scope:       scope,
		logger:      logger,
	}
}

// Couriers lists the available shipping options
func (s *Service) Couriers() []CourierResponse {
	list := shipping.Couriers()
	out := make([]CourierResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCourierResponse(c))
	}
	return out
}

// QuoteShipping estimates the shipping cost for a courier and item count
func (s *Service) QuoteShipping(req ShippingQuoteRequest) (*ShippingQuoteResponse, error) {
	courier, err := shipping.Lookup(req.CourierCode)
	if err != nil {
		return nil, err
	}
	cost, err := shipping.Cost(req.CourierCode, req.ItemCount)
	if err != nil {
		return nil, err
	}
	return &ShippingQuoteResponse{
		CourierCode: courier.Code,
		CourierName: courier.Name,
		ItemCount:   req.ItemCount,
		Cost:        cost,
	}, nil
}

// orderLine is a product and quantity fed into the placement transaction
type orderLine struct {
	ProductID uuid.UUID
	Quantity  int64
}

// placement carries everything the placement transaction needs.
// ClearCartID is nil for buy-now orders, which never touch the cart.
type placement struct {
	AddressID     uuid.UUID
	CourierCode   string
	PaymentMethod order.PaymentMethod
	Note          string
	Lines         []orderLine
	ClearCartID   *uuid.UUID
}

// validateTarget checks the courier, payment method and shipping
// address shared by both checkout flows.
func (s *Service) validateTarget(ctx context.Context, customerID uuid.UUID, addressID uuid.UUID, courierCode string, method order.PaymentMethod) error {
	if !shipping.IsSupported(courierCode) {
		return shipping.ErrUnknownCourier
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return ErrAddressNotFound
		}
		return err
	}
	if !address.BelongsTo(customerID) || !address.IsUsable() {
		return ErrAddressNotFound
	}
	return nil
}

// PlaceOrder converts the customer's cart into an order.
//
// Validation happens up front: the courier must be known, the address
// must belong to the customer and be usable, and the cart must not be
// empty. The order itself is placed in one transaction: stock is
// decremented conditionally per line, the customer's order number is
// allocated, the order and its pending payment are created, and the
// cart is cleared. Any failure rolls the whole transaction back.
func (s *Service) PlaceOrder(ctx context.Context, customerID uuid.UUID, req PlaceOrderRequest) (*OrderResponse, error) {
	if err := s.validateTarget(ctx, customerID, req.AddressID, req.CourierCode, req.PaymentMethod); err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrCartEmpty
		}
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.ErrCartEmpty
	}

	lines := make([]orderLine, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, orderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return s.place(ctx, customerID, placement{
		AddressID:     req.AddressID,
		CourierCode:   req.CourierCode,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		Lines:         lines,
		ClearCartID:   &c.ID,
	})
}

// BuyNow places an order for a single product without involving the
// customer's cart. The same transaction guarantees apply.
func (s *Service) BuyNow(ctx context.Context, customerID uuid.UUID, req BuyNowRequest) (*OrderResponse, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if err := s.validateTarget(ctx, customerID, req.AddressID, req.CourierCode, req.PaymentMethod); err != nil {
		return nil, err
	}
	return s.place(ctx, customerID, placement{
		AddressID:     req.AddressID,
		CourierCode:   req.CourierCode,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
		Lines:         []orderLine{{ProductID: req.ProductID, Quantity: req.Quantity}},
	})
}

// place runs the order placement transaction over the given lines
func (s *Service) place(ctx context.Context, customerID uuid.UUID, p placement) (*OrderResponse, error) {
	var placed *order.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var totalQty int64
		snapshots := make([]order.ItemSnapshot, 0, len(p.Lines))
		for _, line := range p.Lines {
			product, err := repos.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, shared.ErrNotFound) {
					return productUnavailableError(line.ProductID.String())
				}
				return err
			}
			if !product.IsActive() {
				return productUnavailableError(product.Name)
			}
			if err := repos.Products().DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					return insufficientStockError(product.Name, product.Stock)
				}
				return err
			}
			totalQty += line.Quantity
			snapshots = append(snapshots, order.ItemSnapshot{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.Price,
				Quantity:    line.Quantity,
			})
		}

		orderNo, err := repos.Customers().AllocateOrderNo(ctx, customerID)
		if err != nil {
			return err
		}

		shippingCost, err := shipping.Cost(p.CourierCode, totalQty)
		if err != nil {
			return err
		}

		o, err := order.NewOrder(customerID, orderNo, p.AddressID, p.CourierCode, shippingCost, snapshots)
		if err != nil {
			return err
		}
		o.Note = p.Note
		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}

		payment, err := order.NewPayment(o.ID, p.PaymentMethod, o.Total)
		if err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, payment); err != nil {
			return err
		}
		o.Payment = payment

		if p.ClearCartID != nil {
			if err := repos.Carts().ClearItems(ctx, *p.ClearCartID); err != nil {
				return err
			}
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("customer_id", customerID.String()),
		zap.Int64("order_no", placed.OrderNo),
		zap.String("order_id", placed.ID.String()),
		zap.String("courier", placed.CourierCode),
		zap.String("total", placed.Total.String()))

	resp := ToOrderResponse(placed)
	return &resp, nil
}
