package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/domain/cart"
	"github.com/kopitoko/backend/internal/domain/catalog"
	"github.com/kopitoko/backend/internal/domain/shared"
	"github.com/kopitoko/backend/internal/domain/shared/valueobject"
)

// Service handles shopping cart operations
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// getOrCreate loads the customer's cart, creating it on first use
func (s *Service) getOrCreate(ctx context.Context, customerID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return cart.NewCart(customerID), nil
		}
		return nil, err
	}
	return c, nil
}

// AddItem adds a product to the customer's cart. The product must exist
// and be active; stock is only enforced at checkout.
func (s *Service) AddItem(ctx context.Context, customerID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError("PRODUCT_UNAVAILABLE", "Product is not available")
	}

	c, err := s.getOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	s.logger.Debug("cart item added",
		zap.String("customer_id", customerID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int64("quantity", req.Quantity))
	return s.toResponse(ctx, c)
}

// UpdateItem changes the quantity of a cart line; zero removes it
func (s *Service) UpdateItem(ctx context.Context, customerID, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// RemoveItem removes a product line from the cart
func (s *Service) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// Get returns the customer's cart priced against the current catalog
func (s *Service) Get(ctx context.Context, customerID uuid.UUID) (*CartResponse, error) {
	c, err := s.getOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// Clear empties the customer's cart
func (s *Service) Clear(ctx context.Context, customerID uuid.UUID) error {
	c, err := s.cartRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.ClearItems(ctx, c.ID)
}

// toResponse prices the cart lines against the current catalog. Lines
// whose product has been removed or deactivated are shown as
// unavailable rather than silently dropped.
func (s *Service) toResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	resp := &CartResponse{
		Items: make([]CartItemResponse, 0, len(c.Items)),
	}
	subtotal := valueobject.ZeroIDR()
	for _, item := range c.Items {
		line := CartItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err == nil && product.IsActive() {
			lineTotal := product.UnitPrice().MultiplyByInt(item.Quantity)
			line.ProductName = product.Name
			line.UnitPrice = product.Price
			line.LineTotal = lineTotal.Amount()
			line.Available = product.Stock >= item.Quantity
			subtotal = subtotal.MustAdd(lineTotal)
		}
		resp.Items = append(resp.Items, line)
	}
	resp.Subtotal = subtotal.Amount()
	resp.SubtotalDisplay = subtotal.String()
	return resp, nil
}
