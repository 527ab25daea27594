package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/application/checkout"
	domainorder "github.com/kopitoko/backend/internal/domain/order"
	"github.com/kopitoko/backend/internal/domain/shared"
)

// Service handles order lifecycle operations after checkout
type Service struct {
	orderRepo   domainorder.Repository
	paymentRepo domainorder.PaymentRepository
	logger      *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo domainorder.Repository, paymentRepo domainorder.PaymentRepository, logger *zap.Logger) *Service {
	return &Service{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// GetForCustomer retrieves an order scoped to its owner
func (s *Service) GetForCustomer(ctx context.Context, customerID, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(customerID) {
		return nil, shared.ErrNotFound
	}
	resp := checkout.ToOrderResponse(o)
	return &resp, nil
}

// ListForCustomer retrieves the customer's order history
func (s *Service) ListForCustomer(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) ([]checkout.OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.FindByCustomer(ctx, customerID, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// ListAll retrieves all orders, for admins
func (s *Service) ListAll(ctx context.Context, filter OrderListFilter) ([]checkout.OrderResponse, int64, error) {
	orders, total, err := s.orderRepo.FindAll(ctx, toSharedFilter(filter))
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// Ship marks an order as shipped
func (s *Service) Ship(ctx context.Context, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*domainorder.Order).Ship, "shipped")
}

// Complete marks an order as delivered
func (s *Service) Complete(ctx context.Context, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*domainorder.Order).Complete, "completed")
}

// Cancel cancels an order
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	return s.applyTransition(ctx, orderID, (*domainorder.Order).Cancel, "canceled")
}

// CancelForCustomer cancels an order on behalf of its owner.
// Customers may only cancel before shipment; once the courier has the
// package, cancellation is an admin decision.
func (s *Service) CancelForCustomer(ctx context.Context, customerID, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(customerID) {
		return nil, shared.ErrNotFound
	}
	if o.Status != domainorder.StatusProcessed {
		return nil, shared.NewDomainError("INVALID_STATE", "Only unshipped orders can be canceled")
	}
	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("order canceled by customer",
		zap.String("order_id", orderID.String()),
		zap.String("customer_id", customerID.String()))
	resp := checkout.ToOrderResponse(o)
	return &resp, nil
}

func (s *Service) applyTransition(ctx context.Context, orderID uuid.UUID, transition func(*domainorder.Order) error, action string) (*checkout.OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := transition(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.logger.Info("order "+action, zap.String("order_id", orderID.String()))
	resp := checkout.ToOrderResponse(o)
	return &resp, nil
}

// GetPayment retrieves the payment for an order
func (s *Service) GetPayment(ctx context.Context, orderID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// ConfirmPayment marks a pending payment as successful
func (s *Service) ConfirmPayment(ctx context.Context, orderID uuid.UUID, req ConfirmPaymentRequest) (*PaymentResponse, error) {
	return s.applyPayment(ctx, orderID, func(p *domainorder.Payment) error {
		return p.Confirm(req.Reference)
	}, "confirmed")
}

// RejectPayment marks a pending payment as failed
func (s *Service) RejectPayment(ctx context.Context, orderID uuid.UUID) (*PaymentResponse, error) {
	return s.applyPayment(ctx, orderID, (*domainorder.Payment).Reject, "rejected")
}

// ResetPayment returns a failed payment to pending for another attempt
func (s *Service) ResetPayment(ctx context.Context, orderID uuid.UUID) (*PaymentResponse, error) {
	return s.applyPayment(ctx, orderID, (*domainorder.Payment).Reset, "reset")
}

func (s *Service) applyPayment(ctx context.Context, orderID uuid.UUID, op func(*domainorder.Payment) error, action string) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := op(payment); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}
	s.logger.Info("payment "+action, zap.String("order_id", orderID.String()))
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

func toSharedFilter(f OrderListFilter) shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	if f.PageSize > 0 {
		filter.PageSize = f.PageSize
	}
	if f.Status != "" {
		filter.Filters["status"] = f.Status
	}
	return filter
}

func toOrderResponses(orders []*domainorder.Order) []checkout.OrderResponse {
	out := make([]checkout.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, checkout.ToOrderResponse(o))
	}
	return out
}
