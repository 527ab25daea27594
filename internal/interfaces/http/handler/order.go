package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/kopitoko/backend/internal/application/order"
)

// OrderHandler handles order and payment API endpoints. Customer routes
// are scoped to the caller's own orders; admin routes see everything.
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) bindListFilter(c *gin.Context) (orderapp.OrderListFilter, bool) {
	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return filter, false
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}
	return filter, true
}

// ListMine returns the authenticated customer's orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	orders, total, err := h.orderService.ListForCustomer(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetMine returns one of the authenticated customer's orders
func (h *OrderHandler) GetMine(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetForCustomer(c.Request.Context(), id, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// CancelMine cancels one of the authenticated customer's orders
func (h *OrderHandler) CancelMine(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.CancelForCustomer(c.Request.Context(), id, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ListAll returns all orders for admins
func (h *OrderHandler) ListAll(c *gin.Context) {
	filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	orders, total, err := h.orderService.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

func (h *OrderHandler) applyTransition(c *gin.Context, apply func(*gin.Context, uuid.UUID)) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}
	apply(c, orderID)
}

// Ship marks an order as shipped
func (h *OrderHandler) Ship(c *gin.Context) {
	h.applyTransition(c, func(c *gin.Context, orderID uuid.UUID) {
		order, err := h.orderService.Ship(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, order)
	})
}

// Complete marks an order as delivered
func (h *OrderHandler) Complete(c *gin.Context) {
	h.applyTransition(c, func(c *gin.Context, orderID uuid.UUID) {
		order, err := h.orderService.Complete(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, order)
	})
}

// Cancel cancels an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.applyTransition(c, func(c *gin.Context, orderID uuid.UUID) {
		order, err := h.orderService.Cancel(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, order)
	})
}

// GetPayment returns an order's payment
func (h *OrderHandler) GetPayment(c *gin.Context) {
	h.applyTransition(c, func(c *gin.Context, orderID uuid.UUID) {
		payment, err := h.orderService.GetPayment(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payment)
	})
}

// ConfirmPayment marks an order's payment as successful
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req orderapp.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.orderService.ConfirmPayment(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// RejectPayment marks an order's payment as failed
func (h *OrderHandler) RejectPayment(c *gin.Context) {
	h.applyTransition(c, func(c *gin.Context, orderID uuid.UUID) {
		payment, err := h.orderService.RejectPayment(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payment)
	})
}

// ResetPayment returns a failed payment to pending for retry
func (h *OrderHandler) ResetPayment(c *gin.Context) {
	h.applyTransition(c, func(c *gin.Context, orderID uuid.UUID) {
		payment, err := h.orderService.ResetPayment(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, payment)
	})
}
