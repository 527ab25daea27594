package handler

import (
	"github.com/gin-gonic/gin"

	checkoutapp "github.com/kopitoko/backend/internal/application/checkout"
)

// CheckoutHandler handles shipping options and order placement
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Couriers lists the supported couriers and their rates
func (h *CheckoutHandler) Couriers(c *gin.Context) {
	h.Success(c, h.checkoutService.Couriers())
}

// QuoteShipping estimates shipping cost for a courier and item count
func (h *CheckoutHandler) QuoteShipping(c *gin.Context) {
	var req checkoutapp.ShippingQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.checkoutService.QuoteShipping(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quote)
}

// PlaceOrder converts the customer's cart into an order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.checkoutService.PlaceOrder(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// BuyNow places an order for a single product, bypassing the cart
func (h *CheckoutHandler) BuyNow(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req checkoutapp.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.checkoutService.BuyNow(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}
