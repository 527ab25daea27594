package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kopitoko/backend/internal/domain/order"
	"github.com/kopitoko/backend/internal/domain/shipping"
)

// PlaceOrderRequest represents a cart checkout request
type PlaceOrderRequest struct {
	AddressID     uuid.UUID           `json:"address_id" binding:"required"`
	CourierCode   string              `json:"courier_code" binding:"required,courier"`
	PaymentMethod order.PaymentMethod `json:"payment_method" binding:"required"`
	Note          string              `json:"note" binding:"max=255"`
}

// BuyNowRequest places an order for a single product, bypassing the cart
type BuyNowRequest struct {
	ProductID     uuid.UUID           `json:"product_id" binding:"required"`
	Quantity      int64               `json:"quantity" binding:"required,min=1"`
	AddressID     uuid.UUID           `json:"address_id" binding:"required"`
	CourierCode   string              `json:"courier_code" binding:"required,courier"`
	PaymentMethod order.PaymentMethod `json:"payment_method" binding:"required"`
	Note          string              `json:"note" binding:"max=255"`
}

// ShippingQuoteRequest asks for a shipping cost estimate
type ShippingQuoteRequest struct {
	CourierCode string `form:"courier_code" binding:"required"`
	ItemCount   int64  `form:"item_count" binding:"required,min=1"`
}

// ShippingQuoteResponse carries a shipping cost estimate
type ShippingQuoteResponse struct {
	CourierCode string          `json:"courier_code"`
	CourierName string          `json:"courier_name"`
	ItemCount   int64           `json:"item_count"`
	Cost        decimal.Decimal `json:"cost"`
}

// CourierResponse represents a shipping option
type CourierResponse struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	BaseRate    decimal.Decimal `json:"base_rate"`
	PerItemRate decimal.Decimal `json:"per_item_rate"`
}

// ToCourierResponse converts a domain courier to a response DTO
func ToCourierResponse(c shipping.Courier) CourierResponse {
	return CourierResponse{
		Code:        c.Code,
		Name:        c.Name,
		BaseRate:    c.BaseRate,
		PerItemRate: c.PerItemRate,
	}
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int64           `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents a placed order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNo       int64               `json:"order_no"`
	Status        string              `json:"status"`
	CourierCode   string              `json:"courier_code"`
	AddressID     uuid.UUID           `json:"address_id"`
	Note          string              `json:"note,omitempty"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	ShippingCost  decimal.Decimal     `json:"shipping_cost"`
	Total         decimal.Decimal     `json:"total"`
	Items         []OrderItemResponse `json:"items"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	PaymentStatus string              `json:"payment_status,omitempty"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		OrderNo:      o.OrderNo,
		Status:       string(o.Status),
		CourierCode:  o.CourierCode,
		AddressID:    o.AddressID,
		Note:         o.Note,
		Subtotal:     o.Subtotal,
		ShippingCost: o.ShippingCost,
		Total:        o.Total,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	if o.Payment != nil {
		resp.PaymentMethod = string(o.Payment.Method)
		resp.PaymentStatus = string(o.Payment.Status)
	}
	return resp
}
