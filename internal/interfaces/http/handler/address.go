package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	customerapp "github.com/kopitoko/backend/internal/application/customer"
)

// AddressHandler handles shipping address API endpoints
type AddressHandler struct {
	BaseHandler
	addressService *customerapp.AddressService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(addressService *customerapp.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// List returns the customer's active addresses
func (h *AddressHandler) List(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, addresses)
}

// Create adds a new shipping address
func (h *AddressHandler) Create(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req customerapp.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, address)
}

// Update replaces a shipping address's details
func (h *AddressHandler) Update(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	var req customerapp.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	address, err := h.addressService.Update(c.Request.Context(), id, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, address)
}

// Delete removes a shipping address. Addresses referenced by orders are
// archived instead so order history stays intact.
func (h *AddressHandler) Delete(c *gin.Context) {
	id, ok := customerID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	addressID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID format")
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), id, addressID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
