package customer

import (
	"github.com/google/uuid"

	"github.com/kopitoko/backend/internal/domain/customer"
)

// CreateAddressRequest represents a request to add a shipping address
type CreateAddressRequest struct {
	Label      string `json:"label" binding:"required,min=1,max=64"`
	Recipient  string `json:"recipient" binding:"required,min=1,max=255"`
	Phone      string `json:"phone" binding:"required,min=6,max=32"`
	Street     string `json:"street" binding:"required,min=1,max=255"`
	City       string `json:"city" binding:"required,min=1,max=128"`
	Province   string `json:"province" binding:"required,min=1,max=128"`
	PostalCode string `json:"postal_code" binding:"required,min=3,max=16"`
}

// UpdateAddressRequest carries replacement details for an address
type UpdateAddressRequest = CreateAddressRequest

// AddressResponse represents an address in API responses
type AddressResponse struct {
	ID         uuid.UUID `json:"id"`
	Label      string    `json:"label"`
	Recipient  string    `json:"recipient"`
	Phone      string    `json:"phone"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	Province   string    `json:"province"`
	PostalCode string    `json:"postal_code"`
	IsArchived bool      `json:"is_archived"`
}

// ToAddressResponse converts a domain address to a response DTO
func ToAddressResponse(a *customer.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Label:      a.Label,
		Recipient:  a.Recipient,
		Phone:      a.Phone,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		IsArchived: a.IsArchived,
	}
}
