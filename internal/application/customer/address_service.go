package customer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kopitoko/backend/internal/domain/customer"
	"github.com/kopitoko/backend/internal/domain/shared"
)

// AddressService manages a customer's shipping addresses
type AddressService struct {
	addressRepo customer.AddressRepository
	logger      *zap.Logger
}

// NewAddressService creates a new AddressService
func NewAddressService(addressRepo customer.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// Create adds a new shipping address for the customer
func (s *AddressService) Create(ctx context.Context, customerID uuid.UUID, req CreateAddressRequest) (*AddressResponse, error) {
	address, err := customer.NewAddress(customerID, req.Label, req.Recipient, req.Phone,
		req.Street, req.City, req.Province, req.PostalCode)
	if err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}
	s.logger.Info("address created",
		zap.String("customer_id", customerID.String()),
		zap.String("address_id", address.ID.String()))

	resp := ToAddressResponse(address)
	return &resp, nil
}

// List returns the customer's non-archived addresses
func (s *AddressService) List(ctx context.Context, customerID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addressRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		if a.IsArchived {
			continue
		}
		out = append(out, ToAddressResponse(a))
	}
	return out, nil
}

// Update replaces an address's details
func (s *AddressService) Update(ctx context.Context, customerID, addressID uuid.UUID, req UpdateAddressRequest) (*AddressResponse, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if !address.BelongsTo(customerID) {
		return nil, shared.ErrNotFound
	}
	if err := address.Update(req.Label, req.Recipient, req.Phone,
		req.Street, req.City, req.Province, req.PostalCode); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, address); err != nil {
		return nil, err
	}

	resp := ToAddressResponse(address)
	return &resp, nil
}

// Delete removes an address. Addresses referenced by orders are
// archived instead, keeping order history intact.
func (s *AddressService) Delete(ctx context.Context, customerID, addressID uuid.UUID) error {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return err
	}
	if !address.BelongsTo(customerID) {
		return shared.ErrNotFound
	}

	referenced, err := s.addressRepo.HasOrders(ctx, addressID)
	if err != nil {
		return err
	}
	if referenced {
		address.Archive()
		return s.addressRepo.Save(ctx, address)
	}
	return s.addressRepo.Delete(ctx, addressID)
}
