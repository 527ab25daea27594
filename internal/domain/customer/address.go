package customer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kopitoko/backend/internal/domain/shared"
)

// Address is a shipping destination owned by a customer.
// Addresses referenced by past orders are archived instead of deleted
// so the order history stays intact.
type Address struct {
	shared.BaseEntity
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label      string    `gorm:"not null;size:64"`
	Recipient  string    `gorm:"not null;size:255"`
	Phone      string    `gorm:"not null;size:32"`
	Street     string    `gorm:"not null;size:255"`
	City       string    `gorm:"not null;size:128"`
	Province   string    `gorm:"not null;size:128"`
	PostalCode string    `gorm:"not null;size:16"`
	IsArchived bool      `gorm:"not null;default:false"`
}

// TableName specifies the table name for GORM
func (Address) TableName() string {
	return "addresses"
}

func validateAddressFields(label, recipient, phone, street, city, province, postalCode string) error {
	for field, value := range map[string]string{
		"label":       label,
		"recipient":   recipient,
		"phone":       phone,
		"street":      street,
		"city":        city,
		"province":    province,
		"postal code": postalCode,
	} {
		if strings.TrimSpace(value) == "" {
			return shared.NewDomainError("INVALID_ADDRESS", "Address "+field+" cannot be empty")
		}
	}
	return nil
}

// NewAddress creates a new shipping address for a customer
func NewAddress(customerID uuid.UUID, label, recipient, phone, street, city, province, postalCode string) (*Address, error) {
	if err := validateAddressFields(label, recipient, phone, street, city, province, postalCode); err != nil {
		return nil, err
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		Label:      strings.TrimSpace(label),
		Recipient:  strings.TrimSpace(recipient),
		Phone:      strings.TrimSpace(phone),
		Street:     strings.TrimSpace(street),
		City:       strings.TrimSpace(city),
		Province:   strings.TrimSpace(province),
		PostalCode: strings.TrimSpace(postalCode),
	}, nil
}

// Update replaces the address details. Archived addresses are frozen.
func (a *Address) Update(label, recipient, phone, street, city, province, postalCode string) error {
	if a.IsArchived {
		return shared.NewDomainError("INVALID_STATE", "Archived addresses cannot be changed")
	}
	if err := validateAddressFields(label, recipient, phone, street, city, province, postalCode); err != nil {
		return err
	}
	a.Label = strings.TrimSpace(label)
	a.Recipient = strings.TrimSpace(recipient)
	a.Phone = strings.TrimSpace(phone)
	a.Street = strings.TrimSpace(street)
	a.City = strings.TrimSpace(city)
	a.Province = strings.TrimSpace(province)
	a.PostalCode = strings.TrimSpace(postalCode)
	return nil
}

// BelongsTo reports whether the address is owned by the given customer
func (a *Address) BelongsTo(customerID uuid.UUID) bool {
	return a.CustomerID == customerID
}

// IsUsable reports whether the address can be used for new orders
func (a *Address) IsUsable() bool {
	return !a.IsArchived
}

// Archive hides the address from new orders while keeping it for history
func (a *Address) Archive() {
	a.IsArchived = true
}
