package customer

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kopitoko/backend/internal/domain/shared"
)

// Role distinguishes storefront customers from back-office admins
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Status represents account status
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusDisabled Status = "DISABLED"
)

// Customer is the aggregate root for a storefront account.
// NextOrderNo is the per-customer order sequence counter; it holds the
// number the customer's next order will receive.
type Customer struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Name         string `gorm:"not null;size:255"`
	PasswordHash string `gorm:"not null;size:255"`
	Role         Role   `gorm:"not null;default:'CUSTOMER';size:16"`
	Status       Status `gorm:"not null;default:'ACTIVE';size:16"`
	NextOrderNo  int64  `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer registers a new customer account with a bcrypt-hashed password
func NewCustomer(email, name, password string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              strings.TrimSpace(name),
		PasswordHash:      string(hash),
		Role:              RoleCustomer,
		Status:            StatusActive,
		NextOrderNo:       1,
	}, nil
}

// NewAdmin registers an admin account
func NewAdmin(email, name, password string) (*Customer, error) {
	c, err := NewCustomer(email, name, password)
	if err != nil {
		return nil, err
	}
	c.Role = RoleAdmin
	return c, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (c *Customer) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (c *Customer) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hash)
	c.IncrementVersion()
	return nil
}

// IsAdmin returns true for back-office accounts
func (c *Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// IsActive returns true if the account can log in
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Disable locks the account out
func (c *Customer) Disable() {
	c.Status = StatusDisabled
	c.IncrementVersion()
}

// Enable reactivates the account
func (c *Customer) Enable() {
	c.Status = StatusActive
	c.IncrementVersion()
}

// UpdateProfile updates the display name
func (c *Customer) UpdateProfile(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	c.Name = strings.TrimSpace(name)
	c.IncrementVersion()
	return nil
}
