package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kopitoko/backend/internal/domain/shared"
	"github.com/kopitoko/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Product is a catalog aggregate root representing a sellable item
type Product struct {
	shared.BaseAggregateRoot
	Code        string          `gorm:"uniqueIndex;not null;size:64"`
	Name        string          `gorm:"not null;size:255"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Stock       int64           `gorm:"not null;default:0"`
	Status      ProductStatus   `gorm:"not null;default:'ACTIVE';size:16"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Category    *Category       `gorm:"foreignKey:CategoryID"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(code, name, description string, price decimal.Decimal, stock int64) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              strings.TrimSpace(name),
		Description:       description,
		Price:             price,
		Stock:             stock,
		Status:            ProductStatusActive,
	}, nil
}

// UnitPrice returns the product price as Money in the default currency
func (p *Product) UnitPrice() valueobject.Money {
	return valueobject.NewMoneyIDR(p.Price)
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// Available reports whether the product can be sold in the given quantity
func (p *Product) Available(quantity int64) bool {
	return p.IsActive() && p.Stock >= quantity
}

// Activate marks the product as active
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.IncrementVersion()
}

// Deactivate marks the product as inactive, hiding it from the storefront
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.IncrementVersion()
}

// UpdateDetails updates the product's descriptive fields
func (p *Product) UpdateDetails(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.IncrementVersion()
	return nil
}

// ChangePrice sets a new unit price
func (p *Product) ChangePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price
	p.IncrementVersion()
	return nil
}

// AdjustStock sets the absolute stock level, used by admin restocking
func (p *Product) AdjustStock(stock int64) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}
	p.Stock = stock
	p.IncrementVersion()
	return nil
}

// AssignCategory places the product into a category
func (p *Product) AssignCategory(categoryID uuid.UUID) {
	p.CategoryID = &categoryID
	p.IncrementVersion()
}

// RemoveCategory detaches the product from its category
func (p *Product) RemoveCategory() {
	p.CategoryID = nil
	p.IncrementVersion()
}
