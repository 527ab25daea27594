package catalog

import (
	"strings"

	"github.com/kopitoko/backend/internal/domain/shared"
)

// Category groups products on the storefront, e.g. "Single Origin" or "Blends"
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"uniqueIndex;not null;size:128"`
	Description string `gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	c.Name = name
	return nil
}
