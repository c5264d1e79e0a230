package inventory

import (
	"strings"

	"github.com/erp/erpcore/internal/domain/shared"
)

// Category groups products
type Category struct {
	shared.BaseEntity
	Name        string
	Description string
	IsActive    bool
}

// NewCategory creates an active category
func NewCategory(name, description string) (*Category, error) {
	c := &Category{
		BaseEntity: shared.NewBaseEntity(),
		IsActive:   true,
	}
	if err := c.Update(name, description); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes name and description
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "Name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Name cannot exceed 100 characters")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.Touch()
	return nil
}

// SetActive toggles the category's availability
func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.Touch()
}
