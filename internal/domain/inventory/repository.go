package inventory

import (
	"context"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductFilter defines filtering options for product queries
type ProductFilter struct {
	shared.Filter
	CategoryID      *uuid.UUID
	SupplierID      *uuid.UUID
	IncludeInactive bool
}

// MovementFilter defines filtering options for movement queries
type MovementFilter struct {
	shared.Filter
	ProductID *uuid.UUID
	Type      *MovementType
}

// AlertFilter defines filtering options for alert queries
type AlertFilter struct {
	Resolved  *bool
	ProductID *uuid.UUID
	Type      *AlertType
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, includeInactive bool) ([]*Category, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, category *Category) error
}

// SupplierRepository persists suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, includeInactive bool) ([]*Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
}

// ProductRepository persists products
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll lists products with the total count
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)

	// FindActive returns every active product ordered by name
	FindActive(ctx context.Context) ([]*Product, error)

	// CountLowStock counts active products at or below their minimum stock
	CountLowStock(ctx context.Context) (int64, error)

	// ExistsBySKU checks SKU uniqueness, ignoring excludeID when set
	ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithMovement stores the movement and the product's new stock
	// level in one transaction
	SaveWithMovement(ctx context.Context, product *Product, movement *Movement) error
}

// MovementRepository reads recorded movements
type MovementRepository interface {
	FindAll(ctx context.Context, filter MovementFilter) ([]*Movement, int64, error)
	FindRecent(ctx context.Context, limit int) ([]*Movement, error)
}

// AlertRepository persists inventory alerts
type AlertRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryAlert, error)
	FindAll(ctx context.Context, filter AlertFilter) ([]*InventoryAlert, error)
	// FindOpen returns the unresolved alert of a type for a product, or NOT_FOUND
	FindOpen(ctx context.Context, productID uuid.UUID, alertType AlertType) (*InventoryAlert, error)
	Save(ctx context.Context, alert *InventoryAlert) error
}
