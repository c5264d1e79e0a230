package inventory

import (
	"time"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Category DTOs
// =============================================================================

// CategoryRequest represents a request to create or update a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=1000"`
	IsActive    *bool  `json:"isActive"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToCategoryResponse converts a domain Category to a response
func ToCategoryResponse(c *inventory.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// =============================================================================
// Supplier DTOs
// =============================================================================

// SupplierRequest represents a request to create or update a supplier
type SupplierRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"omitempty,email,max=200"`
	Phone    string `json:"phone" binding:"max=50"`
	Address  string `json:"address" binding:"max=500"`
	TaxID    string `json:"taxId" binding:"max=50"`
	IsActive *bool  `json:"isActive"`
}

func (r SupplierRequest) details() inventory.SupplierDetails {
	return inventory.SupplierDetails{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		TaxID:   r.TaxID,
	}
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxID     string    `json:"taxId,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToSupplierResponse converts a domain Supplier to a response
func ToSupplierResponse(s *inventory.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		TaxID:     s.TaxID,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// =============================================================================
// Product DTOs
// =============================================================================

// ProductRequest represents a request to create or update a product.
// Stock is never set directly; it only changes through movements.
type ProductRequest struct {
	SKU         string          `json:"sku" binding:"required,min=1,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	CategoryID  uuid.UUID       `json:"categoryId" binding:"required"`
	SupplierID  *uuid.UUID      `json:"supplierId"`
	MinStock    int             `json:"minStock" binding:"min=0"`
	MaxStock    *int            `json:"maxStock" binding:"omitempty,min=0"`
	IsActive    *bool           `json:"isActive"`
}

func (r ProductRequest) details() inventory.ProductDetails {
	return inventory.ProductDetails{
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Cost:        r.Cost,
		CategoryID:  r.CategoryID,
		SupplierID:  r.SupplierID,
		MinStock:    r.MinStock,
		MaxStock:    r.MaxStock,
	}
}

// ProductListFilter represents the query of GET /inventory/products
type ProductListFilter struct {
	Page            int        `form:"page" binding:"omitempty,min=1"`
	Limit           int        `form:"limit" binding:"omitempty,min=1,max=100"`
	Search          string     `form:"search" binding:"max=100"`
	CategoryID      *uuid.UUID `form:"categoryId"`
	SupplierID      *uuid.UUID `form:"supplierId"`
	IncludeInactive bool       `form:"includeInactive"`
}

// NamedRef is the short form of a category or supplier embedded in products
type NamedRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	CategoryID   uuid.UUID       `json:"categoryId"`
	SupplierID   *uuid.UUID      `json:"supplierId,omitempty"`
	Category     *NamedRef       `json:"category,omitempty"`
	Supplier     *NamedRef       `json:"supplier,omitempty"`
	MinStock     int             `json:"minStock"`
	MaxStock     *int            `json:"maxStock,omitempty"`
	CurrentStock int             `json:"currentStock"`
	Status       string          `json:"status"`
	StockValue   decimal.Decimal `json:"stockValue"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain Product to a response. The status is
// always computed from the current stock.
func ToProductResponse(p *inventory.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Cost:         p.Cost,
		CategoryID:   p.CategoryID,
		SupplierID:   p.SupplierID,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		CurrentStock: p.CurrentStock,
		Status:       p.StockStatus().String(),
		StockValue:   p.StockValue(),
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// =============================================================================
// Movement DTOs
// =============================================================================

// RecordMovementRequest represents a stock movement. For ADJUSTMENT the
// quantity is the counted stock.
type RecordMovementRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Type      string    `json:"type" binding:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	Reason    string    `json:"reason" binding:"required,min=1,max=500"`
	Reference string    `json:"reference" binding:"max=100"`
}

// MovementListFilter represents the query of GET /inventory/movements
type MovementListFilter struct {
	Page      int        `form:"page" binding:"omitempty,min=1"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=100"`
	ProductID *uuid.UUID `form:"productId"`
	Type      string     `form:"type" binding:"omitempty,oneof=IN OUT ADJUSTMENT"`
}

// MovementResponse represents a movement in API responses
type MovementResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"productId"`
	Type        string     `json:"type"`
	Quantity    int        `json:"quantity"`
	Reason      string     `json:"reason"`
	Reference   string     `json:"reference,omitempty"`
	StockBefore int        `json:"stockBefore"`
	StockAfter  int        `json:"stockAfter"`
	CreatedBy   *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToMovementResponse converts a domain Movement to a response
func ToMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type.String(),
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Reference:   m.Reference,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// MovementResult is returned after recording a movement
type MovementResult struct {
	Movement MovementResponse `json:"movement"`
	Product  ProductResponse  `json:"product"`
}

// =============================================================================
// Alert DTOs
// =============================================================================

// AlertListFilter represents the query of GET /inventory/alerts
type AlertListFilter struct {
	Resolved *bool `form:"resolved"`
}

// AlertResponse represents an inventory alert in API responses
type AlertResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProductID  uuid.UUID  `json:"productId"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	IsResolved bool       `json:"isResolved"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ToAlertResponse converts a domain InventoryAlert to a response
func ToAlertResponse(a *inventory.InventoryAlert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		ProductID:  a.ProductID,
		Type:       string(a.Type),
		Message:    a.Message,
		IsResolved: a.IsResolved,
		ResolvedAt: a.ResolvedAt,
		CreatedAt:  a.CreatedAt,
	}
}

// =============================================================================
// Dashboard and report DTOs
// =============================================================================

// CategorySummary counts the active products of a category and their value
type CategorySummary struct {
	CategoryID   uuid.UUID       `json:"categoryId"`
	Name         string          `json:"name"`
	ProductCount int             `json:"productCount"`
	StockValue   decimal.Decimal `json:"stockValue"`
}

// InventoryDashboardResponse is the inventory overview
type InventoryDashboardResponse struct {
	TotalProducts       int                `json:"totalProducts"`
	LowStockItems       int                `json:"lowStockItems"`
	TotalInventoryValue decimal.Decimal    `json:"totalInventoryValue"`
	RecentMovements     []MovementResponse `json:"recentMovements"`
	ActiveAlerts        []AlertResponse    `json:"activeAlerts"`
	CategorySummary     []CategorySummary  `json:"categorySummary"`
}

// StockLevelsReport lists active products with their stock status
type StockLevelsReport struct {
	Products   []ProductResponse `json:"products"`
	TotalValue decimal.Decimal   `json:"totalValue"`
	ByStatus   map[string]int    `json:"byStatus"`
}

// pageOf builds a paging filter; ordering is left to the repository defaults
func pageOf(page, limit int) shared.Filter {
	f := shared.Filter{Page: page, PageSize: limit}
	f.Normalize()
	f.OrderDir = ""
	return f
}
