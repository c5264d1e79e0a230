package models

import (
	"time"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for product categories
type CategoryModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *inventory.Category {
	return &inventory.Category{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		IsActive:    m.IsActive,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *inventory.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name, Description: c.Description, IsActive: c.IsActive}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// SupplierModel is the persistence model for suppliers
type SupplierModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(200);not null"`
	Email    string `gorm:"type:varchar(200)"`
	Phone    string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:text"`
	TaxID    string `gorm:"type:varchar(50)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *inventory.Supplier {
	return &inventory.Supplier{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
		TaxID:      m.TaxID,
		IsActive:   m.IsActive,
	}
}

// SupplierModelFromDomain creates a persistence model from a domain Supplier
func SupplierModelFromDomain(s *inventory.Supplier) *SupplierModel {
	m := &SupplierModel{
		Name:     s.Name,
		Email:    s.Email,
		Phone:    s.Phone,
		Address:  s.Address,
		TaxID:    s.TaxID,
		IsActive: s.IsActive,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	BaseModel
	SKU          string          `gorm:"column:sku;type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Description  string          `gorm:"type:text"`
	Price        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Cost         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID   *uuid.UUID      `gorm:"type:uuid;index"`
	MinStock     int             `gorm:"not null;default:0"`
	MaxStock     *int
	CurrentStock int  `gorm:"not null;default:0"`
	IsActive     bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *inventory.Product {
	return &inventory.Product{
		BaseAggregateRoot: m.aggregate(),
		SKU:               m.SKU,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Cost:              m.Cost,
		CategoryID:        m.CategoryID,
		SupplierID:        m.SupplierID,
		MinStock:          m.MinStock,
		MaxStock:          m.MaxStock,
		CurrentStock:      m.CurrentStock,
		IsActive:          m.IsActive,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *inventory.Product) *ProductModel {
	m := &ProductModel{
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
		IsActive:     p.IsActive,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// MovementModel is the persistence model for inventory movements
type MovementModel struct {
	BaseModel
	Type        inventory.MovementType `gorm:"type:varchar(20);not null"`
	Quantity    int                    `gorm:"not null"`
	Reason      string                 `gorm:"type:varchar(500)"`
	Reference   string                 `gorm:"type:varchar(100)"`
	ProductID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	CreatedBy   *uuid.UUID             `gorm:"type:uuid"`
	StockBefore int                    `gorm:"not null"`
	StockAfter  int                    `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MovementModel) TableName() string {
	return "inventory_movements"
}

// ToDomain converts the persistence model to a domain Movement
func (m *MovementModel) ToDomain() *inventory.Movement {
	return &inventory.Movement{
		BaseEntity:  m.BaseModel.ToDomain(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Reference:   m.Reference,
		ProductID:   m.ProductID,
		CreatedBy:   m.CreatedBy,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
	}
}

// MovementModelFromDomain creates a persistence model from a domain Movement
func MovementModelFromDomain(mv *inventory.Movement) *MovementModel {
	m := &MovementModel{
		Type:        mv.Type,
		Quantity:    mv.Quantity,
		Reason:      mv.Reason,
		Reference:   mv.Reference,
		ProductID:   mv.ProductID,
		CreatedBy:   mv.CreatedBy,
		StockBefore: mv.StockBefore,
		StockAfter:  mv.StockAfter,
	}
	m.FromDomainBaseEntity(mv.BaseEntity)
	return m
}

// AlertModel is the persistence model for inventory alerts
type AlertModel struct {
	BaseModel
	ProductID  uuid.UUID           `gorm:"type:uuid;not null;index"`
	Type       inventory.AlertType `gorm:"type:varchar(20);not null"`
	Message    string              `gorm:"type:varchar(255);not null"`
	IsResolved bool                `gorm:"not null;default:false;index"`
	ResolvedAt *time.Time
}

// TableName returns the table name for GORM
func (AlertModel) TableName() string {
	return "inventory_alerts"
}

// ToDomain converts the persistence model to a domain InventoryAlert
func (m *AlertModel) ToDomain() *inventory.InventoryAlert {
	return &inventory.InventoryAlert{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		Type:       m.Type,
		Message:    m.Message,
		IsResolved: m.IsResolved,
		ResolvedAt: m.ResolvedAt,
	}
}

// AlertModelFromDomain creates a persistence model from a domain InventoryAlert
func AlertModelFromDomain(a *inventory.InventoryAlert) *AlertModel {
	m := &AlertModel{
		ProductID:  a.ProductID,
		Type:       a.Type,
		Message:    a.Message,
		IsResolved: a.IsResolved,
		ResolvedAt: utcPtr(a.ResolvedAt),
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
