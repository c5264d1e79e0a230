package inventory

import (
	"fmt"
	"strings"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a stocked item. CurrentStock only changes through movements.
type Product struct {
	shared.BaseAggregateRoot
	SKU          string
	Name         string
	Description  string
	Price        decimal.Decimal
	Cost         decimal.Decimal
	CategoryID   uuid.UUID
	SupplierID   *uuid.UUID
	MinStock     int
	MaxStock     *int
	CurrentStock int
	IsActive     bool
}

// ProductDetails holds the editable fields of a product
type ProductDetails struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	CategoryID  uuid.UUID
	SupplierID  *uuid.UUID
	MinStock    int
	MaxStock    *int
}

// NewProduct creates an active product with no stock
func NewProduct(details ProductDetails) (*Product, error) {
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		IsActive:          true,
	}
	if err := p.Update(details); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the product's details after validating them all
func (p *Product) Update(d ProductDetails) error {
	d.SKU = strings.TrimSpace(d.SKU)
	d.Name = strings.TrimSpace(d.Name)
	d.Price = valueobject.RoundMoney(d.Price)
	d.Cost = valueobject.RoundMoney(d.Cost)

	var v shared.ValidationErrors
	v.Check(d.SKU != "", "sku", "SKU is required")
	v.Check(len(d.SKU) <= 50, "sku", "SKU cannot exceed 50 characters")
	v.Check(d.Name != "", "name", "Name is required")
	v.Check(len(d.Name) <= 200, "name", "Name cannot exceed 200 characters")
	v.Check(d.Price.IsPositive(), "price", "Price must be greater than 0")
	v.Check(d.Cost.IsPositive(), "cost", "Cost must be greater than 0")
	v.Check(d.CategoryID != uuid.Nil, "categoryId", "Category is required")
	v.Check(d.MinStock >= 0, "minStock", "Minimum stock cannot be negative")
	if d.MaxStock != nil {
		v.Check(*d.MaxStock >= 0, "maxStock", "Maximum stock cannot be negative")
		v.Check(*d.MaxStock >= d.MinStock, "maxStock", "Maximum stock must be greater than or equal to minimum stock")
	}
	if err := v.Err(); err != nil {
		return err
	}

	p.SKU = d.SKU
	p.Name = d.Name
	p.Description = strings.TrimSpace(d.Description)
	p.Price = d.Price
	p.Cost = d.Cost
	p.CategoryID = d.CategoryID
	p.SupplierID = d.SupplierID
	p.MinStock = d.MinStock
	p.MaxStock = d.MaxStock
	p.Touch()
	return nil
}

// SetActive toggles whether the product is sold and counted
func (p *Product) SetActive(active bool) {
	p.IsActive = active
	p.Touch()
}

// StockStatus classifies the product's current stock
func (p *Product) StockStatus() StockStatus {
	return ClassifyStock(p.IsActive, p.CurrentStock, p.MinStock, p.MaxStock)
}

// StockValue is the stock valued at cost
func (p *Product) StockValue() decimal.Decimal {
	return valueobject.RoundMoney(p.Cost.Mul(decimal.NewFromInt(int64(p.CurrentStock))))
}

// ApplyMovement updates CurrentStock from m and records the before and
// after levels on the movement
func (p *Product) ApplyMovement(m *Movement) error {
	if m.ProductID != p.ID {
		return shared.NewValidationError("productId", "Movement belongs to another product")
	}
	if !p.IsActive {
		return shared.NewDomainError(shared.CodeInvalidState, "Cannot move stock of an inactive product")
	}

	before := p.CurrentStock
	var after int
	switch m.Type {
	case MovementTypeIn:
		after = before + m.Quantity
	case MovementTypeOut:
		after = before - m.Quantity
		if after < 0 {
			return shared.NewDomainError(shared.CodeInsufficientStock,
				fmt.Sprintf("Insufficient stock for %s: available %d, requested %d", p.SKU, before, m.Quantity))
		}
	case MovementTypeAdjustment:
		after = m.Quantity
	default:
		return shared.NewValidationError("type", "Type must be IN, OUT or ADJUSTMENT")
	}

	p.CurrentStock = after
	m.StockBefore = before
	m.StockAfter = after
	p.Touch()
	p.AddDomainEvent(NewMovementRecordedEvent(p, m))
	return nil
}
