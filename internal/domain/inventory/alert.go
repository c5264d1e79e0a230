package inventory

import (
	"fmt"
	"time"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
)

// AlertType is the reason an inventory alert was raised
type AlertType string

const (
	AlertTypeLowStock  AlertType = "LOW_STOCK"
	AlertTypeOverStock AlertType = "OVER_STOCK"
	AlertTypeExpiring  AlertType = "EXPIRING"
)

// IsValid checks if the type is a known AlertType
func (t AlertType) IsValid() bool {
	switch t {
	case AlertTypeLowStock, AlertTypeOverStock, AlertTypeExpiring:
		return true
	}
	return false
}

// InventoryAlert flags a product whose stock needs attention
type InventoryAlert struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	Type       AlertType
	Message    string
	IsResolved bool
	ResolvedAt *time.Time
}

// NewInventoryAlert creates an open alert
func NewInventoryAlert(productID uuid.UUID, alertType AlertType, message string) (*InventoryAlert, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("productId", "Product is required")
	}
	if !alertType.IsValid() {
		return nil, shared.NewValidationError("type", "Unknown alert type")
	}
	return &InventoryAlert{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		Type:       alertType,
		Message:    message,
	}, nil
}

// Resolve closes the alert
func (a *InventoryAlert) Resolve(at time.Time) error {
	if a.IsResolved {
		return shared.NewDomainError(shared.CodeInvalidState, "Alert is already resolved")
	}
	a.IsResolved = true
	a.ResolvedAt = &at
	a.Touch()
	return nil
}

// AlertFor returns the alert a product's current stock calls for, if any
func AlertFor(p *Product) (*InventoryAlert, bool) {
	var (
		alertType AlertType
		message   string
	)
	switch p.StockStatus() {
	case StockStatusLow:
		alertType = AlertTypeLowStock
		message = fmt.Sprintf("%s (%s) is low on stock: %d units, minimum %d", p.Name, p.SKU, p.CurrentStock, p.MinStock)
	case StockStatusOver:
		alertType = AlertTypeOverStock
		message = fmt.Sprintf("%s (%s) is over stock: %d units, maximum %d", p.Name, p.SKU, p.CurrentStock, *p.MaxStock)
	default:
		return nil, false
	}
	alert, err := NewInventoryAlert(p.ID, alertType, message)
	if err != nil {
		return nil, false
	}
	return alert, true
}
