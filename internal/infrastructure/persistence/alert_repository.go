package persistence

import (
	"context"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAlertRepository implements AlertRepository using GORM
type GormAlertRepository struct {
	db *gorm.DB
}

// NewGormAlertRepository creates a new GormAlertRepository
func NewGormAlertRepository(db *gorm.DB) *GormAlertRepository {
	return &GormAlertRepository{db: db}
}

// FindByID finds an alert by its ID
func (r *GormAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryAlert, error) {
	var row models.AlertModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Alert")
	}
	return row.ToDomain(), nil
}

// FindAll lists alerts newest first
func (r *GormAlertRepository) FindAll(ctx context.Context, filter inventory.AlertFilter) ([]*inventory.InventoryAlert, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Resolved != nil {
		query = query.Where("is_resolved = ?", *filter.Resolved)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	var rows []models.AlertModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*inventory.InventoryAlert, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// FindOpen returns the unresolved alert of a type for a product
func (r *GormAlertRepository) FindOpen(ctx context.Context, productID uuid.UUID, alertType inventory.AlertType) (*inventory.InventoryAlert, error) {
	var row models.AlertModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND type = ? AND is_resolved = ?", productID, alertType, false).
		Order("created_at DESC").
		First(&row).Error; err != nil {
		return nil, translateError(err, "Alert")
	}
	return row.ToDomain(), nil
}

// Save creates or updates an alert
func (r *GormAlertRepository) Save(ctx context.Context, alert *inventory.InventoryAlert) error {
	return translateError(r.db.WithContext(ctx).Save(models.AlertModelFromDomain(alert)).Error, "Alert")
}

var _ inventory.AlertRepository = (*GormAlertRepository)(nil)
