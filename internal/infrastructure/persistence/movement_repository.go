package persistence

import (
	"context"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMovementRepository reads inventory movements
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// FindAll lists movements newest first with the total count
func (r *GormMovementRepository) FindAll(ctx context.Context, filter inventory.MovementFilter) ([]*inventory.Movement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.MovementModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.MovementModel
	if err := orderAndPage(query, filter.Filter, movementSortFields, "created_at", "DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toMovements(rows), total, nil
}

// FindRecent returns the latest movements
func (r *GormMovementRepository) FindRecent(ctx context.Context, limit int) ([]*inventory.Movement, error) {
	if limit <= 0 {
		return []*inventory.Movement{}, nil
	}
	var rows []models.MovementModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toMovements(rows), nil
}

func toMovements(rows []models.MovementModel) []*inventory.Movement {
	result := make([]*inventory.Movement, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result
}

var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
