package persistence

import (
	"context"
	"strings"

	"github.com/erp/erpcore/internal/domain/inventory"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Product, error) {
	var row models.ProductModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Product")
	}
	return row.ToDomain(), nil
}

// FindAll lists products with the total count
func (r *GormProductRepository) FindAll(ctx context.Context, filter inventory.ProductFilter) ([]*inventory.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ProductModel
	if err := orderAndPage(query, filter.Filter, productSortFields, "name", "ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toProducts(rows), total, nil
}

// FindActive returns every active product ordered by name
func (r *GormProductRepository) FindActive(ctx context.Context) ([]*inventory.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// CountLowStock counts active products at or below their minimum stock
func (r *GormProductRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("is_active = ? AND current_stock <= min_stock", true).
		Count(&count).Error
	return count, err
}

// ExistsBySKU checks SKU uniqueness
func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ProductModel{}).
		Where("sku = ?", strings.TrimSpace(sku))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *inventory.Product) error {
	return translateError(r.db.WithContext(ctx).Save(models.ProductModelFromDomain(product)).Error, "Product")
}

// SaveWithMovement stores the movement and the new stock level together.
// The stock update only applies when the stored level still equals the
// movement's StockBefore, so two movements computed from the same
// snapshot cannot both land.
func (r *GormProductRepository) SaveWithMovement(ctx context.Context, product *inventory.Product, movement *inventory.Movement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProductModel{}).
			Where("id = ? AND current_stock = ?", product.ID, movement.StockBefore).
			Updates(map[string]any{
				"current_stock": product.CurrentStock,
				"updated_at":    product.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.ProductModel{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return shared.NewNotFoundError("Product")
			}
			return shared.NewDomainError(shared.CodeInvalidState, "Product stock was changed concurrently, retry the movement")
		}
		return translateError(tx.Create(models.MovementModelFromDomain(movement)).Error, "Movement")
	})
}

func toProducts(rows []models.ProductModel) []*inventory.Product {
	result := make([]*inventory.Product, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result
}

var _ inventory.ProductRepository = (*GormProductRepository)(nil)
