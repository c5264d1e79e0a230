package persistence

import (
	"context"
	"strings"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByID finds a role by ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var row models.RoleModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Role")
	}
	return row.ToDomain(), nil
}

// FindByName finds a role by name ignoring case
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var row models.RoleModel
	if err := r.db.WithContext(ctx).
		First(&row, "LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).Error; err != nil {
		return nil, translateError(err, "Role")
	}
	return row.ToDomain(), nil
}

// FindAll lists roles ordered by name
func (r *GormRoleRepository) FindAll(ctx context.Context) ([]*identity.Role, error) {
	var rows []models.RoleModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]*identity.Role, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates a role
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	return translateError(r.db.WithContext(ctx).Save(models.RoleModelFromDomain(role)).Error, "Role")
}

// Delete removes a role
func (r *GormRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RoleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Role")
	}
	return nil
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)
