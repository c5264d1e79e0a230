package persistence

import (
	"context"
	"strings"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID with its role
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var row models.UserModel
	if err := r.db.WithContext(ctx).Preload("Role").First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "User")
	}
	return row.ToDomain(), nil
}

// FindByEmail finds a user by email with its role
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var row models.UserModel
	if err := r.db.WithContext(ctx).
		Preload("Role").
		First(&row, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error; err != nil {
		return nil, translateError(err, "User")
	}
	return row.ToDomain(), nil
}

// FindAll lists users with the total count
func (r *GormUserRepository) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{})
	if filter.RoleID != nil {
		query = query.Where("role_id = ?", *filter.RoleID)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.UserModel
	if err := orderAndPage(query.Preload("Role"), filter.Filter, userSortFields, "name", "ASC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	result := make([]*identity.User, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, total, nil
}

// ExistsByEmail checks email uniqueness
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByRole counts the users holding a role
func (r *GormUserRepository) CountByRole(ctx context.Context, roleID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.UserModel{}).Where("role_id = ?", roleID).Count(&count).Error
	return count, err
}

// Save creates or updates a user. The role itself is never written.
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return translateError(
		r.db.WithContext(ctx).Omit(clause.Associations).Save(models.UserModelFromDomain(user)).Error,
		"User")
}

// Delete removes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("User")
	}
	return nil
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
