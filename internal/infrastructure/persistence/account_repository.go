package persistence

import (
	"context"
	"strings"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByType returns every account of the type ordered by code
func (r *GormAccountRepository) FindByType(ctx context.Context, accountType accounting.AccountType) ([]*accounting.Account, error) {
	var rows []models.AccountModel
	if err := r.db.WithContext(ctx).
		Where("type = ?", accountType).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAccounts(rows), nil
}

// FindByID finds an account by its ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Account, error) {
	var row models.AccountModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Account")
	}
	return row.ToDomain(), nil
}

// IsActive reports whether id names an active account
func (r *GormAccountRepository) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AccountModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DefaultFor selects the posting account for the type
func (r *GormAccountRepository) DefaultFor(ctx context.Context, accountType accounting.AccountType) (*accounting.Account, error) {
	candidates, err := r.FindByType(ctx, accountType)
	if err != nil {
		return nil, err
	}
	return accounting.SelectDefault(candidates, accountType)
}

// FindByCode finds an account by its unique code
func (r *GormAccountRepository) FindByCode(ctx context.Context, code string) (*accounting.Account, error) {
	var row models.AccountModel
	if err := r.db.WithContext(ctx).First(&row, "code = ?", strings.TrimSpace(code)).Error; err != nil {
		return nil, translateError(err, "Account")
	}
	return row.ToDomain(), nil
}

// FindAll lists accounts. The chart of accounts is small so it is never paged.
func (r *GormAccountRepository) FindAll(ctx context.Context, filter accounting.AccountFilter) ([]*accounting.Account, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{})
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}
	unpaged := filter.Filter
	unpaged.PageSize = 0
	query = orderAndPage(query, unpaged, accountSortFields, "code", "ASC")

	var rows []models.AccountModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toAccounts(rows), nil
}

// ExistsByCode checks code uniqueness
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where("code = ?", strings.TrimSpace(code))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	return translateError(
		r.db.WithContext(ctx).Omit(clause.Associations).Save(models.AccountModelFromDomain(account)).Error,
		"Account")
}

// SetDefault clears the flag on the other accounts of the type and saves
// account, inserting it when new
func (r *GormAccountRepository) SetDefault(ctx context.Context, account *accounting.Account) error {
	if !account.IsDefault {
		return shared.NewDomainError(shared.CodeInvalidState, "Account must be marked as default before saving it as default")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AccountModel{}).
			Where("type = ? AND id <> ? AND is_default = ?", account.Type, account.ID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return translateError(tx.Omit(clause.Associations).Save(models.AccountModelFromDomain(account)).Error, "Account")
	})
}

func toAccounts(rows []models.AccountModel) []*accounting.Account {
	result := make([]*accounting.Account, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result
}

var _ accounting.AccountRepository = (*GormAccountRepository)(nil)
