package persistence

import (
	"context"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransactionRepository is the PostgreSQL-backed ledger.
// Entries are validated against the accounts table of the same database.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Append validates and stores a single entry
func (r *GormTransactionRepository) Append(ctx context.Context, tx *accounting.Transaction) (uuid.UUID, error) {
	if err := accounting.ValidateEntry(ctx, NewGormAccountRepository(r.db), tx); err != nil {
		return uuid.Nil, err
	}
	if err := r.db.WithContext(ctx).Create(models.TransactionModelFromDomain(tx)).Error; err != nil {
		return uuid.Nil, translateError(err, "Transaction")
	}
	return tx.ID, nil
}

// ListByAccount returns the entries of an account in insertion order
func (r *GormTransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*accounting.Transaction, error) {
	var rows []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactions(rows), nil
}

// PostInvoiceTransactions stores the invoice and both entries in one database transaction.
// Validation reads the accounts inside the same transaction so a concurrent
// deactivation cannot slip between check and insert.
func (r *GormTransactionRepository) PostInvoiceTransactions(ctx context.Context, invoice *accounting.Invoice, pair accounting.TransactionPair) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := accounting.ValidatePair(ctx, NewGormAccountRepository(tx), pair); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(models.InvoiceModelFromDomain(invoice)).Error; err != nil {
			return translateError(err, "Invoice")
		}
		entries := []*models.TransactionModel{
			models.TransactionModelFromDomain(pair.Debit),
			models.TransactionModelFromDomain(pair.Credit),
		}
		if err := tx.Create(entries).Error; err != nil {
			return translateError(err, "Transaction")
		}
		invoice.AttachTransactions(pair)
		return nil
	})
}

// FindByID finds a transaction by ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Transaction, error) {
	var row models.TransactionModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Transaction")
	}
	return row.ToDomain(), nil
}

// FindAll lists transactions newest first with the total count
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter accounting.TransactionFilter) ([]*accounting.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{})
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.InvoiceID != nil {
		query = query.Where("invoice_id = ?", *filter.InvoiceID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", filter.FromDate.UTC())
	}
	if filter.ToDate != nil {
		query = query.Where("date < ?", filter.ToDate.UTC())
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(description) LIKE ? OR LOWER(reference) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.TransactionModel
	if err := orderAndPage(query, filter.Filter, transactionSortFields, "date", "DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toTransactions(rows), total, nil
}

// FindBetween returns every entry dated in [from, to), oldest first
func (r *GormTransactionRepository) FindBetween(ctx context.Context, from, to time.Time) ([]*accounting.Transaction, error) {
	var rows []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date < ?", from.UTC(), to.UTC()).
		Order("date ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactions(rows), nil
}

// FindUpTo returns every entry dated before the given instant
func (r *GormTransactionRepository) FindUpTo(ctx context.Context, before time.Time) ([]*accounting.Transaction, error) {
	var rows []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Where("date < ?", before.UTC()).
		Order("date ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactions(rows), nil
}

// FindRecent returns the latest entries by date
func (r *GormTransactionRepository) FindRecent(ctx context.Context, limit int) ([]*accounting.Transaction, error) {
	if limit <= 0 {
		return []*accounting.Transaction{}, nil
	}
	var rows []models.TransactionModel
	if err := r.db.WithContext(ctx).
		Order("date DESC").Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactions(rows), nil
}

func toTransactions(rows []models.TransactionModel) []*accounting.Transaction {
	result := make([]*accounting.Transaction, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result
}

var _ accounting.TransactionRepository = (*GormTransactionRepository)(nil)
