package persistence

import (
	"context"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func preloadEntries(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("type DESC")
}

// FindByID finds an invoice with its transactions
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Invoice, error) {
	var row models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Transactions", preloadEntries).
		First(&row, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Invoice")
	}
	return row.ToDomain(), nil
}

// FindByNumber finds an invoice by its unique number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, number string) (*accounting.Invoice, error) {
	var row models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Transactions", preloadEntries).
		First(&row, "number = ?", number).Error; err != nil {
		return nil, translateError(err, "Invoice")
	}
	return row.ToDomain(), nil
}

// FindAll lists invoices newest first with the total count.
// List results carry no transactions.
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter accounting.InvoiceFilter) ([]*accounting.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("LOWER(number) LIKE ? OR LOWER(client_name) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.InvoiceModel
	if err := orderAndPage(query, filter.Filter, invoiceSortFields, "date", "DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	result := make([]*accounting.Invoice, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain()
	}
	return result, total, nil
}

// ExistsByNumber checks number uniqueness
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus persists a status transition.
// The update is guarded by the previous status so two concurrent
// transitions cannot both succeed.
func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, invoice *accounting.Invoice) error {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("id = ?", invoice.ID)
	if previous, ok := previousStatus(invoice); ok {
		query = query.Where("status = ?", previous)
	}
	result := query.Updates(map[string]any{
		"status":     invoice.Status,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, invoice.ID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.NewNotFoundError("Invoice")
		}
		return shared.NewDomainError(shared.CodeInvalidState, "Invoice status was changed concurrently")
	}
	return nil
}

func (r *GormInvoiceRepository) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// previousStatus reads the status the invoice left from its pending events
func previousStatus(invoice *accounting.Invoice) (accounting.InvoiceStatus, bool) {
	events := invoice.GetDomainEvents()
	for i := len(events) - 1; i >= 0; i-- {
		if e, ok := events[i].(*accounting.InvoiceStatusChangedEvent); ok {
			return e.From, true
		}
	}
	return "", false
}

var _ accounting.InvoiceRepository = (*GormInvoiceRepository)(nil)
