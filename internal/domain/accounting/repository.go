package accounting

import (
	"context"
	"time"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountFilter defines filtering options for account queries
type AccountFilter struct {
	shared.Filter
	Type       *AccountType // Filter by account type
	ActiveOnly bool         // Exclude deactivated accounts
}

// TransactionFilter defines filtering options for transaction queries
type TransactionFilter struct {
	shared.Filter
	AccountID *uuid.UUID       // Filter by account
	InvoiceID *uuid.UUID       // Filter by originating invoice
	Type      *TransactionType // Filter by side
	FromDate  *time.Time       // Inclusive lower bound on Date
	ToDate    *time.Time       // Exclusive upper bound on Date
}

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	Type     *InvoiceType   // Filter by invoice type
	Status   *InvoiceStatus // Filter by status
	Statuses []InvoiceStatus
}

// AccountRepository persists the chart of accounts
type AccountRepository interface {
	AccountRegistry

	// FindByCode finds an account by its unique code
	FindByCode(ctx context.Context, code string) (*Account, error)

	// FindAll lists accounts ordered by code
	FindAll(ctx context.Context, filter AccountFilter) ([]*Account, error)

	// ExistsByCode checks code uniqueness, ignoring excludeID when set
	ExistsByCode(ctx context.Context, code string, excludeID *uuid.UUID) (bool, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// SetDefault saves account, creating it when new, and clears the
	// default flag on every other account of its type in one transaction.
	// The caller marks account as default first.
	SetDefault(ctx context.Context, account *Account) error
}

// TransactionRepository is the persistent ledger plus its read models
type TransactionRepository interface {
	Ledger

	// FindByID finds a transaction by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindAll lists transactions newest first with the total count
	FindAll(ctx context.Context, filter TransactionFilter) ([]*Transaction, int64, error)

	// FindBetween returns every entry dated in [from, to), oldest first
	FindBetween(ctx context.Context, from, to time.Time) ([]*Transaction, error)

	// FindUpTo returns every entry dated before the given instant
	FindUpTo(ctx context.Context, before time.Time) ([]*Transaction, error)

	// FindRecent returns the latest entries by date
	FindRecent(ctx context.Context, limit int) ([]*Transaction, error)
}

// InvoiceRepository persists invoices. New invoices are stored through
// Ledger.PostInvoiceTransactions so they never exist without their entries.
type InvoiceRepository interface {
	// FindByID finds an invoice with its transactions
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its unique number
	FindByNumber(ctx context.Context, number string) (*Invoice, error)

	// FindAll lists invoices newest first with the total count
	FindAll(ctx context.Context, filter InvoiceFilter) ([]*Invoice, int64, error)

	// ExistsByNumber checks number uniqueness
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// UpdateStatus persists a status transition
	UpdateStatus(ctx context.Context, invoice *Invoice) error
}
