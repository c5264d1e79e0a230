package accounting

import (
	"context"
	"sync"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
)

// Ledger is the append-only store of transactions
type Ledger interface {
	// Append stores a single entry after checking its account and amount
	Append(ctx context.Context, tx *Transaction) (uuid.UUID, error)

	// ListByAccount returns the entries of an account in insertion order
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transaction, error)

	// PostInvoiceTransactions stores the invoice with both derived entries.
	// Either all three records are stored or none is.
	PostInvoiceTransactions(ctx context.Context, invoice *Invoice, pair TransactionPair) error
}

// ValidateEntry checks that tx can be appended: a positive amount on an
// existing active account
func ValidateEntry(ctx context.Context, registry AccountRegistry, tx *Transaction) error {
	if tx == nil {
		return shared.NewValidationError("transaction", "Transaction is required")
	}
	if !tx.Amount.IsPositive() {
		return shared.ErrInvalidAmount
	}
	active, err := registry.IsActive(ctx, tx.AccountID)
	if err != nil {
		return err
	}
	if !active {
		return shared.ErrInvalidAccount
	}
	return nil
}

// ValidatePair checks both entries of an invoice pair
func ValidatePair(ctx context.Context, registry AccountRegistry, pair TransactionPair) error {
	if !pair.IsBalanced() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Invoice transactions are not balanced")
	}
	for _, tx := range pair.Entries() {
		if err := ValidateEntry(ctx, registry, tx); err != nil {
			return err
		}
	}
	return nil
}

// InMemoryLedger keeps entries in a slice. It backs unit tests and tools
// that work on a materialized snapshot.
type InMemoryLedger struct {
	mu       sync.Mutex
	registry AccountRegistry
	entries  []*Transaction
	invoices map[uuid.UUID]*Invoice
}

// NewInMemoryLedger creates an empty ledger validating against registry
func NewInMemoryLedger(registry AccountRegistry) *InMemoryLedger {
	return &InMemoryLedger{
		registry: registry,
		entries:  make([]*Transaction, 0),
		invoices: make(map[uuid.UUID]*Invoice),
	}
}

// Append validates and stores tx
func (l *InMemoryLedger) Append(ctx context.Context, tx *Transaction) (uuid.UUID, error) {
	if err := ValidateEntry(ctx, l.registry, tx); err != nil {
		return uuid.Nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, tx)
	return tx.ID, nil
}

// ListByAccount returns the entries of accountID in insertion order
func (l *InMemoryLedger) ListByAccount(_ context.Context, accountID uuid.UUID) ([]*Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	result := make([]*Transaction, 0)
	for _, tx := range l.entries {
		if tx.AccountID == accountID {
			result = append(result, tx)
		}
	}
	return result, nil
}

// PostInvoiceTransactions validates both entries before storing anything
func (l *InMemoryLedger) PostInvoiceTransactions(ctx context.Context, invoice *Invoice, pair TransactionPair) error {
	if err := ValidatePair(ctx, l.registry, pair); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.invoices[invoice.ID]; exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Invoice already posted")
	}
	invoice.AttachTransactions(pair)
	l.invoices[invoice.ID] = invoice
	l.entries = append(l.entries, pair.Debit, pair.Credit)
	return nil
}

// Entries returns a snapshot of every stored entry in insertion order
func (l *InMemoryLedger) Entries() []*Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Transaction(nil), l.entries...)
}

var _ Ledger = (*InMemoryLedger)(nil)
