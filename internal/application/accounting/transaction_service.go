package accounting

import (
	"context"
	"errors"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransactionService records manual ledger entries and lists the ledger
type TransactionService struct {
	txRepo      accounting.TransactionRepository
	accountRepo accounting.AccountRepository
	location    *time.Location
	logger      *zap.Logger
}

// NewTransactionService creates a new TransactionService. Plain dates in
// requests are interpreted in loc.
func NewTransactionService(
	txRepo accounting.TransactionRepository,
	accountRepo accounting.AccountRepository,
	loc *time.Location,
	logger *zap.Logger,
) *TransactionService {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionService{
		txRepo:      txRepo,
		accountRepo: accountRepo,
		location:    loc,
		logger:      logger,
	}
}

// Create appends a single manual entry. The ledger rejects entries against
// unknown or inactive accounts.
func (s *TransactionService) Create(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	date, err := ParseDate("date", req.Date, s.location)
	if err != nil {
		return nil, err
	}

	tx, err := accounting.NewTransaction(req.AccountID, accounting.TransactionType(req.Type), req.Amount, date, req.Description)
	if err != nil {
		return nil, err
	}
	tx.WithReference(req.Reference)

	if _, err := s.txRepo.Append(ctx, tx); err != nil {
		return nil, err
	}

	// the entry is committed; a failed lookup only leaves the account out
	account, err := s.accountRepo.FindByID(ctx, tx.AccountID)
	if err != nil {
		s.logger.Warn("Failed to load account of recorded transaction",
			zap.String("transaction_id", tx.ID.String()),
			zap.String("account_id", tx.AccountID.String()),
			zap.Error(err))
		account = nil
	}
	s.logger.Info("Manual transaction recorded",
		zap.String("transaction_id", tx.ID.String()),
		zap.String("account_id", tx.AccountID.String()),
		zap.String("type", tx.Type.String()),
		zap.String("amount", valueobject.FormatMoney(tx.Amount)))

	result := ToTransactionResponse(tx, account)
	return &result, nil
}

// Get returns one ledger entry with its account
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindByID(ctx, tx.AccountID)
	if err != nil {
		return nil, err
	}
	result := ToTransactionResponse(tx, account)
	return &result, nil
}

// List returns a page of the ledger, newest first
func (s *TransactionService) List(ctx context.Context, query TransactionListFilter) (*shared.Paginated[TransactionResponse], error) {
	filter := accounting.TransactionFilter{
		Filter:    pageOf(query.Page, query.Limit),
		AccountID: query.AccountID,
	}

	txs, total, err := s.txRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := transactionsWithAccounts(ctx, s.accountRepo, txs)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// transactionsWithAccounts converts entries and embeds their account,
// loading each account once
func transactionsWithAccounts(ctx context.Context, registry accounting.AccountRegistry, txs []*accounting.Transaction) ([]TransactionResponse, error) {
	cache := make(map[uuid.UUID]*accounting.Account)
	items := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		account, ok := cache[tx.AccountID]
		if !ok {
			found, err := registry.FindByID(ctx, tx.AccountID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			account = found
			cache[tx.AccountID] = account
		}
		items = append(items, ToTransactionResponse(tx, account))
	}
	return items, nil
}
