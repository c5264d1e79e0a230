package accounting

import (
	"context"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService manages the chart of accounts
type AccountService struct {
	accountRepo accounting.AccountRepository
	ledger      accounting.Ledger
	aggregator  *accounting.BalanceAggregator
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accountRepo accounting.AccountRepository,
	ledger accounting.Ledger,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		ledger:      ledger,
		aggregator:  accounting.NewBalanceAggregator(),
		events:      events,
		logger:      logger,
	}
}

// Create adds an account to the chart. Codes are unique.
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (resp *AccountResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "AccountService", "Create")
	defer func() { telemetry.EndSpan(span, err) }()

	if err := s.ensureCodeFree(ctx, req.Code, nil); err != nil {
		return nil, err
	}

	account, err := accounting.NewAccount(req.Code, req.Name, accounting.AccountType(req.Type))
	if err != nil {
		return nil, err
	}
	if err := account.Update(account.Code, account.Name, req.Description); err != nil {
		return nil, err
	}

	// SetDefault inserts the account and clears the previous default in one
	// transaction
	if req.IsDefault {
		if err := account.MarkDefault(); err != nil {
			return nil, err
		}
		if err := s.accountRepo.SetDefault(ctx, account); err != nil {
			return nil, err
		}
	} else if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.events, s.logger, account)
	s.logger.Info("Account created",
		zap.String("account_id", account.ID.String()),
		zap.String("code", account.Code),
		zap.String("type", account.Type.String()))

	result := ToAccountResponse(account)
	return &result, nil
}

// Update changes code, name and description
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, req.Code, &id); err != nil {
		return nil, err
	}
	if err := account.Update(req.Code, req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	result := ToAccountResponse(account)
	return &result, nil
}

// Get returns an account with its current balance
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledger.ListByAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	balance := s.aggregator.Balance(account, entries)

	result := ToAccountResponse(account)
	result.Balance = &balance
	return &result, nil
}

// List returns the chart of accounts ordered by code, optionally of one type
func (s *AccountService) List(ctx context.Context, accountType string, activeOnly bool) ([]AccountResponse, error) {
	filter := accounting.AccountFilter{ActiveOnly: activeOnly}
	if accountType != "" {
		t := accounting.AccountType(accountType)
		if !t.IsValid() {
			return nil, shared.NewValidationError("type", "Unknown account type")
		}
		filter.Type = &t
	}

	accounts, err := s.accountRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, ToAccountResponse(a))
	}
	return result, nil
}

// Deactivate removes the account from posting. Its entries stay.
func (s *AccountService) Deactivate(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, s.logger, account)
	s.logger.Info("Account deactivated", zap.String("account_id", id.String()))

	result := ToAccountResponse(account)
	return &result, nil
}

// Activate re-enables a deactivated account
func (s *AccountService) Activate(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.Activate(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	result := ToAccountResponse(account)
	return &result, nil
}

// SetDefault makes the account the posting default for its type
func (s *AccountService) SetDefault(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := account.MarkDefault(); err != nil {
		return nil, err
	}
	if err := s.accountRepo.SetDefault(ctx, account); err != nil {
		return nil, err
	}
	s.logger.Info("Default account changed",
		zap.String("account_id", id.String()),
		zap.String("type", account.Type.String()))

	result := ToAccountResponse(account)
	return &result, nil
}

func (s *AccountService) ensureCodeFree(ctx context.Context, code string, excludeID *uuid.UUID) error {
	exists, err := s.accountRepo.ExistsByCode(ctx, code, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError(shared.CodeAlreadyExists, "Account with this code already exists")
	}
	return nil
}

// publishEvents hands the aggregate's pending events to the bus and clears them.
// Handler failures never undo the committed change.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	events := aggregate.GetDomainEvents()
	aggregate.ClearDomainEvents()
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("Failed to publish domain events", zap.Error(err), zap.Int("count", len(events)))
	}
}
