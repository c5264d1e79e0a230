package accounting

import (
	"context"
	"fmt"
	"sort"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRegistry is the read side of the chart of accounts
type AccountRegistry interface {
	// FindByType returns every account of the type, active or not, ordered by code
	FindByType(ctx context.Context, accountType AccountType) ([]*Account, error)

	// FindByID returns the account or a NOT_FOUND error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// IsActive reports whether id names an active account.
	// Unknown ids are reported as inactive.
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)

	// DefaultFor returns the account the deriver posts to for the type
	DefaultFor(ctx context.Context, accountType AccountType) (*Account, error)
}

// SelectDefault picks the posting account for accountType out of candidates.
// An active account flagged IsDefault wins. Without a flag a single active
// account is unambiguous and is used; anything else is a configuration error.
func SelectDefault(candidates []*Account, accountType AccountType) (*Account, error) {
	var active []*Account
	for _, a := range candidates {
		if a.Type != accountType || !a.IsActive {
			continue
		}
		if a.IsDefault {
			return a, nil
		}
		active = append(active, a)
	}

	switch len(active) {
	case 0:
		return nil, NewMissingAccountConfigurationError(accountType,
			fmt.Sprintf("No active %s account is configured", accountType))
	case 1:
		return active[0], nil
	default:
		return nil, NewMissingAccountConfigurationError(accountType,
			fmt.Sprintf("%d active %s accounts exist and none is marked as default", len(active), accountType))
	}
}

// NewMissingAccountConfigurationError builds the error returned when an
// invoice cannot be posted because an account type has no usable account
func NewMissingAccountConfigurationError(accountType AccountType, message string) *shared.DomainError {
	return &shared.DomainError{
		Code:    shared.CodeMissingAccountConfiguration,
		Message: message,
		Details: []shared.FieldProblem{{Field: "accountType", Message: accountType.String()}},
	}
}

// InMemoryAccountRegistry serves the registry contract from a fixed slice.
// Registration order is preserved for listing ties.
type InMemoryAccountRegistry struct {
	accounts []*Account
	byID     map[uuid.UUID]*Account
}

// NewAccountRegistry builds an in-memory registry over accounts
func NewAccountRegistry(accounts ...*Account) *InMemoryAccountRegistry {
	r := &InMemoryAccountRegistry{
		accounts: make([]*Account, 0, len(accounts)),
		byID:     make(map[uuid.UUID]*Account, len(accounts)),
	}
	for _, a := range accounts {
		r.accounts = append(r.accounts, a)
		r.byID[a.ID] = a
	}
	return r
}

// FindByType returns accounts of the type ordered by code
func (r *InMemoryAccountRegistry) FindByType(_ context.Context, accountType AccountType) ([]*Account, error) {
	result := make([]*Account, 0)
	for _, a := range r.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// FindByID returns the account with id
func (r *InMemoryAccountRegistry) FindByID(_ context.Context, id uuid.UUID) (*Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, shared.NewNotFoundError("Account")
	}
	return a, nil
}

// IsActive reports whether id is a known active account
func (r *InMemoryAccountRegistry) IsActive(_ context.Context, id uuid.UUID) (bool, error) {
	a, ok := r.byID[id]
	return ok && a.IsActive, nil
}

// DefaultFor selects the posting account for the type
func (r *InMemoryAccountRegistry) DefaultFor(_ context.Context, accountType AccountType) (*Account, error) {
	return SelectDefault(r.accounts, accountType)
}

// All returns every registered account in registration order
func (r *InMemoryAccountRegistry) All() []*Account {
	return append([]*Account(nil), r.accounts...)
}

var _ AccountRegistry = (*InMemoryAccountRegistry)(nil)
