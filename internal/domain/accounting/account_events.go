package accounting

import (
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	AggregateTypeAccount = "Account"

	EventTypeAccountCreated     = "accounting.account.created"
	EventTypeAccountDeactivated = "accounting.account.deactivated"
)

// AccountCreatedEvent is raised when an account is added to the chart
type AccountCreatedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID   `json:"account_id"`
	Code      string      `json:"code"`
	Type      AccountType `json:"type"`
}

// NewAccountCreatedEvent creates a new AccountCreatedEvent
func NewAccountCreatedEvent(a *Account) *AccountCreatedEvent {
	return &AccountCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountCreated, AggregateTypeAccount, a.ID),
		AccountID:       a.ID,
		Code:            a.Code,
		Type:            a.Type,
	}
}

// AccountDeactivatedEvent is raised when an account is deactivated
type AccountDeactivatedEvent struct {
	shared.BaseDomainEvent
	AccountID uuid.UUID `json:"account_id"`
	Code      string    `json:"code"`
}

// NewAccountDeactivatedEvent creates a new AccountDeactivatedEvent
func NewAccountDeactivatedEvent(a *Account) *AccountDeactivatedEvent {
	return &AccountDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountDeactivated, AggregateTypeAccount, a.ID),
		AccountID:       a.ID,
		Code:            a.Code,
	}
}
