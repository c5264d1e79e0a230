package accounting

import (
	"strings"

	"github.com/erp/erpcore/internal/domain/shared"
)

// AccountType classifies an account in the chart of accounts
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// AllAccountTypes lists account types in chart order
var AllAccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeExpense,
}

// IsValid checks if the type is a known AccountType
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity,
		AccountTypeIncome, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// DisplayName returns a human-readable name for the type
func (t AccountType) DisplayName() string {
	switch t {
	case AccountTypeAsset:
		return "Asset"
	case AccountTypeLiability:
		return "Liability"
	case AccountTypeEquity:
		return "Equity"
	case AccountTypeIncome:
		return "Income"
	case AccountTypeExpense:
		return "Expense"
	default:
		return string(t)
	}
}

// IsDebitNormal reports whether a debit increases balances of this type.
// ASSET and EXPENSE accounts are debit-normal, the rest are credit-normal.
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Account is an entry of the chart of accounts.
// Accounts are never deleted, only deactivated.
type Account struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Type        AccountType
	Description string
	IsActive    bool
	// IsDefault marks the account as the one the invoice deriver posts to
	// for its Type. At most one active account per type carries it.
	IsDefault bool
}

// NewAccount creates a new active account
func NewAccount(code, name string, accountType AccountType) (*Account, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	var v shared.ValidationErrors
	v.Check(code != "", "code", "Code is required")
	v.Check(len(code) <= 50, "code", "Code cannot exceed 50 characters")
	v.Check(name != "", "name", "Name is required")
	v.Check(len(name) <= 200, "name", "Name cannot exceed 200 characters")
	v.Check(accountType.IsValid(), "type", "Type is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	account := &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Type:              accountType,
		IsActive:          true,
	}
	account.AddDomainEvent(NewAccountCreatedEvent(account))

	return account, nil
}

// Update changes the editable fields of the account.
// The type is fixed at creation so existing balances keep their meaning.
func (a *Account) Update(code, name, description string) error {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)

	var v shared.ValidationErrors
	v.Check(code != "", "code", "Code is required")
	v.Check(len(code) <= 50, "code", "Code cannot exceed 50 characters")
	v.Check(name != "", "name", "Name is required")
	v.Check(len(name) <= 200, "name", "Name cannot exceed 200 characters")
	if err := v.Err(); err != nil {
		return err
	}

	a.Code = code
	a.Name = name
	a.Description = strings.TrimSpace(description)
	a.Touch()
	return nil
}

// Deactivate hides the account from posting. A deactivated account
// loses its default designation.
func (a *Account) Deactivate() error {
	if !a.IsActive {
		return shared.NewDomainError(shared.CodeInvalidState, "Account is already inactive")
	}
	a.IsActive = false
	a.IsDefault = false
	a.Touch()
	a.AddDomainEvent(NewAccountDeactivatedEvent(a))
	return nil
}

// Activate re-enables a deactivated account
func (a *Account) Activate() error {
	if a.IsActive {
		return shared.NewDomainError(shared.CodeInvalidState, "Account is already active")
	}
	a.IsActive = true
	a.Touch()
	return nil
}

// MarkDefault designates the account as the default for its type
func (a *Account) MarkDefault() error {
	if !a.IsActive {
		return shared.NewDomainError(shared.CodeInvalidState, "Inactive account cannot be the default")
	}
	a.IsDefault = true
	a.Touch()
	return nil
}

// ClearDefault removes the default designation
func (a *Account) ClearDefault() {
	if !a.IsDefault {
		return
	}
	a.IsDefault = false
	a.Touch()
}
