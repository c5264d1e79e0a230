package accounting

import (
	"strings"
	"time"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the side of a ledger entry
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "DEBIT"
	TransactionTypeCredit TransactionType = "CREDIT"
)

// IsValid checks if the type is DEBIT or CREDIT
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeDebit || t == TransactionTypeCredit
}

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// Opposite returns the other side
func (t TransactionType) Opposite() TransactionType {
	if t == TransactionTypeDebit {
		return TransactionTypeCredit
	}
	return TransactionTypeDebit
}

// Transaction is a single immutable ledger entry. The amount is always
// positive; the direction lives in Type.
type Transaction struct {
	shared.BaseEntity
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	AccountID   uuid.UUID
	Reference   string
	InvoiceID   *uuid.UUID
}

// NewTransaction creates a ledger entry. The amount is rounded to cents
// and must stay strictly positive.
func NewTransaction(accountID uuid.UUID, txType TransactionType, amount decimal.Decimal, date time.Time, description string) (*Transaction, error) {
	description = strings.TrimSpace(description)
	amount = valueobject.RoundMoney(amount)

	if !amount.IsPositive() {
		return nil, shared.ErrInvalidAmount
	}

	var v shared.ValidationErrors
	v.Check(accountID != uuid.Nil, "accountId", "Account is required")
	v.Check(txType.IsValid(), "type", "Type must be DEBIT or CREDIT")
	v.Check(!date.IsZero(), "date", "Date is required")
	v.Check(description != "", "description", "Description is required")
	v.Check(len(description) <= 500, "description", "Description cannot exceed 500 characters")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Transaction{
		BaseEntity:  shared.NewBaseEntity(),
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txType,
		AccountID:   accountID,
	}, nil
}

// WithReference sets the external reference, typically an invoice number
func (t *Transaction) WithReference(reference string) *Transaction {
	t.Reference = strings.TrimSpace(reference)
	return t
}

// LinkInvoice ties the entry to the invoice it was derived from
func (t *Transaction) LinkInvoice(invoiceID uuid.UUID) *Transaction {
	id := invoiceID
	t.InvoiceID = &id
	return t
}

// SignedAmount is the entry's effect on an account of accountType.
// Debits raise debit-normal accounts and lower the others; credits do the reverse.
func (t *Transaction) SignedAmount(accountType AccountType) decimal.Decimal {
	return SignedAmount(accountType, t.Type, t.Amount)
}

// SignedAmount applies the double-entry sign convention to amount
func SignedAmount(accountType AccountType, txType TransactionType, amount decimal.Decimal) decimal.Decimal {
	increases := (txType == TransactionTypeDebit) == accountType.IsDebitNormal()
	if increases {
		return amount
	}
	return amount.Neg()
}

// DebitCreditSign returns +amount for debits and -amount for credits.
// The two entries of a balanced pair cancel out under it.
func (t *Transaction) DebitCreditSign() decimal.Decimal {
	if t.Type == TransactionTypeDebit {
		return t.Amount
	}
	return t.Amount.Neg()
}
