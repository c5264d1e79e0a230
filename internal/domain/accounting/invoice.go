package accounting

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InvoiceType tells whether an invoice records a sale or a purchase
type InvoiceType string

const (
	InvoiceTypeIncome  InvoiceType = "INCOME"
	InvoiceTypeExpense InvoiceType = "EXPENSE"
)

// IsValid checks if the type is a known InvoiceType
func (t InvoiceType) IsValid() bool {
	return t == InvoiceTypeIncome || t == InvoiceTypeExpense
}

// String returns the string representation of InvoiceType
func (t InvoiceType) String() string {
	return string(t)
}

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a known InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true for PAID and CANCELLED
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// IsPending returns true while the invoice still awaits payment
func (s InvoiceStatus) IsPending() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusIssued
}

// CanTransitionTo reports whether moving to next is allowed.
// Transitions only move forward: DRAFT -> ISSUED -> PAID, and any pending
// invoice may be cancelled.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return next == InvoiceStatusIssued || next == InvoiceStatusCancelled
	case InvoiceStatusIssued:
		return next == InvoiceStatusPaid || next == InvoiceStatusCancelled
	}
	return false
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Invoice is a sale or purchase document. Creating one posts a balanced
// pair of ledger transactions.
type Invoice struct {
	shared.BaseAggregateRoot
	Number       string
	Type         InvoiceType
	Date         time.Time
	DueDate      *time.Time
	ClientName   string
	ClientEmail  string
	ClientTaxID  string
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Status       InvoiceStatus
	Transactions []*Transaction
}

// ComputeInvoiceTotal returns subtotal + tax rounded to cents
func ComputeInvoiceTotal(subtotal, tax decimal.Decimal) decimal.Decimal {
	return valueobject.SumMoney(subtotal, tax)
}

// GenerateInvoiceNumber builds a FAC-<unix millis>-<0..999> number
func GenerateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("FAC-%d-%d", now.UnixMilli(), rand.IntN(1000))
}

// NewInvoice creates a draft invoice. An empty number is generated.
// The total is always computed from subtotal and tax.
func NewInvoice(number string, invoiceType InvoiceType, date time.Time, clientName string, subtotal, tax decimal.Decimal) (*Invoice, error) {
	number = strings.TrimSpace(number)
	clientName = strings.TrimSpace(clientName)
	subtotal = valueobject.RoundMoney(subtotal)
	tax = valueobject.RoundMoney(tax)
	total := ComputeInvoiceTotal(subtotal, tax)

	if number == "" {
		number = GenerateInvoiceNumber(time.Now())
	}

	var v shared.ValidationErrors
	v.Check(len(number) <= 50, "number", "Number cannot exceed 50 characters")
	v.Check(invoiceType.IsValid(), "type", "Type must be INCOME or EXPENSE")
	v.Check(!date.IsZero(), "date", "Date is required")
	v.Check(clientName != "", "clientName", "Client name is required")
	v.Check(subtotal.IsPositive(), "subtotal", "Subtotal must be greater than 0")
	v.Check(!tax.IsNegative(), "tax", "Tax cannot be negative")
	v.Check(total.IsPositive(), "total", "Total must be greater than 0")
	if err := v.Err(); err != nil {
		return nil, err
	}

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Type:              invoiceType,
		Date:              date,
		ClientName:        clientName,
		Subtotal:          subtotal,
		Tax:               tax,
		Total:             total,
		Status:            InvoiceStatusDraft,
		Transactions:      make([]*Transaction, 0, 2),
	}
	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// SetClientDetails sets the optional contact fields of the counterparty
func (i *Invoice) SetClientDetails(email, taxID string) error {
	email = strings.TrimSpace(email)
	taxID = strings.TrimSpace(taxID)
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewValidationError("clientEmail", "Client email is invalid")
	}
	if len(taxID) > 50 {
		return shared.NewValidationError("clientTaxId", "Client tax id cannot exceed 50 characters")
	}
	i.ClientEmail = email
	i.ClientTaxID = taxID
	i.Touch()
	return nil
}

// SetDueDate sets the due date, which cannot precede the invoice date
func (i *Invoice) SetDueDate(due *time.Time) error {
	if due != nil && due.Before(i.Date) {
		return shared.NewValidationError("dueDate", "Due date cannot be before the invoice date")
	}
	i.DueDate = due
	i.Touch()
	return nil
}

// TransitionTo moves the invoice to next status
func (i *Invoice) TransitionTo(next InvoiceStatus) error {
	if !next.IsValid() {
		return shared.NewValidationError("status", "Unknown invoice status")
	}
	if !i.Status.CanTransitionTo(next) {
		return shared.NewDomainError(shared.CodeInvalidState,
			fmt.Sprintf("Cannot change invoice status from %s to %s", i.Status, next))
	}
	previous := i.Status
	i.Status = next
	i.Touch()
	i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, previous))
	return nil
}

// AttachTransactions records the derived pair on the invoice
func (i *Invoice) AttachTransactions(pair TransactionPair) {
	i.Transactions = []*Transaction{pair.Debit, pair.Credit}
}
