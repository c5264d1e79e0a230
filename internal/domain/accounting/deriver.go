package accounting

import (
	"context"
	"fmt"

	"github.com/erp/erpcore/internal/domain/shared"
)

// TransactionPair is the balanced debit/credit couple derived from an invoice
type TransactionPair struct {
	Debit  *Transaction
	Credit *Transaction
}

// Entries returns the pair in posting order
func (p TransactionPair) Entries() []*Transaction {
	return []*Transaction{p.Debit, p.Credit}
}

// IsBalanced reports whether both sides carry the same amount
func (p TransactionPair) IsBalanced() bool {
	if p.Debit == nil || p.Credit == nil {
		return false
	}
	return p.Debit.Type == TransactionTypeDebit &&
		p.Credit.Type == TransactionTypeCredit &&
		p.Debit.DebitCreditSign().Add(p.Credit.DebitCreditSign()).IsZero()
}

type derivationRule struct {
	debitAccount  AccountType
	creditAccount AccountType
	debitLabel    string
	creditLabel   string
}

var derivationRules = map[InvoiceType]derivationRule{
	InvoiceTypeIncome: {
		debitAccount:  AccountTypeAsset,
		creditAccount: AccountTypeIncome,
		debitLabel:    "Sale",
		creditLabel:   "Sales revenue",
	},
	InvoiceTypeExpense: {
		debitAccount:  AccountTypeExpense,
		creditAccount: AccountTypeLiability,
		debitLabel:    "Purchase",
		creditLabel:   "Account payable",
	},
}

// InvoiceDeriver turns an invoice into its two ledger transactions
type InvoiceDeriver struct {
	registry AccountRegistry
}

// NewInvoiceDeriver creates a deriver reading default accounts from registry
func NewInvoiceDeriver(registry AccountRegistry) *InvoiceDeriver {
	return &InvoiceDeriver{registry: registry}
}

// Derive builds the debit/credit pair for invoice.
// Sales debit the default ASSET account and credit the default INCOME
// account; purchases debit the default EXPENSE account and credit the
// default LIABILITY account. Both entries carry the invoice total, date and
// number. A missing account type fails the whole derivation.
func (d *InvoiceDeriver) Derive(ctx context.Context, invoice *Invoice) (TransactionPair, error) {
	rule, ok := derivationRules[invoice.Type]
	if !ok {
		return TransactionPair{}, shared.NewValidationError("type", "Type must be INCOME or EXPENSE")
	}

	debitAccount, err := d.registry.DefaultFor(ctx, rule.debitAccount)
	if err != nil {
		return TransactionPair{}, err
	}
	creditAccount, err := d.registry.DefaultFor(ctx, rule.creditAccount)
	if err != nil {
		return TransactionPair{}, err
	}

	debit, err := d.entry(invoice, debitAccount, TransactionTypeDebit, rule.debitLabel)
	if err != nil {
		return TransactionPair{}, err
	}
	credit, err := d.entry(invoice, creditAccount, TransactionTypeCredit, rule.creditLabel)
	if err != nil {
		return TransactionPair{}, err
	}

	return TransactionPair{Debit: debit, Credit: credit}, nil
}

func (d *InvoiceDeriver) entry(invoice *Invoice, account *Account, txType TransactionType, label string) (*Transaction, error) {
	tx, err := NewTransaction(account.ID, txType, invoice.Total, invoice.Date,
		fmt.Sprintf("%s - %s", label, invoice.ClientName))
	if err != nil {
		return nil, err
	}
	return tx.WithReference(invoice.Number).LinkInvoice(invoice.ID), nil
}
