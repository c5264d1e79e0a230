package models

import (
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the Account aggregate
type AccountModel struct {
	BaseModel
	Code        string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                 `gorm:"type:varchar(200);not null"`
	Type        accounting.AccountType `gorm:"type:varchar(20);not null;index"`
	Description string                 `gorm:"type:text"`
	IsActive    bool                   `gorm:"not null;default:true"`
	IsDefault   bool                   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *accounting.Account {
	return &accounting.Account{
		BaseAggregateRoot: m.aggregate(),
		Code:              m.Code,
		Name:              m.Name,
		Type:              m.Type,
		Description:       m.Description,
		IsActive:          m.IsActive,
		IsDefault:         m.IsDefault,
	}
}

// AccountModelFromDomain creates a persistence model from a domain Account
func AccountModelFromDomain(a *accounting.Account) *AccountModel {
	m := &AccountModel{
		Code:        a.Code,
		Name:        a.Name,
		Type:        a.Type,
		Description: a.Description,
		IsActive:    a.IsActive,
		IsDefault:   a.IsDefault,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// TransactionModel is the persistence model for a ledger entry
type TransactionModel struct {
	BaseModel
	Date        time.Time                  `gorm:"not null;index"`
	Description string                     `gorm:"type:varchar(500);not null"`
	Amount      decimal.Decimal            `gorm:"type:decimal(15,2);not null"`
	Type        accounting.TransactionType `gorm:"type:varchar(10);not null"`
	AccountID   uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Reference   string                     `gorm:"type:varchar(100)"`
	InvoiceID   *uuid.UUID                 `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *accounting.Transaction {
	return &accounting.Transaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		Date:        m.Date,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        m.Type,
		AccountID:   m.AccountID,
		Reference:   m.Reference,
		InvoiceID:   m.InvoiceID,
	}
}

// TransactionModelFromDomain creates a persistence model from a domain Transaction
func TransactionModelFromDomain(t *accounting.Transaction) *TransactionModel {
	m := &TransactionModel{
		Date:        t.Date.UTC(),
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		AccountID:   t.AccountID,
		Reference:   t.Reference,
		InvoiceID:   t.InvoiceID,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate
type InvoiceModel struct {
	BaseModel
	Number       string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type         accounting.InvoiceType   `gorm:"type:varchar(10);not null;index"`
	Date         time.Time                `gorm:"not null;index"`
	DueDate      *time.Time               `gorm:""`
	ClientName   string                   `gorm:"type:varchar(200);not null"`
	ClientEmail  string                   `gorm:"type:varchar(200)"`
	ClientTaxID  string                   `gorm:"type:varchar(50)"`
	Subtotal     decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	Tax          decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	Total        decimal.Decimal          `gorm:"type:decimal(15,2);not null"`
	Status       accounting.InvoiceStatus `gorm:"type:varchar(20);not null;index"`
	Transactions []TransactionModel       `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
// Transactions are included when they were preloaded.
func (m *InvoiceModel) ToDomain() *accounting.Invoice {
	inv := &accounting.Invoice{
		BaseAggregateRoot: m.aggregate(),
		Number:            m.Number,
		Type:              m.Type,
		Date:              m.Date,
		DueDate:           m.DueDate,
		ClientName:        m.ClientName,
		ClientEmail:       m.ClientEmail,
		ClientTaxID:       m.ClientTaxID,
		Subtotal:          m.Subtotal,
		Tax:               m.Tax,
		Total:             m.Total,
		Status:            m.Status,
		Transactions:      make([]*accounting.Transaction, 0, len(m.Transactions)),
	}
	for i := range m.Transactions {
		inv.Transactions = append(inv.Transactions, m.Transactions[i].ToDomain())
	}
	return inv
}

// InvoiceModelFromDomain creates a persistence model from a domain Invoice.
// Transactions are stored separately.
func InvoiceModelFromDomain(i *accounting.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		Number:      i.Number,
		Type:        i.Type,
		Date:        i.Date.UTC(),
		DueDate:     utcPtr(i.DueDate),
		ClientName:  i.ClientName,
		ClientEmail: i.ClientEmail,
		ClientTaxID: i.ClientTaxID,
		Subtotal:    i.Subtotal,
		Tax:         i.Tax,
		Total:       i.Total,
		Status:      i.Status,
	}
	m.FromDomainBaseEntity(i.BaseEntity)
	return m
}
