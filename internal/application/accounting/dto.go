package accounting

import (
	"strings"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Account DTOs
// =============================================================================

// CreateAccountRequest represents a request to add an account to the chart
type CreateAccountRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Type        string `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description string `json:"description" binding:"max=1000"`
	IsDefault   bool   `json:"isDefault"`
}

// UpdateAccountRequest represents a request to update an account
type UpdateAccountRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID          uuid.UUID        `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	Description string           `json:"description,omitempty"`
	IsActive    bool             `json:"isActive"`
	IsDefault   bool             `json:"isDefault"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// AccountRef is the short form of an account embedded in other responses
type AccountRef struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
	Type string    `json:"type"`
}

// ToAccountResponse converts a domain Account to a response
func ToAccountResponse(a *accounting.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Code:        a.Code,
		Name:        a.Name,
		Type:        a.Type.String(),
		Description: a.Description,
		IsActive:    a.IsActive,
		IsDefault:   a.IsDefault,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAccountRef(a *accounting.Account) *AccountRef {
	if a == nil {
		return nil
	}
	return &AccountRef{ID: a.ID, Code: a.Code, Name: a.Name, Type: a.Type.String()}
}

// =============================================================================
// Transaction DTOs
// =============================================================================

// CreateTransactionRequest represents a manual ledger entry
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=500"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	AccountID   uuid.UUID       `json:"accountId" binding:"required"`
	Reference   string          `json:"referenceId" binding:"max=100"`
}

// TransactionListFilter represents the query of GET /transactions
type TransactionListFilter struct {
	Page      int        `form:"page" binding:"omitempty,min=1"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=100"`
	AccountID *uuid.UUID `form:"accountId"`
}

// TransactionResponse represents a ledger entry in API responses
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	AccountID   uuid.UUID       `json:"accountId"`
	InvoiceID   *uuid.UUID      `json:"invoiceId,omitempty"`
	Reference   string          `json:"referenceId,omitempty"`
	Account     *AccountRef     `json:"account,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain Transaction to a response.
// account may be nil when it was not loaded.
func ToTransactionResponse(tx *accounting.Transaction, account *accounting.Account) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type.String(),
		AccountID:   tx.AccountID,
		InvoiceID:   tx.InvoiceID,
		Reference:   tx.Reference,
		Account:     toAccountRef(account),
		CreatedAt:   tx.CreatedAt,
	}
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// CreateInvoiceRequest represents a request to create an invoice. The
// total is computed server-side; a client-sent total is ignored.
type CreateInvoiceRequest struct {
	Number      string          `json:"number" binding:"max=50"`
	Type        string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date        string          `json:"date" binding:"required"`
	DueDate     string          `json:"dueDate"`
	ClientName  string          `json:"clientName" binding:"required,min=1,max=200"`
	ClientEmail string          `json:"clientEmail" binding:"omitempty,email,max=200"`
	ClientTaxID string          `json:"clientTaxId" binding:"max=50"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
}

// UpdateInvoiceStatusRequest represents a status transition
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT ISSUED PAID CANCELLED"`
}

// InvoiceListFilter represents the query of GET /invoices
type InvoiceListFilter struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Type   string `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Status string `form:"status" binding:"omitempty,oneof=DRAFT ISSUED PAID CANCELLED"`
	Search string `form:"search" binding:"max=100"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID           uuid.UUID             `json:"id"`
	Number       string                `json:"number"`
	Type         string                `json:"type"`
	Date         time.Time             `json:"date"`
	DueDate      *time.Time            `json:"dueDate,omitempty"`
	ClientName   string                `json:"clientName"`
	ClientEmail  string                `json:"clientEmail,omitempty"`
	ClientTaxID  string                `json:"clientTaxId,omitempty"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Tax          decimal.Decimal       `json:"tax"`
	Total        decimal.Decimal       `json:"total"`
	Status       string                `json:"status"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ToInvoiceResponse converts a domain Invoice to a response
func ToInvoiceResponse(inv *accounting.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		Type:        inv.Type.String(),
		Date:        inv.Date,
		DueDate:     inv.DueDate,
		ClientName:  inv.ClientName,
		ClientEmail: inv.ClientEmail,
		ClientTaxID: inv.ClientTaxID,
		Subtotal:    inv.Subtotal,
		Tax:         inv.Tax,
		Total:       inv.Total,
		Status:      inv.Status.String(),
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
	if len(inv.Transactions) > 0 {
		resp.Transactions = make([]TransactionResponse, 0, len(inv.Transactions))
		for _, tx := range inv.Transactions {
			resp.Transactions = append(resp.Transactions, ToTransactionResponse(tx, nil))
		}
	}
	return resp
}

// InvoicePDF is a rendered invoice document
type InvoicePDF struct {
	FileName string
	Data     []byte
}

// =============================================================================
// Dashboard and report DTOs
// =============================================================================

// DashboardResponse is the accounting overview of the current month
type DashboardResponse struct {
	PeriodStart         time.Time                   `json:"periodStart"`
	PeriodEnd           time.Time                   `json:"periodEnd"`
	TotalIncome         decimal.Decimal             `json:"totalIncome"`
	TotalExpenses       decimal.Decimal             `json:"totalExpenses"`
	NetProfit           decimal.Decimal             `json:"netProfit"`
	AccountsSummary     []accounting.AccountBalance `json:"accountsSummary"`
	RecentTransactions  []TransactionResponse       `json:"recentTransactions"`
	PendingInvoices     []InvoiceResponse           `json:"pendingInvoices"`
	PendingInvoiceCount int64                       `json:"pendingInvoiceCount"`
}

// IncomeStatementQuery represents the query of the income statement report
type IncomeStatementQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// BalanceSheetQuery represents the query of the balance sheet report
type BalanceSheetQuery struct {
	Date string `form:"date"`
}

// IncomeStatementResponse wraps the statement with its period bounds
type IncomeStatementResponse struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	accounting.IncomeStatement
}

// =============================================================================
// Helpers
// =============================================================================

// ParseDate accepts YYYY-MM-DD (interpreted in loc) or RFC 3339
func ParseDate(field, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, shared.NewValidationError(field, "Date is required")
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, shared.NewValidationError(field, "Date must be YYYY-MM-DD or RFC 3339")
}

// pageOf builds a paging filter; ordering is left to the repository defaults
func pageOf(page, limit int) shared.Filter {
	f := shared.Filter{Page: page, PageSize: limit}
	f.Normalize()
	f.OrderDir = ""
	return f
}
