package printing

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"strings"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/invoice.html
var invoiceTemplateSource string

// CompanyInfo is the issuer block printed on every document
type CompanyInfo struct {
	Name    string
	TaxID   string
	Address string
}

// CompanyFromConfig reads the issuer block from printing settings
func CompanyFromConfig(cfg config.PrintingConfig) CompanyInfo {
	return CompanyInfo{
		Name:    cfg.CompanyName,
		TaxID:   cfg.CompanyTaxID,
		Address: cfg.CompanyAddress,
	}
}

// EntryLine is one ledger entry shown on the invoice
type EntryLine struct {
	AccountCode string
	AccountName string
	Description string
	Amount      decimal.Decimal
	IsDebit     bool
}

// InvoiceDocument is the view model of the invoice template
type InvoiceDocument struct {
	Company     CompanyInfo
	Title       string
	PartyLabel  string
	Number      string
	Status      string
	Date        time.Time
	DueDate     *time.Time
	ClientName  string
	ClientEmail string
	ClientTaxID string
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Entries     []EntryLine
}

// NewInvoiceDocument builds the view model for inv. accounts resolves the
// account of each entry; unknown accounts print without code and name.
func NewInvoiceDocument(company CompanyInfo, inv *accounting.Invoice, accounts map[uuid.UUID]*accounting.Account) InvoiceDocument {
	doc := InvoiceDocument{
		Company:     company,
		Title:       "Sales Invoice",
		PartyLabel:  "Bill to",
		Number:      inv.Number,
		Status:      inv.Status.String(),
		Date:        inv.Date,
		DueDate:     inv.DueDate,
		ClientName:  inv.ClientName,
		ClientEmail: inv.ClientEmail,
		ClientTaxID: inv.ClientTaxID,
		Subtotal:    inv.Subtotal,
		Tax:         inv.Tax,
		Total:       inv.Total,
		Entries:     make([]EntryLine, 0, len(inv.Transactions)),
	}
	if inv.Type == accounting.InvoiceTypeExpense {
		doc.Title = "Purchase Invoice"
		doc.PartyLabel = "Supplier"
	}

	for _, tx := range inv.Transactions {
		line := EntryLine{
			Description: tx.Description,
			Amount:      tx.Amount,
			IsDebit:     tx.Type == accounting.TransactionTypeDebit,
		}
		if acc, ok := accounts[tx.AccountID]; ok {
			line.AccountCode = acc.Code
			line.AccountName = acc.Name
		}
		doc.Entries = append(doc.Entries, line)
	}
	return doc
}

// TemplateEngine renders documents with html/template and formatting helpers
type TemplateEngine struct {
	invoice *template.Template
}

// NewTemplateEngine parses the embedded templates
func NewTemplateEngine() (*TemplateEngine, error) {
	tmpl, err := template.New("invoice").Funcs(templateFuncs()).Parse(invoiceTemplateSource)
	if err != nil {
		return nil, NewRenderError(ErrCodeTemplateFailed, "failed to parse invoice template", err)
	}
	return &TemplateEngine{invoice: tmpl}, nil
}

// RenderInvoiceHTML executes the invoice template
func (e *TemplateEngine) RenderInvoiceHTML(doc InvoiceDocument) (string, error) {
	var buf bytes.Buffer
	if err := e.invoice.Execute(&buf, doc); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "failed to execute invoice template", err)
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
		"title":       titleCase,
		"upper":       strings.ToUpper,
	}
}

// formatMoney formats with thousand separators and two decimals.
// Example: 1234.5 -> "$1,234.50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, decPart, _ := strings.Cut(d.StringFixed(2), ".")

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return sign + "$" + result.String() + "." + decPart
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// InvoicePrinter turns invoices into PDF documents
type InvoicePrinter struct {
	company  CompanyInfo
	engine   *TemplateEngine
	renderer PDFRenderer
}

// NewInvoicePrinter creates an InvoicePrinter
func NewInvoicePrinter(company CompanyInfo, engine *TemplateEngine, renderer PDFRenderer) *InvoicePrinter {
	return &InvoicePrinter{
		company:  company,
		engine:   engine,
		renderer: renderer,
	}
}

// PrintInvoice renders inv as a PDF
func (p *InvoicePrinter) PrintInvoice(ctx context.Context, inv *accounting.Invoice, accounts map[uuid.UUID]*accounting.Account) ([]byte, error) {
	html, err := p.engine.RenderInvoiceHTML(NewInvoiceDocument(p.company, inv, accounts))
	if err != nil {
		return nil, err
	}
	result, err := p.renderer.Render(ctx, &RenderRequest{HTML: html, Title: inv.Number})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}
