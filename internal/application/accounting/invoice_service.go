package accounting

import (
	"context"
	"errors"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/domain/shared/valueobject"
	"github.com/erp/erpcore/internal/infrastructure/printing"
	"github.com/erp/erpcore/internal/infrastructure/storage"
	"github.com/erp/erpcore/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// InvoicePrinter renders an invoice as a PDF document
type InvoicePrinter interface {
	PrintInvoice(ctx context.Context, inv *accounting.Invoice, accounts map[uuid.UUID]*accounting.Account) ([]byte, error)
}

// InvoiceService creates invoices and drives their lifecycle
type InvoiceService struct {
	invoiceRepo accounting.InvoiceRepository
	accountRepo accounting.AccountRepository
	ledger      accounting.Ledger
	deriver     *accounting.InvoiceDeriver
	printer     InvoicePrinter
	documents   storage.DocumentStore
	events      shared.EventPublisher
	metrics     *telemetry.BusinessMetrics
	location    *time.Location
	logger      *zap.Logger
}

// InvoiceServiceDeps groups the collaborators of InvoiceService.
// Printer, Documents, Events and Metrics are optional.
type InvoiceServiceDeps struct {
	Invoices  accounting.InvoiceRepository
	Accounts  accounting.AccountRepository
	Ledger    accounting.Ledger
	Printer   InvoicePrinter
	Documents storage.DocumentStore
	Events    shared.EventPublisher
	Metrics   *telemetry.BusinessMetrics
	Location  *time.Location
	Logger    *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(deps InvoiceServiceDeps) *InvoiceService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: deps.Invoices,
		accountRepo: deps.Accounts,
		ledger:      deps.Ledger,
		deriver:     accounting.NewInvoiceDeriver(deps.Accounts),
		printer:     deps.Printer,
		documents:   deps.Documents,
		events:      deps.Events,
		metrics:     deps.Metrics,
		location:    loc,
		logger:      logger,
	}
}

// Create validates the invoice, derives its two ledger entries and stores
// the invoice together with them. Nothing is stored when either default
// account is missing.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (resp *InvoiceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "InvoiceService", "Create",
		attribute.String("invoice.type", req.Type))
	defer func() { telemetry.EndSpan(span, err) }()

	date, err := ParseDate("date", req.Date, s.location)
	if err != nil {
		return nil, err
	}
	var dueDate *time.Time
	if req.DueDate != "" {
		d, err := ParseDate("dueDate", req.DueDate, s.location)
		if err != nil {
			return nil, err
		}
		dueDate = &d
	}

	if req.Number != "" {
		exists, err := s.invoiceRepo.ExistsByNumber(ctx, req.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Invoice with this number already exists")
		}
	}

	invoice, err := accounting.NewInvoice(req.Number, accounting.InvoiceType(req.Type), date, req.ClientName, req.Subtotal, req.Tax)
	if err != nil {
		return nil, err
	}
	if err := invoice.SetClientDetails(req.ClientEmail, req.ClientTaxID); err != nil {
		return nil, err
	}
	if err := invoice.SetDueDate(dueDate); err != nil {
		return nil, err
	}

	pair, err := s.deriver.Derive(ctx, invoice)
	if err != nil {
		s.logger.Warn("Invoice derivation failed",
			zap.String("number", invoice.Number),
			zap.String("type", invoice.Type.String()),
			zap.Error(err))
		return nil, err
	}
	if err := s.ledger.PostInvoiceTransactions(ctx, invoice, pair); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.events, s.logger, invoice)
	s.metrics.RecordInvoiceCreated(ctx, invoice.Type.String(), invoice.Total)
	s.logger.Info("Invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("number", invoice.Number),
		zap.String("type", invoice.Type.String()),
		zap.String("total", valueobject.FormatMoney(invoice.Total)))

	result := ToInvoiceResponse(invoice)
	return &result, nil
}

// Get returns an invoice with its ledger entries
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := ToInvoiceResponse(invoice)
	if len(invoice.Transactions) > 0 {
		entries, err := transactionsWithAccounts(ctx, s.accountRepo, invoice.Transactions)
		if err != nil {
			return nil, err
		}
		result.Transactions = entries
	}
	return &result, nil
}

// List returns a page of invoices, newest first
func (s *InvoiceService) List(ctx context.Context, query InvoiceListFilter) (*shared.Paginated[InvoiceResponse], error) {
	filter := accounting.InvoiceFilter{Filter: pageOf(query.Page, query.Limit)}
	filter.Search = query.Search
	if query.Type != "" {
		t := accounting.InvoiceType(query.Type)
		filter.Type = &t
	}
	if query.Status != "" {
		st := accounting.InvoiceStatus(query.Status)
		filter.Status = &st
	}

	invoices, total, err := s.invoiceRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		items = append(items, ToInvoiceResponse(inv))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateStatus moves the invoice along its lifecycle. Ledger entries are
// never touched, cancellation included.
func (s *InvoiceService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateInvoiceStatusRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := invoice.Status
	if err := invoice.TransitionTo(accounting.InvoiceStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, invoice); err != nil {
		return nil, err
	}

	publishEvents(ctx, s.events, s.logger, invoice)
	s.metrics.RecordInvoiceStatus(ctx, invoice.Status.String())
	s.logger.Info("Invoice status changed",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("from", previous.String()),
		zap.String("to", invoice.Status.String()))

	result := ToInvoiceResponse(invoice)
	return &result, nil
}

// RenderPDF prints the invoice and archives a copy in the document store.
// A failed archive does not fail the download.
func (s *InvoiceService) RenderPDF(ctx context.Context, id uuid.UUID) (pdf *InvoicePDF, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "InvoiceService", "RenderPDF")
	defer func() { telemetry.EndSpan(span, err) }()

	if s.printer == nil {
		return nil, shared.NewDomainError(shared.CodeUnavailable, "PDF rendering is disabled")
	}

	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	accounts := make(map[uuid.UUID]*accounting.Account, len(invoice.Transactions))
	for _, tx := range invoice.Transactions {
		if _, ok := accounts[tx.AccountID]; ok {
			continue
		}
		account, err := s.accountRepo.FindByID(ctx, tx.AccountID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		accounts[tx.AccountID] = account
	}

	data, err := s.printer.PrintInvoice(ctx, invoice, accounts)
	if err != nil {
		var renderErr *printing.RenderError
		if errors.As(err, &renderErr) && renderErr.Code == printing.ErrCodeDisabled {
			return nil, shared.NewDomainError(shared.CodeUnavailable, "PDF rendering is disabled")
		}
		s.logger.Error("Failed to render invoice PDF",
			zap.String("invoice_id", invoice.ID.String()),
			zap.Error(err))
		return nil, err
	}

	key := storage.InvoicePDFKey(invoice.Number)
	if s.documents != nil {
		if err := s.documents.Put(ctx, key, "application/pdf", data); err != nil {
			s.logger.Warn("Failed to archive invoice PDF", zap.String("key", key), zap.Error(err))
		}
	}

	return &InvoicePDF{FileName: invoice.Number + ".pdf", Data: data}, nil
}
