package accounting

import (
	"context"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
)

const (
	recentTransactionsLimit = 10
	pendingInvoicesLimit    = 10
)

// DashboardService builds the accounting overview of the current month
type DashboardService struct {
	accountRepo accounting.AccountRepository
	txRepo      accounting.TransactionRepository
	invoiceRepo accounting.InvoiceRepository
	aggregator  *accounting.BalanceAggregator
	location    *time.Location
	now         func() time.Time
}

// NewDashboardService creates a new DashboardService. The current month is
// computed in loc.
func NewDashboardService(
	accountRepo accounting.AccountRepository,
	txRepo accounting.TransactionRepository,
	invoiceRepo accounting.InvoiceRepository,
	loc *time.Location,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		invoiceRepo: invoiceRepo,
		aggregator:  accounting.NewBalanceAggregator(),
		location:    loc,
		now:         time.Now,
	}
}

// Get returns month totals, running balances of every active account, the
// latest entries and the open invoices
func (s *DashboardService) Get(ctx context.Context) (*DashboardResponse, error) {
	period := accounting.CurrentMonth(s.now().In(s.location))

	// inactive accounts still count toward the month totals
	accounts, err := s.accountRepo.FindAll(ctx, accounting.AccountFilter{})
	if err != nil {
		return nil, err
	}
	// balances run from the beginning of the ledger to the end of the month
	txs, err := s.txRepo.FindUpTo(ctx, period.End)
	if err != nil {
		return nil, err
	}
	summary := s.aggregator.Summarize(accounts, txs, period)

	recent, err := s.txRepo.FindRecent(ctx, recentTransactionsLimit)
	if err != nil {
		return nil, err
	}
	recentItems, err := transactionsWithAccounts(ctx, s.accountRepo, recent)
	if err != nil {
		return nil, err
	}

	pending, pendingCount, err := s.invoiceRepo.FindAll(ctx, accounting.InvoiceFilter{
		Filter:   shared.Filter{Page: 1, PageSize: pendingInvoicesLimit},
		Statuses: []accounting.InvoiceStatus{accounting.InvoiceStatusDraft, accounting.InvoiceStatusIssued},
	})
	if err != nil {
		return nil, err
	}
	pendingItems := make([]InvoiceResponse, 0, len(pending))
	for _, inv := range pending {
		pendingItems = append(pendingItems, ToInvoiceResponse(inv))
	}

	return &DashboardResponse{
		PeriodStart:         period.Start,
		PeriodEnd:           period.End,
		TotalIncome:         summary.TotalIncome,
		TotalExpenses:       summary.TotalExpenses,
		NetProfit:           summary.NetProfit,
		AccountsSummary:     summary.AccountsSummary,
		RecentTransactions:  recentItems,
		PendingInvoices:     pendingItems,
		PendingInvoiceCount: pendingCount,
	}, nil
}
