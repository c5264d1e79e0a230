package accounting

import (
	"context"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
)

// ReportService produces the income statement and the balance sheet
type ReportService struct {
	accountRepo accounting.AccountRepository
	txRepo      accounting.TransactionRepository
	aggregator  *accounting.BalanceAggregator
	location    *time.Location
	now         func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	accountRepo accounting.AccountRepository,
	txRepo accounting.TransactionRepository,
	loc *time.Location,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		aggregator:  accounting.NewBalanceAggregator(),
		location:    loc,
		now:         time.Now,
	}
}

// IncomeStatement reports income and expenses between two dates, both
// inclusive. Missing bounds default to the current month.
func (s *ReportService) IncomeStatement(ctx context.Context, query IncomeStatementQuery) (*IncomeStatementResponse, error) {
	month := accounting.CurrentMonth(s.now().In(s.location))
	start, end := month.Start, month.End.AddDate(0, 0, -1)

	var err error
	if query.StartDate != "" {
		if start, err = ParseDate("startDate", query.StartDate, s.location); err != nil {
			return nil, err
		}
	}
	if query.EndDate != "" {
		if end, err = ParseDate("endDate", query.EndDate, s.location); err != nil {
			return nil, err
		}
	}
	if end.Before(start) {
		return nil, shared.NewValidationError("endDate", "End date cannot be before start date")
	}

	period := accounting.DateRange(start.In(s.location), end.In(s.location))
	accounts, err := s.accountRepo.FindAll(ctx, accounting.AccountFilter{})
	if err != nil {
		return nil, err
	}
	txs, err := s.txRepo.FindBetween(ctx, period.Start, period.End)
	if err != nil {
		return nil, err
	}

	return &IncomeStatementResponse{
		StartDate:       period.Start,
		EndDate:         period.End.AddDate(0, 0, -1),
		IncomeStatement: s.aggregator.IncomeStatement(accounts, txs, period),
	}, nil
}

// BalanceSheet reports positions as of the end of the given day, today by
// default
func (s *ReportService) BalanceSheet(ctx context.Context, query BalanceSheetQuery) (*accounting.BalanceSheet, error) {
	asOf := s.now().In(s.location)
	if query.Date != "" {
		d, err := ParseDate("date", query.Date, s.location)
		if err != nil {
			return nil, err
		}
		asOf = d.In(s.location)
	}
	asOf = time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, s.location)

	accounts, err := s.accountRepo.FindAll(ctx, accounting.AccountFilter{})
	if err != nil {
		return nil, err
	}
	txs, err := s.txRepo.FindUpTo(ctx, asOf.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	sheet := s.aggregator.BalanceSheet(accounts, txs, asOf)
	return &sheet, nil
}
