//go:build integration

package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	appinventory "github.com/erp/erpcore/internal/application/inventory"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/erp/erpcore/internal/infrastructure/event"
	"github.com/erp/erpcore/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type accountingServices struct {
	accounts *appaccounting.AccountService
	invoices *appaccounting.InvoiceService
	reports  *appaccounting.ReportService
}

func newAccountingServices(db *gorm.DB) accountingServices {
	accountRepo := persistence.NewGormAccountRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	bus := event.NewInMemoryEventBus(zap.NewNop())
	return accountingServices{
		accounts: appaccounting.NewAccountService(accountRepo, txRepo, bus, zap.NewNop()),
		invoices: appaccounting.NewInvoiceService(appaccounting.InvoiceServiceDeps{
			Invoices: persistence.NewGormInvoiceRepository(db),
			Accounts: accountRepo,
			Ledger:   txRepo,
			Events:   bus,
		}),
		reports: appaccounting.NewReportService(accountRepo, txRepo, nil),
	}
}

func accountByCode(t *testing.T, svc *appaccounting.AccountService, code string) appaccounting.AccountResponse {
	t.Helper()
	all, err := svc.List(context.Background(), "", false)
	require.NoError(t, err)
	for _, a := range all {
		if a.Code == code {
			return a
		}
	}
	t.Fatalf("account %s not seeded", code)
	return appaccounting.AccountResponse{}
}

func TestInvoice_PostsBalancedEntries(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountingServices(db)
	ctx := context.Background()

	inv, err := svc.invoices.Create(ctx, appaccounting.CreateInvoiceRequest{
		Type:       "INCOME",
		Date:       "2024-03-15",
		ClientName: "Acme Corp",
		Subtotal:   decimal.NewFromInt(100),
		Tax:        decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(115).Equal(inv.Total))
	assert.Equal(t, "DRAFT", inv.Status)
	assert.NotEmpty(t, inv.Number)

	stored, err := svc.invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, stored.Transactions, 2)

	var debit, credit decimal.Decimal
	for _, tx := range stored.Transactions {
		switch tx.Type {
		case "DEBIT":
			debit = debit.Add(tx.Amount)
		case "CREDIT":
			credit = credit.Add(tx.Amount)
		}
	}
	assert.True(t, debit.Equal(credit), "debits %s != credits %s", debit, credit)

	cash, err := svc.accounts.Get(ctx, accountByCode(t, svc.accounts, "1105").ID)
	require.NoError(t, err)
	assert.Equal(t, "115.00", cash.Balance.StringFixed(2))

	sales, err := svc.accounts.Get(ctx, accountByCode(t, svc.accounts, "4135").ID)
	require.NoError(t, err)
	assert.Equal(t, "115.00", sales.Balance.StringFixed(2))

	statement, err := svc.reports.IncomeStatement(ctx, appaccounting.IncomeStatementQuery{
		StartDate: "2024-03-01", EndDate: "2024-03-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "115.00", statement.TotalIncome.StringFixed(2))
}

func TestInvoice_MissingDefaultAccountStoresNothing(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountingServices(db)
	ctx := context.Background()

	expense := accountByCode(t, svc.accounts, "5195")
	_, err := svc.accounts.Deactivate(ctx, expense.ID)
	require.NoError(t, err)

	_, err = svc.invoices.Create(ctx, appaccounting.CreateInvoiceRequest{
		Number:     "BILL-1",
		Type:       "EXPENSE",
		Date:       "2024-03-15",
		ClientName: "Paper Supplies",
		Subtotal:   decimal.NewFromInt(40),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, shared.CodeMissingAccountConfiguration, domainErr.Code)

	var invoices, transactions int64
	require.NoError(t, db.Table("invoices").Count(&invoices).Error)
	require.NoError(t, db.Table("transactions").Count(&transactions).Error)
	assert.Zero(t, invoices)
	assert.Zero(t, transactions)
}

func TestInvoice_DuplicateNumber(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountingServices(db)
	ctx := context.Background()

	req := appaccounting.CreateInvoiceRequest{
		Number: "INV-9", Type: "INCOME", Date: "2024-03-15",
		ClientName: "Acme Corp", Subtotal: decimal.NewFromInt(10),
	}
	_, err := svc.invoices.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.invoices.Create(ctx, req)
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
}

func TestBalanceSheet_StaysBalanced(t *testing.T) {
	db := newTestDB(t)
	svc := newAccountingServices(db)
	ctx := context.Background()

	for _, req := range []appaccounting.CreateInvoiceRequest{
		{Type: "INCOME", Date: "2024-03-10", ClientName: "Acme", Subtotal: decimal.NewFromInt(200), Tax: decimal.NewFromInt(38)},
		{Type: "EXPENSE", Date: "2024-03-12", ClientName: "Landlord", Subtotal: decimal.NewFromInt(90)},
	} {
		_, err := svc.invoices.Create(ctx, req)
		require.NoError(t, err)
	}

	sheet, err := svc.reports.BalanceSheet(ctx, appaccounting.BalanceSheetQuery{Date: "2024-03-31"})
	require.NoError(t, err)
	assert.True(t, sheet.IsBalanced(), "assets %s, liabilities %s, equity %s",
		sheet.TotalAssets, sheet.TotalLiabilities, sheet.TotalEquity)
	assert.Equal(t, "148.00", sheet.RetainedEarnings.StringFixed(2))
}

func TestMovements_ConcurrentOutNeverOversells(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	log := zap.NewNop()

	categoryRepo := persistence.NewGormCategoryRepository(db)
	supplierRepo := persistence.NewGormSupplierRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	movementRepo := persistence.NewGormMovementRepository(db)
	alertRepo := persistence.NewGormAlertRepository(db)

	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(appinventory.NewStockAlertHandler(productRepo, alertRepo, log))
	require.NoError(t, bus.Start(ctx))

	category, err := appinventory.NewCategoryService(categoryRepo, log).Create(ctx, appinventory.CategoryRequest{Name: "Hardware"})
	require.NoError(t, err)
	product, err := appinventory.NewProductService(productRepo, categoryRepo, supplierRepo, log).Create(ctx, appinventory.ProductRequest{
		SKU: "W-1", Name: "Widget", Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(6),
		CategoryID: category.ID, MinStock: 5,
	})
	require.NoError(t, err)

	movements := appinventory.NewMovementService(productRepo, movementRepo, bus, nil, log)
	userID := uuid.New()
	_, err = movements.Record(ctx, appinventory.RecordMovementRequest{
		ProductID: product.ID, Type: "IN", Quantity: 20, Reason: "Initial stock",
	}, userID)
	require.NoError(t, err)

	const workers = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := movements.Record(ctx, appinventory.RecordMovementRequest{
				ProductID: product.ID, Type: "OUT", Quantity: 3, Reason: "Order",
			}, userID)
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			var domainErr *shared.DomainError
			if assert.True(t, errors.As(err, &domainErr), "unexpected error %v", err) {
				assert.Contains(t, []string{shared.CodeInsufficientStock, shared.CodeInvalidState}, domainErr.Code)
			}
		}()
	}
	wg.Wait()

	stored, err := productRepo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 20-3*succeeded, stored.CurrentStock)
	assert.GreaterOrEqual(t, stored.CurrentStock, 0)

	var outCount int64
	require.NoError(t, db.Table("inventory_movements").Where("type = ?", "OUT").Count(&outCount).Error)
	assert.Equal(t, int64(succeeded), outCount)

	if stored.CurrentStock <= 5 {
		open := false
		alerts, err := appinventory.NewAlertService(alertRepo, log).List(ctx, appinventory.AlertListFilter{Resolved: &open})
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, "LOW_STOCK", alerts[0].Type)
	}
}
