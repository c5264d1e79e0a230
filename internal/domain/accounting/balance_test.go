package accounting_test

import (
	"testing"
	"time"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(t *testing.T, account *accounting.Account, txType accounting.TransactionType, amount string, date time.Time) *accounting.Transaction {
	t.Helper()
	tx, err := accounting.NewTransaction(account.ID, txType, dec(amount), date, "entry")
	require.NoError(t, err)
	return tx
}

func TestCurrentMonth(t *testing.T) {
	now := time.Date(2024, 12, 17, 15, 4, 5, 0, time.UTC)
	p := accounting.CurrentMonth(now)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), p.End)
	assert.True(t, p.Contains(p.Start))
	assert.False(t, p.Contains(p.End))
}

func TestDateRange(t *testing.T) {
	p := accounting.DateRange(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC))
	assert.True(t, p.Contains(time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
}

func TestBalanceAggregator_Balance(t *testing.T) {
	agg := accounting.NewBalanceAggregator()
	cash := mustAccount(t, "1000", accounting.AccountTypeAsset)
	payable := mustAccount(t, "2000", accounting.AccountTypeLiability)
	now := time.Now()

	txs := []*accounting.Transaction{
		entry(t, cash, accounting.TransactionTypeDebit, "100", now),
		entry(t, cash, accounting.TransactionTypeCredit, "30.50", now),
		entry(t, payable, accounting.TransactionTypeCredit, "40", now),
		entry(t, payable, accounting.TransactionTypeDebit, "15", now),
	}

	assert.Equal(t, "69.50", agg.Balance(cash, txs).StringFixed(2))
	assert.Equal(t, "25.00", agg.Balance(payable, txs).StringFixed(2))

	lines := agg.Balances([]*accounting.Account{payable, cash}, txs)
	require.Len(t, lines, 2)
	assert.Equal(t, "1000", lines[0].Code)
	assert.Equal(t, "2000", lines[1].Code)
}

func TestBalanceAggregator_Summarize(t *testing.T) {
	agg := accounting.NewBalanceAggregator()
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	period := accounting.CurrentMonth(now)
	lastMonth := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)

	cash := mustAccount(t, "1000", accounting.AccountTypeAsset)
	sales := mustAccount(t, "4000", accounting.AccountTypeIncome)
	rent := mustAccount(t, "6000", accounting.AccountTypeExpense)
	payable := mustAccount(t, "2000", accounting.AccountTypeLiability)
	old := mustAccount(t, "1900", accounting.AccountTypeAsset)
	require.NoError(t, old.Deactivate())

	txs := []*accounting.Transaction{
		entry(t, cash, accounting.TransactionTypeDebit, "500", now),
		entry(t, sales, accounting.TransactionTypeCredit, "500", now),
		entry(t, rent, accounting.TransactionTypeDebit, "120", now),
		entry(t, payable, accounting.TransactionTypeCredit, "120", now),
		// refund on income is a debit and does not count as income
		entry(t, sales, accounting.TransactionTypeDebit, "50", now),
		// outside the period
		entry(t, sales, accounting.TransactionTypeCredit, "1000", lastMonth),
		entry(t, rent, accounting.TransactionTypeDebit, "300", lastMonth),
	}

	s := agg.Summarize([]*accounting.Account{cash, sales, rent, payable, old}, txs, period)
	assert.Equal(t, "500.00", s.TotalIncome.StringFixed(2))
	assert.Equal(t, "120.00", s.TotalExpenses.StringFixed(2))
	assert.Equal(t, "380.00", s.NetProfit.StringFixed(2))
	require.Len(t, s.AccountsSummary, 4)

	byCode := map[string]string{}
	for _, l := range s.AccountsSummary {
		byCode[l.Code] = l.Balance.StringFixed(2)
	}
	assert.Equal(t, "1450.00", byCode["4000"])
	assert.Equal(t, "420.00", byCode["6000"])
	assert.NotContains(t, byCode, "1900")
}

func TestBalanceAggregator_IgnoresUnknownAccounts(t *testing.T) {
	agg := accounting.NewBalanceAggregator()
	cash := mustAccount(t, "1000", accounting.AccountTypeAsset)
	stray, err := accounting.NewTransaction(uuid.New(), accounting.TransactionTypeDebit, dec("10"), time.Now(), "x")
	require.NoError(t, err)

	lines := agg.Balances([]*accounting.Account{cash}, []*accounting.Transaction{stray})
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Balance.IsZero())
}

func TestBalanceAggregator_ReportsBalance(t *testing.T) {
	agg := accounting.NewBalanceAggregator()
	cash := mustAccount(t, "1000", accounting.AccountTypeAsset)
	payable := mustAccount(t, "2000", accounting.AccountTypeLiability)
	capital := mustAccount(t, "3000", accounting.AccountTypeEquity)
	sales := mustAccount(t, "4000", accounting.AccountTypeIncome)
	rent := mustAccount(t, "6000", accounting.AccountTypeExpense)

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	txs := []*accounting.Transaction{
		entry(t, cash, accounting.TransactionTypeDebit, "1000", jan),
		entry(t, capital, accounting.TransactionTypeCredit, "1000", jan),
		entry(t, cash, accounting.TransactionTypeDebit, "300", jan),
		entry(t, sales, accounting.TransactionTypeCredit, "300", jan),
		entry(t, rent, accounting.TransactionTypeDebit, "200", feb),
		entry(t, payable, accounting.TransactionTypeCredit, "200", feb),
	}
	accounts := []*accounting.Account{cash, payable, capital, sales, rent}

	stmt := agg.IncomeStatement(accounts, txs, accounting.DateRange(jan, feb))
	assert.Equal(t, "300.00", stmt.TotalIncome.StringFixed(2))
	assert.Equal(t, "200.00", stmt.TotalExpenses.StringFixed(2))
	assert.Equal(t, "100.00", stmt.NetIncome.StringFixed(2))

	janOnly := agg.IncomeStatement(accounts, txs, accounting.DateRange(jan, jan))
	assert.True(t, janOnly.TotalExpenses.IsZero())

	sheet := agg.BalanceSheet(accounts, txs, feb)
	assert.Equal(t, "1300.00", sheet.TotalAssets.StringFixed(2))
	assert.Equal(t, "200.00", sheet.TotalLiabilities.StringFixed(2))
	assert.Equal(t, "100.00", sheet.RetainedEarnings.StringFixed(2))
	assert.Equal(t, "1100.00", sheet.TotalEquity.StringFixed(2))
	assert.True(t, sheet.IsBalanced())

	early := agg.BalanceSheet(accounts, txs, jan)
	assert.Equal(t, "0.00", early.TotalLiabilities.StringFixed(2))
	assert.True(t, early.IsBalanced())
}
