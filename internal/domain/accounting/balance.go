package accounting

import (
	"sort"
	"time"

	"github.com/erp/erpcore/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Period is a half-open reporting window [Start, End)
type Period struct {
	Start time.Time
	End   time.Time
}

// CurrentMonth returns the calendar month containing now, in now's location
func CurrentMonth(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Period{Start: start, End: start.AddDate(0, 1, 0)}
}

// DateRange returns the period covering whole days from start through end
func DateRange(start, end time.Time) Period {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()).AddDate(0, 0, 1)
	return Period{Start: s, End: e}
}

// Contains reports whether t falls inside the period
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// AccountBalance is the signed balance of one account
type AccountBalance struct {
	AccountID uuid.UUID       `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      AccountType     `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
}

// DashboardSummary is the accounting overview for a period
type DashboardSummary struct {
	Period          Period           `json:"-"`
	TotalIncome     decimal.Decimal  `json:"totalIncome"`
	TotalExpenses   decimal.Decimal  `json:"totalExpenses"`
	NetProfit       decimal.Decimal  `json:"netProfit"`
	AccountsSummary []AccountBalance `json:"accountsSummary"`
}

// IncomeStatement reports income and expense account activity for a period
type IncomeStatement struct {
	Period        Period           `json:"-"`
	Income        []AccountBalance `json:"income"`
	Expenses      []AccountBalance `json:"expenses"`
	TotalIncome   decimal.Decimal  `json:"totalIncome"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
}

// BalanceSheet reports balance accounts as of a date. Earnings not yet
// closed to equity are shown as RetainedEarnings and counted in TotalEquity.
type BalanceSheet struct {
	AsOf             time.Time        `json:"date"`
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	RetainedEarnings decimal.Decimal  `json:"retainedEarnings"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
}

// IsBalanced reports whether assets equal liabilities plus equity
func (b BalanceSheet) IsBalanced() bool {
	return b.TotalAssets.Equal(b.TotalLiabilities.Add(b.TotalEquity))
}

// BalanceAggregator computes balances and summaries over a ledger snapshot.
// It is stateless and only reads its inputs.
type BalanceAggregator struct{}

// NewBalanceAggregator creates a BalanceAggregator
func NewBalanceAggregator() *BalanceAggregator {
	return &BalanceAggregator{}
}

// Balance returns the signed balance of account over txs.
// Entries of other accounts are ignored.
func (BalanceAggregator) Balance(account *Account, txs []*Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txs {
		if tx.AccountID == account.ID {
			balance = balance.Add(tx.SignedAmount(account.Type))
		}
	}
	return valueobject.RoundMoney(balance)
}

// Balances returns one AccountBalance per account, ordered by code
func (a BalanceAggregator) Balances(accounts []*Account, txs []*Transaction) []AccountBalance {
	sums := make(map[uuid.UUID]decimal.Decimal, len(accounts))
	types := make(map[uuid.UUID]AccountType, len(accounts))
	for _, acc := range accounts {
		sums[acc.ID] = decimal.Zero
		types[acc.ID] = acc.Type
	}
	for _, tx := range txs {
		t, ok := types[tx.AccountID]
		if !ok {
			continue
		}
		sums[tx.AccountID] = sums[tx.AccountID].Add(tx.SignedAmount(t))
	}

	result := make([]AccountBalance, 0, len(accounts))
	for _, acc := range accounts {
		result = append(result, AccountBalance{
			AccountID: acc.ID,
			Code:      acc.Code,
			Name:      acc.Name,
			Type:      acc.Type,
			Balance:   valueobject.RoundMoney(sums[acc.ID]),
		})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}

// Summarize builds the dashboard figures. Income is the sum of credits
// to INCOME accounts and expenses the sum of debits to EXPENSE accounts,
// both restricted to period. AccountsSummary holds all-time balances of
// the active accounts.
func (a BalanceAggregator) Summarize(accounts []*Account, txs []*Transaction, period Period) DashboardSummary {
	types := make(map[uuid.UUID]AccountType, len(accounts))
	active := make([]*Account, 0, len(accounts))
	for _, acc := range accounts {
		types[acc.ID] = acc.Type
		if acc.IsActive {
			active = append(active, acc)
		}
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if !period.Contains(tx.Date) {
			continue
		}
		switch {
		case types[tx.AccountID] == AccountTypeIncome && tx.Type == TransactionTypeCredit:
			income = income.Add(tx.Amount)
		case types[tx.AccountID] == AccountTypeExpense && tx.Type == TransactionTypeDebit:
			expenses = expenses.Add(tx.Amount)
		}
	}

	income = valueobject.RoundMoney(income)
	expenses = valueobject.RoundMoney(expenses)
	return DashboardSummary{
		Period:          period,
		TotalIncome:     income,
		TotalExpenses:   expenses,
		NetProfit:       income.Sub(expenses),
		AccountsSummary: a.Balances(active, txs),
	}
}

// IncomeStatement computes the signed balances of INCOME and EXPENSE
// accounts from entries dated inside period
func (a BalanceAggregator) IncomeStatement(accounts []*Account, txs []*Transaction, period Period) IncomeStatement {
	inPeriod := make([]*Transaction, 0, len(txs))
	for _, tx := range txs {
		if period.Contains(tx.Date) {
			inPeriod = append(inPeriod, tx)
		}
	}

	stmt := IncomeStatement{
		Period:   period,
		Income:   a.Balances(filterAccounts(accounts, AccountTypeIncome), inPeriod),
		Expenses: a.Balances(filterAccounts(accounts, AccountTypeExpense), inPeriod),
	}
	stmt.TotalIncome = sumBalances(stmt.Income)
	stmt.TotalExpenses = sumBalances(stmt.Expenses)
	stmt.NetIncome = stmt.TotalIncome.Sub(stmt.TotalExpenses)
	return stmt
}

// BalanceSheet computes balance account positions from entries dated on
// or before asOf
func (a BalanceAggregator) BalanceSheet(accounts []*Account, txs []*Transaction, asOf time.Time) BalanceSheet {
	cutoff := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location()).AddDate(0, 0, 1)
	upTo := make([]*Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.Before(cutoff) {
			upTo = append(upTo, tx)
		}
	}

	sheet := BalanceSheet{
		AsOf:        asOf,
		Assets:      a.Balances(filterAccounts(accounts, AccountTypeAsset), upTo),
		Liabilities: a.Balances(filterAccounts(accounts, AccountTypeLiability), upTo),
		Equity:      a.Balances(filterAccounts(accounts, AccountTypeEquity), upTo),
	}
	income := sumBalances(a.Balances(filterAccounts(accounts, AccountTypeIncome), upTo))
	expenses := sumBalances(a.Balances(filterAccounts(accounts, AccountTypeExpense), upTo))

	sheet.RetainedEarnings = income.Sub(expenses)
	sheet.TotalAssets = sumBalances(sheet.Assets)
	sheet.TotalLiabilities = sumBalances(sheet.Liabilities)
	sheet.TotalEquity = sumBalances(sheet.Equity).Add(sheet.RetainedEarnings)
	return sheet
}

func filterAccounts(accounts []*Account, accountType AccountType) []*Account {
	result := make([]*Account, 0)
	for _, acc := range accounts {
		if acc.Type == accountType {
			result = append(result, acc)
		}
	}
	return result
}

func sumBalances(lines []AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Balance)
	}
	return valueobject.RoundMoney(total)
}
