package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for monetary amounts
const MoneyScale int32 = 2

// RoundMoney rounds an amount half away from zero to MoneyScale places
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(MoneyScale)
}

// SumMoney adds the amounts and rounds the result
func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return RoundMoney(total)
}

// ParseMoney parses a decimal string and rounds it to MoneyScale places
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string: %w", err)
	}
	return RoundMoney(d), nil
}

// FormatMoney renders an amount with exactly MoneyScale decimals
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyScale)
}
