package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "100.00"},
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"-3.335", "-3.34"},
		{"0.1", "0.10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := RoundMoney(decimal.RequireFromString(tt.in))
			assert.Equal(t, tt.want, FormatMoney(got))
		})
	}
}

func TestSumMoney(t *testing.T) {
	got := SumMoney(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.True(t, got.Equal(decimal.RequireFromString("0.3")))

	assert.True(t, SumMoney().IsZero())
}

func TestParseMoney(t *testing.T) {
	d, err := ParseMoney("19.999")
	require.NoError(t, err)
	assert.Equal(t, "20.00", FormatMoney(d))

	_, err = ParseMoney("abc")
	assert.Error(t, err)
}
