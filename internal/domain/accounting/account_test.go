package accounting_test

import (
	"errors"
	"testing"

	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		accName   string
		accType   accounting.AccountType
		wantField string
	}{
		{name: "valid", code: "1000", accName: "Cash", accType: accounting.AccountTypeAsset},
		{name: "missing code", code: "  ", accName: "Cash", accType: accounting.AccountTypeAsset, wantField: "code"},
		{name: "missing name", code: "1000", accName: "", accType: accounting.AccountTypeAsset, wantField: "name"},
		{name: "invalid type", code: "1000", accName: "Cash", accType: "BANK", wantField: "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := accounting.NewAccount(tt.code, tt.accName, tt.accType)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.True(t, account.IsActive)
				assert.False(t, account.IsDefault)
				assert.Len(t, account.GetDomainEvents(), 1)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, shared.ErrValidation))
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.wantField, de.Details[0].Field)
		})
	}
}

func TestAccountType_IsDebitNormal(t *testing.T) {
	assert.True(t, accounting.AccountTypeAsset.IsDebitNormal())
	assert.True(t, accounting.AccountTypeExpense.IsDebitNormal())
	assert.False(t, accounting.AccountTypeLiability.IsDebitNormal())
	assert.False(t, accounting.AccountTypeEquity.IsDebitNormal())
	assert.False(t, accounting.AccountTypeIncome.IsDebitNormal())
}

func TestAccount_DeactivateClearsDefault(t *testing.T) {
	account, err := accounting.NewAccount("1000", "Cash", accounting.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, account.MarkDefault())

	require.NoError(t, account.Deactivate())
	assert.False(t, account.IsActive)
	assert.False(t, account.IsDefault)

	err = account.Deactivate()
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	err = account.MarkDefault()
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	require.NoError(t, account.Activate())
	assert.True(t, account.IsActive)
}

func TestAccount_Update(t *testing.T) {
	account, err := accounting.NewAccount("1000", "Cash", accounting.AccountTypeAsset)
	require.NoError(t, err)

	require.NoError(t, account.Update("1001", "Petty cash", "  drawer  "))
	assert.Equal(t, "1001", account.Code)
	assert.Equal(t, "Petty cash", account.Name)
	assert.Equal(t, "drawer", account.Description)
	assert.Equal(t, accounting.AccountTypeAsset, account.Type)

	assert.Error(t, account.Update("", "x", ""))
}
