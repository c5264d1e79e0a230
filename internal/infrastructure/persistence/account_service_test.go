package persistence

import (
	"context"
	"testing"

	appaccounting "github.com/erp/erpcore/internal/application/accounting"
	"github.com/erp/erpcore/internal/domain/accounting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAccountService_CreateDefault_PersistsFlag(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAccountRepository(db)
	svc := appaccounting.NewAccountService(repo, NewGormTransactionRepository(db), nil, zaptest.NewLogger(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, appaccounting.CreateAccountRequest{
		Code: "1000", Name: "Cash", Type: "ASSET", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	stored, err := repo.FindByCode(ctx, "1000")
	require.NoError(t, err)
	assert.True(t, stored.IsDefault)

	second, err := svc.Create(ctx, appaccounting.CreateAccountRequest{
		Code: "1100", Name: "Bank", Type: "ASSET", IsDefault: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	stored, err = repo.FindByCode(ctx, "1000")
	require.NoError(t, err)
	assert.False(t, stored.IsDefault)

	def, err := repo.DefaultFor(ctx, accounting.AccountTypeAsset)
	require.NoError(t, err)
	assert.Equal(t, "1100", def.Code)

	_, err = svc.Create(ctx, appaccounting.CreateAccountRequest{Code: "1200", Name: "Receivables", Type: "ASSET"})
	require.NoError(t, err)

	def, err = repo.DefaultFor(ctx, accounting.AccountTypeAsset)
	require.NoError(t, err)
	assert.Equal(t, "1100", def.Code)
}
