package persistence

import (
	"context"
	"testing"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormUserAndRoleRepositories(t *testing.T) {
	db := setupTestDB(t)
	roles := NewGormRoleRepository(db)
	users := NewGormUserRepository(db)
	ctx := context.Background()

	clerk, err := identity.NewRole("Clerk", "Warehouse clerk", []string{
		string(identity.CapabilityInventoryWrite),
		string(identity.CapabilityInventoryRead),
	})
	require.NoError(t, err)
	require.NoError(t, roles.Save(ctx, clerk))

	u, err := identity.NewUser("Ana", "Ana@Example.com", "secret123", clerk.ID)
	require.NoError(t, err)
	require.NoError(t, users.Save(ctx, u))

	t.Run("role permissions round trip", func(t *testing.T) {
		found, err := roles.FindByName(ctx, "clerk")
		require.NoError(t, err)
		assert.Equal(t, clerk.Permissions, found.Permissions)
	})

	t.Run("user is loaded with its role", func(t *testing.T) {
		found, err := users.FindByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		require.NotNil(t, found.Role)
		assert.Equal(t, "Clerk", found.RoleName())
		assert.True(t, found.VerifyPassword("secret123"))
		assert.True(t, identity.HasCapability(found, identity.CapabilityInventoryWrite))
		assert.False(t, identity.HasCapability(found, identity.CapabilityUsersRead))
	})

	t.Run("email uniqueness", func(t *testing.T) {
		exists, err := users.ExistsByEmail(ctx, "ANA@example.com", nil)
		require.NoError(t, err)
		assert.True(t, exists)

		dup, err := identity.NewUser("Other", "ana@example.com", "secret123", clerk.ID)
		require.NoError(t, err)
		assert.ErrorIs(t, users.Save(ctx, dup), shared.ErrAlreadyExists)
	})

	t.Run("count and delete", func(t *testing.T) {
		count, err := users.CountByRole(ctx, clerk.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		list, total, err := users.FindAll(ctx, identity.UserFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.NotNil(t, list[0].Role)

		require.NoError(t, users.Delete(ctx, u.ID))
		assert.ErrorIs(t, users.Delete(ctx, u.ID), shared.ErrNotFound)
	})
}
