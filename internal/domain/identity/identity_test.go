package identity_test

import (
	"errors"
	"testing"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRole_Permissions(t *testing.T) {
	role, err := identity.NewRole("Accountant", "", []string{"contabilidad:write", "contabilidad:read", "contabilidad:read"})
	require.NoError(t, err)
	assert.Equal(t, []string{"contabilidad:read", "contabilidad:write"}, role.Permissions)

	_, err = identity.NewRole("Broken", "", []string{"ventas:read"})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	_, err = identity.NewRole(" ", "", nil)
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestNewUser(t *testing.T) {
	roleID := uuid.New()
	user, err := identity.NewUser("Ana", " Ana@Example.COM ", "secret1", roleID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.True(t, user.IsActive)
	assert.True(t, user.VerifyPassword("secret1"))
	assert.False(t, user.VerifyPassword("secret2"))
	assert.NotEqual(t, "secret1", user.PasswordHash)
}

func TestNewUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		roleID   uuid.UUID
		field    string
	}{
		{"missing name", "", "a@b.co", "secret1", uuid.New(), "name"},
		{"missing email", "Ana", "", "secret1", uuid.New(), "email"},
		{"bad email", "Ana", "ana@", "secret1", uuid.New(), "email"},
		{"short password", "Ana", "a@b.co", "12345", uuid.New(), "password"},
		{"missing password", "Ana", "a@b.co", "", uuid.New(), "password"},
		{"missing role", "Ana", "a@b.co", "secret1", uuid.Nil, "roleId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := identity.NewUser(tt.userName, tt.email, tt.password, tt.roleID)
			var de *shared.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.field, de.Details[0].Field)
		})
	}
}

func TestHasCapability(t *testing.T) {
	warehouse, err := identity.NewRole("Warehouse", "", []string{"almacen:read", "almacen:write"})
	require.NoError(t, err)
	admin, err := identity.NewRole("Admin", "", nil)
	require.NoError(t, err)

	clerk := &identity.User{IsActive: true, Role: warehouse}
	boss := &identity.User{IsActive: true, Role: admin}
	disabledBoss := &identity.User{IsActive: false, Role: admin}
	noRole := &identity.User{IsActive: true}

	tests := []struct {
		name       string
		subject    identity.Subject
		capability identity.Capability
		want       bool
	}{
		{"granted permission", clerk, identity.CapabilityInventoryWrite, true},
		{"missing permission", clerk, identity.CapabilityAccountingRead, false},
		{"admin holds everything", boss, identity.CapabilityUsersDelete, true},
		{"disabled user holds nothing", disabledBoss, identity.CapabilityDashboardRead, false},
		{"user without role", noRole, identity.CapabilityDashboardRead, false},
		{"nil subject", nil, identity.CapabilityDashboardRead, false},
	}
	checker := identity.DefaultCapabilityChecker{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.HasCapability(tt.subject, tt.capability))
			assert.Equal(t, tt.want, checker.HasCapability(tt.subject, tt.capability))
		})
	}

	assert.True(t, identity.HasAnyCapability(clerk, identity.CapabilityUsersRead, identity.CapabilityInventoryRead))
	assert.Len(t, boss.PermissionList(), len(identity.AllCapabilities))
}
