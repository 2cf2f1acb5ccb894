package admin_test

import (
	"testing"

	"github.com/mana-gg/arena/internal/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable() *admin.Table {
	return admin.NewTable([]admin.Credential{
		{Username: "root", Password: "hunter2", Role: admin.RoleSuperAdmin},
		{Username: "mod", Password: "modpass", Role: admin.RoleModerator},
		{Username: "helpdesk", Password: "refundsonly", Role: admin.RoleSupport},
	})
}

func TestAuthenticate(t *testing.T) {
	table := newTestTable()

	role, err := table.Authenticate("root", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, admin.RoleSuperAdmin, role)

	_, err = table.Authenticate("root", "wrong")
	assert.ErrorIs(t, err, admin.ErrUnauthorized)

	_, err = table.Authenticate("nobody", "hunter2")
	assert.ErrorIs(t, err, admin.ErrUnauthorized)
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, admin.HasPermission(admin.RoleSuperAdmin, admin.PermAdjustWallets))
	assert.True(t, admin.HasPermission(admin.RoleModerator, admin.PermViewAntiCheat))
	assert.False(t, admin.HasPermission(admin.RoleModerator, admin.PermProcessRefunds))
	assert.True(t, admin.HasPermission(admin.RoleSupport, admin.PermProcessRefunds))
	assert.False(t, admin.HasPermission(admin.RoleSupport, admin.PermManageUsers))
	assert.False(t, admin.HasPermission(admin.Role("ghost"), admin.PermManageUsers))

	assert.Len(t, admin.PermissionsFor(admin.RoleSuperAdmin), 4)
	assert.Empty(t, admin.PermissionsFor(admin.Role("ghost")))
}
