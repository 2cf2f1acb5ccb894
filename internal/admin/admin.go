// Package admin implements the operator allowlist. Operator login is a
// deliberate client of nothing: it never touches the hosted backend, so the
// admin surface stays reachable even when the backend is misconfigured.
package admin

import (
	"crypto/subtle"
	"errors"
)

// Permission gates one section of the admin surface.
type Permission string

const (
	PermManageUsers    Permission = "manage_users"
	PermViewAntiCheat  Permission = "view_anticheat"
	PermProcessRefunds Permission = "process_refunds"
	PermAdjustWallets  Permission = "adjust_wallets"
)

// Role is a named permission bundle.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleModerator  Role = "moderator"
	RoleSupport    Role = "support"
)

// rolePermissions is the static role-to-permission lookup.
var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {PermManageUsers, PermViewAntiCheat, PermProcessRefunds, PermAdjustWallets},
	RoleModerator:  {PermManageUsers, PermViewAntiCheat},
	RoleSupport:    {PermProcessRefunds},
}

// Credential is one operator entry in the allowlist.
type Credential struct {
	Username string
	Password string
	Role     Role
}

// ErrUnauthorized is returned for unknown operators or wrong passwords.
var ErrUnauthorized = errors.New("unauthorized")

// Table is the injectable operator allowlist. It is built from configuration
// rather than a source literal so it can be swapped for a real credential
// store without touching call sites.
type Table struct {
	byUsername map[string]Credential
}

// NewTable builds a lookup table from the configured credentials.
func NewTable(creds []Credential) *Table {
	byUsername := make(map[string]Credential, len(creds))
	for _, c := range creds {
		byUsername[c.Username] = c
	}
	return &Table{byUsername: byUsername}
}

// Authenticate checks a username/password pair against the allowlist and
// returns the operator's role.
func (t *Table) Authenticate(username, password string) (Role, error) {
	cred, ok := t.byUsername[username]
	if !ok {
		return "", ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(cred.Password), []byte(password)) != 1 {
		return "", ErrUnauthorized
	}
	return cred.Role, nil
}

// PermissionsFor returns the permission set for a role. Unknown roles get
// nothing.
func PermissionsFor(role Role) []Permission {
	return rolePermissions[role]
}

// HasPermission reports whether a role carries the given permission.
func HasPermission(role Role, perm Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == perm {
			return true
		}
	}
	return false
}
