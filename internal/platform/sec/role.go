// Copyright (c) 2026 Ambutrack. All rights reserved.

package sec

// # Account Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// Top of the hierarchy; the only role that may exist without an owner
	RoleSiteAdmin Role = "site_admin"

	// Manages the user accounts it created
	RoleAdmin Role = "admin"

	// Default role for operational staff; cannot create accounts
	RoleUser Role = "user"
)

// ParseRole converts a stored string into a [Role].
// The second return value is false for unknown values.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleSiteAdmin, RoleAdmin, RoleUser:
		return Role(value), true
	default:
		return "", false
	}
}

// # Ownership Hierarchy

// CanOwn reports whether an account with role r may create and own an
// account with the given subject role.
//
// The hierarchy is strictly two-level: a site_admin owns admins and an
// admin owns users. Nothing else is permitted, including self-ownership
// and role elevation.
func (r Role) CanOwn(subject Role) bool {
	switch {
	case r == RoleSiteAdmin && subject == RoleAdmin:
		return true
	case r == RoleAdmin && subject == RoleUser:
		return true
	default:
		return false
	}
}
