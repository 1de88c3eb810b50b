// Package authorization holds the caller roles understood by the issue core.
package authorization

import "strings"

type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleDeveloper UserRole = "DEVELOPER"
	RoleSupport   UserRole = "SUPPORT"
	RoleUser      UserRole = "USER"
	// RoleGuest is the implicit role of unauthenticated callers.
	RoleGuest UserRole = "GUEST"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDeveloper, RoleSupport, RoleUser, RoleGuest:
		return true
	}
	return false
}

// IsInternal reports whether the role may see internal-only comments and
// attachments.
func (r UserRole) IsInternal() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// IsStaff reports whether the role may see issues submitted by others.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleDeveloper || r == RoleSupport
}

// ParseUserRole is case-insensitive; unknown values map to RoleUser.
func ParseUserRole(s string) UserRole {
	role := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	if role.IsValid() {
		return role
	}
	return RoleUser
}
