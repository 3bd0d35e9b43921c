// Package entity contains the core business objects of the project.
package entity

// Role represents the privilege level of a user account.
type Role string

const (
	// RoleUser is the default role for every registered account.
	RoleUser Role = "USER"
	// RoleAdmin can manage users and course content.
	RoleAdmin Role = "ADMIN"
	// RoleOwner has every admin capability plus owner-only operations.
	RoleOwner Role = "OWNER"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleOwner:
		return true
	default:
		return false
	}
}

// Permission is a single capability a role may exercise.
type Permission string

const (
	PermissionRead   Permission = "READ"
	PermissionWrite  Permission = "WRITE"
	PermissionCheck  Permission = "CHECK"
	PermissionManage Permission = "MANAGE"
	PermissionCreate Permission = "CREATE"
	PermissionUpdate Permission = "UPDATE"
	PermissionDelete Permission = "DELETE"
	PermissionOwn    Permission = "OWN"
)

// rolePermissions is the static role -> capability table, fixed for the
// lifetime of the process. Each role strictly contains the one below it;
// OWN is the single owner-only capability.
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleUser: permissionSet(
		PermissionRead, PermissionWrite, PermissionCheck,
	),
	RoleAdmin: permissionSet(
		PermissionRead, PermissionWrite, PermissionCheck,
		PermissionManage, PermissionCreate, PermissionUpdate, PermissionDelete,
	),
	RoleOwner: permissionSet(
		PermissionRead, PermissionWrite, PermissionCheck,
		PermissionManage, PermissionCreate, PermissionUpdate, PermissionDelete,
		PermissionOwn,
	),
}

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}

	return set
}

// Allows reports whether the given role grants the given permission.
// It is a pure lookup with no state; unknown roles grant nothing.
func Allows(role Role, permission Permission) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	_, ok = perms[permission]

	return ok
}
