// Package entity contains the core business objects of the project.
package entity

// UserStatus represents the lifecycle state of a user account.
type UserStatus string

const (
	StatusPending   UserStatus = "PENDING"
	StatusActive    UserStatus = "ACTIVE"
	StatusInactive  UserStatus = "INACTIVE"
	StatusSuspended UserStatus = "SUSPENDED"
	StatusBanned    UserStatus = "BANNED"
	// StatusDeleted marks a soft-deleted account. It is terminal: once set,
	// no further status transition is permitted. The record itself is never
	// physically removed.
	StatusDeleted UserStatus = "DELETED"
)

// String returns the string representation of the UserStatus.
func (s UserStatus) String() string {
	return string(s)
}

// IsValid checks if the UserStatus is a valid value.
func (s UserStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive, StatusSuspended, StatusBanned, StatusDeleted:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether a status change from s to next is allowed.
// Every transition is permitted except leaving DELETED.
func (s UserStatus) CanTransitionTo(next UserStatus) bool {
	if s == StatusDeleted {
		return next == StatusDeleted
	}

	return next.IsValid()
}
