// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system: one account on the course platform.
// A user authenticates with a phone number (or a previously bound device
// identifier) plus a 4-digit PIN. The PIN is only ever stored as a bcrypt
// hash; the plaintext never leaves the registration/login/change-PIN flows.
type User struct {
	ID           uuid.UUID  // The Global Unique Identifier (GUID) for the user, immutable once created.
	Name         string     // Display name, 1-50 characters, trimmed.
	Phone        string     // Login identifier, unique among non-deleted users.
	PinHash      string     // bcrypt hash of the 4-digit PIN. Never the plaintext.
	Devices      []string   // Client-generated device identifiers bound to this account. Membership set, duplicates suppressed.
	Role         Role       // Privilege level: USER, ADMIN or OWNER.
	Status       UserStatus // Account lifecycle status. DELETED is terminal.
	ProfileImage string     // Optional profile image URL.
	CreatedAt    time.Time  // Set once at registration.
	LastLogin    *time.Time // Updated on every successful login. Nil until the first login.
	DeletedAt    *time.Time // Set when the account is soft-deleted.
}

// HasDevice reports whether the given device identifier is bound to this user.
func (u *User) HasDevice(deviceID string) bool {
	return slices.Contains(u.Devices, deviceID)
}

// AddDevice binds a device identifier to the user. Adding an already bound
// device is a no-op; the device set never holds duplicates. It reports
// whether the set actually changed.
func (u *User) AddDevice(deviceID string) bool {
	if u.HasDevice(deviceID) {
		return false
	}
	u.Devices = append(u.Devices, deviceID)

	return true
}

// IsDeleted reports whether the account has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.Status == StatusDeleted
}
