// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PinHasher defines the interface for PIN hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PinHasher interface {
	// Hash generates a salted hash from a plaintext 4-digit PIN.
	// Every call produces a fresh salt; hashes are never reused.
	Hash(pin string) (string, error)

	// Check compares a plaintext PIN with a stored hash using the
	// algorithm's constant-time comparison. It never compares plaintext.
	Check(pin, hash string) bool

	// ValidateFormat reports whether the value is a well-formed 4-digit
	// numeric PIN. It does not consult storage.
	ValidateFormat(pin string) error
}
