package auth

import (
	"testing"

	domainerrors "coursehub/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// Lower cost keeps the test suite fast; production uses >= 10.
const testCost = 4

func TestBcryptHasher_HashRoundTrip(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	hash, err := hasher.Hash("1234")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "1234", hash)

	assert.True(t, hasher.Check("1234", hash))
	assert.False(t, hasher.Check("1235", hash))
	assert.False(t, hasher.Check("4321", hash))
}

func TestBcryptHasher_FreshSaltPerHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	first, err := hasher.Hash("5678")
	assert.NoError(t, err)
	second, err := hasher.Hash("5678")
	assert.NoError(t, err)

	// bcrypt embeds a random salt, so two hashes of the same PIN differ.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("5678", first))
	assert.True(t, hasher.Check("5678", second))
}

func TestBcryptHasher_Check_InvalidHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	assert.False(t, hasher.Check("1234", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("", ""))
}

func TestBcryptHasher_ValidateFormat(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	assert.NoError(t, hasher.ValidateFormat("0000"))
	assert.NoError(t, hasher.ValidateFormat("9876"))

	invalid := []string{"", "123", "12345", "12a4", "12.4", " 1234", "١٢٣٤"}
	for _, pin := range invalid {
		err := hasher.ValidateFormat(pin)
		assert.Error(t, err, "expected format error for %q", pin)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidPinFormat))
	}
}

func TestBcryptHasher_HashRejectsMalformedPin(t *testing.T) {
	hasher := NewBcryptHasherWithCost(testCost)

	_, err := hasher.Hash("abcd")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPinFormat))
}
