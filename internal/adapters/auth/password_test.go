package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_Hash_and_Compare(t *testing.T) {
	h := NewBcryptHasher(10)
	password := "my-secret-password"

	hash, err := h.Hash(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	require.NotEqual(t, password, hash)

	err = h.Compare(hash, password)
	require.NoError(t, err)
}

func TestBcryptHasher_Compare_wrong_password(t *testing.T) {
	h := NewBcryptHasher(10)
	hash, err := h.Hash("correct")
	require.NoError(t, err)

	err = h.Compare(hash, "wrong")
	assert.Error(t, err)
}

func TestBcryptHasher_long_password(t *testing.T) {
	h := NewBcryptHasher(10)
	long := strings.Repeat("x", 100)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	err = h.Compare(hash, long)
	assert.NoError(t, err)
}

func TestBcryptHasher_invalid_cost_falls_back(t *testing.T) {
	h := NewBcryptHasher(999)

	hash, err := h.Hash("password")
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hash, "password"))
}
