package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pass1234")
	require.NoError(t, err)
	assert.NotEqual(t, "pass1234", hash)

	assert.True(t, h.Verify("pass1234", hash))
	assert.False(t, h.Verify("wrong", hash))
	assert.False(t, h.Verify("pass1234", "not a bcrypt hash"))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	one, err := h.Hash("pass1234")
	require.NoError(t, err)
	two, err := h.Hash("pass1234")
	require.NoError(t, err)

	assert.NotEqual(t, one, two)
	assert.True(t, h.Verify("pass1234", one))
	assert.True(t, h.Verify("pass1234", two))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	assert.Equal(t, 12, NewBcryptHasher(0).cost)
	assert.Equal(t, 12, NewBcryptHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
