package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Abc123!a")
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)

	assert.True(t, CheckPassword("Abc123!a", string(hash)))
	assert.False(t, CheckPassword("Abc123!b", string(hash)))
	assert.False(t, CheckPassword("Abc123!a", "not-a-hash"))
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("Abc123!a")
	require.NoError(t, err)
	b, err := HashPassword("Abc123!a")
	require.NoError(t, err)

	assert.NotEqual(t, string(a), string(b))
}
