package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "wrong horse"))
	assert.False(t, VerifyPassword(hash, ""))
}

// A stored plaintext value must never verify: only real bcrypt hashes
// are accepted, so a legacy or tampered row cannot be logged into.
func TestVerifyPasswordRejectsPlaintextStorage(t *testing.T) {
	assert.False(t, VerifyPassword("correct horse", "correct horse"))
	assert.False(t, VerifyPassword("", ""))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "anything"))
}
