package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	assert.True(t, bytes.Equal(key1, key2), "same inputs must give the same key")
	assert.Len(t, key1, 32)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	assert.False(t, bytes.Equal(key1, key2), "different salts must give different keys")
}

func TestNewVerifierAndCheck(t *testing.T) {
	salt, verifier := NewVerifier([]byte("hunter2"))
	assert.Len(t, salt, SaltSize)
	assert.Len(t, verifier, 32)

	assert.True(t, CheckPassword([]byte("hunter2"), salt, verifier))
	assert.False(t, CheckPassword([]byte("hunter3"), salt, verifier))

	salt2, verifier2 := NewVerifier([]byte("hunter2"))
	assert.NotEqual(t, salt, salt2)
	assert.NotEqual(t, verifier, verifier2)
}
