package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	a := New()

	hash, err := a.GenerateFromPassword("correct-horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "correct-horse")

	ok, err := a.VerifyPasswd("correct-horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	a := New()

	h1, err := a.GenerateFromPassword("same-password")
	require.NoError(t, err)
	h2, err := a.GenerateFromPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	a := New()

	for _, e := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=2$salt", // too few parts
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	} {
		_, err := a.VerifyPasswd("whatever", e)
		assert.Error(t, err, e)
	}
}

func TestVerifyUsesEmbeddedParams(t *testing.T) {
	weak := &ArgonHash{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

	hash, err := weak.GenerateFromPassword("correct-horse")
	require.NoError(t, err)

	// Verifying with stronger defaults must still succeed because the
	// parameters come from the hash itself
	ok, err := New().VerifyPasswd("correct-horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}
