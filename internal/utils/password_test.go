package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := VerifyPassword(hash, "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "secret124")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordSaltedDigestsDiffer(t *testing.T) {
	h1, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2, "per-password salt must yield distinct digests")
}

func TestPasswordTruncatedAt72Bytes(t *testing.T) {
	base := strings.Repeat("a", 72)
	long := base + "tail-that-never-reaches-the-hash"

	hash, err := HashPassword(long, bcrypt.MinCost)
	require.NoError(t, err)

	// Same first 72 bytes, different tail: still verifies.
	ok, err := VerifyPassword(hash, base+"completely-different-tail")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, base)
	require.NoError(t, err)
	assert.True(t, ok)

	// A difference inside the first 72 bytes must fail.
	ok, err = VerifyPassword(hash, strings.Repeat("b", 72))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	ok, err := VerifyPassword("not-a-bcrypt-digest", "secret123")
	assert.Error(t, err, "a broken stored digest is an internal failure, not a mismatch")
	assert.False(t, ok)
}
