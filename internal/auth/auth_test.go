package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hash(t *testing.T, key string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestKeyStoreOpenWhenEmpty(t *testing.T) {
	ks, err := NewKeyStore(nil)
	require.NoError(t, err)
	assert.False(t, ks.Enabled())
	assert.NoError(t, ks.Verify(""))
	assert.NoError(t, ks.Verify("anything"))
}

func TestKeyStoreVerify(t *testing.T) {
	ks, err := NewKeyStore([]string{hash(t, "alpha"), " " + hash(t, "beta") + " "})
	require.NoError(t, err)
	assert.True(t, ks.Enabled())

	assert.False(t, ks.Verified("alpha"))
	assert.NoError(t, ks.Verify("alpha"))
	assert.True(t, ks.Verified("alpha"))
	assert.NoError(t, ks.Verify("beta"))
	assert.NoError(t, ks.Verify("beta"), "cached key still verifies")
	assert.ErrorIs(t, ks.Verify("gamma"), ErrInvalidKey)
	assert.ErrorIs(t, ks.Verify(""), ErrInvalidKey)
	assert.False(t, ks.Verified("gamma"))
}

func TestNewKeyStoreRejectsPlaintext(t *testing.T) {
	_, err := NewKeyStore([]string{"not-a-hash"})
	assert.Error(t, err)
}

func TestHashKey(t *testing.T) {
	h, err := HashKey("  s3cret\n")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("s3cret")))

	_, err = HashKey("   ")
	assert.Error(t, err)
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0)
	for i := 0; i < 1000; i++ {
		require.True(t, rl.Allow("client"))
	}
	assert.Equal(t, 0, rl.Clients())
}

func TestRateLimiterBurstAndRefill(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(60) // 1 token/s, burst 10
	rl.now = func() time.Time { return now }

	for i := 0; i < 10; i++ {
		require.True(t, rl.Allow("a"), "request %d", i)
	}
	assert.False(t, rl.Allow("a"))

	// other clients have their own bucket
	assert.True(t, rl.Allow("b"))

	now = now.Add(2 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterPrune(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(60)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(10 * time.Minute)
	rl.Allow("new")

	assert.Equal(t, 2, rl.Clients())
	assert.Equal(t, 1, rl.Prune(5*time.Minute))
	assert.Equal(t, 1, rl.Clients())
}
