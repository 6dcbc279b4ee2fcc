package password

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost, 0)
	require.NoError(t, err)
	return h
}

func verify(t *testing.T, h *Hasher, plaintext, hash string) bool {
	t.Helper()
	ok, err := h.Verify(context.Background(), plaintext, hash)
	require.NoError(t, err)
	return ok
}

func TestNewHasher_RejectsCostOutOfRange(t *testing.T) {
	_, err := NewHasher(bcrypt.MinCost-1, 0)
	require.Error(t, err)

	_, err = NewHasher(bcrypt.MaxCost+1, 0)
	require.Error(t, err)
}

func TestHash_Verify_RoundTrip(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	inputs := []string{
		"Secr3t!23",
		"",
		"пароль-с-юникодом",
		strings.Repeat("a", 72),
		strings.Repeat("b", 200),
	}

	for _, p := range inputs {
		hash, err := h.Hash(ctx, p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash, "hash must not equal plaintext")
		assert.True(t, verify(t, h, p, hash), "verify(%q)", p)
	}
}

func TestHash_IsSalted(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	a, err := h.Hash(ctx, "Secr3t!23")
	require.NoError(t, err)
	b, err := h.Hash(ctx, "Secr3t!23")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, verify(t, h, "Secr3t!23", a))
	assert.True(t, verify(t, h, "Secr3t!23", b))
}

func TestHash_UsesConfiguredCost(t *testing.T) {
	h, err := NewHasher(DefaultCost, 1)
	require.NoError(t, err)

	hash, err := h.Hash(context.Background(), "x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
	assert.Equal(t, DefaultCost, h.Cost())
}

func TestVerify_Mismatch(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "right")
	require.NoError(t, err)

	assert.False(t, verify(t, h, "wrong", hash))
	assert.False(t, verify(t, h, "Right", hash))
}

func TestVerify_LongInputsDifferInTail(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	base := strings.Repeat("x", 100)
	hash, err := h.Hash(ctx, base+"1")
	require.NoError(t, err)

	assert.False(t, verify(t, h, base+"2", hash))
}

func TestVerify_DigestOfLongPasswordIsNotAPassword(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	long := strings.Repeat("correct horse battery staple ", 4)
	require.Greater(t, len(long), 72)

	hash, err := h.Hash(ctx, long)
	require.NoError(t, err)

	hexSum := sha256.Sum256([]byte(long))
	for _, digest := range []string{
		hex.EncodeToString(hexSum[:]),
		base64.StdEncoding.EncodeToString(hexSum[:]),
	} {
		assert.False(t, verify(t, h, digest, hash), "digest %q", digest)
	}
	assert.True(t, verify(t, h, long, hash))
}

func TestVerify_ShortPasswordIsNotItsOwnDigest(t *testing.T) {
	h := newTestHasher(t)
	ctx := context.Background()

	sum := sha256.Sum256([]byte("Secr3t!23"))
	digest := base64.StdEncoding.EncodeToString(sum[:])

	hash, err := h.Hash(ctx, digest)
	require.NoError(t, err)

	assert.False(t, verify(t, h, "Secr3t!23", hash))
}

func TestVerify_MalformedHashIsFalse(t *testing.T) {
	h := newTestHasher(t)

	for _, bad := range []string{"", "not-a-hash", "$2a$10$short", "$argon2id$v=19$m=1,t=1,p=1$AA$AA"} {
		assert.False(t, verify(t, h, "anything", bad), "hash %q", bad)
	}
}

func TestDummyHash_MatchesNothingObvious(t *testing.T) {
	h := newTestHasher(t)

	require.NotEmpty(t, h.DummyHash())
	_, err := bcrypt.Cost([]byte(h.DummyHash()))
	require.NoError(t, err, "dummy hash must be well-formed")

	assert.False(t, verify(t, h, "", h.DummyHash()))
	assert.False(t, verify(t, h, "password", h.DummyHash()))
}

func TestHash_CancelledContext(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost, 1)
	require.NoError(t, err)

	// Hold the only slot so Acquire has to wait.
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = h.Hash(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)

	ok, err := h.Verify(ctx, "x", h.DummyHash())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestHash_Concurrent(t *testing.T) {
	h, err := NewHasher(bcrypt.MinCost, 4)
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hash, err := h.Hash(ctx, "concurrent")
			if err != nil {
				errs <- err
				return
			}
			ok, err := h.Verify(ctx, "concurrent", hash)
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent hash failed: %v", err)
	}
}
