// Package password implements one-way credential hashing with bcrypt.
package password

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"runtime"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultCost is the bcrypt cost factor used when none is configured.
const DefaultCost = 10

// Hasher hashes and verifies secrets. It is safe for concurrent use; the
// number of bcrypt computations running at once is bounded so a burst of
// logins cannot starve the rest of the process.
type Hasher struct {
	cost      int
	sem       *semaphore.Weighted
	dummyHash []byte
}

// NewHasher creates a Hasher with the given cost. maxConcurrent <= 0 selects
// four computations per available CPU.
func NewHasher(cost int, maxConcurrent int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0) * 4
	}

	h := &Hasher{cost: cost, sem: semaphore.NewWeighted(int64(maxConcurrent))}

	// Lookups of unknown accounts verify against this so they cost as much
	// as a real comparison.
	filler := make([]byte, 32)
	if _, err := rand.Read(filler); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(filler)), cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	h.dummyHash = dummy

	return h, nil
}

// Cost returns the configured bcrypt cost factor.
func (h *Hasher) Cost() int { return h.cost }

// DummyHash returns a valid hash that no plaintext is expected to match.
func (h *Hasher) DummyHash() string { return string(h.dummyHash) }

// Hash returns a salted bcrypt hash of plaintext. Two calls with the same
// input yield different hashes. Errors wrap common.ErrHashing, or are the
// context error when ctx ends while waiting for a slot.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	hash, err := bcrypt.GenerateFromPassword(prepare(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A mismatch or a malformed
// hash yields false with a nil error; the error is only set when ctx ends
// while waiting for a slot.
func (h *Hasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), prepare(plaintext)) == nil, nil
}

// prepare maps every plaintext to base64(sha256(plaintext)) before bcrypt.
// The 44-byte digest stays under bcrypt's 72-byte input limit, so all bytes
// of long secrets count, and raw input never reaches bcrypt directly.
func prepare(plaintext string) []byte {
	sum := sha256.Sum256([]byte(plaintext))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
