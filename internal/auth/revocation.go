package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// RevocationSet holds tokens explicitly invalidated before their natural
// expiry (logout). It is process-wide state with no persistence: empty at
// start, growing monotonically until restart.
//
// Two accepted trade-offs, by decision rather than oversight:
//   - A restart silently un-revokes all tokens.
//   - There is no eviction, so the set grows for the life of the process.
//     At one entry per logout this is bounded in practice by login volume.
//
// Tokens are stored as SHA-256 digests so the set never holds a usable
// credential in memory.
type RevocationSet struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewRevocationSet creates an empty revocation set.
func NewRevocationSet() *RevocationSet {
	return &RevocationSet{
		tokens: make(map[string]struct{}),
	}
}

// Revoke adds a token to the set. Idempotent: revoking an already-revoked
// or already-expired token is safe and has no additional effect.
func (r *RevocationSet) Revoke(token string) {
	h := HashToken(token)
	r.mu.Lock()
	r.tokens[h] = struct{}{}
	r.mu.Unlock()
}

// IsRevoked reports whether a token has been revoked. Monotonic: once true,
// it stays true for the life of the process.
func (r *RevocationSet) IsRevoked(token string) bool {
	h := HashToken(token)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, revoked := r.tokens[h]
	return revoked
}

// Size returns the number of revoked tokens, for logging and diagnostics.
func (r *RevocationSet) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tokens)
}

// HashToken returns the hex SHA-256 digest of a raw token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
