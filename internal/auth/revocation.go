package auth

import (
	"sync"
	"time"
)

// RevocationList tracks revoked token ids until their natural expiry.
// Tokens are stateless bearer credentials, so logout cannot shorten a
// token's lifetime by itself; this list is how the auth authority
// refuses a token it already issued. Entries drop out once the token
// would have expired anyway, keeping the set bounded.
type RevocationList struct {
	mu      sync.Mutex
	entries map[string]time.Time // jti -> token expiry
	now     func() time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke marks a token id as revoked until expiresAt.
func (rl *RevocationList) Revoke(jti string, expiresAt time.Time) {
	if jti == "" {
		return
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.purgeLocked()
	if rl.now().Before(expiresAt) {
		rl.entries[jti] = expiresAt
	}
}

// IsRevoked reports whether the token id was revoked and has not yet
// reached its natural expiry.
func (rl *RevocationList) IsRevoked(jti string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	exp, ok := rl.entries[jti]
	if !ok {
		return false
	}
	if !rl.now().Before(exp) {
		delete(rl.entries, jti)
		return false
	}
	return true
}

// Len reports the number of live entries.
func (rl *RevocationList) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.purgeLocked()
	return len(rl.entries)
}

func (rl *RevocationList) purgeLocked() {
	now := rl.now()
	for jti, exp := range rl.entries {
		if !now.Before(exp) {
			delete(rl.entries, jti)
		}
	}
}
