package services

import (
	"errors"
	"sync"
)

// ErrNoTokens is returned when a TokenRing is created without any credentials
var ErrNoTokens = errors.New("token ring requires at least one token")

// TokenRing holds an ordered set of GitHub tokens and the index of the
// active one. Rotation advances the index modulo the ring size, so it
// always succeeds and wraps around deterministically. The ring is shared
// between workers, so access is mutex-guarded.
type TokenRing struct {
	mu      sync.Mutex
	tokens  []string
	current int
}

// NewTokenRing creates a ring over the given tokens, starting at the first
func NewTokenRing(tokens []string) (*TokenRing, error) {
	if len(tokens) == 0 {
		return nil, ErrNoTokens
	}

	ring := &TokenRing{tokens: make([]string, len(tokens))}
	copy(ring.tokens, tokens)
	return ring, nil
}

// Active returns the currently selected token
func (r *TokenRing) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[r.current]
}

// Rotate advances to the next token and returns it
func (r *TokenRing) Rotate() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = (r.current + 1) % len(r.tokens)
	return r.tokens[r.current]
}

// Len returns the number of tokens in the ring
func (r *TokenRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}
