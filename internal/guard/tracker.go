package guard

import (
	"context"
	"errors"
	"sync"
)

// ErrStale reports a result that was superseded before it could be applied.
var ErrStale = errors.New("guard: stale response discarded")

// Tracker hands out generation tokens per key. Beginning a new generation for a
// key makes every earlier token for that key stale.
type Tracker struct {
	mu          sync.Mutex
	next        uint64
	generations map[string]uint64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{generations: make(map[string]uint64)}
}

// Token identifies one generation of work for a key.
type Token struct {
	tracker    *Tracker
	key        string
	generation uint64
}

// Begin starts a new generation for key.
func (t *Tracker) Begin(key string) Token {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.generations == nil {
		t.generations = make(map[string]uint64)
	}
	// Generations are unique across keys so a released key never revives an old token.
	t.next++
	t.generations[key] = t.next
	return Token{tracker: t, key: key, generation: t.next}
}

// Current reports whether no newer generation has begun for the token's key.
// The zero Token is always current.
func (tok Token) Current() bool {
	if tok.tracker == nil {
		return true
	}
	tok.tracker.mu.Lock()
	defer tok.tracker.mu.Unlock()
	return tok.tracker.generations[tok.key] == tok.generation
}

// Check returns ErrStale when the token was superseded or ctx was cancelled.
// A deadline alone is not stale: the caller still owns the result and decides
// how to degrade.
func (tok Token) Check(ctx context.Context) error {
	if ctx != nil {
		if err := ctx.Err(); errors.Is(err, context.Canceled) {
			return errors.Join(ErrStale, err)
		}
	}
	if !tok.Current() {
		return ErrStale
	}
	return nil
}

// Done releases the key when tok is still its latest generation.
func (tok Token) Done() {
	if tok.tracker == nil {
		return
	}
	tok.tracker.mu.Lock()
	defer tok.tracker.mu.Unlock()
	if tok.tracker.generations[tok.key] == tok.generation {
		delete(tok.tracker.generations, tok.key)
	}
}

// Key returns the key the token was issued for.
func (tok Token) Key() string { return tok.key }
