package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mmynk/tabledine/internal/cart"
	"github.com/mmynk/tabledine/internal/session"
	"github.com/mmynk/tabledine/internal/storage"
)

// sweepInterval bounds how often the registry scans for expired engines.
// An engine is only dropped once its token has been expired for a full interval,
// so a request admitted just before expiry never races a rehydrated copy.
const sweepInterval = time.Minute

type cartEntry struct {
	engine    *cart.Engine
	expiresAt time.Time
}

// cartRegistry keeps one engine per live cart session. Engines are hydrated from
// the stored snapshot the first time a session is seen by this process and are
// dropped after the session token expires.
type cartRegistry struct {
	store storage.CartStore
	now   func() time.Time

	mu        sync.Mutex
	entries   map[string]cartEntry
	nextSweep time.Time
}

func newCartRegistry(store storage.CartStore) *cartRegistry {
	return &cartRegistry{
		store:   store,
		now:     time.Now,
		entries: make(map[string]cartEntry),
	}
}

// get returns the engine for sess, loading it from storage if needed.
func (r *cartRegistry) get(ctx context.Context, sess session.Session) (*cart.Engine, error) {
	r.mu.Lock()
	r.sweepLocked()
	entry, ok := r.entries[sess.ID]
	r.mu.Unlock()
	if ok {
		return entry.engine, nil
	}

	stored, err := r.store.GetCartSession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart session: %w", err)
	}
	state, err := decodeCart(stored.Snapshot)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request may have hydrated the same session meanwhile.
	if existing, ok := r.entries[sess.ID]; ok {
		return existing.engine, nil
	}
	engine := cart.NewEngine(state)
	r.entries[sess.ID] = cartEntry{engine: engine, expiresAt: sess.ExpiresAt}
	return engine, nil
}

// put registers a freshly created session.
func (r *cartRegistry) put(sess session.Session, engine *cart.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()
	r.entries[sess.ID] = cartEntry{engine: engine, expiresAt: sess.ExpiresAt}
}

// forget drops the engine for sessionID.
func (r *cartRegistry) forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

func (r *cartRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// sweepLocked removes engines whose session expired more than sweepInterval
// ago. Entries without an expiry are kept. r.mu must be held.
func (r *cartRegistry) sweepLocked() {
	now := r.now()
	if now.Before(r.nextSweep) {
		return
	}
	r.nextSweep = now.Add(sweepInterval)

	cutoff := now.Add(-sweepInterval)
	for id, entry := range r.entries {
		if !entry.expiresAt.IsZero() && entry.expiresAt.Before(cutoff) {
			delete(r.entries, id)
		}
	}
}

func encodeCart(state cart.State) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return data, nil
}

func decodeCart(data []byte) (cart.State, error) {
	if len(data) == 0 {
		return cart.Empty(), nil
	}
	state := cart.Empty()
	if err := json.Unmarshal(data, &state); err != nil {
		return cart.State{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	if state.Items == nil {
		state.Items = []cart.Line{}
	}
	return state, nil
}
