package wizard

import (
	"maps"
	"sync"
	"time"
)

// Slot holds the field values accumulated by one in-progress wizard run.
// A session has at most one slot; starting a new wizard overwrites any
// abandoned one.
type Slot struct {
	Kind      string
	Values    map[string]string
	UpdatedAt time.Time
}

// Store keeps wizard slots keyed by session id. Abandoned slots are evicted
// after the configured TTL so they cannot accumulate indefinitely.
type Store struct {
	mu    sync.RWMutex
	slots map[string]*Slot
	ttl   time.Duration
	done  chan struct{}
}

const evictInterval = time.Minute

// NewStore creates a slot store and starts its eviction janitor
func NewStore(ttl time.Duration) *Store {
	st := &Store{
		slots: make(map[string]*Slot),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	go st.evictLoop()
	return st
}

// Reset replaces the session's slot with a fresh one for the given kind,
// pre-populated with seed values captured from the creation request.
func (st *Store) Reset(sessionID, kind string, seed map[string]string) {
	slot := &Slot{
		Kind:      kind,
		Values:    make(map[string]string, len(seed)),
		UpdatedAt: time.Now(),
	}
	maps.Copy(slot.Values, seed)

	st.mu.Lock()
	st.slots[sessionID] = slot
	st.mu.Unlock()
}

// Peek returns a copy of the session's slot for rendering. The copy keeps
// callers from mutating shared state outside Apply.
func (st *Store) Peek(sessionID string) (Slot, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	slot, ok := st.slots[sessionID]
	if !ok {
		return Slot{}, false
	}

	out := Slot{
		Kind:      slot.Kind,
		Values:    make(map[string]string, len(slot.Values)),
		UpdatedAt: slot.UpdatedAt,
	}
	maps.Copy(out.Values, slot.Values)
	return out, true
}

// Apply mutates the session's slot under the store lock, creating an empty
// slot of the given kind when none exists.
func (st *Store) Apply(sessionID, kind string, fn func(*Slot) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	slot, ok := st.slots[sessionID]
	if !ok || slot.Kind != kind {
		slot = &Slot{Kind: kind, Values: make(map[string]string)}
		st.slots[sessionID] = slot
	}

	if err := fn(slot); err != nil {
		return err
	}
	slot.UpdatedAt = time.Now()
	return nil
}

// Clear removes the session's slot
func (st *Store) Clear(sessionID string) {
	st.mu.Lock()
	delete(st.slots, sessionID)
	st.mu.Unlock()
}

// Len returns the number of live slots
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.slots)
}

// Stop shuts the eviction janitor down
func (st *Store) Stop() {
	close(st.done)
}

func (st *Store) evictLoop() {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-st.done:
			return
		case now := <-ticker.C:
			st.evictExpired(now)
		}
	}
}

func (st *Store) evictExpired(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for id, slot := range st.slots {
		if now.Sub(slot.UpdatedAt) > st.ttl {
			delete(st.slots, id)
		}
	}
}
