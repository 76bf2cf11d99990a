package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DraftRegistry hands out one DraftManager per customer cart opened from a
// QR code. Carts nobody touches for a while are swept.
type DraftRegistry struct {
	gateway OrderGateway
	cache   OrderIDCache
	now     func() time.Time

	mu    sync.Mutex
	carts map[string]*cartEntry
}

type cartEntry struct {
	manager  *DraftManager
	lastUsed time.Time
}

// abandonedGrace is how long a cart without a draft survives, so a customer
// has time to pick a table after opening it.
const abandonedGrace = time.Minute

func NewDraftRegistry(gateway OrderGateway, cache OrderIDCache) *DraftRegistry {
	return &DraftRegistry{
		gateway: gateway,
		cache:   cache,
		now:     time.Now,
		carts:   make(map[string]*cartEntry),
	}
}

// Open creates a manager under a fresh id.
func (r *DraftRegistry) Open() (string, *DraftManager) {
	id := uuid.NewString()
	m := NewDraftManager(r.gateway, r.cache)

	r.mu.Lock()
	r.carts[id] = &cartEntry{manager: m, lastUsed: r.now()}
	r.mu.Unlock()
	return id, m
}

// Get returns the cart and marks it as used.
func (r *DraftRegistry) Get(id string) (*DraftManager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.carts[id]
	if !ok {
		return nil, ErrCartNotFound
	}
	e.lastUsed = r.now()
	return e.manager, nil
}

func (r *DraftRegistry) Close(id string) {
	r.mu.Lock()
	delete(r.carts, id)
	r.mu.Unlock()
}

func (r *DraftRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}

// Sweep closes carts idle for longer than ttl and carts whose draft is
// gone, and reports how many it closed.
func (r *DraftRegistry) Sweep(ttl time.Duration) int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	closed := 0
	for id, e := range r.carts {
		idle := now.Sub(e.lastUsed)
		_, selected := e.manager.Snapshot()
		if idle > ttl || (!selected && idle > abandonedGrace) {
			delete(r.carts, id)
			closed++
		}
	}
	return closed
}
