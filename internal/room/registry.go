package room

import "sync"

// Registry resolves a room code to the single Actor that owns that room,
// constructing it lazily on first reference. One actor per code is the
// serialization unit: all requests for a code funnel through it.
type Registry struct {
	defaultMode Mode
	store       Store

	mu     sync.RWMutex
	actors map[string]*Actor
}

func NewRegistry(defaultMode Mode, store Store) *Registry {
	return &Registry{
		defaultMode: defaultMode,
		store:       store,
		actors:      make(map[string]*Actor),
	}
}

func (r *Registry) Get(code string) *Actor {
	r.mu.RLock()
	a, ok := r.actors[code]
	r.mu.RUnlock()
	if ok {
		return a
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring the write lock.
	if a, ok := r.actors[code]; ok {
		return a
	}

	a = NewActor(code, r.defaultMode, r.store)
	r.actors[code] = a
	return a
}
