// Package session holds the in-memory state of interactive message-driven
// workflows: polls, giveaways and tickets. Each live session is anchored to
// one platform message or channel and registered under that id; button
// activations are routed back through the registry. Nothing here survives a
// process restart.
package session

import "sync"

// Registry is a process-wide table of live sessions keyed by the id of the
// message or channel they are anchored to. Entries are removed only by the
// explicit finalize/close paths; there is no expiry sweep.
type Registry[S any] struct {
	mu sync.RWMutex
	m  map[string]S
}

func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{m: make(map[string]S)}
}

func (r *Registry[S]) Put(key string, s S) {
	r.mu.Lock()
	r.m[key] = s
	r.mu.Unlock()
}

func (r *Registry[S]) Get(key string) (S, bool) {
	r.mu.RLock()
	s, ok := r.m[key]
	r.mu.RUnlock()
	return s, ok
}

func (r *Registry[S]) Remove(key string) {
	r.mu.Lock()
	delete(r.m, key)
	r.mu.Unlock()
}

func (r *Registry[S]) Len() int {
	r.mu.RLock()
	n := len(r.m)
	r.mu.RUnlock()
	return n
}
