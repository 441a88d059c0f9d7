package plan

import (
	"sort"
	"sync"
)

// Entry is one registered backend.
type Entry struct {
	Name     string
	Priority int
	Backend  Backend
}

// Registry stores available backends ordered by priority.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// Global is the default backend registry.
var Global = &Registry{}

// Register adds a backend. An entry with the same name is replaced.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].Name == entry.Name {
			r.entries[i] = entry
			r.sortByPriority()
			return
		}
	}
	r.entries = append(r.entries, entry)
	r.sortByPriority()
}

// Default returns the highest-priority backend, or nil when none is registered.
func (r *Registry) Default() Backend {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[0].Backend
}

// Lookup returns the backend registered under name.
func (r *Registry) Lookup(name string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.Name == name {
			return e.Backend, true
		}
	}
	return nil, false
}

func (r *Registry) sortByPriority() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Priority > r.entries[j].Priority
	})
}

// ListEntries returns a copy of entries for tests/debugging.
func (r *Registry) ListEntries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
}
