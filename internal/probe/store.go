package probe

import (
	"sort"
	"sync"
)

// Store maps probe display names to their final status. Later writes for the
// same name overwrite earlier ones, which is what lets a dual-mode fallback
// re-report under a different display name while the store still holds
// exactly one entry per distinct name. Entries are never removed; the store
// lives for a single run.
type Store struct {
	mu      sync.Mutex
	entries map[string]VersionStatus
}

// NewStore returns an empty result store.
func NewStore() *Store {
	return &Store{entries: make(map[string]VersionStatus)}
}

// Put records or overwrites the status for a probe name.
func (s *Store) Put(name string, status VersionStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = status
}

// Get returns the stored status for a name.
func (s *Store) Get(name string) (VersionStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.entries[name]
	return status, ok
}

// Names returns every stored probe name in lexicographic order, the order
// the report renderer iterates in.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns a copy of the entries for rendering or export.
func (s *Store) Snapshot() map[string]VersionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]VersionStatus, len(s.entries))
	for name, status := range s.entries {
		out[name] = status
	}
	return out
}
