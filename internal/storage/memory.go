package storage

import (
	"sync"

	"github.com/vovakirdan/tui-kitchen/internal/kitchen"
)

// Compile-time interface check.
var _ kitchen.ProfileStore = (*Memory)(nil)

// Memory is an in-memory profile store for guest play that should leave no
// trace on disk. Safe for concurrent access.
type Memory struct {
	mu       sync.RWMutex
	profiles map[string]kitchen.Profile
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{profiles: make(map[string]kitchen.Profile)}
}

// LoadProfile returns a copy of the stored profile, or a zero profile.
func (m *Memory) LoadProfile(namespace string) (kitchen.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[namespace]
	if !ok {
		return kitchen.Profile{}, nil
	}
	return p.Clone(), nil
}

// SaveProfile stores a copy of p. Overwrites if it already exists.
func (m *Memory) SaveProfile(namespace string, p kitchen.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profiles[namespace] = p.Clone()
	return nil
}

// ResetProfile removes the namespace.
func (m *Memory) ResetProfile(namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.profiles, namespace)
	return nil
}
