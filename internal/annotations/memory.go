package annotations

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps annotation sets in process memory. It is used when no
// data directory is configured and in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func memoryKey(clientID string, name SetName) string {
	return clientID + "\x00" + string(name)
}

// Get returns the client's set.
func (m *MemoryStore) Get(_ context.Context, clientID string, name SetName) (Set, error) {
	if !name.Valid() {
		return Set{}, fmt.Errorf("unknown annotation set %q", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Unmarshal(m.values[memoryKey(clientID, name)])
}

// Put replaces the client's set with ids.
func (m *MemoryStore) Put(_ context.Context, clientID string, name SetName, ids []string) error {
	if !name.Valid() {
		return fmt.Errorf("unknown annotation set %q", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[memoryKey(clientID, name)] = NewSet(ids...).Marshal()
	return nil
}

// Has reports whether id is in the client's set.
func (m *MemoryStore) Has(ctx context.Context, clientID string, name SetName, id string) (bool, error) {
	set, err := m.Get(ctx, clientID, name)
	if err != nil {
		return false, err
	}
	return set.Has(id), nil
}

// Add puts id into the client's set.
func (m *MemoryStore) Add(ctx context.Context, clientID string, name SetName, id string) error {
	_, err := m.update(clientID, name, func(s Set) Set { return s.With(id) })
	return err
}

// Toggle flips id's membership and returns whether it is now a member.
func (m *MemoryStore) Toggle(ctx context.Context, clientID string, name SetName, id string) (bool, error) {
	next, err := m.update(clientID, name, func(s Set) Set { return s.Toggled(id) })
	if err != nil {
		return false, err
	}
	return next.Has(id), nil
}

func (m *MemoryStore) update(clientID string, name SetName, fn func(Set) Set) (Set, error) {
	if !name.Valid() {
		return Set{}, fmt.Errorf("unknown annotation set %q", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memoryKey(clientID, name)
	cur, err := Unmarshal(m.values[key])
	if err != nil {
		return Set{}, err
	}
	next := fn(cur)
	m.values[key] = next.Marshal()
	return next, nil
}
