package annotations

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

// SetName names one per-client annotation set.
type SetName string

const (
	// SetRead holds ids of documents the visitor has opened or marked read.
	SetRead SetName = "readDocs"
	// SetHighlighted holds ids of documents the visitor starred as favorites.
	SetHighlighted SetName = "highlightedDocs"
)

// Valid reports whether n is one of the known set names.
func (n SetName) Valid() bool {
	return n == SetRead || n == SetHighlighted
}

// Store keeps per-client sets of document ids. Every mutation rewrites the
// whole set (last writer wins, no merge).
type Store interface {
	Get(ctx context.Context, clientID string, name SetName) (Set, error)
	Put(ctx context.Context, clientID string, name SetName, ids []string) error
	Has(ctx context.Context, clientID string, name SetName, id string) (bool, error)
	Add(ctx context.Context, clientID string, name SetName, id string) error
	Toggle(ctx context.Context, clientID string, name SetName, id string) (bool, error)
}

// Set is an immutable snapshot of one annotation set.
type Set struct {
	ids map[string]struct{}
}

// NewSet builds a set from ids, ignoring duplicates and empty ids.
func NewSet(ids ...string) Set {
	s := Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids.
func (s Set) Len() int { return len(s.ids) }

// IDs returns the ids in canonical (sorted) order.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Toggled returns a copy of s with id's membership flipped.
func (s Set) Toggled(id string) Set {
	next := NewSet(s.IDs()...)
	if next.Has(id) {
		delete(next.ids, id)
	} else if id != "" {
		next.ids[id] = struct{}{}
	}
	return next
}

// With returns a copy of s that contains id.
func (s Set) With(id string) Set {
	next := NewSet(s.IDs()...)
	if id != "" {
		next.ids[id] = struct{}{}
	}
	return next
}

// Marshal returns the canonical serialized form: a JSON array of sorted ids.
// Canonical ordering is what makes a double toggle restore the exact
// original value.
func (s Set) Marshal() string {
	data, _ := json.Marshal(s.IDs())
	return string(data)
}

// Unmarshal parses a serialized set. Empty input is the empty set.
func Unmarshal(value string) (Set, error) {
	if value == "" {
		return NewSet(), nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return Set{}, fmt.Errorf("decoding annotation set: %w", err)
	}
	return NewSet(ids...), nil
}
