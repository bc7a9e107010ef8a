package annotations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ziadkadry99/research-reader/internal/db"
)

// SQLStore persists annotation sets in SQLite, one row per client and set
// holding the serialized JSON array.
type SQLStore struct {
	db *db.DB
}

// NewSQLStore creates a SQLStore backed by the given database.
func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{db: database}
}

// raw returns the stored serialized value, "" when no row exists.
func (s *SQLStore) raw(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}, clientID string, name SetName) (string, error) {
	var value string
	err := q.QueryRowContext(ctx,
		`SELECT value FROM annotation_sets WHERE client_id = ? AND name = ?`,
		clientID, string(name),
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading annotation set: %w", err)
	}
	return value, nil
}

// Get returns the client's set.
func (s *SQLStore) Get(ctx context.Context, clientID string, name SetName) (Set, error) {
	if !name.Valid() {
		return Set{}, fmt.Errorf("unknown annotation set %q", name)
	}
	value, err := s.raw(ctx, s.db, clientID, name)
	if err != nil {
		return Set{}, err
	}
	return Unmarshal(value)
}

// Put replaces the client's set with ids.
func (s *SQLStore) Put(ctx context.Context, clientID string, name SetName, ids []string) error {
	if !name.Valid() {
		return fmt.Errorf("unknown annotation set %q", name)
	}
	return s.write(ctx, s.db, clientID, name, NewSet(ids...))
}

// Has reports whether id is in the client's set.
func (s *SQLStore) Has(ctx context.Context, clientID string, name SetName, id string) (bool, error) {
	set, err := s.Get(ctx, clientID, name)
	if err != nil {
		return false, err
	}
	return set.Has(id), nil
}

// Add puts id into the client's set.
func (s *SQLStore) Add(ctx context.Context, clientID string, name SetName, id string) error {
	_, err := s.update(ctx, clientID, name, func(set Set) Set { return set.With(id) })
	return err
}

// Toggle flips id's membership and returns whether it is now a member.
func (s *SQLStore) Toggle(ctx context.Context, clientID string, name SetName, id string) (bool, error) {
	next, err := s.update(ctx, clientID, name, func(set Set) Set { return set.Toggled(id) })
	if err != nil {
		return false, err
	}
	return next.Has(id), nil
}

// update reads, modifies and rewrites a set inside one transaction.
func (s *SQLStore) update(ctx context.Context, clientID string, name SetName, fn func(Set) Set) (Set, error) {
	if !name.Valid() {
		return Set{}, fmt.Errorf("unknown annotation set %q", name)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Set{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	value, err := s.raw(ctx, tx, clientID, name)
	if err != nil {
		return Set{}, err
	}
	cur, err := Unmarshal(value)
	if err != nil {
		return Set{}, err
	}

	next := fn(cur)
	if err := s.write(ctx, tx, clientID, name, next); err != nil {
		return Set{}, err
	}
	if err := tx.Commit(); err != nil {
		return Set{}, fmt.Errorf("committing annotation set: %w", err)
	}
	return next, nil
}

func (s *SQLStore) write(ctx context.Context, e interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, clientID string, name SetName, set Set) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO annotation_sets (client_id, name, value, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(client_id, name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		clientID, string(name), set.Marshal(),
	)
	if err != nil {
		return fmt.Errorf("writing annotation set: %w", err)
	}
	return nil
}
