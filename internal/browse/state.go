// Package browse holds the home view's browse/search state machine. A State
// is created when a visitor first enters the home view and lives until the
// Registry expires it.
package browse

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/backend"
)

// State is one visitor's browse state.
type State struct {
	finder Finder
	limit  int
	logger *zap.Logger

	mu             sync.Mutex
	mounted        chan struct{} // closed once the category fetch settles
	categories     []backend.Category
	mode           Mode
	query          string
	results        []backend.Document
	loading        bool
	activeCategory int
	seq            uint64
}

// NewState creates a State in browsing mode with categories not yet fetched.
func NewState(finder Finder, limit int, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		finder: finder,
		limit:  limit,
		logger: logger,
		mode:   ModeBrowsing,
	}
}

// Mount fetches the category list the first time it is called. A failed
// fetch leaves the list empty and is not retried for the life of the state.
// Callers arriving while the fetch is in flight wait for it to settle or for
// their own ctx to end.
func (s *State) Mount(ctx context.Context) {
	s.mu.Lock()
	if s.mounted != nil {
		done := s.mounted
		s.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
		}
		return
	}
	done := make(chan struct{})
	s.mounted = done
	s.mu.Unlock()
	defer close(done)

	cats, err := s.finder.Categories(ctx)
	if err != nil {
		s.logger.Error("fetching categories", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
}

// SubmitQuery runs a free-text search. A blank query returns to browsing
// mode and clears the results.
func (s *State) SubmitQuery(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	s.query = query
	s.activeCategory = 0
	if query == "" {
		s.seq++
		s.mode = ModeBrowsing
		s.results = nil
		s.loading = false
		s.mu.Unlock()
		return
	}
	seq := s.begin()
	s.mu.Unlock()

	docs, err := s.finder.Search(ctx, backend.SearchRequest{Query: query, Limit: s.limit})
	if err != nil {
		s.logger.Error("searching documents", zap.String("query", query), zap.Error(err))
	}
	s.finish(seq, docs, err)
}

// SelectCategory lists the documents of one category, from either mode.
func (s *State) SelectCategory(ctx context.Context, categoryID int) {
	s.mu.Lock()
	s.activeCategory = categoryID
	seq := s.begin()
	s.mu.Unlock()

	docs, err := s.finder.DocumentsByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("fetching category documents", zap.Int("category_id", categoryID), zap.Error(err))
	}
	s.finish(seq, docs, err)
}

// begin enters searching mode and returns the request's sequence number.
// Callers hold s.mu.
func (s *State) begin() uint64 {
	s.seq++
	s.mode = ModeSearching
	s.loading = true
	return s.seq
}

// finish replaces the results unless a newer request has started since.
func (s *State) finish(seq uint64, docs []backend.Document, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.Debug("dropping superseded results", zap.Uint64("seq", seq))
		return
	}
	s.loading = false
	if err != nil {
		s.results = nil
		return
	}
	s.results = docs
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Mode:           s.mode,
		Categories:     append([]backend.Category(nil), s.categories...),
		Query:          s.query,
		Results:        append([]backend.Document(nil), s.results...),
		Loading:        s.loading,
		ActiveCategory: s.activeCategory,
	}
}
