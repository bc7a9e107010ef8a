package browse

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Registry keeps one State per visitor. A state that sits idle for the
// registry's TTL is discarded, the server-side equivalent of the home view
// unmounting.
type Registry struct {
	finder Finder
	limit  int
	logger *zap.Logger
	states *gocache.Cache
}

// NewRegistry creates a Registry whose states expire after idle.
func NewRegistry(finder Finder, limit int, idle time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		finder: finder,
		limit:  limit,
		logger: logger,
		states: gocache.New(idle, idle/2+time.Minute),
	}
	r.states.OnEvicted(func(clientID string, _ any) {
		r.logger.Debug("browse state discarded", zap.String("client_id", clientID))
	})
	return r
}

// Get returns the client's state, creating it on first use. Each access
// renews the idle timer.
func (r *Registry) Get(clientID string) *State {
	if v, ok := r.states.Get(clientID); ok {
		st := v.(*State)
		r.states.SetDefault(clientID, st)
		return st
	}
	st := NewState(r.finder, r.limit, r.logger)
	if err := r.states.Add(clientID, st, gocache.DefaultExpiration); err != nil {
		// Lost a race with a concurrent request for the same client.
		if v, ok := r.states.Get(clientID); ok {
			return v.(*State)
		}
		r.states.SetDefault(clientID, st)
	}
	return st
}

// Discard drops the client's state.
func (r *Registry) Discard(clientID string) {
	r.states.Delete(clientID)
}

// Len returns the number of live states.
func (r *Registry) Len() int {
	return r.states.ItemCount()
}
