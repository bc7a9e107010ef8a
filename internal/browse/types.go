package browse

import (
	"context"
	"net/url"

	"github.com/ziadkadry99/research-reader/internal/backend"
)

// Mode is the observable mode of the home view.
type Mode string

const (
	// ModeBrowsing shows the category tiles.
	ModeBrowsing Mode = "browsing"
	// ModeSearching shows a result list for a query or a category click.
	ModeSearching Mode = "searching"
)

// Finder is the subset of the backend the browse flow needs.
type Finder interface {
	Categories(ctx context.Context) ([]backend.Category, error)
	DocumentsByCategory(ctx context.Context, categoryID int) ([]backend.Document, error)
	Search(ctx context.Context, req backend.SearchRequest) ([]backend.Document, error)
}

// Snapshot is a read-only copy of a State taken under its lock.
type Snapshot struct {
	Mode           Mode
	Categories     []backend.Category
	Query          string
	Results        []backend.Document
	Loading        bool
	ActiveCategory int // 0 when results came from a text query
}

// Searching reports whether the snapshot is in searching mode.
func (s Snapshot) Searching() bool { return s.Mode == ModeSearching }

// ArticleLink returns the article view path for doc. Only the document's
// link is carried across.
func ArticleLink(doc backend.Document) string {
	return "/article?url=" + url.QueryEscape(doc.Link)
}
