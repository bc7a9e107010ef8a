// Package pages serves the reader's HTML views: home (browse and search),
// topic listings with read and favorite flags, and the article summary with
// its chat widget.
package pages

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/ziadkadry99/research-reader/internal/annotations"
	"github.com/ziadkadry99/research-reader/internal/backend"
	"github.com/ziadkadry99/research-reader/internal/browse"
	"github.com/ziadkadry99/research-reader/internal/chat"
)

// Backend is what the views read from the summarization backend.
// *backend.CategoryCache satisfies it.
type Backend interface {
	Categories(ctx context.Context) ([]backend.Category, error)
	CategoryName(ctx context.Context, id int) string
	DocumentsByCategory(ctx context.Context, categoryID int) ([]backend.Document, error)
	ArticleSummary(ctx context.Context, articleURL string) (*backend.ArticleSummary, error)
}

// Options configures a Pages instance.
type Options struct {
	SiteName string
	// SummaryTTL bounds how long a fetched article summary is reused, so the
	// chat form's redirect back to the article does not re-run summarization.
	SummaryTTL time.Duration
	// TopicTTL bounds how long a visitor's loaded topic list is reused when
	// switching tabs or toggling flags.
	TopicTTL time.Duration
}

// Pages holds the view handlers' dependencies.
type Pages struct {
	backend     Backend
	browse      *browse.Registry
	annotations annotations.Store
	chat        *chat.Service
	logger      *zap.Logger
	siteName    string

	summaries *gocache.Cache
	topics    *gocache.Cache
	view      *renderer
}

// New creates the page handlers.
func New(b Backend, registry *browse.Registry, store annotations.Store, chatSvc *chat.Service, logger *zap.Logger, opts Options) *Pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.SiteName == "" {
		opts.SiteName = "Neromind"
	}
	if opts.SummaryTTL <= 0 {
		opts.SummaryTTL = 15 * time.Minute
	}
	if opts.TopicTTL <= 0 {
		opts.TopicTTL = 15 * time.Minute
	}
	return &Pages{
		backend:     b,
		browse:      registry,
		annotations: store,
		chat:        chatSvc,
		logger:      logger,
		siteName:    opts.SiteName,
		summaries:   gocache.New(opts.SummaryTTL, opts.SummaryTTL),
		topics:      gocache.New(opts.TopicTTL, opts.TopicTTL),
		view:        newRenderer(logger),
	}
}

// layoutData is the part of every page's data the layout reads.
type layoutData struct {
	SiteName          string
	Title             string
	Query             string
	SearchPlaceholder string
	BackLink          string
	HistoryBack       bool
	NavCategories     []backend.Category
}

// bareLayout is the layout without navigation categories; it makes no
// backend call.
func (p *Pages) bareLayout(title string) layoutData {
	return layoutData{
		SiteName:          p.siteName,
		Title:             title,
		SearchPlaceholder: "Search ...",
	}
}

func (p *Pages) layout(ctx context.Context, title string) layoutData {
	data := p.bareLayout(title)
	cats, err := p.backend.Categories(ctx)
	if err != nil {
		p.logger.Warn("loading navigation categories", zap.Error(err))
	}
	data.NavCategories = cats
	return data
}
