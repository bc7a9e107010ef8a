package backend

import (
	"context"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const categoriesKey = "categories"

// CategoryCache keeps the static category list so pages and the browse
// state share one fetch. Everything else passes straight through.
type CategoryCache struct {
	*Client
	cache *gocache.Cache
}

// NewCategoryCache wraps client; ttl <= 0 keeps the list until Invalidate.
func NewCategoryCache(client *Client, ttl time.Duration) *CategoryCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &CategoryCache{
		Client: client,
		cache:  gocache.New(ttl, 10*time.Minute),
	}
}

// Categories returns the cached list, fetching it on first use. Failures
// are not cached.
func (c *CategoryCache) Categories(ctx context.Context) ([]Category, error) {
	if v, ok := c.cache.Get(categoriesKey); ok {
		return v.([]Category), nil
	}
	cats, err := c.Client.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(categoriesKey, cats)
	return cats, nil
}

// CategoryName resolves a category id to its display name, falling back to
// "Topic <id>" when the list is unavailable or has no such id.
func (c *CategoryCache) CategoryName(ctx context.Context, id int) string {
	cats, err := c.Categories(ctx)
	if err == nil {
		for _, cat := range cats {
			if cat.ID == id {
				return cat.Name
			}
		}
	}
	return "Topic " + strconv.Itoa(id)
}

// Invalidate drops the cached list.
func (c *CategoryCache) Invalidate() {
	c.cache.Delete(categoriesKey)
}
