package backend

import (
	"context"
	"fmt"

	"github.com/goliatone/go-cms-site/internal/cache"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

var (
	pageCachePrefix  = cache.Prefix("pages")
	pageListCacheKey = cache.Key("pages", "list")
)

// CachedPages decorates a PageSource with a cached flat page list. Slug
// lookups always reach the source.
type CachedPages struct {
	source interfaces.PageSource
	cache  interfaces.CacheProvider
	logger interfaces.Logger
}

// NewCachedPages wraps source. A nil cache disables caching.
func NewCachedPages(source interfaces.PageSource, provider interfaces.CacheProvider, logger interfaces.Logger) *CachedPages {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &CachedPages{source: source, cache: provider, logger: logger}
}

func (c *CachedPages) GetPageBySlug(ctx context.Context, slug string) (*pages.Page, error) {
	return c.source.GetPageBySlug(ctx, slug)
}

// ListPages serves the cached list when present. Source errors are returned
// as is and never cached; cache failures fall through to the source.
func (c *CachedPages) ListPages(ctx context.Context) ([]*pages.Page, error) {
	if c.cache == nil {
		return c.source.ListPages(ctx)
	}

	var fetchErr error
	value, err := c.cache.GetOrFetch(ctx, pageListCacheKey, func(ctx context.Context) (any, error) {
		list, err := c.source.ListPages(ctx)
		if err != nil {
			fetchErr = err
			return nil, err
		}
		return clonePages(list), nil
	})
	if fetchErr != nil {
		return nil, fetchErr
	}
	if err != nil {
		c.logger.WithContext(ctx).Warn("backend.pages.cache_failed", "error", err)
		return c.source.ListPages(ctx)
	}
	list, ok := value.([]*pages.Page)
	if !ok {
		c.logger.WithContext(ctx).Warn("backend.pages.cache_type_mismatch", "type", fmt.Sprintf("%T", value))
		return c.source.ListPages(ctx)
	}
	return clonePages(list), nil
}

// InvalidatePages drops every cached page entry.
func (c *CachedPages) InvalidatePages(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.DeleteByPrefix(ctx, pageCachePrefix)
}

func clonePages(list []*pages.Page) []*pages.Page {
	out := make([]*pages.Page, 0, len(list))
	for _, page := range list {
		if page == nil {
			continue
		}
		cloned := *page
		cloned.Children = nil
		out = append(out, &cloned)
	}
	return out
}
