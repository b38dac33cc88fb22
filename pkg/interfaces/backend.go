package interfaces

import (
	"context"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/sections"
)

// PageSource resolves pages from the backend API. Missing pages are reported as an
// error wrapping pages.ErrPageNotFound.
type PageSource interface {
	GetPageBySlug(ctx context.Context, slug string) (*pages.Page, error)
	ListPages(ctx context.Context) ([]*pages.Page, error)
}

// SectionSource lists the page builder sections owned by a page. Order is not guaranteed.
type SectionSource interface {
	ListSections(ctx context.Context, pageID int) ([]sections.Section, error)
}

// GallerySource resolves galleries scoped to a page.
type GallerySource interface {
	GetGalleryBySlug(ctx context.Context, pageID int, slug string) (*pages.Gallery, error)
	ListGalleries(ctx context.Context, pageID int) ([]pages.Gallery, error)
}

// ServiceSource resolves services scoped to a page.
type ServiceSource interface {
	GetServiceBySlug(ctx context.Context, pageID int, slug string) (*pages.Service, error)
	ListServices(ctx context.Context, pageID int) ([]pages.Service, error)
}

// PostSource resolves published posts.
type PostSource interface {
	ListPublishedPosts(ctx context.Context, page, pageSize int) (content.Listing, error)
	ListPostsForPage(ctx context.Context, pageID int) ([]content.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*content.Post, error)
}

// ViewCounter records a post view. Callers treat it as fire-and-forget.
type ViewCounter interface {
	IncrementPostView(ctx context.Context, slug string) error
}

// MediaResolver turns an opaque media reference into an absolute URL. It never fails;
// empty references resolve to an empty string.
type MediaResolver interface {
	URL(ref string) string
}
