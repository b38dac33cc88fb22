package interfaces

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/sections"
)

// DirectorStore manages directors through the backend API. Save creates when
// the ID is zero and updates otherwise.
type DirectorStore interface {
	ListDirectors(ctx context.Context) ([]content.Director, error)
	GetDirector(ctx context.Context, id int) (*content.Director, error)
	SaveDirector(ctx context.Context, director content.Director) (*content.Director, error)
	DeleteDirector(ctx context.Context, id int) error
}

// GalleryStore manages galleries through the backend API.
type GalleryStore interface {
	ListAllGalleries(ctx context.Context) ([]pages.Gallery, error)
	GetGallery(ctx context.Context, id int) (*pages.Gallery, error)
	SaveGallery(ctx context.Context, gallery pages.Gallery) (*pages.Gallery, error)
	DeleteGallery(ctx context.Context, id int) error
}

// SectionUpdate carries the editable fields of a page-builder section.
type SectionUpdate struct {
	ID        int             `json:"id"`
	PageID    int             `json:"pageId"`
	Type      sections.Type   `json:"type"`
	Order     int             `json:"order"`
	IsVisible bool            `json:"isVisible"`
	Data      json.RawMessage `json:"data,omitempty"`
	ClassName string          `json:"className,omitempty"`
}

// SectionWriter persists section edits.
type SectionWriter interface {
	UpdateSection(ctx context.Context, update SectionUpdate) (*sections.Section, error)
}

// PostWriter creates posts; used by the import tool.
type PostWriter interface {
	CreatePost(ctx context.Context, post content.Post) (*content.Post, error)
}
