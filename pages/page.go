package pages

import (
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/domain"
)

// RenderMode selects which top-level view renders a page.
type RenderMode string

const (
	// RenderModePageBuilder renders the page from its ordered sections.
	RenderModePageBuilder RenderMode = "page-builder"
	// RenderModeTemplate renders the page through a legacy fixed template.
	RenderModeTemplate RenderMode = "template"
	// RenderModeGallery renders the page as a gallery index with addressable galleries beneath it.
	RenderModeGallery RenderMode = "gallery"
	// RenderModeServices renders the page as a services index with addressable services beneath it.
	RenderModeServices RenderMode = "services"
)

const (
	TemplateDefault  = "default"
	TemplateGallery  = "gallery"
	TemplateServices = "services"
)

// Page is a content node as returned by the backend API.
//
// Children is not part of the stored record; it is populated by BuildTree.
type Page struct {
	ID              int           `json:"id"`
	Slug            string        `json:"slug"`
	Title           string        `json:"title"`
	ParentID        *int          `json:"parentId,omitempty"`
	Children        []*Page       `json:"children,omitempty"`
	SortOrder       int           `json:"sortOrder"`
	Template        string        `json:"template,omitempty"`
	UsePageBuilder  bool          `json:"usePageBuilder"`
	Status          domain.Status `json:"status,omitempty"`
	Content         string        `json:"content,omitempty"`
	Excerpt         string        `json:"excerpt,omitempty"`
	FeaturedImage   string        `json:"featuredImage,omitempty"`
	MetaTitle       string        `json:"metaTitle,omitempty"`
	MetaDescription string        `json:"metaDescription,omitempty"`
	CreatedAt       time.Time     `json:"createdAt,omitzero"`
	UpdatedAt       time.Time     `json:"updatedAt,omitzero"`
}

// Mode derives the render mode. The page builder flag wins over any template value
// so exactly one of the two decides rendering.
func (p *Page) Mode() RenderMode {
	if p == nil {
		return RenderModeTemplate
	}
	if p.UsePageBuilder {
		return RenderModePageBuilder
	}
	switch strings.ToLower(strings.TrimSpace(p.Template)) {
	case TemplateGallery:
		return RenderModeGallery
	case TemplateServices:
		return RenderModeServices
	default:
		return RenderModeTemplate
	}
}

// TemplateName returns the legacy template identifier, defaulting to TemplateDefault.
func (p *Page) TemplateName() string {
	if p == nil {
		return TemplateDefault
	}
	name := strings.ToLower(strings.TrimSpace(p.Template))
	if name == "" {
		return TemplateDefault
	}
	return name
}

// HasParent reports whether the page sits beneath another page.
func (p *Page) HasParent() bool {
	return p != nil && p.ParentID != nil && *p.ParentID > 0
}

// Gallery is addressable only beneath a page in gallery render mode.
type Gallery struct {
	ID          int            `json:"id"`
	PageID      int            `json:"pageId"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	CoverImage  string         `json:"coverImage,omitempty"`
	Images      []GalleryImage `json:"images,omitempty"`
	EventDate   *time.Time     `json:"eventDate,omitempty"`
	SortOrder   int            `json:"sortOrder"`
	CreatedAt   time.Time      `json:"createdAt,omitzero"`
}

// GalleryImage is one image within a gallery.
type GalleryImage struct {
	ID      int    `json:"id,omitempty"`
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// Cover returns the configured cover image or the first gallery image.
func (g *Gallery) Cover() string {
	if g == nil {
		return ""
	}
	if strings.TrimSpace(g.CoverImage) != "" {
		return g.CoverImage
	}
	for _, img := range g.Images {
		if strings.TrimSpace(img.Image) != "" {
			return img.Image
		}
	}
	return ""
}

// Service is addressable only beneath a page in services render mode.
type Service struct {
	ID        int    `json:"id"`
	PageID    int    `json:"pageId"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Excerpt   string `json:"excerpt,omitempty"`
	Content   string `json:"content,omitempty"`
	Icon      string `json:"icon,omitempty"`
	Image     string `json:"image,omitempty"`
	SortOrder int    `json:"sortOrder"`
}
