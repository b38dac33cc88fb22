package content

import (
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/domain"
)

// Post is an article as returned by the backend API.
type Post struct {
	ID            int           `json:"id"`
	Slug          string        `json:"slug"`
	Title         string        `json:"title"`
	Excerpt       string        `json:"excerpt,omitempty"`
	Content       string        `json:"content,omitempty"`
	Author        *Author       `json:"author,omitempty"`
	Category      *Category     `json:"category,omitempty"`
	FeaturedImage string        `json:"featuredImage,omitempty"`
	PublishedAt   *time.Time    `json:"publishedAt,omitempty"`
	Views         int           `json:"views"`
	Status        domain.Status `json:"status,omitempty"`
	Pages         []PageRef     `json:"pages,omitempty"`
}

// Author references the user who wrote a post.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category groups posts.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PageRef is the lightweight page reference attached to posts.
type PageRef struct {
	ID    int    `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title,omitempty"`
}

// AuthorName returns the author display name or an empty string.
func (p *Post) AuthorName() string {
	if p == nil || p.Author == nil {
		return ""
	}
	return strings.TrimSpace(p.Author.Name)
}

// BelongsTo reports whether the post is associated with the page id.
func (p *Post) BelongsTo(pageID int) bool {
	if p == nil {
		return false
	}
	for _, ref := range p.Pages {
		if ref.ID == pageID {
			return true
		}
	}
	return false
}

// Listing is one page of published posts.
type Listing struct {
	Posts    []Post `json:"posts"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"limit"`
}

// TotalPages returns the number of pages the listing spans.
func (l Listing) TotalPages() int {
	if l.PageSize <= 0 || l.Total <= 0 {
		return 0
	}
	return (l.Total + l.PageSize - 1) / l.PageSize
}

// HasNext reports whether a page follows the current one.
func (l Listing) HasNext() bool {
	return l.Page < l.TotalPages()
}

// HasPrev reports whether a page precedes the current one.
func (l Listing) HasPrev() bool {
	return l.Page > 1
}

const (
	DefaultPageSize = 9
	MaxPageSize     = 50
)

// NormalizePaging clamps a requested page and page size to usable values.
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return page, pageSize
}
