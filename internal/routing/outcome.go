package routing

import (
	"net/http"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/internal/pagebuilder"
	"github.com/goliatone/go-cms-site/pages"
)

// Kind is the mutually exclusive result of resolving a URL.
type Kind string

const (
	KindNotFound        Kind = "not-found"
	KindGalleryItem     Kind = "gallery-item"
	KindGalleryNotFound Kind = "gallery-not-found"
	KindServiceItem     Kind = "service-item"
	KindServiceNotFound Kind = "service-not-found"
	KindPageView        Kind = "page-view"
)

// Messages shown for the not found kinds.
const (
	MessagePageNotFound    = "Stranica nije pronađena."
	MessageGalleryNotFound = "Galerija nije pronađena."
	MessageServiceNotFound = "Usluga nije pronađena."
	MessagePostNotFound    = "Članak nije pronađen."
)

// IsNotFound reports whether k is one of the terminal not found kinds.
func (k Kind) IsNotFound() bool {
	return k == KindNotFound || k == KindGalleryNotFound || k == KindServiceNotFound
}

// Outcome carries exactly the data its Kind needs.
//
// Page is set for every kind except KindNotFound. Composition is set for page
// builder pages, Template and Posts for legacy pages. Galleries and Services
// list the children of gallery and services pages viewed without a sub-slug.
type Outcome struct {
	Kind        Kind
	Page        *pages.Page
	Gallery     *pages.Gallery
	Service     *pages.Service
	Mode        pages.RenderMode
	Composition *pagebuilder.Composition
	Template    string
	Posts       []content.Post
	Galleries   []pages.Gallery
	Services    []pages.Service
	Message     string
	Cause       error
}

// StatusCode maps the kind to the HTTP status the page is served with.
func (o Outcome) StatusCode() int {
	if o.Kind.IsNotFound() {
		return http.StatusNotFound
	}
	return http.StatusOK
}

// PostOutcome is the result of resolving a single post.
type PostOutcome struct {
	Found   bool
	Post    *content.Post
	Message string
	Cause   error
}

// ListingOutcome is one page of the public post list.
type ListingOutcome struct {
	Listing content.Listing
	Partial bool
}
