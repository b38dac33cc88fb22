package views

import (
	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/sections"
)

// NotFound is the payload of the not-found view.
type NotFound struct {
	Message   string
	BackURL   string
	BackLabel string
}

// Listing is the payload of the post listing view.
type Listing struct {
	Listing content.Listing
	Partial bool
}

// DirectorForm is the payload of the director editor.
type DirectorForm struct {
	Director content.Director
	Action   string
	Errors   map[string]string
}

// GalleryForm is the payload of the gallery editor.
type GalleryForm struct {
	Gallery pages.Gallery
	Action  string
	Errors  map[string]string
}

// SectionsEditor is the payload of the page sections overview.
type SectionsEditor struct {
	PageID   int
	Sections []sections.Section
}
