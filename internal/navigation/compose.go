package navigation

import (
	"github.com/goliatone/go-cms-site/pages"
)

// Item is one rendered menu link. Page is shared with the index and must be
// treated as read-only.
type Item struct {
	Title    string
	Slug     string
	URL      string
	Page     *pages.Page
	Children []Item
}

// HasChildren reports whether the item renders as a dropdown.
func (i Item) HasChildren() bool { return len(i.Children) > 0 }

// URLBuilder produces the public URL of a page slug.
type URLBuilder interface {
	PageURL(slug string) string
}

type pathBuilder struct{}

func (pathBuilder) PageURL(slug string) string { return "/" + slug }

// Compose merges the template with the indexed pages. Entries whose page is
// missing are dropped. Inputs are never modified.
func Compose(tpl Template, idx *Index) []Item {
	return ComposeWith(tpl, idx, nil)
}

// ComposeWith is Compose with URLs produced by urls. A nil builder yields
// root-relative paths.
func ComposeWith(tpl Template, idx *Index, urls URLBuilder) []Item {
	if urls == nil {
		urls = pathBuilder{}
	}
	items := make([]Item, 0, tpl.Len())
	for _, entry := range tpl.entries {
		page, ok := idx.BySlug(entry.Slug)
		if !ok {
			continue
		}
		item := newItem(entry.Title, page, urls)
		item.Children = children(entry.Children, page, idx, urls)
		items = append(items, item)
	}
	return items
}

func children(rule ChildRule, parent *pages.Page, idx *Index, urls URLBuilder) []Item {
	switch rule.kind {
	case childFixed:
		var out []Item
		for _, slug := range rule.slugs {
			if page, ok := idx.BySlug(slug); ok {
				out = append(out, newItem("", page, urls))
			}
		}
		return out
	case childAuto:
		var out []Item
		for _, page := range idx.ChildrenOf(parent.ID) {
			out = append(out, newItem("", page, urls))
		}
		return out
	default:
		return nil
	}
}

func newItem(title string, page *pages.Page, urls URLBuilder) Item {
	if title == "" {
		title = page.Title
	}
	slug := normalizeSlug(page.Slug)
	return Item{
		Title: title,
		Slug:  slug,
		URL:   urls.PageURL(slug),
		Page:  page,
	}
}
