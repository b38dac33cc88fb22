package navigation

import (
	"github.com/goliatone/go-cms-site/pages"
)

// Index is an immutable lookup over a flat page collection.
type Index struct {
	byID     map[int]*pages.Page
	bySlug   map[string]*pages.Page
	byParent map[int][]*pages.Page
}

// NewIndex copies the pages and indexes them by id, slug and parent. The first
// page wins when ids or slugs repeat. Children lists are ordered by sort order.
func NewIndex(list []*pages.Page) *Index {
	idx := &Index{
		byID:     make(map[int]*pages.Page, len(list)),
		bySlug:   make(map[string]*pages.Page, len(list)),
		byParent: make(map[int][]*pages.Page),
	}
	for _, page := range list {
		if page == nil {
			continue
		}
		if _, exists := idx.byID[page.ID]; exists {
			continue
		}
		cloned := *page
		cloned.Children = nil
		idx.byID[cloned.ID] = &cloned

		if slug := normalizeSlug(cloned.Slug); slug != "" {
			if _, exists := idx.bySlug[slug]; !exists {
				idx.bySlug[slug] = &cloned
			}
		}
		if cloned.HasParent() {
			idx.byParent[*cloned.ParentID] = append(idx.byParent[*cloned.ParentID], &cloned)
		}
	}
	for _, children := range idx.byParent {
		pages.SortBySortOrder(children)
	}
	return idx
}

// ByID returns the page with the given id.
func (i *Index) ByID(id int) (*pages.Page, bool) {
	if i == nil {
		return nil, false
	}
	page, ok := i.byID[id]
	return page, ok
}

// BySlug returns the page with the given slug.
func (i *Index) BySlug(slug string) (*pages.Page, bool) {
	if i == nil {
		return nil, false
	}
	page, ok := i.bySlug[normalizeSlug(slug)]
	return page, ok
}

// ChildrenOf returns the pages whose parent is id, ordered by sort order.
func (i *Index) ChildrenOf(id int) []*pages.Page {
	if i == nil {
		return nil
	}
	children := i.byParent[id]
	out := make([]*pages.Page, len(children))
	copy(out, children)
	return out
}

// Len reports the number of indexed pages.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byID)
}
