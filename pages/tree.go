package pages

import (
	"cmp"
	"slices"
)

// SortBySortOrder orders pages by ascending sort order, keeping input order for ties.
func SortBySortOrder(list []*Page) {
	slices.SortStableFunc(list, func(a, b *Page) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
}

// BuildTree returns copies of the provided pages arranged into a hierarchy. Pages whose
// parent is missing from the collection become roots. Inputs are never mutated.
func BuildTree(flat []*Page) []*Page {
	if len(flat) == 0 {
		return nil
	}

	nodes := make(map[int]*Page, len(flat))
	order := make([]*Page, 0, len(flat))
	for _, page := range flat {
		if page == nil {
			continue
		}
		if _, exists := nodes[page.ID]; exists {
			continue
		}
		cloned := *page
		cloned.Children = nil
		nodes[page.ID] = &cloned
		order = append(order, &cloned)
	}

	roots := make([]*Page, 0, len(order))
	for _, node := range order {
		if !node.HasParent() || createsCycle(nodes, node) {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	for _, node := range order {
		SortBySortOrder(node.Children)
	}
	SortBySortOrder(roots)
	return roots
}

func createsCycle(nodes map[int]*Page, start *Page) bool {
	seen := map[int]struct{}{start.ID: {}}
	current := start
	for current.HasParent() {
		parent, ok := nodes[*current.ParentID]
		if !ok {
			return false
		}
		if _, loop := seen[parent.ID]; loop {
			return true
		}
		seen[parent.ID] = struct{}{}
		current = parent
	}
	return false
}
