package navigation

import (
	"cmp"
	"slices"
	"strings"
)

type childKind uint8

const (
	childNone childKind = iota
	childFixed
	childAuto
)

// ChildRule decides how a template entry derives its submenu. The zero value
// derives no children.
type ChildRule struct {
	kind  childKind
	slugs []string
}

// FixedChildren resolves the listed slugs, in the listed order, against the
// page collection. Slugs without a page are skipped.
func FixedChildren(slugs ...string) ChildRule {
	cleaned := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if slug = normalizeSlug(slug); slug != "" {
			cleaned = append(cleaned, slug)
		}
	}
	return ChildRule{kind: childFixed, slugs: cleaned}
}

// AutoChildren derives children from every page whose parent is the entry's
// page, ordered by sort order.
func AutoChildren() ChildRule {
	return ChildRule{kind: childAuto}
}

// Auto reports whether the rule populates children from sub-pages.
func (r ChildRule) Auto() bool { return r.kind == childAuto }

// Slugs returns a copy of the fixed child slugs.
func (r ChildRule) Slugs() []string { return slices.Clone(r.slugs) }

// TemplateEntry is one top-level menu position.
type TemplateEntry struct {
	ID       string
	Title    string
	Slug     string
	Position int
	Children ChildRule
}

// Template is the fixed, ordered structure of the main menu. It is never
// modified after construction.
type Template struct {
	entries []TemplateEntry
}

// NewTemplate copies entries and orders them by position. Entries sharing a
// position keep their given order.
func NewTemplate(entries ...TemplateEntry) Template {
	list := make([]TemplateEntry, 0, len(entries))
	for _, entry := range entries {
		entry.Slug = normalizeSlug(entry.Slug)
		if entry.Slug == "" {
			continue
		}
		entry.Children.slugs = slices.Clone(entry.Children.slugs)
		list = append(list, entry)
	}
	slices.SortStableFunc(list, func(a, b TemplateEntry) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return Template{entries: list}
}

// Entries returns the ordered entries.
func (t Template) Entries() []TemplateEntry {
	out := make([]TemplateEntry, len(t.entries))
	for i, entry := range t.entries {
		entry.Children.slugs = slices.Clone(entry.Children.slugs)
		out[i] = entry
	}
	return out
}

// Len reports the number of entries.
func (t Template) Len() int { return len(t.entries) }

// DefaultTemplate is the municipal site's main menu.
func DefaultTemplate() Template {
	return NewTemplate(
		TemplateEntry{ID: "home", Title: "Početna", Slug: "pocetna", Position: 0},
		TemplateEntry{ID: "about", Title: "O nama", Slug: "o-nama", Position: 1,
			Children: FixedChildren("nacelnik", "opcinsko-vijece", "povijest")},
		TemplateEntry{ID: "municipality", Title: "Općina", Slug: "opcina", Position: 2, Children: AutoChildren()},
		TemplateEntry{ID: "services", Title: "Usluge", Slug: "usluge", Position: 3, Children: AutoChildren()},
		TemplateEntry{ID: "news", Title: "Vijesti", Slug: "vijesti", Position: 4},
		TemplateEntry{ID: "gallery", Title: "Galerija", Slug: "galerija", Position: 5},
		TemplateEntry{ID: "contact", Title: "Kontakt", Slug: "kontakt", Position: 6},
	)
}

func normalizeSlug(value string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(value), "/"))
}
