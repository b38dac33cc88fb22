package content

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// SlugFor returns explicit when it is already a valid slug, otherwise the slug
// derived from title.
func SlugFor(explicit, title string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if slug.IsValid(explicit) {
			return explicit, nil
		}
		return slug.Normalize(explicit)
	}
	return slug.Normalize(strings.TrimSpace(title))
}

// IsValidSlug reports whether value is a URL-safe slug.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
