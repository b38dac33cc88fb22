package media

import (
	"net/url"
	"strings"

	sitemedia "github.com/goliatone/go-cms-site/media"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

// DefaultBaseURL is where the backend serves uploaded files.
const DefaultBaseURL = "/uploads"

// Resolver joins stored media references onto the uploads base URL.
type Resolver struct {
	base string
}

var _ interfaces.MediaResolver = Resolver{}

// NewResolver returns a resolver rooted at base. An empty base uses DefaultBaseURL.
func NewResolver(base string) Resolver {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Resolver{base: base}
}

// URL resolves ref. Absolute references pass through, empty ones stay empty and
// everything else is escaped per path segment and joined to the base.
func (r Resolver) URL(ref string) string {
	reference := sitemedia.Reference(ref)
	if reference.IsEmpty() {
		return ""
	}
	value := strings.TrimSpace(ref)
	if reference.IsAbsolute() {
		return value
	}

	value = strings.TrimLeft(value, "/")
	base := r.base
	if base == "" {
		base = DefaultBaseURL
	}
	// References already carrying the uploads prefix are not prefixed twice.
	if trimmedBase := strings.TrimLeft(base, "/"); trimmedBase != "" && strings.HasPrefix(value, trimmedBase+"/") {
		value = strings.TrimPrefix(value, trimmedBase+"/")
	}

	segments := strings.Split(value, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return base + "/" + strings.Join(segments, "/")
}

// Base returns the configured base URL.
func (r Resolver) Base() string { return r.base }
