package routing

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-cms-site/internal/guard"
)

var (
	// ErrNotFound marks a terminal lookup failure of a page, gallery or service.
	ErrNotFound = errors.New("routing: not found")
	// ErrStale is returned when a newer resolution superseded this one or the
	// caller went away before the result could be used.
	ErrStale = guard.ErrStale
)

// PartialLoadError reports secondary data that failed to load after the page
// itself resolved. It is logged and the page renders without that data.
type PartialLoadError struct {
	Resource string
	PageID   int
	Err      error
}

func (e *PartialLoadError) Error() string {
	return fmt.Sprintf("routing: load %s for page %d: %v", e.Resource, e.PageID, e.Err)
}

func (e *PartialLoadError) Unwrap() error { return e.Err }
