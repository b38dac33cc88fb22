package pages

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPageNotFound    = errors.New("pages: page not found")
	ErrGalleryNotFound = errors.New("pages: gallery not found")
	ErrServiceNotFound = errors.New("pages: service not found")
	ErrSlugRequired    = errors.New("pages: slug is required")
	ErrSlugInvalid     = errors.New("pages: slug contains invalid characters")
	ErrParentCycle     = errors.New("pages: parent assignment creates hierarchy cycle")
)

// NotFoundError captures a missing page-scoped entity lookup.
type NotFoundError struct {
	Resource string
	Key      string
	PageID   int
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrPageNotFound.Error()
	}
	base := e.sentinel().Error()
	key := strings.TrimSpace(e.Key)
	switch {
	case key != "" && e.PageID > 0:
		return fmt.Sprintf("%s: page=%d key=%s", base, e.PageID, key)
	case key != "":
		return fmt.Sprintf("%s: key=%s", base, key)
	default:
		return base
	}
}

func (e *NotFoundError) Unwrap() error {
	return e.sentinel()
}

func (e *NotFoundError) sentinel() error {
	if e == nil {
		return ErrPageNotFound
	}
	switch strings.ToLower(strings.TrimSpace(e.Resource)) {
	case "gallery":
		return ErrGalleryNotFound
	case "service":
		return ErrServiceNotFound
	default:
		return ErrPageNotFound
	}
}
