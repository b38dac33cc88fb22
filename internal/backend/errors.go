package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/pages"
)

var (
	// ErrUnexpectedStatus is wrapped by every StatusError.
	ErrUnexpectedStatus = errors.New("backend: unexpected response status")
	// ErrEmptyResponse reports a single-object lookup answered with no body.
	ErrEmptyResponse = errors.New("backend: empty response body")
)

// StatusError reports a non-2xx response other than 404.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("backend: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

// Temporary reports whether the backend signalled a transient failure.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// resource names the entity behind an endpoint so 404s map onto the model
// package's NotFoundError.
type resource struct {
	name   string
	key    string
	pageID int
}

func (r resource) notFound() error {
	switch r.name {
	case "post", "director":
		return &content.NotFoundError{Resource: r.name, Key: r.key}
	case "":
		return nil
	default:
		return &pages.NotFoundError{Resource: r.name, Key: r.key, PageID: r.pageID}
	}
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return e.Error
}
