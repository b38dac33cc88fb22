package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPostNotFound     = errors.New("content: post not found")
	ErrDirectorNotFound = errors.New("content: director not found")
)

// NotFoundError captures missing post or director lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	base := e.Unwrap().Error()
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return base
	}
	return fmt.Sprintf("%s: key=%s", base, strings.TrimSpace(e.Key))
}

func (e *NotFoundError) Unwrap() error {
	if e != nil && strings.EqualFold(strings.TrimSpace(e.Resource), "director") {
		return ErrDirectorNotFound
	}
	return ErrPostNotFound
}
