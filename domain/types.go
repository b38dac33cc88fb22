package domain

import "strings"

// Status represents the publication state reported by the backend for pages and posts.
type Status string

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to visitors.
	StatusPublished Status = "published"
	// StatusArchived marks content retained for history but hidden from the public site.
	StatusArchived Status = "archived"
)

// NormalizeStatus coerces arbitrary backend values into a known status. Empty values
// are treated as published because older backend records omit the field.
func NormalizeStatus(input string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(input))) {
	case "", StatusPublished:
		return StatusPublished
	case StatusDraft:
		return StatusDraft
	case StatusArchived:
		return StatusArchived
	default:
		return Status(strings.ToLower(strings.TrimSpace(input)))
	}
}

// IsPublic reports whether the status allows rendering on the public site.
func (s Status) IsPublic() bool {
	return NormalizeStatus(string(s)) == StatusPublished
}
