package media

import "strings"

// Reference is an opaque media identifier stored by the backend, usually a file name
// relative to the uploads directory or an absolute URL.
type Reference string

// IsAbsolute reports whether the reference already carries a scheme or is protocol relative.
func (r Reference) IsAbsolute() bool {
	value := strings.TrimSpace(string(r))
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(value, "//")
}

// IsEmpty reports whether the reference is blank.
func (r Reference) IsEmpty() bool {
	return strings.TrimSpace(string(r)) == ""
}
