package sections

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType     = errors.New("sections: unknown section type")
	ErrInvalidPayload  = errors.New("sections: invalid section payload")
	ErrMalformed       = errors.New("sections: malformed section")
	ErrSchemaNotFound  = errors.New("sections: schema not found for type")
	ErrHiddenSection   = errors.New("sections: section is hidden")
	ErrTemplateMissing = errors.New("sections: template missing")
)

// UnknownTypeError reports a section whose type is missing or outside the closed set.
type UnknownTypeError struct {
	Type      Type
	SectionID int
}

func (e *UnknownTypeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("sections: section %d has no type", e.SectionID)
	}
	return fmt.Sprintf("sections: unknown section type %q on section %d", e.Type, e.SectionID)
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

// FieldError reports a section whose own fields, outside data, did not decode.
// Field is empty when the element is not a JSON object at all.
type FieldError struct {
	Index int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("sections: element %d is not a section: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("sections: element %d has invalid %q: %v", e.Index, e.Field, e.Err)
}

func (e *FieldError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

// PayloadError reports a data payload that does not match its type's variant.
// Recovered is true when a lenient decode still produced a usable payload.
type PayloadError struct {
	Type      Type
	SectionID int
	Recovered bool
	Err       error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("sections: %s payload on section %d: %v", e.Type, e.SectionID, e.Err)
}

func (e *PayloadError) Unwrap() []error { return []error{ErrInvalidPayload, e.Err} }

// Issue is one schema violation found in a payload.
type Issue struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// PayloadValidationError lists every schema violation for a payload.
type PayloadValidationError struct {
	Type   Type
	Issues []Issue
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("sections: %s payload is invalid", e.Type)
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		loc := issue.Location
		if loc == "" {
			loc = "/"
		}
		parts = append(parts, loc+": "+issue.Message)
	}
	return fmt.Sprintf("sections: %s payload is invalid: %s", e.Type, strings.Join(parts, "; "))
}

func (e *PayloadValidationError) Unwrap() error { return ErrInvalidPayload }
