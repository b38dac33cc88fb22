package sections

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Section is one page-builder block owned by a page.
//
// DecodeErr records a type or payload problem found while decoding. It never
// aborts decoding; the renderer shows a placeholder for such sections instead.
type Section struct {
	ID        int
	PageID    int
	Type      Type
	SortOrder int
	Visible   bool
	Data      Payload
	ClassName string
	DecodeErr error
}

type wireSection struct {
	ID        int             `json:"id"`
	PageID    int             `json:"pageId"`
	Type      Type            `json:"type"`
	Order     int             `json:"order"`
	IsVisible *bool           `json:"isVisible,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	ClassName string          `json:"className,omitempty"`
}

// Layout returns the shared layout keys of the payload, or the zero Layout.
func (s Section) Layout() Layout {
	if s.Data == nil {
		return Layout{}
	}
	return s.Data.LayoutData()
}

// Malformed reports whether decoding left the section without a usable payload.
func (s Section) Malformed() bool {
	if s.DecodeErr == nil {
		return false
	}
	var payloadErr *PayloadError
	if errors.As(s.DecodeErr, &payloadErr) {
		return !payloadErr.Recovered
	}
	return true
}

// UnmarshalJSON decodes the wire form. It never fails on a well-formed JSON
// value: field, type and payload problems all land in DecodeErr.
func (s *Section) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	*s = decodeElement(0, b)
	return nil
}

// MarshalJSON encodes the section back to its wire form.
func (s Section) MarshalJSON() ([]byte, error) {
	visible := s.Visible
	wire := wireSection{
		ID:        s.ID,
		PageID:    s.PageID,
		Type:      s.Type,
		Order:     s.SortOrder,
		IsVisible: &visible,
		ClassName: s.ClassName,
	}
	switch p := s.Data.(type) {
	case nil:
	case UnknownPayload:
		wire.Data = p.Raw
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		wire.Data = raw
	}
	return json.Marshal(wire)
}

// DecodeSection decodes a single section from its wire JSON. Only invalid JSON
// is returned as an error.
func DecodeSection(b []byte) (Section, error) {
	if !json.Valid(b) {
		return Section{}, fmt.Errorf("sections: decode section: %w", ErrMalformed)
	}
	return decodeElement(0, b), nil
}

// DecodeSections decodes a JSON array of sections one element at a time, so a
// broken element becomes a placeholder section instead of failing the list.
func DecodeSections(b []byte) ([]Section, error) {
	if isEmptyJSON(b) {
		return nil, nil
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(b, &elements); err != nil {
		return nil, fmt.Errorf("sections: decode section list: %w", err)
	}
	out := make([]Section, 0, len(elements))
	for i, raw := range elements {
		out = append(out, decodeElement(i, raw))
	}
	return out, nil
}

func decodeElement(index int, raw json.RawMessage) Section {
	var wire wireSection
	if err := json.Unmarshal(raw, &wire); err == nil {
		return fromWire(wire)
	}
	return fromBrokenWire(index, raw)
}

// fromBrokenWire salvages what it can from an element whose fields do not
// match the wire types. The result is always malformed.
func fromBrokenWire(index int, raw json.RawMessage) Section {
	s := Section{Visible: true}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		s.DecodeErr = &FieldError{Index: index, Err: err}
		return s
	}

	var broken *FieldError
	decodeField := func(key string, target any) {
		value, ok := fields[key]
		if !ok || isEmptyJSON(value) {
			return
		}
		if err := json.Unmarshal(value, target); err != nil && broken == nil {
			broken = &FieldError{Index: index, Field: key, Err: err}
		}
	}

	var typeName string
	var visible *bool
	decodeField("id", &s.ID)
	decodeField("pageId", &s.PageID)
	decodeField("type", &typeName)
	decodeField("order", &s.SortOrder)
	decodeField("isVisible", &visible)
	decodeField("className", &s.ClassName)

	s.Type = Type(strings.TrimSpace(typeName))
	s.ClassName = strings.TrimSpace(s.ClassName)
	if visible != nil {
		s.Visible = *visible
	}
	if broken == nil {
		broken = &FieldError{Index: index, Err: ErrMalformed}
	}
	s.Data = unknownPayload(fields["data"])
	s.DecodeErr = broken
	return s
}

// DecodePayload decodes raw into the variant selected by t, rejecting keys the
// variant does not declare.
func DecodePayload(t Type, raw json.RawMessage) (Payload, error) {
	target, ok := newPayload(t)
	if !ok {
		return unknownPayload(raw), &UnknownTypeError{Type: t}
	}
	if isEmptyJSON(raw) {
		return derefPayload(target), nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, err
	}
	return derefPayload(target), nil
}

func fromWire(wire wireSection) Section {
	s := Section{
		ID:        wire.ID,
		PageID:    wire.PageID,
		Type:      Type(strings.TrimSpace(string(wire.Type))),
		SortOrder: wire.Order,
		Visible:   wire.IsVisible == nil || *wire.IsVisible,
		ClassName: strings.TrimSpace(wire.ClassName),
	}

	payload, err := DecodePayload(s.Type, wire.Data)
	if err == nil {
		s.Data = payload
		return s
	}

	var typeErr *UnknownTypeError
	if errors.As(err, &typeErr) {
		typeErr.SectionID = s.ID
		s.Data = payload
		s.DecodeErr = typeErr
		return s
	}

	// Keys outside the variant are reported, but the declared ones still render.
	payloadErr := &PayloadError{Type: s.Type, SectionID: s.ID, Err: err}
	if lenient, ok := decodeLenient(s.Type, wire.Data); ok {
		payloadErr.Recovered = strings.Contains(err.Error(), "unknown field")
		if payloadErr.Recovered {
			s.Data = lenient
		}
	}
	if s.Data == nil {
		s.Data = unknownPayload(wire.Data)
	}
	s.DecodeErr = payloadErr
	return s
}

func decodeLenient(t Type, raw json.RawMessage) (Payload, bool) {
	target, ok := newPayload(t)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, false
	}
	return derefPayload(target), true
}

func unknownPayload(raw json.RawMessage) UnknownPayload {
	p := UnknownPayload{Raw: append(json.RawMessage(nil), raw...)}
	if !isEmptyJSON(raw) {
		_ = json.Unmarshal(raw, &p.Layout)
	}
	return p
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
