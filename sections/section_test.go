package sections

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDecodeSectionSelectsVariantByType(t *testing.T) {
	raw := []byte(`{"id":7,"pageId":3,"type":"card-left","order":2,"isVisible":true,
		"data":{"title":"Usluge","layout":"full-width","cards":[{"title":"A","image":"a.jpg"}]},
		"className":" extra "}`)

	section, err := DecodeSection(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if section.DecodeErr != nil {
		t.Fatalf("unexpected decode error: %v", section.DecodeErr)
	}
	if section.ID != 7 || section.PageID != 3 || section.SortOrder != 2 || section.ClassName != "extra" {
		t.Fatalf("unexpected section fields: %+v", section)
	}
	payload, ok := section.Data.(CardsPayload)
	if !ok {
		t.Fatalf("expected CardsPayload, got %T", section.Data)
	}
	if payload.Title != "Usluge" || len(payload.Cards) != 1 || payload.Cards[0].Image != "a.jpg" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if section.Layout().LayoutMode != "full-width" {
		t.Fatalf("expected layout full-width, got %q", section.Layout().LayoutMode)
	}
}

func TestDecodeSectionDefaultsVisibleWhenAbsent(t *testing.T) {
	section, err := DecodeSection([]byte(`{"id":1,"type":"cta-one","order":0}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !section.Visible {
		t.Fatalf("expected section without isVisible to be visible")
	}

	hidden, err := DecodeSection([]byte(`{"id":2,"type":"cta-one","isVisible":false}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hidden.Visible {
		t.Fatalf("expected explicit isVisible=false to hide the section")
	}
}

func TestDecodeSectionRecordsUnknownType(t *testing.T) {
	section, err := DecodeSection([]byte(`{"id":9,"type":"carousel","data":{"backgroundColor":"#000"}}`))
	if err != nil {
		t.Fatalf("decode should not fail for unknown type: %v", err)
	}
	if !errors.Is(section.DecodeErr, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", section.DecodeErr)
	}
	var typeErr *UnknownTypeError
	if !errors.As(section.DecodeErr, &typeErr) || typeErr.SectionID != 9 || typeErr.Type != "carousel" {
		t.Fatalf("unexpected type error: %#v", section.DecodeErr)
	}
	unknown, ok := section.Data.(UnknownPayload)
	if !ok {
		t.Fatalf("expected UnknownPayload, got %T", section.Data)
	}
	if unknown.BackgroundColor != "#000" {
		t.Fatalf("expected layout keys preserved on unknown payload, got %+v", unknown.Layout)
	}
}

func TestDecodeSectionMissingType(t *testing.T) {
	section, err := DecodeSection([]byte(`{"id":4,"data":{}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !errors.Is(section.DecodeErr, ErrUnknownType) {
		t.Fatalf("expected missing type to be reported as unknown, got %v", section.DecodeErr)
	}
}

func TestDecodeSectionUnknownFieldIsRecoveredAndReported(t *testing.T) {
	section, err := DecodeSection([]byte(`{"id":5,"type":"team-one","data":{"title":"Uprava","columns":4}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var payloadErr *PayloadError
	if !errors.As(section.DecodeErr, &payloadErr) {
		t.Fatalf("expected PayloadError, got %v", section.DecodeErr)
	}
	if !payloadErr.Recovered {
		t.Fatalf("expected unknown field to be recoverable")
	}
	if !errors.Is(section.DecodeErr, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload in chain")
	}
	if section.Malformed() {
		t.Fatalf("recovered payload should not be malformed")
	}
	team, ok := section.Data.(TeamPayload)
	if !ok || team.Title != "Uprava" {
		t.Fatalf("expected recovered team payload, got %#v", section.Data)
	}
}

func TestDecodeSectionMistypedFieldIsMalformed(t *testing.T) {
	section, err := DecodeSection([]byte(`{"id":6,"type":"logos-one","data":{"logos":"not-a-list"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !section.Malformed() {
		t.Fatalf("expected mistyped payload to be malformed, got %v", section.DecodeErr)
	}
}

func TestDecodeSectionsArray(t *testing.T) {
	list, err := DecodeSections([]byte(`[{"id":1,"type":"hero-stack"},{"id":2,"type":"custom-html","data":{"html":"<p>x</p>"}}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(list))
	}
	if _, ok := list[0].Data.(HeroPayload); !ok {
		t.Fatalf("expected empty data to decode to zero HeroPayload, got %T", list[0].Data)
	}
}

func TestDecodeSectionsIsolatesBrokenElements(t *testing.T) {
	list, err := DecodeSections([]byte(`[
		{"id":1,"type":"cta-one","order":0,"data":{"title":"Prijave"}},
		{"id":2,"type":5},
		{"id":3,"type":"hero-stack","order":"3"},
		{"id":4,"type":"cards-one","isVisible":"yes"},
		"not a section"
	]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(list))
	}
	if list[0].DecodeErr != nil {
		t.Fatalf("expected first section to decode, got %v", list[0].DecodeErr)
	}
	if cta, ok := list[0].Data.(CTAPayload); !ok || cta.Title != "Prijave" {
		t.Fatalf("unexpected first payload %#v", list[0].Data)
	}

	for _, section := range list[1:] {
		if !errors.Is(section.DecodeErr, ErrMalformed) || !section.Malformed() {
			t.Fatalf("expected malformed section, got %+v", section)
		}
		if !section.Visible {
			t.Fatalf("expected broken section to stay visible for its placeholder: %+v", section)
		}
	}

	var fieldErr *FieldError
	if !errors.As(list[1].DecodeErr, &fieldErr) || fieldErr.Field != "type" || fieldErr.Index != 1 {
		t.Fatalf("expected type field error at index 1, got %v", list[1].DecodeErr)
	}
	if list[2].ID != 3 || list[2].Type != TypeHeroStack {
		t.Fatalf("expected salvaged id and type, got %+v", list[2])
	}
	if !errors.As(list[4].DecodeErr, &fieldErr) || fieldErr.Field != "" {
		t.Fatalf("expected non-object element error, got %v", list[4].DecodeErr)
	}
}

func TestDecodeSectionsRejectsNonArray(t *testing.T) {
	if _, err := DecodeSections([]byte(`{"id":1}`)); err == nil {
		t.Fatalf("expected an error for a non-array body")
	}
	list, err := DecodeSections(nil)
	if err != nil || list != nil {
		t.Fatalf("expected empty body to decode to nil, got %v %v", list, err)
	}
}

func TestSectionMarshalRoundTripsWireKeys(t *testing.T) {
	section := Section{ID: 3, PageID: 1, Type: TypeCTAOne, SortOrder: 4, Visible: false, Data: CTAPayload{Header: Header{Title: "Prijavite se"}}}
	encoded, err := json.Marshal(section)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(encoded, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if wire["order"] != float64(4) || wire["isVisible"] != false {
		t.Fatalf("unexpected wire form: %s", encoded)
	}
	data, _ := wire["data"].(map[string]any)
	if data["title"] != "Prijavite se" {
		t.Fatalf("expected payload title in data, got %s", encoded)
	}
}

func TestTypeClassification(t *testing.T) {
	for _, typ := range Types() {
		if !typ.Valid() {
			t.Fatalf("expected %s to be valid", typ)
		}
	}
	if Type("hero").Valid() {
		t.Fatalf("expected partial type name to be invalid")
	}
	heroes := 0
	for _, typ := range Types() {
		if typ.IsHero() {
			heroes++
		}
	}
	if heroes != 4 {
		t.Fatalf("expected 4 hero types, got %d", heroes)
	}
	if TypeCTAOne.IsHero() || TypeCardTop.IsHero() {
		t.Fatalf("non-hero types reported as hero")
	}
}

func TestValidatePayload(t *testing.T) {
	if err := ValidatePayload(TypeHeroLeft, json.RawMessage(`{"title":"Dobrodošli","height":"75%","buttonText":"Više","buttonLink":"/o-nama"}`)); err != nil {
		t.Fatalf("expected valid hero payload: %v", err)
	}

	err := ValidatePayload(TypeCardTop, json.RawMessage(`{"title":"x","cards":[{"title":"a","price":3}],"layout":"wide"}`))
	var validationErr *PayloadValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected PayloadValidationError, got %v", err)
	}
	if len(validationErr.Issues) < 2 {
		t.Fatalf("expected issues for unknown card key and layout enum, got %+v", validationErr.Issues)
	}

	if err := ValidatePayload(Type("slider"), nil); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}
