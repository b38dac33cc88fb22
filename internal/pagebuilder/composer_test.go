package pagebuilder

import (
	"errors"
	"fmt"
	"html/template"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-cms-site/sections"
)

type stubRenderer struct {
	rendered []int
	failFor  map[int]bool
}

func (s *stubRenderer) Render(section sections.Section) (template.HTML, error) {
	if !section.Visible {
		return "", nil
	}
	if s.failFor[section.ID] {
		return "", errors.New("boom")
	}
	s.rendered = append(s.rendered, section.ID)
	return template.HTML(fmt.Sprintf("[%d]", section.ID)), nil
}

func (s *stubRenderer) Placeholder(message string) (template.HTML, error) {
	return template.HTML("{" + message + "}"), nil
}

func section(id, order int, visible bool) sections.Section {
	return sections.Section{ID: id, Type: sections.TypeCTAOne, SortOrder: order, Visible: visible, Data: sections.CTAPayload{}}
}

func TestComposeOrdersVisibleSectionsBySortOrder(t *testing.T) {
	renderer := &stubRenderer{}
	composer := NewComposer(renderer)

	input := []sections.Section{
		section(1, 3, true),
		section(2, 1, false),
		section(3, 1, true),
		section(4, 2, true),
		section(5, 0, false),
	}
	got := composer.Compose(input)

	if got.Empty {
		t.Fatalf("expected non-empty composition")
	}
	if want := []int{3, 4, 1}; !reflect.DeepEqual(renderer.rendered, want) {
		t.Fatalf("expected render order %v, got %v", want, renderer.rendered)
	}
	if got.HTML() != "[3][4][1]" {
		t.Fatalf("unexpected html %q", got.HTML())
	}
	for _, block := range got.Blocks {
		if block.SectionID == 2 || block.SectionID == 5 {
			t.Fatalf("hidden section %d appeared in output", block.SectionID)
		}
	}
}

func TestArrangeKeepsInputOrderForTies(t *testing.T) {
	input := []sections.Section{section(10, 1, true), section(11, 0, true), section(12, 1, true), section(13, 1, true)}

	arranged := Arrange(input)

	ids := make([]int, 0, len(arranged))
	for _, s := range arranged {
		ids = append(ids, s.ID)
	}
	if want := []int{11, 10, 12, 13}; !reflect.DeepEqual(ids, want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	if input[0].ID != 10 {
		t.Fatalf("input slice was reordered")
	}
}

func TestComposeEmptyRendersPlaceholder(t *testing.T) {
	composer := NewComposer(&stubRenderer{})

	for name, input := range map[string][]sections.Section{
		"nil":        nil,
		"all hidden": {section(1, 0, false), section(2, 1, false)},
	} {
		got := composer.Compose(input)
		if !got.Empty {
			t.Fatalf("%s: expected empty composition", name)
		}
		if len(got.Blocks) != 1 || got.HTML() != "{"+EmptyMessage+"}" {
			t.Fatalf("%s: expected single placeholder, got %q", name, got.HTML())
		}
	}
}

func TestComposeSubstitutesPlaceholderOnRenderFailure(t *testing.T) {
	renderer := &stubRenderer{failFor: map[int]bool{2: true}}
	composer := NewComposer(renderer)

	got := composer.Compose([]sections.Section{section(1, 0, true), section(2, 1, true), section(3, 2, true)})

	html := string(got.HTML())
	if !strings.HasPrefix(html, "[1]{unable to render section cta-one}") || !strings.HasSuffix(html, "[3]") {
		t.Fatalf("expected failing section replaced by placeholder, got %q", html)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	renderer, err := sections.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	composer := NewComposer(renderer)

	input := []sections.Section{
		{ID: 1, Type: sections.TypeHeroStack, SortOrder: 2, Visible: true, Data: sections.HeroPayload{Header: sections.Header{Title: "Dobrodošli"}}},
		{ID: 2, Type: sections.TypeTeamOne, SortOrder: 1, Visible: true, Data: sections.TeamPayload{Members: []sections.Member{{Name: "Ana"}}}},
		{ID: 3, Type: "slider", SortOrder: 1, Visible: true, Data: sections.UnknownPayload{}},
	}

	first := composer.Compose(input)
	second := composer.Compose(input)
	if first.HTML() != second.HTML() {
		t.Fatalf("expected identical output across runs")
	}
	html := string(first.HTML())
	team := strings.Index(html, `data-section-type="team-one"`)
	unknown := strings.Index(html, "unknown section type: slider")
	hero := strings.Index(html, `data-section-type="hero-stack"`)
	if team < 0 || unknown < 0 || hero < 0 || !(team < unknown && unknown < hero) {
		t.Fatalf("unexpected block order in %q", html)
	}
}
