package sections

import (
	"strings"
	"testing"
)

type prefixResolver struct{ base string }

func (p prefixResolver) URL(ref string) string { return p.base + ref }

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(WithMediaResolver(prefixResolver{base: "/uploads/"}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderHiddenSectionIsEmpty(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Section{ID: 1, Type: TypeHeroStack, Visible: false, Data: HeroPayload{Header: Header{Title: "Skriveno"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Fatalf("expected hidden section to render nothing, got %q", out)
	}
}

func TestRenderUnknownTypePlaceholder(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Section{ID: 2, Type: "carousel", Visible: true, Data: UnknownPayload{}})
	if err != nil {
		t.Fatalf("unknown type must not error: %v", err)
	}
	if !strings.Contains(string(out), "unknown section type: carousel") {
		t.Fatalf("expected placeholder naming the type, got %q", out)
	}
}

func TestRenderMalformedPayloadPlaceholder(t *testing.T) {
	r := newTestRenderer(t)
	section, err := DecodeSection([]byte(`{"id":3,"type":"team-one","data":{"members":{"name":"x"}}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := r.Render(section)
	if err != nil {
		t.Fatalf("malformed payload must not error: %v", err)
	}
	if !strings.Contains(string(out), "data-section-placeholder") || !strings.Contains(string(out), "invalid team-one section") {
		t.Fatalf("expected malformed placeholder, got %q", out)
	}
}

func TestRenderBrokenElementPlaceholderKeepsNeighbours(t *testing.T) {
	r := newTestRenderer(t)
	list, err := DecodeSections([]byte(`[{"id":1,"type":"custom-html","data":{"html":"<p data-ok>ok</p>"}},{"id":2,"type":"cta-one","order":"3"}]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	first, err := r.Render(list[0])
	if err != nil || !strings.Contains(string(first), "<p data-ok>ok</p>") {
		t.Fatalf("expected first section to render, got %q err=%v", first, err)
	}
	second, err := r.Render(list[1])
	if err != nil {
		t.Fatalf("broken element must not error: %v", err)
	}
	if !strings.Contains(string(second), "data-section-placeholder") || !strings.Contains(string(second), "invalid section") {
		t.Fatalf("expected placeholder for broken element, got %q", second)
	}
}

func TestResolveLayoutHeightOnlyForHeroes(t *testing.T) {
	nonHero := ResolveLayout(Section{Type: TypeCardTop, Data: CardsPayload{Layout: Layout{Height: "100%"}}}, nil)
	if nonHero.Height != "" {
		t.Fatalf("non-hero section must not receive a height class, got %q", nonHero.Height)
	}
	if nonHero.Padding != PaddingStandard {
		t.Fatalf("expected standard padding on non-hero, got %q", nonHero.Padding)
	}

	hero := ResolveLayout(Section{Type: TypeHeroImage, Data: HeroPayload{}}, nil)
	if hero.Height != "min-h-[60vh]" {
		t.Fatalf("expected default hero height, got %q", hero.Height)
	}
	if hero.Padding != "" {
		t.Fatalf("hero must not receive padding, got %q", hero.Padding)
	}

	cases := map[string]string{
		"100%": "min-h-screen",
		"75%":  "min-h-[75vh]",
		"50%":  "min-h-[50vh]",
		"25%":  "min-h-[25vh]",
		"33%":  "min-h-[60vh]",
	}
	for height, want := range cases {
		got := ResolveLayout(Section{Type: TypeHeroStack, Data: HeroPayload{Layout: Layout{Height: height}}}, nil)
		if got.Height != want {
			t.Fatalf("height %q: expected %q, got %q", height, want, got.Height)
		}
	}
}

func TestResolveLayoutWidthAndBackground(t *testing.T) {
	full := ResolveLayout(Section{Type: TypeContactTwo, Data: ContactPayload{Layout: Layout{LayoutMode: "full-width"}}}, nil)
	if full.Width != WidthFull {
		t.Fatalf("expected full width, got %q", full.Width)
	}
	contained := ResolveLayout(Section{Type: TypeContactTwo, Data: ContactPayload{}}, nil)
	if contained.Width != WidthContained {
		t.Fatalf("expected contained width, got %q", contained.Width)
	}

	styled := ResolveLayout(Section{Type: TypeTeamOne, Data: TeamPayload{Layout: Layout{
		BackgroundColor: "#fafafa",
		TextColor:       "rgb(10, 10, 10)",
		BackgroundImage: "bg.jpg",
	}}}, prefixResolver{base: "/uploads/"})
	style := string(styled.Style)
	for _, want := range []string{"background-color: #fafafa", "color: rgb(10, 10, 10)", "url('/uploads/bg.jpg')", "background-size: cover", "background-position: center", "background-repeat: no-repeat"} {
		if !strings.Contains(style, want) {
			t.Fatalf("expected style to contain %q, got %q", want, style)
		}
	}

	injected := ResolveLayout(Section{Type: TypeTeamOne, Data: TeamPayload{Layout: Layout{BackgroundColor: "red; position: fixed"}}}, nil)
	if injected.Style != "" {
		t.Fatalf("expected unsafe color to be dropped, got %q", injected.Style)
	}
}

func TestRenderCTAFallsBackToDefaultBackground(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Section{ID: 4, Type: TypeCTAOne, Visible: true, Data: CTAPayload{
		Header: Header{Title: "Uključite se"},
		Button: Button{ButtonText: "Kontakt", ButtonLink: "/kontakt"},
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "background-color: "+DefaultCTABackground) {
		t.Fatalf("expected default CTA background, got %q", html)
	}
	if !strings.Contains(html, `href="/kontakt"`) || !strings.Contains(html, "Kontakt") {
		t.Fatalf("expected CTA button, got %q", html)
	}
}

func TestRenderCardsWithoutListRendersHeaderOnly(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Section{ID: 5, Type: TypeCardTop, Visible: true, Data: CardsPayload{Header: Header{Title: "Projekti"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "Projekti") {
		t.Fatalf("expected header, got %q", html)
	}
	if strings.Contains(html, "data-card-layout") {
		t.Fatalf("expected no card grid without cards, got %q", html)
	}
}

func TestRenderCardLeftAlternatesImageSide(t *testing.T) {
	r := newTestRenderer(t)
	cards := []Card{{Title: "A", Image: "a.jpg"}, {Title: "B", Image: "b.jpg"}, {Title: "C", Image: "c.jpg"}}

	left, err := r.Render(Section{ID: 6, Type: TypeCardLeft, Visible: true, Data: CardsPayload{Cards: cards}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	sides := imageSides(string(left))
	if strings.Join(sides, ",") != "left,right,left" {
		t.Fatalf("expected alternating sides, got %v", sides)
	}

	right, err := r.Render(Section{ID: 7, Type: TypeCardRight, Visible: true, Data: CardsPayload{Cards: cards}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := strings.Join(imageSides(string(right)), ","); got != "right,right,right" {
		t.Fatalf("expected fixed right side, got %v", got)
	}
	if !strings.Contains(string(right), `src="/uploads/a.jpg"`) {
		t.Fatalf("expected card image resolved through media resolver, got %q", right)
	}
}

func imageSides(html string) []string {
	var sides []string
	const marker = `data-image-side="`
	for {
		idx := strings.Index(html, marker)
		if idx < 0 {
			return sides
		}
		html = html[idx+len(marker):]
		end := strings.Index(html, `"`)
		sides = append(sides, html[:end])
		html = html[end:]
	}
}

func TestRenderLogosMarqueeAboveThreshold(t *testing.T) {
	r := newTestRenderer(t)
	logos := make([]Logo, 0, 9)
	for i := 0; i < 9; i++ {
		logos = append(logos, Logo{Name: "Partner", Image: "logo.png"})
	}

	out, err := r.Render(Section{ID: 8, Type: TypeLogosOne, Visible: true, Data: LogosPayload{Logos: logos}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "data-logo-marquee") {
		t.Fatalf("expected marquee strip for 9 logos")
	}
	if got := strings.Count(html, `src="/uploads/logo.png"`); got != 18 {
		t.Fatalf("expected duplicated strip of 18 logos, got %d", got)
	}

	few, err := r.Render(Section{ID: 9, Type: TypeLogosOne, Visible: true, Data: LogosPayload{Logos: logos[:8]}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(few), "data-logo-marquee") {
		t.Fatalf("expected static grid for 8 logos")
	}
	if got := strings.Count(string(few), `src="/uploads/logo.png"`); got != 8 {
		t.Fatalf("expected 8 logos, got %d", got)
	}
}

func TestTeamColumnsCapped(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 3, 7: 3}
	for n, want := range cases {
		if got := TeamColumns(n); got != want {
			t.Fatalf("TeamColumns(%d) = %d, want %d", n, got, want)
		}
	}

	r := newTestRenderer(t)
	members := []Member{{Name: "Ana"}, {Name: "Ivo"}, {Name: "Mara"}, {Name: "Luka"}, {Name: "Petra"}}
	out, err := r.Render(Section{ID: 10, Type: TypeTeamOne, Visible: true, Data: TeamPayload{Members: members}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `data-columns="3"`) {
		t.Fatalf("expected three columns, got %q", out)
	}
}

func TestRenderCustomHTMLVerbatim(t *testing.T) {
	r := newTestRenderer(t)
	markup := `<div class="notice"><strong>Obavijest</strong></div>`
	out, err := r.Render(Section{ID: 11, Type: TypeCustomHTML, Visible: true, Data: CustomHTMLPayload{HTML: markup}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), markup) {
		t.Fatalf("expected raw markup, got %q", out)
	}
}

func TestRenderHeroAppliesLayoutClasses(t *testing.T) {
	r := newTestRenderer(t)
	out, err := r.Render(Section{ID: 12, Type: TypeHeroLeft, Visible: true, ClassName: "home-hero", Data: HeroPayload{
		Layout: Layout{Height: "100%", LayoutMode: "full-width"},
		Header: Header{Title: "Općina"},
		Image:  "hero.jpg",
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{"min-h-screen", "home-hero", `class="w-full"`, `src="/uploads/hero.jpg"`, `data-section-type="hero-left"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %q", want, html)
		}
	}
	if strings.Contains(html, PaddingStandard) {
		t.Fatalf("hero must not carry standard padding")
	}
}

func TestRenderContactOneHasInertForm(t *testing.T) {
	r := newTestRenderer(t)
	payload := ContactPayload{Address: "Trg 1", Email: "info@opcina.hr", MapURL: "https://maps.example.com/embed"}
	one, err := r.Render(Section{ID: 13, Type: TypeContactOne, Visible: true, Data: payload})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(one), "data-contact-form") || !strings.Contains(string(one), "<iframe") {
		t.Fatalf("expected form and map for contact-one, got %q", one)
	}
	two, err := r.Render(Section{ID: 14, Type: TypeContactTwo, Visible: true, Data: payload})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(two), "data-contact-form") {
		t.Fatalf("contact-two must not render a form")
	}
}
