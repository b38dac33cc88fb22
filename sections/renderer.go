package sections

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// LogoMarqueeThreshold is the logo count above which the wall scrolls.
const LogoMarqueeThreshold = 8

// MaxTeamColumns caps the team grid width.
const MaxTeamColumns = 3

// URLResolver turns a stored media reference into a URL.
type URLResolver interface {
	URL(ref string) string
}

type passthroughResolver struct{}

func (passthroughResolver) URL(ref string) string { return ref }

// Renderer turns sections into HTML blocks.
type Renderer struct {
	templates *template.Template
	media     URLResolver
}

// RendererOption customises a renderer.
type RendererOption func(*Renderer)

// WithMediaResolver sets the resolver used for every media reference in a payload.
func WithMediaResolver(resolver URLResolver) RendererOption {
	return func(r *Renderer) {
		if resolver != nil {
			r.media = resolver
		}
	}
}

// WithTemplates replaces the embedded template set. The set must define every
// template name the embedded set does.
func WithTemplates(tmpl *template.Template) RendererOption {
	return func(r *Renderer) {
		if tmpl != nil {
			r.templates = tmpl
		}
	}
}

// NewRenderer parses the embedded templates and applies opts.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	r := &Renderer{media: passthroughResolver{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.templates == nil {
		tmpl, err := template.New("sections").ParseFS(templateFS, "templates/*.html")
		if err != nil {
			return nil, fmt.Errorf("sections: parse templates: %w", err)
		}
		r.templates = tmpl
	}
	return r, nil
}

// Render produces the block for s. Hidden sections render to nothing. Unknown
// types and undecodable payloads render a visible placeholder rather than an
// error; only template execution failures are returned.
func (r *Renderer) Render(s Section) (template.HTML, error) {
	if !s.Visible {
		return "", nil
	}
	var fieldErr *FieldError
	if errors.As(s.DecodeErr, &fieldErr) {
		return r.Placeholder(fmt.Sprintf("invalid section: %v", fieldErr))
	}
	if !s.Type.Valid() {
		return r.Placeholder(fmt.Sprintf("unknown section type: %s", s.Type))
	}
	if s.Malformed() {
		return r.Placeholder(fmt.Sprintf("invalid %s section: %v", s.Type, s.DecodeErr))
	}

	name, view, err := r.bodyView(s)
	if err != nil {
		return r.Placeholder(err.Error())
	}
	body, err := r.execute(name, view)
	if err != nil {
		return "", err
	}

	layout := ResolveLayout(s, r.media)
	return r.execute("section-frame", frameView{
		ID:     s.ID,
		Type:   s.Type,
		Class:  layout.Classes(s.ClassName),
		Width:  layout.Width,
		Style:  layout.Style,
		Body:   body,
		IsHero: s.Type.IsHero(),
	})
}

// Placeholder renders the visible fallback block with message.
func (r *Renderer) Placeholder(message string) (template.HTML, error) {
	return r.execute("section-placeholder", placeholderView{Message: message})
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	if r.templates.Lookup(name) == nil {
		return "", fmt.Errorf("%w: %s", ErrTemplateMissing, name)
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("sections: render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) bodyView(s Section) (string, any, error) {
	switch s.Type {
	case TypeHeroStack, TypeHeroLeft, TypeHeroImage, TypeHeroVideo:
		p, ok := s.Data.(HeroPayload)
		if !ok {
			return "", nil, mismatch(s)
		}
		return string(s.Type), r.heroView(s.Type, p), nil
	case TypeCardTop, TypeCardBottom, TypeCardLeft, TypeCardRight:
		p, ok := s.Data.(CardsPayload)
		if !ok {
			return "", nil, mismatch(s)
		}
		return "section-cards", r.cardsView(s.Type, p), nil
	case TypeContactOne, TypeContactTwo:
		p, ok := s.Data.(ContactPayload)
		if !ok {
			return "", nil, mismatch(s)
		}
		return string(s.Type), contactView{ContactPayload: p, Form: s.Type == TypeContactOne}, nil
	case TypeCTAOne:
		p, ok := s.Data.(CTAPayload)
		if !ok {
			return "", nil, mismatch(s)
		}
		return string(s.Type), ctaView{Header: p.Header, Button: buttonView(p.Button)}, nil
	case TypeLogosOne:
		p, ok := s.Data.(LogosPayload)
		if !ok {
			return "", nil, mismatch(s)
		}
		return string(s.Type), r.logosView(p), nil
	case TypeTeamOne:
		p, ok := s.Data.(TeamPayload)
		if !ok {
			return "", nil, mismatch(s)
		}
		return string(s.Type), r.teamView(p), nil
	case TypeCustomHTML:
		p, ok := s.Data.(CustomHTMLPayload)
		if !ok {
			return "", nil, mismatch(s)
		}
		// Markup is dashboard-authored and emitted as is.
		return string(s.Type), customView{HTML: template.HTML(p.HTML)}, nil
	default:
		return "", nil, fmt.Errorf("unknown section type: %s", s.Type)
	}
}

func mismatch(s Section) error {
	return fmt.Errorf("invalid %s section: payload %T does not match type", s.Type, s.Data)
}

func (r *Renderer) url(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	return r.media.URL(ref)
}

type frameView struct {
	ID     int
	Type   Type
	Class  string
	Width  string
	Style  template.CSS
	Body   template.HTML
	IsHero bool
}

type placeholderView struct {
	Message string
}

type buttonData struct {
	Text  string
	Link  string
	Class string
}

func buttonView(b Button) *buttonData {
	if !b.HasButton() {
		return nil
	}
	class := "bg-blue-700 text-white hover:bg-blue-800"
	switch strings.ToLower(strings.TrimSpace(b.ButtonStyle)) {
	case "secondary":
		class = "bg-white text-blue-800 hover:bg-gray-100"
	case "outline":
		class = "border-2 border-current bg-transparent hover:bg-white/10"
	}
	return &buttonData{Text: b.ButtonText, Link: b.ButtonLink, Class: class}
}

type heroData struct {
	Header
	Button *buttonData
	Image  string
	Video  string
}

func (r *Renderer) heroView(t Type, p HeroPayload) heroData {
	view := heroData{Header: p.Header, Button: buttonView(p.Button)}
	switch t {
	case TypeHeroVideo:
		view.Video = r.url(p.Video)
		view.Image = r.url(p.Image)
	default:
		view.Image = r.url(p.Image)
	}
	return view
}

type cardData struct {
	Card
	Image     string
	ImageSide string
}

type cardsData struct {
	Header
	Type  Type
	Cards []cardData
	Grid  string
}

func (r *Renderer) cardsView(t Type, p CardsPayload) cardsData {
	view := cardsData{Header: p.Header, Type: t}
	if len(p.Cards) == 0 {
		return view
	}
	view.Cards = make([]cardData, 0, len(p.Cards))
	for i, card := range p.Cards {
		view.Cards = append(view.Cards, cardData{
			Card:      card,
			Image:     r.url(card.Image),
			ImageSide: cardImageSide(t, i),
		})
	}
	switch t {
	case TypeCardLeft, TypeCardRight:
		view.Grid = "grid grid-cols-1 gap-10"
	default:
		view.Grid = "grid grid-cols-1 gap-8 md:grid-cols-2 lg:grid-cols-3"
	}
	return view
}

// cardImageSide places the card image: card-left alternates starting on the left,
// card-right is fixed to the right.
func cardImageSide(t Type, index int) string {
	switch t {
	case TypeCardTop:
		return "top"
	case TypeCardBottom:
		return "bottom"
	case TypeCardLeft:
		if index%2 == 0 {
			return "left"
		}
		return "right"
	default:
		return "right"
	}
}

type contactView struct {
	ContactPayload
	Form bool
}

type ctaView struct {
	Header
	Button *buttonData
}

type logoData struct {
	Logo
	Image string
}

type logosData struct {
	Header
	Logos   []logoData
	Marquee bool
	Strip   []logoData
}

func (r *Renderer) logosView(p LogosPayload) logosData {
	view := logosData{Header: p.Header}
	for _, logo := range p.Logos {
		view.Logos = append(view.Logos, logoData{Logo: logo, Image: r.url(logo.Image)})
	}
	if len(view.Logos) > LogoMarqueeThreshold {
		view.Marquee = true
		view.Strip = make([]logoData, 0, len(view.Logos)*2)
		view.Strip = append(view.Strip, view.Logos...)
		view.Strip = append(view.Strip, view.Logos...)
	}
	return view
}

type memberData struct {
	Member
	Photo string
}

type teamData struct {
	Header
	Members []memberData
	Columns int
	Grid    string
}

// TeamColumns is the grid column count for n members.
func TeamColumns(n int) int {
	switch {
	case n <= 0:
		return 1
	case n > MaxTeamColumns:
		return MaxTeamColumns
	default:
		return n
	}
}

var teamGrid = map[int]string{
	1: "grid grid-cols-1 gap-8",
	2: "grid grid-cols-1 gap-8 md:grid-cols-2",
	3: "grid grid-cols-1 gap-8 md:grid-cols-2 lg:grid-cols-3",
}

func (r *Renderer) teamView(p TeamPayload) teamData {
	view := teamData{Header: p.Header, Columns: TeamColumns(len(p.Members))}
	view.Grid = teamGrid[view.Columns]
	for _, member := range p.Members {
		view.Members = append(view.Members, memberData{Member: member, Photo: r.url(member.Photo)})
	}
	return view
}

type customView struct {
	HTML template.HTML
}
