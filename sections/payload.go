package sections

import "encoding/json"

// Payload is the type-specific data carried by a section. Each section type
// family has exactly one variant; the set is closed.
type Payload interface {
	LayoutData() Layout
	isPayload()
}

// Layout holds the sizing and styling keys shared by every variant.
type Layout struct {
	LayoutMode      string `json:"layout,omitempty"`
	Height          string `json:"height,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

// LayoutData returns the shared layout keys.
func (l Layout) LayoutData() Layout { return l }

// Header is the title block most variants open with.
type Header struct {
	Title       string `json:"title,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
}

// Empty reports whether no header field is set.
func (h Header) Empty() bool {
	return h.Title == "" && h.Subtitle == "" && h.Description == ""
}

// Button is a single call-to-action link.
type Button struct {
	ButtonText  string `json:"buttonText,omitempty"`
	ButtonLink  string `json:"buttonLink,omitempty"`
	ButtonStyle string `json:"buttonStyle,omitempty"`
}

// HasButton reports whether the button has both a label and a target.
func (b Button) HasButton() bool {
	return b.ButtonText != "" && b.ButtonLink != ""
}

type HeroPayload struct {
	Layout
	Header
	Button
	Image string `json:"image,omitempty"`
	Video string `json:"video,omitempty"`
}

type Card struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Link        string `json:"link,omitempty"`
	LinkText    string `json:"linkText,omitempty"`
}

type CardsPayload struct {
	Layout
	Header
	Cards []Card `json:"cards,omitempty"`
}

type ContactPayload struct {
	Layout
	Header
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	WorkingHours string `json:"workingHours,omitempty"`
	MapURL       string `json:"mapUrl,omitempty"`
	FormTitle    string `json:"formTitle,omitempty"`
}

type CTAPayload struct {
	Layout
	Header
	Button
}

type Logo struct {
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
	Link  string `json:"link,omitempty"`
}

type LogosPayload struct {
	Layout
	Header
	Logos []Logo `json:"logos,omitempty"`
}

type Member struct {
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
	Role  string `json:"role,omitempty"`
	Bio   string `json:"bio,omitempty"`
}

type TeamPayload struct {
	Layout
	Header
	Members []Member `json:"members,omitempty"`
}

// CustomHTMLPayload carries dashboard-authored markup that is emitted verbatim.
type CustomHTMLPayload struct {
	Layout
	HTML string `json:"html,omitempty"`
}

// UnknownPayload keeps the raw data of a section whose type is not recognised.
type UnknownPayload struct {
	Layout `json:"-"`
	Raw    json.RawMessage `json:"-"`
}

func (HeroPayload) isPayload()       {}
func (CardsPayload) isPayload()      {}
func (ContactPayload) isPayload()    {}
func (CTAPayload) isPayload()        {}
func (LogosPayload) isPayload()      {}
func (TeamPayload) isPayload()       {}
func (CustomHTMLPayload) isPayload() {}
func (UnknownPayload) isPayload()    {}

// newPayload returns a pointer to the zero variant selected by t.
func newPayload(t Type) (any, bool) {
	switch {
	case t.IsHero():
		return &HeroPayload{}, true
	case t.IsCard():
		return &CardsPayload{}, true
	case t.IsContact():
		return &ContactPayload{}, true
	case t == TypeCTAOne:
		return &CTAPayload{}, true
	case t == TypeLogosOne:
		return &LogosPayload{}, true
	case t == TypeTeamOne:
		return &TeamPayload{}, true
	case t == TypeCustomHTML:
		return &CustomHTMLPayload{}, true
	default:
		return nil, false
	}
}

func derefPayload(v any) Payload {
	switch p := v.(type) {
	case *HeroPayload:
		return *p
	case *CardsPayload:
		return *p
	case *ContactPayload:
		return *p
	case *CTAPayload:
		return *p
	case *LogosPayload:
		return *p
	case *TeamPayload:
		return *p
	case *CustomHTMLPayload:
		return *p
	default:
		return UnknownPayload{}
	}
}
