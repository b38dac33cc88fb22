package sections

// Type identifies the layout variant a section renders with.
type Type string

const (
	TypeHeroStack  Type = "hero-stack"
	TypeHeroLeft   Type = "hero-left"
	TypeHeroImage  Type = "hero-image"
	TypeHeroVideo  Type = "hero-video"
	TypeCustomHTML Type = "custom-html"
	TypeCardTop    Type = "card-top"
	TypeCardBottom Type = "card-bottom"
	TypeCardLeft   Type = "card-left"
	TypeCardRight  Type = "card-right"
	TypeContactOne Type = "contact-one"
	TypeContactTwo Type = "contact-two"
	TypeCTAOne     Type = "cta-one"
	TypeLogosOne   Type = "logos-one"
	TypeTeamOne    Type = "team-one"
)

var knownTypes = []Type{
	TypeHeroStack,
	TypeHeroLeft,
	TypeHeroImage,
	TypeHeroVideo,
	TypeCustomHTML,
	TypeCardTop,
	TypeCardBottom,
	TypeCardLeft,
	TypeCardRight,
	TypeContactOne,
	TypeContactTwo,
	TypeCTAOne,
	TypeLogosOne,
	TypeTeamOne,
}

// Types returns the closed set of section types in declaration order.
func Types() []Type {
	out := make([]Type, len(knownTypes))
	copy(out, knownTypes)
	return out
}

// Valid reports whether t is one of the known section types.
func (t Type) Valid() bool {
	for _, known := range knownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsHero reports whether t is one of the four hero variants. Only heroes take a
// minimum viewport height and skip the standard vertical padding.
func (t Type) IsHero() bool {
	switch t {
	case TypeHeroStack, TypeHeroLeft, TypeHeroImage, TypeHeroVideo:
		return true
	default:
		return false
	}
}

// IsCard reports whether t is one of the card grid variants.
func (t Type) IsCard() bool {
	switch t {
	case TypeCardTop, TypeCardBottom, TypeCardLeft, TypeCardRight:
		return true
	default:
		return false
	}
}

// IsContact reports whether t is one of the contact variants.
func (t Type) IsContact() bool {
	return t == TypeContactOne || t == TypeContactTwo
}

func (t Type) String() string { return string(t) }
