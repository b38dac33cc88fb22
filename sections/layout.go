package sections

import (
	"html/template"
	"strings"
)

const (
	WidthFull      = "w-full"
	WidthContained = "container mx-auto max-w-7xl"

	HeightDefaultHero = "min-h-[60vh]"
	PaddingStandard   = "py-16"

	// DefaultCTABackground is applied when a call-to-action section sets no background color.
	DefaultCTABackground = "#1e40af"
)

var heroHeights = map[string]string{
	"100%": "min-h-screen",
	"75%":  "min-h-[75vh]",
	"50%":  "min-h-[50vh]",
	"25%":  "min-h-[25vh]",
}

// LayoutSpec is the resolved sizing and styling of one section container.
type LayoutSpec struct {
	Width   string
	Height  string
	Padding string
	Style   template.CSS
}

// Classes joins the container classes with any extra class name.
func (l LayoutSpec) Classes(extra string) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{"relative", l.Height, l.Padding, strings.TrimSpace(extra)} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// ResolveLayout derives width, height, padding and inline background style for s.
// Height only applies to hero sections; every other type gets standard padding.
func ResolveLayout(s Section, media URLResolver) LayoutSpec {
	layout := s.Layout()
	spec := LayoutSpec{Width: WidthContained}
	if strings.TrimSpace(layout.LayoutMode) == "full-width" {
		spec.Width = WidthFull
	}

	if s.Type.IsHero() {
		spec.Height = HeightDefaultHero
		if class, ok := heroHeights[strings.TrimSpace(layout.Height)]; ok {
			spec.Height = class
		}
	} else {
		spec.Padding = PaddingStandard
	}

	background := layout.BackgroundColor
	if s.Type == TypeCTAOne && strings.TrimSpace(background) == "" {
		background = DefaultCTABackground
	}
	image := layout.BackgroundImage
	if image != "" && media != nil {
		image = media.URL(image)
	}
	spec.Style = inlineStyle(background, layout.TextColor, image)
	return spec
}

func inlineStyle(background, text, image string) template.CSS {
	decls := make([]string, 0, 6)
	if v, ok := cssValue(background); ok {
		decls = append(decls, "background-color: "+v)
	}
	if v, ok := cssValue(text); ok {
		decls = append(decls, "color: "+v)
	}
	if v, ok := cssURL(image); ok {
		decls = append(decls,
			"background-image: url('"+v+"')",
			"background-size: cover",
			"background-position: center",
			"background-repeat: no-repeat",
		)
	}
	if len(decls) == 0 {
		return ""
	}
	return template.CSS(strings.Join(decls, "; ") + ";")
}

// cssValue accepts plain color values and rejects anything able to close the
// declaration or open a new one.
func cssValue(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, ";{}<>\"'\\") {
		return "", false
	}
	lower := strings.ToLower(v)
	if strings.Contains(lower, "url(") || strings.Contains(lower, "expression") {
		return "", false
	}
	return v, true
}

func cssURL(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "'\"()\\<>;\n\r") {
		return "", false
	}
	if strings.HasPrefix(strings.ToLower(v), "javascript:") {
		return "", false
	}
	return v, true
}
