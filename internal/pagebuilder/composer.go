package pagebuilder

import (
	"cmp"
	"html/template"
	"slices"
	"strings"

	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-cms-site/sections"
)

// EmptyMessage is shown when a page has no visible sections.
const EmptyMessage = "no sections to display"

// SectionRenderer renders one section or the fallback block.
type SectionRenderer interface {
	Render(section sections.Section) (template.HTML, error)
	Placeholder(message string) (template.HTML, error)
}

// Block is one rendered section in page order.
type Block struct {
	SectionID int
	Type      sections.Type
	HTML      template.HTML
}

// Composition is the rendered body of a page-builder page. Empty is true when
// no section qualified, in which case Blocks holds only the empty placeholder.
type Composition struct {
	Blocks []Block
	Empty  bool
}

// HTML concatenates the blocks in order.
func (c Composition) HTML() template.HTML {
	var b strings.Builder
	for _, block := range c.Blocks {
		b.WriteString(string(block.HTML))
	}
	return template.HTML(b.String())
}

// Composer filters, orders and renders a page's sections.
type Composer struct {
	renderer SectionRenderer
	logger   interfaces.Logger
}

// Option customises a Composer.
type Option func(*Composer)

// WithLogger sets the logger used for render failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewComposer returns a composer that renders through renderer.
func NewComposer(renderer SectionRenderer, opts ...Option) *Composer {
	c := &Composer{renderer: renderer, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Arrange returns the visible sections ordered by ascending sort order. Sections
// sharing a sort order keep their input order. The input is not modified.
func Arrange(list []sections.Section) []sections.Section {
	visible := make([]sections.Section, 0, len(list))
	for _, section := range list {
		if section.Visible {
			visible = append(visible, section)
		}
	}
	slices.SortStableFunc(visible, func(a, b sections.Section) int {
		return cmp.Compare(a.SortOrder, b.SortOrder)
	})
	return visible
}

// Compose renders the visible sections in order. A section that fails to render
// is replaced by a placeholder so the rest of the page still renders.
func (c *Composer) Compose(list []sections.Section) Composition {
	ordered := Arrange(list)
	if len(ordered) == 0 {
		return Composition{Empty: true, Blocks: []Block{{HTML: c.placeholder(EmptyMessage)}}}
	}

	blocks := make([]Block, 0, len(ordered))
	for _, section := range ordered {
		if section.DecodeErr != nil {
			c.logger.Warn("sections.decode_error",
				"section_id", section.ID,
				"page_id", section.PageID,
				"section_type", section.Type,
				"error", section.DecodeErr,
			)
		}
		html, err := c.renderer.Render(section)
		if err != nil {
			c.logger.Error("sections.render_failed",
				"section_id", section.ID,
				"section_type", section.Type,
				"error", err,
			)
			html = c.placeholder("unable to render section " + string(section.Type))
		}
		blocks = append(blocks, Block{SectionID: section.ID, Type: section.Type, HTML: html})
	}
	return Composition{Blocks: blocks}
}

func (c *Composer) placeholder(message string) template.HTML {
	html, err := c.renderer.Placeholder(message)
	if err != nil {
		c.logger.Error("sections.placeholder_failed", "error", err)
		return template.HTML("<p>" + template.HTMLEscapeString(message) + "</p>")
	}
	return html
}
