package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block of an importable post.
type FrontMatter struct {
	Title         string    `yaml:"title"`
	Slug          string    `yaml:"slug"`
	Excerpt       string    `yaml:"excerpt"`
	Status        string    `yaml:"status"`
	Category      string    `yaml:"category"`
	FeaturedImage string    `yaml:"image"`
	Pages         []string  `yaml:"pages"`
	Date          time.Time `yaml:"date"`
	Draft         bool      `yaml:"draft"`
}

// ParseFrontMatter splits source into its metadata and Markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Title = strings.TrimSpace(meta.Title)
	meta.Slug = strings.TrimSpace(meta.Slug)
	meta.Excerpt = strings.TrimSpace(meta.Excerpt)
	return meta, body, nil
}
