package views

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/internal/navigation"
	"github.com/goliatone/go-cms-site/internal/themes"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

//go:embed templates
var templateFS embed.FS

// View names served by the site.
const (
	ViewPageBuilder    = "page-builder"
	ViewLegacyDefault  = "legacy/default"
	ViewGalleryItem    = "gallery-item"
	ViewServiceItem    = "service-item"
	ViewNotFound       = "not-found"
	ViewError          = "error"
	ViewPosts          = "posts"
	ViewPost           = "post"
	ViewDirectors      = "admin/directors"
	ViewDirectorForm   = "admin/director-form"
	ViewGalleries      = "admin/galleries"
	ViewGalleryForm    = "admin/gallery-form"
	ViewSectionsEditor = "admin/sections"
)

const (
	layoutPublic = "layout"
	layoutAdmin  = "admin-layout"
	adminPrefix  = "admin/"
	legacyPrefix = "legacy/"
	dateLayout   = "02.01.2006."
)

// ErrUnknownView is returned when rendering a view the registry does not hold.
var ErrUnknownView = errors.New("views: unknown view")

// LinkBuilder produces the URLs templates link to.
type LinkBuilder interface {
	PageURL(slug string) string
	SubPageURL(slug, sub string) string
	PostURL(slug string) string
	PostsURL(page int) string
	AdminURL(route string, id int) string
}

// Flash is a one-shot status message shown above the content.
type Flash struct {
	Kind    string
	Message string
}

// Page is the model every view executes against. Data holds the view specific
// payload.
type Page struct {
	Site        string
	Title       string
	Description string
	Menu        []navigation.Item
	Theme       themes.Context
	Flashes     []Flash
	RequestID   string
	Year        int
	Data        any
}

// Registry holds one isolated template set per view so that each view's
// "content" definition never collides with another's.
type Registry struct {
	sets map[string]*template.Template
}

var _ interfaces.TemplateRenderer = (*Registry)(nil)

// Option customises the registry.
type Option func(*config)

type config struct {
	links LinkBuilder
	media interfaces.MediaResolver
	fsys  fs.FS
}

// WithLinks sets the URL builder behind the pageURL, subURL, postURL, postsURL
// and adminURL template functions.
func WithLinks(links LinkBuilder) Option {
	return func(c *config) {
		if links != nil {
			c.links = links
		}
	}
}

// WithMedia sets the resolver behind the media template function.
func WithMedia(resolver interfaces.MediaResolver) Option {
	return func(c *config) {
		if resolver != nil {
			c.media = resolver
		}
	}
}

// WithFS replaces the embedded templates. The tree must follow the embedded
// layout: layout.html, admin_layout.html, partials/ and views/.
func WithFS(fsys fs.FS) Option {
	return func(c *config) {
		if fsys != nil {
			c.fsys = fsys
		}
	}
}

// New parses every view under views/ into its own set.
func New(opts ...Option) (*Registry, error) {
	cfg := config{
		links: (*navigation.Links)(nil),
		media: passthroughMedia{},
	}
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("views: open embedded templates: %w", err)
	}
	cfg.fsys = sub
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	partials, err := fs.Glob(cfg.fsys, "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("views: list partials: %w", err)
	}

	funcs := funcMap(cfg)
	registry := &Registry{sets: make(map[string]*template.Template)}
	err = fs.WalkDir(cfg.fsys, "views", func(file string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || path.Ext(file) != ".html" {
			return nil
		}
		name := strings.TrimSuffix(strings.TrimPrefix(file, "views/"), ".html")
		layout := "layout.html"
		if strings.HasPrefix(name, adminPrefix) {
			layout = "admin_layout.html"
		}
		files := append([]string{layout}, partials...)
		files = append(files, file)
		set, parseErr := template.New(name).Funcs(funcs).ParseFS(cfg.fsys, files...)
		if parseErr != nil {
			return fmt.Errorf("views: parse %s: %w", name, parseErr)
		}
		registry.sets[name] = set
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(registry.sets) == 0 {
		return nil, fmt.Errorf("views: no views found")
	}
	return registry, nil
}

// Has reports whether the registry holds name.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.sets[name]
	return ok
}

// Names lists the registered views in lexical order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Legacy returns the view for a legacy template name, falling back to the
// default legacy view for names without one.
func (r *Registry) Legacy(templateName string) string {
	name := legacyPrefix + strings.ToLower(strings.TrimSpace(templateName))
	if r.Has(name) {
		return name
	}
	return ViewLegacyDefault
}

// Render executes the named view inside its layout. Output is buffered so a
// failed execution never writes a partial page to out.
func (r *Registry) Render(name string, data any, out ...io.Writer) (string, error) {
	if r == nil {
		return "", ErrUnknownView
	}
	set, ok := r.sets[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownView, name)
	}
	layout := layoutPublic
	if strings.HasPrefix(name, adminPrefix) {
		layout = layoutAdmin
	}

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, layout, data); err != nil {
		return "", fmt.Errorf("views: render %s: %w", name, err)
	}
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return buf.String(), fmt.Errorf("views: write %s: %w", name, err)
		}
	}
	return buf.String(), nil
}

func funcMap(cfg config) template.FuncMap {
	links := cfg.links
	media := cfg.media
	return template.FuncMap{
		"media":    media.URL,
		"pageURL":  links.PageURL,
		"subURL":   links.SubPageURL,
		"postURL":  links.PostURL,
		"postsURL": links.PostsURL,
		"adminURL": links.AdminURL,
		"date":     func(v any) string { return formatTime(v, dateLayout) },
		"isoDate":  func(v any) string { return formatTime(v, "2006-01-02") },
		"add":      func(a, b int) int { return a + b },
		// Rich text comes from the authenticated dashboard and is rendered as is.
		"trusted": func(s string) template.HTML { return template.HTML(s) },
	}
}

func formatTime(v any, layout string) string {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format(layout)
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format(layout)
	default:
		return ""
	}
}

type passthroughMedia struct{}

func (passthroughMedia) URL(ref string) string { return ref }
