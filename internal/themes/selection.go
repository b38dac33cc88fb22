package themes

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	gotheme "github.com/goliatone/go-theme"
)

// DefaultCSSPrefix namespaces theme tokens rendered as CSS custom properties.
const DefaultCSSPrefix = "site"

// Config locates a single theme manifest directory.
type Config struct {
	Dir            string
	DefaultTheme   string
	DefaultVariant string
	CSSPrefix      string
}

// Context is the theme data exposed to page layouts. The zero value is an
// unthemed site.
type Context struct {
	Name     string
	Variant  string
	Tokens   map[string]string
	CSSVars  map[string]string
	assetURL func(string) string
	template func(string, string) string
}

// Enabled reports whether a theme was selected.
func (c Context) Enabled() bool { return c.Name != "" }

// AssetURL returns the theme asset for key or fallback when absent.
func (c Context) AssetURL(key, fallback string) string {
	if c.assetURL == nil {
		return fallback
	}
	if url := c.assetURL(key); url != "" {
		return url
	}
	return fallback
}

// Template returns the theme's override for a named view or fallback.
func (c Context) Template(name, fallback string) string {
	if c.template == nil {
		return fallback
	}
	return c.template(name, fallback)
}

// RootStyle renders the CSS variables as a :root rule. Values that could
// break out of the declaration are dropped.
func (c Context) RootStyle() template.CSS {
	if len(c.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(c.CSSVars))
	for key := range c.CSSVars {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	// Names are normalised before ordering; an explicit "--" key wins over
	// its unprefixed twin.
	declared := make(map[string]string, len(keys))
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		name, value := strings.TrimSpace(key), strings.TrimSpace(c.CSSVars[key])
		if !safeDeclaration(name) || !safeDeclaration(value) || value == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		if _, seen := declared[name]; seen {
			continue
		}
		declared[name] = value
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString(":root{")
	for _, name := range names {
		fmt.Fprintf(&b, "%s:%s;", name, declared[name])
	}
	b.WriteString("}")
	return template.CSS(b.String())
}

func safeDeclaration(value string) bool {
	return !strings.ContainsAny(value, ";{}<>\"'\\") && !strings.Contains(strings.ToLower(value), "expression")
}

// Selector registers the configured manifest with a go-theme registry and
// resolves selections from it.
type Selector struct {
	selector gotheme.Selector
	prefix   string
	enabled  bool
	logger   interfaces.Logger
}

// Load reads the manifest in cfg.Dir. An empty directory yields a selector
// that always returns the zero Context.
func Load(cfg Config, logger interfaces.Logger) (*Selector, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	prefix := strings.TrimSpace(cfg.CSSPrefix)
	if prefix == "" {
		prefix = DefaultCSSPrefix
	}
	s := &Selector{prefix: prefix, logger: logger}

	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return s, nil
	}
	manifest, err := gotheme.LoadDir(os.DirFS(filepath.Clean(dir)), ".")
	if err != nil {
		return nil, fmt.Errorf("themes: load manifest from %s: %w", dir, err)
	}
	return s.register(manifest, cfg)
}

// FromManifest builds a selector around an already parsed manifest.
func FromManifest(manifest *gotheme.Manifest, cfg Config, logger interfaces.Logger) (*Selector, error) {
	if logger == nil {
		logger = logging.NoOp()
	}
	prefix := strings.TrimSpace(cfg.CSSPrefix)
	if prefix == "" {
		prefix = DefaultCSSPrefix
	}
	s := &Selector{prefix: prefix, logger: logger}
	if manifest == nil {
		return s, nil
	}
	return s.register(manifest, cfg)
}

func (s *Selector) register(manifest *gotheme.Manifest, cfg Config) (*Selector, error) {
	normalized := *manifest
	if name := strings.TrimSpace(cfg.DefaultTheme); name != "" && strings.TrimSpace(normalized.Name) == "" {
		normalized.Name = name
	}
	if strings.TrimSpace(normalized.Name) == "" {
		return nil, fmt.Errorf("themes: theme name required for manifest registration")
	}

	registry := gotheme.NewRegistry()
	if err := registry.Register(&normalized); err != nil {
		return nil, fmt.Errorf("themes: register manifest: %w", err)
	}

	defaultTheme := strings.TrimSpace(cfg.DefaultTheme)
	if defaultTheme == "" {
		defaultTheme = normalized.Name
	}
	s.selector = gotheme.Selector{
		Registry:       registry,
		DefaultTheme:   defaultTheme,
		DefaultVariant: strings.TrimSpace(cfg.DefaultVariant),
	}
	s.enabled = true
	return s, nil
}

// Context resolves the theme for a variant, falling back to the default
// variant. Selection failures are logged and yield the zero Context.
func (s *Selector) Context(variant string) Context {
	if s == nil || !s.enabled {
		return Context{}
	}
	selection, err := s.selector.Select(s.selector.DefaultTheme, strings.TrimSpace(variant))
	if err != nil || selection == nil {
		s.logger.Warn("themes.select_failed", "theme", s.selector.DefaultTheme, "variant", variant, "error", err)
		return Context{}
	}
	return Context{
		Name:     selection.Theme,
		Variant:  selection.Variant,
		Tokens:   selection.Tokens(),
		CSSVars:  selection.CSSVariables(s.prefix),
		assetURL: func(key string) string { url, _ := selection.Asset(key); return url },
		template: selection.Template,
	}
}
