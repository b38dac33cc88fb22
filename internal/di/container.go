package di

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-cms-site/internal/backend"
	"github.com/goliatone/go-cms-site/internal/cache"
	"github.com/goliatone/go-cms-site/internal/commands"
	admincmd "github.com/goliatone/go-cms-site/internal/commands/admin"
	navigationcmd "github.com/goliatone/go-cms-site/internal/commands/navigation"
	postscmd "github.com/goliatone/go-cms-site/internal/commands/posts"
	"github.com/goliatone/go-cms-site/internal/guard"
	sitehttp "github.com/goliatone/go-cms-site/internal/http"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/logging/console"
	"github.com/goliatone/go-cms-site/internal/logging/gologger"
	"github.com/goliatone/go-cms-site/internal/markdown"
	"github.com/goliatone/go-cms-site/internal/media"
	"github.com/goliatone/go-cms-site/internal/navigation"
	"github.com/goliatone/go-cms-site/internal/pagebuilder"
	"github.com/goliatone/go-cms-site/internal/routing"
	"github.com/goliatone/go-cms-site/internal/runtimeconfig"
	"github.com/goliatone/go-cms-site/internal/themes"
	"github.com/goliatone/go-cms-site/internal/views"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-cms-site/sections"
)

// Container wires the site's collaborators from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpClient     *http.Client
	cache          interfaces.CacheProvider
	tracker        *guard.Tracker
	menuTemplate   *navigation.Template

	client    *backend.Client
	pages     *backend.CachedPages
	media     media.Resolver
	renderer  *sections.Renderer
	composer  *pagebuilder.Composer
	resolver  *routing.Resolver
	links     *navigation.Links
	menu      *navigation.Service
	themes    *themes.Selector
	views     *views.Registry
	importer  *markdown.Importer
	handlers  Handlers
	server    *sitehttp.Server
	overrides overrides
}

type overrides struct {
	cache bool
}

// Handlers groups the command handlers built by the container.
type Handlers struct {
	SaveDirector         *admincmd.SaveDirectorHandler
	DeleteDirector       *admincmd.DeleteDirectorHandler
	SaveGallery          *admincmd.SaveGalleryHandler
	DeleteGallery        *admincmd.DeleteGalleryHandler
	UpdateSection        *admincmd.UpdateSectionHandler
	InvalidateNavigation *navigationcmd.InvalidateNavigationHandler
	IncrementPostView    *postscmd.IncrementPostViewHandler
}

// All lists the handlers in registration order.
func (h Handlers) All() []any {
	return []any{
		h.SaveDirector,
		h.DeleteDirector,
		h.SaveGallery,
		h.DeleteGallery,
		h.UpdateSection,
		h.InvalidateNavigation,
		h.IncrementPostView,
	}
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithHTTPClient sets the client used to reach the backend.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithCache replaces the go-repository-cache service behind the page list. A
// nil provider disables caching.
func WithCache(provider interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.cache = provider
		c.overrides.cache = true
	}
}

// WithTracker shares a stale-response tracker with the container.
func WithTracker(tracker *guard.Tracker) Option {
	return func(c *Container) {
		if tracker != nil {
			c.tracker = tracker
		}
	}
}

// WithMenuTemplate replaces the default main menu template.
func WithMenuTemplate(tpl navigation.Template) Option {
	return func(c *Container) { c.menuTemplate = &tpl }
}

// NewContainer validates cfg and builds every collaborator.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		tracker: guard.NewTracker(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := buildLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	c.configureBackend()
	if err := c.configureRendering(); err != nil {
		return nil, err
	}
	c.configureHandlers()
	c.configureResolver()
	if err := c.configureNavigation(); err != nil {
		return nil, err
	}
	if err := c.configureViews(); err != nil {
		return nil, err
	}
	c.configureImporter()
	c.configureServer()

	logging.ModuleLogger(c.loggerProvider, "site.di").Info("di.container.ready",
		"backend", c.client.BaseURL(),
		"admin", cfg.Admin.Enabled,
		"cache", c.cache != nil,
		"theme", cfg.Themes.DefaultTheme,
	)
	return c, nil
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, fmt.Errorf("di: configure go-logger: %w", err)
		}
		return provider, nil
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	}
}

func (c *Container) configureBackend() {
	backendLogger := logging.BackendLogger(c.loggerProvider)
	var clientOpts []backend.Option
	if c.httpClient != nil {
		clientOpts = append(clientOpts, backend.WithHTTPClient(c.httpClient))
	}
	clientOpts = append(clientOpts,
		backend.WithTimeout(c.Config.Backend.Timeout),
		backend.WithLogger(backendLogger),
	)
	c.client = backend.New(c.Config.Backend.BaseURL, clientOpts...)

	if !c.overrides.cache && c.Config.Cache.Enabled {
		service, err := cache.New(c.Config.Cache.TTL)
		if err != nil {
			backendLogger.Warn("di.cache.unavailable", "error", err)
		} else {
			c.cache = service
		}
	}
	c.pages = backend.NewCachedPages(c.client, c.cache, backendLogger)
	c.media = media.NewResolver(c.Config.Media.BaseURL)
}

func (c *Container) configureRendering() error {
	renderer, err := sections.NewRenderer(sections.WithMediaResolver(c.media))
	if err != nil {
		return fmt.Errorf("di: build section renderer: %w", err)
	}
	c.renderer = renderer
	c.composer = pagebuilder.NewComposer(renderer, pagebuilder.WithLogger(logging.SectionsLogger(c.loggerProvider)))
	return nil
}

func (c *Container) configureHandlers() {
	adminLogger := commands.CommandLogger(c.loggerProvider, "admin")
	c.handlers = Handlers{
		SaveDirector:         admincmd.NewSaveDirectorHandler(c.client, adminLogger),
		DeleteDirector:       admincmd.NewDeleteDirectorHandler(c.client, adminLogger),
		SaveGallery:          admincmd.NewSaveGalleryHandler(c.client, adminLogger),
		DeleteGallery:        admincmd.NewDeleteGalleryHandler(c.client, adminLogger),
		UpdateSection:        admincmd.NewUpdateSectionHandler(c.client, adminLogger),
		InvalidateNavigation: navigationcmd.NewInvalidateNavigationHandler(c.pages, commands.CommandLogger(c.loggerProvider, "navigation")),
		IncrementPostView:    postscmd.NewIncrementPostViewHandler(c.client, commands.CommandLogger(c.loggerProvider, "posts")),
	}
}

// configureResolver leaves the resolver without a tracker: public requests
// are independent, so only a cancelled request is stale.
func (c *Container) configureResolver() {
	c.resolver = routing.NewResolver(c.client, c.client, c.composer,
		routing.WithGallerySource(c.client),
		routing.WithServiceSource(c.client),
		routing.WithPostSource(c.client),
		routing.WithViewIncrement(c.handlers.IncrementPostView),
		routing.WithLogger(logging.RoutingLogger(c.loggerProvider)),
	)
}

func (c *Container) configureNavigation() error {
	links, err := navigation.NewLinks(navigation.NewRouteManager(c.Config.Site.PublicURL))
	if err != nil {
		return fmt.Errorf("di: build route manager: %w", err)
	}
	c.links = links

	menuOpts := []navigation.Option{
		navigation.WithURLBuilder(links),
		navigation.WithLogger(logging.NavigationLogger(c.loggerProvider)),
	}
	if c.menuTemplate != nil {
		menuOpts = append(menuOpts, navigation.WithTemplate(*c.menuTemplate))
	}
	c.menu = navigation.NewService(c.pages, menuOpts...)
	return nil
}

func (c *Container) configureViews() error {
	selector, err := themes.Load(themes.Config{
		Dir:            c.Config.Themes.Dir,
		DefaultTheme:   c.Config.Themes.DefaultTheme,
		DefaultVariant: c.Config.Themes.Variant,
	}, logging.ModuleLogger(c.loggerProvider, "site.themes"))
	if err != nil {
		return fmt.Errorf("di: load theme: %w", err)
	}
	c.themes = selector

	registry, err := views.New(views.WithLinks(c.links), views.WithMedia(c.media))
	if err != nil {
		return fmt.Errorf("di: parse views: %w", err)
	}
	c.views = registry
	return nil
}

func (c *Container) configureImporter() {
	c.importer = markdown.NewImporter(markdown.ImporterConfig{
		Writer:   c.client,
		Lookup:   c.client,
		Renderer: markdown.NewRenderer(markdown.RenderOptions{}),
		Logger:   logging.ImportLogger(c.loggerProvider),
	})
}

func (c *Container) configureServer() {
	cfg := c.Config
	opts := []sitehttp.Option{
		sitehttp.WithMenu(c.menu),
		sitehttp.WithThemes(c.themes, cfg.Themes.Variant),
		sitehttp.WithLinks(c.links),
		sitehttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		sitehttp.WithSite(cfg.Site.Name, cfg.Site.HomeSlug, cfg.Site.PageSize),
		sitehttp.WithRateLimits(cfg.RateLimit.PublicPerMinute, cfg.RateLimit.AdminPerMinute),
		sitehttp.WithRequestTimeout(cfg.Server.RequestTimeout),
	}
	if cfg.Admin.Enabled {
		opts = append(opts,
			sitehttp.WithAdmin(cfg.Admin.SessionSecret, cfg.Admin.SessionName, c.client, c.client, c.client, sitehttp.AdminHandlers{
				SaveDirector:         c.handlers.SaveDirector,
				DeleteDirector:       c.handlers.DeleteDirector,
				SaveGallery:          c.handlers.SaveGallery,
				DeleteGallery:        c.handlers.DeleteGallery,
				UpdateSection:        c.handlers.UpdateSection,
				InvalidateNavigation: c.handlers.InvalidateNavigation,
			}),
			sitehttp.WithPreview(c.renderer, c.tracker),
		)
	}
	c.server = sitehttp.NewServer(c.resolver, c.views, opts...)
}

// LoggerProvider returns the provider every module logger derives from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Backend returns the content API client.
func (c *Container) Backend() *backend.Client { return c.client }

// Pages returns the cached page source used by navigation.
func (c *Container) Pages() *backend.CachedPages { return c.pages }

// Renderer returns the section renderer.
func (c *Container) Renderer() *sections.Renderer { return c.renderer }

// Composer returns the page builder composer.
func (c *Container) Composer() *pagebuilder.Composer { return c.composer }

// Resolver returns the public route resolver.
func (c *Container) Resolver() *routing.Resolver { return c.resolver }

// Links returns the URL builder.
func (c *Container) Links() *navigation.Links { return c.links }

// Menu returns the navigation service.
func (c *Container) Menu() *navigation.Service { return c.menu }

// Themes returns the theme selector.
func (c *Container) Themes() *themes.Selector { return c.themes }

// Views returns the template registry.
func (c *Container) Views() *views.Registry { return c.views }

// Importer returns the Markdown post importer.
func (c *Container) Importer() *markdown.Importer { return c.importer }

// Handlers returns the command handlers.
func (c *Container) Handlers() Handlers { return c.handlers }

// Server returns the HTTP server.
func (c *Container) Server() *sitehttp.Server { return c.server }

// Tracker returns the stale-response tracker shared with the preview endpoint.
func (c *Container) Tracker() *guard.Tracker { return c.tracker }
