package http

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-cms-site/internal/commands"
	admincmd "github.com/goliatone/go-cms-site/internal/commands/admin"
	navigationcmd "github.com/goliatone/go-cms-site/internal/commands/navigation"
	"github.com/goliatone/go-cms-site/internal/guard"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/navigation"
	"github.com/goliatone/go-cms-site/internal/routing"
	"github.com/goliatone/go-cms-site/internal/themes"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-cms-site/sections"
	"github.com/gorilla/sessions"
)

const (
	defaultSiteName       = "Općina"
	defaultSessionName    = "site_admin"
	defaultPublicLimit    = 300
	defaultAdminLimit     = 120
	defaultRequestTimeout = 20 * time.Second
)

// PageResolver decides what a public URL renders.
type PageResolver interface {
	Resolve(ctx context.Context, req routing.Request) (routing.Outcome, error)
	ResolvePost(ctx context.Context, slug string) (routing.PostOutcome, error)
	ResolveListing(ctx context.Context, page, pageSize int) (routing.ListingOutcome, error)
}

// MenuProvider builds the main navigation.
type MenuProvider interface {
	Menu(ctx context.Context) []navigation.Item
}

// ThemeProvider selects the theme context for a request.
type ThemeProvider interface {
	Context(variant string) themes.Context
}

// ViewRenderer renders named views and resolves legacy template views.
type ViewRenderer interface {
	interfaces.TemplateRenderer
	Legacy(templateName string) string
}

// SectionPreviewer renders a single section for the dashboard preview.
type SectionPreviewer interface {
	Render(section sections.Section) (template.HTML, error)
}

// AdminHandlers groups the dashboard commands.
type AdminHandlers struct {
	SaveDirector         commands.Executor[admincmd.SaveDirectorCommand]
	DeleteDirector       commands.Executor[admincmd.DeleteDirectorCommand]
	SaveGallery          commands.Executor[admincmd.SaveGalleryCommand]
	DeleteGallery        commands.Executor[admincmd.DeleteGalleryCommand]
	UpdateSection        commands.Executor[admincmd.UpdateSectionCommand]
	InvalidateNavigation commands.Executor[navigationcmd.InvalidateNavigationCommand]
}

// Server wires the public site and the dashboard onto a chi router.
type Server struct {
	resolver PageResolver
	menu     MenuProvider
	views    ViewRenderer
	themes   ThemeProvider
	links    *navigation.Links
	logger   interfaces.Logger
	siteName string
	homeSlug string
	pageSize int
	variant  string
	limits   rateLimits
	timeout  time.Duration
	now      func() time.Time

	adminEnabled bool
	directors    interfaces.DirectorStore
	galleries    interfaces.GalleryStore
	sections     interfaces.SectionSource
	previewer    SectionPreviewer
	handlers     AdminHandlers
	store        sessions.Store
	sessionName  string
	tracker      *guard.Tracker
}

type rateLimits struct {
	public int
	admin  int
}

// Option configures the server.
type Option func(*Server)

// WithMenu sets the navigation source rendered in every public layout.
func WithMenu(menu MenuProvider) Option {
	return func(s *Server) { s.menu = menu }
}

// WithThemes sets the theme selector.
func WithThemes(provider ThemeProvider, variant string) Option {
	return func(s *Server) {
		s.themes = provider
		s.variant = strings.TrimSpace(variant)
	}
}

// WithLinks sets the URL builder used for redirects and back links.
func WithLinks(links *navigation.Links) Option {
	return func(s *Server) { s.links = links }
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSite sets the site name, the page served at the root and the post page size.
func WithSite(name, homeSlug string, pageSize int) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.siteName = trimmed
		}
		if trimmed := strings.TrimSpace(homeSlug); trimmed != "" {
			s.homeSlug = trimmed
		}
		if pageSize > 0 {
			s.pageSize = pageSize
		}
	}
}

// WithRateLimits sets the per-minute request budgets of the public and admin routes.
func WithRateLimits(public, admin int) Option {
	return func(s *Server) {
		if public > 0 {
			s.limits.public = public
		}
		if admin > 0 {
			s.limits.admin = admin
		}
	}
}

// WithRequestTimeout bounds every request.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithAdmin mounts the dashboard. Flash messages and preview keys live in a
// cookie session signed with secret.
func WithAdmin(secret, sessionName string, directors interfaces.DirectorStore, galleries interfaces.GalleryStore, sectionSource interfaces.SectionSource, handlers AdminHandlers) Option {
	return func(s *Server) {
		s.adminEnabled = true
		s.directors = directors
		s.galleries = galleries
		s.sections = sectionSource
		s.handlers = handlers
		if trimmed := strings.TrimSpace(sessionName); trimmed != "" {
			s.sessionName = trimmed
		}
		s.store = newCookieStore(secret)
	}
}

// WithPreview sets the section renderer behind the dashboard preview.
func WithPreview(previewer SectionPreviewer, tracker *guard.Tracker) Option {
	return func(s *Server) {
		s.previewer = previewer
		if tracker != nil {
			s.tracker = tracker
		}
	}
}

// NewServer constructs the server over a resolver and a view renderer.
func NewServer(resolver PageResolver, views ViewRenderer, opts ...Option) *Server {
	s := &Server{
		resolver:    resolver,
		views:       views,
		logger:      logging.NoOp(),
		siteName:    defaultSiteName,
		homeSlug:    navigation.HomeSlug,
		limits:      rateLimits{public: defaultPublicLimit, admin: defaultAdminLimit},
		timeout:     defaultRequestTimeout,
		sessionName: defaultSessionName,
		tracker:     guard.NewTracker(),
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListenAndServe serves Routes on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http.server.listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("http.server.shutdown")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
