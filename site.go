package site

import (
	"context"
	"io/fs"
	"net/http"

	navigationcmd "github.com/goliatone/go-cms-site/internal/commands/navigation"
	"github.com/goliatone/go-cms-site/internal/di"
	"github.com/goliatone/go-cms-site/internal/markdown"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
)

// ImportResult summarises a Markdown post import.
type ImportResult = markdown.ImportResult

// Option overrides parts of the wiring.
type Option = di.Option

// WithLoggerProvider replaces the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithHTTPClient sets the client used to reach the content API.
func WithHTTPClient(client *http.Client) Option {
	return di.WithHTTPClient(client)
}

// WithCache replaces the page list cache. A nil provider disables caching.
func WithCache(provider interfaces.CacheProvider) Option {
	return di.WithCache(provider)
}

// Module represents the top level site runtime façade.
type Module struct {
	container *di.Container
}

// New constructs the site using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Routes returns the public site and, when enabled, the dashboard.
func (m *Module) Routes() http.Handler {
	return m.container.Server().Routes()
}

// Serve listens on Config.Server.Addr until ctx is cancelled.
func (m *Module) Serve(ctx context.Context) error {
	srv := m.container.Config.Server
	return m.container.Server().ListenAndServe(ctx, srv.Addr, srv.ReadTimeout, srv.WriteTimeout, srv.ShutdownTimeout)
}

// ImportPosts publishes every Markdown file under root in fsys as a post.
// Posts whose slug already exists are skipped. A dry run converts without
// writing.
func (m *Module) ImportPosts(ctx context.Context, fsys fs.FS, root string, dryRun bool) (ImportResult, error) {
	docs, err := markdown.LoadDirectory(ctx, fsys, root, "")
	if err != nil {
		return ImportResult{}, err
	}
	return m.container.Importer().Import(ctx, docs, markdown.ImportOptions{DryRun: dryRun})
}

// InvalidateNavigation drops the cached page list behind the main menu.
func (m *Module) InvalidateNavigation(ctx context.Context) error {
	return m.container.Handlers().InvalidateNavigation.Execute(ctx, navigationcmd.InvalidateNavigationCommand{Reason: "api"})
}
