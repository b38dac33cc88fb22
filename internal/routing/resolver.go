package routing

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/internal/commands"
	postscmd "github.com/goliatone/go-cms-site/internal/commands/posts"
	"github.com/goliatone/go-cms-site/internal/guard"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/pagebuilder"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-cms-site/sections"
	"github.com/goliatone/go-slug"
)

// SectionComposer renders a page's section collection.
type SectionComposer interface {
	Compose(list []sections.Section) pagebuilder.Composition
}

// Request is the slug path of an incoming URL. Key scopes the stale-response
// guard; resolutions sharing a key supersede each other.
type Request struct {
	Primary   string
	Secondary string
	Key       string
}

// Resolver decides which view a URL renders and fetches only the data that
// view needs. Every fetch after the page lookup runs strictly after it.
type Resolver struct {
	pages     interfaces.PageSource
	sections  interfaces.SectionSource
	galleries interfaces.GallerySource
	services  interfaces.ServiceSource
	posts     interfaces.PostSource
	composer  SectionComposer
	views     commands.Executor[postscmd.IncrementPostViewCommand]
	tracker   *guard.Tracker
	logger    interfaces.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

func WithGallerySource(src interfaces.GallerySource) Option {
	return func(r *Resolver) { r.galleries = src }
}

func WithServiceSource(src interfaces.ServiceSource) Option {
	return func(r *Resolver) { r.services = src }
}

func WithPostSource(src interfaces.PostSource) Option {
	return func(r *Resolver) { r.posts = src }
}

// WithViewIncrement sets the handler fired, detached, for every resolved post.
func WithViewIncrement(handler commands.Executor[postscmd.IncrementPostViewCommand]) Option {
	return func(r *Resolver) { r.views = handler }
}

// WithTracker sets the stale-response tracker. Without one, only a cancelled
// context marks a result stale; a missed deadline degrades like any failed load.
func WithTracker(tracker *guard.Tracker) Option {
	return func(r *Resolver) { r.tracker = tracker }
}

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver builds a resolver over the page and section sources.
func NewResolver(pageSource interfaces.PageSource, sectionSource interfaces.SectionSource, composer SectionComposer, opts ...Option) *Resolver {
	r := &Resolver{
		pages:    pageSource,
		sections: sectionSource,
		composer: composer,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve maps req to an Outcome. Lookup failures of the page, gallery or
// service become not found kinds, not errors; the only error is ErrStale.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Outcome, error) {
	ctx = commands.EnsureContext(ctx)
	token := r.begin(req.Key)
	defer token.Done()

	primary := normalizeSlug(req.Primary)
	secondary := normalizeSlug(req.Secondary)
	logger := logging.WithFields(r.logger.WithContext(ctx), map[string]any{
		"page_slug": primary,
		"sub_slug":  secondary,
	})

	if primary == "" || !slug.IsValid(primary) {
		logger.Debug("routing.page.invalid_slug")
		return notFound(KindNotFound, nil, MessagePageNotFound, ErrNotFound), nil
	}

	page, err := r.pages.GetPageBySlug(ctx, primary)
	if staleErr := token.Check(ctx); staleErr != nil {
		return Outcome{}, staleErr
	}
	if err != nil || page == nil {
		logLookupFailure(logger, "routing.page.lookup_failed", err)
		return notFound(KindNotFound, nil, MessagePageNotFound, lookupCause(err)), nil
	}

	mode := page.Mode()
	var outcome Outcome
	switch {
	case secondary != "" && mode == pages.RenderModeGallery:
		outcome = r.resolveGallery(ctx, logger, page, secondary)
	case secondary != "" && mode == pages.RenderModeServices:
		outcome = r.resolveService(ctx, logger, page, secondary)
	default:
		outcome = r.resolvePageView(ctx, logger, page)
	}
	outcome.Mode = mode

	if staleErr := token.Check(ctx); staleErr != nil {
		logger.Debug("routing.resolve.stale", "kind", outcome.Kind)
		return Outcome{}, staleErr
	}
	return outcome, nil
}

func (r *Resolver) resolveGallery(ctx context.Context, logger interfaces.Logger, page *pages.Page, secondary string) Outcome {
	if r.galleries == nil {
		return notFound(KindGalleryNotFound, page, MessageGalleryNotFound, ErrNotFound)
	}
	gallery, err := r.galleries.GetGalleryBySlug(ctx, page.ID, secondary)
	if err != nil || gallery == nil {
		logLookupFailure(logger, "routing.gallery.lookup_failed", err)
		return notFound(KindGalleryNotFound, page, MessageGalleryNotFound, lookupCause(err))
	}
	return Outcome{Kind: KindGalleryItem, Page: page, Gallery: gallery, Template: pages.TemplateGallery}
}

func (r *Resolver) resolveService(ctx context.Context, logger interfaces.Logger, page *pages.Page, secondary string) Outcome {
	if r.services == nil {
		return notFound(KindServiceNotFound, page, MessageServiceNotFound, ErrNotFound)
	}
	service, err := r.services.GetServiceBySlug(ctx, page.ID, secondary)
	if err != nil || service == nil {
		logLookupFailure(logger, "routing.service.lookup_failed", err)
		return notFound(KindServiceNotFound, page, MessageServiceNotFound, lookupCause(err))
	}
	return Outcome{Kind: KindServiceItem, Page: page, Service: service, Template: pages.TemplateServices}
}

func (r *Resolver) resolvePageView(ctx context.Context, logger interfaces.Logger, page *pages.Page) Outcome {
	outcome := Outcome{Kind: KindPageView, Page: page}

	if page.UsePageBuilder {
		var list []sections.Section
		if r.sections != nil {
			fetched, err := r.sections.ListSections(ctx, page.ID)
			if err != nil {
				logPartial(logger, &PartialLoadError{Resource: "sections", PageID: page.ID, Err: err})
			} else {
				list = fetched
			}
		}
		composition := r.composer.Compose(list)
		outcome.Composition = &composition
		return outcome
	}

	outcome.Template = page.TemplateName()
	if r.posts != nil {
		posts, err := r.posts.ListPostsForPage(ctx, page.ID)
		if err != nil {
			logPartial(logger, &PartialLoadError{Resource: "posts", PageID: page.ID, Err: err})
		} else {
			outcome.Posts = posts
		}
	}

	switch page.Mode() {
	case pages.RenderModeGallery:
		if r.galleries != nil {
			list, err := r.galleries.ListGalleries(ctx, page.ID)
			if err != nil {
				logPartial(logger, &PartialLoadError{Resource: "galleries", PageID: page.ID, Err: err})
			} else {
				outcome.Galleries = list
			}
		}
	case pages.RenderModeServices:
		if r.services != nil {
			list, err := r.services.ListServices(ctx, page.ID)
			if err != nil {
				logPartial(logger, &PartialLoadError{Resource: "services", PageID: page.ID, Err: err})
			} else {
				outcome.Services = list
			}
		}
	}
	return outcome
}

// ResolvePost fetches a single post by slug and, when found, records the view
// on a detached task the render never waits for.
func (r *Resolver) ResolvePost(ctx context.Context, postSlug string) (PostOutcome, error) {
	ctx = commands.EnsureContext(ctx)
	postSlug = normalizeSlug(postSlug)
	logger := logging.WithFields(r.logger.WithContext(ctx), map[string]any{"post_slug": postSlug})

	if r.posts == nil || postSlug == "" || !slug.IsValid(postSlug) {
		return PostOutcome{Message: MessagePostNotFound, Cause: ErrNotFound}, nil
	}

	post, err := r.posts.GetPostBySlug(ctx, postSlug)
	if staleErr := (guard.Token{}).Check(ctx); staleErr != nil {
		return PostOutcome{}, staleErr
	}
	if err != nil || post == nil {
		logLookupFailure(logger, "routing.post.lookup_failed", err)
		return PostOutcome{Message: MessagePostNotFound, Cause: lookupCause(err)}, nil
	}

	if r.views != nil {
		commands.Detach(ctx, logger, r.views, postscmd.IncrementPostViewCommand{Slug: post.Slug})
	}
	return PostOutcome{Found: true, Post: post}, nil
}

// ResolveListing fetches one page of published posts. A failed fetch yields an
// empty listing flagged Partial.
func (r *Resolver) ResolveListing(ctx context.Context, page, pageSize int) (ListingOutcome, error) {
	ctx = commands.EnsureContext(ctx)
	page, pageSize = content.NormalizePaging(page, pageSize)
	empty := content.Listing{Page: page, PageSize: pageSize}
	if r.posts == nil {
		return ListingOutcome{Listing: empty, Partial: true}, nil
	}

	listing, err := r.posts.ListPublishedPosts(ctx, page, pageSize)
	if staleErr := (guard.Token{}).Check(ctx); staleErr != nil {
		return ListingOutcome{}, staleErr
	}
	if err != nil {
		logPartial(r.logger.WithContext(ctx), &PartialLoadError{Resource: "published posts", Err: err})
		return ListingOutcome{Listing: empty, Partial: true}, nil
	}
	if listing.Page == 0 {
		listing.Page = page
	}
	if listing.PageSize == 0 {
		listing.PageSize = pageSize
	}
	return ListingOutcome{Listing: listing}, nil
}

func (r *Resolver) begin(key string) guard.Token {
	if r.tracker == nil || strings.TrimSpace(key) == "" {
		return guard.Token{}
	}
	return r.tracker.Begin(key)
}

func notFound(kind Kind, page *pages.Page, message string, cause error) Outcome {
	return Outcome{Kind: kind, Page: page, Message: message, Cause: cause}
}

func normalizeSlug(value string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(value), "/"))
}

func lookupCause(err error) error {
	if err == nil {
		return ErrNotFound
	}
	return errors.Join(ErrNotFound, err)
}

// logLookupFailure keeps plain misses at debug and reports anything else.
func logLookupFailure(logger interfaces.Logger, event string, err error) {
	if err == nil || isMiss(err) {
		logger.Debug(event, "error", err)
		return
	}
	logger.Error(event, "error", err)
}

func isMiss(err error) bool {
	return errors.Is(err, pages.ErrPageNotFound) ||
		errors.Is(err, pages.ErrGalleryNotFound) ||
		errors.Is(err, pages.ErrServiceNotFound) ||
		errors.Is(err, content.ErrPostNotFound)
}

func logPartial(logger interfaces.Logger, err *PartialLoadError) {
	logger.Warn("routing.partial_load", "resource", err.Resource, "page_id", err.PageID, "error", err)
}
