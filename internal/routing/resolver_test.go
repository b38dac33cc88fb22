package routing

import (
	"context"
	"errors"
	"html/template"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-cms-site/content"
	postscmd "github.com/goliatone/go-cms-site/internal/commands/posts"
	"github.com/goliatone/go-cms-site/internal/guard"
	"github.com/goliatone/go-cms-site/internal/pagebuilder"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/sections"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	pages     map[string]*pages.Page
	sections  map[int][]sections.Section
	galleries map[string]*pages.Gallery
	services  map[string]*pages.Service
	posts     map[int][]content.Post
	bySlug    map[string]*content.Post
	listing   content.Listing

	sectionsErr  error
	postsErr     error
	listErr      error
	pageHook     func()
	waitSections bool
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) GetPageBySlug(_ context.Context, slug string) (*pages.Page, error) {
	f.record("page:" + slug)
	if f.pageHook != nil {
		f.pageHook()
	}
	if page, ok := f.pages[slug]; ok {
		return page, nil
	}
	return nil, &pages.NotFoundError{Resource: "page", Key: slug}
}

func (f *fakeBackend) ListPages(context.Context) ([]*pages.Page, error) { return nil, nil }

func (f *fakeBackend) ListSections(ctx context.Context, pageID int) ([]sections.Section, error) {
	f.record("sections")
	if f.waitSections {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.sectionsErr != nil {
		return nil, f.sectionsErr
	}
	return f.sections[pageID], nil
}

func (f *fakeBackend) GetGalleryBySlug(_ context.Context, _ int, slug string) (*pages.Gallery, error) {
	f.record("gallery:" + slug)
	if g, ok := f.galleries[slug]; ok {
		return g, nil
	}
	return nil, &pages.NotFoundError{Resource: "gallery", Key: slug}
}

func (f *fakeBackend) ListGalleries(context.Context, int) ([]pages.Gallery, error) {
	f.record("galleries")
	out := make([]pages.Gallery, 0, len(f.galleries))
	for _, g := range f.galleries {
		out = append(out, *g)
	}
	return out, nil
}

func (f *fakeBackend) GetServiceBySlug(_ context.Context, _ int, slug string) (*pages.Service, error) {
	f.record("service:" + slug)
	if s, ok := f.services[slug]; ok {
		return s, nil
	}
	return nil, &pages.NotFoundError{Resource: "service", Key: slug}
}

func (f *fakeBackend) ListServices(context.Context, int) ([]pages.Service, error) {
	f.record("services")
	return nil, errors.New("services endpoint down")
}

func (f *fakeBackend) ListPublishedPosts(_ context.Context, page, size int) (content.Listing, error) {
	f.record("published")
	if f.listErr != nil {
		return content.Listing{}, f.listErr
	}
	return f.listing, nil
}

func (f *fakeBackend) ListPostsForPage(_ context.Context, pageID int) ([]content.Post, error) {
	f.record("posts")
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	return f.posts[pageID], nil
}

func (f *fakeBackend) GetPostBySlug(_ context.Context, slug string) (*content.Post, error) {
	f.record("post:" + slug)
	if p, ok := f.bySlug[slug]; ok {
		return p, nil
	}
	return nil, &content.NotFoundError{Resource: "post", Key: slug}
}

func (f *fakeBackend) callList() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type stubComposer struct {
	received [][]sections.Section
}

func (s *stubComposer) Compose(list []sections.Section) pagebuilder.Composition {
	s.received = append(s.received, list)
	if len(list) == 0 {
		return pagebuilder.Composition{Empty: true, Blocks: []pagebuilder.Block{{HTML: template.HTML(pagebuilder.EmptyMessage)}}}
	}
	blocks := make([]pagebuilder.Block, 0, len(list))
	for _, s := range list {
		blocks = append(blocks, pagebuilder.Block{SectionID: s.ID})
	}
	return pagebuilder.Composition{Blocks: blocks}
}

func newResolver(backend *fakeBackend, composer SectionComposer, opts ...Option) *Resolver {
	base := []Option{
		WithGallerySource(backend),
		WithServiceSource(backend),
		WithPostSource(backend),
	}
	return NewResolver(backend, backend, composer, append(base, opts...)...)
}

func TestResolveLegacyTemplatePage(t *testing.T) {
	backend := &fakeBackend{
		pages: map[string]*pages.Page{"o-nama": {ID: 4, Slug: "o-nama", Template: "default"}},
		posts: map[int][]content.Post{4: {{ID: 1, Slug: "vijest"}}},
	}
	composer := &stubComposer{}
	resolver := newResolver(backend, composer)

	outcome, err := resolver.Resolve(context.Background(), Request{Primary: "o-nama"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != KindPageView || outcome.Template != "default" {
		t.Fatalf("expected page view with default template, got %+v", outcome)
	}
	if len(outcome.Posts) != 1 || outcome.Page.ID != 4 {
		t.Fatalf("expected associated posts, got %+v", outcome.Posts)
	}
	if outcome.Composition != nil || len(composer.received) != 0 {
		t.Fatalf("legacy page must not compose sections")
	}
	if calls := backend.callList(); len(calls) != 2 || calls[0] != "page:o-nama" || calls[1] != "posts" {
		t.Fatalf("unexpected fetch sequence %v", calls)
	}
}

func TestResolveLegacyPageSurvivesPostFailure(t *testing.T) {
	backend := &fakeBackend{
		pages:    map[string]*pages.Page{"o-nama": {ID: 4, Slug: "o-nama"}},
		postsErr: errors.New("timeout"),
	}
	outcome, err := newResolver(backend, &stubComposer{}).Resolve(context.Background(), Request{Primary: "o-nama"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != KindPageView || len(outcome.Posts) != 0 || outcome.Template != pages.TemplateDefault {
		t.Fatalf("expected page view with empty posts, got %+v", outcome)
	}
}

func TestResolveGalleryItem(t *testing.T) {
	backend := &fakeBackend{
		pages:     map[string]*pages.Page{"galerija": {ID: 9, Slug: "galerija", Template: "gallery"}},
		galleries: map[string]*pages.Gallery{"otvaranje-parka": {ID: 2, Slug: "otvaranje-parka", Title: "Otvaranje parka"}},
	}
	outcome, err := newResolver(backend, &stubComposer{}).Resolve(context.Background(), Request{Primary: "galerija", Secondary: "otvaranje-parka"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != KindGalleryItem || outcome.Gallery == nil || outcome.Gallery.ID != 2 {
		t.Fatalf("expected gallery item, got %+v", outcome)
	}
	if outcome.StatusCode() != 200 {
		t.Fatalf("expected 200, got %d", outcome.StatusCode())
	}
}

func TestResolveGalleryNotFoundIsDistinct(t *testing.T) {
	backend := &fakeBackend{
		pages: map[string]*pages.Page{"galerija": {ID: 9, Slug: "galerija", Template: "gallery"}},
	}
	outcome, err := newResolver(backend, &stubComposer{}).Resolve(context.Background(), Request{Primary: "galerija", Secondary: "otvaranje-parka"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != KindGalleryNotFound {
		t.Fatalf("expected gallery not found, got %s", outcome.Kind)
	}
	if outcome.Message != MessageGalleryNotFound || outcome.Message == MessagePageNotFound {
		t.Fatalf("expected distinct gallery message, got %q", outcome.Message)
	}
	if !errors.Is(outcome.Cause, ErrNotFound) || !errors.Is(outcome.Cause, pages.ErrGalleryNotFound) {
		t.Fatalf("unexpected cause %v", outcome.Cause)
	}
	if outcome.StatusCode() != 404 {
		t.Fatalf("expected 404, got %d", outcome.StatusCode())
	}
}

func TestResolveServiceItemAndNotFound(t *testing.T) {
	backend := &fakeBackend{
		pages:    map[string]*pages.Page{"usluge": {ID: 5, Slug: "usluge", Template: "services"}},
		services: map[string]*pages.Service{"komunalne-usluge": {ID: 1, Slug: "komunalne-usluge"}},
	}
	resolver := newResolver(backend, &stubComposer{})

	found, err := resolver.Resolve(context.Background(), Request{Primary: "usluge", Secondary: "komunalne-usluge"})
	if err != nil || found.Kind != KindServiceItem || found.Service.ID != 1 {
		t.Fatalf("expected service item, got %+v (%v)", found, err)
	}
	missing, err := resolver.Resolve(context.Background(), Request{Primary: "usluge", Secondary: "nepostojeca"})
	if err != nil || missing.Kind != KindServiceNotFound || missing.Message != MessageServiceNotFound {
		t.Fatalf("expected service not found, got %+v (%v)", missing, err)
	}
}

func TestResolveServicesIndexDegradesListing(t *testing.T) {
	backend := &fakeBackend{pages: map[string]*pages.Page{"usluge": {ID: 5, Slug: "usluge", Template: "services"}}}
	outcome, err := newResolver(backend, &stubComposer{}).Resolve(context.Background(), Request{Primary: "usluge"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != KindPageView || outcome.Template != pages.TemplateServices || outcome.Services != nil {
		t.Fatalf("expected services index with empty listing, got %+v", outcome)
	}
}

func TestResolveSecondaryIgnoredForPlainPages(t *testing.T) {
	backend := &fakeBackend{pages: map[string]*pages.Page{"o-nama": {ID: 4, Slug: "o-nama", Template: "default"}}}
	outcome, err := newResolver(backend, &stubComposer{}).Resolve(context.Background(), Request{Primary: "o-nama", Secondary: "nesto"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != KindPageView {
		t.Fatalf("expected page view, got %s", outcome.Kind)
	}
	for _, call := range backend.callList() {
		if call == "gallery:nesto" || call == "service:nesto" {
			t.Fatalf("unexpected sub-entity lookup %s", call)
		}
	}
}

func TestResolveNotFoundSkipsFurtherFetches(t *testing.T) {
	backend := &fakeBackend{}
	composer := &stubComposer{}
	outcome, err := newResolver(backend, composer).Resolve(context.Background(), Request{Primary: "nonexistent-slug", Secondary: "x"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != KindNotFound || outcome.Message != MessagePageNotFound || outcome.Page != nil {
		t.Fatalf("expected not found, got %+v", outcome)
	}
	if calls := backend.callList(); len(calls) != 1 || calls[0] != "page:nonexistent-slug" {
		t.Fatalf("expected only the page lookup, got %v", calls)
	}
	if len(composer.received) != 0 {
		t.Fatalf("composer must not run for not found pages")
	}
}

func TestResolveInvalidSlugDoesNotFetch(t *testing.T) {
	backend := &fakeBackend{}
	outcome, err := newResolver(backend, &stubComposer{}).Resolve(context.Background(), Request{Primary: "../etc"})
	if err != nil || outcome.Kind != KindNotFound {
		t.Fatalf("expected not found, got %+v (%v)", outcome, err)
	}
	if len(backend.callList()) != 0 {
		t.Fatalf("expected no backend calls, got %v", backend.callList())
	}
}

func TestResolvePageBuilderComposesSections(t *testing.T) {
	list := []sections.Section{{ID: 1, Visible: true}, {ID: 2, Visible: true}}
	backend := &fakeBackend{
		pages:    map[string]*pages.Page{"pocetna": {ID: 1, Slug: "pocetna", UsePageBuilder: true, Template: "gallery"}},
		sections: map[int][]sections.Section{1: list},
	}
	composer := &stubComposer{}
	outcome, err := newResolver(backend, composer).Resolve(context.Background(), Request{Primary: "pocetna", Secondary: "x"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != KindPageView || outcome.Mode != pages.RenderModePageBuilder {
		t.Fatalf("expected page builder view, got %+v", outcome)
	}
	if outcome.Composition == nil || len(outcome.Composition.Blocks) != 2 {
		t.Fatalf("expected composed sections, got %+v", outcome.Composition)
	}
	for _, call := range backend.callList() {
		if call == "posts" {
			t.Fatalf("page builder pages must not fetch posts")
		}
	}
}

func TestResolvePageBuilderSurvivesSectionFailure(t *testing.T) {
	backend := &fakeBackend{
		pages:       map[string]*pages.Page{"pocetna": {ID: 1, Slug: "pocetna", UsePageBuilder: true}},
		sectionsErr: errors.New("502"),
	}
	composer := &stubComposer{}
	outcome, err := newResolver(backend, composer).Resolve(context.Background(), Request{Primary: "pocetna"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Composition == nil || !outcome.Composition.Empty {
		t.Fatalf("expected empty composition after section failure, got %+v", outcome.Composition)
	}
	if len(composer.received) != 1 || len(composer.received[0]) != 0 {
		t.Fatalf("expected composer to receive no sections")
	}
}

func TestResolveDiscardsSupersededResult(t *testing.T) {
	tracker := guard.NewTracker()
	backend := &fakeBackend{pages: map[string]*pages.Page{"o-nama": {ID: 4, Slug: "o-nama"}}}
	backend.pageHook = func() {
		// A newer navigation on the same key starts while this fetch is in flight.
		backend.pageHook = nil
		_ = tracker.Begin("session-1")
	}
	resolver := newResolver(backend, &stubComposer{}, WithTracker(tracker))

	_, err := resolver.Resolve(context.Background(), Request{Primary: "o-nama", Key: "session-1"})
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected stale error, got %v", err)
	}

	outcome, err := resolver.Resolve(context.Background(), Request{Primary: "o-nama", Key: "session-1"})
	if err != nil || outcome.Kind != KindPageView {
		t.Fatalf("expected fresh resolution to succeed, got %+v (%v)", outcome, err)
	}
}

func TestResolveCancelledContextIsStale(t *testing.T) {
	backend := &fakeBackend{pages: map[string]*pages.Page{"o-nama": {ID: 4, Slug: "o-nama"}}}
	ctx, cancel := context.WithCancel(context.Background())
	backend.pageHook = cancel

	_, err := newResolver(backend, &stubComposer{}).Resolve(ctx, Request{Primary: "o-nama"})
	if !errors.Is(err, ErrStale) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected stale cancellation, got %v", err)
	}
	for _, call := range backend.callList() {
		if call == "posts" {
			t.Fatalf("no fetch may follow a cancelled page lookup")
		}
	}
}

func TestResolveDeadlineDuringSectionsDegradesToEmptyPage(t *testing.T) {
	backend := &fakeBackend{
		pages:        map[string]*pages.Page{"pocetna": {ID: 1, Slug: "pocetna", UsePageBuilder: true}},
		waitSections: true,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	outcome, err := newResolver(backend, &stubComposer{}).Resolve(ctx, Request{Primary: "pocetna"})
	if err != nil {
		t.Fatalf("a missed deadline must degrade, not fail: %v", err)
	}
	if outcome.Kind != KindPageView || outcome.Composition == nil || !outcome.Composition.Empty {
		t.Fatalf("expected empty page builder view, got %+v", outcome)
	}
}

func TestResolveListingDeadlineDegrades(t *testing.T) {
	backend := &fakeBackend{listErr: context.DeadlineExceeded}
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	outcome, err := newResolver(backend, &stubComposer{}).ResolveListing(ctx, 1, 10)
	if err != nil || !outcome.Partial {
		t.Fatalf("expected partial listing after deadline, got %+v (%v)", outcome, err)
	}
}

type recordingViews struct {
	mu    sync.Mutex
	slugs []string
	done  chan struct{}
	block chan struct{}
}

func (r *recordingViews) Execute(_ context.Context, msg postscmd.IncrementPostViewCommand) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	r.slugs = append(r.slugs, msg.Slug)
	r.mu.Unlock()
	close(r.done)
	return errors.New("counter offline")
}

func TestResolvePostFiresDetachedViewIncrement(t *testing.T) {
	backend := &fakeBackend{bySlug: map[string]*content.Post{"novi-park": {ID: 3, Slug: "novi-park"}}}
	views := &recordingViews{done: make(chan struct{}), block: make(chan struct{})}
	resolver := newResolver(backend, &stubComposer{}, WithViewIncrement(views))

	outcome, err := resolver.ResolvePost(context.Background(), "novi-park")
	if err != nil {
		t.Fatalf("resolve post: %v", err)
	}
	if !outcome.Found || outcome.Post.ID != 3 {
		t.Fatalf("expected post, got %+v", outcome)
	}

	// The render returned while the increment is still blocked.
	close(views.block)
	select {
	case <-views.done:
	case <-time.After(time.Second):
		t.Fatal("view increment never ran")
	}
	views.mu.Lock()
	defer views.mu.Unlock()
	if len(views.slugs) != 1 || views.slugs[0] != "novi-park" {
		t.Fatalf("unexpected increments %v", views.slugs)
	}
}

func TestResolvePostNotFound(t *testing.T) {
	backend := &fakeBackend{}
	views := &recordingViews{done: make(chan struct{})}
	outcome, err := newResolver(backend, &stubComposer{}, WithViewIncrement(views)).ResolvePost(context.Background(), "nema")
	if err != nil {
		t.Fatalf("resolve post: %v", err)
	}
	if outcome.Found || outcome.Message != MessagePostNotFound {
		t.Fatalf("expected not found, got %+v", outcome)
	}
	if len(views.slugs) != 0 {
		t.Fatalf("no view may be recorded for a missing post")
	}
}

func TestResolveListingDegradesOnFailure(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("down")}
	outcome, err := newResolver(backend, &stubComposer{}).ResolveListing(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("resolve listing: %v", err)
	}
	if !outcome.Partial || len(outcome.Listing.Posts) != 0 || outcome.Listing.Page != 1 || outcome.Listing.PageSize != content.DefaultPageSize {
		t.Fatalf("expected empty partial listing, got %+v", outcome)
	}

	backend = &fakeBackend{listing: content.Listing{Posts: []content.Post{{ID: 1}}, Total: 1}}
	outcome, err = newResolver(backend, &stubComposer{}).ResolveListing(context.Background(), 2, 5)
	if err != nil || outcome.Partial || outcome.Listing.Page != 2 || outcome.Listing.PageSize != 5 {
		t.Fatalf("unexpected listing %+v (%v)", outcome, err)
	}
}
