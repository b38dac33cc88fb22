package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/goliatone/go-cms-site/internal/routing"
	"github.com/goliatone/go-cms-site/internal/views"
	"github.com/goliatone/go-cms-site/pages"
)

const (
	backHomeLabel  = "Povratak na početnu"
	backPostsLabel = "Sve vijesti"
	backPageLabel  = "Natrag"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	primary := chi.URLParam(r, "slug")
	if primary == "" {
		primary = s.homeSlug
	}
	outcome, err := s.resolver.Resolve(r.Context(), routing.Request{
		Primary:   primary,
		Secondary: chi.URLParam(r, "sub"),
	})
	if err != nil {
		s.resolveFailed(w, r, err)
		return
	}

	if outcome.Kind.IsNotFound() {
		data := views.NotFound{Message: outcome.Message, BackURL: s.links.PageURL(""), BackLabel: backHomeLabel}
		if outcome.Page != nil {
			data.BackURL = s.links.PageURL(outcome.Page.Slug)
			data.BackLabel = backPageLabel + ": " + outcome.Page.Title
		}
		s.renderNotFound(w, r, data)
		return
	}

	meta := pageMeta{}
	if outcome.Page != nil {
		meta.title = firstNonEmpty(outcome.Page.MetaTitle, outcome.Page.Title)
		meta.description = firstNonEmpty(outcome.Page.MetaDescription, outcome.Page.Excerpt)
	}
	name := s.viewFor(outcome)
	switch outcome.Kind {
	case routing.KindGalleryItem:
		meta.title = outcome.Gallery.Title
		meta.description = outcome.Gallery.Description
	case routing.KindServiceItem:
		meta.title = outcome.Service.Title
		meta.description = outcome.Service.Excerpt
	}
	s.render(w, r, outcome.StatusCode(), name, s.model(r, meta, outcome))
}

func (s *Server) viewFor(outcome routing.Outcome) string {
	switch outcome.Kind {
	case routing.KindGalleryItem:
		return views.ViewGalleryItem
	case routing.KindServiceItem:
		return views.ViewServiceItem
	}
	switch outcome.Mode {
	case pages.RenderModePageBuilder:
		return views.ViewPageBuilder
	case pages.RenderModeGallery:
		return s.views.Legacy(pages.TemplateGallery)
	case pages.RenderModeServices:
		return s.views.Legacy(pages.TemplateServices)
	default:
		return s.views.Legacy(outcome.Template)
	}
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	outcome, err := s.resolver.ResolveListing(r.Context(), page, s.pageSize)
	if err != nil {
		s.resolveFailed(w, r, err)
		return
	}
	data := views.Listing{Listing: outcome.Listing, Partial: outcome.Partial}
	s.render(w, r, http.StatusOK, views.ViewPosts, s.model(r, pageMeta{title: "Vijesti"}, data))
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.resolver.ResolvePost(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.resolveFailed(w, r, err)
		return
	}
	if !outcome.Found || outcome.Post == nil {
		s.renderNotFound(w, r, views.NotFound{
			Message:   firstNonEmpty(outcome.Message, routing.MessagePostNotFound),
			BackURL:   s.links.PostsURL(1),
			BackLabel: backPostsLabel,
		})
		return
	}
	meta := pageMeta{title: outcome.Post.Title, description: outcome.Post.Excerpt}
	s.render(w, r, http.StatusOK, views.ViewPost, s.model(r, meta, outcome.Post))
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderNotFound(w, r, views.NotFound{
		Message:   routing.MessagePageNotFound,
		BackURL:   s.links.PageURL(""),
		BackLabel: backHomeLabel,
	})
}

// resolveFailed handles the only resolver error, a stale result. The client
// has gone away or moved on, so nothing is written beyond the status.
func (s *Server) resolveFailed(w http.ResponseWriter, r *http.Request, err error) {
	logger := logging.WithFields(s.logger.WithContext(r.Context()), map[string]any{"path": r.URL.Path})
	if errors.Is(err, routing.ErrStale) {
		logger.Debug("http.resolve.stale", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	logger.Error("http.resolve.failed", "error", err)
	s.renderFailure(w, r)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
