package http

import (
	"net/http"

	"github.com/goliatone/go-cms-site/internal/themes"
	"github.com/goliatone/go-cms-site/internal/views"
)

type pageMeta struct {
	title       string
	description string
	flashes     []views.Flash
	admin       bool
}

func (s *Server) model(r *http.Request, meta pageMeta, data any) views.Page {
	page := views.Page{
		Site:        s.siteName,
		Title:       meta.title,
		Description: meta.description,
		Flashes:     meta.flashes,
		RequestID:   requestIDFrom(r),
		Year:        s.now().Year(),
		Data:        data,
	}
	if meta.admin {
		return page
	}
	if s.menu != nil {
		page.Menu = s.menu.Menu(r.Context())
	}
	page.Theme = s.theme()
	return page
}

func (s *Server) theme() themes.Context {
	if s.themes == nil {
		return themes.Context{}
	}
	return s.themes.Context(s.variant)
}

// render writes the named view with status. A theme may swap the view for one
// of its own when the registry holds it.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	if override := page.Theme.Template(name, name); override != name && s.views.Has(override) {
		name = override
	}
	body, err := s.views.Render(name, page)
	if err != nil {
		s.logger.WithContext(r.Context()).Error("http.render.failed", "view", name, "error", err)
		s.renderFailure(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request) {
	page := views.Page{Site: s.siteName, RequestID: requestIDFrom(r), Year: s.now().Year()}
	body, err := s.views.Render(views.ViewError, page)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(body))
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, data views.NotFound) {
	s.render(w, r, http.StatusNotFound, views.ViewNotFound, s.model(r, pageMeta{title: data.Message}, data))
}
