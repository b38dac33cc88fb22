package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/internal/commands"
	admincmd "github.com/goliatone/go-cms-site/internal/commands/admin"
	"github.com/goliatone/go-cms-site/internal/navigation"
	"github.com/goliatone/go-cms-site/internal/views"
	"github.com/goliatone/go-cms-site/pages"
	command "github.com/goliatone/go-command"
)

const (
	flashSaved      = "Promjene su spremljene."
	flashDeleted    = "Zapis je obrisan."
	flashSaveFailed = "Spremanje nije uspjelo."
	flashLoadFailed = "Podatke nije moguće učitati."
	flashNotFound   = "Zapis nije pronađen."
	formDateLayout  = "2006-01-02"
)

var errHandlerMissing = errors.New("http: admin handler not configured")

func (s *Server) handleAdminIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.links.AdminURL(navigation.RouteDirectors, 0), http.StatusSeeOther)
}

func (s *Server) adminPage(w http.ResponseWriter, r *http.Request, status int, name, title string, data any, extra ...views.Flash) {
	flashes := append(s.popFlashes(w, r), extra...)
	s.render(w, r, status, name, s.model(r, pageMeta{title: title, flashes: flashes, admin: true}, data))
}

func (s *Server) redirectWithFlash(w http.ResponseWriter, r *http.Request, kind, message, target string) {
	s.addFlash(w, r, kind, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Directors

func (s *Server) handleDirectorList(w http.ResponseWriter, r *http.Request) {
	list, err := s.directors.ListDirectors(r.Context())
	if err != nil {
		s.logger.WithContext(r.Context()).Error("http.admin.directors.list_failed", "error", err)
		s.adminPage(w, r, http.StatusOK, views.ViewDirectors, "Ravnatelji", list, views.Flash{Kind: flashError, Message: flashLoadFailed})
		return
	}
	s.adminPage(w, r, http.StatusOK, views.ViewDirectors, "Ravnatelji", list)
}

func (s *Server) handleDirectorNew(w http.ResponseWriter, r *http.Request) {
	form := views.DirectorForm{
		Director: content.Director{IsActive: true},
		Action:   s.links.AdminURL(navigation.RouteDirectors, 0),
	}
	s.adminPage(w, r, http.StatusOK, views.ViewDirectorForm, "Novi ravnatelj", form)
}

func (s *Server) handleDirectorEdit(w http.ResponseWriter, r *http.Request) {
	listURL := s.links.AdminURL(navigation.RouteDirectors, 0)
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.redirectWithFlash(w, r, flashError, flashNotFound, listURL)
		return
	}
	director, err := s.directors.GetDirector(r.Context(), id)
	if err != nil || director == nil {
		s.logger.WithContext(r.Context()).Warn("http.admin.directors.get_failed", "director_id", id, "error", err)
		s.redirectWithFlash(w, r, flashError, flashNotFound, listURL)
		return
	}
	form := views.DirectorForm{Director: *director, Action: s.links.AdminURL(navigation.RouteDirector, id)}
	s.adminPage(w, r, http.StatusOK, views.ViewDirectorForm, director.Name, form)
}

func (s *Server) handleDirectorSave(w http.ResponseWriter, r *http.Request) {
	listURL := s.links.AdminURL(navigation.RouteDirectors, 0)
	if err := r.ParseForm(); err != nil {
		s.redirectWithFlash(w, r, flashError, flashSaveFailed, listURL)
		return
	}
	director := directorFromForm(r)
	action := listURL
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			s.redirectWithFlash(w, r, flashError, flashNotFound, listURL)
			return
		}
		director.ID = id
		action = s.links.AdminURL(navigation.RouteDirector, id)
	}

	err := execute(r.Context(), s.handlers.SaveDirector, admincmd.SaveDirectorCommand{Director: director})
	if commands.IsValidation(err) {
		form := views.DirectorForm{Director: director, Action: action, Errors: fieldMessages(err)}
		s.adminPage(w, r, http.StatusUnprocessableEntity, views.ViewDirectorForm, firstNonEmpty(director.Name, "Ravnatelj"), form)
		return
	}
	if err != nil {
		s.logger.WithContext(r.Context()).Error("http.admin.directors.save_failed", "director_id", director.ID, "error", err)
		s.redirectWithFlash(w, r, flashError, flashSaveFailed, listURL)
		return
	}
	s.redirectWithFlash(w, r, flashSuccess, flashSaved, listURL)
}

func (s *Server) handleDirectorDelete(w http.ResponseWriter, r *http.Request) {
	listURL := s.links.AdminURL(navigation.RouteDirectors, 0)
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.redirectWithFlash(w, r, flashError, flashNotFound, listURL)
		return
	}
	if err := execute(r.Context(), s.handlers.DeleteDirector, admincmd.DeleteDirectorCommand{ID: id}); err != nil {
		s.logger.WithContext(r.Context()).Error("http.admin.directors.delete_failed", "director_id", id, "error", err)
		s.redirectWithFlash(w, r, flashError, flashSaveFailed, listURL)
		return
	}
	s.redirectWithFlash(w, r, flashSuccess, flashDeleted, listURL)
}

func directorFromForm(r *http.Request) content.Director {
	return content.Director{
		Name:      strings.TrimSpace(r.PostFormValue("name")),
		Position:  strings.TrimSpace(r.PostFormValue("position")),
		Bio:       strings.TrimSpace(r.PostFormValue("bio")),
		Photo:     strings.TrimSpace(r.PostFormValue("photo")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Phone:     strings.TrimSpace(r.PostFormValue("phone")),
		SortOrder: parseIntForm(r.PostFormValue("sortOrder"), 0),
		IsActive:  parseBoolForm(r.PostFormValue("isActive"), false),
		TermStart: parseDateForm(r.PostFormValue("termStart")),
		TermEnd:   parseDateForm(r.PostFormValue("termEnd")),
	}
}

// Galleries

func (s *Server) handleGalleryList(w http.ResponseWriter, r *http.Request) {
	list, err := s.galleries.ListAllGalleries(r.Context())
	if err != nil {
		s.logger.WithContext(r.Context()).Error("http.admin.galleries.list_failed", "error", err)
		s.adminPage(w, r, http.StatusOK, views.ViewGalleries, "Galerije", list, views.Flash{Kind: flashError, Message: flashLoadFailed})
		return
	}
	s.adminPage(w, r, http.StatusOK, views.ViewGalleries, "Galerije", list)
}

func (s *Server) handleGalleryNew(w http.ResponseWriter, r *http.Request) {
	form := views.GalleryForm{Action: s.links.AdminURL(navigation.RouteGalleries, 0)}
	s.adminPage(w, r, http.StatusOK, views.ViewGalleryForm, "Nova galerija", form)
}

func (s *Server) handleGalleryEdit(w http.ResponseWriter, r *http.Request) {
	listURL := s.links.AdminURL(navigation.RouteGalleries, 0)
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.redirectWithFlash(w, r, flashError, flashNotFound, listURL)
		return
	}
	gallery, err := s.galleries.GetGallery(r.Context(), id)
	if err != nil || gallery == nil {
		s.logger.WithContext(r.Context()).Warn("http.admin.galleries.get_failed", "gallery_id", id, "error", err)
		s.redirectWithFlash(w, r, flashError, flashNotFound, listURL)
		return
	}
	form := views.GalleryForm{Gallery: *gallery, Action: s.links.AdminURL(navigation.RouteGallery, id)}
	s.adminPage(w, r, http.StatusOK, views.ViewGalleryForm, gallery.Title, form)
}

func (s *Server) handleGallerySave(w http.ResponseWriter, r *http.Request) {
	listURL := s.links.AdminURL(navigation.RouteGalleries, 0)
	if err := r.ParseForm(); err != nil {
		s.redirectWithFlash(w, r, flashError, flashSaveFailed, listURL)
		return
	}
	gallery := galleryFromForm(r)
	action := listURL
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			s.redirectWithFlash(w, r, flashError, flashNotFound, listURL)
			return
		}
		gallery.ID = id
		action = s.links.AdminURL(navigation.RouteGallery, id)
	}

	msg := admincmd.SaveGalleryCommand{Gallery: gallery}.Normalized()
	err := execute(r.Context(), s.handlers.SaveGallery, msg)
	if commands.IsValidation(err) {
		form := views.GalleryForm{Gallery: msg.Gallery, Action: action, Errors: fieldMessages(err)}
		s.adminPage(w, r, http.StatusUnprocessableEntity, views.ViewGalleryForm, firstNonEmpty(gallery.Title, "Galerija"), form)
		return
	}
	if err != nil {
		s.logger.WithContext(r.Context()).Error("http.admin.galleries.save_failed", "gallery_id", gallery.ID, "error", err)
		s.redirectWithFlash(w, r, flashError, flashSaveFailed, listURL)
		return
	}
	s.redirectWithFlash(w, r, flashSuccess, flashSaved, listURL)
}

func (s *Server) handleGalleryDelete(w http.ResponseWriter, r *http.Request) {
	listURL := s.links.AdminURL(navigation.RouteGalleries, 0)
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.redirectWithFlash(w, r, flashError, flashNotFound, listURL)
		return
	}
	if err := execute(r.Context(), s.handlers.DeleteGallery, admincmd.DeleteGalleryCommand{ID: id}); err != nil {
		s.logger.WithContext(r.Context()).Error("http.admin.galleries.delete_failed", "gallery_id", id, "error", err)
		s.redirectWithFlash(w, r, flashError, flashSaveFailed, listURL)
		return
	}
	s.redirectWithFlash(w, r, flashSuccess, flashDeleted, listURL)
}

func galleryFromForm(r *http.Request) pages.Gallery {
	gallery := pages.Gallery{
		PageID:      parseIntForm(r.PostFormValue("pageId"), 0),
		Slug:        strings.TrimSpace(r.PostFormValue("slug")),
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		CoverImage:  strings.TrimSpace(r.PostFormValue("coverImage")),
		SortOrder:   parseIntForm(r.PostFormValue("sortOrder"), 0),
		EventDate:   parseDateForm(r.PostFormValue("eventDate")),
	}
	for _, line := range strings.Split(r.PostFormValue("images"), "\n") {
		if ref := strings.TrimSpace(line); ref != "" {
			gallery.Images = append(gallery.Images, pages.GalleryImage{Image: ref})
		}
	}
	return gallery
}

// Sections

func (s *Server) handleSectionsEditor(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}
	list, err := s.sections.ListSections(r.Context(), id)
	if err != nil {
		s.logger.WithContext(r.Context()).Error("http.admin.sections.list_failed", "page_id", id, "error", err)
	}
	editor := views.SectionsEditor{PageID: id, Sections: list}
	if err != nil {
		s.adminPage(w, r, http.StatusOK, views.ViewSectionsEditor, "Sekcije stranice", editor, views.Flash{Kind: flashError, Message: flashLoadFailed})
		return
	}
	s.adminPage(w, r, http.StatusOK, views.ViewSectionsEditor, "Sekcije stranice", editor)
}

func execute[T command.Message](ctx context.Context, handler commands.Executor[T], msg T) error {
	if handler == nil {
		return errHandlerMissing
	}
	return handler.Execute(ctx, msg)
}

func parseDateForm(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	parsed, err := time.Parse(formDateLayout, trimmed)
	if err != nil {
		return nil
	}
	return &parsed
}
