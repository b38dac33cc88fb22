package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/goliatone/go-cms-site/internal/logging"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))
	r.Use(middleware.Compress(5))
	r.Use(middleware.Heartbeat("/health"))

	if s.adminEnabled {
		r.Route("/admin", func(r chi.Router) {
			r.Use(httprate.Limit(s.limits.admin, time.Minute))
			r.Use(noStore)
			r.Get("/", s.handleAdminIndex)

			r.Get("/directors", s.handleDirectorList)
			r.Get("/directors/new", s.handleDirectorNew)
			r.Post("/directors", s.handleDirectorSave)
			r.Get("/directors/{id}", s.handleDirectorEdit)
			r.Post("/directors/{id}", s.handleDirectorSave)
			r.Post("/directors/{id}/delete", s.handleDirectorDelete)

			r.Get("/galleries", s.handleGalleryList)
			r.Get("/galleries/new", s.handleGalleryNew)
			r.Post("/galleries", s.handleGallerySave)
			r.Get("/galleries/{id}", s.handleGalleryEdit)
			r.Post("/galleries/{id}", s.handleGallerySave)
			r.Post("/galleries/{id}/delete", s.handleGalleryDelete)

			r.Get("/pages/{id}/sections", s.handleSectionsEditor)

			r.Route("/api", func(r chi.Router) {
				r.Get("/pages/{id}/sections", s.handleAPIListSections)
				r.Put("/sections/{id}", s.handleAPIUpdateSection)
				r.Post("/sections/preview", s.handleAPIPreviewSection)
				r.Get("/sections/schema/{type}", s.handleAPISectionSchema)
				r.Post("/navigation/invalidate", s.handleAPIInvalidateNavigation)
			})
		})
	}

	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(s.limits.public, time.Minute))
		r.Get("/", s.handlePage)
		r.Get("/vijesti", s.handlePosts)
		r.Get("/vijesti/{slug}", s.handlePost)
		r.Get("/{slug}", s.handlePage)
		r.Get("/{slug}/{sub}", s.handlePage)
	})

	r.NotFound(s.handleNotFound)

	return r
}

// requestID tags the request with an id echoed in the response and carried in
// every log entry of the request.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := logging.ContextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.WithContext(r.Context()).Info("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", s.now().Sub(start).Milliseconds(),
			"remote", r.RemoteAddr,
		)
	})
}

func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func requestIDFrom(r *http.Request) string {
	return logging.RequestID(r.Context())
}
