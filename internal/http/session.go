package http

import (
	"net/http"

	"github.com/goliatone/go-cms-site/internal/views"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	flashSuccess     = "success"
	flashError       = "error"
	sessionIDKey     = "sid"
	sessionMaxAgeSec = 8 * 60 * 60
)

func newCookieStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.HttpOnly = true
	store.Options.Path = "/"
	store.Options.MaxAge = sessionMaxAgeSec
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

func (s *Server) session(r *http.Request) *sessions.Session {
	if s.store == nil {
		return nil
	}
	// A tampered or expired cookie still yields a fresh session.
	session, _ := s.store.Get(r, s.sessionName)
	return session
}

// sessionID returns the stable id of the dashboard session, issuing one on
// first use.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	session := s.session(r)
	if session == nil {
		return ""
	}
	if id, ok := session.Values[sessionIDKey].(string); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	session.Values[sessionIDKey] = id
	s.saveSession(w, r, session)
	return id
}

func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	session := s.session(r)
	if session == nil {
		return
	}
	session.AddFlash(message, kind)
	s.saveSession(w, r, session)
}

func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []views.Flash {
	session := s.session(r)
	if session == nil {
		return nil
	}
	var out []views.Flash
	for _, kind := range []string{flashSuccess, flashError} {
		for _, value := range session.Flashes(kind) {
			if message, ok := value.(string); ok && message != "" {
				out = append(out, views.Flash{Kind: kind, Message: message})
			}
		}
	}
	if len(out) > 0 {
		s.saveSession(w, r, session)
	}
	return out
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, session *sessions.Session) {
	session.Options.Secure = r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
	if err := session.Save(r, w); err != nil {
		s.logger.WithContext(r.Context()).Warn("http.session.save_failed", "error", err)
	}
}
