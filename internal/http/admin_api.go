package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	admincmd "github.com/goliatone/go-cms-site/internal/commands/admin"
	navigationcmd "github.com/goliatone/go-cms-site/internal/commands/navigation"
	"github.com/goliatone/go-cms-site/pkg/interfaces"
	"github.com/goliatone/go-cms-site/sections"
)

const previewKeyPrefix = "preview:"

var errPreviewUnavailable = errors.New("http: section preview not configured")

type sectionUpdateRequest struct {
	PageID    int             `json:"pageId"`
	Type      sections.Type   `json:"type"`
	Order     int             `json:"order"`
	IsVisible *bool           `json:"isVisible,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	ClassName string          `json:"className,omitempty"`
}

type previewRequest struct {
	Type      sections.Type   `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	ClassName string          `json:"className,omitempty"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

func (s *Server) handleAPIListSections(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	list, err := s.sections.ListSections(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []sections.Section{}
	}
	writeJSON(w, http.StatusOK, list)
}

// handleAPIUpdateSection validates the payload against its type's schema before
// anything reaches the backend.
func (s *Server) handleAPIUpdateSection(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req sectionUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	req.Type = sections.Type(strings.TrimSpace(string(req.Type)))
	if err := sections.ValidatePayload(req.Type, req.Data); err != nil {
		writeError(w, err)
		return
	}

	update := interfaces.SectionUpdate{
		ID:        id,
		PageID:    req.PageID,
		Type:      req.Type,
		Order:     req.Order,
		IsVisible: req.IsVisible == nil || *req.IsVisible,
		Data:      req.Data,
		ClassName: strings.TrimSpace(req.ClassName),
	}
	if err := execute(r.Context(), s.handlers.UpdateSection, admincmd.UpdateSectionCommand{Update: update}); err != nil {
		s.logger.WithContext(r.Context()).Warn("http.admin.sections.update_failed", "section_id", id, "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// handleAPIPreviewSection renders an unsaved section. Previews are keyed per
// dashboard session, so a slow preview superseded by a newer one from the same
// session is answered with 409 instead of overwriting the newer result.
func (s *Server) handleAPIPreviewSection(w http.ResponseWriter, r *http.Request) {
	if s.previewer == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "not_implemented", Message: errPreviewUnavailable.Error()})
		return
	}
	var req previewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	token := s.tracker.Begin(previewKeyPrefix + s.sessionID(w, r))
	defer token.Done()

	section := sections.Section{
		Type:      sections.Type(strings.TrimSpace(string(req.Type))),
		Visible:   true,
		ClassName: strings.TrimSpace(req.ClassName),
	}
	if err := sections.ValidatePayload(section.Type, req.Data); err != nil {
		writeError(w, err)
		return
	}
	payload, err := sections.DecodePayload(section.Type, req.Data)
	if err != nil {
		writeError(w, &sections.PayloadError{Type: section.Type, Err: err})
		return
	}
	section.Data = payload

	html, err := s.previewer.Render(section)
	if staleErr := token.Check(r.Context()); staleErr != nil {
		writeError(w, staleErr)
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, previewResponse{HTML: string(html)})
}

func (s *Server) handleAPISectionSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := sections.Schema(sections.Type(chi.URLParam(r, "type")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

type invalidateRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (s *Server) handleAPIInvalidateNavigation(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
			return
		}
	}
	msg := navigationcmd.InvalidateNavigationCommand{Reason: strings.TrimSpace(req.Reason)}
	if err := execute(r.Context(), s.handlers.InvalidateNavigation, msg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "invalidated"})
}
