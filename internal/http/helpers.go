package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-cms-site/content"
	"github.com/goliatone/go-cms-site/internal/backend"
	"github.com/goliatone/go-cms-site/internal/commands"
	"github.com/goliatone/go-cms-site/internal/guard"
	"github.com/goliatone/go-cms-site/pages"
	"github.com/goliatone/go-cms-site/sections"
)

var errInvalidID = errors.New("http: invalid identifier")

type errorResponse struct {
	Error   string           `json:"error"`
	Message string           `json:"message,omitempty"`
	Issues  []sections.Issue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	if errors.Is(err, errInvalidID) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	var pageNotFound *pages.NotFoundError
	if errors.As(err, &pageNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: pageNotFound.Error(),
		}
	}

	var contentNotFound *content.NotFoundError
	if errors.As(err, &contentNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: contentNotFound.Error(),
		}
	}

	var upstream *backend.StatusError
	if errors.As(err, &upstream) {
		if upstream.StatusCode >= 400 && upstream.StatusCode < 500 {
			return upstream.StatusCode, errorResponse{
				Error:   "upstream_rejected",
				Message: upstream.Error(),
			}
		}
		return http.StatusBadGateway, errorResponse{
			Error:   "upstream_error",
			Message: upstream.Error(),
		}
	}

	if errors.Is(err, guard.ErrStale) {
		return http.StatusConflict, errorResponse{
			Error:   "stale",
			Message: "a newer request superseded this one",
		}
	}

	if errors.Is(err, sections.ErrUnknownType) || errors.Is(err, sections.ErrSchemaNotFound) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	if issues := validationIssues(err); len(issues) > 0 || commands.IsValidation(err) || errors.Is(err, sections.ErrInvalidPayload) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  issues,
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

// validationIssues flattens payload schema violations and ozzo field errors
// into one list. Schema issues of the data field are reported under /data.
func validationIssues(err error) []sections.Issue {
	if err == nil {
		return nil
	}
	var payloadErr *sections.PayloadValidationError
	if errors.As(err, &payloadErr) {
		return payloadErr.Issues
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	keys := make([]string, 0, len(fieldErrs))
	for key := range fieldErrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var issues []sections.Issue
	for _, key := range keys {
		fieldErr := fieldErrs[key]
		if errors.As(fieldErr, &payloadErr) {
			for _, issue := range payloadErr.Issues {
				issues = append(issues, sections.Issue{
					Location: "/" + key + issue.Location,
					Message:  issue.Message,
				})
			}
			continue
		}
		issues = append(issues, sections.Issue{Location: "/" + key, Message: fieldErr.Error()})
	}
	return issues
}

// fieldMessages maps ozzo field errors to form field messages.
func fieldMessages(err error) map[string]string {
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return nil
	}
	out := make(map[string]string, len(fieldErrs))
	for key, fieldErr := range fieldErrs {
		if fieldErr != nil {
			out[key] = fieldErr.Error()
		}
	}
	return out
}

func parseID(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, errInvalidID
	}
	id, err := strconv.Atoi(trimmed)
	if err != nil || id < 1 {
		return 0, errInvalidID
	}
	return id, nil
}

func parseIntForm(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseBoolForm(value string, defaultValue bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}
