package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/scorelive/internal/auth"
	"github.com/pkordes/scorelive/internal/domain"
)

// Error codes carried in ErrorDetail.Code. The two credential codes are part
// of the public contract for 401 responses.
const (
	codeNotFound          = "not_found"
	codeNoGoals           = "no_goals_recorded"
	codeValidation        = "validation_error"
	codeTooLarge          = "request_too_large"
	codeInternal          = "internal_error"
	codeInvalidCredential = "InvalidCredential"
	codeExpiredCredential = "ExpiredCredential"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is a machine-readable code plus a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// fail translates a service error into a response. Errors outside the domain
// taxonomy are logged and hidden behind a generic 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrNoGoalsRecorded):
		writeError(w, http.StatusNotFound, codeNoGoals, "no goals recorded for match")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "match not found")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		s.rejectCredential(w, r, err)
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
	default:
		s.log.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// rejectCredential writes the 401 for a failed bearer check. It is the
// middleware.RejectFunc for protected routes.
func (s *Server) rejectCredential(w http.ResponseWriter, r *http.Request, err error) {
	code, message := codeInvalidCredential, "credential is invalid"
	if errors.Is(err, auth.ErrExpiredCredential) {
		code, message = codeExpiredCredential, "credential has expired"
	}

	s.rec.AuthFailed(code)
	s.log.WarnContext(r.Context(), "credential rejected", "reason", code, "path", r.URL.Path)

	w.Header().Set("WWW-Authenticate", `Bearer realm="scorelive"`)
	writeError(w, http.StatusUnauthorized, code, message)
}

// unwrapMessage extracts the human-readable part from a wrapped validation error.
// e.g. "service.MatchService.Create: validation error: homeTeam is required" → "homeTeam is required"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	const marker = domain.ErrValidationText + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && i+len(marker) < len(msg) {
		return msg[i+len(marker):]
	}
	return msg
}
