package api

import (
	"encoding/json"
	"net/http"

	"serwer-tabel/internal/apperr"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Status string `json:"status" example:"bad_request"`
	Reason string `json:"reason" example:"name 'height' is not defined"`
}

const (
	statusBadRequest    = "bad_request"
	statusNotFound      = "not_found"
	statusUnauthorized  = "unauthorized"
	statusInternalError = "internal_error"
)

const defaultMaxBodyBytes = 1 << 20

// limitBody caps a JSON request body. A decoder reading past the cap gets
// *http.MaxBytesError, which handlers report as a bad request.
func (s *Server) limitBody(w http.ResponseWriter, r *http.Request) {
	limit := s.config.API.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeErrorStatus(w http.ResponseWriter, code int, status, reason string) {
	writeJSON(w, code, ErrorResponse{Status: status, Reason: reason})
}

// writeError maps err onto an HTTP reply. Storage failures are logged with
// their cause; the client only sees the reason.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	reason := apperr.ReasonOf(err)
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindBadRequest:
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, reason)
	case apperr.KindNotFound:
		writeErrorStatus(w, http.StatusNotFound, statusNotFound, reason)
	case apperr.KindUnauthorized:
		writeErrorStatus(w, http.StatusUnauthorized, statusUnauthorized, reason)
	default:
		s.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorStatus(w, http.StatusInternalServerError, statusInternalError, reason)
	}
}
