package web

// errors.go maps the service's error taxonomy to HTTP responses.
//
// The profiling core never recovers from failures: dataset resolution,
// loading and computation errors all propagate here unchanged, and this is
// the single place where they become transport-level responses:
//
//	store.NotFoundError      -> 404 (unknown dataset identifier)
//	profile.LoadError        -> 422 (stored file is not a parseable table)
//	profile.ComputationError -> 500 (unexpected numeric failure)
//	anything else            -> 500

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/datainspect/inspector/internal/profile"
	"github.com/datainspect/inspector/internal/store"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrorResponse is the JSON body for API errors. Code is a stable
// machine-readable identifier users can quote to support.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError logs the technical error and writes the mapped response.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, code := mapError(err)

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeError(w, status, message, code)
}

// mapError translates a typed error into status, user message and code.
func mapError(err error) (status int, message, code string) {
	var notFound *store.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, "Dataset not found", "DS001"
	}

	var loadErr *profile.LoadError
	if errors.As(err, &loadErr) {
		return http.StatusUnprocessableEntity, "Dataset could not be parsed as CSV", "DS002"
	}

	var compErr *profile.ComputationError
	if errors.As(err, &compErr) {
		return http.StatusInternalServerError, "Profiling computation failed", "DS003"
	}

	return http.StatusInternalServerError, "An unexpected error occurred", "ERR000"
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code})
}

// writeJSON encodes v as JSON. Encoding errors are logged since headers
// are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
