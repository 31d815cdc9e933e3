// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pdiddy/kinematics-engine/internal/batch"
	"github.com/pdiddy/kinematics-engine/internal/export"
	"github.com/pdiddy/kinematics-engine/internal/ingest"
	"github.com/pdiddy/kinematics-engine/internal/logging"
	"github.com/pdiddy/kinematics-engine/internal/resolve"
	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// errorResponse is the JSON body of every error reply.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// requestError is a handler-level failure with a fixed status and kind.
type requestError struct {
	status int
	kind   string
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func errBadRequest(msg string) error {
	return &requestError{status: http.StatusBadRequest, kind: "bad_request", msg: msg}
}

func errNotFound(msg string) error {
	return &requestError{status: http.StatusNotFound, kind: "not_found", msg: msg}
}

// classify maps an error to its HTTP status, kind label and offending
// field.
func classify(err error) (int, string, types.Field) {
	var (
		reqErr     *requestError
		rowErr     *batch.RowError
		schemaErr  *batch.SchemaError
		missing    *ingest.MissingFieldError
		parseErr   *ingest.NumericParseError
		degenerate *transform.DegenerateInputError
		notFound   *resolve.LookupNotFoundError
		upstream   *resolve.UpstreamError
		tooLarge   *http.MaxBytesError
	)

	// A row error wraps the cell error that names the field.
	field := types.Field("")
	switch {
	case errors.As(err, &missing):
		field = missing.Field
	case errors.As(err, &parseErr):
		field = parseErr.Field
	}

	switch {
	case errors.As(err, &reqErr):
		return reqErr.status, reqErr.kind, field
	case errors.As(err, &rowErr):
		return http.StatusBadRequest, "row_error", field
	case errors.As(err, &schemaErr):
		return http.StatusBadRequest, "schema_error", field
	case missing != nil:
		return http.StatusBadRequest, "missing_field", field
	case parseErr != nil:
		return http.StatusBadRequest, "parse_error", field
	case errors.Is(err, transform.ErrConflictingSweeps), errors.Is(err, transform.ErrInvalidSweep):
		return http.StatusBadRequest, "invalid_sweep", field
	case errors.Is(err, export.ErrUnrepresentableName):
		return http.StatusBadRequest, "unrepresentable_name", field
	case errors.As(err, &degenerate):
		return http.StatusUnprocessableEntity, "degenerate_input", field
	case errors.As(err, &notFound):
		return http.StatusNotFound, "not_found", field
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "upstream_error", field
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "too_large", field
	}
	return http.StatusInternalServerError, "internal", field
}

// writeError logs err and sends it as JSON.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind, field := classify(err)
	msg := err.Error()
	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logging.LogError(logger, "request failed", err, slog.String("path", r.URL.Path))
		if status == http.StatusInternalServerError {
			msg = "internal server error"
		}
	} else {
		logger.Debug("request rejected", slog.String("kind", kind), slog.String("error", err.Error()))
	}
	s.writeJSON(w, status, errorResponse{Error: kind, Message: msg, Field: string(field)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}
