// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/pdiddy/kinematics-engine/internal/logging"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// instrument puts the logger in the request context, then logs and
// records metrics for the request under the given route label.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(logging.WithLogger(r.Context(), s.logger))

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		elapsed := time.Since(start)
		logging.LogHTTPRequest(s.logger,
			r.Method,
			r.URL.Path,
			wrapped.statusCode,
			float64(elapsed.Nanoseconds())/1e6,
			slog.String("route", route),
			slog.String("component", "http_server"))
		s.metrics.ObserveHTTP(route, r.Method, wrapped.statusCode, elapsed)
	})
}
