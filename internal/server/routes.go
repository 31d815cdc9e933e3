// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()

	for _, path := range []string{"/", "/index", "/index.html", "/query.html"} {
		router.Handler(http.MethodGet, path, s.instrument(path, http.HandlerFunc(s.homeHandler)))
	}
	router.Handler(http.MethodGet, "/query", s.instrument("/query", http.HandlerFunc(s.queryHandler)))
	router.Handler(http.MethodPost, "/calculate", s.instrument("/calculate", http.HandlerFunc(s.calculateHandler)))
	router.Handler(http.MethodPost, "/batch", s.instrument("/batch", http.HandlerFunc(s.batchHandler)))
	router.Handler(http.MethodGet, "/clear", s.instrument("/clear", http.HandlerFunc(s.clearHandler)))
	router.Handler(http.MethodGet, "/export", s.instrument("/export", http.HandlerFunc(s.exportHandler)))
	router.Handler(http.MethodGet, "/groups", s.instrument("/groups", http.HandlerFunc(s.groupsHandler)))
	router.Handler(http.MethodGet, "/resolve/:name", s.instrument("/resolve/:name", http.HandlerFunc(s.resolveHandler)))
	if s.metrics != nil {
		router.Handler(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound("no route for "+r.URL.Path))
	})
	return router
}
