// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the kinematics engine over HTTP. Each client has
// its own session holding the last submitted values and result.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdiddy/kinematics-engine/internal/observability"
	"github.com/pdiddy/kinematics-engine/internal/resolve"
	"github.com/pdiddy/kinematics-engine/internal/session"
	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

const (
	defaultAddr           = ":8080"
	defaultMaxUploadBytes = 10 << 20
	shutdownTimeout       = 10 * time.Second
)

// Deps are the collaborators a Server uses. Engine and Sessions are
// required; Resolver and Metrics may be nil.
type Deps struct {
	Engine   *transform.Engine
	Sessions *session.Store
	Resolver resolve.Resolver
	Metrics  *observability.Collector
	Logger   *slog.Logger
}

// Server is the HTTP front end.
type Server struct {
	cfg      types.ServerConfig
	engine   *transform.Engine
	sessions *session.Store
	resolver resolve.Resolver
	metrics  *observability.Collector
	logger   *slog.Logger
}

// New returns a Server configured by cfg.
func New(cfg types.ServerConfig, deps Deps) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		engine:   deps.Engine,
		sessions: deps.Sessions,
		resolver: deps.Resolver,
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. A session
// reaper runs alongside the listener.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Minute,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	reapCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	go s.sessions.RunReaper(reapCtx, time.Minute, s.logger, s.metrics.SetSessions)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listening on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
