// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kinematics-engine/internal/observability"
	"github.com/pdiddy/kinematics-engine/internal/resolve"
	"github.com/pdiddy/kinematics-engine/internal/server"
	"github.com/pdiddy/kinematics-engine/internal/session"
	"github.com/pdiddy/kinematics-engine/internal/transform"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the kinematics engine over HTTP",
	Long: `Serve starts the HTTP service. Each browser session keeps its own
query values and last result; idle sessions expire after
server.session_ttl. Prometheus metrics are exposed on /metrics.

The server shuts down gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics, err := observability.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	resolver, closer, err := resolve.New(cfg.Resolver)
	if err != nil {
		return err
	}
	defer closer.Close()

	srv := server.New(cfg.Server, server.Deps{
		Engine:   transform.NewEngine(cfg.Engine, transform.WithLogger(logger), transform.WithObserver(metrics)),
		Sessions: session.NewStore(cfg.Server.SessionTTL),
		Resolver: resolver,
		Metrics:  metrics,
		Logger:   logger,
	})
	return srv.Run(ctx)
}
