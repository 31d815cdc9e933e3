// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kinematics CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kinematics-engine/internal/logging"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "kinematics-engine/0.1"

// rootCmd is the base command for the kinematics CLI.
var rootCmd = &cobra.Command{
	Use:   "kinematics",
	Short: "Galactic position and space velocity from astrometric observables",
	Long: `kinematics converts right ascension, declination, proper motion, radial
velocity and distance into Galactic XYZ positions and UVW space velocities.

Single stars, radial-velocity or distance sweeps, and batch tables are
computed from the command line; serve exposes the same engine over HTTP.
Star names can be resolved through the CDS Sesame service, and results can
be compared with the young moving groups.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./kinematics.yaml or ~/.config/kinematics/kinematics.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("engine.max_sweep_points", 100000)
	v.SetDefault("resolver.base_url", "https://cds.unistra.fr/cgi-bin/nph-sesame")
	v.SetDefault("resolver.timeout", 30*time.Second)
	v.SetDefault("resolver.user_agent", defaultUserAgent)
	v.SetDefault("resolver.max_retries", 3)
	v.SetDefault("resolver.cache_path", "")
	v.SetDefault("resolver.cache_ttl", 7*24*time.Hour)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_ttl", 30*time.Minute)
	v.SetDefault("server.max_upload_bytes", 10<<20)
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kinematics")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kinematics"))
		}
	}

	viper.SetEnvPrefix("KINEMATICS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig reads every component configuration from v.
func loadConfig(v *viper.Viper) types.Config {
	return types.Config{
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Engine: types.EngineConfig{
			MaxSweepPoints: v.GetInt("engine.max_sweep_points"),
		},
		Resolver: types.ResolverConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("resolver.timeout"),
				UserAgent: v.GetString("resolver.user_agent"),
			},
			BaseURL:    v.GetString("resolver.base_url"),
			MaxRetries: v.GetInt("resolver.max_retries"),
			CachePath:  v.GetString("resolver.cache_path"),
			CacheTTL:   v.GetDuration("resolver.cache_ttl"),
		},
		Server: types.ServerConfig{
			Addr:           v.GetString("server.addr"),
			SessionTTL:     v.GetDuration("server.session_ttl"),
			MaxUploadBytes: v.GetInt64("server.max_upload_bytes"),
		},
	}
}

// newLogger builds the process logger; CLI diagnostics go to stderr so
// stdout carries only results.
func newLogger(cfg types.Config) *slog.Logger {
	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
