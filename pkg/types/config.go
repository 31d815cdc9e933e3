package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "kinematics-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is json or text (default text).
	Format string `json:"format" yaml:"format"`
}

// EngineConfig holds settings for the coordinate transform engine.
type EngineConfig struct {
	// MaxSweepPoints caps the length of a generated sweep (default 100000).
	MaxSweepPoints int `json:"max_sweep_points" yaml:"max_sweep_points"`
}

// ResolverConfig holds settings for the star-name resolver.
type ResolverConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Sesame CGI endpoint
	// (default "https://cds.unistra.fr/cgi-bin/nph-sesame").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries bounds retries on 429/503 responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// CachePath is the SQLite file for cached lookups. Empty disables the cache.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`

	// CacheTTL is how long a cached lookup stays valid (default 7 days).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// SessionTTL is how long an idle session keeps its values (default 30m).
	SessionTTL time.Duration `json:"session_ttl" yaml:"session_ttl"`

	// MaxUploadBytes limits batch upload bodies (default 10 MiB).
	MaxUploadBytes int64 `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// Config groups all component configurations.
type Config struct {
	Log      LogConfig      `json:"log" yaml:"log"`
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Resolver ResolverConfig `json:"resolver" yaml:"resolver"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
