// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve looks up a star's observables by name in an external
// catalog service. Answers are never guessed: a name the catalog does not
// know is a *LookupNotFoundError, and quantities it lacks stay unset.
package resolve

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Resolver turns a star name into catalog observables.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, name string) (types.ResolvedStar, error)
}

// LookupNotFoundError reports a name the catalog could not resolve.
type LookupNotFoundError struct {
	Name string
}

func (e *LookupNotFoundError) Error() string {
	return fmt.Sprintf("no catalog entry found for %q", e.Name)
}

// UpstreamError reports a failure talking to the catalog service itself:
// transport errors, unexpected HTTP status or an unreadable response.
type UpstreamError struct {
	Service string
	Status  int
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s returned HTTP %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NormalizeName lowercases name and collapses whitespace; it is the cache
// key for a lookup.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the configured resolver: a Sesame client, wrapped in a SQLite
// cache when cfg.CachePath is set. The returned closer releases the cache.
func New(cfg types.ResolverConfig) (Resolver, io.Closer, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	var r Resolver = NewSesame(client, cfg)
	if cfg.CachePath == "" {
		return r, nopCloser{}, nil
	}
	cache, err := OpenCache(cfg.CachePath, r, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	return cache, cache, nil
}
