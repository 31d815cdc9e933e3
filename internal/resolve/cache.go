// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/kinematics-engine/internal/logging"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// DefaultCacheTTL is used when the configured TTL is not positive.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Cache wraps a Resolver with a SQLite table of previous answers keyed by
// normalized name. Only successful lookups are stored; a not-found answer
// is asked again next time.
type Cache struct {
	db   *sql.DB
	next Resolver
	ttl  time.Duration
	now  func() time.Time
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string, next Resolver, ttl time.Duration) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	c := &Cache{db: db, next: next, ttl: ttl, now: time.Now}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

func (c *Cache) createSchema() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS lookups (
		key TEXT PRIMARY KEY,
		resolver TEXT NOT NULL,
		payload TEXT NOT NULL,
		fetched INTEGER NOT NULL
	)`)
	return err
}

// Close releases the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Name returns the wrapped backend's name.
func (c *Cache) Name() string { return c.next.Name() }

// Resolve answers from the cache when a fresh entry exists, otherwise asks
// the wrapped resolver and stores a successful answer.
func (c *Cache) Resolve(ctx context.Context, name string) (types.ResolvedStar, error) {
	logger := logging.FromContext(ctx)
	key := NormalizeName(name)

	star, ok, err := c.get(ctx, key)
	if err != nil {
		logging.LogError(logger, "reading resolver cache", err, slog.String("name", name))
	} else if ok {
		logger.Debug("resolver cache hit", slog.String("name", name))
		star.Query = name
		return star, nil
	}

	star, err = c.next.Resolve(ctx, name)
	if err != nil {
		return types.ResolvedStar{}, err
	}
	if err := c.put(ctx, key, star); err != nil {
		logging.LogError(logger, "writing resolver cache", err, slog.String("name", name))
	}
	return star, nil
}

func (c *Cache) get(ctx context.Context, key string) (types.ResolvedStar, bool, error) {
	var payload string
	var fetched int64
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, fetched FROM lookups WHERE key = ? AND resolver = ?`,
		key, c.next.Name(),
	).Scan(&payload, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ResolvedStar{}, false, nil
	}
	if err != nil {
		return types.ResolvedStar{}, false, fmt.Errorf("querying cache: %w", err)
	}

	if c.now().Sub(time.Unix(0, fetched)) > c.ttl {
		return types.ResolvedStar{}, false, nil
	}

	var star types.ResolvedStar
	if err := json.Unmarshal([]byte(payload), &star); err != nil {
		return types.ResolvedStar{}, false, fmt.Errorf("decoding cached entry: %w", err)
	}
	return star, true, nil
}

func (c *Cache) put(ctx context.Context, key string, star types.ResolvedStar) error {
	payload, err := json.Marshal(star)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO lookups (key, resolver, payload, fetched) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET resolver = excluded.resolver, payload = excluded.payload, fetched = excluded.fetched`,
		key, c.next.Name(), string(payload), c.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Purge deletes entries older than the TTL and returns how many were
// removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	cutoff := c.now().Add(-c.ttl).UnixNano()
	res, err := c.db.ExecContext(ctx, `DELETE FROM lookups WHERE fetched < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	return res.RowsAffected()
}
