// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session keeps each HTTP client's current query values and last
// result. Every request touches only its own session; idle sessions expire.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// CookieName is the HTTP cookie carrying the session ID.
const CookieName = "kinematics_session"

// DefaultTTL is used when the configured TTL is not positive.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned for an unknown or expired session ID.
var ErrNotFound = errors.New("session not found")

// DefaultValues returns the initial query values: TW Hya.
func DefaultValues() map[string]string {
	return map[string]string{
		string(types.FieldRA):    "165.46627797",
		string(types.FieldDec):   "-34.70473119",
		string(types.FieldPMRA):  "-66.19",
		string(types.FieldPMDec): "-13.90",
		string(types.FieldRV):    "13.40",
		string(types.FieldDist):  "53.7",
	}
}

// BlankValues returns every observable mapped to "".
func BlankValues() map[string]string {
	out := make(map[string]string, len(types.ObservableFields))
	for _, f := range types.ObservableFields {
		out[string(f)] = ""
	}
	return out
}

// Session is one client's state. Values are raw strings exactly as last
// submitted so the form can be redisplayed.
type Session struct {
	ID     string                 `json:"id"`
	Star   string                 `json:"star,omitempty"`
	Values map[string]string      `json:"values"`
	Sweeps []transform.RawSweep   `json:"sweeps,omitempty"`
	Result *types.CartesianResult `json:"-"`

	touched time.Time
}

func (s *Session) clone() Session {
	c := *s
	c.Values = make(map[string]string, len(s.Values))
	for k, v := range s.Values {
		c.Values[k] = v
	}
	c.Sweeps = append([]transform.RawSweep(nil), s.Sweeps...)
	return c
}

// RawRequest returns the session's values as an engine request.
func (s Session) RawRequest() transform.RawRequest {
	return transform.RawRequest{Fields: s.Values, Sweeps: s.Sweeps}
}

// Store is a mutex-guarded map of sessions. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns an empty store whose sessions expire after ttl idle.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session holding the default values.
func (s *Store) Create() Session {
	sess := &Session{
		ID:      uuid.NewString(),
		Values:  DefaultValues(),
		touched: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess.clone()
}

// Get returns a copy of the session and refreshes its expiry.
func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(id)
	if !ok {
		return Session{}, ErrNotFound
	}
	sess.touched = s.now()
	return sess.clone(), nil
}

// Ensure returns the session for id, creating a fresh one when id is
// empty, malformed, unknown or expired. created reports the latter.
func (s *Store) Ensure(id string) (sess Session, created bool) {
	if _, err := uuid.Parse(id); err == nil {
		if sess, err := s.Get(id); err == nil {
			return sess, false
		}
	}
	return s.Create(), true
}

// Update applies fn to the stored session under the store lock.
func (s *Store) Update(id string, fn func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}
	fn(sess)
	sess.touched = s.now()
	return nil
}

// Clear blanks every value and drops the last result.
func (s *Store) Clear(id string) error {
	return s.Update(id, func(sess *Session) {
		sess.Star = ""
		sess.Values = BlankValues()
		sess.Sweeps = nil
		sess.Result = nil
	})
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Reap removes expired sessions and returns how many were removed.
func (s *Store) Reap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.touched) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunReaper calls Reap every interval until ctx is done. After each pass
// report, when non-nil, receives the number of live sessions.
func (s *Store) RunReaper(ctx context.Context, interval time.Duration, logger *slog.Logger, report func(live int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := s.Reap()
			live := s.Len()
			if n > 0 {
				logger.Debug("expired sessions removed", slog.Int("count", n), slog.Int("live", live))
			}
			if report != nil {
				report(live)
			}
		}
	}
}

// lookup must be called with s.mu held.
func (s *Store) lookup(id string) (*Session, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(sess.touched) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, true
}
