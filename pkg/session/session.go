// Package session provides server-side HTTP sessions kept in a cache.Store.
//
// Usage (middleware):
//
//	m := session.NewManager(store, session.DefaultOptions())
//	r.Use(m.Middleware)
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Regenerate(r.Context())
//	sess.Set("user_id", 42)
//	sess.Save(r.Context(), w)
//	id, _ := sess.GetUint("user_id")
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/ruangkopi/cafe/config"
	"github.com/ruangkopi/cafe/pkg/cache"
	"github.com/ruangkopi/cafe/pkg/logger"
)

// ------------------- Options -------------------

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions reads cookie name and TTL from config.
func DefaultOptions() Options {
	return Options{
		CookieName: config.SessionCookie(),
		TTL:        config.SessionTTL(),
		HTTPOnly:   true,
		Secure:     config.IsProduction(),
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// ------------------- Manager -------------------

// Manager loads and persists sessions through a store.
type Manager struct {
	store cache.Store
	opts  Options
}

func NewManager(store cache.Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts}
}

// Middleware loads (or creates) the session for every request and injects it
// into the request context. Handlers call session.FromCtx(r) to access it.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := &Session{store: m.store, opts: m.opts, data: map[string]any{}}

		if cookie, err := r.Cookie(m.opts.CookieName); err == nil && cookie.Value != "" {
			data, found, err := m.load(r.Context(), cookie.Value)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("session: load failed", "error", err)
			}
			if found {
				sess.id = cookie.Value
				sess.data = data
			}
		}
		if sess.id == "" {
			sess.id, _ = newID()
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Manager) load(ctx context.Context, id string) (map[string]any, bool, error) {
	var data map[string]any
	found, err := m.store.Get(ctx, storeKey(id), &data)
	if err != nil || !found || data == nil {
		return nil, false, err
	}
	return data, true, nil
}

// ------------------- Session -------------------

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	id      string
	data    map[string]any
	store   cache.Store
	opts    Options
	changed bool
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func storeKey(id string) string { return "cafe:session:" + id }

// Set stores a value under key in the session.
func (s *Session) Set(key string, value any) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed convenience getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	s2, ok := v.(string)
	return s2, ok
}

// GetUint is a typed convenience getter for IDs.
func (s *Session) GetUint(key string) (uint, bool) {
	v, ok := s.data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64: // JSON numbers unmarshal as float64
		if n <= 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, n > 0
	case int:
		if n <= 0 {
			return 0, false
		}
		return uint(n), true
	}
	return 0, false
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Regenerate moves the session data to a fresh ID and drops the old record.
// Call it on login to prevent fixation.
func (s *Session) Regenerate(ctx context.Context) error {
	old := s.id
	id, err := newID()
	if err != nil {
		return fmt.Errorf("session: new id: %w", err)
	}
	s.id = id
	s.changed = true
	if old != "" {
		if err := s.store.Del(ctx, storeKey(old)); err != nil {
			return fmt.Errorf("session: drop old: %w", err)
		}
	}
	return nil
}

// Destroy deletes the session from the store and expires the cookie.
func (s *Session) Destroy(ctx context.Context, w http.ResponseWriter) error {
	err := s.store.Del(ctx, storeKey(s.id))
	s.data = map[string]any{}
	s.changed = false

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     s.opts.Path,
		MaxAge:   -1,
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	if err != nil {
		return fmt.Errorf("session: destroy: %w", err)
	}
	return nil
}

// Save persists the session and writes the cookie to the response.
func (s *Session) Save(ctx context.Context, w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	if err := s.store.Set(ctx, storeKey(s.id), s.data, s.opts.TTL); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// FromCtx retrieves the session from the request context, or nil when the
// session middleware did not run.
func FromCtx(r *http.Request) *Session {
	s, _ := r.Context().Value(ctxKey{}).(*Session)
	return s
}
