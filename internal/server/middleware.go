package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/draftboard/pkg/errors"
	"github.com/matzehuels/draftboard/pkg/session"
)

type contextKey string

const sessionKey contextKey = "session"

// sessionFrom returns the request's authenticated session, or nil.
func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey).(*session.Session)
	return sess
}

// ownerFrom returns the owner identifier for board and cache scoping.
func ownerFrom(r *http.Request) string {
	return sessionFrom(r).OwnerID()
}

// authenticate resolves the bearer token to a session. In no-auth mode
// every request runs as the fixed local session.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.NoAuth {
			ctx := context.WithValue(r.Context(), sessionKey, session.Local())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			writeError(w, errors.New(errors.ErrCodeUnauthorized, "missing bearer token"))
			return
		}

		sess, err := s.sessions.Get(r.Context(), token)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "look up session"))
			return
		}
		if sess == nil {
			writeError(w, errors.New(errors.ErrCodeUnauthorized, "invalid or expired session"))
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// Limiter decides whether a keyed request may proceed. Implementations
// must be safe for concurrent use.
type Limiter interface {
	Allow(key string) bool
}

// WindowLimiter allows limit requests per key per minute, counted in
// fixed windows.
type WindowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Time
	counts map[string]int
	now    func() time.Time
}

// NewWindowLimiter creates a limiter allowing limit requests per minute.
func NewWindowLimiter(limit int) *WindowLimiter {
	return &WindowLimiter{
		limit:  limit,
		counts: make(map[string]int),
		now:    time.Now,
	}
}

func (l *WindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	window := l.now().Truncate(time.Minute)
	if !window.Equal(l.window) {
		l.window = window
		clear(l.counts)
	}

	if l.counts[key] >= l.limit {
		return false
	}
	l.counts[key]++
	return true
}

// rateLimit rejects requests once the session exceeds its window quota.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow(ownerFrom(r)) {
			writeError(w, errors.New(errors.ErrCodeRateLimited, "rate limit exceeded, retry in a minute"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests emits one structured line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
