// Package session provides token sessions for the draftboard server.
//
// A session is an opaque bearer token with an owner name and expiry.
// The server issues one per client and scopes board access and cache
// namespaces by it. The Store interface has three implementations:
//   - memory: in-process storage for development and tests
//   - file: file-based storage for single-instance deployments
//
// Sessions carry no credentials beyond the token itself; there is no
// external identity provider in the loop.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// Session is one issued bearer token with its metadata.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// OwnerID returns a storage-compatible owner identifier, used to
// namespace cache keys and board ownership per session.
func (s *Session) OwnerID() string {
	if s == nil || s.ID == "" {
		return ""
	}
	return "session:" + s.ID
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// New creates a session for the named owner.
func New(name string, ttl time.Duration) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		ID:        id,
		Name:      name,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// Local creates a fixed session for single-user deployments that run
// with authentication disabled.
func Local() *Session {
	now := time.Now()
	return &Session{
		ID:        "local-session",
		Name:      "local",
		ExpiresAt: now.Add(365 * 24 * time.Hour),
		CreatedAt: now,
	}
}
