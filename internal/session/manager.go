// Package session tracks signed-in users. Session state lives server
// side, keyed by a random id; the client holds a signed token carrying
// that id, so a forged or tampered cookie never resolves and a revoked
// session dies immediately even if the token is still valid.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSession is returned when a token is missing, malformed, expired
// or revoked. Callers treat all of these identically.
var ErrNoSession = errors.New("no active session")

type entry struct {
	username  string
	expiresAt time.Time
}

// Manager issues, resolves and revokes sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]entry
	secret   []byte
	ttl      time.Duration
}

// NewManager builds a session manager signing tokens with secret and
// expiring sessions after ttl.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]entry),
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// claims carries only registered fields; the session id travels as jti.
type claims struct {
	jwt.RegisteredClaims
}

// Issue creates a session for username and returns the signed token
// the client stores.
func (m *Manager) Issue(username string) (string, error) {
	id := uuid.NewString()
	now := time.Now()
	exp := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = entry{username: username, expiresAt: exp}
	m.mu.Unlock()

	return signed, nil
}

// Resolve maps a client token back to the signed-in username.
func (m *Manager) Resolve(token string) (string, error) {
	id, err := m.parse(token)
	if err != nil {
		return "", ErrNoSession
	}

	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return "", ErrNoSession
	}
	return e.username, nil
}

// Revoke destroys the session behind the token. Unknown or malformed
// tokens are a no-op; logout must always succeed.
func (m *Manager) Revoke(token string) {
	id, err := m.parse(token)
	if err != nil {
		return
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// parse validates the token signature and extracts the session id.
func (m *Manager) parse(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.ID == "" {
		return "", ErrNoSession
	}
	return c.ID, nil
}

// Run prunes expired sessions every interval until ctx is cancelled.
// Resolve already rejects expired entries; this only bounds memory.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.prune(time.Now())
		}
	}
}

func (m *Manager) prune(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.sessions {
		if now.After(e.expiresAt) {
			delete(m.sessions, id)
		}
	}
}
