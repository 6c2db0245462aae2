// Package auth implements the demo login surface: a single configured user,
// opaque session tokens kept in memory and a cosmetic password-strength
// policy. No real credential storage exists and none is claimed.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

type (
	Session struct {
		Token     string
		User      string
		CreatedAt time.Time
		ExpiresAt time.Time
	}

	// Manager owns the demo user and the in-memory session table.
	Manager struct {
		mu       sync.Mutex
		user     string
		password string
		ttl      time.Duration
		sessions map[string]Session
		now      func() time.Time
	}
)

func NewManager(user, password string, ttl time.Duration) *Manager {
	return &Manager{
		user:     user,
		password: password,
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Login checks the demo credentials and mints a session token.
func (m *Manager) Login(_ context.Context, user, password string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user != m.user || password != m.password {
		return Session{}, ErrInvalidCredentials
	}
	now := m.now()
	s := Session{
		Token:     uuid.NewString(),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.sessions[s.Token] = s
	return s, nil
}

// Logout discards the session. Unknown tokens are a no-op.
func (m *Manager) Logout(_ context.Context, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Lookup resolves a token to its session, expiring it lazily.
func (m *Manager) Lookup(_ context.Context, token string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	if m.now().After(s.ExpiresAt) {
		delete(m.sessions, token)
		return Session{}, ErrSessionExpired
	}
	return s, nil
}

// ChangePassword applies the strength policy and the confirmation match,
// then swaps the demo user's password in memory.
func (m *Manager) ChangePassword(_ context.Context, current, next, confirm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current != m.password {
		return ErrInvalidCredentials
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	if p := CheckPolicy(next); !p.Satisfied() {
		return errors.New("senha fraca: " + strings.Join(p.Missing(), ", "))
	}
	m.password = next
	return nil
}

// User returns the configured demo user name.
func (m *Manager) User() string {
	return m.user
}

// ActiveSessions reports the current session count, for the metrics endpoint.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
