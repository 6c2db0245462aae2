package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newManager() *Manager {
	return NewManager("demo", "Demo@1234", time.Hour)
}

func TestLoginAndLookup(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	if _, err := m.Login(ctx, "demo", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := m.Login(ctx, "other", "Demo@1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	s, err := m.Login(ctx, "demo", "Demo@1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if s.Token == "" || s.User != "demo" {
		t.Fatalf("session = %+v", s)
	}

	got, err := m.Lookup(ctx, s.Token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.User != "demo" {
		t.Errorf("user = %q", got.User)
	}
	if m.ActiveSessions() != 1 {
		t.Errorf("active sessions = %d", m.ActiveSessions())
	}
}

func TestSessionExpiry(t *testing.T) {
	ctx := context.Background()
	m := newManager()
	s, _ := m.Login(ctx, "demo", "Demo@1234")

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := m.Lookup(ctx, s.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	// Lazy expiry removes the session.
	if m.ActiveSessions() != 0 {
		t.Errorf("expired session still present")
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	m := newManager()
	s, _ := m.Login(ctx, "demo", "Demo@1234")
	m.Logout(ctx, s.Token)
	if _, err := m.Lookup(ctx, s.Token); err == nil {
		t.Fatal("expected lookup failure after logout")
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	if err := m.ChangePassword(ctx, "wrong", "Nova@1234", "Nova@1234"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := m.ChangePassword(ctx, "Demo@1234", "Nova@1234", "Outra@1234"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if err := m.ChangePassword(ctx, "Demo@1234", "fraca", "fraca"); err == nil {
		t.Fatal("expected weak password rejection")
	}
	if err := m.ChangePassword(ctx, "Demo@1234", "Nova@1234", "Nova@1234"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := m.Login(ctx, "demo", "Nova@1234"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestCheckPolicy(t *testing.T) {
	cases := []struct {
		password string
		score    int
		ok       bool
	}{
		{"", 0, false},
		{"abcdefgh", 2, false},
		{"Abcdefg1", 4, false},
		{"Abcdef1!", 5, true},
		{"Sen@ha12", 5, true},
		{"A1!a", 4, false}, // all classes but too short
	}
	for _, tc := range cases {
		p := CheckPolicy(tc.password)
		if p.Score() != tc.score {
			t.Errorf("%q score = %d, want %d", tc.password, p.Score(), tc.score)
		}
		if p.Satisfied() != tc.ok {
			t.Errorf("%q satisfied = %v, want %v", tc.password, p.Satisfied(), tc.ok)
		}
	}
	missing := CheckPolicy("abc").Missing()
	if len(missing) != 4 {
		t.Errorf("missing = %v", missing)
	}
}
