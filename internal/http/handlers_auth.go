package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"financas/internal/audit"
	"financas/internal/auth"
	"financas/internal/core"
	"financas/internal/store"
)

type sessionKeyType struct{}

var sessionKey sessionKeyType

// requireSession resolves the session cookie and either forwards with the
// session in context or answers 401 with the login fragment trigger.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err != nil {
			writeErrorFragment(w, http.StatusUnauthorized, "Sessão expirada, faça login novamente")
			return
		}
		session, err := s.auth.Lookup(r.Context(), cookie.Value)
		if err != nil {
			writeErrorFragment(w, http.StatusUnauthorized, "Sessão expirada, faça login novamente")
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, session)
		next(w, r.WithContext(ctx))
	}
}

func sessionFrom(ctx context.Context) auth.Session {
	if s, ok := ctx.Value(sessionKey).(auth.Session); ok {
		return s
	}
	return auth.Session{}
}

// handleIndex serves the single page: login screen without a session, the
// application shell with one.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page := "login_page"
	var user string
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if session, err := s.auth.Lookup(r.Context(), cookie.Value); err == nil {
			page = "app_page"
			user = session.User
		}
	}

	categories, err := s.store.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load categories", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}

	data := struct {
		User       string
		Categories []string
	}{User: user, Categories: categories}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, page, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "template", page, "error", err)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	user := sanitizeInput(r.Form.Get("user"))
	password := r.Form.Get("password")

	session, err := s.auth.Login(r.Context(), user, password)
	if err != nil {
		s.audit.Append(user, audit.ActionLogin, "credenciais inválidas", audit.StatusFailed)
		slog.WarnContext(r.Context(), "Login failed", "user", user)
		writeErrorFragment(w, http.StatusUnauthorized, "Usuário ou senha incorretos")
		return
	}

	s.audit.Append(user, audit.ActionLogin, "", audit.StatusSuccess)
	s.seedIfEmpty(r)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)

	slog.InfoContext(r.Context(), "Login succeeded", "user", user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session := sessionFrom(r.Context())

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.auth.Logout(r.Context(), cookie.Value)
	}
	// The session's transactions are discarded entirely on logout.
	if err := s.store.Reset(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to reset store on logout", "error", err)
	}
	s.audit.Append(session.User, audit.ActionLogout, "", audit.StatusSuccess)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})
	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

// seeder is implemented by store backends that accept demonstration records.
type seeder interface {
	Seed(ctx context.Context, txs []core.Transaction)
}

// seedIfEmpty loads the demonstration records on login when enabled and the
// collection is empty.
func (s *Server) seedIfEmpty(r *http.Request) {
	if !s.seedDemoData {
		return
	}
	sd, ok := s.store.(seeder)
	if !ok {
		return
	}
	txs, err := s.store.List(r.Context())
	if err != nil || len(txs) > 0 {
		return
	}
	sd.Seed(r.Context(), store.DemoTransactions(time.Now()))
	slog.InfoContext(r.Context(), "Seeded demonstration records")
}
