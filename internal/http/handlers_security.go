package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"financas/internal/audit"
	"financas/internal/auth"
)

// Demonstration constants for the security panel. The score and feature
// flags are static placeholders with no underlying computation; the panel
// labels them as such.
const demoSecurityScore = 85

var demoSecurityFeatures = []string{
	"Filtro de requisições suspeitas (padrões)",
	"Cabeçalhos de segurança HTTP",
	"Limite de requisições por IP",
	"Registro de auditoria em memória",
}

// handleSecurityPanel renders the account/security panel partial.
func (s *Server) handleSecurityPanel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session := sessionFrom(r.Context())
	data := struct {
		User     string
		Score    int
		Features []string
		Entries  []audit.Entry
	}{
		User:     session.User,
		Score:    demoSecurityScore,
		Features: demoSecurityFeatures,
		Entries:  s.audit.Entries(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "security_panel", data); err != nil {
		slog.ErrorContext(r.Context(), "Security panel template failed", "error", err)
	}
}

// handleChangePassword applies the five-rule policy and swaps the demo
// user's in-memory password.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	session := sessionFrom(r.Context())
	current := r.Form.Get("current")
	next := r.Form.Get("new")
	confirm := r.Form.Get("confirm")

	if err := s.auth.ChangePassword(r.Context(), current, next, confirm); err != nil {
		s.audit.Append(session.User, audit.ActionPasswordChange, err.Error(), audit.StatusFailed)
		switch err {
		case auth.ErrInvalidCredentials:
			writeErrorFragment(w, http.StatusUnprocessableEntity, "Senha atual incorreta")
		case auth.ErrPasswordMismatch:
			writeErrorFragment(w, http.StatusUnprocessableEntity, "As senhas não conferem")
		default:
			writeErrorFragment(w, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}

	s.audit.Append(session.User, audit.ActionPasswordChange, "", audit.StatusSuccess)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<div class="success">Senha alterada</div>`))
}

// securityReport is the JSON snapshot the panel's export button downloads.
type securityReport struct {
	User          string        `json:"user"`
	Timestamp     string        `json:"timestamp"`
	SecurityScore int           `json:"securityScore"`
	Logs          []audit.Entry `json:"logs"`
	Features      []string      `json:"features"`
}

// handleSecurityReport serves the static snapshot. Not a protocol: no schema
// version exists and none is claimed.
func (s *Server) handleSecurityReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	session := sessionFrom(r.Context())
	rep := securityReport{
		User:          session.User,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		SecurityScore: demoSecurityScore,
		Logs:          s.audit.Entries(),
		Features:      demoSecurityFeatures,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="relatorio-seguranca.json"`)
	_ = json.NewEncoder(w).Encode(rep)
}
