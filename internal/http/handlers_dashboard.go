package http

import (
	"log/slog"
	"net/http"
	"time"

	"financas/internal/core"
)

// handleDashboardTotals returns the headline totals partial.
func (s *Server) handleDashboardTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.currentStats(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to derive totals", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao calcular totais")
		return
	}

	data := struct {
		Income  string
		Expense string
		Balance string
		Deficit bool
	}{
		Income:  core.FormatBRL(stats.Totals.Income.Cents),
		Expense: core.FormatBRL(stats.Totals.Expense.Cents),
		Balance: core.FormatBRL(stats.Totals.Balance.Cents),
		Deficit: stats.Totals.Balance.Cents < 0,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard_totals", data); err != nil {
		slog.ErrorContext(r.Context(), "Totals template failed", "error", err)
	}
}

// handleDashboardRecent returns the five most recently dated transactions.
func (s *Server) handleDashboardRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.currentStats(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to derive recent transactions", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao carregar lançamentos recentes")
		return
	}

	data := struct {
		Rows []core.Transaction
	}{Rows: stats.Recent}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard_recent", data); err != nil {
		slog.ErrorContext(r.Context(), "Recent template failed", "error", err)
	}
}

// handleDashboardBudget compares the current month's expense against the
// configured budget threshold.
func (s *Server) handleDashboardBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.currentStats(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to derive budget status", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao calcular orçamento")
		return
	}

	currentMonth := time.Now().Format("2006-01")
	var spent int64
	for _, bucket := range stats.Monthly {
		if bucket.Month == currentMonth {
			spent = bucket.Expense.Cents
			break
		}
	}

	percent := 0
	if s.budgetCents > 0 {
		percent = int(spent * 100 / s.budgetCents)
	}
	if percent > 100 {
		percent = 100
	}

	data := struct {
		Spent    string
		Budget   string
		Percent  int
		Exceeded bool
	}{
		Spent:    core.FormatBRL(spent),
		Budget:   core.FormatBRL(s.budgetCents),
		Percent:  percent,
		Exceeded: s.budgetCents > 0 && spent > s.budgetCents,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard_budget", data); err != nil {
		slog.ErrorContext(r.Context(), "Budget template failed", "error", err)
	}
}
