package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// handleChartCategories returns the top expense categories with their share
// of the total, as JSON for the pie chart.
func (s *Server) handleChartCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	n := 5
	if v := r.URL.Query().Get("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 50 {
			n = parsed
		}
	}

	stats, err := s.currentStats(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to derive category chart", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}

	type slice struct {
		Category string  `json:"category"`
		Cents    int64   `json:"cents"`
		Share    float64 `json:"share"`
	}
	byCat := stats.ByCat
	if len(byCat) > n {
		byCat = byCat[:n]
	}
	out := make([]slice, 0, len(byCat))
	for _, cs := range byCat {
		out = append(out, slice{Category: cs.Category, Cents: cs.Sum.Cents, Share: cs.Share})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// handleChartMonthly returns the month-bucketed income/expense/balance
// series, ascending by month key, for the bar chart.
func (s *Server) handleChartMonthly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	stats, err := s.currentStats(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to derive monthly chart", "error", err)
		http.Error(w, "erro interno", http.StatusInternalServerError)
		return
	}

	type bucket struct {
		Month   string `json:"month"`
		Income  int64  `json:"incomeCents"`
		Expense int64  `json:"expenseCents"`
		Balance int64  `json:"balanceCents"`
	}
	out := make([]bucket, 0, len(stats.Monthly))
	for _, b := range stats.Monthly {
		out = append(out, bucket{
			Month:   b.Month,
			Income:  b.Income.Cents,
			Expense: b.Expense.Cents,
			Balance: b.Balance.Cents,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
