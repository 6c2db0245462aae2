package http

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"financas/internal/report"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generationKey turns a store generation into a cache key.
func generationKey(gen uint64) string {
	return "gen:" + strconv.FormatUint(gen, 10)
}

// writeErrorFragment renders an inline error next to the offending field,
// htmx style. The store is never mutated on this path.
func writeErrorFragment(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}

// parseListQuery reads the filter/sort query parameters for the list view.
func parseListQuery(r *http.Request) (report.Filter, report.SortKey, report.SortOrder) {
	q := r.URL.Query()

	filter := report.Filter{
		Query:    sanitizeInput(q.Get("q")),
		Category: sanitizeInput(q.Get("category")),
	}
	switch q.Get("kind") {
	case "income":
		filter.Kind = "income"
	case "expense":
		filter.Kind = "expense"
	}

	key := report.SortByDate
	switch q.Get("sort") {
	case "amount":
		key = report.SortByAmount
	case "description":
		key = report.SortByDescription
	case "category":
		key = report.SortByCategory
	}

	order := report.Descending
	if q.Get("order") == "asc" {
		order = report.Ascending
	}

	return filter, key, order
}
