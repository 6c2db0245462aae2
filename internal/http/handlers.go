package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// handleHealth reports liveness. Unauthenticated on purpose.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.appMetrics.uptime).Round(time.Second).String(),
	})
}

// handleMetrics exposes internal counters as plain text.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	traceMetrics := s.traceMiddleware.GetMetrics()
	detectMetrics := s.securityDetector.GetMetrics()
	limitMetrics := s.rateLimiter.GetMetrics()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "app_transactions_total %d\n", atomic.LoadInt64(&s.appMetrics.totalTransactions))
	fmt.Fprintf(w, "app_stats_cache_hits %d\n", atomic.LoadInt64(&s.appMetrics.cacheHits))
	fmt.Fprintf(w, "app_stats_cache_misses %d\n", atomic.LoadInt64(&s.appMetrics.cacheMisses))
	fmt.Fprintf(w, "app_uptime_seconds %d\n", int64(time.Since(s.appMetrics.uptime).Seconds()))
	fmt.Fprintf(w, "http_requests_total %d\n", traceMetrics.TotalRequests)
	fmt.Fprintf(w, "http_response_time_us %d\n", traceMetrics.AverageResponseTime)
	fmt.Fprintf(w, "security_suspicious_requests %d\n", detectMetrics.SuspiciousRequests)
	fmt.Fprintf(w, "ratelimit_hits_total %d\n", limitMetrics.TotalHits)
	fmt.Fprintf(w, "ratelimit_tracked_clients %d\n", limitMetrics.ClientCount)
	fmt.Fprintf(w, "audit_entries_total %d\n", s.audit.Len())
	fmt.Fprintf(w, "auth_active_sessions %d\n", s.auth.ActiveSessions())
}
