// Package http wires the application's single-page UI: login, transaction
// form and list, dashboard partials, chart data, CSV export and the
// account/security panel. Handlers render embedded templates and htmx-style
// HTML fragments.
package http

import (
	"html/template"
	"io/fs"
	"net/http"
	"sync/atomic"
	"time"

	"financas/internal/auth"
	"financas/internal/audit"
	"financas/internal/cache"
	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/middleware/ratelimit"
	"financas/internal/middleware/security"
	"financas/internal/middleware/trace"
	"financas/internal/report"
	"financas/internal/store"
	appweb "financas/web"
)

const sessionCookie = "financas_session"

// dashboardStats bundles everything the dashboard partials derive per
// store generation, so one cache entry serves all of them.
type dashboardStats struct {
	Totals  report.Totals
	ByCat   []report.CategorySum
	Monthly []report.MonthBucket
	Recent  []core.Transaction
}

type appMetrics struct {
	totalTransactions int64
	cacheHits         int64
	cacheMisses       int64
	uptime            time.Time
}

// Options carries the collaborators and constants the server needs.
type Options struct {
	Store              store.Store
	Auth               *auth.Manager
	Audit              *audit.Log
	MonthlyBudgetCents int64
	RateLimitRPM       int
	SeedDemoData       bool
}

type Server struct {
	http.Server
	templates *template.Template

	store        store.Store
	auth         *auth.Manager
	audit        *audit.Log
	logger       *applog.Logger
	budgetCents  int64
	seedDemoData bool

	statsCache   *cache.LRUCache[dashboardStats]
	cacheManager *cache.Manager

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware
	headers          *security.HeadersMiddleware

	appMetrics appMetrics
}

// NewServer builds the server, parses the embedded templates and assembles
// the middleware chain.
func NewServer(addr string, opts Options) *Server {
	funcs := template.FuncMap{
		"brl":   core.FormatBRL,
		"cents": core.FormatCents,
	}
	templates := template.Must(
		template.New("").Funcs(funcs).ParseFS(appweb.TemplatesFS, "templates/*.html"))

	s := &Server{
		store:        opts.Store,
		auth:         opts.Auth,
		audit:        opts.Audit,
		logger:       applog.New(applog.Config{Component: applog.ComponentHTTP}),
		budgetCents:  opts.MonthlyBudgetCents,
		seedDemoData: opts.SeedDemoData,
		templates:    templates,
		statsCache:   cache.NewLRUCache[dashboardStats](16, 5*time.Minute),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitRPM,
			CleanupInterval:   5 * time.Minute,
		}),
		headers:    security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		appMetrics: appMetrics{uptime: time.Now()},
	}
	s.cacheManager = cache.NewManager()
	s.cacheManager.Register(s.statsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	s.securityDetector = security.NewDetector(func(clientIP, reason string) {
		s.audit.Append(clientIP, "suspicious_request", reason, audit.StatusBlocked)
	})
	s.traceMiddleware = trace.NewMiddleware(s.securityDetector.ExtractClientIP)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.routes(),
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.requireSession(s.handleLogout))

	mux.HandleFunc("/transactions", s.requireSession(s.handleTransactions))
	mux.HandleFunc("/transactions/delete", s.requireSession(s.handleDeleteTransaction))
	mux.HandleFunc("/transactions/export", s.requireSession(s.handleExportCSV))

	mux.HandleFunc("/dashboard/totals", s.requireSession(s.handleDashboardTotals))
	mux.HandleFunc("/dashboard/recent", s.requireSession(s.handleDashboardRecent))
	mux.HandleFunc("/dashboard/budget", s.requireSession(s.handleDashboardBudget))

	mux.HandleFunc("/charts/categories", s.requireSession(s.handleChartCategories))
	mux.HandleFunc("/charts/monthly", s.requireSession(s.handleChartMonthly))

	mux.HandleFunc("/security", s.requireSession(s.handleSecurityPanel))
	mux.HandleFunc("/security/password", s.requireSession(s.handleChangePassword))
	mux.HandleFunc("/security/report", s.requireSession(s.handleSecurityReport))

	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/metrics", s.handleMetrics)

	staticFS, err := fs.Sub(appweb.StaticFS, "static")
	if err == nil {
		mux.Handle("/static/", http.StripPrefix("/static/",
			security.StaticAssetMiddleware(3600)(http.FileServer(http.FS(staticFS)))))
	}

	var handler http.Handler = mux
	handler = s.detectMiddleware(handler)
	handler = s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, nil)(handler)
	handler = s.headers.Middleware(handler)
	handler = applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})(handler)
	handler = s.traceMiddleware.Middleware(handler)
	handler = applog.Middleware(s.logger)(handler)
	return handler
}

// detectMiddleware runs the cosmetic suspicious-request detection. Hits are
// logged and blocked; this is pattern matching, not real threat analysis.
func (s *Server) detectMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.securityDetector.DetectSuspiciousRequest(r) {
			http.Error(w, "Requisição bloqueada", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// currentStats returns the dashboard aggregates, recomputing when the store
// generation changed since the cached derivation.
func (s *Server) currentStats(r *http.Request) (dashboardStats, error) {
	key := generationKey(s.store.Generation())
	if stats, ok := s.statsCache.Get(key); ok {
		atomic.AddInt64(&s.appMetrics.cacheHits, 1)
		return stats, nil
	}
	atomic.AddInt64(&s.appMetrics.cacheMisses, 1)

	txs, err := s.store.List(r.Context())
	if err != nil {
		return dashboardStats{}, err
	}
	stats := dashboardStats{
		Totals:  report.ComputeTotals(txs),
		ByCat:   report.ExpenseByCategory(txs),
		Monthly: report.MonthlySeries(txs),
		Recent:  report.RecentN(txs, 5),
	}
	s.statsCache.Set(key, stats)
	return stats, nil
}

// CloseResources releases middleware and cache resources.
func (s *Server) CloseResources() {
	s.rateLimiter.Stop()
	s.cacheManager.Stop()
}
