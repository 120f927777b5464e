// Package http serves the dashboard: HTMX partials for stats, table,
// and entry form, JSON chart data, and the login gate in front of it
// all.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"kas/internal/cache"
	"kas/internal/config"
	"kas/internal/core"
	applog "kas/internal/log"
	"kas/internal/middleware/ratelimit"
	"kas/internal/middleware/security"
	"kas/internal/middleware/trace"
	"kas/internal/services"
	appweb "kas/web"
)

// dashboardView is the cached per-month read model behind the stats
// and table partials.
type dashboardView struct {
	Totals  core.Totals
	Records []core.Transaction
}

type Server struct {
	http.Server

	templates *template.Template
	tx        *services.TransactionService
	session   *services.SessionService

	limiter  *ratelimit.Limiter
	resolver *security.Resolver
	headers  *security.HeadersMiddleware
	tracer   *trace.Middleware
	janitor  *cache.Janitor

	viewCache *cache.LRU[dashboardView]
	viewGroup singleflight.Group

	shutdownOnce sync.Once
}

// NewServer wires routes, templates, and middleware into a
// ready-to-run server.
func NewServer(cfg *config.Config, tx *services.TransactionService, session *services.SessionService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		tx:      tx,
		session: session,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
		}),
		resolver:  security.NewResolver(),
		headers:   security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		janitor:   cache.NewJanitor(),
		viewCache: cache.NewLRU[dashboardView](16, cfg.CacheTTL),
	}
	s.tracer = trace.NewMiddleware(s.resolver.ClientIP)
	s.janitor.Register(s.viewCache)
	s.janitor.Start(10 * time.Minute)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.requireLogin(s.handleLogout))

	mux.HandleFunc("/", s.requireLogin(s.handleIndex))
	mux.HandleFunc("/transactions", s.requireLogin(s.handleSubmitTransaction))
	mux.HandleFunc("/transactions/delete", s.requireLogin(s.handleDeleteTransaction))

	mux.HandleFunc("/ui/stats", s.requireLogin(s.handleStats))
	mux.HandleFunc("/ui/table", s.requireLogin(s.handleTable))
	mux.HandleFunc("/ui/form", s.requireLogin(s.handleForm))
	mux.HandleFunc("/ui/chart-data", s.requireLogin(s.handleChartData))
	mux.HandleFunc("/ui/theme", s.requireLogin(s.handleToggleTheme))
	mux.HandleFunc("/export", s.requireLogin(s.handleExport))

	requestLog := applog.Middleware(applog.New(applog.Config{Component: applog.ComponentHTTP}))
	requestID := applog.RequestIDMiddleware(func(r *http.Request) string {
		return trace.GetRequestID(r.Context())
	})

	s.Addr = ":" + cfg.Port
	s.Handler = s.headers.Middleware(s.tracer.Middleware(requestLog(requestID(s.limitMutations(mux)))))
	return s
}

// limitMutations applies the per-IP budget to mutating requests only;
// partial refreshes stay unmetered.
func (s *Server) limitMutations(next http.Handler) http.Handler {
	limited := s.limiter.Middleware(s.resolver.ClientIP)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodDelete {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireLogin redirects anonymous requests to the login page. HTMX
// requests get an HX-Redirect instead so the swap does not inline the
// login form into a partial.
func (s *Server) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.session.LoggedIn(r.Context()) {
			if r.Header.Get("HX-Request") == "true" {
				w.Header().Set("HX-Redirect", "/login")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// dashboard returns the month-filtered read model, serving repeat
// requests from cache. Concurrent misses for the same month collapse
// into a single computation.
func (s *Server) dashboard(ctx context.Context, month int) dashboardView {
	key := "month-" + strconv.Itoa(month)
	if view, ok := s.viewCache.Get(key); ok {
		applog.FromContext(ctx).DebugContext(ctx, "Dashboard cache hit", applog.FieldMonth, month)
		return view
	}

	v, _, _ := s.viewGroup.Do(key, func() (any, error) {
		records := core.FilterByMonth(s.tx.All(), month)
		view := dashboardView{
			Totals:  core.ComputeTotals(records),
			Records: core.SortNewestFirst(records),
		}
		s.viewCache.Set(key, view)
		return view, nil
	})
	return v.(dashboardView)
}

// invalidateViews drops every cached month after a mutation.
func (s *Server) invalidateViews() {
	s.viewCache.Purge()
}

// Shutdown stops background goroutines before closing the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.janitor.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
