// Package http exposes the payroll ledger as a JSON API and serves the
// embedded single-page app.
package http

import (
	"context"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"boxpay/internal/cache"
	"boxpay/internal/generate"
	"boxpay/internal/ledger"
	appweb "boxpay/web"
)

type Server struct {
	http.Server
	ledger      *ledger.Service
	generator   generate.Generator
	rateLimiter *rateLimiter
	metrics     *securityMetrics
	staticFS    fs.FS

	// Derived views are cheap to rebuild but hit on every page load, so
	// they are cached per year and invalidated on mutation.
	yearCache    *cache.LRUCache[yearView]
	reportCache  *cache.LRUCache[string]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and the embedded static app, returning a
// ready-to-run server.
func NewServer(addr string, svc *ledger.Service, gen generate.Generator) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:       svc,
		generator:    gen,
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		yearCache:    cache.NewLRUCache[yearView](50, 5*time.Minute),
		reportCache:  cache.NewLRUCache[string](50, 5*time.Minute),
		cacheManager: cache.NewManager(),
	}

	s.cacheManager.Register(s.yearCache)
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		s.staticFS = sub
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/coaches", s.withSecurity(s.handleListCoaches))
	mux.HandleFunc("POST /api/coaches", s.withSecurity(s.handleRegisterCoach))
	mux.HandleFunc("PATCH /api/coaches/{id}", s.withSecurity(s.handleUpdateCoach))
	mux.HandleFunc("DELETE /api/coaches/{id}", s.withSecurity(s.handleDeleteCoach))

	mux.HandleFunc("PUT /api/ledger/{year}/months/{month}/amounts/{coachId}", s.withSecurity(s.handleSetAmount))
	mux.HandleFunc("POST /api/ledger/{year}/months/{month}/roster", s.withSecurity(s.handleAddToRoster))
	mux.HandleFunc("DELETE /api/ledger/{year}/months/{month}/roster/{coachId}", s.withSecurity(s.handleRemoveFromRoster))
	mux.HandleFunc("GET /api/ledger/{year}", s.withSecurity(s.handleYearView))
	mux.HandleFunc("GET /api/ledger/{year}/report", s.withSecurity(s.handleReport))

	mux.HandleFunc("POST /api/generate", s.withSecurity(s.handleGenerate))

	mux.HandleFunc("/", s.withSecurity(s.handleStatic))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// invalidateYear drops cached views for one year. An empty year means the
// change touches an unknown set of years (coach delete cascades), so
// everything goes.
func (s *Server) invalidateYear(year string) {
	if year == "" {
		s.yearCache.Purge()
		s.reportCache.Purge()
		return
	}
	s.yearCache.Delete(year)
	s.reportCache.Delete(year)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleStatic serves the embedded app with an index.html fallback for
// client-side routes. API paths never fall through to the app.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if s.staticFS == nil {
		http.Error(w, "static assets not available", http.StatusInternalServerError)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/")
	if path != "" && path != "index.html" {
		if f, err := s.staticFS.Open(path); err == nil {
			f.Close()
			w.Header().Set("Cache-Control", "public, max-age=3600")
			http.ServeFileFS(w, r, s.staticFS, path)
			return
		}
	}

	index, err := fs.ReadFile(s.staticFS, "index.html")
	if err != nil {
		http.Error(w, "application not built correctly", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(index)
}
