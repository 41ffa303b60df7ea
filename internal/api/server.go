// SPDX-License-Identifier: MIT

// Package api serves the resolved lint configuration over HTTP: the
// effective snapshot with provenance, rendered dumps, message state,
// ad-hoc validation, reload control, and the revision history.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssbarnea/lintrc/internal/api/middleware"
	"github.com/ssbarnea/lintrc/internal/cache"
	"github.com/ssbarnea/lintrc/internal/health"
	"github.com/ssbarnea/lintrc/internal/history"
	"github.com/ssbarnea/lintrc/internal/lintconf"
)

const defaultRenderTTL = 5 * time.Minute

// ConfigSource provides the live snapshot and the reload entry point.
// *lintconf.Holder implements it.
type ConfigSource interface {
	Current() *lintconf.Snapshot
	Reload(ctx context.Context, trigger string) (*lintconf.Snapshot, error)
}

// Config carries the server's collaborators and middleware settings.
type Config struct {
	Version string
	Source  ConfigSource
	Store   history.Store
	Cache   cache.Cache
	// CacheTTL bounds how long rendered payloads stay cached. Zero
	// selects a sane default; invalidation on snapshot swap is what
	// keeps responses fresh, the TTL only caps memory.
	CacheTTL time.Duration
	Health   *health.Manager

	TracingService    string
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Server is the HTTP facade over the configuration holder. It owns no
// state of its own: every request reads the holder's current snapshot.
type Server struct {
	version  string
	source   ConfigSource
	store    history.Store
	cache    cache.Cache
	cacheTTL time.Duration
	health   *health.Manager
	stack    middleware.StackConfig
}

// NewServer creates the API server. A nil cache disables render
// caching, a nil store disables the revision endpoints.
func NewServer(cfg Config) *Server {
	c := cfg.Cache
	if c == nil {
		c = cache.NewNoOpCache()
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultRenderTTL
	}

	return &Server{
		version:  cfg.Version,
		source:   cfg.Source,
		store:    cfg.Store,
		cache:    c,
		cacheTTL: ttl,
		health:   cfg.Health,
		stack: middleware.StackConfig{
			EnableMetrics:     true,
			TracingService:    cfg.TracingService,
			EnableLogging:     true,
			EnableRateLimit:   cfg.RateLimitEnabled,
			RateLimitRequests: cfg.RateLimitRequests,
			RateLimitWindow:   cfg.RateLimitWindow,
		},
	}
}

// Router builds the HTTP handler: health probes at the root, the
// versioned API underneath.
func (s *Server) Router() http.Handler {
	r := middleware.NewRouter(s.stack)

	if s.health != nil {
		r.Get("/healthz", s.health.ServeHealth)
		r.Get("/readyz", s.health.ServeReady)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/config", s.handleConfig)
		r.Get("/config/raw", s.handleConfigRaw)
		r.Get("/config/{section}", s.handleSection)
		r.Get("/config/{section}/{option}", s.handleOption)
		r.Get("/messages", s.handleMessages)
		r.Post("/validate", s.handleValidate)
		r.Post("/reload", s.handleReload)
		r.Get("/revisions", s.handleRevisions)
		r.Get("/revisions/{id}", s.handleRevision)
	})

	return r
}

// snapshot returns the live snapshot, or writes a 503 and reports false
// when none has been loaded yet.
func (s *Server) snapshot(w http.ResponseWriter) (*lintconf.Snapshot, bool) {
	snap := s.source.Current()
	if snap == nil {
		writeServiceUnavailableMsg(w, "no configuration snapshot loaded")
		return nil, false
	}
	return snap, true
}
