// SPDX-License-Identifier: MIT

// Package daemon owns the process lifecycle of lintrcd: the HTTP
// servers, graceful shutdown with LIFO cleanup hooks, and the runtime
// wiring between the rc holder, the render cache, and reload signals.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ssbarnea/lintrc/internal/config"
)

// ShutdownHook is a function that performs cleanup during graceful shutdown.
// Hooks are executed in reverse registration order (LIFO).
type ShutdownHook func(ctx context.Context) error

// Manager manages the daemon lifecycle: starting servers, handling shutdown.
type Manager interface {
	// Start starts all configured servers and blocks until shutdown
	Start(ctx context.Context) error

	// Shutdown gracefully shuts down all servers
	Shutdown(ctx context.Context) error

	// RegisterShutdownHook registers a function to be called during shutdown
	RegisterShutdownHook(name string, hook ShutdownHook)
}

type manager struct {
	serverCfg config.ServerConfig
	deps      Deps

	apiServer     *http.Server
	metricsServer *http.Server

	// Shutdown hooks (LIFO order)
	shutdownHooks []namedHook

	started  bool
	stopping bool
	mu       sync.Mutex

	logger zerolog.Logger
}

// namedHook represents a shutdown hook with a name for logging
type namedHook struct {
	name string
	hook ShutdownHook
}

// NewManager creates a new daemon manager with the given configuration and dependencies.
func NewManager(serverCfg config.ServerConfig, deps Deps) (Manager, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	return &manager{
		serverCfg:     serverCfg,
		deps:          deps,
		logger:        deps.Logger.With().Str("component", "manager").Logger(),
		shutdownHooks: make([]namedHook, 0),
	}, nil
}

// Start starts all configured servers and blocks until context is cancelled.
func (m *manager) Start(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("start context is nil")
	}

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return fmt.Errorf("manager already started")
	}
	m.started = true
	m.mu.Unlock()

	m.logger.Info().
		Str("listen", m.serverCfg.ListenAddr).
		Dur("read_timeout", m.serverCfg.ReadTimeout).
		Dur("write_timeout", m.serverCfg.WriteTimeout).
		Dur("shutdown_timeout", m.serverCfg.ShutdownTimeout).
		Msg("Starting daemon manager")

	errChan := make(chan error, 2)

	if m.deps.MetricsHandler != nil {
		m.startMetricsServer(errChan)
	}
	m.startAPIServer(errChan)

	// Wait for shutdown signal or server error
	select {
	case err := <-errChan:
		m.logger.Error().Err(err).Msg("Server error, initiating shutdown")
		// Use a detached-but-bounded context so shutdown can complete even if parent is canceled.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if shutdownErr := m.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("server error and shutdown failure: %w", errors.Join(err, shutdownErr))
		}
		return err
	case <-ctx.Done():
		m.logger.Info().Msg("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		return m.Shutdown(shutdownCtx)
	}
}

// startAPIServer starts the main API HTTP server.
func (m *manager) startAPIServer(errChan chan<- error) {
	m.apiServer = &http.Server{
		Addr:              m.serverCfg.ListenAddr,
		Handler:           m.deps.APIHandler,
		ReadTimeout:       m.serverCfg.ReadTimeout,
		ReadHeaderTimeout: m.serverCfg.ReadTimeout / 2,
		WriteTimeout:      m.serverCfg.WriteTimeout,
		IdleTimeout:       m.serverCfg.IdleTimeout,
		MaxHeaderBytes:    m.serverCfg.MaxHeaderBytes,
	}

	go func() {
		m.logger.Info().
			Str("addr", m.serverCfg.ListenAddr).
			Msg("API server listening")

		if err := m.apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error().
				Err(err).
				Str("event", "api.server.failed").
				Msg("API server failed")
			errChan <- fmt.Errorf("API server: %w", err)
		}
	}()
}

// startMetricsServer starts the Prometheus metrics HTTP server.
func (m *manager) startMetricsServer(errChan chan<- error) {
	metricsAddr := m.deps.MetricsAddr
	if metricsAddr == "" {
		return // Metrics disabled
	}

	m.metricsServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           m.deps.MetricsHandler,
		ReadHeaderTimeout: m.serverCfg.ReadTimeout / 2,
	}

	go func() {
		m.logger.Info().
			Str("addr", metricsAddr).
			Msg("Metrics server listening")

		if err := m.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error().
				Err(err).
				Str("event", "metrics.server.failed").
				Msg("Metrics server failed")
			errChan <- fmt.Errorf("metrics server: %w", err)
		}
	}()
}

func (m *manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("shutdown context is nil")
	}

	m.mu.Lock()
	if m.stopping {
		m.mu.Unlock()
		return nil
	}
	if !m.started {
		m.mu.Unlock()
		return ErrManagerNotStarted
	}
	m.stopping = true
	m.mu.Unlock()

	m.logger.Info().Msg("Shutting down daemon manager")

	// Create a bounded shutdown context independent from caller cancellation.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.serverCfg.ShutdownTimeout)
	defer cancel()

	var errs []error

	if m.apiServer != nil {
		m.logger.Debug().Msg("Shutting down API server")
		if err := m.apiServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("API server shutdown: %w", err))
		}
	}

	if m.metricsServer != nil {
		m.logger.Debug().Msg("Shutting down metrics server")
		if err := m.metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// Execute shutdown hooks in reverse order (LIFO)
	m.logger.Debug().Int("hooks", len(m.shutdownHooks)).Msg("Executing shutdown hooks")
	for i := len(m.shutdownHooks) - 1; i >= 0; i-- {
		hook := m.shutdownHooks[i]
		m.logger.Debug().Str("hook", hook.name).Msg("Executing shutdown hook")

		hookStart := time.Now()
		if err := hook.hook(shutdownCtx); err != nil {
			m.logger.Error().
				Err(err).
				Str("hook", hook.name).
				Dur("duration", time.Since(hookStart)).
				Msg("Shutdown hook failed")
			errs = append(errs, fmt.Errorf("hook %s: %w", hook.name, err))
		} else {
			m.logger.Debug().
				Str("hook", hook.name).
				Dur("duration", time.Since(hookStart)).
				Msg("Shutdown hook completed")
		}
	}

	if len(errs) > 0 {
		m.logger.Error().
			Int("error_count", len(errs)).
			Msg("Shutdown completed with errors")
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	m.logger.Info().Msg("Daemon manager stopped cleanly")
	return nil
}

// RegisterShutdownHook registers a cleanup function to be called during shutdown.
// Hooks are executed in reverse registration order (LIFO).
func (m *manager) RegisterShutdownHook(name string, hook ShutdownHook) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shutdownHooks = append(m.shutdownHooks, namedHook{
		name: name,
		hook: hook,
	})
	m.logger.Debug().Str("hook", name).Msg("Registered shutdown hook")
}
