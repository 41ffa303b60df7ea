// SPDX-License-Identifier: MIT

// Package health provides health and readiness check functionality for
// production deployments. It supports Docker HEALTHCHECK and Kubernetes
// probes with detailed component status.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ssbarnea/lintrc/internal/log"
)

// Status represents the overall health/readiness status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of a component health check
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse represents the full health check response
type HealthResponse struct {
	Status    Status                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Uptime    int64                  `json:"uptime_seconds"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// ReadinessResponse represents the readiness check response
type ReadinessResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Checker defines the interface for health checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// Manager manages health and readiness checks
type Manager struct {
	version   string
	startTime time.Time
	checkers  []Checker
}

// NewManager creates a new health check manager
func NewManager(version string) *Manager {
	return &Manager{
		version:   version,
		startTime: time.Now(),
		checkers:  make([]Checker, 0),
	}
}

// RegisterChecker adds a health checker to the manager
func (m *Manager) RegisterChecker(checker Checker) {
	m.checkers = append(m.checkers, checker)
}

// Health performs a health check (liveness probe)
// Returns 200 if the process is alive, regardless of service state
func (m *Manager) Health(ctx context.Context, verbose bool) HealthResponse {
	resp := HealthResponse{
		Status:    StatusHealthy,
		Version:   m.version,
		Uptime:    int64(time.Since(m.startTime).Seconds()),
		Timestamp: time.Now(),
	}

	if verbose && len(m.checkers) > 0 {
		resp.Checks = make(map[string]CheckResult)
		hasUnhealthy := false
		hasDegraded := false

		for _, checker := range m.checkers {
			result := checker.Check(ctx)
			resp.Checks[checker.Name()] = result

			switch result.Status {
			case StatusUnhealthy:
				hasUnhealthy = true
			case StatusDegraded:
				hasDegraded = true
			}
		}

		if hasUnhealthy {
			resp.Status = StatusUnhealthy
		} else if hasDegraded {
			resp.Status = StatusDegraded
		}
	}

	return resp
}

// Ready performs a readiness check (readiness probe)
// Returns 200 if the daemon holds a snapshot and can serve traffic
func (m *Manager) Ready(ctx context.Context, _ bool) ReadinessResponse {
	resp := ReadinessResponse{
		Ready:     true,
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	}

	if len(m.checkers) == 0 {
		return resp
	}

	resp.Checks = make(map[string]CheckResult)
	hasUnhealthy := false
	hasDegraded := false

	for _, checker := range m.checkers {
		result := checker.Check(ctx)
		resp.Checks[checker.Name()] = result

		switch result.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
			resp.Ready = false
		case StatusDegraded:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		resp.Status = StatusUnhealthy
	} else if hasDegraded {
		resp.Status = StatusDegraded
	}

	return resp
}

// ServeHealth handles HTTP health check requests
func (m *Manager) ServeHealth(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "health")
	verbose := r.URL.Query().Get("verbose") == "true"

	resp := m.Health(r.Context(), verbose)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK) // Always 200 for liveness

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error().Err(err).Str("event", "health.encode_error").Msg("failed to encode health response")
	}

	logger.Debug().
		Str("event", "health.checked").
		Str("status", string(resp.Status)).
		Bool("verbose", verbose).
		Msg("health check performed")
}

// ServeReady handles HTTP readiness check requests
func (m *Manager) ServeReady(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "readiness")
	verbose := r.URL.Query().Get("verbose") == "true"

	resp := m.Ready(r.Context(), verbose)

	w.Header().Set("Content-Type", "application/json")
	if resp.Ready {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error().Err(err).Str("event", "readiness.encode_error").Msg("failed to encode readiness response")
	}

	logger.Debug().
		Str("event", "readiness.checked").
		Str("status", string(resp.Status)).
		Bool("ready", resp.Ready).
		Bool("verbose", verbose).
		Msg("readiness check performed")
}

// FileChecker reports the state of the rc file on disk. A missing file
// is degraded, not unhealthy: the daemon keeps serving the last loaded
// snapshot (or defaults) when the file disappears.
type FileChecker struct {
	name string
	path string
}

// NewFileChecker creates a checker for the rc file
func NewFileChecker(name, path string) *FileChecker {
	return &FileChecker{
		name: name,
		path: path,
	}
}

func (c *FileChecker) Name() string {
	return c.name
}

func (c *FileChecker) Check(ctx context.Context) CheckResult {
	if c.path == "" {
		return CheckResult{
			Status:  StatusHealthy,
			Message: "not configured (defaults and environment only)",
		}
	}

	info, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{
				Status:  StatusDegraded,
				Error:   "file not found",
				Message: c.path,
			}
		}
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
	}

	if info.IsDir() {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  "expected file, got directory",
		}
	}

	// An empty rc file is valid: every option falls back to its default.
	return CheckResult{
		Status:  StatusHealthy,
		Message: "file exists and readable",
	}
}

// SnapshotStatus describes the currently served configuration snapshot.
type SnapshotStatus struct {
	Loaded      bool
	Fingerprint string
	LoadedAt    time.Time
	Warnings    int
}

// SnapshotChecker verifies a configuration snapshot is loaded and clean.
type SnapshotChecker struct {
	probe func() SnapshotStatus
}

// NewSnapshotChecker creates a checker fed by the given probe.
func NewSnapshotChecker(probe func() SnapshotStatus) *SnapshotChecker {
	return &SnapshotChecker{probe: probe}
}

func (c *SnapshotChecker) Name() string {
	return "snapshot"
}

func (c *SnapshotChecker) Check(ctx context.Context) CheckResult {
	st := c.probe()

	if !st.Loaded {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  "no configuration snapshot loaded",
		}
	}

	msg := fmt.Sprintf("fingerprint %s, loaded %s ago",
		shortFingerprint(st.Fingerprint), time.Since(st.LoadedAt).Round(time.Second))

	if st.Warnings > 0 {
		return CheckResult{
			Status:  StatusDegraded,
			Message: fmt.Sprintf("%s, %d warnings", msg, st.Warnings),
		}
	}

	return CheckResult{
		Status:  StatusHealthy,
		Message: msg,
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	if fp == "" {
		return "unknown"
	}
	return fp
}

// ProbeChecker wraps a ping function, typically a storage backend
// connectivity test.
type ProbeChecker struct {
	name  string
	probe func(ctx context.Context) error
}

// NewProbeChecker creates a checker that is healthy while probe
// returns nil.
func NewProbeChecker(name string, probe func(ctx context.Context) error) *ProbeChecker {
	return &ProbeChecker{
		name:  name,
		probe: probe,
	}
}

func (c *ProbeChecker) Name() string {
	return c.name
}

func (c *ProbeChecker) Check(ctx context.Context) CheckResult {
	if err := c.probe(ctx); err != nil {
		return CheckResult{
			Status: StatusUnhealthy,
			Error:  err.Error(),
		}
	}
	return CheckResult{
		Status:  StatusHealthy,
		Message: "reachable",
	}
}
