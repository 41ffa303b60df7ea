// SPDX-License-Identifier: MIT

package daemon

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Deps contains dependencies required by the daemon Manager.
// This allows for clean dependency injection and easier testing.
type Deps struct {
	// Logger is the structured logger for the daemon
	Logger zerolog.Logger

	// APIHandler is the HTTP handler for the API server
	APIHandler http.Handler

	// MetricsHandler serves Prometheus metrics. Nil, or an empty
	// MetricsAddr, disables the metrics listener.
	MetricsHandler http.Handler

	// MetricsAddr is the listen address of the metrics server.
	MetricsAddr string
}

// Validate checks if the dependencies are valid.
func (d *Deps) Validate() error {
	if d.Logger.GetLevel() == zerolog.Disabled {
		return ErrMissingLogger
	}
	if d.APIHandler == nil {
		return ErrMissingAPIHandler
	}
	return nil
}
