// SPDX-License-Identifier: MIT

package config

import (
	"strings"
	"time"
)

// minShutdownTimeout is the floor applied to graceful shutdown so a
// misconfigured value cannot cut in-flight requests off immediately.
const minShutdownTimeout = 3 * time.Second

// ServerConfig is the resolved HTTP server configuration handed to the
// daemon runtime.
type ServerConfig struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	ShutdownTimeout time.Duration
}

// BuildServerConfig maps an AppConfig onto the server runtime settings,
// applying floors where zero or absurd values would break serving.
func BuildServerConfig(cfg AppConfig) ServerConfig {
	out := ServerConfig{
		ListenAddr:      strings.TrimSpace(cfg.APIListenAddr),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		MaxHeaderBytes:  cfg.Server.MaxHeaderBytes,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	if out.ListenAddr == "" {
		out.ListenAddr = defaultAPIListenAddr
	}
	if out.MaxHeaderBytes <= 0 {
		out.MaxHeaderBytes = defaultMaxHeaderBytes
	}
	if out.ShutdownTimeout < minShutdownTimeout {
		out.ShutdownTimeout = minShutdownTimeout
	}

	return out
}
