// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"github.com/ssbarnea/lintrc/internal/validate"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}

// Validate checks a fully resolved configuration. It accumulates all
// problems instead of stopping at the first one.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.NotEmpty("rcPath", cfg.RCPath)
	v.OneOf("logLevel", cfg.LogLevel, logLevels)
	v.ListenAddr("listen", cfg.APIListenAddr)
	if cfg.MetricsAddr != "" {
		v.ListenAddr("metricsListen", cfg.MetricsAddr)
	}

	v.PositiveDuration("reload.interval", cfg.ReloadInterval)
	v.Positive("reload.burst", cfg.ReloadBurst)

	v.OneOf("history.backend", cfg.History.Backend, []string{"memory", "badger", "sqlite"})
	if cfg.History.Backend == "badger" || cfg.History.Backend == "sqlite" {
		v.NotEmpty("history.path", cfg.History.Path)
	}
	v.NonNegative("history.keep", cfg.History.Keep)

	v.OneOf("cache.backend", cfg.Cache.Backend, []string{"memory", "redis", "none"})
	v.PositiveDuration("cache.ttl", cfg.Cache.TTL)
	if cfg.Cache.Backend == "redis" {
		v.NotEmpty("cache.redis.addr", cfg.Cache.Redis.Addr)
		v.NonNegative("cache.redis.db", cfg.Cache.Redis.DB)
	}

	if cfg.RateLimit.Enabled {
		v.Positive("rateLimit.requests", cfg.RateLimit.Requests)
		v.PositiveDuration("rateLimit.window", cfg.RateLimit.Window)
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("telemetry.exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		v.NotEmpty("telemetry.endpoint", cfg.Telemetry.Endpoint)
		if cfg.Telemetry.SamplingRate < 0 || cfg.Telemetry.SamplingRate > 1 {
			v.AddError("telemetry.samplingRate",
				fmt.Sprintf("sampling rate must be between 0.0 and 1.0, got %v", cfg.Telemetry.SamplingRate),
				cfg.Telemetry.SamplingRate)
		}
	}

	v.PositiveDuration("server.readTimeout", cfg.Server.ReadTimeout)
	if cfg.Server.WriteTimeout < 0 {
		v.AddError("server.writeTimeout", "timeout cannot be negative", cfg.Server.WriteTimeout)
	}
	v.PositiveDuration("server.idleTimeout", cfg.Server.IdleTimeout)
	v.Positive("server.maxHeaderBytes", cfg.Server.MaxHeaderBytes)
	v.PositiveDuration("server.shutdownTimeout", cfg.Server.ShutdownTimeout)

	return v.Err()
}
