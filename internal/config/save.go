// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// Manager persists the service configuration file.
type Manager struct {
	configPath string
}

// NewManager creates a manager writing to the given path.
func NewManager(configPath string) *Manager {
	return &Manager{configPath: configPath}
}

// Path returns the config file location the manager writes to.
func (m *Manager) Path() string {
	return m.configPath
}

// Save writes the configuration to disk atomically. A partially
// written file is never observable at the target path.
func (m *Manager) Save(cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o750); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	fileCfg := fileConfigFrom(cfg)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fileCfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close encoder: %w", err)
	}

	if err := renameio.WriteFile(m.configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// fileConfigFrom maps a resolved AppConfig back onto the YAML shape.
// Every field is written explicitly so a saved file round-trips through
// Load without drift.
func fileConfigFrom(cfg AppConfig) FileConfig {
	return FileConfig{
		RCPath:        cfg.RCPath,
		Watch:         boolPtr(cfg.Watch),
		LogLevel:      cfg.LogLevel,
		Listen:        cfg.APIListenAddr,
		MetricsListen: cfg.MetricsAddr,
		Reload: ReloadFileConfig{
			Interval: cfg.ReloadInterval.String(),
			Burst:    intPtr(cfg.ReloadBurst),
		},
		History: HistoryFileConfig{
			Backend: cfg.History.Backend,
			Path:    cfg.History.Path,
			Keep:    intPtr(cfg.History.Keep),
		},
		Cache: CacheFileConfig{
			Backend: cfg.Cache.Backend,
			TTL:     cfg.Cache.TTL.String(),
			Redis: RedisFileConfig{
				Addr:     cfg.Cache.Redis.Addr,
				Password: cfg.Cache.Redis.Password,
				DB:       intPtr(cfg.Cache.Redis.DB),
			},
		},
		RateLimit: RateLimitFileConfig{
			Enabled:  boolPtr(cfg.RateLimit.Enabled),
			Requests: intPtr(cfg.RateLimit.Requests),
			Window:   cfg.RateLimit.Window.String(),
		},
		Telemetry: TelemetryFileConfig{
			Enabled:      boolPtr(cfg.Telemetry.Enabled),
			Environment:  cfg.Telemetry.Environment,
			Exporter:     cfg.Telemetry.Exporter,
			Endpoint:     cfg.Telemetry.Endpoint,
			SamplingRate: floatPtr(cfg.Telemetry.SamplingRate),
		},
		Server: ServerFileConfig{
			ReadTimeout:     cfg.Server.ReadTimeout.String(),
			WriteTimeout:    cfg.Server.WriteTimeout.String(),
			IdleTimeout:     cfg.Server.IdleTimeout.String(),
			MaxHeaderBytes:  intPtr(cfg.Server.MaxHeaderBytes),
			ShutdownTimeout: cfg.Server.ShutdownTimeout.String(),
		},
	}
}

func boolPtr(b bool) *bool        { return &b }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
