// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment keys consumed by the loader.
const (
	EnvRC              = "LINTRCD_RC"
	EnvWatch           = "LINTRCD_WATCH"
	EnvListen          = "LINTRCD_LISTEN"
	EnvMetricsListen   = "LINTRCD_METRICS_LISTEN"
	EnvLogLevel        = "LINTRCD_LOG_LEVEL"
	EnvReloadInterval  = "LINTRCD_RELOAD_INTERVAL"
	EnvReloadBurst     = "LINTRCD_RELOAD_BURST"
	EnvHistoryBackend  = "LINTRCD_HISTORY_BACKEND"
	EnvHistoryPath     = "LINTRCD_HISTORY_PATH"
	EnvHistoryKeep     = "LINTRCD_HISTORY_KEEP"
	EnvCacheBackend    = "LINTRCD_CACHE_BACKEND"
	EnvCacheTTL        = "LINTRCD_CACHE_TTL"
	EnvRedisAddr       = "LINTRCD_REDIS_ADDR"
	EnvRedisPassword   = "LINTRCD_REDIS_PASSWORD"
	EnvRedisDB         = "LINTRCD_REDIS_DB"
	EnvRateLimit       = "LINTRCD_RATE_LIMIT_ENABLED"
	EnvRateRequests    = "LINTRCD_RATE_LIMIT_REQUESTS"
	EnvRateWindow      = "LINTRCD_RATE_LIMIT_WINDOW"
	EnvOTELEnabled     = "LINTRCD_OTEL_ENABLED"
	EnvOTELEnvironment = "LINTRCD_OTEL_ENVIRONMENT"
	EnvOTELExporter    = "LINTRCD_OTEL_EXPORTER"
	EnvOTELEndpoint    = "LINTRCD_OTEL_ENDPOINT"
	EnvOTELSampling    = "LINTRCD_OTEL_SAMPLING_RATE"
	EnvReadTimeout     = "LINTRCD_SERVER_READ_TIMEOUT"
	EnvWriteTimeout    = "LINTRCD_SERVER_WRITE_TIMEOUT"
	EnvIdleTimeout     = "LINTRCD_SERVER_IDLE_TIMEOUT"
	EnvMaxHeaderBytes  = "LINTRCD_SERVER_MAX_HEADER_BYTES"
	EnvShutdownTimeout = "LINTRCD_SERVER_SHUTDOWN_TIMEOUT"
)

// Loader resolves the daemon configuration with precedence
// ENV > file > defaults.
type Loader struct {
	configPath string
	version    string

	// ConsumedEnvKeys records every environment key the loader read,
	// whether or not it was set.
	ConsumedEnvKeys map[string]struct{}
}

// NewLoader creates a loader for the given service config file path.
// An empty path skips the file layer.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath:      configPath,
		version:         version,
		ConsumedEnvKeys: make(map[string]struct{}),
	}
}

func (l *Loader) envString(key, defaultVal string) string {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseString(key, defaultVal)
}

func (l *Loader) envBool(key string, defaultVal bool) bool {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseBool(key, defaultVal)
}

func (l *Loader) envInt(key string, defaultVal int) int {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseInt(key, defaultVal)
}

func (l *Loader) envDuration(key string, defaultVal time.Duration) time.Duration {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseDuration(key, defaultVal)
}

func (l *Loader) envFloat(key string, defaultVal float64) float64 {
	l.ConsumedEnvKeys[key] = struct{}{}
	return ParseFloat(key, defaultVal)
}

// Load resolves the configuration in strict order: defaults, then the
// config file parsed strictly, then environment overrides, then
// validation of the final result.
func (l *Loader) Load() (AppConfig, error) {
	// 1. Defaults
	cfg := defaultConfig()

	// 2. File layer (if provided)
	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		if err := mergeFileConfig(&cfg, fileCfg); err != nil {
			return cfg, fmt.Errorf("merge file config: %w", err)
		}
	}

	// 3. Environment overrides (highest priority)
	l.mergeEnvConfig(&cfg)

	// 4. Version from binary
	cfg.Version = l.version

	// 5. Validate final configuration
	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFile parses a YAML service config file in strict mode. Unknown
// fields and multi-document files are rejected so typos fail fast.
func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	// #nosec G304 -- the config path is provided by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var fileCfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&fileCfg); err != nil {
		if err == io.EOF {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return &fileCfg, nil
}

func mergeFileConfig(cfg *AppConfig, file *FileConfig) error {
	if file.RCPath != "" {
		cfg.RCPath = file.RCPath
	}
	if file.Watch != nil {
		cfg.Watch = *file.Watch
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.Listen != "" {
		cfg.APIListenAddr = file.Listen
	}
	if file.MetricsListen != "" {
		cfg.MetricsAddr = file.MetricsListen
	}

	if err := mergeDuration(&cfg.ReloadInterval, "reload.interval", file.Reload.Interval); err != nil {
		return err
	}
	if file.Reload.Burst != nil {
		cfg.ReloadBurst = *file.Reload.Burst
	}

	if file.History.Backend != "" {
		cfg.History.Backend = file.History.Backend
	}
	if file.History.Path != "" {
		cfg.History.Path = file.History.Path
	}
	if file.History.Keep != nil {
		cfg.History.Keep = *file.History.Keep
	}

	if file.Cache.Backend != "" {
		cfg.Cache.Backend = file.Cache.Backend
	}
	if err := mergeDuration(&cfg.Cache.TTL, "cache.ttl", file.Cache.TTL); err != nil {
		return err
	}
	if file.Cache.Redis.Addr != "" {
		cfg.Cache.Redis.Addr = file.Cache.Redis.Addr
	}
	if file.Cache.Redis.Password != "" {
		cfg.Cache.Redis.Password = file.Cache.Redis.Password
	}
	if file.Cache.Redis.DB != nil {
		cfg.Cache.Redis.DB = *file.Cache.Redis.DB
	}

	if file.RateLimit.Enabled != nil {
		cfg.RateLimit.Enabled = *file.RateLimit.Enabled
	}
	if file.RateLimit.Requests != nil {
		cfg.RateLimit.Requests = *file.RateLimit.Requests
	}
	if err := mergeDuration(&cfg.RateLimit.Window, "rateLimit.window", file.RateLimit.Window); err != nil {
		return err
	}

	if file.Telemetry.Enabled != nil {
		cfg.Telemetry.Enabled = *file.Telemetry.Enabled
	}
	if file.Telemetry.Environment != "" {
		cfg.Telemetry.Environment = file.Telemetry.Environment
	}
	if file.Telemetry.Exporter != "" {
		cfg.Telemetry.Exporter = file.Telemetry.Exporter
	}
	if file.Telemetry.Endpoint != "" {
		cfg.Telemetry.Endpoint = file.Telemetry.Endpoint
	}
	if file.Telemetry.SamplingRate != nil {
		cfg.Telemetry.SamplingRate = *file.Telemetry.SamplingRate
	}

	if err := mergeDuration(&cfg.Server.ReadTimeout, "server.readTimeout", file.Server.ReadTimeout); err != nil {
		return err
	}
	if err := mergeDuration(&cfg.Server.WriteTimeout, "server.writeTimeout", file.Server.WriteTimeout); err != nil {
		return err
	}
	if err := mergeDuration(&cfg.Server.IdleTimeout, "server.idleTimeout", file.Server.IdleTimeout); err != nil {
		return err
	}
	if file.Server.MaxHeaderBytes != nil {
		cfg.Server.MaxHeaderBytes = *file.Server.MaxHeaderBytes
	}
	if err := mergeDuration(&cfg.Server.ShutdownTimeout, "server.shutdownTimeout", file.Server.ShutdownTimeout); err != nil {
		return err
	}

	return nil
}

func mergeDuration(dst *time.Duration, field, raw string) error {
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", field, raw, err)
	}
	*dst = d
	return nil
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.RCPath = l.envString(EnvRC, cfg.RCPath)
	cfg.Watch = l.envBool(EnvWatch, cfg.Watch)
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.APIListenAddr = l.envString(EnvListen, cfg.APIListenAddr)
	cfg.MetricsAddr = l.envString(EnvMetricsListen, cfg.MetricsAddr)
	cfg.ReloadInterval = l.envDuration(EnvReloadInterval, cfg.ReloadInterval)
	cfg.ReloadBurst = l.envInt(EnvReloadBurst, cfg.ReloadBurst)

	cfg.History.Backend = l.envString(EnvHistoryBackend, cfg.History.Backend)
	cfg.History.Path = l.envString(EnvHistoryPath, cfg.History.Path)
	cfg.History.Keep = l.envInt(EnvHistoryKeep, cfg.History.Keep)

	cfg.Cache.Backend = l.envString(EnvCacheBackend, cfg.Cache.Backend)
	cfg.Cache.TTL = l.envDuration(EnvCacheTTL, cfg.Cache.TTL)
	cfg.Cache.Redis.Addr = l.envString(EnvRedisAddr, cfg.Cache.Redis.Addr)
	cfg.Cache.Redis.Password = l.envString(EnvRedisPassword, cfg.Cache.Redis.Password)
	cfg.Cache.Redis.DB = l.envInt(EnvRedisDB, cfg.Cache.Redis.DB)

	cfg.RateLimit.Enabled = l.envBool(EnvRateLimit, cfg.RateLimit.Enabled)
	cfg.RateLimit.Requests = l.envInt(EnvRateRequests, cfg.RateLimit.Requests)
	cfg.RateLimit.Window = l.envDuration(EnvRateWindow, cfg.RateLimit.Window)

	cfg.Telemetry.Enabled = l.envBool(EnvOTELEnabled, cfg.Telemetry.Enabled)
	cfg.Telemetry.Environment = l.envString(EnvOTELEnvironment, cfg.Telemetry.Environment)
	cfg.Telemetry.Exporter = l.envString(EnvOTELExporter, cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString(EnvOTELEndpoint, cfg.Telemetry.Endpoint)
	cfg.Telemetry.SamplingRate = l.envFloat(EnvOTELSampling, cfg.Telemetry.SamplingRate)

	cfg.Server.ReadTimeout = l.envDuration(EnvReadTimeout, cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = l.envDuration(EnvWriteTimeout, cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = l.envDuration(EnvIdleTimeout, cfg.Server.IdleTimeout)
	cfg.Server.MaxHeaderBytes = l.envInt(EnvMaxHeaderBytes, cfg.Server.MaxHeaderBytes)
	cfg.Server.ShutdownTimeout = l.envDuration(EnvShutdownTimeout, cfg.Server.ShutdownTimeout)
}
