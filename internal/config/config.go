// SPDX-License-Identifier: MIT

// Package config loads and validates the lintrcd service configuration.
//
// Precedence is ENV > file > defaults. The LINTRCD_* environment keys
// configure the daemon itself; they are unrelated to the LINTRC_* keys
// that override individual rc options (see internal/lintconf).
package config

import "time"

// AppConfig is the fully resolved daemon configuration.
type AppConfig struct {
	// Version is stamped from the binary at load time.
	Version string

	// RCPath is the rc file served and watched by the daemon.
	RCPath string

	// Watch enables reloading when the rc file changes on disk.
	Watch bool

	// ReloadInterval and ReloadBurst bound how often reloads may run,
	// regardless of trigger (watcher, signal, API).
	ReloadInterval time.Duration
	ReloadBurst    int

	LogLevel string

	// APIListenAddr is the address of the main HTTP listener.
	APIListenAddr string

	// MetricsAddr is the address of the Prometheus listener. Empty
	// disables the metrics server.
	MetricsAddr string

	History   HistoryConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
	Server    ServerRuntimeConfig
}

// HistoryConfig selects the revision store backend.
type HistoryConfig struct {
	// Backend is one of "memory", "badger" or "sqlite".
	Backend string

	// Path is the store location; required for badger and sqlite.
	Path string

	// Keep bounds how many revisions are retained. Zero keeps all.
	Keep int
}

// CacheConfig selects the render cache backend.
type CacheConfig struct {
	// Backend is one of "memory", "redis" or "none".
	Backend string

	// TTL is how long rendered documents stay cached.
	TTL time.Duration

	Redis RedisConfig
}

// RedisConfig holds connection settings for the redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RateLimitConfig bounds per-client request rates on the API listener.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// TelemetryConfig holds OpenTelemetry tracing settings.
type TelemetryConfig struct {
	Enabled      bool
	Environment  string
	Exporter     string // "grpc" or "http"
	Endpoint     string
	SamplingRate float64
}

// ServerRuntimeConfig holds HTTP server timeouts and limits.
type ServerRuntimeConfig struct {
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	ShutdownTimeout time.Duration
}

const (
	defaultAPIListenAddr  = ":8077"
	defaultReloadInterval = time.Second
	defaultReloadBurst    = 3
	defaultHistoryKeep    = 50
	defaultCacheTTL       = 5 * time.Minute

	defaultRateLimitRequests = 600
	defaultRateLimitWindow   = time.Minute

	defaultOTLPEndpoint = "localhost:4317"

	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultMaxHeaderBytes  = 1 << 20
	defaultShutdownTimeout = 15 * time.Second
)

func defaultConfig() AppConfig {
	return AppConfig{
		Watch:          true,
		ReloadInterval: defaultReloadInterval,
		ReloadBurst:    defaultReloadBurst,
		LogLevel:       "info",
		APIListenAddr:  defaultAPIListenAddr,
		History: HistoryConfig{
			Backend: "memory",
			Keep:    defaultHistoryKeep,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     defaultCacheTTL,
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: defaultRateLimitRequests,
			Window:   defaultRateLimitWindow,
		},
		Telemetry: TelemetryConfig{
			Environment:  "development",
			Exporter:     "grpc",
			Endpoint:     defaultOTLPEndpoint,
			SamplingRate: 1.0,
		},
		Server: ServerRuntimeConfig{
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			MaxHeaderBytes:  defaultMaxHeaderBytes,
			ShutdownTimeout: defaultShutdownTimeout,
		},
	}
}

// FileConfig mirrors the YAML service configuration file. Durations are
// written as Go duration strings ("30s", "5m"). Optional booleans and
// integers use pointers so an explicit false or zero survives merging.
type FileConfig struct {
	RCPath        string `yaml:"rcPath,omitempty"`
	Watch         *bool  `yaml:"watch,omitempty"`
	LogLevel      string `yaml:"logLevel,omitempty"`
	Listen        string `yaml:"listen,omitempty"`
	MetricsListen string `yaml:"metricsListen,omitempty"`

	Reload    ReloadFileConfig    `yaml:"reload,omitempty"`
	History   HistoryFileConfig   `yaml:"history,omitempty"`
	Cache     CacheFileConfig     `yaml:"cache,omitempty"`
	RateLimit RateLimitFileConfig `yaml:"rateLimit,omitempty"`
	Telemetry TelemetryFileConfig `yaml:"telemetry,omitempty"`
	Server    ServerFileConfig    `yaml:"server,omitempty"`
}

// ReloadFileConfig holds reload throttling settings in the YAML file.
type ReloadFileConfig struct {
	Interval string `yaml:"interval,omitempty"`
	Burst    *int   `yaml:"burst,omitempty"`
}

// HistoryFileConfig holds revision store settings in the YAML file.
type HistoryFileConfig struct {
	Backend string `yaml:"backend,omitempty"`
	Path    string `yaml:"path,omitempty"`
	Keep    *int   `yaml:"keep,omitempty"`
}

// CacheFileConfig holds render cache settings in the YAML file.
type CacheFileConfig struct {
	Backend string          `yaml:"backend,omitempty"`
	TTL     string          `yaml:"ttl,omitempty"`
	Redis   RedisFileConfig `yaml:"redis,omitempty"`
}

// RedisFileConfig holds redis connection settings in the YAML file.
type RedisFileConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       *int   `yaml:"db,omitempty"`
}

// RateLimitFileConfig holds API rate limit settings in the YAML file.
type RateLimitFileConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Requests *int   `yaml:"requests,omitempty"`
	Window   string `yaml:"window,omitempty"`
}

// TelemetryFileConfig holds tracing settings in the YAML file.
type TelemetryFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Environment  string   `yaml:"environment,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
}

// ServerFileConfig holds HTTP server settings in the YAML file.
type ServerFileConfig struct {
	ReadTimeout     string `yaml:"readTimeout,omitempty"`
	WriteTimeout    string `yaml:"writeTimeout,omitempty"`
	IdleTimeout     string `yaml:"idleTimeout,omitempty"`
	MaxHeaderBytes  *int   `yaml:"maxHeaderBytes,omitempty"`
	ShutdownTimeout string `yaml:"shutdownTimeout,omitempty"`
}
