// SPDX-License-Identifier: MIT

// lintrcd serves a pylintrc-style configuration file over HTTP: the
// resolved snapshot with provenance, rendered dumps, message state,
// ad-hoc validation, reload control, and the revision history.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssbarnea/lintrc/internal/api"
	"github.com/ssbarnea/lintrc/internal/cache"
	"github.com/ssbarnea/lintrc/internal/config"
	"github.com/ssbarnea/lintrc/internal/daemon"
	"github.com/ssbarnea/lintrc/internal/health"
	"github.com/ssbarnea/lintrc/internal/history"
	"github.com/ssbarnea/lintrc/internal/lintconf"
	"github.com/ssbarnea/lintrc/internal/log"
	"github.com/ssbarnea/lintrc/internal/telemetry"
	"github.com/ssbarnea/lintrc/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to service config file (YAML)")
	rcPath := flag.String("rc", "", "path to the rc file to serve (overrides config file and env)")
	listenAddr := flag.String("listen", "", "API listen address (overrides config file and env)")
	metricsAddr := flag.String("metrics-listen", "", "metrics listen address (overrides config file and env)")
	writeConfig := flag.String("write-config", "", "write the resolved service config to this path and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	// Flags ride the loader's env slot so precedence stays a single
	// path: flags > env > file > defaults.
	bridgeFlag(config.EnvRC, *rcPath)
	bridgeFlag(config.EnvListen, *listenAddr)
	bridgeFlag(config.EnvMetricsListen, *metricsAddr)

	// Load configuration with precedence: flags > ENV > file > defaults
	effectiveConfigPath := strings.TrimSpace(*configPath)
	loader := config.NewLoader(effectiveConfigPath, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		log.Configure(log.Config{Service: "lintrcd"})
		fatalLogger := log.WithComponent("daemon")
		fatalLogger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", effectiveConfigPath).
			Msg("failed to load configuration")
	}

	// The logger configures once; nothing logs before this point.
	log.Configure(log.Config{
		Level:   cfg.LogLevel,
		Service: "lintrcd",
	})
	logger := log.WithComponent("daemon")

	// Create a context that listens for the interrupt signal from the OS
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Log config source
	if effectiveConfigPath != "" {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "file").
			Str("path", effectiveConfigPath).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str("event", "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	if *writeConfig != "" {
		mgr := config.NewManager(*writeConfig)
		if err := mgr.Save(cfg); err != nil {
			logger.Fatal().
				Err(err).
				Str("event", "config.write_failed").
				Str("path", *writeConfig).
				Msg("failed to write service configuration")
		}
		logger.Info().
			Str("event", "config.written").
			Str("path", *writeConfig).
			Msg("service configuration written")
		return
	}

	// -------------------------------------------------------------------------
	// Pre-flight Checks (Fail Fast)
	// -------------------------------------------------------------------------
	if err := health.PerformStartupChecks(ctx, cfg); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "startup.check_failed").
			Msg("Startup checks failed. Please verify configuration and permissions.")
	}
	// -------------------------------------------------------------------------

	serverCfg := config.BuildServerConfig(cfg)

	logger.Info().
		Str("event", "startup").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("build_date", version.Date).
		Str("addr", serverCfg.ListenAddr).
		Msg("starting lintrcd")

	// Log key configuration
	logger.Info().Msgf("→ RC file: %s (watch: %v)", cfg.RCPath, cfg.Watch)
	logger.Info().Msgf("→ History: %s (keep %d)", cfg.History.Backend, cfg.History.Keep)
	logger.Info().Msgf("→ Render cache: %s (ttl %s)", cfg.Cache.Backend, cfg.Cache.TTL)
	if cfg.MetricsAddr != "" {
		logger.Info().Msgf("→ Metrics: %s", cfg.MetricsAddr)
	}
	if cfg.Telemetry.Enabled {
		logger.Info().Msgf("→ Tracing: %s via %s (%s)", cfg.Telemetry.Endpoint, cfg.Telemetry.Exporter, cfg.Telemetry.Environment)
	}
	if !cfg.RateLimit.Enabled {
		logger.Warn().Msg("→ API rate limiting: disabled")
	}

	tracer, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "lintrcd",
		ServiceVersion: version.Version,
		Environment:    cfg.Telemetry.Environment,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "telemetry.init_failed").
			Msg("failed to initialise tracing")
	}

	// Boot snapshot. A broken rc file is not fatal: the daemon starts
	// without a snapshot (the API answers 503, readiness fails) and the
	// watcher or a manual reload picks up the fix.
	resolver := lintconf.NewResolver(cfg.RCPath)
	snap, err := resolver.Resolve()
	if err != nil {
		logger.Error().
			Err(err).
			Str("event", "boot.resolve_failed").
			Str("path", cfg.RCPath).
			Msg("rc file rejected at boot; serving without a snapshot until a reload succeeds")
	}

	watchPath := cfg.RCPath
	if !cfg.Watch {
		watchPath = ""
	}
	holder := lintconf.NewHolder(snap, resolver, watchPath)
	holder.SetReloadLimit(cfg.ReloadInterval, cfg.ReloadBurst)

	store, err := history.Open(cfg.History.Backend, cfg.History.Path)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "history.open_failed").
			Str("backend", cfg.History.Backend).
			Msg("failed to open revision store")
	}
	recorder := history.NewRecorder(store, cfg.History.Keep)
	if snap != nil {
		if _, err := recorder.Record(ctx, "boot", snap.Path(), snap.Fingerprint(), nil, snap.Encode()); err != nil {
			logger.Warn().
				Err(err).
				Str("event", "history.boot_record_failed").
				Msg("failed to record boot revision")
		}
	}

	// Every accepted swap becomes a revision before Reload returns, so
	// the API can hand the caller the revision id it produced.
	holder.OnSwap(func(trigger string, old, next *lintconf.Snapshot) {
		var changed []string
		if old != nil {
			if summary, err := lintconf.Diff(old, next); err == nil {
				changed = summary.Keys()
			}
		}
		if _, err := recorder.Record(context.Background(), trigger, next.Path(), next.Fingerprint(), changed, next.Encode()); err != nil {
			logger.Warn().
				Err(err).
				Str("event", "history.record_failed").
				Str("trigger", trigger).
				Msg("failed to record revision")
		}
	})

	renderCache, err := cache.New(cfg.Cache.Backend, cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "cache.init_failed").
			Str("backend", cfg.Cache.Backend).
			Msg("failed to initialise render cache")
	}

	hm := health.NewManager(version.Version)
	hm.RegisterChecker(health.NewFileChecker("rcfile", cfg.RCPath))
	hm.RegisterChecker(health.NewSnapshotChecker(func() health.SnapshotStatus {
		s := holder.Current()
		if s == nil {
			return health.SnapshotStatus{}
		}
		return health.SnapshotStatus{
			Loaded:      true,
			Fingerprint: s.Fingerprint(),
			LoadedAt:    s.LoadedAt(),
			Warnings:    len(s.Warnings()),
		}
	}))
	hm.RegisterChecker(health.NewProbeChecker("history", func(ctx context.Context) error {
		_, err := store.Latest(ctx)
		return err
	}))
	if rc, ok := renderCache.(*cache.RedisCache); ok {
		hm.RegisterChecker(health.NewProbeChecker("redis", rc.HealthCheck))
	}

	tracingService := ""
	if cfg.Telemetry.Enabled {
		tracingService = "lintrcd"
	}

	srv := api.NewServer(api.Config{
		Version:           version.Version,
		Source:            holder,
		Store:             store,
		Cache:             renderCache,
		CacheTTL:          cfg.Cache.TTL,
		Health:            hm,
		TracingService:    tracingService,
		RateLimitEnabled:  cfg.RateLimit.Enabled,
		RateLimitRequests: cfg.RateLimit.Requests,
		RateLimitWindow:   cfg.RateLimit.Window,
	})

	deps := daemon.Deps{
		Logger:         logger,
		APIHandler:     srv.Router(),
		MetricsHandler: promhttp.Handler(),
		MetricsAddr:    strings.TrimSpace(cfg.MetricsAddr),
	}

	mgr, err := daemon.NewManager(serverCfg, deps)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "manager.creation.failed").
			Msg("failed to create daemon manager")
	}

	// Hooks run LIFO: the watcher stops first, the tracer flushes last.
	mgr.RegisterShutdownHook("telemetry", tracer.Shutdown)
	mgr.RegisterShutdownHook("history-store", func(context.Context) error {
		return store.Close()
	})
	mgr.RegisterShutdownHook("render-cache", func(context.Context) error {
		if closer, ok := renderCache.(io.Closer); ok {
			return closer.Close()
		}
		return nil
	})
	mgr.RegisterShutdownHook("rc-watcher", func(context.Context) error {
		holder.Stop()
		return nil
	})

	// Start daemon app (blocks until shutdown)
	app := daemon.NewApp(logger, mgr, holder, renderCache)
	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "manager.failed").
			Msg("daemon app failed")
	}

	logger.Info().Msg("server exiting")
}

// bridgeFlag maps a set flag onto its loader environment key. Empty
// values leave the environment alone.
func bridgeFlag(envKey, value string) {
	if strings.TrimSpace(value) != "" {
		_ = os.Setenv(envKey, value)
	}
}
