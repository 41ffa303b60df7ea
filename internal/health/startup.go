// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ssbarnea/lintrc/internal/config"
	"github.com/ssbarnea/lintrc/internal/log"
)

// PerformStartupChecks validates the environment before the server
// starts. It fails fast on problems that would only surface later as
// confusing runtime errors.
func PerformStartupChecks(ctx context.Context, cfg config.AppConfig) error {
	logger := log.WithComponent("startup-check")
	logger.Info().Msg("Running pre-flight startup checks...")

	if err := checkListenAddr(logger, "API", cfg.APIListenAddr); err != nil {
		return fmt.Errorf("listen address check failed: %w", err)
	}
	if cfg.MetricsAddr != "" {
		if err := checkListenAddr(logger, "metrics", cfg.MetricsAddr); err != nil {
			return fmt.Errorf("listen address check failed: %w", err)
		}
	}

	if err := checkRCFile(logger, cfg.RCPath); err != nil {
		return fmt.Errorf("rc file check failed: %w", err)
	}

	if err := checkHistoryPath(logger, cfg.History); err != nil {
		return fmt.Errorf("history store check failed: %w", err)
	}

	logger.Info().Msg("✅ All startup checks passed")
	return nil
}

func checkListenAddr(logger zerolog.Logger, label, addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid %s listen address %q: %w", label, addr, err)
	}
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 0 || portNum > 65535 {
		return fmt.Errorf("invalid %s listen port %q in %q", label, port, addr)
	}
	logger.Info().Str("addr", addr).Msgf("✓ %s listen address is valid", label)
	return nil
}

// checkRCFile tolerates a missing rc file: the daemon starts in
// defaults-only mode and picks the file up once it appears. An
// unreadable or directory path is fatal.
func checkRCFile(logger zerolog.Logger, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("rc file not found; serving defaults and environment only")
			return nil
		}
		return fmt.Errorf("cannot access rc file %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("rc path is a directory: %s", path)
	}
	if err := checkFileReadable(path); err != nil {
		return fmt.Errorf("rc file not readable: %w", err)
	}
	logger.Info().Str("path", path).Msg("✓ rc file is readable")
	return nil
}

// checkHistoryPath ensures the revision store location exists and is
// writable for the disk-backed backends.
func checkHistoryPath(logger zerolog.Logger, cfg config.HistoryConfig) error {
	switch cfg.Backend {
	case "badger":
		// Badger owns a directory.
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return fmt.Errorf("cannot create badger directory %s: %w", cfg.Path, err)
		}
		if err := checkDirWritable(cfg.Path); err != nil {
			return err
		}
	case "sqlite":
		// SQLite owns a file; its parent directory must be writable.
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("cannot create sqlite directory %s: %w", dir, err)
		}
		if err := checkDirWritable(dir); err != nil {
			return err
		}
	default:
		return nil
	}

	logger.Info().Str("backend", cfg.Backend).Str("path", cfg.Path).Msg("✓ History store location is writable")
	return nil
}

func checkDirWritable(path string) error {
	testFile := filepath.Join(path, ".write_test")
	if err := os.WriteFile(testFile, []byte("ok"), 0o600); err != nil {
		return fmt.Errorf("directory is not writable: %s (error: %v)", path, err)
	}
	_ = os.Remove(testFile)
	return nil
}

func checkFileReadable(path string) error {
	f, err := os.Open(path) // #nosec G304 -- path comes from operator config; verifying readability is expected
	if err != nil {
		return err
	}
	return f.Close()
}
