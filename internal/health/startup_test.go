// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssbarnea/lintrc/internal/config"
)

func startupConfig(t *testing.T) config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	rc := filepath.Join(dir, "pylintrc")
	require.NoError(t, os.WriteFile(rc, []byte("[MASTER]\njobs=4\n"), 0o600))

	return config.AppConfig{
		RCPath:        rc,
		APIListenAddr: ":8077",
		History:       config.HistoryConfig{Backend: "memory"},
	}
}

func TestPerformStartupChecks_Valid(t *testing.T) {
	cfg := startupConfig(t)
	assert.NoError(t, PerformStartupChecks(context.Background(), cfg))
}

func TestPerformStartupChecks_MissingRCFileIsTolerated(t *testing.T) {
	cfg := startupConfig(t)
	cfg.RCPath = filepath.Join(t.TempDir(), "absent")
	assert.NoError(t, PerformStartupChecks(context.Background(), cfg))
}

func TestPerformStartupChecks_RCPathIsDirectory(t *testing.T) {
	cfg := startupConfig(t)
	cfg.RCPath = t.TempDir()

	err := PerformStartupChecks(context.Background(), cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestPerformStartupChecks_BadListenAddr(t *testing.T) {
	cfg := startupConfig(t)
	cfg.APIListenAddr = "no-port"

	err := PerformStartupChecks(context.Background(), cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "listen address")
}

func TestPerformStartupChecks_CreatesSqliteDir(t *testing.T) {
	cfg := startupConfig(t)
	dir := filepath.Join(t.TempDir(), "state")
	cfg.History = config.HistoryConfig{
		Backend: "sqlite",
		Path:    filepath.Join(dir, "revisions.db"),
	}

	require.NoError(t, PerformStartupChecks(context.Background(), cfg))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
