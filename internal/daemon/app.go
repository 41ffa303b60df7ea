// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ssbarnea/lintrc/internal/cache"
	"github.com/ssbarnea/lintrc/internal/lintconf"
)

// App owns the long-lived runtime lifecycle (rc watcher, reload wiring,
// cache invalidation) and delegates server management to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	holder       *lintconf.Holder
	renderCache  cache.Cache
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator.
func NewApp(logger zerolog.Logger, manager Manager, holder *lintconf.Holder, renderCache cache.Cache) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		holder:       holder,
		renderCache:  renderCache,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned background subsystems and blocks until ctx is
// cancelled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	// The rc watcher is best-effort: startup must not fail when the
	// file cannot be watched (missing file, exotic filesystem).
	if a.holder != nil {
		if err := a.holder.StartWatcher(ctx); err != nil {
			a.logger.Warn().Err(err).Str("event", "daemon.watcher_start_failed").Msg("failed to start rc watcher")
		}
	}

	// Render-cache invalidation on every snapshot swap. Stale entries
	// are keyed by the old fingerprint and thus unreachable; clearing
	// just returns the memory early.
	if a.holder != nil && a.renderCache != nil {
		swapCh := make(chan *lintconf.Snapshot, 1)
		a.holder.RegisterListener(swapCh)

		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case snap := <-swapCh:
					if snap != nil {
						a.renderCache.Clear()
						a.logger.Debug().
							Str("event", "daemon.render_cache_cleared").
							Str("fingerprint", snap.Fingerprint()).
							Msg("render cache invalidated after snapshot swap")
					}
				}
			}
		})
	}

	// SIGHUP trigger for manual reload.
	if a.holder != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str("event", "daemon.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, reloading rc file")

					if _, err := a.holder.Reload(context.Background(), "signal"); err != nil {
						a.logger.Warn().
							Err(err).
							Str("event", "daemon.reload_failed").
							Msg("rc reload failed")
					}
				}
			}
		})
	}

	// Main server lifecycle.
	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}
