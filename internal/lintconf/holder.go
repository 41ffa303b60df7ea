// SPDX-License-Identifier: MIT

package lintconf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/ssbarnea/lintrc/internal/log"
	"github.com/ssbarnea/lintrc/internal/metrics"
)

// ErrReloadThrottled is returned when reloads arrive faster than the
// holder's rate limit allows. The previous snapshot stays active.
var ErrReloadThrottled = errors.New("reload throttled")

const debounceDuration = 500 * time.Millisecond

// Holder holds the current snapshot with atomic reloading. It provides
// thread-safe access and supports hot reloading from the file watcher,
// SIGHUP, or the API. A failed reload keeps the previous snapshot.
type Holder struct {
	mu       sync.RWMutex
	current  *Snapshot
	resolver *Resolver
	rcPath   string
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger

	group   singleflight.Group
	limiter *rate.Limiter

	listenerMu sync.RWMutex
	listeners  []chan<- *Snapshot
	swapHooks  []func(trigger string, old, next *Snapshot)
}

// NewHolder creates a holder seeded with an initial snapshot. Reloads
// are limited to one per second with a small burst; file watchers and
// API calls beyond that are dropped, not queued.
func NewHolder(initial *Snapshot, resolver *Resolver, rcPath string) *Holder {
	return &Holder{
		current:  initial,
		resolver: resolver,
		rcPath:   rcPath,
		logger:   log.WithComponent("lintconf"),
		limiter:  rate.NewLimiter(rate.Every(time.Second), 3),
	}
}

// SetReloadLimit replaces the reload token bucket, limiting reloads to
// one per interval with the given burst. Call during wiring, before
// StartWatcher or any concurrent Reload.
func (h *Holder) SetReloadLimit(interval time.Duration, burst int) {
	if interval <= 0 || burst <= 0 {
		return
	}
	h.limiter = rate.NewLimiter(rate.Every(interval), burst)
}

// Current returns the current snapshot (thread-safe read).
func (h *Holder) Current() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload re-resolves the rc file and swaps the snapshot atomically.
// Concurrent calls collapse into one resolution; over-frequent calls
// return ErrReloadThrottled. The trigger names who asked (boot, watch,
// signal, api, manual) and only labels logs and metrics.
func (h *Holder) Reload(ctx context.Context, trigger string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !h.limiter.Allow() {
		metrics.RecordReload(trigger, ErrReloadThrottled)
		return nil, ErrReloadThrottled
	}

	v, err, _ := h.group.Do("reload", func() (any, error) {
		return h.reload(trigger)
	})
	if err != nil {
		return nil, err
	}
	snap, ok := v.(*Snapshot)
	if !ok {
		return nil, fmt.Errorf("unexpected reload result %T", v)
	}
	return snap, nil
}

func (h *Holder) reload(trigger string) (*Snapshot, error) {
	h.logger.Info().
		Str("event", "lintconf.reload_start").
		Str("trigger", trigger).
		Msg("reloading configuration")

	start := time.Now()
	snap, err := h.resolver.Resolve()
	metrics.ReloadDuration.Observe(time.Since(start).Seconds())
	metrics.RecordReload(trigger, err)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("event", "lintconf.reload_failed").
			Str("trigger", trigger).
			Msg("keeping previous configuration")
		return nil, err
	}

	h.mu.Lock()
	old := h.current
	h.current = snap
	h.mu.Unlock()
	metrics.LastReloadTimestamp.SetToCurrentTime()

	h.runSwapHooks(trigger, old, snap)
	h.notifyListeners(snap)
	h.logChanges(old, snap)

	h.logger.Info().
		Str("event", "lintconf.reload_success").
		Str(log.FieldFingerprint, snap.Fingerprint()).
		Msg("configuration reloaded")

	return snap, nil
}

// StartWatcher starts watching the rc file for changes. With no rc path
// this is a no-op (defaults and environment only).
func (h *Holder) StartWatcher(ctx context.Context) error {
	if h.rcPath == "" {
		h.logger.Info().
			Str("event", "lintconf.watcher_disabled").
			Msg("no rc file configured, watcher disabled")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	if err := watcher.Add(h.rcPath); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch rc file: %w", err)
	}

	h.logger.Info().
		Str("event", "lintconf.watcher_started").
		Str(log.FieldPath, h.rcPath).
		Msg("watching rc file for changes")

	go h.watchLoop(ctx)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context) {
	// Editors fire bursts of events per save; debounce them into one reload.
	var debounce *time.Timer

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str("event", "lintconf.watcher_stopped").Msg("rc watcher stopped")
			if h.watcher != nil {
				_ = h.watcher.Close()
			}
			return

		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			metrics.WatchEventsTotal.WithLabelValues(event.Op.String()).Inc()

			// Write and Create cover direct writes plus the
			// rename-into-place editors and renameio do.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				h.logger.Debug().
					Str("event", "lintconf.file_changed").
					Str("op", event.Op.String()).
					Msg("rc file changed")

				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDuration, func() {
					if _, err := h.Reload(ctx, "watch"); err != nil && !errors.Is(err, ErrReloadThrottled) {
						h.logger.Error().
							Err(err).
							Str("event", "lintconf.auto_reload_failed").
							Msg("automatic reload failed")
					}
				})
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().
				Err(err).
				Str("event", "lintconf.watcher_error").
				Msg("rc watcher error")
		}
	}
}

// Stop stops the rc watcher (if running).
func (h *Holder) Stop() {
	if h.watcher != nil {
		_ = h.watcher.Close()
	}
}

// RegisterListener registers a channel to receive each new snapshot after
// a successful reload. Sends are non-blocking; a full channel is skipped.
// The caller owns the channel.
func (h *Holder) RegisterListener(ch chan<- *Snapshot) {
	h.listenerMu.Lock()
	defer h.listenerMu.Unlock()
	h.listeners = append(h.listeners, ch)
}

// OnSwap registers a hook invoked synchronously after each successful
// swap, before listeners are notified. Hooks run on the reloading
// goroutine and never overlap; by the time Reload returns, every hook
// has seen the new snapshot. Keep them fast.
func (h *Holder) OnSwap(fn func(trigger string, old, next *Snapshot)) {
	h.listenerMu.Lock()
	defer h.listenerMu.Unlock()
	h.swapHooks = append(h.swapHooks, fn)
}

func (h *Holder) runSwapHooks(trigger string, old, next *Snapshot) {
	h.listenerMu.RLock()
	hooks := h.swapHooks
	h.listenerMu.RUnlock()

	for _, fn := range hooks {
		fn(trigger, old, next)
	}
}

func (h *Holder) notifyListeners(snap *Snapshot) {
	h.listenerMu.RLock()
	defer h.listenerMu.RUnlock()

	for _, ch := range h.listeners {
		select {
		case ch <- snap:
		default:
			h.logger.Warn().
				Str("event", "lintconf.listener_skip").
				Msg("skipped notifying listener (channel full)")
		}
	}
}

// logChanges logs the option-level differences after a reload.
func (h *Holder) logChanges(old, next *Snapshot) {
	if old == nil || next == nil {
		return
	}
	summary, err := Diff(old, next)
	if err != nil || summary.Empty() {
		return
	}
	for _, c := range summary.Changes {
		h.logger.Info().
			Str("event", "lintconf.option_changed").
			Str(log.FieldSection, c.Section).
			Str(log.FieldOption, c.Option).
			Str("old", c.Old).
			Str("new", c.New).
			Str("origin", string(c.NewOrigin)).
			Msg("option changed")
	}
}
