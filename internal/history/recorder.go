// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ssbarnea/lintrc/internal/log"
)

// Recorder appends revisions for accepted snapshots and applies the
// retention policy. A state whose fingerprint matches the latest stored
// revision is not recorded again, so touch-without-change reloads leave
// the log alone.
type Recorder struct {
	store  Store
	keep   int
	logger zerolog.Logger
}

// NewRecorder wraps store. keep > 0 prunes the log down to that many
// revisions after each append; keep <= 0 disables pruning.
func NewRecorder(store Store, keep int) *Recorder {
	return &Recorder{
		store:  store,
		keep:   keep,
		logger: log.WithComponent("history"),
	}
}

// Record appends one revision unless the fingerprint is already the
// newest stored state. Returns the appended revision, or nil when
// nothing was recorded.
func (r *Recorder) Record(ctx context.Context, source, path, fingerprint string, changed []string, text []byte) (*Revision, error) {
	latest, err := r.store.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("history: read latest revision: %w", err)
	}
	if latest != nil && latest.Fingerprint == fingerprint {
		r.logger.Debug().
			Str("event", "history.revision_unchanged").
			Str("fingerprint", fingerprint).
			Msg("fingerprint matches latest revision, nothing recorded")
		return nil, nil
	}

	rev := NewRevision(source, path, fingerprint, changed, text)
	if err := r.store.Append(ctx, rev); err != nil {
		return nil, fmt.Errorf("history: append revision: %w", err)
	}
	r.logger.Info().
		Str("event", "history.revision_appended").
		Str("revision_id", rev.ID).
		Uint64("seq", rev.Seq).
		Str("source", source).
		Int("changed_options", len(changed)).
		Msg("configuration revision recorded")

	if r.keep > 0 {
		n, err := r.store.Prune(ctx, r.keep)
		if err != nil {
			r.logger.Warn().
				Err(err).
				Str("event", "history.prune_failed").
				Msg("retention pruning failed")
		} else if n > 0 {
			r.logger.Debug().
				Str("event", "history.revisions_pruned").
				Int("pruned", n).
				Int("keep", r.keep).
				Msg("old revisions pruned")
		}
	}
	return rev, nil
}
