// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ssbarnea/lintrc/internal/lintconf"
	"github.com/ssbarnea/lintrc/internal/log"
)

type reloadResponse struct {
	Fingerprint string    `json:"fingerprint"`
	LoadedAt    time.Time `json:"loadedAt"`
	Changed     []string  `json:"changed"`
	Unchanged   bool      `json:"unchanged"`
	RevisionID  string    `json:"revisionId,omitempty"`
}

// handleReload triggers a resolve of the rc file. Success answers with
// the change summary and the recorded revision; a rejected file keeps
// the previous snapshot and answers 409 so callers know nothing moved.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	old := s.source.Current()

	snap, err := s.source.Reload(ctx, "api")
	if err != nil {
		switch {
		case errors.Is(err, lintconf.ErrReloadThrottled):
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":  "reload throttled",
				"detail": "reloads are rate limited; retry shortly",
			})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeServiceUnavailable(w, err)
		default:
			writeConflict(w, err)
		}
		return
	}

	resp := reloadResponse{
		Fingerprint: snap.Fingerprint(),
		LoadedAt:    snap.LoadedAt(),
		Changed:     []string{},
	}
	if old != nil {
		resp.Unchanged = old.Fingerprint() == snap.Fingerprint()
		if summary, derr := lintconf.Diff(old, snap); derr == nil {
			resp.Changed = summary.Keys()
		}
	}

	// The swap hook records the revision before Reload returns, so the
	// newest matching revision is the one this request produced.
	if s.store != nil {
		rev, rerr := s.store.Latest(ctx)
		switch {
		case rerr != nil:
			logger := log.WithComponentFromContext(ctx, "api")
			logger.Warn().
				Str("event", "api.revision_lookup_failed").
				Err(rerr).
				Msg("reload succeeded but revision lookup failed")
		case rev != nil && rev.Fingerprint == snap.Fingerprint():
			resp.RevisionID = rev.ID
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
