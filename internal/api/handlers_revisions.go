// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssbarnea/lintrc/internal/history"
)

const (
	defaultRevisionPage = 20
	maxRevisionPage     = 200
)

type revisionSummary struct {
	ID          string    `json:"id"`
	Seq         uint64    `json:"seq"`
	CreatedAt   time.Time `json:"createdAt"`
	Source      string    `json:"source"`
	Path        string    `json:"path,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	Changed     []string  `json:"changed,omitempty"`
}

type revisionDetail struct {
	revisionSummary
	Text string `json:"text"`
}

type revisionsResponse struct {
	Revisions []revisionSummary `json:"revisions"`
	Count     int               `json:"count"`
}

// handleRevisions lists recorded revisions newest-first. The list
// omits the rc text; fetch a single revision for the full payload.
func (s *Server) handleRevisions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeServiceUnavailableMsg(w, "revision history disabled")
		return
	}

	limit := defaultRevisionPage
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, fmt.Errorf("invalid limit %q", raw))
			return
		}
		if n > maxRevisionPage {
			n = maxRevisionPage
		}
		limit = n
	}

	revs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeServiceUnavailable(w, err)
		return
	}

	out := make([]revisionSummary, 0, len(revs))
	for _, rev := range revs {
		out = append(out, summarizeRevision(rev))
	}
	writeJSON(w, http.StatusOK, revisionsResponse{Revisions: out, Count: len(out)})
}

// handleRevision fetches one revision by ID, including the full rc text
// that was in effect.
func (s *Server) handleRevision(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeServiceUnavailableMsg(w, "revision history disabled")
		return
	}

	id := chi.URLParam(r, "id")
	rev, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeServiceUnavailable(w, err)
		return
	}
	if rev == nil {
		writeNotFound(w)
		return
	}

	writeJSON(w, http.StatusOK, revisionDetail{
		revisionSummary: summarizeRevision(rev),
		Text:            string(rev.Text),
	})
}

func summarizeRevision(rev *history.Revision) revisionSummary {
	return revisionSummary{
		ID:          rev.ID,
		Seq:         rev.Seq,
		CreatedAt:   rev.CreatedAt,
		Source:      rev.Source,
		Path:        rev.Path,
		Fingerprint: rev.Fingerprint,
		Changed:     rev.Changed,
	}
}
