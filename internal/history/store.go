// SPDX-License-Identifier: MIT

// Package history persists accepted configuration states as an
// append-only revision log. Every snapshot the holder swaps in can be
// recorded here and listed, fetched, or pruned later. Three backends
// are available behind Open: an in-memory ring for tests and
// single-shot runs, badger for embedded durable storage, and sqlite.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Revision is one accepted configuration state.
type Revision struct {
	ID          string    `json:"id"`
	Seq         uint64    `json:"seq"`
	CreatedAt   time.Time `json:"createdAt"`
	Source      string    `json:"source"`
	Path        string    `json:"path,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	Changed     []string  `json:"changed,omitempty"`
	Text        []byte    `json:"text"`
}

// NewRevision builds an unsequenced revision with a fresh ID. Seq is
// assigned by the store on Append.
func NewRevision(source, path, fingerprint string, changed []string, text []byte) *Revision {
	return &Revision{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		Source:      source,
		Path:        path,
		Fingerprint: fingerprint,
		Changed:     append([]string(nil), changed...),
		Text:        append([]byte(nil), text...),
	}
}

func (r *Revision) clone() *Revision {
	out := *r
	out.Changed = append([]string(nil), r.Changed...)
	out.Text = append([]byte(nil), r.Text...)
	return &out
}

// Store persists revisions. Append assigns Seq (monotonic, starting at
// 1) before persisting. Get and Latest return (nil, nil) when no
// matching revision exists.
type Store interface {
	Append(ctx context.Context, rev *Revision) error
	Get(ctx context.Context, id string) (*Revision, error)
	Latest(ctx context.Context) (*Revision, error)
	// List returns revisions newest-first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*Revision, error)
	// Prune deletes all but the newest keep revisions and reports how
	// many were removed.
	Prune(ctx context.Context, keep int) (int, error)
	Close() error
}
