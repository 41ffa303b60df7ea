// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"sync"

	"github.com/ssbarnea/lintrc/internal/metrics"
)

// memoryCapacity bounds the ring so a long-running daemon without
// retention pruning cannot grow without limit.
const memoryCapacity = 512

// MemoryStore keeps revisions in a bounded in-memory ring, oldest
// first. It is the default backend and the one used in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	revs []*Revision
	byID map[string]*Revision
	seq  uint64
}

// NewMemoryStore creates an empty in-memory revision store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*Revision)}
}

func (s *MemoryStore) Append(ctx context.Context, rev *Revision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	rev.Seq = s.seq

	// Copy to avoid a race if the caller mutates rev later.
	clone := rev.clone()
	s.revs = append(s.revs, clone)
	s.byID[clone.ID] = clone

	if len(s.revs) > memoryCapacity {
		drop := s.revs[0]
		delete(s.byID, drop.ID)
		s.revs = s.revs[1:]
	}

	metrics.RecordRevisionAppend("memory", nil)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if rev, ok := s.byID[id]; ok {
		return rev.clone(), nil
	}
	return nil, nil
}

func (s *MemoryStore) Latest(ctx context.Context) (*Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.revs) == 0 {
		return nil, nil
	}
	return s.revs[len(s.revs)-1].clone(), nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Revision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.revs)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Revision, 0, n)
	for i := len(s.revs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.revs[i].clone())
	}
	return out, nil
}

func (s *MemoryStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	excess := len(s.revs) - keep
	if excess <= 0 {
		return 0, nil
	}
	for _, drop := range s.revs[:excess] {
		delete(s.byID, drop.ID)
	}
	s.revs = append([]*Revision(nil), s.revs[excess:]...)

	metrics.RevisionsPruned.WithLabelValues("memory").Add(float64(excess))
	return excess, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.revs = nil
	s.byID = nil
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
