// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/ssbarnea/lintrc/internal/metrics"
)

// Key layout:
// - revisions: "rev:<seq>" (JSON), seq zero-padded so key order is
//   append order
// - id index:  "id:<uuid>" (value = the revision key)
// - counter:   "meta:seq" (big-endian uint64)
const (
	revPrefix = "rev:"
	idPrefix  = "id:"
	seqKey    = "meta:seq"
)

func revKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", revPrefix, seq))
}

// BadgerStore is an embedded durable revision store.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a badger-backed store at path.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("history: open badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Close() error { return s.db.Close() }

func (s *BadgerStore) Append(ctx context.Context, rev *Revision) (err error) {
	defer func() { metrics.RecordRevisionAppend("badger", err) }()

	err = s.db.Update(func(txn *badger.Txn) error {
		next := uint64(1)
		item, err := txn.Get([]byte(seqKey))
		switch {
		case err == nil:
			if err := item.Value(func(val []byte) error {
				next = binary.BigEndian.Uint64(val) + 1
				return nil
			}); err != nil {
				return err
			}
		case err != badger.ErrKeyNotFound:
			return err
		}

		rev.Seq = next
		buf, err := json.Marshal(rev)
		if err != nil {
			return err
		}

		var seqBuf [8]byte
		binary.BigEndian.PutUint64(seqBuf[:], next)
		if err := txn.Set([]byte(seqKey), seqBuf[:]); err != nil {
			return err
		}
		key := revKey(next)
		if err := txn.Set(key, buf); err != nil {
			return err
		}
		return txn.Set([]byte(idPrefix+rev.ID), key)
	})
	return err
}

func (s *BadgerStore) Get(ctx context.Context, id string) (*Revision, error) {
	var out *Revision
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(idPrefix + id))
		if err != nil {
			return err
		}
		var key []byte
		if err := item.Value(func(val []byte) error {
			key = append([]byte(nil), val...)
			return nil
		}); err != nil {
			return err
		}
		item, err = txn.Get(key)
		if err != nil {
			return err
		}
		out, err = decodeRevision(item)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) Latest(ctx context.Context) (*Revision, error) {
	var out *Revision
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()
		it.Seek(revSeekKey())
		if !it.ValidForPrefix([]byte(revPrefix)) {
			return nil
		}
		rev, err := decodeRevision(it.Item())
		if err != nil {
			return err
		}
		out = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) List(ctx context.Context, limit int) ([]*Revision, error) {
	var list []*Revision
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(revSeekKey()); it.ValidForPrefix([]byte(revPrefix)); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if limit > 0 && len(list) >= limit {
				return nil
			}
			rev, err := decodeRevision(it.Item())
			if err != nil {
				continue
			}
			list = append(list, rev)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *BadgerStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	var doomed [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()
		seen := 0
		for it.Seek(revSeekKey()); it.ValidForPrefix([]byte(revPrefix)); it.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			seen++
			if seen <= keep {
				continue
			}
			item := it.Item()
			rev, err := decodeRevision(item)
			if err != nil {
				continue
			}
			doomed = append(doomed, item.KeyCopy(nil), []byte(idPrefix+rev.ID))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if len(doomed) == 0 {
		return 0, nil
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range doomed {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	n := len(doomed) / 2
	metrics.RevisionsPruned.WithLabelValues("badger").Add(float64(n))
	return n, nil
}

// revSeekKey is the reverse-iteration start: one byte past every
// revision key.
func revSeekKey() []byte {
	return append([]byte(revPrefix), 0xff)
}

func decodeRevision(item *badger.Item) (*Revision, error) {
	var rev Revision
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &rev)
	})
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

var _ Store = (*BadgerStore)(nil)
