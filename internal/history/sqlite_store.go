// SPDX-License-Identifier: MIT

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go driver

	"github.com/ssbarnea/lintrc/internal/metrics"
)

const (
	schemaVersion = 1
	busyTimeout   = 5 * time.Second
)

// SqliteStore is a sqlite-backed revision store.
type SqliteStore struct {
	db *sql.DB
}

// NewSqliteStore opens (or creates) the revision database at dbPath.
// The pragmas ride in the DSN so they apply to every connection in the
// pool: WAL journal, busy timeout, NORMAL sync, foreign keys on.
func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)",
		dbPath, busyTimeout.Milliseconds())

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(1 * time.Hour)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: sqlite ping failed: %w", err)
	}

	s := &SqliteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migration failed: %w", err)
	}
	return s, nil
}

func (s *SqliteStore) migrate() error {
	var currentVersion int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&currentVersion); err != nil {
		return err
	}
	if currentVersion >= schemaVersion {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// AUTOINCREMENT keeps pruned sequence numbers from being reused.
	schema := `
	CREATE TABLE IF NOT EXISTS revisions (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		created_at  TEXT NOT NULL,
		source      TEXT NOT NULL,
		path        TEXT NOT NULL DEFAULT '',
		fingerprint TEXT NOT NULL,
		changed     TEXT NOT NULL DEFAULT '',
		text        BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_revisions_fingerprint ON revisions(fingerprint);
	`
	if _, err := tx.Exec(schema); err != nil {
		return err
	}
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SqliteStore) Append(ctx context.Context, rev *Revision) (err error) {
	defer func() { metrics.RecordRevisionAppend("sqlite", err) }()

	changed := ""
	if len(rev.Changed) > 0 {
		var buf []byte
		if buf, err = json.Marshal(rev.Changed); err != nil {
			return err
		}
		changed = string(buf)
	}

	query := `
	INSERT INTO revisions (id, created_at, source, path, fingerprint, changed, text)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	var res sql.Result
	res, err = s.db.ExecContext(ctx, query,
		rev.ID, rev.CreatedAt.UTC().Format(time.RFC3339Nano), rev.Source, rev.Path, rev.Fingerprint, changed, rev.Text,
	)
	if err != nil {
		return err
	}
	var seq int64
	if seq, err = res.LastInsertId(); err != nil {
		return err
	}
	rev.Seq = uint64(seq)
	return nil
}

const revisionColumns = `seq, id, created_at, source, path, fingerprint, changed, text`

func (s *SqliteStore) Get(ctx context.Context, id string) (*Revision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+revisionColumns+` FROM revisions WHERE id = ?`, id)
	return scanRevision(row)
}

func (s *SqliteStore) Latest(ctx context.Context) (*Revision, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+revisionColumns+` FROM revisions ORDER BY seq DESC LIMIT 1`)
	return scanRevision(row)
}

func (s *SqliteStore) List(ctx context.Context, limit int) ([]*Revision, error) {
	if limit <= 0 {
		limit = -1 // sqlite: LIMIT -1 means no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+revisionColumns+` FROM revisions ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var list []*Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rev)
	}
	return list, rows.Err()
}

func (s *SqliteStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM revisions WHERE seq NOT IN (SELECT seq FROM revisions ORDER BY seq DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.RevisionsPruned.WithLabelValues("sqlite").Add(float64(n))
	}
	return int(n), nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRevision(row rowScanner) (*Revision, error) {
	var rev Revision
	var createdAt, changed string
	err := row.Scan(&rev.Seq, &rev.ID, &createdAt, &rev.Source, &rev.Path, &rev.Fingerprint, &changed, &rev.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rev.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if changed != "" {
		if err := json.Unmarshal([]byte(changed), &rev.Changed); err != nil {
			return nil, fmt.Errorf("history: decode changed list: %w", err)
		}
	}
	return &rev, nil
}

var _ Store = (*SqliteStore)(nil)
