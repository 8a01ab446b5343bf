package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"ecoquest/internal/domain"
)

// Snapshot is one identifier's counters for one calendar day.
type Snapshot struct {
	Identifier string
	Day        string
	Counts     map[domain.ActionKind]int
}

// SnapshotStore persists daily counters so a process restart within the same
// day does not reset quotas. Rows are keyed by date, so a new day naturally
// starts fresh even without explicit rollover.
type SnapshotStore interface {
	// Load returns the counters saved for the identifier on the given day,
	// or nil when none were saved.
	Load(ctx context.Context, identifier, day string) (map[domain.ActionKind]int, error)
	Save(ctx context.Context, snap Snapshot) error
	// PruneBefore deletes snapshots older than the given day and reports
	// how many rows went away.
	PruneBefore(ctx context.Context, day string) (int64, error)
	Close() error
}

// SQLiteStore is a SnapshotStore backed by a local embedded SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS ledger_snapshots (
	identifier TEXT NOT NULL,
	day        TEXT NOT NULL,
	counts     TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (identifier, day)
);
`

// OpenSQLiteStore opens (creating if needed) the snapshot database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("snapshot store path is required")
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	// database/sql pooling and SQLite writers do not mix well.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(snapshotSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, identifier, day string) (map[domain.ActionKind]int, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT counts FROM ledger_snapshots WHERE identifier = ? AND day = ?`,
		identifier, day,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	counts := map[domain.ActionKind]int{}
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return counts, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap.Counts)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO ledger_snapshots (identifier, day, counts, updated_at)
VALUES (?, ?, ?, datetime('now'))
ON CONFLICT (identifier, day) DO UPDATE
SET counts = excluded.counts, updated_at = excluded.updated_at`,
		snap.Identifier, snap.Day, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PruneBefore(ctx context.Context, day string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ledger_snapshots WHERE day < ?`, day)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ SnapshotStore = (*SQLiteStore)(nil)
