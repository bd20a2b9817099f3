package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists journal events in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens, and migrates if needed, a journal database at path.
// Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open database: %w", err)
	}
	// One connection: keeps ":memory:" databases coherent and serializes
	// writers at the pool instead of surfacing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		stream_id TEXT NOT NULL,
		type TEXT NOT NULL,
		version INTEGER NOT NULL,
		data BLOB,
		timestamp TEXT NOT NULL,
		UNIQUE (stream_id, version)
	);

	CREATE INDEX IF NOT EXISTS idx_events_stream ON events(stream_id, version);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append adds events to a stream under optimistic concurrency control.
func (s *SQLiteStore) Append(ctx context.Context, streamID string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("journal: begin append: %w", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream_id = ?`,
		streamID).Scan(&current)
	if err != nil {
		return 0, fmt.Errorf("journal: read stream version: %w", err)
	}
	if expectedVersion != current {
		return 0, ErrConcurrencyConflict
	}

	version := current
	for _, e := range events {
		version++
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (id, stream_id, type, version, data, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, streamID, e.Type, version, []byte(e.Data),
			e.Timestamp.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return 0, fmt.Errorf("journal: insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("journal: commit append: %w", err)
	}
	return version, nil
}

// Read returns the events of a stream starting at fromVersion.
func (s *SQLiteStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, stream_id, type, version, data, timestamp
		 FROM events WHERE stream_id = ? AND version >= ?
		 ORDER BY version`,
		streamID, fromVersion)
	if err != nil {
		return nil, fmt.Errorf("journal: read stream: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ReadAll returns events across streams matching the filter, in append
// order.
func (s *SQLiteStore) ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error) {
	query := `SELECT id, stream_id, type, version, data, timestamp FROM events`
	var conds []string
	var args []any

	if filter.StreamID != "" {
		conds = append(conds, "stream_id = ?")
		args = append(args, filter.StreamID)
	}
	if len(filter.Types) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(filter.Types)), ", ")
		conds = append(conds, "type IN ("+placeholders+")")
		for _, t := range filter.Types {
			args = append(args, t)
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: read all: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// StreamVersion returns the version of the last event in a stream, -1 if
// the stream does not exist.
func (s *SQLiteStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM events WHERE stream_id = ?`,
		streamID).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("journal: read stream version: %w", err)
	}
	return version, nil
}

// DeleteStream removes all events of a stream.
func (s *SQLiteStore) DeleteStream(ctx context.Context, streamID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM events WHERE stream_id = ?`, streamID)
	if err != nil {
		return fmt.Errorf("journal: delete stream: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		var e Event
		var data []byte
		var ts string
		if err := rows.Scan(&e.ID, &e.StreamID, &e.Type, &e.Version, &data, &ts); err != nil {
			return nil, fmt.Errorf("journal: scan event: %w", err)
		}
		if len(data) > 0 {
			e.Data = data
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("journal: parse timestamp %q: %w", ts, err)
		}
		e.Timestamp = t
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate events: %w", err)
	}
	return events, nil
}

var _ Store = (*SQLiteStore)(nil)
