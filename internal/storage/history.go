package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const historyFileName = "history.db"

// SessionRecord is one completed training session.
type SessionRecord struct {
	ID          uuid.UUID
	StartedAt   time.Time
	CompletedAt time.Time
	Sets        int
	Pattern     string
	Speed       string
}

// History stores completed sessions in SQLite.
type History struct {
	db *sql.DB
}

// OpenHistory opens (or creates) the history database at dir/history.db.
func OpenHistory(dir string) (*History, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, historyFileName))
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		started_at   INTEGER NOT NULL,
		completed_at INTEGER NOT NULL,
		sets         INTEGER NOT NULL,
		pattern      TEXT NOT NULL,
		speed        TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	return &History{db: db}, nil
}

// Record stores a completed session. A zero ID is replaced with a new one.
func (history *History) Record(ctx context.Context, record SessionRecord) (SessionRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	_, err := history.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, completed_at, sets, pattern, speed) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID.String(),
		record.StartedAt.UnixMilli(),
		record.CompletedAt.UnixMilli(),
		record.Sets,
		record.Pattern,
		record.Speed,
	)
	if err != nil {
		return record, fmt.Errorf("insert session: %w", err)
	}
	return record, nil
}

// CountSince returns how many sessions completed at or after since.
func (history *History) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := history.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE completed_at >= ?`,
		since.UnixMilli(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

// Recent returns the latest sessions, newest first.
func (history *History) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := history.db.QueryContext(ctx,
		`SELECT id, started_at, completed_at, sets, pattern, speed
		 FROM sessions ORDER BY completed_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			id          string
			startedAt   int64
			completedAt int64
			record      SessionRecord
		)
		if err := rows.Scan(&id, &startedAt, &completedAt, &record.Sets, &record.Pattern, &record.Speed); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		record.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("parse session id %q: %w", id, err)
		}
		record.StartedAt = time.UnixMilli(startedAt)
		record.CompletedAt = time.UnixMilli(completedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return records, nil
}

// Close closes the history database.
func (history *History) Close() error {
	return history.db.Close()
}

// StartOfDay returns local midnight for the given time.
func StartOfDay(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
