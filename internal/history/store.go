// Package history keeps a small SQLite record of pipeline runs so operators
// can see what was fetched, transcribed and summarized without digging
// through log files.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/scannerworks/dispatch-scribe/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at REAL NOT NULL,
	finished_at REAL,
	recording TEXT NOT NULL DEFAULT '',
	transcript_path TEXT NOT NULL DEFAULT '',
	summary_path TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL DEFAULT '',
	detail TEXT NOT NULL DEFAULT ''
);`

// Store provides read-write access to the run history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun inserts a new run row and returns its id.
func (s *Store) StartRun(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at) VALUES (?, ?)`,
		id, unixFloat(time.Now()),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// FinishRun records the outcome and artifact paths of a run.
func (s *Store) FinishRun(ctx context.Context, id string, rec domain.RunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, recording = ?, transcript_path = ?,
		    summary_path = ?, outcome = ?, detail = ?
		WHERE id = ?`,
		unixFloat(time.Now()), rec.Recording, rec.TranscriptPath,
		rec.SummaryPath, string(rec.Outcome), rec.Detail, id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]domain.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, recording, transcript_path,
		       summary_path, outcome, detail
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var startedAt float64
		var finishedAt sql.NullFloat64
		var outcome string
		if err := rows.Scan(&rec.ID, &startedAt, &finishedAt, &rec.Recording,
			&rec.TranscriptPath, &rec.SummaryPath, &outcome, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt = timeFromUnix(startedAt)
		if finishedAt.Valid {
			t := timeFromUnix(finishedAt.Float64)
			rec.FinishedAt = &t
		}
		rec.Outcome = domain.Outcome(outcome)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func unixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func timeFromUnix(f float64) time.Time {
	return time.Unix(0, int64(f*float64(time.Second)))
}
