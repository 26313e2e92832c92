package scores

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scores (
	id         TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	ended_at   INTEGER NOT NULL,
	moves      INTEGER NOT NULL,
	hard_mode  INTEGER NOT NULL
)`

// SQLiteStore keeps scores in a local SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(ctx context.Context, path string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer at a time keeps SQLite away from SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scores table: %w", err)
	}

	if logger != nil {
		logger.Info("score database ready", zap.String("backend", "sqlite"), zap.String("path", path))
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Save inserts score.
func (s *SQLiteStore) Save(ctx context.Context, score Score) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scores (id, started_at, ended_at, moves, hard_mode) VALUES (?, ?, ?, ?, ?)`,
		score.ID.String(), score.Start.UnixNano(), score.End.UnixNano(), score.Moves, score.HardMode,
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// List returns every score, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Score, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, moves, hard_mode FROM scores ORDER BY started_at`)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	all := []Score{}
	for rows.Next() {
		var (
			id         string
			start, end int64
			score      Score
		)
		if err := rows.Scan(&id, &start, &end, &score.Moves, &score.HardMode); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if score.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse score id %q: %w", id, err)
		}
		score.Start = time.Unix(0, start)
		score.End = time.Unix(0, end)
		all = append(all, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return all, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
