package scores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS solitaire_scores (
	id         UUID PRIMARY KEY,
	started_at TIMESTAMPTZ NOT NULL,
	ended_at   TIMESTAMPTZ NOT NULL,
	moves      INTEGER NOT NULL,
	hard_mode  BOOLEAN NOT NULL
)`

// PostgresStore keeps scores in a shared PostgreSQL database.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore connects to dsn and makes sure the scores table exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create scores table: %w", err)
	}

	if logger != nil {
		stats := pool.Stat()
		logger.Info("score database ready",
			zap.String("backend", "postgres"),
			zap.Int32("total_conns", stats.TotalConns()),
		)
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Save inserts score.
func (s *PostgresStore) Save(ctx context.Context, score Score) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO solitaire_scores (id, started_at, ended_at, moves, hard_mode) VALUES ($1, $2, $3, $4, $5)`,
		score.ID.String(), score.Start, score.End, score.Moves, score.HardMode,
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

// List returns every score, oldest first.
func (s *PostgresStore) List(ctx context.Context) ([]Score, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, started_at, ended_at, moves, hard_mode FROM solitaire_scores ORDER BY started_at`)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	all := []Score{}
	for rows.Next() {
		var (
			id    string
			score Score
		)
		if err := rows.Scan(&id, &score.Start, &score.End, &score.Moves, &score.HardMode); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if score.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse score id %q: %w", id, err)
		}
		all = append(all, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return all, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
