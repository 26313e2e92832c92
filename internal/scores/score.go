// Package scores records finished games and ranks them.
package scores

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/config"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown score backend")

// Score is one won game.
type Score struct {
	ID       uuid.UUID `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Moves    int       `json:"moves"`
	HardMode bool      `json:"hard_mode"`
}

// Duration is the wall time the game took.
func (s Score) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Store persists scores.
type Store interface {
	Save(ctx context.Context, s Score) error
	List(ctx context.Context) ([]Score, error)
	Close() error
}

// Open returns the store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.ScoresConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Path, logger), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.Path, logger)
	case "postgres":
		return NewPostgresStore(ctx, cfg.DSN, logger)
	}
	return nil, fmt.Errorf("open %q: %w", cfg.Backend, ErrUnknownBackend)
}

// Best returns up to n scores, fewest moves first. Ties go to the faster
// game, then to the earlier one. n <= 0 returns every score.
func Best(all []Score, n int) []Score {
	out := make([]Score, len(all))
	copy(out, all)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Moves != b.Moves {
			return a.Moves < b.Moves
		}
		if a.Duration() != b.Duration() {
			return a.Duration() < b.Duration()
		}
		return a.Start.Before(b.Start)
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// Latest returns the most recently started game.
func Latest(all []Score) (Score, bool) {
	if len(all) == 0 {
		return Score{}, false
	}
	latest := all[0]
	for _, s := range all[1:] {
		if s.Start.After(latest.Start) {
			latest = s
		}
	}
	return latest, true
}
