package scores

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Luto101/Solitaire/internal/config"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func score(startMin, minutes, moves int) Score {
	start := epoch.Add(time.Duration(startMin) * time.Minute)
	return Score{
		ID:    uuid.New(),
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
		Moves: moves,
	}
}

func TestBestOrdering(t *testing.T) {
	a := score(0, 10, 120)
	b := score(30, 5, 90)
	c := score(60, 4, 90)
	d := score(90, 4, 90)

	best := Best([]Score{a, b, c, d}, 0)
	require.Len(t, best, 4)
	assert.Equal(t, []uuid.UUID{c.ID, d.ID, b.ID, a.ID},
		[]uuid.UUID{best[0].ID, best[1].ID, best[2].ID, best[3].ID})

	assert.Len(t, Best([]Score{a, b, c, d}, 2), 2)
	assert.Empty(t, Best(nil, 5))
}

func TestLatest(t *testing.T) {
	_, ok := Latest(nil)
	assert.False(t, ok)

	a, b := score(0, 1, 10), score(50, 1, 200)
	latest, ok := Latest([]Score{b, a})
	require.True(t, ok)
	assert.Equal(t, b.ID, latest.ID)
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "scores.json")
	store := NewFileStore(path, zaptest.NewLogger(t))
	defer store.Close()

	all, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	first, second := score(0, 3, 100), score(10, 7, 80)
	second.HardMode = true
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	all, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)
	assert.True(t, all[1].HardMode)
	assert.Equal(t, 7*time.Minute, all[1].Duration())
}

func TestFileStoreResetsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewFileStore(path, zaptest.NewLogger(t))

	all, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileStoreEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	all, err := NewFileStore(path, nil).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "scores.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer store.Close()

	later, earlier := score(60, 2, 150), score(0, 9, 95)
	later.HardMode = true
	require.NoError(t, store.Save(ctx, later))
	require.NoError(t, store.Save(ctx, earlier))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, earlier.ID, all[0].ID)
	assert.True(t, all[0].Start.Equal(earlier.Start))
	assert.Equal(t, 9*time.Minute, all[0].Duration())
	assert.True(t, all[1].HardMode)

	assert.Error(t, store.Save(ctx, later), "duplicate id")
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SOLITAIRE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SOLITAIRE_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	store, err := NewPostgresStore(ctx, dsn, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer store.Close()

	s := score(0, 4, 77)
	require.NoError(t, store.Save(ctx, s))

	all, err := store.List(ctx)
	require.NoError(t, err)
	var found bool
	for _, got := range all {
		if got.ID == s.ID {
			found = true
			assert.Equal(t, 77, got.Moves)
		}
	}
	assert.True(t, found)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, config.ScoresConfig{Backend: "file", Path: filepath.Join(dir, "s.json")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = Open(ctx, config.ScoresConfig{Backend: "sqlite", Path: filepath.Join(dir, "s.db")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())

	_, err = Open(ctx, config.ScoresConfig{Backend: "redis"}, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestImportSkipsExisting(t *testing.T) {
	ctx := context.Background()
	dst, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "scores.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer dst.Close()

	a, b, c := score(0, 3, 100), score(10, 4, 110), score(20, 5, 120)
	require.NoError(t, dst.Save(ctx, a))

	res, err := Import(ctx, dst, []Score{a, b, c, b})
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 2, Skipped: 2}, res)

	all, err := dst.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImportHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dst := NewFileStore(filepath.Join(t.TempDir(), "scores.json"), nil)
	cancel()

	_, err := Import(ctx, dst, []Score{score(0, 1, 1)})
	assert.ErrorIs(t, err, context.Canceled)
}
