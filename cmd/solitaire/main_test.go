package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luto101/Solitaire/internal/config"
	"github.com/Luto101/Solitaire/internal/scores"
)

func TestInitLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solitaire.log")
	logger, err := initLogger(config.LoggingConfig{Level: "warn", Format: "json", File: path})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("visible")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.Contains(t, string(data), `"msg":"visible"`)
}

func TestApplyFlagsOnlyOverridesSetFlags(t *testing.T) {
	cfg := &config.Config{Game: config.GameConfig{HardMode: true, Seed: 5}}
	applyFlags(cfg)
	assert.True(t, cfg.Game.HardMode)
	assert.Equal(t, uint64(5), cfg.Game.Seed)
}

func TestHighlightedFallsBackToNewestScore(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	older := scores.Score{ID: uuid.New(), Start: start, End: start.Add(time.Minute), Moves: 90}
	newer := scores.Score{ID: uuid.New(), Start: start.Add(time.Hour), End: start.Add(2 * time.Hour), Moves: 200}
	all := []scores.Score{newer, older}

	assert.Equal(t, newer.ID, highlighted(all, uuid.Nil))
	assert.Equal(t, older.ID, highlighted(all, older.ID), "an explicit id wins")
	assert.Equal(t, uuid.Nil, highlighted(nil, uuid.Nil))
}
