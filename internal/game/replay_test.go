package game

import (
	"compress/gzip"
	"encoding/gob"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFrameRoundTripsBoard(t *testing.T) {
	b := dealt(t, 11)
	b.Moves = 4

	f := CaptureFrame(b, EventMoveCommitted)
	assert.Equal(t, 4, f.Moves)
	assert.Len(t, f.Stock, 24)
	assert.True(t, b.Equal(f.Board()))
	assert.Equal(t, f.Checksum, CaptureFrame(f.Board(), "").Checksum)
}

func TestFrameChecksumTracksPosition(t *testing.T) {
	b := dealt(t, 11)
	before := CaptureFrame(b, "")

	b.Talon.Push(b.Stock.Pop())
	after := CaptureFrame(b, "")
	assert.NotEqual(t, before.Checksum, after.Checksum)

	b.Talon.Peek().Flip()
	assert.NotEqual(t, after.Checksum, CaptureFrame(b, "").Checksum)
}

func TestFrameView(t *testing.T) {
	f := CaptureFrame(dealt(t, 3), "")
	v := f.View("abc", true)

	assert.Equal(t, "abc", v.SessionID)
	assert.Equal(t, 24, v.StockCount)
	assert.True(t, v.HardMode)
	for col := range v.Tableau {
		require.Len(t, v.Tableau[col], col+1)
		top, ok := Top(v.Tableau[col])
		require.True(t, ok)
		assert.True(t, top.FaceUp)
	}
}

func TestReplaySkipClamps(t *testing.T) {
	r := NewReplay("s", 1, false)
	assert.Nil(t, r.Current())
	assert.Nil(t, r.Skip(1))

	b := dealt(t, 1)
	for i := 0; i < 3; i++ {
		b.Moves = i
		r.Record(CaptureFrame(b, ""))
	}

	assert.Equal(t, 3, r.Size())
	assert.Equal(t, 2, r.Skip(10).Moves)
	assert.Equal(t, 1, r.Skip(-1).Moves)
	assert.Equal(t, 0, r.Skip(-5).Moves)
	r.Skip(2)
	r.Start()
	assert.Equal(t, 0, r.Current().Moves)
	assert.Nil(t, r.FrameAt(3))
}

func TestRecorderCapturesBoardChanges(t *testing.T) {
	s, err := NewSession(Options{Seed: 21}, zaptest.NewLogger(t))
	require.NoError(t, err)
	rec := RecordSession(s, t.TempDir(), zaptest.NewLogger(t))

	// Drawing changes the board, moving the cursor does not.
	_, err = s.Step(Press(KeyConfirm))
	require.NoError(t, err)
	_, err = s.Step(Press(KeyRight))
	require.NoError(t, err)
	_, err = s.Step(Press(KeyUndo))
	require.NoError(t, err)

	r := rec.Replay()
	require.Equal(t, 3, r.Size())
	assert.Equal(t, EventType(""), r.FrameAt(0).Event)
	assert.Equal(t, EventCardsDrawn, r.FrameAt(1).Event)
	assert.Equal(t, EventMoveUndone, r.FrameAt(2).Event)
	assert.Equal(t, r.FrameAt(0).Checksum, r.FrameAt(2).Checksum)

	rec.Stop()
	_, err = s.Step(Press(KeyFocusStock))
	require.NoError(t, err)
	_, err = s.Step(Press(KeyConfirm))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Size())
}

func TestReplaySaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSession(Options{Seed: 5, HardMode: true}, zaptest.NewLogger(t))
	require.NoError(t, err)
	rec := RecordSession(s, dir, nil)

	for i := 0; i < 4; i++ {
		_, err = s.Step(Press(KeyConfirm))
		require.NoError(t, err)
	}
	require.NoError(t, rec.Save())

	loaded, err := LoadReplayFromFile(dir, s.ID().String())
	require.NoError(t, err)
	assert.Equal(t, s.ID().String(), loaded.SessionID)
	assert.Equal(t, uint64(5), loaded.Seed)
	assert.True(t, loaded.HardMode)
	require.Equal(t, rec.Replay().Size(), loaded.Size())
	for i := 0; i < loaded.Size(); i++ {
		assert.Equal(t, rec.Replay().FrameAt(i).Checksum, loaded.FrameAt(i).Checksum)
	}
}

func TestLoadReplayRejectsTamperedFrame(t *testing.T) {
	dir := t.TempDir()
	f := CaptureFrame(dealt(t, 2), "")
	f.Moves = 99 // checksum still describes the original position

	file, err := os.Create(ReplayPath(dir, "bad"))
	require.NoError(t, err)
	zw := gzip.NewWriter(file)
	enc := gob.NewEncoder(zw)
	require.NoError(t, enc.Encode(&replayMetadata{
		SessionID: "bad", Timestamp: time.Now(), Version: replayVersion, FrameCount: 1,
	}))
	require.NoError(t, enc.Encode(f))
	require.NoError(t, zw.Close())
	require.NoError(t, file.Close())

	_, err = LoadReplayFromFile(dir, "bad")
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestLoadReplayMissingFile(t *testing.T) {
	_, err := LoadReplayFromFile(t.TempDir(), "nope")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
