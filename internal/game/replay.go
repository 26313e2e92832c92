package game

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/game/board"
	"github.com/Luto101/Solitaire/internal/game/cards"
)

const replayVersion = 1

// ErrChecksumMismatch is returned when a loaded frame does not hash to the
// value recorded with it.
var ErrChecksumMismatch = errors.New("replay frame checksum mismatch")

// FrameCard is the serialisable form of a card.
type FrameCard struct {
	Rank   cards.Rank
	Suit   cards.Suit
	FaceUp bool
}

// Frame is a board position captured after a state-changing event.
type Frame struct {
	Event       EventType
	Moves       int
	Tableau     [board.TableauColumns][]FrameCard
	Foundations [board.FoundationCount][]FrameCard
	Stock       []FrameCard
	Talon       []FrameCard
	Checksum    string
}

// CaptureFrame copies b into a frame and stamps its checksum.
func CaptureFrame(b *board.Board, event EventType) *Frame {
	f := &Frame{
		Event: event,
		Moves: b.Moves,
		Stock: frameCards(b.Stock),
		Talon: frameCards(b.Talon),
	}
	for i, p := range b.Tableau {
		f.Tableau[i] = frameCards(p)
	}
	for i, p := range b.Foundations {
		f.Foundations[i] = frameCards(p)
	}
	f.Checksum = f.ComputeChecksum()
	return f
}

func frameCards(p *cards.Pile) []FrameCard {
	out := make([]FrameCard, 0, p.Len())
	for _, c := range p.Cards() {
		out = append(out, FrameCard{Rank: c.Rank(), Suit: c.Suit(), FaceUp: c.FaceUp()})
	}
	return out
}

// Board rebuilds a live board from the frame.
func (f *Frame) Board() *board.Board {
	b := board.New()
	b.Moves = f.Moves
	fill := func(p *cards.Pile, fc []FrameCard) {
		for _, c := range fc {
			card := cards.New(c.Rank, c.Suit)
			card.SetFaceUp(c.FaceUp)
			p.Push(card)
		}
	}
	for i := range f.Tableau {
		fill(b.Tableau[i], f.Tableau[i])
	}
	for i := range f.Foundations {
		fill(b.Foundations[i], f.Foundations[i])
	}
	fill(b.Stock, f.Stock)
	fill(b.Talon, f.Talon)
	return b
}

// ComputeChecksum hashes a canonical rendering of the piles. Pile order is
// part of the position, so nothing is sorted.
func (f *Frame) ComputeChecksum() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "MOVES:%d\n", f.Moves)
	write := func(name string, pile []FrameCard) {
		buf.WriteString(name)
		buf.WriteByte(':')
		for _, c := range pile {
			fmt.Fprintf(&buf, "%d/%d/%t,", c.Rank, c.Suit, c.FaceUp)
		}
		buf.WriteByte('\n')
	}
	for i, p := range f.Tableau {
		write(fmt.Sprintf("TABLEAU%d", i), p)
	}
	for i, p := range f.Foundations {
		write(fmt.Sprintf("FOUNDATION%d", i), p)
	}
	write("STOCK", f.Stock)
	write("TALON", f.Talon)

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

// View renders the frame like a live session view, without a cursor.
func (f *Frame) View(sessionID string, hard bool) View {
	v := View{
		SessionID:  sessionID,
		Talon:      frameView(f.Talon),
		StockCount: len(f.Stock),
		Moves:      f.Moves,
		Selection:  Selection{Slot: -1},
		Highlight:  HighlightNeutral,
		HardMode:   hard,
	}
	for i, p := range f.Tableau {
		v.Tableau[i] = frameView(p)
	}
	for i, p := range f.Foundations {
		v.Foundations[i] = frameView(p)
	}
	return v
}

func frameView(fc []FrameCard) []CardView {
	out := make([]CardView, 0, len(fc))
	for _, c := range fc {
		card := cards.New(c.Rank, c.Suit)
		card.SetFaceUp(c.FaceUp)
		out = append(out, newCardView(card))
	}
	return out
}

// Replay is the recorded sequence of positions of one session.
type Replay struct {
	SessionID    string
	Seed         uint64
	HardMode     bool
	Frames       []*Frame
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates an empty replay.
func NewReplay(sessionID string, seed uint64, hard bool) *Replay {
	return &Replay{
		SessionID: sessionID,
		Seed:      seed,
		HardMode:  hard,
		Frames:    make([]*Frame, 0),
	}
}

// Record appends a frame.
func (r *Replay) Record(f *Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Frames = append(r.Frames, f)
}

// Start rewinds to the first frame.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CurrentIndex = 0
}

// Current returns the frame under the cursor.
func (r *Replay) Current() *Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.CurrentIndex < len(r.Frames) {
		return r.Frames[r.CurrentIndex]
	}
	return nil
}

// Skip moves the cursor by count frames, clamped to the recording, and
// returns the frame it lands on.
func (r *Replay) Skip(count int) *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.CurrentIndex + count
	if idx >= len(r.Frames) {
		idx = len(r.Frames) - 1
	}
	if idx < 0 {
		idx = 0
	}
	r.CurrentIndex = idx
	if idx < len(r.Frames) {
		return r.Frames[idx]
	}
	return nil
}

// Size returns the number of recorded frames.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Frames)
}

// FrameAt returns the frame at index, or nil when out of range.
func (r *Replay) FrameAt(index int) *Frame {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if index >= 0 && index < len(r.Frames) {
		return r.Frames[index]
	}
	return nil
}

type replayMetadata struct {
	SessionID  string
	Seed       uint64
	HardMode   bool
	Timestamp  time.Time
	Version    int
	FrameCount int
}

// ReplayPath is where a session's replay lives inside directory.
func ReplayPath(directory, sessionID string) string {
	return filepath.Join(directory, sessionID+".replay")
}

// SaveToFile writes the replay as gzipped gob.
func (r *Replay) SaveToFile(directory string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("create replay directory: %w", err)
	}
	file, err := os.Create(ReplayPath(directory, r.SessionID))
	if err != nil {
		return fmt.Errorf("create replay file: %w", err)
	}
	defer file.Close()

	zw := gzip.NewWriter(file)
	enc := gob.NewEncoder(zw)

	meta := replayMetadata{
		SessionID:  r.SessionID,
		Seed:       r.Seed,
		HardMode:   r.HardMode,
		Timestamp:  time.Now(),
		Version:    replayVersion,
		FrameCount: len(r.Frames),
	}
	if err := enc.Encode(&meta); err != nil {
		return fmt.Errorf("encode replay metadata: %w", err)
	}
	for i, f := range r.Frames {
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode frame %d: %w", i, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("flush replay: %w", err)
	}
	return file.Close()
}

// LoadReplayFromFile reads a replay and verifies every frame checksum.
func LoadReplayFromFile(directory, sessionID string) (*Replay, error) {
	file, err := os.Open(ReplayPath(directory, sessionID))
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("open replay stream: %w", err)
	}
	defer zr.Close()
	dec := gob.NewDecoder(zr)

	var meta replayMetadata
	if err := dec.Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode replay metadata: %w", err)
	}
	if meta.Version != replayVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", meta.Version)
	}

	r := NewReplay(meta.SessionID, meta.Seed, meta.HardMode)
	for i := 0; i < meta.FrameCount; i++ {
		var f Frame
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("decode frame %d: %w", i, err)
		}
		if f.ComputeChecksum() != f.Checksum {
			return nil, fmt.Errorf("frame %d: %w", i, ErrChecksumMismatch)
		}
		r.Frames = append(r.Frames, &f)
	}
	return r, nil
}

// ReplayRecorder captures a frame for every event that changes the board.
type ReplayRecorder struct {
	replay  *Replay
	saveDir string
	handles []int
	events  *EventBus
	logger  *zap.Logger
}

var recordedEvents = []EventType{
	EventCardsDrawn,
	EventStockRecycled,
	EventFoundationMove,
	EventMoveCommitted,
	EventMoveUndone,
}

// RecordSession starts recording s from its current position.
func RecordSession(s *Session, saveDir string, logger *zap.Logger) *ReplayRecorder {
	rr := &ReplayRecorder{
		replay:  NewReplay(s.id.String(), s.seed, s.opts.HardMode),
		saveDir: saveDir,
		events:  s.events,
		logger:  logger,
	}
	rr.replay.Record(CaptureFrame(s.board, ""))
	for _, t := range recordedEvents {
		rr.handles = append(rr.handles, s.events.SubscribeTyped(t, func(e Event) {
			rr.replay.Record(CaptureFrame(s.board, e.Type))
		}))
	}

	if logger != nil {
		logger.Info("started replay recording", zap.String("session_id", rr.replay.SessionID))
	}
	return rr
}

// Replay returns the recording so far.
func (rr *ReplayRecorder) Replay() *Replay { return rr.replay }

// Stop detaches the recorder from the session.
func (rr *ReplayRecorder) Stop() {
	for _, h := range rr.handles {
		rr.events.Unsubscribe(h)
	}
	rr.handles = nil
}

// Save stops recording and writes the replay to disk.
func (rr *ReplayRecorder) Save() error {
	rr.Stop()
	if err := rr.replay.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	if rr.logger != nil {
		rr.logger.Info("saved replay to disk",
			zap.String("session_id", rr.replay.SessionID),
			zap.Int("frame_count", rr.replay.Size()),
			zap.String("directory", rr.saveDir),
		)
	}
	return nil
}
