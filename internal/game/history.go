package game

import (
	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/game/board"
)

// UndoDepth is how many confirmed moves can be taken back.
const UndoDepth = 3

// HistoryManager keeps deep snapshots of the board, oldest first.
//
// A snapshot is taken before every player action. Confirming trims the list
// to UndoDepth; restoring rolls the live board back to the newest snapshot
// and drops it.
type HistoryManager struct {
	board     *board.Board
	snapshots []*board.Board
	logger    *zap.Logger
}

// NewHistoryManager creates a history for the live board b.
func NewHistoryManager(b *board.Board, logger *zap.Logger) *HistoryManager {
	return &HistoryManager{
		board:     b,
		snapshots: make([]*board.Board, 0, UndoDepth+1),
		logger:    logger,
	}
}

// AddBoard bookmarks the live board and then counts a move on it.
func (h *HistoryManager) AddBoard() {
	h.snapshots = append(h.snapshots, h.board.Clone())
	h.board.Moves++

	if h.logger != nil {
		h.logger.Debug("bookmarked board",
			zap.Int("bookmarks", len(h.snapshots)),
			zap.Int("moves", h.board.Moves),
		)
	}
}

// ConfirmBoard drops the oldest bookmarks until at most UndoDepth remain.
func (h *HistoryManager) ConfirmBoard() {
	dropped := 0
	for len(h.snapshots) > UndoDepth {
		h.snapshots[0] = nil
		h.snapshots = h.snapshots[1:]
		dropped++
	}

	if h.logger != nil && dropped > 0 {
		h.logger.Debug("trimmed bookmarks",
			zap.Int("dropped", dropped),
			zap.Int("bookmarks", len(h.snapshots)),
		)
	}
}

// RestoreBoard rolls the live board back to the newest bookmark and removes
// it. It reports false when there is nothing to restore.
func (h *HistoryManager) RestoreBoard() bool {
	if len(h.snapshots) == 0 {
		return false
	}

	last := len(h.snapshots) - 1
	snapshot := h.snapshots[last]
	h.snapshots[last] = nil
	h.snapshots = h.snapshots[:last]
	h.board.Restore(snapshot)

	if h.logger != nil {
		h.logger.Debug("restored board",
			zap.Int("bookmarks", len(h.snapshots)),
			zap.Int("moves", h.board.Moves),
		)
	}
	return true
}

// Len returns the number of bookmarks held.
func (h *HistoryManager) Len() int { return len(h.snapshots) }
