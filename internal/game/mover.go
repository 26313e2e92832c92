package game

import (
	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/game/board"
	"github.com/Luto101/Solitaire/internal/game/cards"
)

// CardMover relocates cards between piles. It never validates; callers check
// legality first.
type CardMover struct {
	board  *board.Board
	logger *zap.Logger
}

// NewCardMover creates a mover working on b.
func NewCardMover(b *board.Board, logger *zap.Logger) *CardMover {
	return &CardMover{board: b, logger: logger}
}

// MoveToFoundation pushes card on its suit foundation and pops one card from
// the source pile (the talon or a tableau column).
func (m *CardMover) MoveToFoundation(card *cards.Card, sourceSlot board.Slot, sourceIndex int) {
	src := m.board.Pile(board.Location{Slot: sourceSlot, Index: sourceIndex})
	if src == nil || card == nil {
		return
	}
	m.board.FoundationFor(card.Suit()).Push(card)
	src.Pop()

	if m.logger != nil {
		m.logger.Debug("moved card to foundation",
			zap.Stringer("card", card),
			zap.Stringer("source", board.Location{Slot: sourceSlot, Index: sourceIndex}),
		)
	}
}

// MoveCards moves the top count cards of the source pile onto a tableau
// column, preserving their order. Talon and foundation sources always give
// up a single card.
func (m *CardMover) MoveCards(sourceSlot board.Slot, sourceIndex, targetColumn, count int) {
	src := m.board.Pile(board.Location{Slot: sourceSlot, Index: sourceIndex})
	dst := m.board.Pile(board.Location{Slot: board.Tableau, Index: targetColumn})
	if src == nil || dst == nil {
		return
	}
	if sourceSlot == board.Talon || sourceSlot == board.Foundation {
		count = 1
	}
	dst.Push(src.PopN(count)...)
}

// ReturnCards carries the top count cards of a tableau column to target.
// Talon and foundation targets take exactly one card.
func (m *CardMover) ReturnCards(sourceColumn int, target board.Location, count int) {
	src := m.board.Pile(board.Location{Slot: board.Tableau, Index: sourceColumn})
	dst := m.board.Pile(target)
	if src == nil || dst == nil {
		return
	}
	if target.Slot == board.Talon || target.Slot == board.Foundation {
		count = 1
	}
	dst.Push(src.PopN(count)...)
}

// RevealTopCards turns every non-empty tableau column's top card face-up.
func (m *CardMover) RevealTopCards() int {
	revealed := 0
	for _, col := range m.board.Tableau {
		if top := col.Peek(); top != nil && !top.FaceUp() {
			top.SetFaceUp(true)
			revealed++
		}
	}
	return revealed
}
