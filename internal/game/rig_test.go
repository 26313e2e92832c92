package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Luto101/Solitaire/internal/game/board"
	"github.com/Luto101/Solitaire/internal/game/cards"
)

// rig wires the engine components around a hand-built board.
type rig struct {
	board   *board.Board
	sel     *Selection
	input   *InputStateMachine
	moves   *MovesHandler
	history *HistoryManager
	events  *EventBus
	seen    []Event
}

func newRig(t *testing.T, b *board.Board, policy ConfirmPolicy, hard bool) *rig {
	t.Helper()
	logger := zaptest.NewLogger(t)
	sel := NewSelection()
	r := &rig{
		board:   b,
		sel:     &sel,
		input:   NewInputStateMachine(b, &sel),
		history: NewHistoryManager(b, logger),
		events:  NewEventBus(),
	}
	r.events.Subscribe(func(e Event) { r.seen = append(r.seen, e) })
	r.moves = NewMovesHandler(MovesHandlerConfig{
		Board:     b,
		Selection: r.sel,
		Mover:     NewCardMover(b, logger),
		Stock:     NewStockManager(cards.NewRand(1), RecycleShuffle, logger),
		History:   r.history,
		Events:    r.events,
		HardMode:  hard,
		Policy:    policy,
		SessionID: "test",
	}, logger)
	return r
}

// press feeds inputs through both state machines and returns the last result.
func (r *rig) press(inputs ...Input) Result {
	var res Result
	for _, in := range inputs {
		action := r.input.Handle(in)
		res = r.moves.Handle(action)
	}
	return res
}

func (r *rig) lastEvent() EventType {
	if len(r.seen) == 0 {
		return ""
	}
	return r.seen[len(r.seen)-1].Type
}

func up(rank cards.Rank, suit cards.Suit) *cards.Card { return cards.NewFaceUp(rank, suit) }

func down(rank cards.Rank, suit cards.Suit) *cards.Card { return cards.New(rank, suit) }

// requireUniqueCards checks that the board holds every card exactly once.
func requireUniqueCards(t *testing.T, b *board.Board) {
	t.Helper()
	piles := []*cards.Pile{b.Stock, b.Talon}
	piles = append(piles, b.Tableau[:]...)
	piles = append(piles, b.Foundations[:]...)

	type key struct {
		rank cards.Rank
		suit cards.Suit
	}
	seen := make(map[key]bool, cards.DeckSize)
	for _, p := range piles {
		for _, c := range p.Cards() {
			k := key{c.Rank(), c.Suit()}
			require.False(t, seen[k], "card %v%v appears twice", c.Rank(), c.Suit())
			seen[k] = true
		}
	}
	require.Len(t, seen, cards.DeckSize)
}
