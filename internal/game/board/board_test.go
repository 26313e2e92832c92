package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luto101/Solitaire/internal/game/cards"
)

func dealSeeded(t *testing.T, seed uint64) *Board {
	t.Helper()
	b, err := Deal(cards.Shuffle(cards.NewDeck(), cards.NewRand(seed)))
	require.NoError(t, err)
	return b
}

func TestDealLayout(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		b := dealSeeded(t, seed)

		for col, pile := range b.Tableau {
			require.Equal(t, col+1, pile.Len(), "column %d", col)
			for depth := 0; depth < pile.Len(); depth++ {
				assert.Equal(t, depth == 0, pile.PeekAt(depth).FaceUp(), "column %d depth %d", col, depth)
			}
		}

		assert.Equal(t, 24, b.Stock.Len())
		for _, c := range b.Stock.Cards() {
			assert.False(t, c.FaceUp())
		}
		assert.Equal(t, 0, b.Talon.Len())
		for _, f := range b.Foundations {
			assert.Equal(t, 0, f.Len())
		}
		assert.Equal(t, cards.DeckSize, b.TotalCards())
		assert.Equal(t, 0, b.Moves)
	}
}

func TestDealKeepsDeckOrder(t *testing.T) {
	deck := cards.NewDeck()
	b, err := Deal(deck)
	require.NoError(t, err)

	assert.Same(t, deck[0], b.Tableau[0].Peek())
	assert.Same(t, deck[1], b.Tableau[1].PeekAt(1))
	assert.Same(t, deck[2], b.Tableau[1].Peek())
	assert.Same(t, deck[27], b.Tableau[6].Peek())
	assert.Same(t, deck[28], b.Stock.PeekAt(23))
	assert.Same(t, deck[51], b.Stock.Peek())
}

func TestDealRejectsShortDeck(t *testing.T) {
	_, err := Deal(cards.NewDeck()[:51])
	assert.ErrorIs(t, err, ErrDeckSize)
}

func TestCloneIsDeepAndEqual(t *testing.T) {
	b := dealSeeded(t, 42)
	b.Moves = 5
	cp := b.Clone()
	require.True(t, b.Equal(cp))

	cp.Tableau[3].Peek().SetFaceUp(false)
	assert.True(t, b.Tableau[3].Peek().FaceUp(), "original must not see clone mutation")

	cp.Stock.Pop()
	assert.Equal(t, 24, b.Stock.Len())
	assert.False(t, b.Equal(cp))

	b.Talon.Push(b.Stock.Pop())
	assert.Equal(t, 0, cp.Talon.Len())
}

func TestRestoreReplacesEverything(t *testing.T) {
	b := dealSeeded(t, 3)
	snapshot := b.Clone()

	b.Talon.Push(b.Stock.Pop())
	b.Foundations[0].Push(b.Tableau[0].Pop())
	b.Moves = 9

	b.Restore(snapshot)
	assert.Equal(t, 24, b.Stock.Len())
	assert.Equal(t, 0, b.Talon.Len())
	assert.Equal(t, 1, b.Tableau[0].Len())
	assert.Equal(t, 0, b.Foundations[0].Len())
	assert.Equal(t, 0, b.Moves)
}

func TestPileLookup(t *testing.T) {
	b := New()
	assert.Same(t, b.Tableau[4], b.Pile(Location{Slot: Tableau, Index: 4}))
	assert.Same(t, b.Foundations[2], b.Pile(Location{Slot: Foundation, Index: 2}))
	assert.Same(t, b.Stock, b.Pile(Location{Slot: Stock}))
	assert.Same(t, b.Talon, b.Pile(Location{Slot: Talon, Index: 3}))
	assert.Nil(t, b.Pile(Location{Slot: Tableau, Index: 7}))
	assert.Nil(t, b.Pile(Location{Slot: Foundation, Index: -1}))
	assert.Same(t, b.Foundations[3], b.FoundationFor(cards.Heart))
}

func TestSlotColumns(t *testing.T) {
	assert.Equal(t, 7, Tableau.Columns())
	assert.Equal(t, 4, Foundation.Columns())
	assert.Equal(t, 1, Stock.Columns())
	assert.Equal(t, "TALON", Talon.String())
	assert.Equal(t, "TABLEAU[2]", Location{Slot: Tableau, Index: 2}.String())
	assert.Equal(t, "STOCK", Location{Slot: Stock, Index: 2}.String())
}
