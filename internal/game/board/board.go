// Package board holds the Klondike board: seven tableau columns, four
// foundations, the stock and the talon.
package board

import (
	"errors"
	"fmt"

	"github.com/Luto101/Solitaire/internal/game/cards"
)

const (
	TableauColumns  = 7
	FoundationCount = 4
	// FoundationSize is the number of cards in a completed foundation.
	FoundationSize = 13
)

// ErrDeckSize is returned when a deal is attempted with a deck that is not
// exactly 52 cards.
var ErrDeckSize = errors.New("deck must hold exactly 52 cards")

// Slot identifies a kind of pile on the board.
type Slot int

const (
	Tableau Slot = iota
	Stock
	Talon
	Foundation
)

var slotNames = map[Slot]string{
	Tableau:    "TABLEAU",
	Stock:      "STOCK",
	Talon:      "TALON",
	Foundation: "FOUNDATION",
}

func (s Slot) String() string {
	if name, ok := slotNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SLOT_%d", int(s))
}

// Columns returns how many piles of this kind the board has.
func (s Slot) Columns() int {
	switch s {
	case Tableau:
		return TableauColumns
	case Foundation:
		return FoundationCount
	case Stock, Talon:
		return 1
	}
	return 0
}

// Location addresses one pile. Index is ignored for Stock and Talon.
type Location struct {
	Slot  Slot
	Index int
}

func (l Location) String() string {
	if l.Slot == Stock || l.Slot == Talon {
		return l.Slot.String()
	}
	return fmt.Sprintf("%s[%d]", l.Slot, l.Index)
}

// Board is the complete state of one game.
type Board struct {
	Tableau     [TableauColumns]*cards.Pile
	Foundations [FoundationCount]*cards.Pile
	Stock       *cards.Pile
	Talon       *cards.Pile
	Moves       int
}

// New returns an empty board.
func New() *Board {
	b := &Board{
		Stock: cards.NewPile(),
		Talon: cards.NewPile(),
	}
	for i := range b.Tableau {
		b.Tableau[i] = cards.NewPile()
	}
	for i := range b.Foundations {
		b.Foundations[i] = cards.NewPile()
	}
	return b
}

// Deal lays out a fresh game from deck. Column i receives i+1 cards in deck
// order with only the last one face-up; the remaining 24 cards go to the
// stock face-down, in deck order.
func Deal(deck []*cards.Card) (*Board, error) {
	if len(deck) != cards.DeckSize {
		return nil, fmt.Errorf("deal board: %w (got %d)", ErrDeckSize, len(deck))
	}

	b := New()
	next := 0
	for col := 0; col < TableauColumns; col++ {
		for j := 0; j <= col; j++ {
			card := deck[next]
			card.SetFaceUp(j == col)
			b.Tableau[col].Push(card)
			next++
		}
	}
	for ; next < len(deck); next++ {
		deck[next].SetFaceUp(false)
		b.Stock.Push(deck[next])
	}
	return b, nil
}

// Pile resolves a location to its pile. It returns nil for locations that do
// not exist on the board.
func (b *Board) Pile(loc Location) *cards.Pile {
	switch loc.Slot {
	case Tableau:
		if loc.Index >= 0 && loc.Index < TableauColumns {
			return b.Tableau[loc.Index]
		}
	case Foundation:
		if loc.Index >= 0 && loc.Index < FoundationCount {
			return b.Foundations[loc.Index]
		}
	case Stock:
		return b.Stock
	case Talon:
		return b.Talon
	}
	return nil
}

// FoundationFor returns the foundation that collects the given suit.
func (b *Board) FoundationFor(suit cards.Suit) *cards.Pile {
	return b.Foundations[suit.Index()]
}

// TotalCards counts every card on the board.
func (b *Board) TotalCards() int {
	n := b.Stock.Len() + b.Talon.Len()
	for _, p := range b.Tableau {
		n += p.Len()
	}
	for _, p := range b.Foundations {
		n += p.Len()
	}
	return n
}

// Clone creates a deep copy of the board. The copy shares no cards with the
// original, so either can be mutated freely.
func (b *Board) Clone() *Board {
	cp := &Board{
		Stock: b.Stock.Clone(),
		Talon: b.Talon.Clone(),
		Moves: b.Moves,
	}
	for i, p := range b.Tableau {
		cp.Tableau[i] = p.Clone()
	}
	for i, p := range b.Foundations {
		cp.Foundations[i] = p.Clone()
	}
	return cp
}

// Restore replaces every pile and the move count with the snapshot's. The
// board takes ownership of the snapshot's piles.
func (b *Board) Restore(snapshot *Board) {
	b.Tableau = snapshot.Tableau
	b.Foundations = snapshot.Foundations
	b.Stock = snapshot.Stock
	b.Talon = snapshot.Talon
	b.Moves = snapshot.Moves
}

// Equal compares two boards pile by pile, card by card, including face-up
// flags and the move count.
func (b *Board) Equal(other *Board) bool {
	if b.Moves != other.Moves || !b.Stock.Equal(other.Stock) || !b.Talon.Equal(other.Talon) {
		return false
	}
	for i := range b.Tableau {
		if !b.Tableau[i].Equal(other.Tableau[i]) {
			return false
		}
	}
	for i := range b.Foundations {
		if !b.Foundations[i].Equal(other.Foundations[i]) {
			return false
		}
	}
	return true
}
