// Package cards models a standard 52-card French deck for Klondike.
package cards

import (
	"fmt"
	"strconv"
)

// Suit identifies one of the four suits. Even suits are red, odd suits black.
type Suit int

const (
	Spade Suit = iota + 1
	Diamond
	Club
	Heart
)

// Suits lists every suit in foundation order.
var Suits = [...]Suit{Spade, Diamond, Club, Heart}

var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Diamond: "♦",
	Club:    "♣",
	Heart:   "♥",
}

func (s Suit) String() string {
	if sym, ok := suitSymbols[s]; ok {
		return sym
	}
	return fmt.Sprintf("SUIT_%d", int(s))
}

// Index returns the zero-based foundation index for the suit.
func (s Suit) Index() int { return int(s) - 1 }

// Color returns the color of the suit.
func (s Suit) Color() Color {
	if s%2 == 0 {
		return Red
	}
	return Black
}

// Color is the color of a card, derived from its suit.
type Color int

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "RED"
	}
	return "BLACK"
}

// Rank is the card rank, Ace=1 through King=13.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r > Ace && r < Jack {
		return strconv.Itoa(int(r))
	}
	return fmt.Sprintf("RANK_%d", int(r))
}

// Card is a single playing card. Rank and suit are fixed at construction;
// only the face-up flag changes during play.
type Card struct {
	rank   Rank
	suit   Suit
	faceUp bool
}

// New creates a face-down card.
func New(rank Rank, suit Suit) *Card {
	return &Card{rank: rank, suit: suit}
}

// NewFaceUp creates a face-up card.
func NewFaceUp(rank Rank, suit Suit) *Card {
	return &Card{rank: rank, suit: suit, faceUp: true}
}

func (c *Card) Rank() Rank        { return c.rank }
func (c *Card) Suit() Suit        { return c.suit }
func (c *Card) Color() Color      { return c.suit.Color() }
func (c *Card) FaceUp() bool      { return c.faceUp }
func (c *Card) SetFaceUp(up bool) { c.faceUp = up }

// Flip turns the card over.
func (c *Card) Flip() { c.faceUp = !c.faceUp }

// Copy returns an independent card with the same rank, suit and face.
func (c *Card) Copy() *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Equal reports whether two cards have the same rank, suit and face.
func (c *Card) Equal(other *Card) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

func (c *Card) String() string {
	if c == nil {
		return "--"
	}
	if !c.faceUp {
		return "##"
	}
	return c.rank.String() + c.suit.String()
}
