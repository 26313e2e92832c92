package game

import (
	"github.com/Luto101/Solitaire/internal/game/board"
	"github.com/Luto101/Solitaire/internal/game/cards"
)

// CardView is a read-only copy of a card for renderers.
type CardView struct {
	Rank   cards.Rank
	Suit   cards.Suit
	FaceUp bool
	Red    bool
	Label  string
}

// View is a snapshot of everything a renderer needs. It shares nothing with
// the live board.
type View struct {
	SessionID   string
	Tableau     [board.TableauColumns][]CardView
	Foundations [board.FoundationCount][]CardView
	Talon       []CardView
	StockCount  int
	Moves       int
	Selection   Selection
	Highlight   Highlight
	HardMode    bool
	Won         bool
	Message     string
}

func newCardView(c *cards.Card) CardView {
	return CardView{
		Rank:   c.Rank(),
		Suit:   c.Suit(),
		FaceUp: c.FaceUp(),
		Red:    c.Color() == cards.Red,
		Label:  c.String(),
	}
}

func pileView(p *cards.Pile) []CardView {
	out := make([]CardView, 0, p.Len())
	for _, c := range p.Cards() {
		out = append(out, newCardView(c))
	}
	return out
}

// Top returns the last card of a pile view, or false when the pile is empty.
func Top(pile []CardView) (CardView, bool) {
	if len(pile) == 0 {
		return CardView{}, false
	}
	return pile[len(pile)-1], true
}
