package cards

// Pile is an ordered LIFO sequence of cards. The top of the pile is the last
// element; insertion order is the physical stacking order.
type Pile struct {
	cards []*Card
}

// NewPile creates a pile holding the given cards, bottom first.
func NewPile(cards ...*Card) *Pile {
	p := &Pile{cards: make([]*Card, 0, len(cards)+4)}
	p.cards = append(p.cards, cards...)
	return p
}

// Push adds cards to the top of the pile in the given order.
func (p *Pile) Push(cards ...*Card) {
	p.cards = append(p.cards, cards...)
}

// Pop removes the top card. It returns nil when the pile is empty.
func (p *Pile) Pop() *Card {
	if len(p.cards) == 0 {
		return nil
	}
	idx := len(p.cards) - 1
	card := p.cards[idx]
	p.cards[idx] = nil
	p.cards = p.cards[:idx]
	return card
}

// PopN removes the top n cards and returns them bottom first, so pushing the
// result elsewhere preserves their stacking order. n is clamped to Len.
func (p *Pile) PopN(n int) []*Card {
	if n > len(p.cards) {
		n = len(p.cards)
	}
	if n <= 0 {
		return nil
	}
	start := len(p.cards) - n
	out := make([]*Card, n)
	copy(out, p.cards[start:])
	for i := start; i < len(p.cards); i++ {
		p.cards[i] = nil
	}
	p.cards = p.cards[:start]
	return out
}

// Peek returns the top card without removing it, or nil if empty.
func (p *Pile) Peek() *Card {
	return p.PeekAt(0)
}

// PeekAt returns the card depth positions below the top (0 is the top).
func (p *Pile) PeekAt(depth int) *Card {
	idx := len(p.cards) - 1 - depth
	if depth < 0 || idx < 0 {
		return nil
	}
	return p.cards[idx]
}

// Len returns the number of cards in the pile.
func (p *Pile) Len() int { return len(p.cards) }

// IsEmpty returns whether the pile is empty.
func (p *Pile) IsEmpty() bool { return len(p.cards) == 0 }

// Cards returns a copy of the pile, bottom first. The cards themselves are
// shared with the pile.
func (p *Pile) Cards() []*Card {
	cpy := make([]*Card, len(p.cards))
	copy(cpy, p.cards)
	return cpy
}

// Clear removes every card and returns them bottom first.
func (p *Pile) Clear() []*Card {
	out := p.cards
	p.cards = make([]*Card, 0, cap(out))
	return out
}

// Clone deep-copies the pile; the copy shares no cards with the original.
func (p *Pile) Clone() *Pile {
	cp := &Pile{cards: make([]*Card, len(p.cards), cap(p.cards))}
	for i, c := range p.cards {
		cp.cards[i] = c.Copy()
	}
	return cp
}

// Equal reports whether both piles hold equal cards in the same order.
func (p *Pile) Equal(other *Pile) bool {
	if len(p.cards) != len(other.cards) {
		return false
	}
	for i := range p.cards {
		if !p.cards[i].Equal(other.cards[i]) {
			return false
		}
	}
	return true
}
