package cards

import "math/rand/v2"

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// NewDeck builds the ordered 52-card deck, suit by suit, Ace to King.
// Every card starts face-down.
func NewDeck() []*Card {
	deck := make([]*Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			deck = append(deck, New(rank, suit))
		}
	}
	return deck
}

// Shuffle returns a uniformly shuffled copy of deck (Fisher-Yates).
// The input slice is left untouched.
func Shuffle(deck []*Card, rng *rand.Rand) []*Card {
	out := make([]*Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewRand returns a PCG source seeded for reproducible shuffles.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
