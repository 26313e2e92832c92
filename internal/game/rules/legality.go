// Package rules holds the Klondike placement rules. Every function is pure:
// it inspects cards and boards and never mutates them.
package rules

import (
	"strconv"

	"github.com/Luto101/Solitaire/internal/game/board"
	"github.com/Luto101/Solitaire/internal/game/cards"
)

// LegalityResult represents the result of a legality check.
type LegalityResult struct {
	Legal   bool
	Reason  string
	Details map[string]string
}

// IsCardLayable reports whether candidate may be placed on a tableau column
// whose top card is targetTop. A nil targetTop means the column is empty.
func IsCardLayable(candidate, targetTop *cards.Card) bool {
	return CheckPlacement(candidate, targetTop).Legal
}

// CheckPlacement is IsCardLayable with a reason attached, for logging.
func CheckPlacement(candidate, targetTop *cards.Card) LegalityResult {
	if candidate == nil {
		return LegalityResult{Legal: false, Reason: "No card to place"}
	}

	details := map[string]string{
		"candidate": candidate.Rank().String() + candidate.Suit().String(),
	}

	// Check 1: empty column only takes a king
	if targetTop == nil {
		if candidate.Rank() != cards.King {
			return LegalityResult{
				Legal:   false,
				Reason:  "Only a king can be placed on an empty column",
				Details: details,
			}
		}
		return LegalityResult{Legal: true, Reason: "King on empty column", Details: details}
	}

	details["target"] = targetTop.Rank().String() + targetTop.Suit().String()

	// Check 2: target must be visible
	if !targetTop.FaceUp() {
		return LegalityResult{
			Legal:   false,
			Reason:  "Target card is face-down",
			Details: details,
		}
	}

	// Check 3: alternating colors
	if candidate.Color() == targetTop.Color() {
		details["color"] = candidate.Color().String()
		return LegalityResult{
			Legal:   false,
			Reason:  "Cards share a color",
			Details: details,
		}
	}

	// Check 4: descending by exactly one
	if targetTop.Rank() != candidate.Rank()+1 {
		details["rank_gap"] = strconv.Itoa(int(targetTop.Rank()) - int(candidate.Rank()))
		return LegalityResult{
			Legal:   false,
			Reason:  "Target rank must be exactly one higher",
			Details: details,
		}
	}

	return LegalityResult{Legal: true, Reason: "Alternating color, descending rank", Details: details}
}

// CanAutoMoveToFoundation reports whether c is the next card its suit's
// foundation needs.
func CanAutoMoveToFoundation(b *board.Board, c *cards.Card) bool {
	if b == nil || c == nil {
		return false
	}
	return b.FoundationFor(c.Suit()).Len()+1 == int(c.Rank())
}

// IsWon reports whether every foundation is complete.
func IsWon(b *board.Board) bool {
	for _, f := range b.Foundations {
		if f.Len() != board.FoundationSize {
			return false
		}
	}
	return true
}
