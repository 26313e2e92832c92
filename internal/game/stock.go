package game

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/game/board"
	"github.com/Luto101/Solitaire/internal/game/cards"
)

// RecyclePolicy decides how the talon becomes the stock again once the stock
// runs out.
type RecyclePolicy string

const (
	// RecycleShuffle shuffles the talon into a new stock.
	RecycleShuffle RecyclePolicy = "shuffle"
	// RecycleReverse turns the talon over, so cards come back in the order
	// they were first drawn.
	RecycleReverse RecyclePolicy = "reverse"
)

// ParseRecyclePolicy maps a config value to a policy. Empty means shuffle.
func ParseRecyclePolicy(s string) (RecyclePolicy, error) {
	switch RecyclePolicy(s) {
	case "", RecycleShuffle:
		return RecycleShuffle, nil
	case RecycleReverse:
		return RecycleReverse, nil
	}
	return "", fmt.Errorf("unknown recycle policy %q", s)
}

const (
	drawEasy = 1
	drawHard = 3
)

// DrawResult reports what a stock click did.
type DrawResult struct {
	Drawn    int
	Recycled int
}

// StockManager draws from the stock and recycles the talon.
type StockManager struct {
	rng    *rand.Rand
	policy RecyclePolicy
	logger *zap.Logger
}

// NewStockManager creates a stock manager. A nil rng gets a randomly seeded one.
func NewStockManager(rng *rand.Rand, policy RecyclePolicy, logger *zap.Logger) *StockManager {
	if rng == nil {
		rng = cards.NewRand(rand.Uint64())
	}
	if policy == "" {
		policy = RecycleShuffle
	}
	return &StockManager{rng: rng, policy: policy, logger: logger}
}

// DrawOrRecycle flips one card (three in hard mode, clamped to what is left)
// from the stock onto the talon. With the stock empty it turns the talon
// face-down and rebuilds the stock from it instead.
func (s *StockManager) DrawOrRecycle(b *board.Board, hardMode bool) DrawResult {
	if b.Stock.IsEmpty() {
		return DrawResult{Recycled: s.recycle(b)}
	}

	n := drawEasy
	if hardMode {
		n = drawHard
	}
	if n > b.Stock.Len() {
		n = b.Stock.Len()
	}
	for i := 0; i < n; i++ {
		c := b.Stock.Pop()
		c.SetFaceUp(true)
		b.Talon.Push(c)
	}

	if s.logger != nil {
		s.logger.Debug("drew from stock",
			zap.Int("drawn", n),
			zap.Int("stock_left", b.Stock.Len()),
		)
	}
	return DrawResult{Drawn: n}
}

func (s *StockManager) recycle(b *board.Board) int {
	talon := b.Talon.Clear()
	for _, c := range talon {
		c.SetFaceUp(false)
	}

	switch s.policy {
	case RecycleReverse:
		for i := len(talon) - 1; i >= 0; i-- {
			b.Stock.Push(talon[i])
		}
	default:
		b.Stock.Push(cards.Shuffle(talon, s.rng)...)
	}

	if s.logger != nil {
		s.logger.Debug("recycled talon into stock",
			zap.Int("cards", len(talon)),
			zap.String("policy", string(s.policy)),
		)
	}
	return len(talon)
}
