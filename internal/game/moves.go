package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/game/board"
	"github.com/Luto101/Solitaire/internal/game/rules"
)

// Highlight tells the renderer how to paint the cursor.
type Highlight int

const (
	HighlightNeutral Highlight = iota
	HighlightPicked
	HighlightValid
	HighlightInvalid
)

func (h Highlight) String() string {
	switch h {
	case HighlightPicked:
		return "PICKED"
	case HighlightValid:
		return "VALID"
	case HighlightInvalid:
		return "INVALID"
	}
	return "NEUTRAL"
}

// ConfirmPolicy decides what confirming a picked run on an illegal target does.
type ConfirmPolicy string

const (
	// ConfirmStrict refuses the placement and keeps the cards picked.
	ConfirmStrict ConfirmPolicy = "strict"
	// ConfirmPermissive commits the placement anyway.
	ConfirmPermissive ConfirmPolicy = "permissive"
)

// ParseConfirmPolicy maps a config value to a policy. Empty means strict.
func ParseConfirmPolicy(s string) (ConfirmPolicy, error) {
	switch ConfirmPolicy(s) {
	case "", ConfirmStrict:
		return ConfirmStrict, nil
	case ConfirmPermissive:
		return ConfirmPermissive, nil
	}
	return "", fmt.Errorf("unknown confirm policy %q", s)
}

// Result is the outcome of one handled action.
type Result struct {
	Action    Action
	Highlight Highlight
	// Committed is set when a move became permanent history.
	Committed bool
	// Rejected is set when a confirm was refused under ConfirmStrict.
	Rejected bool
}

// MovesHandler applies actions to the board. It is either idle or holding
// picked cards; while cards are picked they physically travel with the
// cursor and the move stays tentative until confirmed.
type MovesHandler struct {
	board   *board.Board
	sel     *Selection
	mover   *CardMover
	stock   *StockManager
	history *HistoryManager
	events  *EventBus

	hardMode  bool
	policy    ConfirmPolicy
	sessionID string
	logger    *zap.Logger

	last    Selection
	verdict rules.LegalityResult
}

// MovesHandlerConfig wires a MovesHandler.
type MovesHandlerConfig struct {
	Board     *board.Board
	Selection *Selection
	Mover     *CardMover
	Stock     *StockManager
	History   *HistoryManager
	Events    *EventBus
	HardMode  bool
	Policy    ConfirmPolicy
	SessionID string
}

// NewMovesHandler creates a handler from its collaborators.
func NewMovesHandler(cfg MovesHandlerConfig, logger *zap.Logger) *MovesHandler {
	policy := cfg.Policy
	if policy == "" {
		policy = ConfirmStrict
	}
	return &MovesHandler{
		board:     cfg.Board,
		sel:       cfg.Selection,
		mover:     cfg.Mover,
		stock:     cfg.Stock,
		history:   cfg.History,
		events:    cfg.Events,
		hardMode:  cfg.HardMode,
		policy:    policy,
		sessionID: cfg.SessionID,
		logger:    logger,
		last:      *cfg.Selection,
		verdict:   rules.LegalityResult{Legal: true},
	}
}

// Handle applies one action produced by the input state machine.
func (h *MovesHandler) Handle(action Action) Result {
	var res Result
	switch action {
	case ActionSelectionMoved:
		res = h.selectionMoved()
	case ActionClick:
		res = h.click()
	case ActionSelectionCanceled:
		res = h.cancel()
	case ActionMoveUndone:
		res = h.undo()
	default:
		res = Result{Highlight: h.idleHighlight()}
	}
	res.Action = action

	// An empty talon cannot hold the cursor.
	if h.sel.Slot == board.Talon && h.board.Talon.IsEmpty() && !h.sel.Picked {
		h.sel.Slot = board.Stock
		h.sel.Column = 0
		h.sel.Count = 1
	}
	h.last = *h.sel
	return res
}

// Picked reports whether cards are currently held.
func (h *MovesHandler) Picked() bool { return h.sel.Picked }

func (h *MovesHandler) idleHighlight() Highlight {
	if !h.sel.Picked {
		return HighlightNeutral
	}
	if h.sel.AtOrigin() {
		return HighlightPicked
	}
	if h.verdict.Legal {
		return HighlightValid
	}
	return HighlightInvalid
}

func (h *MovesHandler) selectionMoved() Result {
	if !h.sel.Picked {
		return Result{Highlight: HighlightNeutral}
	}

	from := h.last
	to := *h.sel
	count := from.Count

	if to.AtOrigin() {
		h.verdict = rules.LegalityResult{Legal: true, Reason: "Back at origin"}
	} else {
		base := h.board.Pile(from.Location()).PeekAt(count - 1)
		h.verdict = rules.CheckPlacement(base, h.board.Pile(to.Location()).Peek())
	}

	// Carry the picked run to the cursor.
	if to.Slot == board.Tableau {
		h.mover.MoveCards(from.Slot, from.Column, to.Column, count)
	} else {
		h.mover.ReturnCards(from.Column, to.Location(), count)
	}
	h.sel.Count = count

	if h.logger != nil {
		h.logger.Debug("carried picked cards",
			zap.Stringer("from", from.Location()),
			zap.Stringer("to", to.Location()),
			zap.Int("count", count),
			zap.Bool("legal", h.verdict.Legal),
			zap.String("reason", h.verdict.Reason),
		)
	}

	if to.AtOrigin() {
		return Result{Highlight: HighlightPicked}
	}
	if h.verdict.Legal {
		return Result{Highlight: HighlightValid}
	}
	return Result{Highlight: HighlightInvalid}
}

func (h *MovesHandler) click() Result {
	if h.sel.Slot == board.Stock {
		return h.drawStock()
	}
	if !h.sel.Picked {
		return h.pick()
	}
	if h.sel.AtOrigin() {
		return h.cancel()
	}
	if !h.verdict.Legal && h.policy == ConfirmStrict {
		h.publish(EventMoveRejected, h.sel.Location(), h.sel.Count, h.verdict.Reason)
		if h.logger != nil {
			h.logger.Debug("refused illegal placement",
				zap.Stringer("target", h.sel.Location()),
				zap.String("reason", h.verdict.Reason),
			)
		}
		return Result{Highlight: HighlightInvalid, Rejected: true}
	}
	if !h.verdict.Legal && h.logger != nil {
		h.logger.Warn("committing illegal placement",
			zap.String("session_id", h.sessionID),
			zap.Stringer("target", h.sel.Location()),
			zap.String("reason", h.verdict.Reason),
		)
	}
	return h.commit()
}

func (h *MovesHandler) drawStock() Result {
	h.history.AddBoard()
	h.history.ConfirmBoard()
	res := h.stock.DrawOrRecycle(h.board, h.hardMode)
	if res.Recycled > 0 {
		h.publish(EventStockRecycled, board.Location{Slot: board.Stock}, res.Recycled, "talon turned into stock")
	} else {
		h.publish(EventCardsDrawn, board.Location{Slot: board.Talon}, res.Drawn, "cards drawn")
	}
	return Result{Highlight: HighlightNeutral, Committed: true}
}

// pick starts a tentative move: the board is bookmarked before anything is
// touched so cancel can roll it back.
func (h *MovesHandler) pick() Result {
	h.history.AddBoard()

	loc := h.sel.Location()
	top := h.board.Pile(loc).Peek()
	if h.sel.Count == 1 && h.sel.Slot != board.Foundation && rules.CanAutoMoveToFoundation(h.board, top) {
		h.mover.MoveToFoundation(top, loc.Slot, loc.Index)
		h.history.ConfirmBoard()
		h.mover.RevealTopCards()
		h.publish(EventFoundationMove, board.Location{Slot: board.Foundation, Index: top.Suit().Index()}, 1, top.String())
		return Result{Highlight: HighlightNeutral, Committed: true}
	}

	if h.sel.Slot != board.Tableau {
		h.sel.Count = 1
	}
	h.sel.Picked = true
	h.sel.Origin = loc
	h.verdict = rules.LegalityResult{Legal: true, Reason: "Picked"}
	h.publish(EventCardsPicked, loc, h.sel.Count, "")
	return Result{Highlight: HighlightPicked}
}

func (h *MovesHandler) commit() Result {
	moved := h.sel.Count
	h.history.ConfirmBoard()
	h.mover.RevealTopCards()
	h.sel.Picked = false
	h.sel.Count = 1
	h.verdict = rules.LegalityResult{Legal: true}
	h.publish(EventMoveCommitted, h.sel.Location(), moved, "")
	return Result{Highlight: HighlightNeutral, Committed: true}
}

// cancel puts the picked cards back and the cursor on their origin.
func (h *MovesHandler) cancel() Result {
	if !h.sel.Picked {
		return Result{Highlight: HighlightNeutral}
	}
	h.history.RestoreBoard()
	h.sel.Slot = h.sel.Origin.Slot
	h.sel.Column = h.sel.Origin.Index
	h.sel.Picked = false
	h.verdict = rules.LegalityResult{Legal: true}
	h.publish(EventSelectionCanceled, h.sel.Location(), h.sel.Count, "")
	return Result{Highlight: HighlightNeutral}
}

func (h *MovesHandler) undo() Result {
	if h.sel.Picked {
		return h.cancel()
	}
	if !h.history.RestoreBoard() {
		return Result{Highlight: HighlightNeutral}
	}
	h.sel.Count = 1
	h.publish(EventMoveUndone, h.sel.Location(), 0, "")
	return Result{Highlight: HighlightNeutral}
}

func (h *MovesHandler) publish(t EventType, loc board.Location, amount int, desc string) {
	h.events.Publish(Event{
		Type:        t,
		SessionID:   h.sessionID,
		Location:    loc,
		Amount:      amount,
		Moves:       h.board.Moves,
		Description: desc,
	})
}
