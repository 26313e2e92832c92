package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/game/board"
	"github.com/Luto101/Solitaire/internal/game/cards"
	"github.com/Luto101/Solitaire/internal/game/rules"
)

// QuitSentinel is what Run returns when the player quits instead of winning.
const QuitSentinel = -1

// ErrGameOver is returned when a finished session receives more input.
var ErrGameOver = errors.New("game is already won")

// Status is the state of a session after a step.
type Status int

const (
	StatusContinue Status = iota
	StatusWon
	StatusQuitRequested
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "WON"
	case StatusQuitRequested:
		return "QUIT_REQUESTED"
	}
	return "CONTINUE"
}

// Options configure a session. They are fixed for its lifetime.
type Options struct {
	HardMode bool
	// Seed drives the deal and every reshuffle. Zero picks a random seed.
	Seed    uint64
	Recycle RecyclePolicy
	Confirm ConfirmPolicy
}

// Session is one game of Klondike from deal to win or quit.
type Session struct {
	id      uuid.UUID
	opts    Options
	seed    uint64
	started time.Time

	board   *board.Board
	sel     *Selection
	input   *InputStateMachine
	moves   *MovesHandler
	history *HistoryManager
	events  *EventBus

	highlight Highlight
	message   string
	won       bool

	logger *zap.Logger
}

// NewSession shuffles a fresh deck, deals it and wires the game components.
func NewSession(opts Options, logger *zap.Logger) (*Session, error) {
	if _, err := ParseRecyclePolicy(string(opts.Recycle)); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if _, err := ParseConfirmPolicy(string(opts.Confirm)); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := cards.NewRand(seed)

	b, err := board.Deal(cards.Shuffle(cards.NewDeck(), rng))
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	id := uuid.New()
	if logger != nil {
		logger = logger.With(zap.String("session_id", id.String()))
	}

	sel := NewSelection()
	s := &Session{
		id:      id,
		opts:    opts,
		seed:    seed,
		started: time.Now(),
		board:   b,
		sel:     &sel,
		events:  NewEventBus(),
		logger:  logger,
	}
	s.history = NewHistoryManager(b, logger)
	s.input = NewInputStateMachine(b, s.sel)
	s.moves = NewMovesHandler(MovesHandlerConfig{
		Board:     b,
		Selection: s.sel,
		Mover:     NewCardMover(b, logger),
		Stock:     NewStockManager(rng, opts.Recycle, logger),
		History:   s.history,
		Events:    s.events,
		HardMode:  opts.HardMode,
		Policy:    opts.Confirm,
		SessionID: id.String(),
	}, logger)
	s.events.Subscribe(s.describe)

	if logger != nil {
		logger.Info("dealt new game",
			zap.Uint64("seed", seed),
			zap.Bool("hard_mode", opts.HardMode),
			zap.String("recycle", string(opts.Recycle)),
			zap.String("confirm_policy", string(opts.Confirm)),
		)
	}
	return s, nil
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) Seed() uint64         { return s.seed }
func (s *Session) Started() time.Time   { return s.started }
func (s *Session) Moves() int           { return s.board.Moves }
func (s *Session) HardMode() bool       { return s.opts.HardMode }
func (s *Session) Events() *EventBus    { return s.events }
func (s *Session) Selection() Selection { return *s.sel }

// Step processes one input.
func (s *Session) Step(in Input) (Status, error) {
	_, status, err := s.step(in)
	return status, err
}

func (s *Session) step(in Input) (Result, Status, error) {
	if s.won {
		return Result{}, StatusWon, ErrGameOver
	}

	action := s.input.Handle(in)
	if action == ActionQuitGame {
		return Result{Action: action}, StatusQuitRequested, nil
	}
	if action == ActionNone {
		return Result{Action: action, Highlight: s.highlight}, StatusContinue, nil
	}

	res := s.moves.Handle(action)
	s.highlight = res.Highlight

	if s.logger != nil {
		s.logger.Debug("handled input",
			zap.Stringer("input", in),
			zap.String("action", string(action)),
			zap.Stringer("selection", *s.sel),
			zap.Stringer("highlight", res.Highlight),
			zap.Int("moves", s.board.Moves),
		)
	}

	if !s.sel.Picked && rules.IsWon(s.board) {
		s.won = true
		s.events.Publish(Event{
			Type:      EventGameWon,
			SessionID: s.id.String(),
			Moves:     s.board.Moves,
		})
		return res, StatusWon, nil
	}
	return res, StatusContinue, nil
}

// Run drives the game until it is won or the player confirms a quit. It
// returns the final move count, or QuitSentinel on a quit.
func (s *Session) Run(ctx context.Context, src InputSource, r Renderer, q QuitConfirmer) (int, error) {
	if err := r.Render(s.View()); err != nil {
		return QuitSentinel, fmt.Errorf("render: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return QuitSentinel, err
		}

		in, err := src.Next(ctx)
		if err != nil {
			return QuitSentinel, fmt.Errorf("read input: %w", err)
		}

		res, status, err := s.step(in)
		if err != nil {
			return QuitSentinel, err
		}

		switch status {
		case StatusWon:
			if err := r.Render(s.View()); err != nil {
				return s.board.Moves, fmt.Errorf("render: %w", err)
			}
			if s.logger != nil {
				s.logger.Info("game won", zap.Int("moves", s.board.Moves),
					zap.Duration("elapsed", time.Since(s.started)))
			}
			return s.board.Moves, nil

		case StatusQuitRequested:
			ok, err := q.ConfirmQuit(ctx)
			if err != nil {
				return QuitSentinel, fmt.Errorf("confirm quit: %w", err)
			}
			if ok {
				if s.logger != nil {
					s.logger.Info("game abandoned", zap.Int("moves", s.board.Moves))
				}
				return QuitSentinel, nil
			}
			// The prompt drew over the board.
			if err := r.Render(s.View()); err != nil {
				return QuitSentinel, fmt.Errorf("render: %w", err)
			}
			continue
		}

		if res.Action != ActionNone {
			if err := r.Render(s.View()); err != nil {
				return QuitSentinel, fmt.Errorf("render: %w", err)
			}
		}
	}
}

// View copies the current state for a renderer.
func (s *Session) View() View {
	v := View{
		SessionID:  s.id.String(),
		Talon:      pileView(s.board.Talon),
		StockCount: s.board.Stock.Len(),
		Moves:      s.board.Moves,
		Selection:  *s.sel,
		Highlight:  s.highlight,
		HardMode:   s.opts.HardMode,
		Won:        s.won,
		Message:    s.message,
	}
	for i, p := range s.board.Tableau {
		v.Tableau[i] = pileView(p)
	}
	for i, p := range s.board.Foundations {
		v.Foundations[i] = pileView(p)
	}
	return v
}

// describe keeps a one-line status message in step with the event stream.
func (s *Session) describe(e Event) {
	switch e.Type {
	case EventCardsDrawn:
		s.message = fmt.Sprintf("Drew %d", e.Amount)
	case EventStockRecycled:
		s.message = fmt.Sprintf("Stock refilled with %d cards", e.Amount)
	case EventFoundationMove:
		s.message = e.Description + " to foundation"
	case EventMoveRejected:
		s.message = "Can't place there: " + e.Description
	case EventMoveUndone:
		s.message = "Undone"
	case EventGameWon:
		s.message = fmt.Sprintf("Solved in %d moves", e.Moves)
	default:
		s.message = ""
	}
}
