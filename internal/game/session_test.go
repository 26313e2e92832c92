package game_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Luto101/Solitaire/internal/game"
	"github.com/Luto101/Solitaire/internal/game/board"
)

type scriptedInput struct {
	inputs []game.Input
}

func (s *scriptedInput) Next(ctx context.Context) (game.Input, error) {
	if err := ctx.Err(); err != nil {
		return game.Input{}, err
	}
	if len(s.inputs) == 0 {
		return game.Input{}, io.EOF
	}
	in := s.inputs[0]
	s.inputs = s.inputs[1:]
	return in, nil
}

type countingRenderer struct {
	views []game.View
}

func (r *countingRenderer) Render(v game.View) error {
	r.views = append(r.views, v)
	return nil
}

type scriptedConfirmer struct {
	answers []bool
	asked   int
}

func (c *scriptedConfirmer) ConfirmQuit(context.Context) (bool, error) {
	answer := c.answers[c.asked]
	c.asked++
	return answer, nil
}

func newSession(t *testing.T, opts game.Options) *game.Session {
	t.Helper()
	s, err := game.NewSession(opts, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	return s
}

func TestRunQuitNeedsConfirmation(t *testing.T) {
	s := newSession(t, game.Options{Seed: 3})
	src := &scriptedInput{inputs: []game.Input{
		game.Press(game.KeyQuit),
		game.Press(game.KeyRight),
		game.Press(game.KeyQuit),
	}}
	r := &countingRenderer{}
	q := &scriptedConfirmer{answers: []bool{false, true}}

	moves, err := s.Run(context.Background(), src, r, q)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if moves != game.QuitSentinel {
		t.Fatalf("expected quit sentinel, got %d", moves)
	}
	if q.asked != 2 {
		t.Fatalf("expected two quit prompts, got %d", q.asked)
	}
	// Initial frame, redraw after the declined prompt, and the cursor move.
	if len(r.views) != 3 {
		t.Fatalf("expected 3 renders, got %d", len(r.views))
	}
	if got := r.views[2].Selection.Slot; got != board.Foundation {
		t.Fatalf("expected cursor on foundation, got %s", got)
	}
}

func TestRunSkipsRenderForIgnoredInput(t *testing.T) {
	s := newSession(t, game.Options{Seed: 3})
	src := &scriptedInput{inputs: []game.Input{
		game.Press(game.KeyCancel),
		game.SelectColumn(9),
	}}
	r := &countingRenderer{}

	_, err := s.Run(context.Background(), src, r, &scriptedConfirmer{})
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected input exhaustion, got %v", err)
	}
	if len(r.views) != 1 {
		t.Fatalf("expected only the initial render, got %d", len(r.views))
	}
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	s := newSession(t, game.Options{Seed: 4})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	moves, err := s.Run(ctx, &scriptedInput{}, &countingRenderer{}, &scriptedConfirmer{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if moves != game.QuitSentinel {
		t.Fatalf("expected quit sentinel, got %d", moves)
	}
}

func TestSameSeedDealsSameGame(t *testing.T) {
	a := newSession(t, game.Options{Seed: 99}).View()
	b := newSession(t, game.Options{Seed: 99}).View()

	if a.SessionID == b.SessionID {
		t.Fatalf("session IDs must be unique")
	}
	for col := range a.Tableau {
		if len(a.Tableau[col]) != col+1 {
			t.Fatalf("column %d: expected %d cards, got %d", col, col+1, len(a.Tableau[col]))
		}
		for i := range a.Tableau[col] {
			if a.Tableau[col][i] != b.Tableau[col][i] {
				t.Fatalf("column %d differs between equal seeds", col)
			}
		}
	}
	if a.StockCount != 24 {
		t.Fatalf("expected 24 stock cards, got %d", a.StockCount)
	}
}

func TestViewIsACopy(t *testing.T) {
	s := newSession(t, game.Options{Seed: 5})
	v := s.View()
	v.Tableau[6] = nil

	if got := len(s.View().Tableau[6]); got != 7 {
		t.Fatalf("view mutation leaked into session: %d cards", got)
	}
	top, ok := game.Top(s.View().Tableau[6])
	if !ok || !top.FaceUp {
		t.Fatalf("expected a face-up top card on column 7")
	}
}

func TestStepDrawsFromStock(t *testing.T) {
	s := newSession(t, game.Options{Seed: 6, HardMode: true})
	status, err := s.Step(game.Press(game.KeyConfirm))
	if err != nil || status != game.StatusContinue {
		t.Fatalf("unexpected step result %s, %v", status, err)
	}
	v := s.View()
	if len(v.Talon) != 3 || v.StockCount != 21 {
		t.Fatalf("expected 3 drawn, got talon=%d stock=%d", len(v.Talon), v.StockCount)
	}
	if v.Moves != 1 || v.Message != "Drew 3" {
		t.Fatalf("unexpected moves=%d message=%q", v.Moves, v.Message)
	}
}

func TestNewSessionRejectsUnknownPolicy(t *testing.T) {
	if _, err := game.NewSession(game.Options{Recycle: "burn"}, nil); err == nil {
		t.Fatalf("expected error for unknown recycle policy")
	}
	if _, err := game.NewSession(game.Options{Confirm: "lenient"}, nil); err == nil {
		t.Fatalf("expected error for unknown confirm policy")
	}
}
