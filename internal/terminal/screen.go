package terminal

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/game"
	"github.com/Luto101/Solitaire/internal/game/board"
)

const (
	colWidth   = 6
	upperRow   = 2
	tableauRow = 5
	leftMargin = 2
)

var (
	styleBase    = tcell.StyleDefault
	styleRed     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBack    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle   = tcell.StyleDefault.Bold(true)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

var highlightStyles = map[game.Highlight]tcell.Style{
	game.HighlightNeutral: tcell.StyleDefault.Reverse(true),
	game.HighlightPicked:  tcell.StyleDefault.Background(tcell.ColorOlive).Foreground(tcell.ColorBlack),
	game.HighlightValid:   tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack),
	game.HighlightInvalid: tcell.StyleDefault.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite),
}

// Screen is a tcell-backed input source, renderer and quit confirmer.
type Screen struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	once   sync.Once
	last   *game.View
	logger *zap.Logger
}

// New opens the terminal screen.
func New(logger *zap.Logger) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return NewWithScreen(s, logger)
}

// NewWithScreen initialises s and starts reading its events.
func NewWithScreen(s tcell.Screen, logger *zap.Logger) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.HideCursor()

	t := &Screen{
		screen: s,
		events: make(chan tcell.Event, 16),
		done:   make(chan struct{}),
		logger: logger,
	}
	go t.pump()
	return t, nil
}

func (t *Screen) pump() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Close restores the terminal.
func (t *Screen) Close() {
	t.once.Do(func() {
		close(t.done)
		t.screen.Fini()
	})
}

// nextKey blocks for the next key press, redrawing on resize.
func (t *Screen) nextKey(ctx context.Context) (*tcell.EventKey, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-t.events:
			if !ok {
				return nil, io.EOF
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				return ev, nil
			case *tcell.EventResize:
				t.screen.Sync()
				if t.last != nil {
					t.draw(*t.last)
				}
			}
		}
	}
}

// Next implements game.InputSource.
func (t *Screen) Next(ctx context.Context) (game.Input, error) {
	for {
		ev, err := t.nextKey(ctx)
		if err != nil {
			return game.Input{}, err
		}
		if in, ok := MapKey(ev); ok {
			return in, nil
		}
		if t.logger != nil {
			t.logger.Debug("ignored key", zap.String("key", ev.Name()))
		}
	}
}

// Render implements game.Renderer.
func (t *Screen) Render(v game.View) error {
	t.last = &v
	t.draw(v)
	return nil
}

// ConfirmQuit implements game.QuitConfirmer.
func (t *Screen) ConfirmQuit(ctx context.Context) (bool, error) {
	_, h := t.screen.Size()
	t.clearLine(h - 2)
	t.drawText(leftMargin, h-2, styleMessage, "Quit this game? (y/n)")
	t.screen.Show()

	for {
		ev, err := t.nextKey(ctx)
		if err != nil {
			return false, err
		}
		switch {
		case ev.Key() == tcell.KeyEsc:
			return false, nil
		case ev.Key() == tcell.KeyCtrlC:
			return true, nil
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'y', 'Y':
				return true, nil
			case 'n', 'N':
				return false, nil
			}
		}
	}
}

// WaitKey blocks until any key is pressed.
func (t *Screen) WaitKey(ctx context.Context) error {
	_, err := t.nextKey(ctx)
	return err
}

func (t *Screen) draw(v game.View) {
	t.screen.Clear()

	header := fmt.Sprintf("Klondike  moves: %d", v.Moves)
	if v.HardMode {
		header += "  [draw 3]"
	}
	t.drawText(leftMargin, 0, styleTitle, header)

	cursor := highlightStyles[v.Highlight]
	sel := v.Selection

	// Stock.
	stock := "[  ]"
	if v.StockCount > 0 {
		stock = fmt.Sprintf("[%2d]", v.StockCount)
	}
	t.drawText(leftMargin, upperRow, pick(sel.Slot == board.Stock, cursor, styleBack), stock)

	// Talon: the top three are fanned in draw-3 mode.
	talonX := leftMargin + colWidth
	shown := v.Talon
	if !v.HardMode && len(shown) > 1 {
		shown = shown[len(shown)-1:]
	}
	if len(shown) > 3 {
		shown = shown[len(shown)-3:]
	}
	if len(shown) == 0 {
		t.drawText(talonX, upperRow, styleDim, "[  ]")
	}
	for i, c := range shown {
		style := cardStyle(c)
		if i == len(shown)-1 && sel.Slot == board.Talon {
			style = cursor
		}
		t.drawCard(talonX+i*3, upperRow, style, c)
	}

	// Foundations.
	for i, f := range v.Foundations {
		x := leftMargin + (3+i)*colWidth
		selected := sel.Slot == board.Foundation && sel.Column == i
		top, ok := game.Top(f)
		switch {
		case !ok:
			t.drawText(x, upperRow, pick(selected, cursor, styleDim), "[  ]")
		default:
			t.drawCard(x, upperRow, pick(selected, cursor, cardStyle(top)), top)
		}
	}

	// Tableau.
	for col, pile := range v.Tableau {
		x := leftMargin + col*colWidth
		selected := sel.Slot == board.Tableau && sel.Column == col
		if len(pile) == 0 {
			t.drawText(x, tableauRow, pick(selected, cursor, styleDim), "[  ]")
			continue
		}
		for j, c := range pile {
			inRun := selected && j >= len(pile)-sel.Count
			t.drawCard(x, tableauRow+j, pick(inRun, cursor, cardStyle(c)), c)
		}
	}

	_, h := t.screen.Size()
	if v.Message != "" {
		t.drawText(leftMargin, h-2, styleMessage, v.Message)
	}
	t.drawText(leftMargin, h-1, styleDim,
		"arrows move  1-7 column  enter pick/place  esc cancel  ctrl+z undo  tab stock  q quit")
	t.screen.Show()
}

func (t *Screen) drawCard(x, y int, style tcell.Style, c game.CardView) {
	t.drawText(x, y, style, fmt.Sprintf("%-3s", c.Label))
}

func (t *Screen) drawText(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (t *Screen) clearLine(y int) {
	w, _ := t.screen.Size()
	for x := 0; x < w; x++ {
		t.screen.SetContent(x, y, ' ', nil, styleBase)
	}
}

func cardStyle(c game.CardView) tcell.Style {
	switch {
	case !c.FaceUp:
		return styleBack
	case c.Red:
		return styleRed
	}
	return styleBase
}

func pick(cond bool, a, b tcell.Style) tcell.Style {
	if cond {
		return a
	}
	return b
}
