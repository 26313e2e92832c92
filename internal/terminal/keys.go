// Package terminal hosts a game session on a tcell screen.
package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Luto101/Solitaire/internal/game"
)

// MapKey translates a key press into a game input. It reports false for
// keys the game does not use.
func MapKey(ev *tcell.EventKey) (game.Input, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.Press(game.KeyLeft), true
	case tcell.KeyRight:
		return game.Press(game.KeyRight), true
	case tcell.KeyUp:
		return game.Press(game.KeyUp), true
	case tcell.KeyDown:
		return game.Press(game.KeyDown), true
	case tcell.KeyEnter:
		return game.Press(game.KeyConfirm), true
	case tcell.KeyEsc:
		return game.Press(game.KeyCancel), true
	case tcell.KeyCtrlZ:
		return game.Press(game.KeyUndo), true
	case tcell.KeyTab:
		return game.Press(game.KeyFocusStock), true
	case tcell.KeyCtrlC:
		return game.Press(game.KeyQuit), true
	case tcell.KeyRune:
		return mapRune(ev.Rune())
	}
	return game.Input{}, false
}

func mapRune(r rune) (game.Input, bool) {
	switch {
	case r >= '1' && r <= '7':
		return game.SelectColumn(int(r - '0')), true
	case r == ' ':
		return game.Press(game.KeyConfirm), true
	case r == 'q' || r == 'Q':
		return game.Press(game.KeyQuit), true
	case r == 'u' || r == 'U':
		return game.Press(game.KeyUndo), true
	case r == 'a' || r == 'A' || r == 'h':
		return game.Press(game.KeyLeft), true
	case r == 'd' || r == 'D' || r == 'l':
		return game.Press(game.KeyRight), true
	case r == 'w' || r == 'W' || r == 'k':
		return game.Press(game.KeyUp), true
	case r == 's' || r == 'S' || r == 'j':
		return game.Press(game.KeyDown), true
	}
	return game.Input{}, false
}
