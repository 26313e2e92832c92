package game

import (
	"fmt"

	"github.com/Luto101/Solitaire/internal/game/board"
)

// Selection is the player's cursor.
type Selection struct {
	Slot   board.Slot
	Column int
	// Count is how many cards from the top of a tableau column are selected.
	Count  int
	Picked bool
	// Origin is where the picked cards came from. Only meaningful while Picked.
	Origin board.Location
}

// NewSelection returns the initial cursor: on the stock, one card, nothing picked.
func NewSelection() Selection {
	return Selection{Slot: board.Stock, Count: 1}
}

// Location returns the pile under the cursor.
func (s Selection) Location() board.Location {
	return board.Location{Slot: s.Slot, Index: s.Column}
}

// AtOrigin reports whether the cursor sits on the pile the cards were picked from.
func (s Selection) AtOrigin() bool {
	return s.Slot == s.Origin.Slot && s.Column == s.Origin.Index
}

func (s Selection) String() string {
	picked := ""
	if s.Picked {
		picked = " picked"
	}
	return fmt.Sprintf("%s x%d%s", s.Location(), s.Count, picked)
}

// Key is a logical player input.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyColumn
	KeyConfirm
	KeyCancel
	KeyUndo
	KeyQuit
	KeyFocusStock
)

var keyNames = map[Key]string{
	KeyNone:       "NONE",
	KeyLeft:       "LEFT",
	KeyRight:      "RIGHT",
	KeyUp:         "UP",
	KeyDown:       "DOWN",
	KeyColumn:     "COLUMN",
	KeyConfirm:    "CONFIRM",
	KeyCancel:     "CANCEL",
	KeyUndo:       "UNDO",
	KeyQuit:       "QUIT",
	KeyFocusStock: "FOCUS_STOCK",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KEY_%d", int(k))
}

// Input is one player input event. Column is 1..7 and only used with KeyColumn.
type Input struct {
	Key    Key
	Column int
}

// Press builds an input for a key without a column.
func Press(k Key) Input { return Input{Key: k} }

// SelectColumn builds an input that jumps to tableau column n (1..7).
func SelectColumn(n int) Input { return Input{Key: KeyColumn, Column: n} }

func (in Input) String() string {
	if in.Key == KeyColumn {
		return fmt.Sprintf("COLUMN_%d", in.Column)
	}
	return in.Key.String()
}

// Action is what an input resolves to after the cursor rules are applied.
type Action string

const (
	ActionNone              Action = "NONE"
	ActionSelectionMoved    Action = "SELECTION_MOVED"
	ActionClick             Action = "CLICK"
	ActionSelectionCanceled Action = "SELECTION_CANCELED"
	ActionMoveUndone        Action = "MOVE_UNDONE"
	ActionQuitGame          Action = "QUIT_GAME"
)
