package game

import (
	"github.com/Luto101/Solitaire/internal/game/board"
)

// InputStateMachine turns raw inputs into actions, moving the shared cursor
// as it goes. It reads the board but never changes it.
type InputStateMachine struct {
	board *board.Board
	sel   *Selection
}

// NewInputStateMachine creates a state machine driving sel over b.
func NewInputStateMachine(b *board.Board, sel *Selection) *InputStateMachine {
	return &InputStateMachine{board: b, sel: sel}
}

// Handle applies one input. Inputs that make no sense in the current state
// yield ActionNone and leave the cursor alone.
func (m *InputStateMachine) Handle(in Input) Action {
	switch in.Key {
	case KeyLeft:
		return m.horizontal(-1)
	case KeyRight:
		return m.horizontal(1)
	case KeyUp:
		return m.up()
	case KeyDown:
		return m.down()
	case KeyColumn:
		return m.column(in.Column)
	case KeyConfirm:
		return m.confirm()
	case KeyCancel:
		if m.sel.Picked {
			return ActionSelectionCanceled
		}
	case KeyUndo:
		if m.sel.Picked {
			return ActionSelectionCanceled
		}
		return ActionMoveUndone
	case KeyQuit:
		return ActionQuitGame
	case KeyFocusStock:
		if !m.sel.Picked && m.sel.Slot != board.Stock {
			m.jump(board.Stock, 0)
			return ActionSelectionMoved
		}
	}
	return ActionNone
}

func (m *InputStateMachine) horizontal(dir int) Action {
	if m.sel.Slot == board.Tableau {
		m.sel.Column = (m.sel.Column + dir + board.TableauColumns) % board.TableauColumns
		if !m.sel.Picked {
			m.sel.Count = 1
		}
		return ActionSelectionMoved
	}

	if m.sel.Picked {
		return ActionNone
	}
	if dir > 0 {
		m.upperRight()
	} else {
		m.upperLeft()
	}
	return ActionSelectionMoved
}

// upperRight walks Stock, Talon (when non-empty), Foundation 0..3, Stock.
func (m *InputStateMachine) upperRight() {
	switch m.sel.Slot {
	case board.Stock:
		if !m.board.Talon.IsEmpty() {
			m.jump(board.Talon, 0)
		} else {
			m.jump(board.Foundation, 0)
		}
	case board.Talon:
		m.jump(board.Foundation, 0)
	case board.Foundation:
		if m.sel.Column < board.FoundationCount-1 {
			m.jump(board.Foundation, m.sel.Column+1)
		} else {
			m.jump(board.Stock, 0)
		}
	}
}

func (m *InputStateMachine) upperLeft() {
	switch m.sel.Slot {
	case board.Stock:
		m.jump(board.Foundation, board.FoundationCount-1)
	case board.Talon:
		m.jump(board.Stock, 0)
	case board.Foundation:
		switch {
		case m.sel.Column > 0:
			m.jump(board.Foundation, m.sel.Column-1)
		case !m.board.Talon.IsEmpty():
			m.jump(board.Talon, 0)
		default:
			m.jump(board.Stock, 0)
		}
	}
}

func (m *InputStateMachine) up() Action {
	if m.sel.Slot != board.Tableau {
		return ActionNone
	}

	if m.sel.Picked {
		// A talon or foundation card can be carried back where it came from.
		if m.sel.Origin.Slot == board.Talon || m.sel.Origin.Slot == board.Foundation {
			m.sel.Slot = m.sel.Origin.Slot
			m.sel.Column = m.sel.Origin.Index
			m.sel.Count = 1
			return ActionSelectionMoved
		}
		return ActionNone
	}

	col := m.board.Tableau[m.sel.Column]
	if m.sel.Count < col.Len() && col.PeekAt(m.sel.Count).FaceUp() {
		m.sel.Count++
		return ActionSelectionMoved
	}
	m.jump(board.Stock, 0)
	return ActionSelectionMoved
}

func (m *InputStateMachine) down() Action {
	if m.sel.Slot != board.Tableau {
		m.sel.Slot = board.Tableau
		m.sel.Column = 0
		m.sel.Count = 1
		return ActionSelectionMoved
	}
	if m.sel.Count > 1 && !m.sel.Picked {
		m.sel.Count--
		return ActionSelectionMoved
	}
	return ActionNone
}

func (m *InputStateMachine) column(n int) Action {
	if n < 1 || n > board.TableauColumns {
		return ActionNone
	}
	target := n - 1
	if m.sel.Slot == board.Tableau && m.sel.Column == target {
		if m.sel.Picked || m.sel.Count == 1 {
			return ActionNone
		}
	}
	if m.sel.Picked && m.sel.Slot != board.Tableau {
		// Carrying a single talon or foundation card down.
		m.sel.Count = 1
	}
	m.sel.Slot = board.Tableau
	m.sel.Column = target
	if !m.sel.Picked {
		m.sel.Count = 1
	}
	return ActionSelectionMoved
}

func (m *InputStateMachine) confirm() Action {
	var ok bool
	switch m.sel.Slot {
	case board.Stock:
		ok = !m.board.Stock.IsEmpty() || !m.board.Talon.IsEmpty()
	case board.Talon:
		ok = !m.board.Talon.IsEmpty()
	case board.Foundation:
		ok = !m.board.Foundations[m.sel.Column].IsEmpty()
	case board.Tableau:
		ok = m.board.Tableau[m.sel.Column].Len() >= m.sel.Count
	}
	if ok {
		return ActionClick
	}
	return ActionNone
}

func (m *InputStateMachine) jump(slot board.Slot, column int) {
	m.sel.Slot = slot
	m.sel.Column = column
	m.sel.Count = 1
}
