package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Luto101/Solitaire/internal/game"
)

// PlayReplay steps through a recorded game. Left and right move one frame,
// Home and End jump to either end, Esc or q leaves.
func (t *Screen) PlayReplay(ctx context.Context, r *game.Replay) error {
	if r.Size() == 0 {
		return fmt.Errorf("replay %s has no frames", r.SessionID)
	}
	r.Start()

	for {
		t.showFrame(r)

		ev, err := t.nextKey(ctx)
		if err != nil {
			return err
		}
		switch ev.Key() {
		case tcell.KeyLeft:
			r.Skip(-1)
		case tcell.KeyRight, tcell.KeyEnter:
			r.Skip(1)
		case tcell.KeyHome:
			r.Start()
		case tcell.KeyEnd:
			r.Skip(r.Size())
		case tcell.KeyEsc, tcell.KeyCtrlC:
			return nil
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return nil
			case 'h':
				r.Skip(-1)
			case 'l', ' ':
				r.Skip(1)
			}
		}
	}
}

func (t *Screen) showFrame(r *game.Replay) {
	f := r.Current()
	v := f.View(r.SessionID, r.HardMode)
	v.Message = fmt.Sprintf("replay %d/%d", r.CurrentIndex+1, r.Size())
	if f.Event != "" {
		v.Message += "  " + string(f.Event)
	}
	t.last = &v
	t.draw(v)

	if t.logger != nil {
		t.logger.Debug("replay frame",
			zap.String("session_id", r.SessionID),
			zap.Int("index", r.CurrentIndex),
			zap.String("checksum", f.Checksum),
		)
	}
}
