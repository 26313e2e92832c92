package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/Luto101/Solitaire/internal/scores"
)

var styleLatest = tcell.StyleDefault.Foreground(tcell.ColorGreen)

// ShowScores lists the best games, highlighting the one just played, and
// waits for a key.
func (t *Screen) ShowScores(ctx context.Context, title string, best []scores.Score, latest uuid.UUID) error {
	t.screen.Clear()
	t.drawText(leftMargin, 0, styleTitle, title)

	if len(best) == 0 {
		t.drawText(leftMargin, 2, styleDim, "No scores yet")
	} else {
		t.drawText(leftMargin, 2, styleBase, "Best scores:")
	}
	for i, s := range best {
		style := styleBase
		if s.ID == latest {
			style = styleLatest
		}
		t.drawText(leftMargin, 3+i, style, FormatScore(i+1, s))
	}

	_, h := t.screen.Size()
	t.drawText(leftMargin, h-1, styleDim, "press any key")
	t.screen.Show()
	return t.WaitKey(ctx)
}

// FormatScore renders one line of the score table.
func FormatScore(rank int, s scores.Score) string {
	difficulty := "easy"
	if s.HardMode {
		difficulty = "hard"
	}
	d := s.Duration().Round(time.Second)
	return fmt.Sprintf("%2d. %s - time: %02d:%02d:%02d, difficulty: %s, moves: %d",
		rank, s.Start.Format("2006-01-02 15:04"),
		int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60,
		difficulty, s.Moves)
}
