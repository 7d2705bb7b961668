package display

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/FlyingObject1024/information-board/board"
)

// Terminal previews layout plans as 24-bit ANSI colored text. Each glyph
// cell of the panel maps to one terminal column and each text baseline to
// one terminal row, so scroll motion is visible in character steps.
type Terminal struct {
	w io.Writer
}

// NewTerminal creates a terminal renderer writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// Render redraws the whole preview. Clears are skipped: the screen is wiped
// every frame and the terminal draws later runs over earlier ones anyway.
func (t *Terminal) Render(p *board.Plan) error {
	cols := p.Width / board.GlyphCell
	if _, err := fmt.Fprint(t.w, "\x1b[2J\x1b[H"); err != nil {
		return err
	}
	for _, op := range p.Ops {
		if op.Kind != board.OpText {
			continue
		}
		text := op.Text
		col := op.X / board.GlyphCell
		if col < 0 {
			// Partially scrolled off the left edge: trim the hidden cells.
			text = runewidth.TruncateLeft(text, -col, "")
			col = 0
		}
		if col >= cols {
			continue
		}
		text = runewidth.Truncate(text, cols-col, "")
		row := op.Y/11 + 1
		fmt.Fprintf(t.w, "\x1b[%d;%dH\x1b[38;2;%d;%d;%dm%s\x1b[0m",
			row, col+1, op.Color.R, op.Color.G, op.Color.B, text)
	}
	_, err := fmt.Fprintln(t.w)
	return err
}

// Close resets terminal colors.
func (t *Terminal) Close() error {
	_, err := fmt.Fprint(t.w, "\x1b[0m\n")
	return err
}
