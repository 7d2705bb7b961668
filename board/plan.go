package board

import "github.com/mattn/go-runewidth"

// GlyphCell is the pixel advance of one half-width character cell. The
// reference panel uses a 12px dot font, so fullwidth runes occupy two cells.
const GlyphCell = 6

// TextWidth returns the pixel width of a string on the panel, fullwidth
// runes counting double.
func TextWidth(s string) int {
	return runewidth.StringWidth(s) * GlyphCell
}

// OpKind discriminates layout plan operations.
type OpKind int

const (
	// OpText draws a colored text run with its baseline origin at X, Y.
	OpText OpKind = iota
	// OpClear blanks a rectangular region, erasing anything drawn earlier
	// in the plan.
	OpClear
)

// Rect is an inclusive pixel rectangle.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Op is one drawing operation. Operations are ordered: a clear only erases
// runs that precede it, which is how the clock region is blanked under the
// scrolling ticker before the clock digits are drawn.
type Op struct {
	Kind  OpKind
	X, Y  int
	Text  string
	Color Color
	Rect  Rect
}

// Plan is the layout handed to a renderer for one frame. The frame starts
// black; the plan lists everything to draw on top, in order.
type Plan struct {
	Width  int
	Height int
	Ops    []Op
}

func (p *Plan) text(x, y int, text string, color Color) {
	p.Ops = append(p.Ops, Op{Kind: OpText, X: x, Y: y, Text: text, Color: color})
}

func (p *Plan) clear(r Rect) {
	p.Ops = append(p.Ops, Op{Kind: OpClear, Rect: r})
}

// TextOps returns only the text operations, in plan order. Mostly a test
// convenience.
func (p *Plan) TextOps() []Op {
	var out []Op
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}
