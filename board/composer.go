package board

import (
	"time"

	"github.com/FlyingObject1024/information-board/feed"
)

// Panel geometry of the reference 128x32 layout: two departure rows, the
// ticker and clock sharing the bottom row.
const (
	maxRows = 2

	rowBaseline0 = 9
	rowBaseline1 = 20

	primaryCountdownX = 45
	alternateTimeX    = 50
	rightColumnInset  = 50

	bottomBaseline = 31
	clockInset     = 28
	clockClearTop  = 22
)

var rowBaselines = [maxRows]int{rowBaseline0, rowBaseline1}

// Composer turns a data snapshot into per-frame layout plans. It is the
// single owner of all time-varying display state: the layout mode timer and
// the ticker cursor (message index plus horizontal scroll offset). The
// cursor survives snapshot refreshes so an in-flight message keeps scrolling
// when the list is rebuilt.
//
// Composer is not safe for concurrent use; the display loop is the only
// caller.
type Composer struct {
	width  int
	height int
	rules  []ColorRule
	modes  *ModeScheduler

	snap   feed.Snapshot
	ticker []TickerItem

	msgIndex int
	scrollX  int
}

// NewComposer creates a composer for a panel of the given size. The ticker
// starts fully off the right edge.
func NewComposer(width, height int, rules []ColorRule, toggleEvery time.Duration, now time.Time) *Composer {
	return &Composer{
		width:   width,
		height:  height,
		rules:   rules,
		modes:   NewModeScheduler(toggleEvery, now),
		scrollX: width,
	}
}

// SetSnapshot replaces the data snapshot and rebuilds the ticker list. The
// scroll cursor is kept, except that the message index wraps to the start
// when the new list is shorter than the current position.
func (c *Composer) SetSnapshot(snap feed.Snapshot, now time.Time) {
	c.snap = snap
	c.ticker = ComposeTicker(now, snap)
	if c.msgIndex >= len(c.ticker) {
		c.msgIndex = 0
	}
}

// Ticker returns the current ticker list.
func (c *Composer) Ticker() []TickerItem {
	return c.ticker
}

// Frame composes the layout plan for one frame and advances the composer's
// frame-scoped state (layout toggle timer, ticker scroll).
func (c *Composer) Frame(now time.Time) *Plan {
	mode := c.modes.Tick(now)
	p := &Plan{Width: c.width, Height: c.height}
	c.composeRows(p, mode, now)
	c.composeTicker(p)
	c.composeClock(p, now)
	return p
}

func (c *Composer) composeRows(p *Plan, mode Mode, now time.Time) {
	if c.snap.Departures == nil {
		return
	}
	for i, row := range c.snap.Departures.Rows {
		if i >= maxRows {
			break
		}
		dep := row.Departure
		if dep == nil || len(dep.Segments) == 0 {
			continue
		}
		seg := dep.Segments[0]
		y := rowBaselines[i]

		if mode == ModeAlternate {
			p.text(0, y, seg.Type, ClassifyType(c.rules, seg.Type))
			p.text(alternateTimeX, y, orDefault(dep.DepartureTime, labelUnknownTime), ColorGreen)
			p.text(c.width-rightColumnInset, y, seg.Destination, ColorOrange)
			continue
		}

		countdown, tier := Countdown(dep.DepartureTime, dep.Status, now)
		p.text(0, y, row.Direction+"方面", ColorWhite)
		p.text(primaryCountdownX, y, countdown, tier.Color())

		dest, destColor := seg.Destination, ColorOrange
		if phrase, ok := tier.SubstituteDestination(); ok {
			dest, destColor = phrase, tier.Color()
		}
		p.text(c.width-rightColumnInset, y, dest, destColor)
	}
}

func (c *Composer) composeTicker(p *Plan) {
	if len(c.ticker) == 0 {
		return
	}
	if c.msgIndex >= len(c.ticker) {
		c.msgIndex = 0
	}
	item := c.ticker[c.msgIndex]
	p.text(c.scrollX, bottomBaseline, item.Text, item.Color)

	c.scrollX--
	if c.scrollX < -TextWidth(item.Text) {
		c.msgIndex++
		c.scrollX = c.width
	}
}

// composeClock draws the current time bottom-right, blinking the separator
// each second. The clock region is cleared first so a scrolled ticker run
// underneath never ghosts through the digits.
func (c *Composer) composeClock(p *Plan, now time.Time) {
	sep := " "
	if now.Second()%2 != 0 {
		sep = ":"
	}
	x := c.width - clockInset
	p.clear(Rect{X0: x - 1, Y0: clockClearTop, X1: c.width, Y1: bottomBaseline})
	p.text(x, bottomBaseline, now.Format("15")+sep+now.Format("04"), ColorWhite)
}
