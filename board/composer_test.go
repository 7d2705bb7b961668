package board

import (
	"testing"
	"time"

	"github.com/FlyingObject1024/information-board/feed"
)

func testSnapshot() feed.Snapshot {
	return feed.Snapshot{
		Departures: &feed.DepartureBoard{Rows: []feed.DepartureRow{
			{Direction: "渋谷", Departure: &feed.Departure{
				DepartureTime: "08:15",
				Segments:      []feed.Segment{{Line: "井の頭線", Type: "急行", Destination: "渋谷"}},
			}},
			{Direction: "新宿", Departure: &feed.Departure{
				DepartureTime: "09:40",
				Segments:      []feed.Segment{{Line: "京王線", Type: "特急", Destination: "新宿"}},
			}},
		}},
	}
}

func newTestComposer(toggle time.Duration, now time.Time) *Composer {
	return NewComposer(128, 32, DefaultTypeColors(), toggle, now)
}

// tickerOp extracts the ticker text run: the second-to-last text op, since
// the clock is always drawn last.
func tickerOp(t *testing.T, p *Plan) Op {
	t.Helper()
	ops := p.TextOps()
	if len(ops) < 2 {
		t.Fatalf("plan has %d text ops, want at least ticker and clock", len(ops))
	}
	return ops[len(ops)-2]
}

// TestComposer_PrimaryLayout checks the direction/countdown/destination row
// and the urgency phrase substitution.
func TestComposer_PrimaryLayout(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	c := newTestComposer(time.Hour, now)
	c.SetSnapshot(testSnapshot(), now)

	ops := c.Frame(now).TextOps()
	// Two rows of three runs, then ticker and clock.
	if len(ops) != 8 {
		t.Fatalf("got %d text ops, want 8", len(ops))
	}

	if ops[0].Text != "渋谷方面" || ops[0].X != 0 || ops[0].Y != 9 {
		t.Errorf("row 0 direction = %+v", ops[0])
	}
	// 08:15 seen at 08:00:00 is 16 minutes, inside the critical window.
	if ops[1].Text != "16分後" || ops[1].X != 45 || ops[1].Color != ColorRed {
		t.Errorf("row 0 countdown = %+v", ops[1])
	}
	if ops[2].Text != "駅まで走れ" || ops[2].Color != ColorRed || ops[2].X != 128-50 {
		t.Errorf("row 0 destination substitute = %+v", ops[2])
	}

	// Row 1 is 101 minutes out, shown as the day's first train.
	if ops[3].Text != "新宿方面" || ops[3].Y != 20 {
		t.Errorf("row 1 direction = %+v", ops[3])
	}
	if ops[4].Text != "始発" || ops[4].Color != ColorBlue {
		t.Errorf("row 1 countdown = %+v", ops[4])
	}
	if ops[5].Text != "新宿" || ops[5].Color != ColorOrange {
		t.Errorf("row 1 destination = %+v", ops[5])
	}
}

// TestComposer_AlternateLayout checks the type/time/destination row drawn
// after the layout toggles.
func TestComposer_AlternateLayout(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	c := newTestComposer(5*time.Second, now)
	c.SetSnapshot(testSnapshot(), now)

	ops := c.Frame(now.Add(5 * time.Second)).TextOps()
	if len(ops) != 8 {
		t.Fatalf("got %d text ops, want 8", len(ops))
	}

	if ops[0].Text != "急行" || ops[0].Color != ColorRed {
		t.Errorf("row 0 type = %+v", ops[0])
	}
	if ops[1].Text != "08:15" || ops[1].X != 50 || ops[1].Color != ColorGreen {
		t.Errorf("row 0 time = %+v", ops[1])
	}
	if ops[2].Text != "渋谷" || ops[2].X != 128-50 || ops[2].Color != ColorOrange {
		t.Errorf("row 0 destination = %+v", ops[2])
	}
	if ops[3].Text != "特急" || ops[3].Color != ColorRed {
		t.Errorf("row 1 type = %+v", ops[3])
	}
}

// TestComposer_RowGaps: rows without a usable departure keep their slot so
// the remaining row does not shift.
func TestComposer_RowGaps(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	snap := testSnapshot()
	snap.Departures.Rows[0].Departure = nil

	c := newTestComposer(time.Hour, now)
	c.SetSnapshot(snap, now)

	ops := c.Frame(now).TextOps()
	if len(ops) != 5 {
		t.Fatalf("got %d text ops, want 5", len(ops))
	}
	if ops[0].Text != "新宿方面" || ops[0].Y != 20 {
		t.Errorf("remaining row = %+v, want it on the second baseline", ops[0])
	}
}

// TestComposer_TickerScroll drives frames until the first message scrolls
// fully off the left edge and checks the next one starts at the right edge.
func TestComposer_TickerScroll(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	c := newTestComposer(time.Hour, now)
	c.SetSnapshot(feed.Snapshot{}, now)

	items := c.Ticker()
	if len(items) != 2 {
		t.Fatalf("got %d ticker items, want date and error", len(items))
	}
	first := items[0].Text

	// The message is drawn at every offset from the right edge to one full
	// text width past the left edge.
	frames := 128 + TextWidth(first) + 1
	for i := 0; i < frames; i++ {
		op := tickerOp(t, c.Frame(now))
		if op.Text != first {
			t.Fatalf("frame %d: text = %q, want first message", i, op.Text)
		}
		if op.X != 128-i {
			t.Fatalf("frame %d: x = %d, want %d", i, op.X, 128-i)
		}
	}

	op := tickerOp(t, c.Frame(now))
	if op.Text != items[1].Text {
		t.Errorf("after scroll-out: text = %q, want second message", op.Text)
	}
	if op.X != 128 {
		t.Errorf("after scroll-out: x = %d, want right edge", op.X)
	}
}

// TestComposer_CursorSurvivesRefresh: replacing the snapshot mid-message
// keeps the scroll position.
func TestComposer_CursorSurvivesRefresh(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	c := newTestComposer(time.Hour, now)
	c.SetSnapshot(feed.Snapshot{}, now)

	for i := 0; i < 40; i++ {
		c.Frame(now)
	}
	c.SetSnapshot(feed.Snapshot{}, now)

	op := tickerOp(t, c.Frame(now))
	if op.X != 128-40 {
		t.Errorf("after refresh: x = %d, want %d", op.X, 128-40)
	}
}

// TestComposer_IndexWrapOnShrink: a refresh that shortens the ticker below
// the current message index wraps the index to the start.
func TestComposer_IndexWrapOnShrink(t *testing.T) {
	now := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	snap := feed.Snapshot{
		Departures: testSnapshot().Departures,
		Operation: &feed.OperationStatus{
			Suspend: []feed.StatusItem{{Name: "京王線", Detail: "見合わせ"}},
			Delay:   []feed.StatusItem{{Name: "中央線", Detail: "遅延"}},
		},
	}
	c := newTestComposer(time.Hour, now)
	c.SetSnapshot(snap, now)
	if len(c.Ticker()) != 3 {
		t.Fatalf("got %d ticker items, want 3", len(c.Ticker()))
	}
	c.msgIndex = 2

	c.SetSnapshot(feed.Snapshot{Departures: testSnapshot().Departures}, now)
	if c.msgIndex != 0 {
		t.Errorf("msgIndex = %d, want wrap to 0", c.msgIndex)
	}
}

// TestComposer_Clock checks blink phase and the pre-clear that stops the
// ticker ghosting through the digits.
func TestComposer_Clock(t *testing.T) {
	base := time.Date(2026, 8, 31, 8, 15, 0, 0, time.UTC)
	c := newTestComposer(time.Hour, base)
	c.SetSnapshot(feed.Snapshot{}, base)

	even := c.Frame(base)
	ops := even.TextOps()
	clock := ops[len(ops)-1]
	if clock.Text != "08 15" {
		t.Errorf("even second clock = %q, want blanked separator", clock.Text)
	}
	if clock.X != 128-28 || clock.Y != 31 {
		t.Errorf("clock position = (%d, %d)", clock.X, clock.Y)
	}

	odd := c.Frame(base.Add(time.Second))
	ops = odd.TextOps()
	if got := ops[len(ops)-1].Text; got != "08:15" {
		t.Errorf("odd second clock = %q, want colon separator", got)
	}

	// The clear sits between the ticker run and the clock digits.
	var clearIdx, tickerIdx, clockIdx int = -1, -1, -1
	for i, op := range odd.Ops {
		switch {
		case op.Kind == OpClear:
			clearIdx = i
		case op.Y == 31 && op.X == 128-28:
			clockIdx = i
		case op.Y == 31:
			tickerIdx = i
		}
	}
	if clearIdx == -1 || tickerIdx == -1 || clockIdx == -1 {
		t.Fatalf("missing ops: clear %d ticker %d clock %d", clearIdx, tickerIdx, clockIdx)
	}
	if !(tickerIdx < clearIdx && clearIdx < clockIdx) {
		t.Errorf("op order ticker %d, clear %d, clock %d; want ticker < clear < clock", tickerIdx, clearIdx, clockIdx)
	}
	rect := odd.Ops[clearIdx].Rect
	if rect != (Rect{X0: 128 - 28 - 1, Y0: 22, X1: 128, Y1: 31}) {
		t.Errorf("clock clear rect = %+v", rect)
	}
}
