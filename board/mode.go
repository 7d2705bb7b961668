package board

import "time"

// Mode selects which of the two row layouts is rendered.
type Mode int

const (
	// ModePrimary shows direction, countdown, and destination (or the
	// urgency phrase).
	ModePrimary Mode = iota
	// ModeAlternate shows train type, literal departure time, destination.
	ModeAlternate
)

// ModeScheduler toggles between the two layouts on a fixed wall-clock
// interval. Nothing else can force a transition.
type ModeScheduler struct {
	mode       Mode
	interval   time.Duration
	lastToggle time.Time
}

// NewModeScheduler starts in the primary layout with the toggle timer
// anchored at now.
func NewModeScheduler(interval time.Duration, now time.Time) *ModeScheduler {
	return &ModeScheduler{interval: interval, lastToggle: now}
}

// Tick toggles the layout if the interval has elapsed and returns the mode
// to render this frame.
func (s *ModeScheduler) Tick(now time.Time) Mode {
	if now.Sub(s.lastToggle) >= s.interval {
		if s.mode == ModePrimary {
			s.mode = ModeAlternate
		} else {
			s.mode = ModePrimary
		}
		s.lastToggle = now
	}
	return s.mode
}

// Mode returns the current layout without advancing the timer.
func (s *ModeScheduler) Mode() Mode {
	return s.mode
}
