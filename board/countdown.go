package board

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/FlyingObject1024/information-board/feed"
)

// Tier classifies how urgent a departure is. It drives the countdown color
// and, in the primary layout, the substitute destination phrase.
type Tier int

const (
	TierUnknown Tier = iota
	TierNormal
	TierWarning
	TierCritical
	TierFirstTrain
	TierLastTrain
)

const (
	// Departures parsed as more than 99 minutes away are treated as not yet
	// scheduled and displayed as the first train of the day.
	farFutureMinutes = 99
	criticalWithin   = 17
	warningWithin    = 20

	// Times of day before 03:00 belong to the next service day once the
	// clock itself has passed 03:00.
	rolloverHour = 3
)

const (
	labelFirstTrain  = "始発"
	labelLastTrain   = "終電"
	labelUnknownTime = "--:--"
)

var tierColors = map[Tier]Color{
	TierUnknown:    ColorGreen,
	TierNormal:     ColorGreen,
	TierWarning:    ColorYellow,
	TierCritical:   ColorRed,
	TierFirstTrain: ColorBlue,
	TierLastTrain:  ColorRed,
}

// Color returns the display color bound to the tier.
func (t Tier) Color() Color {
	return tierColors[t]
}

// SubstituteDestination returns the urgency phrase that replaces the literal
// destination in the primary layout, for the tiers that have one.
func (t Tier) SubstituteDestination() (string, bool) {
	switch t {
	case TierCritical:
		return "駅まで走れ", true
	case TierWarning:
		return "今すぐ出発", true
	}
	return "", false
}

// Countdown derives the countdown text and urgency tier for one departure.
// A first/last train status short-circuits to its fixed label without any
// time arithmetic. Unparseable departure times degrade to a placeholder.
func Countdown(departure, status string, now time.Time) (string, Tier) {
	switch status {
	case feed.StatusFirstTrain:
		return labelFirstTrain, TierFirstTrain
	case feed.StatusLastTrain:
		return labelLastTrain, TierLastTrain
	}

	mins, ok := MinutesUntil(departure, now)
	if !ok {
		return labelUnknownTime, TierUnknown
	}
	if mins > farFutureMinutes {
		return labelFirstTrain, TierFirstTrain
	}

	text := strconv.Itoa(mins) + "分後"
	switch {
	case mins <= criticalWithin:
		return text, TierCritical
	case mins <= warningWithin:
		return text, TierWarning
	}
	return text, TierNormal
}

// MinutesUntil computes whole minutes from now until an HH:MM time of day,
// rounded up: a departure 30 seconds away reads as 1, not 0. A departure
// hour before 03:00 is interpreted as tomorrow whenever the current hour is
// already past 03:00, which keeps overnight schedules correct across
// midnight.
func MinutesUntil(departure string, now time.Time) (int, bool) {
	hour, minute, ok := ParseClock(departure)
	if !ok {
		return 0, false
	}
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if hour < rolloverHour && now.Hour() >= rolloverHour {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return int(math.Floor(candidate.Sub(now).Seconds()/60)) + 1, true
}

// ParseClock parses an HH:MM string. Fields are not range-checked; a bad
// range in upstream data still yields a deterministic countdown.
func ParseClock(s string) (hour, minute int, ok bool) {
	hs, ms, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(strings.TrimSpace(ms))
	if err != nil {
		return 0, 0, false
	}
	return hour, minute, true
}
