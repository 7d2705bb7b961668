package fetch

import (
	"time"

	"github.com/FlyingObject1024/information-board/board"
	"github.com/FlyingObject1024/information-board/feed"
)

const (
	// A search is scheduled once the earliest displayed departure is this
	// close, so the board flips to the following train before the current
	// one leaves.
	searchLeadTime = 14 * time.Minute

	// A departure this far in the past means the document was written on a
	// previous poll cycle and never refreshed.
	staleAfter = time.Hour
)

// NeedsSearch decides whether the departure document should be refreshed.
// The returned reason is a short human string for the log line; it is empty
// when no search is due. lastSearch is the zero time when no search has run
// yet this process.
func NeedsSearch(now time.Time, doc *feed.DepartureBoard, lastSearch time.Time, cooldown time.Duration) (bool, string) {
	if !lastSearch.IsZero() && now.Sub(lastSearch) < cooldown {
		return false, ""
	}
	if doc.IsEmpty() {
		return true, "no departure data"
	}

	earliest, ok := earliestDeparture(doc, now)
	if !ok {
		return true, "no parseable departure time"
	}
	if now.Sub(earliest) > staleAfter {
		return true, "departure data stale"
	}
	if earliest.Sub(now) <= searchLeadTime {
		return true, "departure imminent"
	}
	return false, ""
}

// earliestDeparture finds the soonest departure instant on the board. Rows
// without a departure or with an unparseable time are skipped; ok is false
// when no row yields a time at all.
func earliestDeparture(doc *feed.DepartureBoard, now time.Time) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, row := range doc.Rows {
		if row.Departure == nil {
			continue
		}
		hour, minute, ok := board.ParseClock(row.Departure.DepartureTime)
		if !ok {
			continue
		}
		candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		// Early-morning departures written late in the evening belong to
		// the next calendar day.
		if hour < 3 && now.Hour() >= 21 {
			candidate = candidate.AddDate(0, 0, 1)
		}
		if !found || candidate.Before(earliest) {
			earliest = candidate
			found = true
		}
	}
	return earliest, found
}
