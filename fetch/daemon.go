package fetch

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/FlyingObject1024/information-board/config"
	"github.com/FlyingObject1024/information-board/feed"
)

const (
	// The first/last train document refreshes once per service day at 03:00
	// local time. The flag guarding the refresh re-arms during the 02:00
	// hour, before the service day boundary.
	firstLastRefreshHour = 3
	firstLastResetHour   = 2

	// Departure searches ask for routes a little ahead of wall-clock time so
	// the answer stays useful for the whole display window.
	searchOffset = 10 * time.Minute
	searchWindow = 15 * time.Minute
)

// Daemon runs the fetch side: poll the departure document, refresh it when a
// search is due, and keep the operation status and weather documents current
// alongside it.
type Daemon struct {
	cfg       config.AppConfig
	searcher  *Searcher
	operation *OperationSource
	weather   *WeatherSource

	now func() time.Time

	lastSearch    time.Time
	firstLastDone bool
}

// NewDaemon wires a daemon from configuration.
func NewDaemon(cfg config.AppConfig) *Daemon {
	return &Daemon{
		cfg:       cfg,
		searcher:  NewSearcher(cfg.Fetch),
		operation: NewOperationSource(cfg.Fetch),
		weather:   NewWeatherSource(cfg.Fetch, cfg.Paths.Weather),
		now:       time.Now,
	}
}

// Run polls until the context is cancelled. Startup synchronizes the
// first/last train document for the current service day and performs an
// initial departure search so the display has data immediately.
func (d *Daemon) Run(ctx context.Context) error {
	if err := os.MkdirAll(d.cfg.Paths.Dir, 0o755); err != nil {
		return fmt.Errorf("create document directory: %w", err)
	}

	now := d.now()
	d.syncFirstLast(now)
	// When the process starts during the 02:00 hour the 03:00 refresh is
	// still ahead of it, so the startup sync must not count as done.
	d.firstLastDone = now.Hour() != firstLastResetHour
	d.runSearch(now)

	interval := time.Duration(d.cfg.Fetch.PollIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Fetch daemon stopping")
			return nil
		case <-ticker.C:
		}
		d.poll()
	}
}

// poll is one cycle of the daemon loop.
func (d *Daemon) poll() {
	now := d.now()

	switch now.Hour() {
	case firstLastResetHour:
		d.firstLastDone = false
	case firstLastRefreshHour:
		if !d.firstLastDone {
			d.syncFirstLast(now)
			d.firstLastDone = true
		}
	}

	doc := feed.LoadDepartures(d.cfg.Paths.Departure)
	cooldown := time.Duration(d.cfg.Fetch.SearchCooldownMS) * time.Millisecond
	if due, reason := NeedsSearch(now, doc, d.lastSearch, cooldown); due {
		log.Info().Str("reason", reason).Msg("Departure search triggered")
		d.runSearch(now)
	}
}

// runSearch performs one departure search and rewrites all three display
// documents. A board where every row failed is written as null so the
// display falls back to its error ticker instead of showing an empty object.
func (d *Daemon) runSearch(now time.Time) {
	d.lastSearch = now

	searchAt := now.Add(searchOffset + searchWindow)
	boardDoc, message := d.searcher.SearchDepartures(d.cfg.Station.From, d.cfg.Station.To, searchAt)
	if message != "" {
		log.Info().Str("notice", message).Msg("Transit site notice")
	}
	d.annotateFirstLast(boardDoc)

	if allRowsFailed(boardDoc) {
		if err := feed.WriteJSON(d.cfg.Paths.Departure, nil); err != nil {
			log.Error().Err(err).Msg("Failed to write departure document")
		}
	} else if err := feed.WriteJSON(d.cfg.Paths.Departure, boardDoc); err != nil {
		log.Error().Err(err).Msg("Failed to write departure document")
	}

	op, err := d.operation.Fetch()
	if err != nil {
		log.Warn().Err(err).Msg("Operation status fetch failed")
		op = nil
	}
	if err := feed.WriteJSON(d.cfg.Paths.Operation, op); err != nil {
		log.Error().Err(err).Msg("Failed to write operation document")
	}

	weather, err := d.weather.Current()
	if err != nil {
		log.Warn().Err(err).Msg("Weather fetch failed")
	} else if err := feed.WriteJSON(d.cfg.Paths.Weather, weather); err != nil {
		log.Error().Err(err).Msg("Failed to write weather document")
	}
}

// syncFirstLast refreshes the first/last train document for the current
// service day. The date rolls back three hours so a run shortly after
// midnight still queries the previous calendar day's schedule.
func (d *Daemon) syncFirstLast(now time.Time) {
	date := now.Add(-firstLastRefreshHour * time.Hour)
	doc := d.searcher.SearchFirstLast(d.cfg.Station.From, d.cfg.Station.To, date)
	if err := feed.WriteJSON(d.cfg.Paths.FirstLast, doc); err != nil {
		log.Error().Err(err).Msg("Failed to write first/last train document")
		return
	}
	log.Info().Int("destinations", len(doc)).Msg("First/last train document refreshed")
}

// annotateFirstLast marks departures that match the day's first or last
// train so the display shows the label instead of a countdown.
func (d *Daemon) annotateFirstLast(boardDoc *feed.DepartureBoard) {
	firstLast := feed.LoadFirstLast(d.cfg.Paths.FirstLast)
	if firstLast == nil {
		return
	}
	for _, row := range boardDoc.Rows {
		if row.Departure == nil {
			continue
		}
		entry, ok := firstLast[row.Direction]
		if !ok {
			continue
		}
		switch {
		case entry.FirstTrain != nil && row.Departure.DepartureTime == entry.FirstTrain.Departure:
			row.Departure.Status = feed.StatusFirstTrain
		case entry.LastTrain != nil && row.Departure.DepartureTime == entry.LastTrain.Departure:
			row.Departure.Status = feed.StatusLastTrain
		}
	}
}

// allRowsFailed reports whether no destination produced a route.
func allRowsFailed(boardDoc *feed.DepartureBoard) bool {
	for _, row := range boardDoc.Rows {
		if row.Departure != nil {
			return false
		}
	}
	return true
}
