package display

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/FlyingObject1024/information-board/board"
	"github.com/FlyingObject1024/information-board/config"
	"github.com/FlyingObject1024/information-board/feed"
)

// Engine runs the display loop: reload data on its own cadence, toggle the
// layout mode on its own cadence, compose a frame, hand it to the renderer,
// sleep, repeat. Everything runs on the calling goroutine; a cancelled
// context is noticed at the top of an iteration and exits before that
// frame's render handoff.
type Engine struct {
	cfg      config.AppConfig
	composer *board.Composer
	renderer Renderer

	// Injected clock and sleeper, fixed to real time outside tests.
	now   func() time.Time
	sleep func(time.Duration)
}

// NewEngine builds an engine for the configured panel.
func NewEngine(cfg config.AppConfig, rules []board.ColorRule, renderer Renderer) *Engine {
	now := time.Now()
	return &Engine{
		cfg: cfg,
		composer: board.NewComposer(
			cfg.Display.Width, cfg.Display.Height, rules,
			time.Duration(cfg.Display.LayoutToggleMS)*time.Millisecond, now,
		),
		renderer: renderer,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Run drives the loop until ctx is cancelled or the renderer fails.
func (e *Engine) Run(ctx context.Context) error {
	refresh := time.Duration(e.cfg.Display.DataRefreshMS) * time.Millisecond
	frame := time.Duration(e.cfg.Display.FrameMS) * time.Millisecond

	var lastLoad time.Time
	first := true

	log.Info().
		Int("width", e.cfg.Display.Width).
		Int("height", e.cfg.Display.Height).
		Msg("Display loop starting")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Display loop stopping")
			return nil
		default:
		}

		now := e.now()
		if first || now.Sub(lastLoad) >= refresh {
			snap := feed.LoadSnapshot(e.cfg.Paths.Departure, e.cfg.Paths.Operation, e.cfg.Paths.Weather)
			e.composer.SetSnapshot(snap, now)
			if snap.Departures.IsEmpty() {
				log.Debug().Msg("No departure data in snapshot")
			}
			lastLoad = now
			first = false
		}

		if err := e.renderer.Render(e.composer.Frame(now)); err != nil {
			return err
		}
		e.sleep(frame)
	}
}
