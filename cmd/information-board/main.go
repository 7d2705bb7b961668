package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"

	"github.com/FlyingObject1024/information-board/board"
	"github.com/FlyingObject1024/information-board/config"
	"github.com/FlyingObject1024/information-board/display"
	"github.com/FlyingObject1024/information-board/feed"
	"github.com/FlyingObject1024/information-board/fetch"
)

func main() {
	if os.Getenv("INFOBOARD_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("INFOBOARD_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "information-board",
		Description: "Departure board for the station down the road - fetches the data and draws the frames",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yml",
				Usage: "path to the YAML configuration file",
			},
		},

		Commands: []*cli.Command{
			displayCommand(),
			fetchCommand(),
			composeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func displayCommand() *cli.Command {
	return &cli.Command{
		Name:  "display",
		Usage: "run the display loop",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "renderer",
				Value: "terminal",
				Usage: "frame sink: terminal or png",
			},
			&cli.StringFlag{
				Name:  "out",
				Value: "frame.png",
				Usage: "output path for the png renderer",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadAppConfig(c.String("config"))
			if err != nil {
				return err
			}
			rules, err := typeColors(cfg)
			if err != nil {
				return err
			}

			var renderer display.Renderer
			switch c.String("renderer") {
			case "terminal":
				renderer = display.NewTerminal(os.Stdout)
			case "png":
				renderer = newPNGRenderer(cfg, c.String("out"))
			default:
				return fmt.Errorf("unknown renderer %q", c.String("renderer"))
			}
			defer renderer.Close()

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return display.NewEngine(cfg, rules, renderer).Run(ctx)
		},
	}
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "run the data fetch daemon",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadAppConfig(c.String("config"))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return fetch.NewDaemon(cfg).Run(ctx)
		},
	}
}

func composeCommand() *cli.Command {
	return &cli.Command{
		Name:  "compose",
		Usage: "compose a single frame from the current documents and exit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "write the frame as a PNG instead of printing the draw plan",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadAppConfig(c.String("config"))
			if err != nil {
				return err
			}
			rules, err := typeColors(cfg)
			if err != nil {
				return err
			}

			now := time.Now()
			composer := board.NewComposer(
				cfg.Display.Width, cfg.Display.Height, rules,
				time.Duration(cfg.Display.LayoutToggleMS)*time.Millisecond, now,
			)
			composer.SetSnapshot(feed.LoadSnapshot(cfg.Paths.Departure, cfg.Paths.Operation, cfg.Paths.Weather), now)
			plan := composer.Frame(now)

			if out := c.String("out"); out != "" {
				fb := display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height)
				if err := fb.Render(plan); err != nil {
					return err
				}
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				return fb.WritePNG(f)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		},
	}
}

func typeColors(cfg config.AppConfig) ([]board.ColorRule, error) {
	if len(cfg.TypeColors) == 0 {
		return board.DefaultTypeColors(), nil
	}
	return board.TypeColorsFromConfig(cfg.TypeColors)
}

// pngRenderer writes each frame over the same file, a stand-in sink for
// headless setups without the LED matrix attached.
type pngRenderer struct {
	fb   *display.Framebuffer
	path string
}

func newPNGRenderer(cfg config.AppConfig, path string) *pngRenderer {
	return &pngRenderer{
		fb:   display.NewFramebuffer(cfg.Display.Width, cfg.Display.Height),
		path: path,
	}
}

func (r *pngRenderer) Render(p *board.Plan) error {
	if err := r.fb.Render(p); err != nil {
		return err
	}
	f, err := os.Create(r.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.fb.WritePNG(f)
}

func (r *pngRenderer) Close() error {
	return r.fb.Close()
}
