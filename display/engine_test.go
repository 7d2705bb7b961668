package display

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FlyingObject1024/information-board/board"
	"github.com/FlyingObject1024/information-board/config"
)

const engineDepartureDoc = `{
  "渋谷": {
    "departure_time": "08:15",
    "arrival_time": "08:32",
    "status": "",
    "segments": [
      {"line": "井の頭線", "type": "急行", "destination": "渋谷", "departure": "08:15", "arrival": "08:32"}
    ]
  }
}`

type captureRenderer struct {
	plans  []*board.Plan
	stopAt int
	cancel context.CancelFunc
	err    error
}

func (r *captureRenderer) Render(p *board.Plan) error {
	if r.err != nil {
		return r.err
	}
	r.plans = append(r.plans, p)
	if len(r.plans) >= r.stopAt {
		r.cancel()
	}
	return nil
}

func (r *captureRenderer) Close() error { return nil }

func engineConfig(t *testing.T) config.AppConfig {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "departure.json"), []byte(engineDepartureDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	var cfg config.AppConfig
	cfg.Station = config.StationConfig{From: "駒場東大前", To: []string{"渋谷"}}
	cfg.Paths = config.PathsConfig{
		Dir:       dir,
		Departure: filepath.Join(dir, "departure.json"),
		Operation: filepath.Join(dir, "operation.json"),
		Weather:   filepath.Join(dir, "weather_forecast.json"),
	}
	cfg.Display = config.DisplayConfig{
		Width: 128, Height: 32,
		DataRefreshMS: 2000, LayoutToggleMS: 5000, FrameMS: 20,
	}
	return cfg
}

// TestEngineRun drives a few frames against a document on disk and checks
// the loaded data reaches the rendered plans.
func TestEngineRun(t *testing.T) {
	cfg := engineConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	renderer := &captureRenderer{stopAt: 3, cancel: cancel}
	e := NewEngine(cfg, board.DefaultTypeColors(), renderer)

	clock := time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return clock }
	e.sleep = func(d time.Duration) {
		if d != 20*time.Millisecond {
			t.Errorf("frame sleep = %v, want 20ms", d)
		}
		clock = clock.Add(d)
	}

	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(renderer.plans) != 3 {
		t.Fatalf("rendered %d frames, want 3", len(renderer.plans))
	}

	found := false
	for _, op := range renderer.plans[0].TextOps() {
		if op.Text == "渋谷方面" {
			found = true
		}
	}
	if !found {
		t.Error("first frame does not show the loaded departure row")
	}
}

// TestEngineRun_RendererError: a failing renderer stops the loop with its
// error.
func TestEngineRun_RendererError(t *testing.T) {
	cfg := engineConfig(t)

	wantErr := errors.New("panel gone")
	e := NewEngine(cfg, board.DefaultTypeColors(), &captureRenderer{err: wantErr})
	e.sleep = func(time.Duration) {}

	if err := e.Run(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Run returned %v, want the renderer error", err)
	}
}

// TestEngineRun_CancelledBeforeStart exits before rendering anything.
func TestEngineRun_CancelledBeforeStart(t *testing.T) {
	cfg := engineConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	renderer := &captureRenderer{stopAt: 1, cancel: func() {}}
	e := NewEngine(cfg, board.DefaultTypeColors(), renderer)
	if err := e.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(renderer.plans) != 0 {
		t.Errorf("rendered %d frames after cancellation", len(renderer.plans))
	}
}
