package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LoadAppConfig loads and validates the application configuration. An empty
// path falls back to config.yml in the working directory.
func LoadAppConfig(path string) (AppConfig, error) {
	var cfg AppConfig
	if path == "" {
		path = "config.yml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Paths.Dir == "" {
		cfg.Paths.Dir = "information_json_files"
	}
	if cfg.Paths.Departure == "" {
		cfg.Paths.Departure = filepath.Join(cfg.Paths.Dir, "departure.json")
	}
	if cfg.Paths.Operation == "" {
		cfg.Paths.Operation = filepath.Join(cfg.Paths.Dir, "operation.json")
	}
	if cfg.Paths.Weather == "" {
		cfg.Paths.Weather = filepath.Join(cfg.Paths.Dir, "weather_forecast.json")
	}
	if cfg.Paths.FirstLast == "" {
		cfg.Paths.FirstLast = filepath.Join(cfg.Paths.Dir, "first_last_train.json")
	}

	if cfg.Display.Width == 0 {
		cfg.Display.Width = 128
	}
	if cfg.Display.Height == 0 {
		cfg.Display.Height = 32
	}
	if cfg.Display.DataRefreshMS == 0 {
		cfg.Display.DataRefreshMS = 2000
	}
	if cfg.Display.LayoutToggleMS == 0 {
		cfg.Display.LayoutToggleMS = 5000
	}
	if cfg.Display.FrameMS == 0 {
		cfg.Display.FrameMS = 20
	}

	if cfg.Fetch.PollIntervalMS == 0 {
		cfg.Fetch.PollIntervalMS = 10000
	}
	if cfg.Fetch.SearchCooldownMS == 0 {
		cfg.Fetch.SearchCooldownMS = 60000
	}
	if cfg.Fetch.TransitBaseURL == "" {
		cfg.Fetch.TransitBaseURL = "https://transit.yahoo.co.jp/search/result"
	}
	if cfg.Fetch.StatusAreaURL == "" {
		cfg.Fetch.StatusAreaURL = "https://transit.yahoo.co.jp/diainfo/area/4"
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/100.0.0.0 Safari/537.36"
	}
	if cfg.Fetch.TimeoutMS == 0 {
		cfg.Fetch.TimeoutMS = 10000
	}
	if cfg.Fetch.Weather.AreaCode == "" {
		cfg.Fetch.Weather.AreaCode = "130000"
	}
	if cfg.Fetch.Weather.CacheTTLMinute == 0 {
		cfg.Fetch.Weather.CacheTTLMinute = 60
	}
}
