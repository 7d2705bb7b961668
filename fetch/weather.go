package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bluele/gcache"
	"github.com/rs/zerolog/log"

	"github.com/FlyingObject1024/information-board/config"
	"github.com/FlyingObject1024/information-board/feed"
)

const (
	jmaForecastURLFmt = "https://www.jma.go.jp/bosai/forecast/data/forecast/%s.json"
	jmaLatestTimeURL  = "https://www.jma.go.jp/bosai/amedas/data/latest_time.txt"
)

// WeatherSource provides the current forecast summary for one JMA area,
// fetching at most once per TTL. Fresh results come from an in-process TTL
// cache, then from the persisted weather document (which survives daemon
// restarts), and only then from the network. A failed fetch serves the stale
// document rather than nothing.
type WeatherSource struct {
	areaCode  string
	ttl       time.Duration
	client    *http.Client
	cache     gcache.Cache
	cachePath string

	now func() time.Time
}

// NewWeatherSource creates a weather source. cachePath is the weather
// document path; the source reads it back as its persistent cache.
func NewWeatherSource(cfg config.FetchConfig, cachePath string) *WeatherSource {
	return &WeatherSource{
		areaCode:  cfg.Weather.AreaCode,
		ttl:       time.Duration(cfg.Weather.CacheTTLMinute) * time.Minute,
		client:    &http.Client{Timeout: 5 * time.Second},
		cache:     gcache.New(1).LRU().Build(),
		cachePath: cachePath,
		now:       time.Now,
	}
}

// Current returns the forecast summary, honoring the fetch TTL.
func (w *WeatherSource) Current() (*feed.WeatherReport, error) {
	if v, err := w.cache.Get(w.areaCode); err == nil {
		return v.(*feed.WeatherReport), nil
	}

	cached := feed.LoadWeather(w.cachePath)
	if cached != nil {
		if fetched, err := time.Parse(time.RFC3339, cached.LastFetched); err == nil {
			if age := w.now().Sub(fetched); age < w.ttl {
				_ = w.cache.SetWithExpire(w.areaCode, cached, w.ttl-age)
				log.Debug().Msg("Weather served from persisted cache")
				return cached, nil
			}
		}
	}

	report, err := w.fetch()
	if err != nil {
		if cached != nil {
			log.Warn().Err(err).Msg("Weather fetch failed, serving stale cache")
			return cached, nil
		}
		return nil, err
	}
	_ = w.cache.SetWithExpire(w.areaCode, report, w.ttl)
	return report, nil
}

type jmaForecast []struct {
	PublishingOffice string `json:"publishingOffice"`
	ReportDatetime   string `json:"reportDatetime"`
	TimeSeries       []struct {
		Areas []struct {
			Area struct {
				Name string `json:"name"`
			} `json:"area"`
			Weathers []string `json:"weathers"`
			Winds    []string `json:"winds"`
			Waves    []string `json:"waves"`
		} `json:"areas"`
	} `json:"timeSeries"`
}

func (w *WeatherSource) fetch() (*feed.WeatherReport, error) {
	latest := w.latestUpdateTime()

	resp, err := w.client.Get(fmt.Sprintf(jmaForecastURLFmt, w.areaCode))
	if err != nil {
		return nil, fmt.Errorf("fetch JMA forecast: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JMA forecast: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	report, err := ParseJMAForecast(body)
	if err != nil {
		return nil, err
	}
	report.JMALatestUpdate = latest
	report.LastFetched = w.now().Format(time.RFC3339)
	log.Info().Str("area", report.AreaName).Str("weather", report.Weather).Msg("Weather updated")
	return report, nil
}

// ParseJMAForecast extracts today's summary from the raw JMA forecast
// document. The first forecast block covers today/tomorrow; within it,
// timeSeries[0] carries weather/wind/wave for the wide area and
// timeSeries[2] carries temperatures keyed by the representative city, whose
// name is the one shown on the board.
func ParseJMAForecast(raw []byte) (*feed.WeatherReport, error) {
	var fc jmaForecast
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parse JMA forecast: %w", err)
	}
	if len(fc) == 0 {
		return nil, fmt.Errorf("parse JMA forecast: empty document")
	}
	today := fc[0]
	if len(today.TimeSeries) < 3 {
		return nil, fmt.Errorf("parse JMA forecast: missing time series")
	}
	wide := today.TimeSeries[0]
	temps := today.TimeSeries[2]
	if len(wide.Areas) == 0 || len(temps.Areas) == 0 {
		return nil, fmt.Errorf("parse JMA forecast: missing areas")
	}

	report := &feed.WeatherReport{
		PublishingOffice: today.PublishingOffice,
		AreaName:         temps.Areas[0].Area.Name,
	}
	if t, err := time.Parse(time.RFC3339, today.ReportDatetime); err == nil {
		report.ReportTime = t.Format("15:04")
	}
	area := wide.Areas[0]
	if len(area.Weathers) > 0 {
		report.Weather = area.Weathers[0]
	}
	if len(area.Winds) > 0 {
		report.Wind = area.Winds[0]
	}
	if len(area.Waves) > 0 {
		report.Wave = area.Waves[0]
	}
	return report, nil
}

// latestUpdateTime fetches the JMA data update marker. It is informational
// only; failures return an empty string.
func (w *WeatherSource) latestUpdateTime() string {
	resp, err := w.client.Get(jmaLatestTimeURL)
	if err != nil {
		log.Warn().Err(err).Msg("JMA latest_time fetch failed")
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(body))
}
