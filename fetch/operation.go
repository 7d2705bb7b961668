package fetch

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/FlyingObject1024/information-board/config"
	"github.com/FlyingObject1024/information-board/feed"
)

// statusSuspended marks a line with service fully stopped. Everything in
// delayStatuses scrolls as a delay; remaining statuses are informational.
const statusSuspended = "運転見合わせ"

var delayStatuses = map[string]bool{
	"運転状況": true,
	"運転情報": true,
	"列車遅延": true,
	"運転再開": true,
}

// OperationSource scrapes the area service-status page. The page embeds its
// state as JSON in a __NEXT_DATA__ script tag, so scraping is a tag lookup
// plus a JSON decode.
type OperationSource struct {
	url       string
	userAgent string
	client    *http.Client
}

// NewOperationSource creates an operation status source from fetch
// configuration.
func NewOperationSource(cfg config.FetchConfig) *OperationSource {
	return &OperationSource{
		url:       cfg.StatusAreaURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}
}

// Fetch downloads and classifies the current operation status.
func (o *OperationSource) Fetch() (*feed.OperationStatus, error) {
	doc, err := fetchDocument(o.client, o.userAgent, o.url)
	if err != nil {
		return nil, err
	}
	raw := doc.Find("script#__NEXT_DATA__").First().Text()
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("__NEXT_DATA__ script tag not found; page structure may have changed")
	}
	status, err := ParseOperationJSON([]byte(raw))
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("suspend", len(status.Suspend)).
		Int("delay", len(status.Delay)).
		Int("trouble", len(status.Trouble)).
		Msg("Operation status fetched")
	return status, nil
}

type nextData struct {
	Props struct {
		PageProps struct {
			TroubleRails []struct {
				RouteInfo struct {
					Property struct {
						DisplayName string `json:"displayName"`
						Diainfo     []struct {
							Status  string `json:"status"`
							Message string `json:"message"`
						} `json:"diainfo"`
					} `json:"property"`
				} `json:"routeInfo"`
			} `json:"troubleRails"`
		} `json:"pageProps"`
	} `json:"props"`
}

// ParseOperationJSON classifies the embedded status JSON into suspensions,
// delays, and other notices. Lines without a detail message are dropped.
func ParseOperationJSON(raw []byte) (*feed.OperationStatus, error) {
	var data nextData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	status := &feed.OperationStatus{
		Suspend: []feed.StatusItem{},
		Delay:   []feed.StatusItem{},
		Trouble: []feed.StatusItem{},
	}
	for _, rail := range data.Props.PageProps.TroubleRails {
		prop := rail.RouteInfo.Property
		if len(prop.Diainfo) == 0 {
			continue
		}
		name := prop.DisplayName
		if name == "" {
			name = "不明な路線"
		}
		primary := prop.Diainfo[0]
		if primary.Message == "" {
			continue
		}
		item := feed.StatusItem{
			Name:    name,
			Detail:  primary.Message,
			Company: CompanyFor(name),
		}
		switch {
		case primary.Status == statusSuspended:
			status.Suspend = append(status.Suspend, item)
		case delayStatuses[primary.Status]:
			status.Delay = append(status.Delay, item)
		default:
			status.Trouble = append(status.Trouble, item)
		}
	}
	return status, nil
}

// CompanyFor attributes a line to its operator by name prefix.
func CompanyFor(lineName string) string {
	for _, c := range CompanyNames {
		if strings.HasPrefix(lineName, c) {
			return c
		}
	}
	return "社名未定義"
}
