package fetch

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/FlyingObject1024/information-board/config"
	"github.com/FlyingObject1024/information-board/feed"
)

// TrainTypes is the ordered keyword table for extracting the train type out
// of a raw line name. Compound types must precede their components, exactly
// like the color table.
var TrainTypes = []string{
	"ホリデー快速おくたま", "ホリデー快速あきがわ", "エアポート快特",
	"アクセス特急", "S-TRAIN", "TJライナー", "F-LINER", "Fライナー",
	"区間快速", "通勤快速", "中央特快", "青梅特快", "特別快速",
	"通勤特快", "新快速", "区間急行", "区間準急", "通勤準急", "快速急行",
	"各駅停車", "各停", "快速", "特快", "急行", "準急", "特急", "普通",
}

// CompanyNames are operator prefixes stripped from line names and used to
// attribute a disrupted line to its operator.
var CompanyNames = []string{
	"ＪＲ", "JR", "東京メトロ", "都営", "京王", "小田急", "京急", "京成", "東武", "西武", "東急",
}

// Route search types of the transit site.
const (
	searchTypeDeparture  = "1"
	searchTypeLastTrain  = "2"
	searchTypeFirstTrain = "3"
)

// Searcher queries the transit search site for routes between the home
// station and each destination group.
type Searcher struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewSearcher creates a searcher from fetch configuration.
func NewSearcher(cfg config.FetchConfig) *Searcher {
	return &Searcher{
		baseURL:   cfg.TransitBaseURL,
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
	}
}

// SearchDepartures looks up the next route toward each destination group
// around the given time. Per-destination failures degrade to a nil row so
// one broken lookup does not drop the whole board. The returned message
// carries site-side notices (past last train, delays on the route).
func (s *Searcher) SearchDepartures(from string, tos []string, at time.Time) (*feed.DepartureBoard, string) {
	boardDoc := &feed.DepartureBoard{}
	var message string
	for _, to := range tos {
		params := searchParams(from, to, searchTypeDeparture)
		params.Set("y", fmt.Sprintf("%04d", at.Year()))
		params.Set("m", fmt.Sprintf("%02d", int(at.Month())))
		params.Set("d", fmt.Sprintf("%02d", at.Day()))
		params.Set("hh", fmt.Sprintf("%02d", at.Hour()))
		params.Set("m1", fmt.Sprintf("%d", at.Minute()/10))
		params.Set("m2", fmt.Sprintf("%d", at.Minute()%10))

		doc, err := fetchDocument(s.client, s.userAgent, s.baseURL+"?"+params.Encode())
		if err != nil {
			log.Error().Err(err).Str("destination", to).Msg("Departure search failed")
			boardDoc.Rows = append(boardDoc.Rows, feed.DepartureRow{Direction: to})
			continue
		}
		route, msg := ParseRouteDeparture(doc)
		if msg != "" {
			message = msg
		}
		boardDoc.Rows = append(boardDoc.Rows, feed.DepartureRow{Direction: to, Departure: route})
	}
	return boardDoc, message
}

// SearchFirstLast looks up the first and last train of the service day
// toward each destination group.
func (s *Searcher) SearchFirstLast(from string, tos []string, date time.Time) feed.FirstLastDoc {
	doc := feed.FirstLastDoc{}
	for _, to := range tos {
		entry := feed.FirstLastEntry{}
		entry.FirstTrain = s.searchEndpoint(from, to, date, searchTypeFirstTrain)
		entry.LastTrain = s.searchEndpoint(from, to, date, searchTypeLastTrain)
		doc[to] = entry
	}
	return doc
}

func (s *Searcher) searchEndpoint(from, to string, date time.Time, searchType string) *feed.TrainTimes {
	params := searchParams(from, to, searchType)
	params.Set("y", fmt.Sprintf("%04d", date.Year()))
	params.Set("m", fmt.Sprintf("%02d", int(date.Month())))
	params.Set("d", fmt.Sprintf("%02d", date.Day()))
	params.Set("hh", "6")
	params.Set("m1", "0")
	params.Set("m2", "0")

	doc, err := fetchDocument(s.client, s.userAgent, s.baseURL+"?"+params.Encode())
	if err != nil {
		log.Error().Err(err).Str("destination", to).Str("type", searchType).Msg("First/last search failed")
		return nil
	}
	times, _ := ParseRouteTimes(doc)
	return times
}

func searchParams(from, to, searchType string) url.Values {
	return url.Values{
		"from":    {from},
		"to":      {to},
		"type":    {searchType},
		"ticket":  {"ic"},
		"expkind": {"1"},
		"ws":      {"3"},
		"s":       {"0"},
		"shin":    {"0"},
		"via":     {""},
	}
}

// ParseRouteTimes extracts only origin departure and final arrival of the
// first suggested route, for first/last train lookups.
func ParseRouteTimes(doc *goquery.Document) (*feed.TrainTimes, string) {
	route, msg := findFirstRoute(doc, true)
	if route == nil {
		return nil, msg
	}
	dep, arr, ok := routeEndpointTimes(route)
	if !ok {
		return nil, msg
	}
	return &feed.TrainTimes{Departure: dep, Arrival: arr}, msg
}

// ParseRouteDeparture extracts the first suggested route with its segments.
// A nil result with a message means the site answered with a notice instead
// of a route (past last train, no departures right now).
func ParseRouteDeparture(doc *goquery.Document) (*feed.Departure, string) {
	route, msg := findFirstRoute(doc, false)
	if route == nil {
		return nil, msg
	}
	dep, arr, ok := routeEndpointTimes(route)
	if !ok {
		log.Warn().Msg("Route found but endpoint times unparseable")
		return nil, msg
	}

	stations := route.ChildrenFiltered("div.station")
	sections := route.ChildrenFiltered("div.fareSection")
	if stations.Length() != sections.Length()+1 {
		log.Warn().
			Int("stations", stations.Length()).
			Int("sections", sections.Length()).
			Msg("Station/section count mismatch in route")
	}

	numSegments := stations.Length() - 1
	if sections.Length() < numSegments {
		numSegments = sections.Length()
	}

	var segments []feed.Segment
	for i := 0; i < numSegments; i++ {
		seg, ok := parseSegment(stations, sections, i)
		if !ok {
			continue
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		log.Error().Msg("No route segments parsed")
		return nil, msg
	}
	return &feed.Departure{
		DepartureTime: dep,
		ArrivalTime:   arr,
		Segments:      segments,
	}, msg
}

// findFirstRoute locates the route01 detail block, or explains its absence
// via the site's notice banners.
func findFirstRoute(doc *goquery.Document, isFirstLast bool) (*goquery.Selection, string) {
	var msg string
	routeDiv := doc.Find("div#route01").First()
	if routeDiv.Length() == 0 {
		if attention := doc.Find(".attention").First(); attention.Length() > 0 {
			text := strings.TrimSpace(attention.Text())
			switch {
			case strings.Contains(text, "終電時刻を過ぎています"):
				if !isFirstLast {
					msg = "終電時刻を過ぎています。"
				}
			case strings.Contains(text, "現在発車する列車はありません"):
				msg = "現在発車する列車はありません。"
			}
		}
		if detour := doc.Find("div#detourinfo span.subText").First(); detour.Length() > 0 {
			text := strings.TrimSpace(detour.Text())
			if text != "" && strings.Contains(text, "遅延") {
				log.Info().Str("detour", text).Msg("Detour notice on route search")
				msg = text
			}
		}
		return nil, msg
	}
	detail := routeDiv.Find("div.routeDetail").First()
	if detail.Length() == 0 {
		log.Warn().Msg("routeDetail block missing in route01")
		return nil, msg
	}
	return detail, msg
}

func routeEndpointTimes(route *goquery.Selection) (dep, arr string, ok bool) {
	stations := route.ChildrenFiltered("div.station")
	if stations.Length() < 2 {
		log.Warn().Msg("Not enough stations in route")
		return "", "", false
	}
	dep = strings.TrimSpace(stations.First().Find("ul.time li").First().Text())
	arr = strings.TrimSpace(stations.Last().Find("ul.time li").First().Text())
	if dep == "" || arr == "" {
		return "", "", false
	}
	return dep, arr, true
}

func parseSegment(stations, sections *goquery.Selection, i int) (feed.Segment, bool) {
	transport := sections.Eq(i).Find("li.transport div").First()
	if transport.Length() == 0 {
		log.Warn().Int("segment", i).Msg("Transport block missing in segment")
		return feed.Segment{}, false
	}

	var lineRaw, destRaw string
	if destSpan := transport.Find("span.destination").First(); destSpan.Length() > 0 {
		destRaw = strings.TrimSpace(destSpan.Text())
		lineRaw = strings.TrimSpace(strings.Replace(strings.TrimSpace(transport.Text()), destRaw, "", 1))
	} else {
		lineRaw = strings.TrimSpace(transport.Text())
	}

	trainType, lineName := ParseTrainTypeAndLine(lineRaw)

	depTimes := stations.Eq(i).Find("ul.time li")
	segDep := strings.TrimSpace(depTimes.First().Text())
	if depTimes.Length() > 1 {
		// The first li is the arrival at a transfer station; the second is
		// the actual departure.
		segDep = strings.TrimSpace(depTimes.Eq(1).Text())
	}
	segArr := strings.TrimSpace(stations.Eq(i + 1).Find("ul.time li").First().Text())

	return feed.Segment{
		Line:        lineName,
		Type:        trainType,
		Destination: ParseDestination(destRaw),
		Departure:   segDep,
		Arrival:     segArr,
	}, true
}

// ParseTrainTypeAndLine splits a raw line label into train type and line
// name. The first matching type keyword is removed from the line name, then
// operator prefixes are stripped. Lines with no recognizable type default to
// 各駅停車.
func ParseTrainTypeAndLine(raw string) (trainType, lineName string) {
	trainType = "各駅停車"
	lineName = raw
	for _, t := range TrainTypes {
		if strings.Contains(raw, t) {
			trainType = t
			lineName = strings.Replace(lineName, t, "", 1)
			break
		}
	}
	for _, c := range CompanyNames {
		lineName = strings.ReplaceAll(lineName, c, "")
	}
	return strings.TrimSpace(trainType), strings.TrimSpace(lineName)
}

// ParseDestination strips the trailing 行 from a raw destination label.
func ParseDestination(raw string) string {
	return strings.TrimSuffix(raw, "行")
}
