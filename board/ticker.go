package board

import (
	"fmt"
	"time"

	"github.com/FlyingObject1024/information-board/feed"
)

// TickerItem is one message of the rotating status line.
type TickerItem struct {
	Text  string
	Color Color
}

const (
	tickerErrorText  = "エラーが発生しています。情報が取得できていません"
	tickerNormalText = "平常運転"

	detailFallback  = "詳細不明"
	areaFallback    = "不明"
	weatherFallback = "不明"
	officeFallback  = "気象庁"
)

var weekdayNames = [...]string{"日", "月", "火", "水", "木", "金", "土"}

// ComposeTicker rebuilds the ticker list from a data snapshot. The order is
// a contract: date, suspensions, delays, weather, then either the data-loss
// error (departure board absent or empty) or the all-clear message when no
// disruption item was added. The list is never empty.
func ComposeTicker(now time.Time, snap feed.Snapshot) []TickerItem {
	items := []TickerItem{dateItem(now)}

	disruptions := 0
	if op := snap.Operation; op != nil {
		for _, it := range op.Suspend {
			items = append(items, TickerItem{
				Text:  "【運転見合わせ】 " + it.Name + ": " + orDefault(it.Detail, detailFallback),
				Color: ColorRed,
			})
			disruptions++
		}
		for _, it := range op.Delay {
			items = append(items, TickerItem{
				Text:  "【遅延】 " + it.Name + ": " + orDefault(it.Detail, detailFallback),
				Color: ColorYellow,
			})
			disruptions++
		}
	}

	if w := snap.Weather; w != nil {
		items = append(items, weatherItem(w))
	}

	if snap.Departures.IsEmpty() {
		items = append(items, TickerItem{Text: tickerErrorText, Color: ColorRed})
	} else if disruptions == 0 {
		items = append(items, TickerItem{Text: tickerNormalText, Color: ColorGreen})
	}

	return items
}

func dateItem(now time.Time) TickerItem {
	text := fmt.Sprintf("本日は %02d月%02d日（%s）です",
		int(now.Month()), now.Day(), weekdayNames[now.Weekday()])
	return TickerItem{Text: text, Color: ColorWhite}
}

func weatherItem(w *feed.WeatherReport) TickerItem {
	text := "【" + orDefault(w.PublishingOffice, officeFallback) + " " + w.ReportTime + "発表】" +
		orDefault(w.AreaName, areaFallback) + "の天気: " + orDefault(w.Weather, weatherFallback)
	return TickerItem{Text: text, Color: ColorWhite}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
