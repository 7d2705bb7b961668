package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Departure status markers written by the fetch daemon when the departure
// matches the day's first or last train.
const (
	StatusFirstTrain = "始発"
	StatusLastTrain  = "終電"
)

// Segment is one leg of a searched route. Only the first segment of an entry
// is used for display.
type Segment struct {
	Line        string `json:"line"`
	Type        string `json:"type"`
	Destination string `json:"destination"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
}

// Departure is the next scheduled service toward one destination group.
type Departure struct {
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	Status        string    `json:"status"`
	Segments      []Segment `json:"segments"`
}

// DepartureRow pairs a destination group name with its departure. Departure
// is nil when the search found no route for that group.
type DepartureRow struct {
	Direction string
	Departure *Departure
}

// DepartureBoard holds one row per destination group, in document order.
// The display caps rendering at two rows but the row order itself is part of
// the document contract, so the JSON object keys are decoded in sequence
// instead of through a Go map.
type DepartureBoard struct {
	Rows []DepartureRow
}

// IsEmpty reports whether the board carries no rows at all. The ticker shows
// the data-loss error message in that case.
func (b *DepartureBoard) IsEmpty() bool {
	return b == nil || len(b.Rows) == 0
}

// UnmarshalJSON decodes the destination-group object preserving key order.
// A JSON null document decodes to an empty board.
func (b *DepartureBoard) UnmarshalJSON(data []byte) error {
	b.Rows = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("departure board: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("departure board: non-string key %v", keyTok)
		}
		var dep *Departure
		if err := dec.Decode(&dep); err != nil {
			return err
		}
		b.Rows = append(b.Rows, DepartureRow{Direction: name, Departure: dep})
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON writes the rows back as an object in row order.
func (b DepartureBoard) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, row := range b.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(row.Direction)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(row.Departure)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// StatusItem is one affected line in the operation status document.
type StatusItem struct {
	Name    string `json:"name"`
	Detail  string `json:"detail"`
	Company string `json:"company"`
}

// OperationStatus lists currently disrupted lines. An absent document means
// no known issues, not no service.
type OperationStatus struct {
	Suspend []StatusItem `json:"suspend"`
	Delay   []StatusItem `json:"delay"`
	Trouble []StatusItem `json:"trouble"`
}

// WeatherReport is the single-record forecast summary for the configured
// area, derived from the JMA forecast feed.
type WeatherReport struct {
	PublishingOffice string `json:"publishing_office"`
	AreaName         string `json:"area_name"`
	ReportTime       string `json:"report_time"`
	Weather          string `json:"weather"`
	Wind             string `json:"wind"`
	Wave             string `json:"wave"`
	JMALatestUpdate  string `json:"jma_latest_update"`
	LastFetched      string `json:"last_fetched"`
}

// TrainTimes holds the endpoint times of a searched route.
type TrainTimes struct {
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

// FirstLastEntry holds the first and last train of the day for one
// destination group.
type FirstLastEntry struct {
	FirstTrain *TrainTimes `json:"first_train"`
	LastTrain  *TrainTimes `json:"last_train"`
}

// FirstLastDoc maps destination group name to its first/last train times.
type FirstLastDoc map[string]FirstLastEntry
