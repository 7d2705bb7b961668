package feed

import (
	"os"
	"path/filepath"
	"testing"
)

const departureDoc = `{
  "渋谷": {
    "departure_time": "08:15",
    "arrival_time": "08:32",
    "status": "",
    "segments": [
      {"line": "井の頭線", "type": "急行", "destination": "渋谷", "departure": "08:15", "arrival": "08:32"}
    ]
  },
  "新宿": null,
  "吉祥寺": {
    "departure_time": "08:20",
    "arrival_time": "08:25",
    "status": "終電",
    "segments": []
  }
}`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadDepartures_KeyOrder: object keys become rows in document order,
// and a null value keeps its row with a nil departure.
func TestLoadDepartures_KeyOrder(t *testing.T) {
	doc := LoadDepartures(writeDoc(t, "departure.json", departureDoc))
	if doc == nil {
		t.Fatal("LoadDepartures returned nil for a valid document")
	}
	if len(doc.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(doc.Rows))
	}

	wantOrder := []string{"渋谷", "新宿", "吉祥寺"}
	for i, want := range wantOrder {
		if doc.Rows[i].Direction != want {
			t.Errorf("row %d direction = %q, want %q", i, doc.Rows[i].Direction, want)
		}
	}
	if doc.Rows[1].Departure != nil {
		t.Error("null entry should decode to a nil departure")
	}
	if doc.Rows[2].Departure.Status != StatusLastTrain {
		t.Errorf("status = %q, want %q", doc.Rows[2].Departure.Status, StatusLastTrain)
	}
	if doc.Rows[0].Departure.Segments[0].Type != "急行" {
		t.Errorf("segment type = %q", doc.Rows[0].Departure.Segments[0].Type)
	}
}

// TestLoadDepartures_Degraded: missing, corrupt, and null documents all
// come back as nil instead of an error.
func TestLoadDepartures_Degraded(t *testing.T) {
	cases := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "absent.json")
		}},
		{"corrupt json", func(t *testing.T) string {
			return writeDoc(t, "corrupt.json", `{"渋谷": {`)
		}},
		{"null document", func(t *testing.T) string {
			return writeDoc(t, "null.json", "null")
		}},
		{"array instead of object", func(t *testing.T) string {
			return writeDoc(t, "array.json", `["渋谷"]`)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if doc := LoadDepartures(tc.path(t)); doc != nil {
				t.Errorf("got %+v, want nil", doc)
			}
		})
	}
}

// TestWriteJSON_RoundTrip: a board written with WriteJSON reads back with
// the same row order, and nothing is left of the temporary file.
func TestWriteJSON_RoundTrip(t *testing.T) {
	src := LoadDepartures(writeDoc(t, "departure.json", departureDoc))
	if src == nil {
		t.Fatal("fixture did not load")
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(path, src); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	got := LoadDepartures(path)
	if got == nil {
		t.Fatal("round-tripped document did not load")
	}
	if len(got.Rows) != len(src.Rows) {
		t.Fatalf("got %d rows, want %d", len(got.Rows), len(src.Rows))
	}
	for i := range src.Rows {
		if got.Rows[i].Direction != src.Rows[i].Direction {
			t.Errorf("row %d direction = %q, want %q", i, got.Rows[i].Direction, src.Rows[i].Direction)
		}
	}
}

// TestLoadSnapshot degrades each document independently.
func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	depPath := filepath.Join(dir, "departure.json")
	if err := os.WriteFile(depPath, []byte(departureDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	opPath := filepath.Join(dir, "operation.json")
	if err := os.WriteFile(opPath, []byte(`{"suspend": [], "delay": [{"name": "中央線", "detail": "遅延", "company": "JR"}], "trouble": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	snap := LoadSnapshot(depPath, opPath, filepath.Join(dir, "weather.json"))
	if snap.Departures == nil {
		t.Error("departures should load")
	}
	if snap.Operation == nil || len(snap.Operation.Delay) != 1 {
		t.Errorf("operation = %+v", snap.Operation)
	}
	if snap.Weather != nil {
		t.Error("missing weather file should be nil")
	}
}

func TestDepartureBoardIsEmpty(t *testing.T) {
	var nilBoard *DepartureBoard
	if !nilBoard.IsEmpty() {
		t.Error("nil board should be empty")
	}
	if !(&DepartureBoard{}).IsEmpty() {
		t.Error("zero board should be empty")
	}
	if (&DepartureBoard{Rows: []DepartureRow{{Direction: "渋谷"}}}).IsEmpty() {
		t.Error("board with a row should not be empty")
	}
}

func TestLoadFirstLast(t *testing.T) {
	path := writeDoc(t, "first_last.json", `{
  "渋谷": {
    "first_train": {"departure": "05:02", "arrival": "05:19"},
    "last_train": {"departure": "00:31", "arrival": "00:48"}
  }
}`)
	doc := LoadFirstLast(path)
	if doc == nil {
		t.Fatal("LoadFirstLast returned nil")
	}
	entry, ok := doc["渋谷"]
	if !ok {
		t.Fatal("missing destination entry")
	}
	if entry.FirstTrain == nil || entry.FirstTrain.Departure != "05:02" {
		t.Errorf("first train = %+v", entry.FirstTrain)
	}
	if entry.LastTrain == nil || entry.LastTrain.Departure != "00:31" {
		t.Errorf("last train = %+v", entry.LastTrain)
	}
}
