package feed

import (
	"bytes"
	"encoding/json"
	"os"
)

// Snapshot is one consistent read of the three display documents. Nil fields
// mean the document was missing, unreadable, or malformed; downstream code
// treats all three the same way.
type Snapshot struct {
	Departures *DepartureBoard
	Operation  *OperationStatus
	Weather    *WeatherReport
}

// LoadSnapshot reads all three documents. It never fails: each document
// degrades to nil independently.
func LoadSnapshot(departurePath, operationPath, weatherPath string) Snapshot {
	return Snapshot{
		Departures: LoadDepartures(departurePath),
		Operation:  LoadOperation(operationPath),
		Weather:    LoadWeather(weatherPath),
	}
}

// LoadDepartures reads the departure board document, nil on any failure.
func LoadDepartures(path string) *DepartureBoard {
	var board DepartureBoard
	if !loadJSON(path, &board) {
		return nil
	}
	return &board
}

// LoadOperation reads the operation status document, nil on any failure.
func LoadOperation(path string) *OperationStatus {
	var op OperationStatus
	if !loadJSON(path, &op) {
		return nil
	}
	return &op
}

// LoadWeather reads the weather report document, nil on any failure.
func LoadWeather(path string) *WeatherReport {
	var w WeatherReport
	if !loadJSON(path, &w) {
		return nil
	}
	return &w
}

// LoadFirstLast reads the first/last train document, nil on any failure.
func LoadFirstLast(path string) FirstLastDoc {
	var doc FirstLastDoc
	if !loadJSON(path, &doc) {
		return nil
	}
	return doc
}

// loadJSON reads and decodes one document. A JSON null document counts as
// absent: the upstream writers emit null on their own fetch errors.
func loadJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false
	}
	return true
}
