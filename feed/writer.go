package feed

import (
	"encoding/json"
	"os"
)

// WriteJSON writes v as indented JSON via a temporary file and rename, so a
// concurrent reader never observes a partially written document.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
