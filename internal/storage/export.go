package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON form of a run.
type ExportData struct {
	RunMetadata
	Table Table `json:"table"`
}

// ExportJSON writes a stored run to path as a single JSON document.
func (s *Store) ExportJSON(runID, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.WriteJSON(runID, file)
}

// WriteJSON writes a stored run to w as indented JSON.
func (s *Store) WriteJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	table, err := s.LoadTable(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: *meta, Table: table})
}
