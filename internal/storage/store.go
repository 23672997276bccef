package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	metadataFile = "metadata.json"
	dataFile     = "data.csv"
)

// Store keeps one directory per run under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir returns the store's base directory.
func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Lab       string             `json:"lab"`
	Method    string             `json:"method"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Params    map[string]string  `json:"params,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
	Rows      int                `json:"rows"`
}

// Table is a named-column numeric table.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// Column returns the values of the named column, or nil.
func (t Table) Column(name string) []float64 {
	for j, c := range t.Columns {
		if c != name {
			continue
		}
		out := make([]float64, len(t.Rows))
		for i, row := range t.Rows {
			if j < len(row) {
				out[i] = row[j]
			}
		}
		return out
	}
	return nil
}

// Save writes meta and table into a new run directory and returns its ID.
// meta.ID, Timestamp and Rows are filled in. On failure the run directory
// is removed.
func (s *Store) Save(meta RunMetadata, table Table) (string, error) {
	now := s.now()
	meta.ID = fmt.Sprintf("%s_%s_%d", meta.Lab, meta.Method, now.UnixNano())
	meta.Timestamp = now
	meta.Rows = len(table.Rows)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, meta, table); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", meta.ID, err)
	}
	return meta.ID, nil
}

func writeRun(runDir string, meta RunMetadata, table Table) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, dataFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	return WriteCSV(csvFile, table)
}

// WriteCSV writes a header row followed by the table rows.
func WriteCSV(w io.Writer, table Table) error {
	cw := csv.NewWriter(w)
	if len(table.Columns) > 0 {
		if err := cw.Write(table.Columns); err != nil {
			return err
		}
	}
	for _, row := range table.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTable reads a run's data.csv back. Unparseable cells become NaN.
func (s *Store) LoadTable(runID string) (Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, dataFile))
	if err != nil {
		return Table{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, nil
	}

	table := Table{Columns: records[0], Rows: make([][]float64, 0, len(records)-1)}
	for _, rec := range records[1:] {
		row := make([]float64, len(rec))
		for j, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				v = math.NaN()
			}
			row[j] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// CSVPath returns the location of a run's data file.
func (s *Store) CSVPath(runID string) string {
	return filepath.Join(s.baseDir, runID, dataFile)
}
