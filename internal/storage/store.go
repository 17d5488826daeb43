package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/attractor/internal/dynamo"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	System    string             `json:"system"`
	Preset    string             `json:"preset,omitempty"`
	Strategy  string             `json:"strategy"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	StepSize  float64            `json:"step_size"`
	Frames    int                `json:"frames"`
	Lines     int                `json:"lines"`
	Points    int                `json:"points"`
	Params    map[string]float64 `json:"params"`
}

// Save writes metadata.json and points.csv for one run and returns its
// ID. Each CSV row is one point: line, index within the line, x, y, z.
func (s *Store) Save(meta RunMetadata, lines [][]dynamo.State3) (string, error) {
	meta.ID = uuid.NewString()
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Lines = len(lines)
	meta.Points = 0
	for _, l := range lines {
		meta.Points += len(l)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"line", "index", "x", "y", "z"}); err != nil {
		return "", err
	}
	for i, l := range lines {
		for j, p := range l {
			row := []string{
				strconv.Itoa(i),
				strconv.Itoa(j),
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
				strconv.FormatFloat(p.Z, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadLines reads a run's points back, grouped by line.
func (s *Store) LoadLines(runID string) ([][]dynamo.State3, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	var lines [][]dynamo.State3
	for n, record := range records {
		if n == 0 {
			continue
		}
		if len(record) != 5 {
			return nil, fmt.Errorf("points.csv row %d: expected 5 fields, got %d", n, len(record))
		}
		line, err := strconv.Atoi(record[0])
		if err != nil || line < 0 {
			return nil, fmt.Errorf("points.csv row %d: bad line %q", n, record[0])
		}
		var v [3]float64
		for k := range v {
			if v[k], err = strconv.ParseFloat(record[2+k], 64); err != nil {
				return nil, fmt.Errorf("points.csv row %d: %w", n, err)
			}
		}
		for len(lines) <= line {
			lines = append(lines, nil)
		}
		lines[line] = append(lines[line], dynamo.State3{X: v[0], Y: v[1], Z: v[2]})
	}
	return lines, nil
}
