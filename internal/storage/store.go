package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/chemsim/internal/dynamo"
	"github.com/san-kum/chemsim/internal/kinetics"
)

const (
	metadataFile = "metadata.json"
	dataFile     = "concentrations.csv"
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
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Timestamp  time.Time `json:"timestamp"`
	Integrator string    `json:"integrator"`
	Time       float64   `json:"time"`
	Steps      int       `json:"steps"`
	Dt         float64   `json:"dt"`
	Formulas   []string  `json:"formulas"`
	Names      []string  `json:"names"`
	Reactions  []string  `json:"reactions"`
	Metrics    Metrics   `json:"metrics"`
}

// Save writes a run directory named after the run and the current time and
// returns its id. Name, Integrator and Reactions are taken from meta; the
// remaining fields are filled from tr. A failed save leaves no directory
// behind.
func (s *Store) Save(meta RunMetadata, tr *kinetics.Trajectory) (id string, err error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d", runDirName(meta.Name), now.UnixNano())
	meta.Timestamp = now
	meta.Steps = tr.Steps()
	meta.Dt = tr.Dt()
	meta.Time = tr.TimePoints[len(tr.TimePoints)-1]
	meta.Formulas = tr.Formulas
	meta.Names = tr.Names

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err = os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	if err = writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err = writeFile(filepath.Join(runDir, dataFile), func(w io.Writer) error {
		return ExportCSV(w, tr)
	}); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runDirName reduces a run name to a single path element so that every run
// lands directly under the data directory.
func runDirName(name string) string {
	base := filepath.Base(name)
	switch base {
	case ".", "..", string(filepath.Separator):
		return "run"
	}
	return base
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
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

// LoadTrajectory reads a stored run back. Values go through the CSV
// encoding, which keeps full float64 precision.
func (s *Store) LoadTrajectory(runID string) (*kinetics.Trajectory, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, dataFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("run %s has no data", runID)
	}

	tr := &kinetics.Trajectory{
		TimePoints:     make([]float64, 0, len(records)-1),
		Concentrations: make([]dynamo.State, 0, len(records)-1),
		Formulas:       meta.Formulas,
		Names:          meta.Names,
	}

	for i, record := range records[1:] {
		if len(record) != len(meta.Formulas)+1 {
			return nil, fmt.Errorf("run %s row %d: expected %d columns, got %d", runID, i+1, len(meta.Formulas)+1, len(record))
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
		}

		row := make(dynamo.State, len(record)-1)
		for j := 1; j < len(record); j++ {
			row[j-1], err = strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
			}
		}

		tr.TimePoints = append(tr.TimePoints, t)
		tr.Concentrations = append(tr.Concentrations, row)
	}

	return tr, nil
}
