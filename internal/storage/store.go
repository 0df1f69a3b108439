package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang/geo/r2"

	"github.com/gitcero/kinematic-arm-simulation/internal/metrics"
)

// Store keeps finished runs on disk: one directory per run holding
// metadata.json and trace.csv. It records history only; it never restores
// a live session.
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
	Timestamp time.Time          `json:"timestamp"`
	Links     int                `json:"links"`
	TargetX   float64            `json:"target_x"`
	TargetY   float64            `json:"target_y"`
	StepSize  float64            `json:"step_size"`
	MaxIters  int                `json:"max_iters"`
	Tolerance float64            `json:"tolerance"`
	Ticks     int                `json:"ticks"`
	Moves     int                `json:"moves"`
	Reached   bool               `json:"reached"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, trace []metrics.Sample) (string, error) {
	runID := fmt.Sprintf("arm_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

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

	csvFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"tick", "moves", "ee_x", "ee_y", "target_x", "target_y", "error", "reached"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, sample := range trace {
		row := []string{
			strconv.Itoa(sample.Tick),
			strconv.Itoa(sample.MoveCount),
			strconv.FormatFloat(sample.EndEffector.X, 'f', 6, 64),
			strconv.FormatFloat(sample.EndEffector.Y, 'f', 6, 64),
			strconv.FormatFloat(sample.Target.X, 'f', 6, 64),
			strconv.FormatFloat(sample.Target.Y, 'f', 6, 64),
			strconv.FormatFloat(sample.Err, 'f', 6, 64),
			strconv.FormatBool(sample.Reached),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

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

func (s *Store) LoadTrace(runID string) ([]metrics.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []metrics.Sample{}, nil
	}

	trace := make([]metrics.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 8 {
			continue
		}

		// A corrupt field invalidates the whole row.
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		moves, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		var nums [5]float64
		ok := true
		for j := range nums {
			nums[j], err = strconv.ParseFloat(record[2+j], 64)
			if err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		reached, err := strconv.ParseBool(record[7])
		if err != nil {
			continue
		}

		trace = append(trace, metrics.Sample{
			Tick:        tick,
			MoveCount:   moves,
			EndEffector: r2.Point{X: nums[0], Y: nums[1]},
			Target:      r2.Point{X: nums[2], Y: nums[3]},
			Err:         nums[4],
			Reached:     reached,
		})
	}

	return trace, nil
}
