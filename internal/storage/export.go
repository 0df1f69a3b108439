package storage

import (
	"encoding/json"
	"io"

	"github.com/gitcero/kinematic-arm-simulation/internal/metrics"
)

type ExportData struct {
	ID      string             `json:"id"`
	Links   int                `json:"links"`
	Target  [2]float64         `json:"target"`
	Ticks   int                `json:"ticks"`
	Moves   int                `json:"moves"`
	Reached bool               `json:"reached"`
	Trace   []tracePoint       `json:"trace"`
	Metrics map[string]float64 `json:"metrics"`
}

type tracePoint struct {
	Tick    int     `json:"tick"`
	Moves   int     `json:"moves"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Error   float64 `json:"error"`
	Reached bool    `json:"reached"`
}

// ExportJSON writes a run and its trace as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, trace []metrics.Sample) error {
	data := ExportData{
		ID:      meta.ID,
		Links:   meta.Links,
		Target:  [2]float64{meta.TargetX, meta.TargetY},
		Ticks:   meta.Ticks,
		Moves:   meta.Moves,
		Reached: meta.Reached,
		Trace:   make([]tracePoint, len(trace)),
		Metrics: meta.Metrics,
	}

	for i, s := range trace {
		data.Trace[i] = tracePoint{
			Tick:    s.Tick,
			Moves:   s.MoveCount,
			X:       s.EndEffector.X,
			Y:       s.EndEffector.Y,
			Error:   s.Err,
			Reached: s.Reached,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
