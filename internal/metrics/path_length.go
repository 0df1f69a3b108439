package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/golang/geo/r2"
)

// PathLength accumulates the distance the end effector travels over a run.
type PathLength struct {
	name  string
	steps []float64
	prev  r2.Point
	seen  bool
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (m *PathLength) Name() string {
	return m.name
}

func (m *PathLength) Observe(s Sample) {
	if m.seen {
		m.steps = append(m.steps, s.EndEffector.Sub(m.prev).Norm())
	}
	m.prev = s.EndEffector
	m.seen = true
}

func (m *PathLength) Value() float64 {
	return floats.Sum(m.steps)
}

func (m *PathLength) Reset() {
	m.steps = m.steps[:0]
	m.seen = false
}
