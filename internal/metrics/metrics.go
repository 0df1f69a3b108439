package metrics

import "github.com/golang/geo/r2"

// Sample is one observed tick of a session.
type Sample struct {
	Tick        int
	MoveCount   int
	EndEffector r2.Point
	Target      r2.Point
	Err         float64
	Reached     bool
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded on every headless run.
func Defaults() []Metric {
	return []Metric{
		NewTargetError(),
		NewPathLength(),
		NewSettleTick(),
	}
}
