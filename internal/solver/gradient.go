package solver

import (
	"github.com/golang/geo/r2"

	"github.com/gitcero/kinematic-arm-simulation/internal/kinematics"
)

const (
	DefaultStepSize  = 0.1
	DefaultMaxIters  = 100
	DefaultTolerance = 0.1
	DefaultDelta     = 0.01
)

type Options struct {
	StepSize  float64
	MaxIters  int
	Tolerance float64
	Delta     float64
}

func DefaultOptions() Options {
	return Options{
		StepSize:  DefaultStepSize,
		MaxIters:  DefaultMaxIters,
		Tolerance: DefaultTolerance,
		Delta:     DefaultDelta,
	}
}

// Report describes one Solve call. Converged is reported to the caller;
// the session owns the persistent reached flag.
type Report struct {
	Converged  bool
	Iterations int
	FinalError float64
}

// Gradient drives a chain toward a target by finite-difference descent on
// the end-effector distance, one joint at a time.
type Gradient struct {
	opts    Options
	scratch []float64
}

func New(opts Options) *Gradient {
	if opts.StepSize == 0 {
		opts.StepSize = DefaultStepSize
	}
	if opts.MaxIters == 0 {
		opts.MaxIters = DefaultMaxIters
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.Delta == 0 {
		opts.Delta = DefaultDelta
	}
	return &Gradient{opts: opts}
}

func (g *Gradient) Options() Options {
	return g.opts
}

// Solve mutates the chain's angles toward the target. A nil target is a
// pure-redraw no-op. Link lengths are reallocated from the target distance
// before iterating, so every solve resizes the arm.
//
// Joints update sequentially within one iteration: each joint perturbs a
// copy of the live angle vector, so later joints see earlier joints'
// updates, while the baseline distance stays the iteration's snapshot.
// Never errors; non-finite targets propagate NaN and simply fail to
// converge.
func (g *Gradient) Solve(c *kinematics.Chain, target *r2.Point) Report {
	if target == nil {
		return Report{}
	}
	tgt := *target
	c.Lengths = kinematics.AllocateLengths(tgt, c.LinkCount())

	if cap(g.scratch) < len(c.Angles) {
		g.scratch = make([]float64, len(c.Angles))
	}
	perturbed := g.scratch[:len(c.Angles)]

	var rep Report
	for iter := 0; iter < g.opts.MaxIters; iter++ {
		dist := tgt.Sub(c.EndEffector()).Norm()
		rep.Iterations = iter
		rep.FinalError = dist
		if dist < g.opts.Tolerance {
			rep.Converged = true
			return rep
		}

		for i := range c.Angles {
			copy(perturbed, c.Angles)
			perturbed[i] += g.opts.Delta

			pose := kinematics.ForwardKinematics(perturbed, c.Lengths)
			trialDist := pose[len(pose)-1].Sub(tgt).Norm()

			grad := (trialDist - dist) / g.opts.Delta
			c.Angles[i] -= g.opts.StepSize * grad
		}
	}

	rep.Iterations = g.opts.MaxIters
	rep.FinalError = tgt.Sub(c.EndEffector()).Norm()
	return rep
}
