package solver

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/gitcero/kinematic-arm-simulation/internal/kinematics"
)

func TestSolveDefaultScenario(t *testing.T) {
	// The shipped default: target (3,1), two links, both joints at 45deg.
	// One Solve call is one animation tick; the angles carry over, so
	// convergence accumulates across repeated calls.
	c := kinematics.NewChain(2, 2.0, math.Pi/4)
	target := r2.Point{X: 3, Y: 1}

	g := New(DefaultOptions())
	var rep Report
	for calls := 0; calls < 50 && !rep.Converged; calls++ {
		rep = g.Solve(c, &target)
	}

	if !rep.Converged {
		t.Fatalf("default scenario did not converge within 50 calls, final error %f",
			rep.FinalError)
	}
	if rep.FinalError >= DefaultTolerance {
		t.Errorf("reported error %f should be below tolerance %f", rep.FinalError, DefaultTolerance)
	}
	if err := target.Sub(c.EndEffector()).Norm(); err >= DefaultTolerance {
		t.Errorf("end effector error %f should be below tolerance", err)
	}
}

func TestSolveNilTargetNoOp(t *testing.T) {
	c := kinematics.NewChain(3, 2.0, math.Pi/4)
	before := append([]float64(nil), c.Angles...)
	lengthsBefore := append([]float64(nil), c.Lengths...)

	rep := New(DefaultOptions()).Solve(c, nil)

	if rep.Converged || rep.Iterations != 0 {
		t.Errorf("nil target should report zero work, got %+v", rep)
	}
	for i := range before {
		if c.Angles[i] != before[i] {
			t.Errorf("angle %d changed: %f -> %f", i, before[i], c.Angles[i])
		}
		if c.Lengths[i] != lengthsBefore[i] {
			t.Errorf("length %d changed: %f -> %f", i, lengthsBefore[i], c.Lengths[i])
		}
	}
}

func TestSolveReallocatesLengths(t *testing.T) {
	c := kinematics.NewChain(2, 2.0, math.Pi/4)
	target := r2.Point{X: 3, Y: 1}

	New(DefaultOptions()).Solve(c, &target)

	want := target.Norm() / 2
	for i, l := range c.Lengths {
		if math.Abs(l-want) > 1e-12 {
			t.Errorf("length %d should be %f, got %f", i, want, l)
		}
	}
}

func TestSolveNaNTargetNoFault(t *testing.T) {
	c := kinematics.NewChain(2, 2.0, math.Pi/4)
	target := r2.Point{X: math.NaN(), Y: 1}

	rep := New(DefaultOptions()).Solve(c, &target)

	if rep.Converged {
		t.Error("NaN target must never converge")
	}
	if rep.Iterations != DefaultMaxIters {
		t.Errorf("expected full %d iterations, got %d", DefaultMaxIters, rep.Iterations)
	}
}

func TestSolveBoundedIterations(t *testing.T) {
	c := kinematics.NewChain(2, 2.0, math.Pi/4)
	target := r2.Point{X: 3, Y: 1}

	g := New(Options{MaxIters: 3, StepSize: 1e-9, Tolerance: 1e-12, Delta: DefaultDelta})
	rep := g.Solve(c, &target)

	if rep.Converged {
		t.Error("tiny step with tight tolerance should not converge in 3 iterations")
	}
	if rep.Iterations != 3 {
		t.Errorf("expected 3 iterations, got %d", rep.Iterations)
	}
}

func TestNewFillsDefaults(t *testing.T) {
	g := New(Options{})
	opts := g.Options()

	if opts.StepSize != DefaultStepSize || opts.MaxIters != DefaultMaxIters ||
		opts.Tolerance != DefaultTolerance || opts.Delta != DefaultDelta {
		t.Errorf("zero options should fill defaults, got %+v", opts)
	}
}

func BenchmarkSolve(b *testing.B) {
	target := r2.Point{X: 3, Y: 1}
	g := New(DefaultOptions())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := kinematics.NewChain(4, 2.0, math.Pi/4)
		g.Solve(c, &target)
	}
}
