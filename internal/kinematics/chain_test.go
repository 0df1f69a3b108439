package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestForwardKinematicsStraight(t *testing.T) {
	pts := ForwardKinematics([]float64{0, 0}, []float64{2, 2})

	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	if pts[0] != (r2.Point{}) {
		t.Errorf("base should be origin, got %v", pts[0])
	}
	if math.Abs(pts[2].X-4) > 1e-12 || math.Abs(pts[2].Y) > 1e-12 {
		t.Errorf("straight chain should end at (4,0), got %v", pts[2])
	}
}

func TestForwardKinematicsCumulativeAngles(t *testing.T) {
	// First link straight up, second angle -90deg cancels the heading, so
	// the second link runs along +x.
	pts := ForwardKinematics([]float64{math.Pi / 2, -math.Pi / 2}, []float64{1, 1})

	end := pts[2]
	if math.Abs(end.X-1) > 1e-12 || math.Abs(end.Y-1) > 1e-12 {
		t.Errorf("expected end effector (1,1), got %v", end)
	}
}

func TestForwardKinematicsDeterministic(t *testing.T) {
	angles := []float64{0.3, -0.7, 1.1}
	lengths := []float64{1.5, 2.0, 0.5}

	a := ForwardKinematics(angles, lengths)
	b := ForwardKinematics(angles, lengths)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs between calls: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestAllocateLengthsReachability(t *testing.T) {
	targets := []r2.Point{
		{X: 3, Y: 1},
		{X: -2, Y: 4},
		{X: 0.5, Y: -0.5},
		{X: 10, Y: 0},
	}

	for _, target := range targets {
		for n := 1; n <= 6; n++ {
			lengths := AllocateLengths(target, n)
			if len(lengths) != n {
				t.Fatalf("expected %d lengths, got %d", n, len(lengths))
			}

			// Point the whole chain at the target's bearing: first angle
			// carries the bearing, the rest stay zero.
			angles := make([]float64, n)
			angles[0] = math.Atan2(target.Y, target.X)

			pts := ForwardKinematics(angles, lengths)
			end := pts[len(pts)-1]
			if end.Sub(target).Norm() > 1e-9 {
				t.Errorf("n=%d target=%v: extended chain ends at %v", n, target, end)
			}
		}
	}
}

func TestChainDefaults(t *testing.T) {
	c := NewChain(3, 2.0, math.Pi/4)

	if c.LinkCount() != 3 {
		t.Fatalf("expected 3 links, got %d", c.LinkCount())
	}
	if len(c.Angles) != len(c.Lengths) {
		t.Fatalf("angles/lengths mismatch: %d vs %d", len(c.Angles), len(c.Lengths))
	}
	for i := 0; i < 3; i++ {
		if c.Lengths[i] != 2.0 {
			t.Errorf("length %d should be 2.0, got %f", i, c.Lengths[i])
		}
		if c.Angles[i] != math.Pi/4 {
			t.Errorf("angle %d should be pi/4, got %f", i, c.Angles[i])
		}
	}

	pose := c.Pose()
	if len(pose) != 4 {
		t.Errorf("expected 4 pose points, got %d", len(pose))
	}
	if got := c.EndEffector(); got != pose[3] {
		t.Errorf("end effector %v should match last pose point %v", got, pose[3])
	}
}
