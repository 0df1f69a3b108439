package kinematics

import (
	"math"

	"github.com/golang/geo/r2"
)

// Chain is a planar articulated arm anchored at the origin. Angles are
// cumulative: each entry is a rotation added to the heading inherited from
// all prior links, measured from the world x-axis.
type Chain struct {
	Lengths []float64
	Angles  []float64
}

// NewChain builds a chain of n links with uniform length and a uniform
// per-joint angle.
func NewChain(n int, length, angle float64) *Chain {
	c := &Chain{
		Lengths: make([]float64, n),
		Angles:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		c.Lengths[i] = length
		c.Angles[i] = angle
	}
	return c
}

func (c *Chain) LinkCount() int {
	return len(c.Lengths)
}

// Pose returns all joint positions for the chain's current angles.
func (c *Chain) Pose() []r2.Point {
	return ForwardKinematics(c.Angles, c.Lengths)
}

// EndEffector returns the free endpoint of the last link.
func (c *Chain) EndEffector() r2.Point {
	pose := c.Pose()
	return pose[len(pose)-1]
}

// ForwardKinematics computes joint positions by cumulative rotation.
// Position i is position i-1 plus a vector of length lengths[i-1] at the
// running sum of angles[0..i]. Returns len(lengths)+1 points starting at
// the base (0,0). Requires len(angles) == len(lengths).
func ForwardKinematics(angles, lengths []float64) []r2.Point {
	pts := make([]r2.Point, len(lengths)+1)
	heading := 0.0
	for i := range lengths {
		heading += angles[i]
		pts[i+1] = r2.Point{
			X: pts[i].X + lengths[i]*math.Cos(heading),
			Y: pts[i].Y + lengths[i]*math.Sin(heading),
		}
	}
	return pts
}

// AllocateLengths spreads the distance to target evenly over n links, so a
// fully extended chain reaches any target exactly. The arm resizes whenever
// the target moves; that is the intended trade against fixed link lengths.
func AllocateLengths(target r2.Point, n int) []float64 {
	per := target.Norm() / float64(n)
	lengths := make([]float64, n)
	for i := range lengths {
		lengths[i] = per
	}
	return lengths
}
