package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/gitcero/kinematic-arm-simulation/internal/kinematics"
	"github.com/gitcero/kinematic-arm-simulation/internal/solver"
)

const (
	// MinLinks is the smallest chain the solver's convergence logic is
	// defined for.
	MinLinks = 2

	DefaultLinkCount  = 2
	DefaultLinkLength = 2.0
	DefaultAngle      = math.Pi / 4
)

// DefaultTarget is restored on every reconfigure.
var DefaultTarget = r2.Point{X: 3, Y: 1}

var ErrLinkCount = errors.New("session: link count must be at least 2")

// Session owns one arm, one target, and the reached/move-count bookkeeping
// around the solver. A fresh or reconfigured session is always converging.
// Sessions are independent: nothing is shared between instances, and a
// session is driven by a single goroutine at a time.
type Session struct {
	chain     *kinematics.Chain
	target    *r2.Point
	ik        *solver.Gradient
	reached   bool
	moveCount int
}

func New() *Session {
	return NewWithOptions(solver.DefaultOptions())
}

func NewWithOptions(opts solver.Options) *Session {
	s := &Session{ik: solver.New(opts)}
	s.reset(DefaultLinkCount)
	return s
}

func (s *Session) reset(n int) {
	s.chain = kinematics.NewChain(n, DefaultLinkLength, DefaultAngle)
	t := DefaultTarget
	s.target = &t
	s.reached = false
	s.moveCount = 0
}

// Tick runs one solver pass while converging. Once reached, ticks are
// no-ops until the next retarget or reconfigure. A tick without a target
// is a pure redraw: no solve, no count.
func (s *Session) Tick() {
	if s.reached || s.target == nil {
		return
	}
	rep := s.ik.Solve(s.chain, s.target)
	s.moveCount++
	s.reached = rep.Converged
}

// Retarget replaces the target and restarts convergence, regardless of
// prior state.
func (s *Session) Retarget(p r2.Point) {
	t := p
	s.target = &t
	s.reached = false
	s.moveCount = 0
}

// ClearTarget unsets the target; subsequent ticks redraw without solving.
func (s *Session) ClearTarget() {
	s.target = nil
}

// Reconfigure rebuilds the chain with n links at default lengths and pose,
// restores the default target, and restarts convergence. n below MinLinks
// is rejected, not clamped.
func (s *Session) Reconfigure(n int) error {
	if n < MinLinks {
		return fmt.Errorf("%w: got %d", ErrLinkCount, n)
	}
	s.reset(n)
	return nil
}

// Pose returns the joint positions for rendering, base first.
func (s *Session) Pose() []r2.Point {
	return s.chain.Pose()
}

func (s *Session) EndEffector() r2.Point {
	return s.chain.EndEffector()
}

// Target reports the current target and whether one is set.
func (s *Session) Target() (r2.Point, bool) {
	if s.target == nil {
		return r2.Point{}, false
	}
	return *s.target, true
}

// Distance is the current end-effector distance to target, or NaN when no
// target is set.
func (s *Session) Distance() float64 {
	if s.target == nil {
		return math.NaN()
	}
	return s.target.Sub(s.chain.EndEffector()).Norm()
}

func (s *Session) Reached() bool {
	return s.reached
}

func (s *Session) MoveCount() int {
	return s.moveCount
}

func (s *Session) LinkCount() int {
	return s.chain.LinkCount()
}

// Angles returns a copy of the joint angles.
func (s *Session) Angles() []float64 {
	return append([]float64(nil), s.chain.Angles...)
}

// Lengths returns a copy of the link lengths.
func (s *Session) Lengths() []float64 {
	return append([]float64(nil), s.chain.Lengths...)
}
