package viz

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/geo/r2"
)

type stubSession struct {
	links     int
	target    *r2.Point
	reached   bool
	moves     int
	ticks     int
	retargets []r2.Point
}

func newStubSession() *stubSession {
	t := r2.Point{X: 3, Y: 1}
	return &stubSession{links: 2, target: &t}
}

func (s *stubSession) Tick()                { s.ticks++; s.moves++ }
func (s *stubSession) Retarget(p r2.Point) { s.retargets = append(s.retargets, p); s.target = &p }
func (s *stubSession) ClearTarget()        { s.target = nil }
func (s *stubSession) Reconfigure(n int) error {
	if n < 2 {
		return errors.New("link count below minimum")
	}
	s.links = n
	return nil
}
func (s *stubSession) Pose() []r2.Point {
	return []r2.Point{{}, {X: 2, Y: 0}, {X: 3, Y: 1}}
}
func (s *stubSession) EndEffector() r2.Point { return r2.Point{X: 3, Y: 1} }
func (s *stubSession) Target() (r2.Point, bool) {
	if s.target == nil {
		return r2.Point{}, false
	}
	return *s.target, true
}
func (s *stubSession) Distance() float64 { return 0.5 }
func (s *stubSession) MoveCount() int    { return s.moves }
func (s *stubSession) Reached() bool     { return s.reached }
func (s *stubSession) LinkCount() int    { return s.links }

func TestModelTickAdvancesSession(t *testing.T) {
	sess := newStubSession()
	m := NewModel(sess, 30)

	next, cmd := m.Update(TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if sess.ticks != 1 {
		t.Errorf("expected 1 session tick, got %d", sess.ticks)
	}

	m = next.(Model)
	if len(m.errHistory) != 1 {
		t.Errorf("expected error history of 1, got %d", len(m.errHistory))
	}
}

func TestModelPauseStopsTicks(t *testing.T) {
	sess := newStubSession()
	m := NewModel(sess, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	m = next.(Model)
	next, _ = m.Update(TickMsg{})
	m = next.(Model)

	if sess.ticks != 0 {
		t.Errorf("paused model should not tick the session, got %d", sess.ticks)
	}
}

func TestModelJointKeys(t *testing.T) {
	sess := newStubSession()
	m := NewModel(sess, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = next.(Model)
	if sess.links != 4 {
		t.Errorf("expected 4 links after pressing 4, got %d", sess.links)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(Model)
	if sess.links != 5 {
		t.Errorf("expected 5 links after +, got %d", sess.links)
	}

	// Already at the key range ceiling.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(Model)
	if sess.links != 5 {
		t.Errorf("+ above %d links should be ignored, got %d", MaxLinks, sess.links)
	}
	if m.sess.LinkCount() != 5 {
		t.Errorf("model should see 5 links, got %d", m.sess.LinkCount())
	}
}

func TestModelMouseRetarget(t *testing.T) {
	sess := newStubSession()
	m := NewModel(sess, 30)

	click := tea.MouseMsg{
		X:      canvasOriginX + canvasWidth/2,
		Y:      canvasOriginY + canvasHeight/2,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	next, _ := m.Update(click)
	m = next.(Model)

	if len(sess.retargets) != 1 {
		t.Fatalf("expected 1 retarget, got %d", len(sess.retargets))
	}
	if sess.retargets[0].Norm() > 0.5 {
		t.Errorf("center click should target near origin, got %v", sess.retargets[0])
	}
}

func TestModelMouseOutsideCanvasIgnored(t *testing.T) {
	sess := newStubSession()
	m := NewModel(sess, 30)

	next, _ := m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	_ = next

	if len(sess.retargets) != 0 {
		t.Errorf("click on the header should not retarget, got %d", len(sess.retargets))
	}
}

func TestModelView(t *testing.T) {
	sess := newStubSession()
	m := NewModel(sess, 30)

	out := m.View()
	for _, want := range []string{"KINEMATIC ARM", "Links", "Moves", "Target"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	sess.reached = true
	if out := m.View(); !strings.Contains(out, "REACHED") {
		t.Error("view should show REACHED status")
	}

	sess.ClearTarget()
	if out := m.View(); !strings.Contains(out, "NO TARGET") {
		t.Error("view should show NO TARGET status")
	}
}
