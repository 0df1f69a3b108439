package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/geo/r2"
	"github.com/guptarohit/asciigraph"
)

const (
	canvasWidth  = 72
	canvasHeight = 22
	worldExtent  = 5.0

	// MaxLinks bounds the joint-count keys. The session itself accepts
	// any count >= 2.
	MaxLinks = 5
	minLinks = 2

	historyCapacity = 600
	trailCapacity   = 400

	// View layout: header row, status row, then the canvas block padded by
	// canvasStyle. Mouse cell coordinates are translated with these.
	canvasOriginX = 2
	canvasOriginY = 3
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Session is the narrow contract the TUI drives; *session.Session
// satisfies it. Keeping the dependency this way around leaves the core
// free of any drawing concern.
type Session interface {
	Tick()
	Retarget(p r2.Point)
	ClearTarget()
	Reconfigure(n int) error
	Pose() []r2.Point
	EndEffector() r2.Point
	Target() (r2.Point, bool)
	Distance() float64
	MoveCount() int
	Reached() bool
	LinkCount() int
}

// Model is the bubbletea program state for the live arm view.
type Model struct {
	sess       Session
	view       *Viewport
	trail      []r2.Point
	errHistory []float64
	frameRate  int
	running    bool
	showHelp   bool
}

func NewModel(sess Session, frameRate int) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	return Model{
		sess:       sess,
		view:       NewViewport(canvasWidth, canvasHeight, -worldExtent, worldExtent, -worldExtent, worldExtent),
		trail:      make([]r2.Point, 0, trailCapacity),
		errHistory: make([]float64, 0, historyCapacity),
		frameRate:  frameRate,
		running:    true,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reconfigure(m.sess.LinkCount())
		case "c":
			m.sess.ClearTarget()
		case "2", "3", "4", "5":
			m.reconfigure(int(msg.String()[0] - '0'))
		case "+", "=":
			if n := m.sess.LinkCount() + 1; n <= MaxLinks {
				m.reconfigure(n)
			}
		case "-", "_":
			if n := m.sess.LinkCount() - 1; n >= minLinks {
				m.reconfigure(n)
			}
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			col := msg.X - canvasOriginX
			row := msg.Y - canvasOriginY
			if m.view.Contains(col, row) {
				m.sess.Retarget(m.view.WorldAtCell(col, row))
				m.trail = m.trail[:0]
				m.errHistory = m.errHistory[:0]
			}
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reconfigure(n int) {
	if err := m.sess.Reconfigure(n); err != nil {
		return
	}
	m.trail = m.trail[:0]
	m.errHistory = m.errHistory[:0]
}

func (m *Model) step() {
	m.sess.Tick()

	m.trail = append(m.trail, m.sess.EndEffector())
	if len(m.trail) > trailCapacity {
		m.trail = m.trail[1:]
	}

	if _, ok := m.sess.Target(); ok {
		m.errHistory = append(m.errHistory, m.sess.Distance())
		if len(m.errHistory) > historyCapacity {
			m.errHistory = m.errHistory[1:]
		}
	}
}

func (m Model) draw() {
	m.view.Clear()

	for _, p := range m.trail {
		m.view.Canvas.Set(m.viewDot(p))
	}

	pose := m.sess.Pose()
	m.view.DrawChain(pose)
	m.view.MarkCross(r2.Point{})

	if target, ok := m.sess.Target(); ok {
		m.view.MarkTarget(target)
	}
}

func (m Model) viewDot(p r2.Point) (int, int) {
	return m.view.project(p)
}

// View renders the TUI.
func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle.Render("KINEMATIC ARM") + "\n")

	status := "CONVERGING"
	if m.sess.Reached() {
		status = lipgloss.NewStyle().Foreground(CurrentTheme.Success).Render("REACHED")
	} else if !m.running {
		status = "PAUSED"
	}
	if _, ok := m.sess.Target(); !ok {
		status = "NO TARGET"
	}
	s.WriteString(status + "\n")

	armStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Arm)
	s.WriteString(canvasStyle.Render(armStyle.Render(m.view.String())) + "\n")

	s.WriteString(labelStyle.Render("Links") + valueStyle.Render(fmt.Sprintf("%d", m.sess.LinkCount())) + "\n")
	if target, ok := m.sess.Target(); ok {
		s.WriteString(labelStyle.Render("Target") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", target.X, target.Y)) + "\n")
		s.WriteString(labelStyle.Render("Error") + valueStyle.Render(fmt.Sprintf("%.4f", m.sess.Distance())) + "\n")
	}
	ee := m.sess.EndEffector()
	s.WriteString(labelStyle.Render("Effector") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", ee.X, ee.Y)) + "\n")
	s.WriteString(labelStyle.Render("Moves") + valueStyle.Render(fmt.Sprintf("%d", m.sess.MoveCount())) + "\n")

	if len(m.errHistory) > 1 {
		chart := asciigraph.Plot(m.errHistory,
			asciigraph.Height(4),
			asciigraph.Width(40),
			asciigraph.Caption("distance to target"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if m.showHelp {
		s.WriteString(helpStyle.Render(strings.Join([]string{
			"click   set target",
			"2-5 +/- joint count",
			"space   pause",
			"r       reset",
			"c       clear target",
			"t       theme",
			"q       quit",
		}, "\n")))
	} else {
		s.WriteString(helpStyle.Render("click: target · 2-5: joints · space: pause · ?: help · q: quit"))
	}

	return s.String()
}
