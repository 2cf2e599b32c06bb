package viz

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cellsim/internal/engine"
)

const (
	canvasWidth     = 70
	canvasHeight    = 28
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model steps a simulation at the frame rate and renders the ensemble
// on a braille canvas next to a stats panel.
type Model struct {
	terms    []engine.Term
	schedule engine.Schedule
	ens      engine.Ensemble
	initial  engine.Ensemble
	rng      *rand.Rand

	name   string
	dt     float64
	noise  float64
	seed   int64
	step   int
	t      float64
	radius float64

	// world extent mapped onto the canvas, fixed at start so the
	// view doesn't jitter as cells move
	extent float64

	canvas      *Canvas
	overlapHist []float64
	running     bool
	failed      error
}

func NewModel(name string, terms []engine.Term, schedule engine.Schedule, ens engine.Ensemble, dt, noise float64, seed int64) Model {
	extent := 1.0
	for _, p := range ens {
		if v := math.Max(math.Abs(p.X), math.Abs(p.Y)); v > extent {
			extent = v
		}
	}

	return Model{
		terms:       terms,
		schedule:    schedule,
		ens:         ens.Clone(),
		initial:     ens.Clone(),
		rng:         rand.New(rand.NewSource(seed)),
		name:        name,
		dt:          dt,
		noise:       noise,
		seed:        seed,
		radius:      schedule(0, 0),
		extent:      extent * 1.15,
		canvas:      NewCanvas(canvasWidth, canvasHeight),
		overlapHist: make([]float64, 0, historyCapacity),
		running:     true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.failed == nil {
			m.advance()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) advance() {
	m.radius = m.schedule(m.step, m.t)
	next, err := engine.Timestep(m.ens, m.terms, m.radius, m.dt, m.noise, m.rng)
	if err != nil {
		m.failed = err
		m.running = false
		return
	}
	m.ens = next
	m.step++
	m.t += m.dt

	m.overlapHist = append(m.overlapHist, m.overlap())
	if len(m.overlapHist) > historyCapacity {
		m.overlapHist = m.overlapHist[1:]
	}
}

// overlap counts free cells inside the cavity radius.
func (m *Model) overlap() float64 {
	ci := m.ens.CavityIndex()
	if ci < 0 {
		return 0
	}
	cx, cy := m.ens[ci].X, m.ens[ci].Y
	count := 0.0
	for _, p := range m.ens {
		if p.Kind != engine.Free {
			continue
		}
		dx, dy := p.X-cx, p.Y-cy
		if dx*dx+dy*dy < m.radius*m.radius {
			count++
		}
	}
	return count
}

func (m *Model) reset() {
	m.ens = m.initial.Clone()
	m.rng = rand.New(rand.NewSource(m.seed))
	m.step = 0
	m.t = 0
	m.radius = m.schedule(0, 0)
	m.overlapHist = m.overlapHist[:0]
	m.failed = nil
	m.running = true
}

// project maps world coordinates to canvas sub-pixels.
func (m *Model) project(x, y float64) (int, int) {
	cw, ch := float64(canvasWidth*2), float64(canvasHeight*4)
	px := (x/m.extent + 1) / 2 * cw
	py := (1 - y/m.extent) / 2 * ch
	return int(px), int(py)
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, p := range m.ens {
		px, py := m.project(p.X, p.Y)
		switch p.Kind {
		case engine.Cavity:
			m.canvas.DrawDot(px, py)
		default:
			m.canvas.Set(px, py)
		}
	}
	if ci := m.ens.CavityIndex(); ci >= 0 && m.radius > 0 {
		cx, cy := m.project(m.ens[ci].X, m.ens[ci].Y)
		// sub-pixel cells are twice as tall as wide; use the x scale
		r := m.radius / m.extent / 2 * float64(canvasWidth*2)
		m.canvas.DrawCircle(cx, cy, r)
	}
}

func (m Model) View() string {
	status := "RUNNING"
	if m.failed != nil {
		status = fmt.Sprintf("FAILED: %v", m.failed)
	} else if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(status + "\n\n")

	if len(m.overlapHist) > 1 {
		chart := asciigraph.Plot(m.overlapHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Cells in cavity"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Radius") + valueStyle.Render(fmt.Sprintf("%.3f", m.radius)) + "\n")
	s.WriteString(labelStyle.Render("Cells") + valueStyle.Render(fmt.Sprintf("%d free", m.ens.FreeCount())) + "\n")
	s.WriteString(labelStyle.Render("Noise") + valueStyle.Render(fmt.Sprintf("%.3f", m.noise)) + "\n")
	s.WriteString(labelStyle.Render("Seed") + valueStyle.Render(fmt.Sprintf("%d", m.seed)) + "\n")
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause  R:Reset  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()))
}
