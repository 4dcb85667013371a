package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/partsim/internal/metrics"
	"github.com/san-kum/partsim/internal/sim"
)

const (
	width    = 80
	height   = 24
	maxSpeed = 32
	gifPath  = "partsim.gif"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(44)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Bold(true)
)

type TickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives an engine from the terminal: every frame it steps the engine
// speed times and redraws the published snapshot.
type Model struct {
	engine   *sim.Engine
	recorder *metrics.Recorder
	title    string
	fps      int
	dt       float64
	speed    int

	canvas *Canvas
	view   Viewport

	running   bool
	frame     int
	last      sim.TickStats
	err       error
	showHelp  bool
	recording bool
	gif       *Recording
	notice    string
}

// NewModel returns a live view of e. rec, if non-nil, must already be
// registered as an observer of e; its series feed the side panel.
func NewModel(e *sim.Engine, rec *metrics.Recorder, title string, fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	c := NewCanvas(width, height)
	return Model{
		engine:   e,
		recorder: rec,
		title:    title,
		fps:      fps,
		dt:       1 / float64(fps),
		speed:    1,
		canvas:   c,
		view:     NewViewport(e.Config().Bounds, c),
		running:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick(m.fps)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "s":
			if !m.running && m.err == nil {
				m.step()
				m.draw()
			}
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "t":
			NextTheme()
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.frame++
		if m.running {
			for i := 0; i < m.speed && m.err == nil; i++ {
				m.step()
			}
		}
		m.draw()
		if m.recording {
			m.gif.Capture(m.canvas)
		}
		return m, tick(m.fps)
	}
	return m, nil
}

func (m *Model) step() {
	st, err := m.engine.Step(m.dt)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.last = st
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.gif = NewRecording(m.fps)
		return
	}
	m.recording = false
	if err := m.gif.Save(gifPath); err != nil {
		m.notice = "gif: " + err.Error()
	} else {
		m.notice = fmt.Sprintf("saved %d frames to %s", m.gif.Len(), gifPath)
	}
	m.gif = nil
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.Border()
	m.canvas.DrawParticles(m.engine.Snapshot(), m.view)
}

func (m Model) status() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("HALTED")
	case m.engine.Phase() == sim.Bootstrapping:
		return StatusRunning.Render(AnimatedSpinner(m.frame) + " BOOTSTRAPPING")
	case m.recording:
		return StatusRecording.Render("● REC")
	case !m.running:
		return StatusPaused.Render("PAUSED")
	default:
		return StatusRunning.Render("RUNNING")
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(HeaderStyle().Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	cfg := m.engine.Config()
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Kernel", m.engine.Kernel().Name())
	row("Particles", fmt.Sprintf("%d / %d", m.engine.Len(), cfg.Count))
	if m.engine.Phase() == sim.Bootstrapping {
		s.WriteString(ProgressBar(float64(m.engine.Len())/float64(cfg.Count), 30) + "\n")
	} else {
		row("Bootstrap", m.engine.BootstrapTime().Round(time.Microsecond).String())
	}
	row("Tick", fmt.Sprintf("%d", m.last.Tick))
	row("Time", fmt.Sprintf("%.2fs", m.last.Time))
	row("Speed", fmt.Sprintf("%dx", m.speed))
	row("Workers", fmt.Sprintf("%d", m.engine.Workers()))
	row("Tick cost", m.last.Elapsed.Round(time.Microsecond).String())
	row("Contacts", fmt.Sprintf("%d", m.last.Collisions))

	if m.recorder != nil {
		s.WriteString("\n" + Separator(36) + "\n")
		for _, name := range m.recorder.Names() {
			series := m.recorder.Series(name)
			s.WriteString(MetricLabel.Render(name) + " " + SparklineChart(series, 24) + "\n")
		}
		if energy := m.recorder.Series("kinetic_energy"); len(energy) > 1 {
			chart := asciigraph.Plot(energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
			s.WriteString(graphStyle.Render(chart) + "\n")
		}
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	if m.notice != "" {
		s.WriteString("\n" + Subtle.Render(m.notice) + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("SP:Pause S:Step +/-:Speed\nT:Theme G:Record ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsStyle.Render(s.String()))
	if m.showHelp {
		return PanelStyle().Render(helpText) + "\n" + main
	}
	return main
}

const helpText = `KEYBOARD SHORTCUTS
Space  pause or resume
S      single tick while paused
+ / -  ticks per frame
T      cycle themes
G      toggle GIF recording
?      toggle this help
Q      quit`
