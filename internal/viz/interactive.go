package viz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/metrics"
)

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00"))
)

var kernelInfo = map[string]string{
	"none":    "free flight",
	"bounce":  "elastic contacts",
	"seek":    "alpha attraction",
	"diffuse": "color diffusion",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type entry struct {
	kernel, preset string
}

// fields editable on the config screen.
var fields = []string{"count", "workers", "seed"}

type app struct {
	state, cursor int
	entries       []entry
	cfg           *config.Config
	fieldCursor   int
	editing       bool
	editBuf       string
	warning       string
	err           error
	liveModel     Model
}

// NewInteractiveApp lists every preset and runs the chosen one live.
func NewInteractiveApp() *app {
	var entries []entry
	kernels := make([]string, 0, len(config.Presets))
	for k := range config.Presets {
		kernels = append(kernels, k)
	}
	sort.Strings(kernels)
	for _, k := range kernels {
		for _, p := range config.ListPresets(k) {
			entries = append(entries, entry{kernel: k, preset: p})
		}
	}
	return &app{state: stateMenu, entries: entries}
}

func (m app) Init() tea.Cmd { return nil }

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	return m, nil
}

func (m app) handleKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	default:
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
}

func (m app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		e := m.entries[m.cursor]
		m.cfg = config.GetPreset(e.kernel, e.preset)
		m.state, m.fieldCursor, m.warning, m.err = stateConfig, 0, "", nil
	}
	return m, nil
}

func (m app) configKey(msg tea.KeyMsg) (app, tea.Cmd) {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.apply(fields[m.fieldCursor], m.editBuf)
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				m.editBuf += s
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case "down", "j":
		if m.fieldCursor < len(fields)-1 {
			m.fieldCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, m.value(fields[m.fieldCursor])
	case "s":
		cmd := m.start()
		return m, cmd
	}
	return m, nil
}

func (m *app) value(field string) string {
	switch field {
	case "count":
		return strconv.Itoa(m.cfg.Count)
	case "workers":
		return strconv.Itoa(m.cfg.Workers)
	default:
		return strconv.FormatUint(m.cfg.Seed, 10)
	}
}

func (m *app) apply(field, buf string) {
	m.warning = ""
	switch field {
	case "count":
		n, err := config.ParseCount(buf)
		if err != nil {
			m.warning = fmt.Sprintf("%v; using %d", err, n)
		}
		m.cfg.Count = n
	case "workers":
		if n, err := strconv.Atoi(buf); err == nil && n >= 0 {
			m.cfg.Workers = n
		}
	case "seed":
		if n, err := strconv.ParseUint(buf, 10, 64); err == nil {
			m.cfg.Seed = n
		}
	}
}

func (m *app) start() tea.Cmd {
	rec := metrics.NewRecorder(600, metrics.Default(m.cfg.Engine().Bounds, m.cfg.Spawn.MaxSpeed)...)
	e, err := m.cfg.NewEngine()
	if err != nil {
		m.err = err
		return nil
	}
	e.AddObserver(rec)
	e0 := m.entries[m.cursor]
	m.liveModel = NewModel(e, rec, e0.kernel+"/"+e0.preset, 60)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m app) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	default:
		return m.liveModel.View()
	}
}

func hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(keyStyle.Render(pairs[i]) + idleStyle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m app) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + HeaderStyle().Render("PARTSIM") + "\n    " + Subtle.Render("particle simulation engine") + "\n\n")
	for i, e := range m.entries {
		name := fmt.Sprintf("%-8s %-10s", e.kernel, e.preset)
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", cursorStyle.Render("▸"), activeStyle.Render(name), descStyle.Render(kernelInfo[e.kernel])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", idleStyle.Render(name), Subtle.Render(kernelInfo[e.kernel])))
		}
	}
	b.WriteString("\n    " + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m app) viewConfig() string {
	var b strings.Builder
	e := m.entries[m.cursor]
	b.WriteString("\n\n    " + HeaderStyle().Render(strings.ToUpper(e.kernel+" / "+e.preset)) + "\n    " + Subtle.Render(kernelInfo[e.kernel]) + "\n\n")
	for i, name := range fields {
		val := fmt.Sprintf("%8s", m.value(name))
		if m.editing && i == m.fieldCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.fieldCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", cursorStyle.Render("▸"), activeStyle.Render(fmt.Sprintf("%-10s", name)), descStyle.Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", idleStyle.Render(fmt.Sprintf("%-10s", name)), Subtle.Render(val)))
		}
	}
	if m.warning != "" {
		b.WriteString("\n    " + warnStyle.Render(m.warning) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n    " + errorStyle.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + hints("j/k", "select", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}

// RunLive runs m full screen until the user quits.
func RunLive(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
