package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/chemsim/internal/kinetics"
)

const (
	frameRate = time.Second / 30
	// frames to sweep a whole trajectory at speed 1
	sweepFrames = 300
	maxSpeed    = 64
)

type TickMsg time.Time

// Model replays a computed trajectory. It never integrates; the play head
// only indexes existing rows.
type Model struct {
	tr       *kinetics.Trajectory
	title    string
	playHead int
	stride   int
	speed    int
	running  bool
	width    int
	height   int
}

func NewModel(tr *kinetics.Trajectory, title string) Model {
	stride := tr.Steps() / sweepFrames
	if stride < 1 {
		stride = 1
	}
	return Model{
		tr:      tr,
		title:   title,
		stride:  stride,
		speed:   1,
		running: true,
		width:   80,
		height:  15,
	}
}

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// PlayHead is the row currently displayed.
func (m Model) PlayHead() int { return m.playHead }

func (m Model) Running() bool { return m.running }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if !m.running && m.atEnd() {
				m.playHead = 0
			}
			m.running = !m.running
		case "r":
			m.playHead = 0
			m.running = true
		case "[":
			m.running = false
			m.seek(-m.stride)
		case "]":
			m.running = false
			m.seek(m.stride)
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "t":
			NextTheme()
		}
	case tea.WindowSizeMsg:
		m.width = clamp(msg.Width-30, 20, 160)
		m.height = clamp(msg.Height-12, 5, 40)
	case TickMsg:
		if m.running {
			m.seek(m.stride * m.speed)
			if m.atEnd() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) seek(delta int) {
	m.playHead = clamp(m.playHead+delta, 0, m.tr.Steps())
}

func (m Model) atEnd() bool {
	return m.playHead >= m.tr.Steps()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m Model) status() string {
	switch {
	case m.running:
		return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary).Render("PLAYING")
	case m.atEnd():
		return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Muted).Render("DONE")
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Warning).Render("PAUSED")
	}
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle().Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(fmt.Sprintf("%s  x%d\n\n", m.status(), m.speed))

	if m.playHead > 0 {
		chart := PlotASCII(m.tr, PlotOptions{Height: m.height, Width: m.width, Upto: m.playHead})
		s.WriteString(chart + "\n\n")
	}

	row := m.tr.Row(m.playHead)
	stats := labelStyle().Render(fmt.Sprintf("%-10s", "Time")) +
		valueStyle().Render(fmt.Sprintf("%.4g s", m.tr.TimePoints[m.playHead])) + "\n" +
		labelStyle().Render(fmt.Sprintf("%-10s", "Step")) +
		valueStyle().Render(fmt.Sprintf("%d / %d", m.playHead, m.tr.Steps())) + "\n\n"
	for j, f := range m.tr.Formulas {
		value := fmt.Sprintf("%.6g", row[j])
		if row[j] < 0 {
			value = warnStyle().Render(value)
		} else {
			value = valueStyle().Render(value)
		}
		stats += labelStyle().Render(fmt.Sprintf("%-10s", f)) + value + "\n"
	}
	s.WriteString(panelStyle().Render(strings.TrimRight(stats, "\n")))

	help := lipgloss.NewStyle().Foreground(CurrentTheme.Muted).MarginTop(1).
		Render("SP:Pause R:Restart [ ]:Step +/-:Speed T:Theme Q:Quit")
	s.WriteString("\n" + help)
	return s.String()
}

// RunLive blocks until the user quits the replay.
func RunLive(tr *kinetics.Trajectory, title string) error {
	p := tea.NewProgram(NewModel(tr, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
