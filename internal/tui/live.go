// Package tui is the terminal front end: a live view that streams an
// ODE integration as it advances, plus the shared styles the CLI uses
// for static output.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/dfranco-uni/numlab/internal/ode"
)

const stepsPerFrame = 4

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// LiveModel animates dy/dt = f(t, y) step by step with classical RK4.
type LiveModel struct {
	expr string
	f    ode.Func
	t0   float64
	tf   float64
	y0   float64
	h    float64

	t, y   float64
	times  []float64
	values []float64

	paused bool
	done   bool
	err    error

	width, height int
}

func NewLive(expr string, f ode.Func, t0, tf, y0, h float64) LiveModel {
	m := LiveModel{
		expr: expr, f: f,
		t0: t0, tf: tf, y0: y0, h: h,
		width: 80, height: 24,
	}
	m.reset()
	return m
}

func (m *LiveModel) reset() {
	m.t, m.y = m.t0, m.y0
	m.times = []float64{m.t0}
	m.values = []float64{m.y0}
	m.done = false
	m.err = nil
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.reset()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		if !m.paused && !m.done && m.err == nil {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) advance() {
	for i := 0; i < stepsPerFrame && !m.done; i++ {
		h := m.h
		truncated := false
		if m.t+h >= m.tf {
			h = m.tf - m.t
			truncated = true
		}
		y, err := ode.StepRK4(m.f, m.t, m.y, h)
		if err != nil {
			m.err = err
			m.done = true
			return
		}
		if truncated {
			m.t = m.tf
			m.done = true
		} else {
			m.t += h
		}
		m.y = y
		m.times = append(m.times, m.t)
		m.values = append(m.values, m.y)
	}
}

func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + Title.Render("dy/dt = "+m.expr) +
		Subtle.Render(fmt.Sprintf("   rk4  h=%g", m.h)) + "\n\n")

	plotW := m.width - 14
	if plotW < 20 {
		plotW = 20
	}
	plotH := m.height - 10
	if plotH < 5 {
		plotH = 5
	}
	if plotH > 16 {
		plotH = 16
	}

	if len(m.values) > 1 {
		chart := asciigraph.Plot(m.values,
			asciigraph.Height(plotH),
			asciigraph.Width(plotW),
			asciigraph.Caption(fmt.Sprintf("y(t), t ∈ [%g, %g]", m.t0, m.tf)))
		for _, line := range strings.Split(chart, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}

	status := Good.Render("● running")
	switch {
	case m.err != nil:
		status = Bad.Render("✗ " + m.err.Error())
	case m.done:
		status = Value.Render("✓ done")
	case m.paused:
		status = Warn.Render("❚❚ paused")
	}

	b.WriteString("  " + status + "\n")
	b.WriteString("  " + Label.Render("t ") + Value.Render(fmt.Sprintf("%10.5f", m.t)) +
		Label.Render("   y ") + Value.Render(fmt.Sprintf("%12.6f", m.y)) +
		Label.Render("   steps ") + Value.Render(fmt.Sprintf("%d", len(m.values)-1)) + "\n")
	b.WriteString("  " + Sparkline(m.values, plotW) + "\n\n")
	b.WriteString("  " + KeyHints("space", "pause", "r", "restart", "q", "quit") + "\n")

	return b.String()
}

// RunLive starts the live integration view in the alternate screen.
func RunLive(expr string, f ode.Func, t0, tf, y0, h float64) error {
	_, err := tea.NewProgram(NewLive(expr, f, t0, tf, y0, h), tea.WithAltScreen()).Run()
	return err
}
