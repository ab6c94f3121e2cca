package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func decay(t, y float64) (float64, error) { return -y, nil }

func TestLiveAdvanceStopsAtFinalTime(t *testing.T) {
	m := NewLive("-y", decay, 0, 0.1, 1.0, 0.03)

	for i := 0; i < 100 && !m.done; i++ {
		m.advance()
	}

	if !m.done {
		t.Fatal("integration never finished")
	}
	if m.t != 0.1 {
		t.Errorf("final t = %g, want exactly 0.1", m.t)
	}
	if m.y <= 0 || m.y >= 1 {
		t.Errorf("y = %g, want decay into (0, 1)", m.y)
	}
}

func TestLivePauseAndRestart(t *testing.T) {
	m := NewLive("-y", decay, 0, 1, 1.0, 0.1)

	model, _ := m.Update(tickMsg(time.Now()))
	m = model.(LiveModel)
	if len(m.values) == 1 {
		t.Fatal("tick did not advance")
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = model.(LiveModel)
	if !m.paused {
		t.Error("space did not pause")
	}

	before := len(m.values)
	model, _ = m.Update(tickMsg(time.Now()))
	m = model.(LiveModel)
	if len(m.values) != before {
		t.Error("paused model advanced")
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = model.(LiveModel)
	if len(m.values) != 1 || m.t != 0 {
		t.Error("restart did not reset the trajectory")
	}
}

func TestLiveViewRendersStatus(t *testing.T) {
	m := NewLive("-y", decay, 0, 1, 1.0, 0.1)
	m.advance()

	view := m.View()
	if !strings.Contains(view, "dy/dt = -y") {
		t.Error("view missing equation header")
	}
	if !strings.Contains(view, "steps") {
		t.Error("view missing step counter")
	}
}

func TestSparkline(t *testing.T) {
	s := Sparkline([]float64{0, 1, 2, 3}, 4)
	if len([]rune(s)) != 4 {
		t.Errorf("width = %d, want 4", len([]rune(s)))
	}
	if s2 := Sparkline(nil, 5); len([]rune(s2)) != 5 {
		t.Errorf("empty input width = %d, want 5", len([]rune(s2)))
	}
}
