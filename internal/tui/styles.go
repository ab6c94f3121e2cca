package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00cccc"))
	Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	Label  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	Value  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ccff"))
	Good   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	Warn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	Bad    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444"))
	KeyCap = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00aaaa"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)
)

// Sparkline renders values as a one-line block-character chart, sampled
// to fit width.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// Separator renders a dim horizontal rule.
func Separator(width int) string {
	return Subtle.Render(strings.Repeat("─", width))
}

// KeyHints renders alternating key/description pairs as a hint line.
func KeyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(Subtle.Render("  "))
		}
		b.WriteString(KeyCap.Render(pairs[i]))
		b.WriteString(Subtle.Render(" " + pairs[i+1]))
	}
	return b.String()
}
