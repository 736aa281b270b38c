package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flap/internal/core"
)

// colorStyles maps every core.Color palette index to a lipgloss style.
// Built once so concurrent SSH sessions only read it.
var colorStyles [256]lipgloss.Style

func init() {
	colorStyles[core.ColorDefault] = lipgloss.NewStyle()
	for i := 1; i < len(colorStyles); i++ {
		colorStyles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(i)))
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(colorStyles[startColor].Render(run.String()))
		}
	}
	return sb.String()
}
