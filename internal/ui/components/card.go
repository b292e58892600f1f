package components

import (
	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centered cards
// so stacked boxes visually align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given width.
func Card(content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Padding(1, 2).
		Render(content)
}

// HighlightCard is a Card with the brand border, used for the focal
// element of a screen.
func HighlightCard(content string, width int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Padding(1, 2).
		Render(content)
}
