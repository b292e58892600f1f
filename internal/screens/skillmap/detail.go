package skillmapscreen

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	"github.com/akshayb/jacpath/internal/skillmap"
	"github.com/akshayb/jacpath/internal/ui/components"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/ui/theme"
)

// detailScreen shows one concept: strength, practice stats, and the
// lessons that teach it.
type detailScreen struct {
	concept skillmap.Concept
}

var _ screen.Screen = (*detailScreen)(nil)

func newDetailScreen(c skillmap.Concept) *detailScreen {
	return &detailScreen{concept: c}
}

func (d *detailScreen) Init() tea.Cmd {
	return nil
}

func (d *detailScreen) Title() string {
	return d.concept.Name
}

func (d *detailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *detailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "q", "enter":
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return d, nil
}

func (d *detailScreen) View(width, height int) string {
	c := d.concept
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(c.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.Category.DisplayName()))
	b.WriteString("\n\n")

	if c.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(c.Description))
		b.WriteString("\n\n")
	}

	if c.Unlocked {
		strength := c.Strength()
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.StrengthColor(string(strength))).
			Bold(true).
			Render(fmt.Sprintf("%s  (%.0f%%)", strings.ToUpper(string(strength)), c.MasteryScore*100)))
		b.WriteString("\n")
		bar := components.ProgressBar{
			Percent:   c.MasteryScore,
			Width:     cw - 10,
			FillColor: theme.StrengthColor(string(strength)),
		}
		b.WriteString(bar.View())
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("Practiced %d times", c.TimesPracticed)))
		if c.LastPracticed != nil {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				", last on " + c.LastPracticed.Format("Jan 2, 2006")))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(theme.Dimmed.Render(
			fmt.Sprintf("🔒 Locked. Unlocks at %.0f%% mastery of prerequisites.", c.UnlockThreshold*100)))
		b.WriteString("\n")
		bar := components.ProgressBar{
			Percent:   c.UnlockProgress(),
			Width:     cw - 10,
			FillColor: theme.Warning,
		}
		b.WriteString(bar.View())
		b.WriteString("\n")
	}

	if len(c.Resources) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Lessons"))
		b.WriteString("\n")
		for _, r := range c.Resources {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  • " + r.LessonTitle))
			b.WriteString("\n")
		}
	}

	card := components.Card(b.String(), cw)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
