// Package dashboardscreen renders learning progress and the walker's
// recommended next lessons.
package dashboardscreen

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/dashboard"
	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	"github.com/akshayb/jacpath/internal/ui/components"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/ui/theme"
	"github.com/akshayb/jacpath/internal/walker"
)

// viewReadyMsg is sent when progress and recommendations have been
// fetched and combined.
type viewReadyMsg struct {
	View *dashboard.View
	Err  error
}

// DashboardScreen shows overall progress, weak areas, and recommendations.
type DashboardScreen struct {
	client walker.Client

	view   *dashboard.View
	errMsg string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates a new DashboardScreen.
func New(client walker.Client) *DashboardScreen {
	return &DashboardScreen{client: client}
}

func (d *DashboardScreen) Init() tea.Cmd {
	client := d.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		snap, err := client.FetchProgress(ctx)
		if err != nil {
			return viewReadyMsg{Err: err}
		}
		recs, err := client.FetchRecommendations(ctx)
		if err != nil {
			return viewReadyMsg{Err: err}
		}
		view, err := dashboard.Build(snap, recs)
		return viewReadyMsg{View: view, Err: err}
	}
}

func (d *DashboardScreen) Title() string {
	return "Progress"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case viewReadyMsg:
		if msg.Err != nil {
			d.errMsg = msg.Err.Error()
			return d, nil
		}
		d.view = msg.View
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return d, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	if d.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Could not load progress: " + d.errMsg)
	}
	if d.view == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading your progress...")
	}

	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, d.renderOverview(cw))
	if len(d.view.WeakAreas) > 0 {
		sections = append(sections, d.renderWeakAreas(cw))
	}
	if len(d.view.Recommendations) > 0 {
		sections = append(sections, d.renderRecommendations(cw))
	}
	if len(d.view.RecentLessons) > 0 {
		sections = append(sections, d.renderTimeline(cw))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

func (d *DashboardScreen) renderOverview(cw int) string {
	v := d.view

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Overall Progress"))
	b.WriteString("\n")
	bar := components.NewProgressBar("", float64(v.OverallPercent)/100, true, cw-10)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	stats := []string{
		fmt.Sprintf("Lessons: %d/%d", v.LessonsCompleted, v.TotalLessons),
		fmt.Sprintf("Avg quiz: %d%%", v.AvgQuizPercent),
		fmt.Sprintf("Streak: %d days", v.CurrentStreak),
		fmt.Sprintf("This week: %.1fh", v.HoursThisWeek),
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(strings.Join(stats, "    ")))

	return components.Card(b.String(), cw)
}

func (d *DashboardScreen) renderWeakAreas(cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("Needs Practice"))
	b.WriteString("\n")
	for _, w := range d.view.WeakAreas {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(
			fmt.Sprintf("  %-24s %d%%", w.ConceptName, w.ProficiencyPercent())))
		b.WriteString("\n")
	}
	return components.Card(strings.TrimRight(b.String(), "\n"), cw)
}

func (d *DashboardScreen) renderRecommendations(cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Recommended Next"))
	b.WriteString("\n")
	for i, rec := range d.view.Recommendations {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(
			fmt.Sprintf("  %d. %s", i+1, rec.Lesson.Title)))
		if rec.Lesson.DurationMinutes > 0 {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
				fmt.Sprintf("  (%d min)", rec.Lesson.DurationMinutes)))
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("     " + rec.Reason))
		b.WriteString("\n")
	}
	return components.HighlightCard(strings.TrimRight(b.String(), "\n"), cw)
}

func (d *DashboardScreen) renderTimeline(cw int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Recent Activity"))
	b.WriteString("\n")
	for _, l := range d.view.RecentLessons {
		marker := theme.Dimmed.Render("○")
		if l.Status == dashboard.StatusCompleted {
			marker = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
		}
		b.WriteString(fmt.Sprintf("  %s %s", marker,
			lipgloss.NewStyle().Foreground(theme.Text).Render(l.Title)))
		if l.CompletedDate != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + l.CompletedDate))
		}
		b.WriteString("\n")
	}
	return components.Card(strings.TrimRight(b.String(), "\n"), cw)
}
