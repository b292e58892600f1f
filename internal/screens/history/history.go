// Package historyscreen lists past quiz attempts from the local store.
package historyscreen

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/ui/theme"
)

const maxAttempts = 50

// attemptsLoadedMsg is sent when the attempt history has been read.
type attemptsLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

// HistoryScreen shows recent quiz attempts, newest first.
type HistoryScreen struct {
	attempts store.AttemptRepo

	rows   []store.Attempt
	loaded bool
	errMsg string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(attempts store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{attempts: attempts}
}

func (h *HistoryScreen) Init() tea.Cmd {
	repo := h.attempts
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := repo.Recent(ctx, maxAttempts)
		return attemptsLoadedMsg{Attempts: rows, Err: err}
	}
}

func (h *HistoryScreen) Title() string {
	return "History"
}

func (h *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (h *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.rows = msg.Attempts
		h.loaded = true
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return h, nil
}

func (h *HistoryScreen) View(width, height int) string {
	if h.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Could not load history: " + h.errMsg)
	}
	if !h.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(h.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No quiz attempts yet. Take a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")
	header := fmt.Sprintf("  %-12s  %-36s  %6s  %7s", "Date", "Quiz", "Score", "Result")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(header))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("  " + strings.Repeat("─", max(width-8, 0))))
	b.WriteString("\n")

	visible := height - 5
	if visible < 1 {
		visible = 1
	}
	rows := h.rows
	if len(rows) > visible {
		rows = rows[:visible]
	}

	for _, a := range rows {
		result := lipgloss.NewStyle().Foreground(theme.Error).Render("failed")
		if a.Passed {
			result = lipgloss.NewStyle().Foreground(theme.Success).Render("passed")
		}
		line := fmt.Sprintf("  %-12s  %-36s  %5.0f%%  ",
			a.FinishedAt.Format("Jan 2 15:04"),
			truncate(a.QuizTitle, 36),
			a.Score,
		)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line) + result)
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
