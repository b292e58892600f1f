// Package lessonscreen lists lessons by category and renders a lesson
// viewer with section paging.
package lessonscreen

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/lessons"
	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/ui/theme"
	"github.com/akshayb/jacpath/internal/walker"
)

// lessonListMsg is sent when the lesson list has been fetched.
type lessonListMsg struct {
	Lessons []lessons.Summary
	Err     error
}

// BrowserScreen lists the lessons of one category.
type BrowserScreen struct {
	client   walker.Client
	attempts store.AttemptRepo
	log      *zap.Logger
	category string
	userID   string

	list   []lessons.Summary
	cursor int
	loaded bool
	errMsg string
}

var _ screen.Screen = (*BrowserScreen)(nil)
var _ screen.KeyHintProvider = (*BrowserScreen)(nil)

// NewBrowser creates a lesson browser for the given category.
func NewBrowser(client walker.Client, attempts store.AttemptRepo, log *zap.Logger, category, userID string) *BrowserScreen {
	return &BrowserScreen{
		client:   client,
		attempts: attempts,
		log:      log,
		category: category,
		userID:   userID,
	}
}

func (b *BrowserScreen) Init() tea.Cmd {
	client := b.client
	category := b.category
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		list, err := client.ListLessons(ctx, category)
		return lessonListMsg{Lessons: list, Err: err}
	}
}

func (b *BrowserScreen) Title() string {
	return "Lessons"
}

func (b *BrowserScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (b *BrowserScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonListMsg:
		if msg.Err != nil {
			b.errMsg = msg.Err.Error()
			return b, nil
		}
		b.list = msg.Lessons
		b.loaded = true
		return b, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < len(b.list)-1 {
				b.cursor++
			}
		case "enter":
			if b.cursor >= 0 && b.cursor < len(b.list) {
				id := b.list[b.cursor].ID
				viewer := NewViewer(b.client, b.attempts, b.log, id, b.userID)
				return b, func() tea.Msg {
					return router.PushScreenMsg{Screen: viewer}
				}
			}
		case "esc", "q":
			return b, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return b, nil
}

func (b *BrowserScreen) View(width, height int) string {
	if b.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Could not load lessons: " + b.errMsg)
	}
	if !b.loaded {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading lessons...")
	}
	if len(b.list) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  No lessons in this category yet.")
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for i, l := range b.list {
		mark := theme.Dimmed.Render("○")
		if l.Completed {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
		}
		line := fmt.Sprintf("%s %-40s %-12s %3d min", mark, l.Title, l.Difficulty, l.DurationMinutes)
		if i == b.cursor {
			sb.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ▸ " + line))
		} else {
			sb.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("    " + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
