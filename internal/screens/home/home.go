// Package home is the landing screen with the main navigation menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	dashboardscreen "github.com/akshayb/jacpath/internal/screens/dashboard"
	historyscreen "github.com/akshayb/jacpath/internal/screens/history"
	lessonscreen "github.com/akshayb/jacpath/internal/screens/lesson"
	skillmapscreen "github.com/akshayb/jacpath/internal/screens/skillmap"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/ui/components"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/ui/theme"
	"github.com/akshayb/jacpath/internal/walker"
)

var logo = strings.Join([]string{
	`   _                       _   _     `,
	`  (_) __ _  ___ _ __   __ _| |_| |__  `,
	`  | |/ _' |/ __| '_ \ / _' | __| '_ \ `,
	`  | | (_| | (__| |_) | (_| | |_| | | |`,
	` _/ |\__,_|\___| .__/ \__,_|\__|_| |_|`,
	`|__/           |_|                    `,
}, "\n")

// HomeScreen is the main navigation screen.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen with all dependencies for the screens it
// can navigate to.
func New(client walker.Client, attempts store.AttemptRepo, log *zap.Logger, userID string) *HomeScreen {
	items := []components.MenuItem{
		{
			Label:       "LESSONS",
			Description: "Browse and read lessons by category",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: lessonscreen.NewPicker(client, attempts, log, userID)}
				}
			},
		},
		{
			Label:       "SKILL MAP",
			Description: "Concept mastery across the curriculum",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: skillmapscreen.New(client)}
				}
			},
		},
		{
			Label:       "PROGRESS",
			Description: "Stats, weak areas, and what to do next",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: dashboardscreen.New(client)}
				}
			},
		},
		{
			Label:       "HISTORY",
			Description: "Past quiz attempts",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: historyscreen.New(attempts)}
				}
			},
			Disabled: attempts == nil,
		},
		{
			Label: "QUIT",
			Action: func() tea.Cmd {
				return tea.Quit
			},
		},
	}
	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(logo))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("Learn the Jac language, one walker at a time"))
	b.WriteString("\n\n\n")
	b.WriteString(h.menu.View())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
