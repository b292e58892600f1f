// Package app wires the root Bubble Tea model: router, header/footer
// chrome, and global key handling.
package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/dashboard"
	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	"github.com/akshayb/jacpath/internal/screens/home"
	lessonscreen "github.com/akshayb/jacpath/internal/screens/lesson"
	quizscreen "github.com/akshayb/jacpath/internal/screens/quiz"
	"github.com/akshayb/jacpath/internal/screens/welcome"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/walker"
)

// Deps carries the shared services every screen may need.
type Deps struct {
	Client   walker.Client
	Attempts store.AttemptRepo
	Log      *zap.Logger
	UserID   string
}

// headerStatsMsg refreshes the streak and progress shown in the header.
type headerStatsMsg struct {
	streak      int
	progressPct int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int

	streak      int
	progressPct int
}

func newAppModel(deps Deps, initial screen.Screen) AppModel {
	if initial == nil {
		initial = home.New(deps.Client, deps.Attempts, deps.Log, deps.UserID)
	}
	return AppModel{
		deps:   deps,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchHeaderStats()}
	if active := m.router.Active(); active != nil {
		cmds = append(cmds, active.Init())
	}
	return tea.Batch(cmds...)
}

// fetchHeaderStats loads streak and overall progress for the header.
// Failures leave the header at zeros; the screens report their own
// errors.
func (m AppModel) fetchHeaderStats() tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		snap, err := client.FetchProgress(ctx)
		if err != nil {
			return headerStatsMsg{}
		}
		return headerStatsMsg{
			streak:      snap.CurrentStreak,
			progressPct: dashboard.RoundPercent(snap.OverallProgress),
		}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatsMsg:
		m.streak = msg.streak
		m.progressPct = msg.progressPct
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.streak, m.progressPct, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, footerHints...)
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the TUI on the splash screen, then home.
func Run(deps Deps) error {
	initial := welcome.New(func() screen.Screen {
		return home.New(deps.Client, deps.Attempts, deps.Log, deps.UserID)
	})
	_, err := tea.NewProgram(newAppModel(deps, initial)).Run()
	return err
}

// RunQuiz starts the TUI directly in a quiz session.
func RunQuiz(deps Deps, quizID string) error {
	initial := quizscreen.New(deps.Client, deps.Attempts, deps.Log, quizID, deps.UserID)
	_, err := tea.NewProgram(newAppModel(deps, initial)).Run()
	return err
}

// RunLessons starts the TUI in the lesson browser for a category.
func RunLessons(deps Deps, category string) error {
	initial := lessonscreen.NewBrowser(deps.Client, deps.Attempts, deps.Log, category, deps.UserID)
	_, err := tea.NewProgram(newAppModel(deps, initial)).Run()
	return err
}
