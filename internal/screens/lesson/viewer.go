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
	exercisescreen "github.com/akshayb/jacpath/internal/screens/exercise"
	quizscreen "github.com/akshayb/jacpath/internal/screens/quiz"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/ui/components"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/ui/theme"
	"github.com/akshayb/jacpath/internal/walker"
)

// lessonLoadedMsg is sent when the lesson content has been fetched.
type lessonLoadedMsg struct {
	Lesson *lessons.Lesson
	Err    error
}

// trackedMsg confirms the completion was reported to the walker.
type trackedMsg struct {
	Err error
}

// ViewerScreen pages through a lesson's sections. When the lesson has a
// code exercise or a follow-up quiz, finishing hands off to that screen
// (the exercise first; it carries the quiz id onward).
type ViewerScreen struct {
	client   walker.Client
	attempts store.AttemptRepo
	log      *zap.Logger
	lessonID string
	userID   string

	lesson   *lessons.Lesson
	pager    *lessons.Pager
	openedAt time.Time
	finished bool
	errMsg   string
}

var _ screen.Screen = (*ViewerScreen)(nil)
var _ screen.KeyHintProvider = (*ViewerScreen)(nil)

// NewViewer creates a lesson viewer for the given lesson id.
func NewViewer(client walker.Client, attempts store.AttemptRepo, log *zap.Logger, lessonID, userID string) *ViewerScreen {
	return &ViewerScreen{
		client:   client,
		attempts: attempts,
		log:      log,
		lessonID: lessonID,
		userID:   userID,
		openedAt: time.Now(),
	}
}

func (v *ViewerScreen) Init() tea.Cmd {
	client := v.client
	id := v.lessonID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		l, err := client.FetchLesson(ctx, id)
		return lessonLoadedMsg{Lesson: l, Err: err}
	}
}

func (v *ViewerScreen) Title() string {
	if v.lesson != nil {
		return v.lesson.Title
	}
	return "Lesson"
}

func (v *ViewerScreen) KeyHints() []layout.KeyHint {
	if v.pager != nil && v.pager.AtEnd() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Finish lesson"},
			{Key: "←", Description: "Back a section"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "←/→", Description: "Sections"},
		{Key: "Esc", Description: "Close"},
	}
}

func (v *ViewerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lessonLoadedMsg:
		if msg.Err != nil {
			v.errMsg = msg.Err.Error()
			return v, nil
		}
		v.lesson = msg.Lesson
		v.pager = lessons.NewPager(msg.Lesson)
		return v, nil

	case trackedMsg:
		if msg.Err != nil && v.log != nil {
			v.log.Warn("track lesson failed", zap.Error(msg.Err))
		}
		if v.lesson != nil && v.lesson.ExerciseID != "" {
			l := v.lesson
			client := v.client
			attempts := v.attempts
			log := v.log
			userID := v.userID
			return v, func() tea.Msg {
				return router.ReplaceScreenMsg{
					Screen: exercisescreen.New(client, attempts, log, l.ExerciseID, l.ID, l.QuizID, userID),
				}
			}
		}
		if v.lesson != nil && v.lesson.QuizID != "" {
			quizID := v.lesson.QuizID
			client := v.client
			attempts := v.attempts
			log := v.log
			userID := v.userID
			return v, func() tea.Msg {
				return router.ReplaceScreenMsg{
					Screen: quizscreen.New(client, attempts, log, quizID, userID),
				}
			}
		}
		return v, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *ViewerScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return v, func() tea.Msg { return router.PopScreenMsg{} }
	case "right", "l", "pgdown":
		if v.pager != nil {
			v.pager.Next()
		}
	case "left", "h", "pgup":
		if v.pager != nil {
			v.pager.Prev()
		}
	case "enter":
		if v.pager != nil && v.pager.AtEnd() && !v.finished {
			v.finished = true
			return v, v.trackCompletion()
		}
		if v.pager != nil {
			v.pager.Next()
		}
	}
	return v, nil
}

// trackCompletion reports the finished lesson with time spent reading.
func (v *ViewerScreen) trackCompletion() tea.Cmd {
	client := v.client
	id := v.lessonID
	spent := int(time.Since(v.openedAt).Seconds())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := client.TrackLesson(ctx, id, "completed", spent)
		return trackedMsg{Err: err}
	}
}

func (v *ViewerScreen) View(width, height int) string {
	if v.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Could not load lesson: " + v.errMsg)
	}
	if v.lesson == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading lesson...")
	}

	cw := components.ContentWidth(width)
	sec := v.pager.Section()
	if sec == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  This lesson has no content.")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(sec.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Section %d of %d", v.pager.Index()+1, v.pager.Len())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(cw - 6).Foreground(theme.Text).Render(sec.Body))
	b.WriteString("\n")

	if sec.CodeExample != "" {
		b.WriteString("\n")
		b.WriteString(theme.Code.Width(cw - 6).Render(sec.CodeExample))
		b.WriteString("\n")
	}

	if len(sec.KeyConcepts) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Key concepts: "))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.Join(sec.KeyConcepts, ", ")))
		b.WriteString("\n")
	}

	if v.pager.AtEnd() {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("End of lesson. Press Enter to finish."))
	}

	card := components.Card(b.String(), cw)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
