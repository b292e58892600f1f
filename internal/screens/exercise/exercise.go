// Package exercisescreen drives a code exercise: the learner writes a
// solution, runs it against the walker's test cases, and submits once
// every test passes.
package exercisescreen

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/exercise"
	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	quizscreen "github.com/akshayb/jacpath/internal/screens/quiz"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/ui/components"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/ui/theme"
	"github.com/akshayb/jacpath/internal/walker"
)

// validatedMsg carries one test-run result back from the walker.
type validatedMsg struct {
	Result exercise.ValidationResult
	Err    error
}

// submittedMsg confirms a solution was recorded.
type submittedMsg struct {
	Receipt exercise.Receipt
	Err     error
}

// ExerciseScreen collects a solution and runs it remotely. When the
// owning lesson has a follow-up quiz, a submitted solution hands off to
// the quiz screen.
type ExerciseScreen struct {
	client   walker.Client
	attempts store.AttemptRepo
	log      *zap.Logger

	exerciseID string
	lessonID   string
	quizID     string
	userID     string

	code    components.CodeInput
	result  *exercise.ValidationResult
	receipt *exercise.Receipt
	busy    bool
	errMsg  string

	width, height int
}

var _ screen.Screen = (*ExerciseScreen)(nil)
var _ screen.KeyHintProvider = (*ExerciseScreen)(nil)

// New creates an exercise screen. quizID may be empty when no quiz
// follows the exercise.
func New(client walker.Client, attempts store.AttemptRepo, log *zap.Logger, exerciseID, lessonID, quizID, userID string) *ExerciseScreen {
	return &ExerciseScreen{
		client:     client,
		attempts:   attempts,
		log:        log,
		exerciseID: exerciseID,
		lessonID:   lessonID,
		quizID:     quizID,
		userID:     userID,
		code:       components.NewCodeInput("", 60, 10),
	}
}

func (e *ExerciseScreen) Init() tea.Cmd {
	return e.code.Init()
}

func (e *ExerciseScreen) Title() string {
	return "Exercise"
}

func (e *ExerciseScreen) KeyHints() []layout.KeyHint {
	if e.receipt != nil && e.receipt.Success {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Ctrl+R", Description: "Run tests"},
	}
	if e.result.Submittable() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Close"})
}

func (e *ExerciseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case validatedMsg:
		e.busy = false
		if msg.Err != nil {
			e.errMsg = msg.Err.Error()
			return e, nil
		}
		e.errMsg = ""
		result := msg.Result
		e.result = &result
		return e, nil

	case submittedMsg:
		e.busy = false
		if msg.Err != nil {
			e.errMsg = msg.Err.Error()
			return e, nil
		}
		e.errMsg = ""
		receipt := msg.Receipt
		e.receipt = &receipt
		return e, nil

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	var cmd tea.Cmd
	e.code, cmd = e.code.Update(msg)
	return e, cmd
}

func (e *ExerciseScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if e.receipt != nil && e.receipt.Success {
		if msg.String() == "enter" {
			return e, e.continueCmd()
		}
		return e, nil
	}

	switch msg.String() {
	case "esc":
		return e, func() tea.Msg { return router.PopScreenMsg{} }
	case "ctrl+r":
		if e.busy {
			return e, nil
		}
		e.busy = true
		return e, e.runTests()
	case "ctrl+s":
		if e.busy {
			return e, nil
		}
		// Failing tests block submission before any request is made.
		if !e.result.Submittable() {
			e.errMsg = "All tests must pass before submitting."
			return e, nil
		}
		e.busy = true
		return e, e.submit()
	}

	var cmd tea.Cmd
	e.code, cmd = e.code.Update(msg)
	return e, cmd
}

func (e *ExerciseScreen) runTests() tea.Cmd {
	client := e.client
	id := e.exerciseID
	code := e.code.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		result, err := client.ValidateExercise(ctx, id, code)
		return validatedMsg{Result: result, Err: err}
	}
}

func (e *ExerciseScreen) submit() tea.Cmd {
	client := e.client
	req := &exercise.SubmitRequest{
		ExerciseID:  e.exerciseID,
		LessonID:    e.lessonID,
		Code:        e.code.Value(),
		TestsPassed: e.result.PassedTests,
		TotalTests:  e.result.TotalTests,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		receipt, err := client.SubmitExercise(ctx, req)
		return submittedMsg{Receipt: receipt, Err: err}
	}
}

// continueCmd moves on after a successful submission: into the lesson's
// follow-up quiz when there is one, otherwise back.
func (e *ExerciseScreen) continueCmd() tea.Cmd {
	if e.quizID == "" {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	client := e.client
	attempts := e.attempts
	log := e.log
	quizID := e.quizID
	userID := e.userID
	return func() tea.Msg {
		return router.ReplaceScreenMsg{
			Screen: quizscreen.New(client, attempts, log, quizID, userID),
		}
	}
}

func (e *ExerciseScreen) View(width, height int) string {
	e.width, e.height = width, height
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Exercise: " + e.exerciseID))
	b.WriteString("\n\n")
	b.WriteString(e.code.View())
	b.WriteString("\n")

	if e.busy {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Running..."))
		b.WriteString("\n")
	}

	if e.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(e.errMsg))
		b.WriteString("\n")
	}

	if e.result != nil {
		b.WriteString("\n")
		b.WriteString(e.renderResults())
	}

	if e.receipt != nil && e.receipt.Success {
		b.WriteString("\n")
		msg := e.receipt.Message
		if e.receipt.PointsEarned > 0 {
			msg = fmt.Sprintf("%s (+%d points)", msg, e.receipt.PointsEarned)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(msg))
		b.WriteString("\n")
	}

	card := components.Card(b.String(), cw)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}

func (e *ExerciseScreen) renderResults() string {
	var b strings.Builder

	summary := fmt.Sprintf("%d / %d tests passed", e.result.PassedTests, e.result.TotalTests)
	color := theme.Error
	if e.result.AllPassed {
		color = theme.Success
	}
	b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(summary))
	b.WriteString("\n")

	for _, tr := range e.result.Tests {
		mark := lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		if tr.Passed {
			mark = lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		}
		b.WriteString("  " + mark + " " + tr.Name)
		if tr.Message != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + tr.Message))
		}
		b.WriteString("\n")
	}
	return b.String()
}
