package quizscreen

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/quiz"
	"github.com/akshayb/jacpath/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	s.width, s.height = width, height

	switch s.session.State() {
	case quiz.StateLoading:
		return renderCentered(width, theme.TextDim, "\n\n\n  Loading quiz...")
	case quiz.StateFailed:
		return s.renderFailed(width)
	case quiz.StateScoring:
		return renderCentered(width, theme.TextDim, "\n\n\n  Scoring your answers...")
	case quiz.StateCompleted:
		return s.renderCompleted(width)
	}

	return s.renderQuestion(width, height)
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q := s.session.CurrentQuestion()
	if q == nil {
		return ""
	}

	var b strings.Builder

	total := len(s.session.Quiz().Questions)
	progress := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  Question %d of %d", s.session.CurrentIndex()+1, total))
	b.WriteString(progress)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Text))
	b.WriteString("\n\n")

	switch s.kind {
	case inputOptions:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.options.View()))
	case inputCode:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.code.View()))
	default:
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View())
		b.WriteString(answerLine)
	}

	if s.session.State() == quiz.StateEvaluating {
		b.WriteString("\n\n")
		if fb, ok := s.session.FeedbackFor(q.ID); ok {
			b.WriteString(renderFeedback(fb, width))
		} else {
			b.WriteString(renderCentered(width, theme.TextDim, "Checking your answer..."))
		}
	}

	return b.String()
}

func renderFeedback(fb quiz.Feedback, width int) string {
	var b strings.Builder
	if fb.Correct {
		b.WriteString(renderCentered(width, theme.Success, "✓ "+fb.Message))
	} else {
		b.WriteString(renderCentered(width, theme.Error, "✗ "+fb.Message))
	}
	if fb.Explanation != "" {
		b.WriteString("\n\n")
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(fb.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
	}
	return b.String()
}

func (s *QuizScreen) renderCompleted(width int) string {
	score := s.session.Score()
	if score == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n")

	if score.Passed {
		b.WriteString(renderCentered(width, theme.Success, "Quiz passed!"))
	} else {
		b.WriteString(renderCentered(width, theme.Error, "Not passed this time"))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(fmt.Sprintf("Score: %.0f%%", score.Score)))
	b.WriteString("\n")
	b.WriteString(renderCentered(width, theme.TextDim,
		fmt.Sprintf("%d of %d correct", score.CorrectAnswers, score.TotalQuestions)))
	b.WriteString("\n\n")
	b.WriteString(renderCentered(width, theme.TextDim, "Press any key to continue..."))

	return b.String()
}

func (s *QuizScreen) renderFailed(width int) string {
	msg := s.errMsg
	if msg == "" && s.session.Err() != nil {
		msg = s.session.Err().Error()
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Something went wrong: %s\n\n  Press any key to go back.", msg))
}

func renderCentered(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Bold(true).
		Render(text)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
