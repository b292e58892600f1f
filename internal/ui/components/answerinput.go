package components

import (
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/ui/theme"
)

// AnswerInput collects a free-text answer on a single line.
type AnswerInput struct {
	Model     textinput.Model
	submitted bool
	correct   bool
}

// NewAnswerInput creates a focused single-line answer field.
func NewAnswerInput(placeholder string) AnswerInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	return AnswerInput{Model: ti}
}

// Init returns the focus command.
func (a AnswerInput) Init() tea.Cmd {
	return a.Model.Focus()
}

// Update forwards messages to the inner input. Input is frozen after
// submission.
func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	if a.submitted {
		return a, nil
	}
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the input with a result mark after submission.
func (a AnswerInput) View() string {
	view := a.Model.View()
	if a.submitted {
		if a.correct {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current text.
func (a AnswerInput) Value() string {
	return a.Model.Value()
}

// MarkResult freezes the input and shows the evaluation outcome.
func (a *AnswerInput) MarkResult(correct bool) {
	a.submitted = true
	a.correct = correct
}

// Reset clears the field for the next question.
func (a *AnswerInput) Reset() {
	a.Model.SetValue("")
	a.submitted = false
	a.correct = false
}

// CodeInput collects a multi-line code answer.
type CodeInput struct {
	Model textarea.Model
}

// NewCodeInput creates a focused code editor seeded with starter code.
func NewCodeInput(starter string, width, height int) CodeInput {
	ta := textarea.New()
	ta.SetValue(starter)
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.Focus()
	return CodeInput{Model: ta}
}

// Init returns the focus command.
func (c CodeInput) Init() tea.Cmd {
	return c.Model.Focus()
}

// Update forwards messages to the inner textarea.
func (c CodeInput) Update(msg tea.Msg) (CodeInput, tea.Cmd) {
	var cmd tea.Cmd
	c.Model, cmd = c.Model.Update(msg)
	return c, cmd
}

// View renders the editor.
func (c CodeInput) View() string {
	return c.Model.View()
}

// Value returns the current code.
func (c CodeInput) Value() string {
	return c.Model.Value()
}
