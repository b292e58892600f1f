package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/ui/theme"
)

// OptionList is an answer selector for multiple-choice questions.
// Correctness is not known locally; after the evaluation comes back,
// MarkResult colors the chosen option.
type OptionList struct {
	Options []string
	Cursor  int

	chosen int // index confirmed with enter, -1 before that
	marked bool
	good   bool
}

// NewOptionList creates a selector over the given options.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options, chosen: -1}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation. Enter confirms the highlighted
// option; further input is ignored once a choice is confirmed.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.chosen >= 0 {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter":
		o.chosen = o.Cursor
	}

	return o, nil
}

// Chosen returns the confirmed option text, or "" before confirmation.
func (o OptionList) Chosen() string {
	if o.chosen < 0 || o.chosen >= len(o.Options) {
		return ""
	}
	return o.Options[o.chosen]
}

// Highlighted returns the option text under the cursor.
func (o OptionList) Highlighted() string {
	if o.Cursor < 0 || o.Cursor >= len(o.Options) {
		return ""
	}
	return o.Options[o.Cursor]
}

// MarkResult colors the chosen option once the evaluation is known.
func (o *OptionList) MarkResult(correct bool) {
	o.marked = true
	o.good = correct
}

// Reset clears the selection for the next question.
func (o *OptionList) Reset(options []string) {
	o.Options = options
	o.Cursor = 0
	o.chosen = -1
	o.marked = false
	o.good = false
}

// View renders the options with A/B/C/D labels.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		label := string(rune('A' + i))
		prefix := "  "
		if i == o.Cursor && o.chosen < 0 {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		switch {
		case o.marked && i == o.chosen && o.good:
			s += theme.Correct.Render(line) + "\n"
		case o.marked && i == o.chosen:
			s += theme.Incorrect.Render(line) + "\n"
		case i == o.chosen:
			s += lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(line) + "\n"
		case i == o.Cursor && o.chosen < 0:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
