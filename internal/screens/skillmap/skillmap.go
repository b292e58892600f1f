// Package skillmapscreen renders the concept mastery map grouped by
// category. Locked concepts stay visible but dimmed.
package skillmapscreen

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	"github.com/akshayb/jacpath/internal/skillmap"
	"github.com/akshayb/jacpath/internal/ui/components"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/ui/theme"
	"github.com/akshayb/jacpath/internal/walker"
)

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowConcept
)

type row struct {
	kind     rowKind
	category skillmap.Category
	concept  *skillmap.Concept
}

// mapLoadedMsg is sent when the concept list has been fetched and grouped.
type mapLoadedMsg struct {
	Map *skillmap.Map
	Err error
}

// SkillMapScreen displays the mastery map organized by category.
type SkillMapScreen struct {
	client walker.Client

	skills       *skillmap.Map
	rows         []row
	cursor       int
	scrollOffset int
	errMsg       string
}

var _ screen.Screen = (*SkillMapScreen)(nil)
var _ screen.KeyHintProvider = (*SkillMapScreen)(nil)

// New creates a new SkillMapScreen.
func New(client walker.Client) *SkillMapScreen {
	return &SkillMapScreen{client: client}
}

func (s *SkillMapScreen) Init() tea.Cmd {
	client := s.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		concepts, err := client.FetchSkillMap(ctx)
		if err != nil {
			return mapLoadedMsg{Err: err}
		}
		m, err := skillmap.Build(concepts)
		return mapLoadedMsg{Map: m, Err: err}
	}
}

func (s *SkillMapScreen) Title() string {
	return "Skill Map"
}

func (s *SkillMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SkillMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case mapLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.skills = msg.Map
		s.buildRows()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "enter":
			return s, s.openDetail()
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// buildRows flattens the grouped map into cursor-navigable rows. Every
// category header is present even when its group is empty.
func (s *SkillMapScreen) buildRows() {
	s.rows = nil
	for gi := range s.skills.Groups {
		g := &s.skills.Groups[gi]
		s.rows = append(s.rows, row{kind: rowCategoryHeader, category: g.Category})
		for ci := range g.Concepts {
			s.rows = append(s.rows, row{kind: rowConcept, category: g.Category, concept: &g.Concepts[ci]})
		}
	}
	s.cursor = 0
	for i, r := range s.rows {
		if r.kind == rowConcept {
			s.cursor = i
			break
		}
	}
}

func (s *SkillMapScreen) moveCursor(delta int) {
	i := s.cursor + delta
	for i >= 0 && i < len(s.rows) {
		if s.rows[i].kind == rowConcept {
			s.cursor = i
			return
		}
		i += delta
	}
}

func (s *SkillMapScreen) openDetail() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return nil
	}
	r := s.rows[s.cursor]
	if r.kind != rowConcept {
		return nil
	}
	concept := *r.concept
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: newDetailScreen(concept)}
	}
}

func (s *SkillMapScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  Could not load skill map: " + s.errMsg)
	}
	if s.skills == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Loading skill map...")
	}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	s.clampScroll(visible)

	var b strings.Builder
	end := s.scrollOffset + visible
	if end > len(s.rows) {
		end = len(s.rows)
	}
	for i := s.scrollOffset; i < end; i++ {
		b.WriteString(s.renderRow(s.rows[i], i == s.cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *SkillMapScreen) clampScroll(visible int) {
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+visible {
		s.scrollOffset = s.cursor - visible + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}

func (s *SkillMapScreen) renderRow(r row, selected bool, width int) string {
	if r.kind == rowCategoryHeader {
		return lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true).
			Render("  " + r.category.DisplayName())
	}

	c := r.concept
	cursor := "   "
	if selected {
		cursor = " ▸ "
	}

	bar := components.ProgressBar{
		Percent:   c.MasteryScore,
		Width:     24,
		FillColor: theme.StrengthColor(string(c.Strength())),
	}

	name := c.Name
	line := fmt.Sprintf("%s%-28s %s  %3.0f%%", cursor, name, bar.View(), c.MasteryScore*100)

	if !c.Unlocked {
		lock := fmt.Sprintf("%s%-28s 🔒 unlock at %.0f%%  (%.0f%% there)",
			cursor, name, c.UnlockThreshold*100, c.UnlockProgress()*100)
		if selected {
			return lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(lock)
		}
		return theme.Dimmed.Render(lock)
	}

	if selected {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(line)
}
