package lessonscreen

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/akshayb/jacpath/internal/router"
	"github.com/akshayb/jacpath/internal/screen"
	"github.com/akshayb/jacpath/internal/skillmap"
	"github.com/akshayb/jacpath/internal/store"
	"github.com/akshayb/jacpath/internal/ui/components"
	"github.com/akshayb/jacpath/internal/ui/layout"
	"github.com/akshayb/jacpath/internal/walker"
)

// PickerScreen chooses a lesson category before browsing.
type PickerScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// NewPicker creates the category picker.
func NewPicker(client walker.Client, attempts store.AttemptRepo, log *zap.Logger, userID string) *PickerScreen {
	var items []components.MenuItem
	for _, cat := range skillmap.AllCategories() {
		category := string(cat)
		label := cat.DisplayName()
		items = append(items, components.MenuItem{
			Label: label,
			Action: func() tea.Cmd {
				browser := NewBrowser(client, attempts, log, category, userID)
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: browser}
				}
			},
		})
	}
	return &PickerScreen{menu: components.NewMenu(items)}
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return "Lessons"
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "q":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	content := "\n" + p.menu.View()
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
