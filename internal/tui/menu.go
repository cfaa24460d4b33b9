package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Menu is a vertical list of choices. Choice is -1 until one is picked.
type Menu struct {
	title  string
	items  []string
	cursor int
	Choice int
	Quit   bool
}

// NewMenu builds a menu over items.
func NewMenu(title string, items ...string) Menu {
	return Menu{title: title, items: items, Choice: -1}
}

func (m Menu) Init() tea.Cmd {
	return nil
}

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.Quit = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.items)
	case "enter", " ":
		m.Choice = m.cursor
		return m, tea.Quit
	default:
		// 1-9 pick directly.
		if s := key.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if n := int(s[0] - '1'); n < len(m.items) {
				m.cursor = n
				m.Choice = n
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n\n")
	for i, item := range m.items {
		label := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("› ") + selectedStyle.Render(label) + "\n")
			continue
		}
		b.WriteString("  " + itemStyle.Render(label) + "\n")
	}
	b.WriteString(helpStyle.Render("\n  ↑/↓: Navigate • enter/1-9: Choose • q/esc: Back\n"))
	return b.String()
}
