package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpWidth = 78

const notationHelp = "# Track notation\n\n" +
	"Tracks are picked by their stream index, as listed by **Streams info**.\n\n" +
	"- A single index: `3`\n" +
	"- An inclusive range: `2-4` (ascending only)\n" +
	"- Any mix separated by commas: `0,2-4,7` selects 0, 2, 3, 4 and 7\n\n" +
	"Only digits, commas and hyphens are accepted. Order is kept and the first\n" +
	"track of each kind (video, audio, subtitle) becomes the default one.\n\n" +
	"Languages are given as a comma-separated list matching the tracks\n" +
	"(`eng,jpn`), or a single code applied to all of them. Two- and three-letter\n" +
	"codes and English names (`russian`) are understood.\n\n" +
	"Type `q` or `quit` at any prompt to go back.\n"

// RenderHelp renders the notation help as terminal markdown.
func RenderHelp(width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(notationHelp)
}

// HelpView shows the rendered help in a scrollable viewport.
type HelpView struct {
	viewport viewport.Model
}

// NewHelpView renders the help into a bordered viewport.
func NewHelpView() (HelpView, error) {
	vp := viewport.New(helpWidth, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		PaddingRight(2)

	// Leave room for the border, padding and the gutter glamour adds on the left.
	const glamourGutter = 2
	content, err := RenderHelp(helpWidth - vp.Style.GetHorizontalFrameSize() - glamourGutter)
	if err != nil {
		return HelpView{}, err
	}
	vp.SetContent(content)
	return HelpView{viewport: vp}, nil
}

func (h HelpView) Init() tea.Cmd {
	return nil
}

func (h HelpView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "enter", "ctrl+c":
			return h, tea.Quit
		}
	}
	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

func (h HelpView) View() string {
	return h.viewport.View() + helpStyle.Render("\n  ↑/↓: Scroll • q/enter: Back\n")
}
