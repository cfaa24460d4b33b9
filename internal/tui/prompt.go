package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// CheckFunc validates prompt input and returns a summary shown for confirmation.
type CheckFunc func(value string) (string, error)

// Prompt reads one line of text. "q" or "quit" aborts, empty or invalid
// input keeps the prompt open, and valid input is confirmed before Done.
type Prompt struct {
	title      string
	help       string
	input      textinput.Model
	check      CheckFunc
	summary    string
	err        string
	confirming bool

	Value   string
	Done    bool
	Aborted bool
}

// NewPrompt builds a focused prompt. help is rendered under the input.
func NewPrompt(title, placeholder, help string, check CheckFunc) Prompt {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	in.Focus()
	return Prompt{title: title, help: help, input: in, check: check}
}

func (p Prompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	if key.Type == tea.KeyCtrlC || key.Type == tea.KeyEsc {
		p.Aborted = true
		return p, tea.Quit
	}
	if p.confirming {
		switch key.String() {
		case "y", "Y", "enter":
			p.Done = true
			return p, tea.Quit
		case "n", "N":
			p.confirming = false
			p.summary = ""
		}
		return p, nil
	}
	if key.Type != tea.KeyEnter {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		p.err = ""
		return p, cmd
	}

	value := strings.TrimSpace(p.input.Value())
	switch strings.ToLower(value) {
	case "q", "quit":
		p.Aborted = true
		return p, tea.Quit
	case "":
		p.err = "nothing entered"
		return p, nil
	}
	summary := value
	if p.check != nil {
		var err error
		summary, err = p.check(value)
		if err != nil {
			p.err = err.Error()
			return p, nil
		}
	}
	p.Value = value
	p.summary = summary
	p.confirming = true
	return p, nil
}

func (p Prompt) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.title) + "\n\n")
	b.WriteString(p.input.View() + "\n")
	switch {
	case p.confirming:
		b.WriteString("\n" + okStyle.Render(p.summary) + "\n")
		b.WriteString(helpStyle.Render("  y/enter: Run • n: Edit • esc: Cancel\n"))
		return b.String()
	case p.err != "":
		b.WriteString("\n" + errorStyle.Render(p.err) + "\n")
	}
	if p.help != "" {
		b.WriteString("\n" + p.help)
	}
	b.WriteString(helpStyle.Render("\n  enter: Check • q/quit: Abort\n"))
	return b.String()
}
