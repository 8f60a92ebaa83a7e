package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sokinpui/fsplit/model"
)

// --- Keys ---
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Yes    key.Binding
	No     key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Yes, k.No, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Yes:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:     key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	Quit:   key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "dismiss")),
}

// --- Model ---
type confirmModel struct {
	prompt  string
	options []model.Choice
	cursor  int
	choice  model.Choice
	done    bool
	keys    keyMap
	help    help.Model
}

func newConfirmModel(prompt string) confirmModel {
	return confirmModel{
		prompt:  prompt,
		options: []model.Choice{model.ChoiceConfirm, model.ChoiceDecline},
		keys:    defaultKeys,
		help:    help.New(),
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.finish("")
	case key.Matches(keyMsg, m.keys.Yes):
		return m.finish(model.ChoiceConfirm)
	case key.Matches(keyMsg, m.keys.No):
		return m.finish(model.ChoiceDecline)
	case key.Matches(keyMsg, m.keys.Select):
		return m.finish(m.options[m.cursor])
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = (m.cursor + len(m.options) - 1) % len(m.options)
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.options)
	}
	return m, nil
}

func (m confirmModel) finish(choice model.Choice) (tea.Model, tea.Cmd) {
	m.choice = choice
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt))
	b.WriteString("\n\n")
	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + string(opt)))
		} else {
			b.WriteString("  " + string(opt))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Confirmer asks rename questions in the terminal, one program per prompt.
// It satisfies splitter.Decider.
type Confirmer struct {
	in  io.Reader
	out io.Writer
}

// NewConfirmer creates a Confirmer reading keys from in and drawing to out.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: in, out: out}
}

// Decide shows a Yes/No pick list. A dismissed prompt returns an empty
// choice, which callers treat as a decline.
func (c *Confirmer) Decide(ctx context.Context, prompt string) (model.Choice, error) {
	p := tea.NewProgram(newConfirmModel(prompt),
		tea.WithContext(ctx),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
	)
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return final.(confirmModel).choice, nil
}
