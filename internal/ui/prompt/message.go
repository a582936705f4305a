package prompt

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/bkrems/prep/internal/ui/styles"
)

// MessageResult holds the result of a commit-message prompt.
type MessageResult struct {
	Value     string
	Cancelled bool
}

type messageModel struct {
	input     textinput.Model
	prompt    string
	done      bool
	cancelled bool
}

func (m messageModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m messageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m messageModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s\n%s", m.prompt, m.input.View()))
}

// Message shows a single-line text prompt. An empty value on enter is a
// valid result; callers decide what it means (prep falls through to the
// git editor for commit messages).
func Message(prompt, placeholder string) (MessageResult, error) {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 156
	ti.SetWidth(72)
	ti.Focus()

	model := messageModel{input: ti, prompt: prompt}
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(styles.Profile()),
	)
	finalModel, err := p.Run()
	if err != nil {
		return MessageResult{}, err
	}
	m := finalModel.(messageModel)
	return MessageResult{Value: m.input.Value(), Cancelled: m.cancelled}, nil
}
