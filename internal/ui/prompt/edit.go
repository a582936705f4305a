package prompt

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/bkrems/prep/internal/ui/styles"
)

// EditResult holds the outcome of a command review prompt.
type EditResult struct {
	Command string // the (possibly modified) command to run
	Skipped bool   // operator declined to run the step
}

type editModel struct {
	input   textinput.Model
	prompt  string
	done    bool
	skipped bool
}

func (m editModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.skipped = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m editModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	hint := styles.MutedStyle.Render("enter runs the shown command, esc skips this step")
	return tea.NewView(fmt.Sprintf("%s\n%s\n%s", m.prompt, m.input.View(), hint))
}

// Edit shows command pre-loaded in an editable prompt. The operator may
// accept it as-is, modify it, or skip the step entirely; the returned
// command is what actually runs, not the original.
func Edit(prompt, command string) (EditResult, error) {
	ti := textinput.New()
	ti.SetValue(command)
	ti.CharLimit = 0
	ti.SetWidth(80)
	ti.Focus()

	model := editModel{input: ti, prompt: prompt}
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(styles.Profile()),
	)
	finalModel, err := p.Run()
	if err != nil {
		return EditResult{}, err
	}
	m := finalModel.(editModel)
	if m.skipped {
		return EditResult{Skipped: true}, nil
	}
	return EditResult{Command: m.input.Value()}, nil
}
