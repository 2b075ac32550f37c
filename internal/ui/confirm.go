package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("user aborted")

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	projectStyle  = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// updatePrompt asks whether to update the listed projects. The answer
// starts at No so a stray enter never runs vcpkg.
type updatePrompt struct {
	projects []string
	proceed  bool
	answered bool
	aborted  bool
}

func (m updatePrompt) Init() tea.Cmd {
	return nil
}

func (m updatePrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc", "q":
		m.aborted = true
	case "y", "Y":
		m.proceed, m.answered = true, true
	case "n", "N":
		m.proceed, m.answered = false, true
	case "enter":
		m.answered = true
	case "left", "right", "tab", "h", "l":
		m.proceed = !m.proceed
		return m, nil
	default:
		return m, nil
	}
	return m, tea.Quit
}

func (m updatePrompt) title() string {
	if len(m.projects) == 1 {
		return "Update the vcpkg baseline of 1 project?"
	}
	return fmt.Sprintf("Update the vcpkg baselines of %d projects?", len(m.projects))
}

func (m updatePrompt) View() string {
	if m.answered || m.aborted {
		return ""
	}
	var b strings.Builder
	for _, p := range m.projects {
		b.WriteString(projectStyle.Render("  "+p) + "\n")
	}
	yes, no := " Yes ", " No "
	if m.proceed {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}
	fmt.Fprintf(&b, "%s %s / %s\n", titleStyle.Render(m.title()), yes, no)
	return b.String()
}

// ConfirmUpdate lists projects on out and asks whether to update them.
func ConfirmUpdate(in io.Reader, out io.Writer, projects []string) (bool, error) {
	p := tea.NewProgram(updatePrompt{projects: projects}, tea.WithInput(in), tea.WithOutput(out))
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	m := result.(updatePrompt)
	if m.aborted {
		return false, ErrAborted
	}
	return m.proceed, nil
}
