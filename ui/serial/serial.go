package serial

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model shows the next serial number to send.
type Model struct {
	width int
	text  string
}

func New() Model {
	return Model{width: 80, text: "----"}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetText sets the already formatted serial number.
func (m *Model) SetText(s string) {
	m.text = s
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(max(m.width-2, 0)).
		Align(lipgloss.Center)

	label := lipgloss.NewStyle().Bold(true).Render("Next Serial Number")
	value := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10")).
		Render(m.text)

	return style.Render(label + "\n" + value)
}
