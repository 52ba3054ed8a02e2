package footer

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	width   int
	count   uint64
	lastTag string
}

func New() Model {
	return Model{width: 80}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetUnrecognized records how many frames had a tag we don't handle.
func (m *Model) SetUnrecognized(count uint64, lastTag string) {
	m.count = count
	m.lastTag = lastTag
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// Status is the footer text without styling.
func (m Model) Status() string {
	s := fmt.Sprintf("unrecognized frames: %d", m.count)
	if m.lastTag != "" {
		s += fmt.Sprintf(" (last <%s>)", m.lastTag)
	}
	return s + "  ·  q: quit"
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Width(m.width).
		Render(m.Status())
}
