package radios

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"contestmon/state"
)

// Model shows one box per radio, side by side.
type Model struct {
	width  int
	radios [state.NumRadios]state.Radio
}

func New() Model {
	return Model{width: 80}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetRadios replaces what the boxes show.
func (m *Model) SetRadios(r [state.NumRadios]state.Radio) {
	m.radios = r
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Model) View() string {
	boxWidth := m.width / state.NumRadios

	boxes := make([]string, 0, state.NumRadios)
	for i, r := range m.radios {
		boxes = append(boxes, box(fmt.Sprintf("Radio #%d", i+1), r, boxWidth))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func box(label string, r state.Radio, width int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(max(width-2, 0)). // -2 for border
		Align(lipgloss.Center)

	labelStyle := lipgloss.NewStyle().Bold(true).Underline(true)
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

	value := r.Text()
	if value == "" {
		value = "--"
	}

	return style.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}
