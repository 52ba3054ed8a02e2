package contact

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"contestmon/state"
)

// Model holds the last-QSO bar's state
type Model struct {
	width   int
	contact state.Contact
	has     bool
}

// New creates a new last-QSO bar
func New() Model {
	return Model{width: 80}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetContact replaces the shown QSO. ok is false before the first contact.
func (m *Model) SetContact(c state.Contact, ok bool) {
	m.contact = c
	m.has = ok
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// Line is the bar's text without styling.
func (m Model) Line() string {
	if !m.has {
		return "Last QSO: none yet"
	}
	return fmt.Sprintf("Last QSO: %s  rcvd %s  %s", m.contact.Call, m.contact.ReceivedExchange, m.contact.BandMode)
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(max(m.width-2, 0)). // -2 for border
		Padding(0, 1)

	contentWidth := max(m.width-2-2, 0) // -border, -padding

	// MaxWidth truncates by cell width, never inside a rune
	line := lipgloss.NewStyle().MaxWidth(contentWidth).Render(m.Line())

	return style.Render(line)
}
