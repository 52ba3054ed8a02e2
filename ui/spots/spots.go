package spots

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"contestmon/event"
)

// Model lists recent cluster spots, newest at the top.
type Model struct {
	width int
	table table.Model
}

func New(capacity int) Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(false),
		table.WithHeight(capacity+2), // header and its border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// nothing is ever selected; keep the first row plain
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return Model{
		width: 80,
		table: t,
	}
}

func columns(width int) []table.Column {
	inner := max(width-4, 40)
	return []table.Column{
		{Title: "DX", Width: inner * 30 / 100},
		{Title: "Freq", Width: inner * 25 / 100},
		{Title: "Mode", Width: inner * 15 / 100},
		{Title: "Spotter", Width: inner * 30 / 100},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// SetSpots takes spots in arrival order and shows them newest first.
func (m *Model) SetSpots(spots []event.SpotReceived) {
	rows := make([]table.Row, 0, len(spots))
	for i := len(spots) - 1; i >= 0; i-- {
		sp := spots[i]
		rows = append(rows, table.Row{sp.DXCall, sp.Frequency, sp.Mode, sp.Spotter})
	}
	m.table.SetRows(rows)
}

// Rows returns the rows as displayed.
func (m Model) Rows() []table.Row {
	return m.table.Rows()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(m.width))
		m.table.SetWidth(max(m.width-2, 0))
	}
	return m, nil
}

func (m Model) View() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(max(m.width-2, 0))

	return style.Render(m.table.View())
}
