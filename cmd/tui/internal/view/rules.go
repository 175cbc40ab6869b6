package view

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

// RulesModel lists the recency/frequency patterns behind each segment.
type RulesModel struct {
	CommonModel
	table table.Model
}

func NewRulesModel() RulesModel {
	t := newTable([]table.Column{
		{Title: "Pattern", Width: 12},
		{Title: "Segment", Width: 22},
	})

	rules := rfm.Rules()
	rows := make([]table.Row, 0, len(rules))

	for _, r := range rules {
		rows = append(rows, table.Row{r.Pattern(), string(r.Segment)})
	}

	t.SetRows(rows)
	t.SetHeight(len(rows) + 1)

	return RulesModel{table: t}
}

func (m RulesModel) Title() string     { return "Segment Rules" }
func (m RulesModel) ShortHelp() string { return "Esc: back" }

func (m RulesModel) Init() tea.Cmd {
	return nil
}

func (m RulesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m RulesModel) View() string {
	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			"Recency digit first, frequency digit second. First match wins.",
			"",
			m.table.View(),
		),
	)
}
