package view

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

type resultTab int

const (
	resultTabSummary resultTab = iota
	resultTabCustomers
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
)

type ResultModel struct {
	CommonModel
	result    *rfm.Result
	asOf      string
	summaries []rfm.SegmentSummary

	tab       resultTab
	summary   table.Model
	customers table.Model

	// Segment filter cycling over the customers tab; 0 shows everyone.
	segments  []rfm.Segment
	filterIdx int

	status string
}

func NewResultModel(msg RunCompletedMsg) ResultModel {
	m := ResultModel{
		result:    msg.Result,
		asOf:      FormatDate(msg.AsOf),
		summaries: rfm.Summarize(msg.Result.Customers),
		summary: newTable([]table.Column{
			{Title: "Segment", Width: 20},
			{Title: "Customers", Width: 10},
			{Title: "Recency", Width: 10},
			{Title: "Frequency", Width: 10},
			{Title: "Monetary", Width: 12},
			{Title: "Median", Width: 12},
		}),
		customers: newTable([]table.Column{
			{Title: "Customer", Width: 10},
			{Title: "Recency", Width: 8},
			{Title: "Frequency", Width: 10},
			{Title: "Monetary", Width: 12},
			{Title: "Code", Width: 5},
			{Title: "Segment", Width: 20},
		}),
		segments: []rfm.Segment{""},
	}

	for _, s := range m.summaries {
		m.segments = append(m.segments, s.Segment)
	}

	if msg.Saved != "" {
		m.status = fmt.Sprintf("Saved %d customers to %s", len(msg.Result.Customers), msg.Saved)
	}

	m.refreshSummary()
	m.refreshCustomers()
	m.customers.Blur()

	return m
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m ResultModel) Title() string { return "Segmentation Result" }

func (m ResultModel) ShortHelp() string {
	if m.tab == resultTabCustomers {
		return "Esc: back | Tab: summary | f: segment filter"
	}

	return "Esc: back | Tab: customers | x: export segment ids"
}

func (m ResultModel) Init() tea.Cmd {
	return nil
}

func (m ResultModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.summary.SetHeight(msg.Height - 10)
		m.customers.SetHeight(msg.Height - 10)

		return m, nil

	case exportIDsMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			return m, nil
		}

		m.status = okStyle.Render(fmt.Sprintf("Wrote %s", msg.path))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "tab":
			m.toggleTab()
			return m, nil
		case "f":
			if m.tab == resultTabCustomers {
				m.filterIdx = (m.filterIdx + 1) % len(m.segments)
				m.refreshCustomers()
			}

			return m, nil
		case "x":
			if m.tab == resultTabSummary {
				return m, m.exportIDsCmd()
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.tab == resultTabCustomers {
		m.customers, cmd = m.customers.Update(msg)
	} else {
		m.summary, cmd = m.summary.Update(msg)
	}

	return m, cmd
}

func (m *ResultModel) toggleTab() {
	if m.tab == resultTabSummary {
		m.tab = resultTabCustomers
		m.summary.Blur()
		m.customers.Focus()

		return
	}

	m.tab = resultTabSummary
	m.customers.Blur()
	m.summary.Focus()
}

func (m ResultModel) View() string {
	stats := m.result.Stats
	header := fmt.Sprintf(
		"As of %s | %d lines, %d kept | %d customers, %d with no net spend",
		activeStyle(m.asOf),
		stats.Transactions, stats.LineItems,
		stats.Scored, stats.NonPositive,
	)

	current := m.summary.View()
	if m.tab == resultTabCustomers {
		filter := "All"
		if seg := m.segments[m.filterIdx]; seg != "" {
			filter = string(seg)
		}

		header += fmt.Sprintf(" | [f] Segment: %s", activeStyle(filter))
		current = m.customers.View()
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(current)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ResultModel) refreshSummary() {
	rows := make([]table.Row, 0, len(m.summaries))
	for _, s := range m.summaries {
		rows = append(rows, table.Row{
			string(s.Segment),
			strconv.Itoa(s.Customers),
			FormatStat(s.Recency.Mean),
			FormatStat(s.Frequency.Mean),
			FormatStat(s.Monetary.Mean),
			FormatStat(s.Monetary.Median),
		})
	}

	m.summary.SetRows(rows)
}

func (m *ResultModel) refreshCustomers() {
	seg := m.segments[m.filterIdx]

	rows := make([]table.Row, 0, len(m.result.Customers))
	for _, c := range m.result.Customers {
		if seg != "" && c.Segment != seg {
			continue
		}

		rows = append(rows, table.Row{
			strconv.FormatInt(c.CustomerID, 10),
			strconv.Itoa(c.Recency),
			strconv.Itoa(c.Frequency),
			FormatMoney(c.Monetary),
			c.Code(),
			string(c.Segment),
		})
	}

	m.customers.SetRows(rows)
	m.customers.GotoTop()
}

type exportIDsMsg struct {
	path string
	err  error
}

func (m ResultModel) exportIDsCmd() tea.Cmd {
	idx := m.summary.Cursor()
	if idx < 0 || idx >= len(m.summaries) {
		return nil
	}

	seg := m.summaries[idx].Segment
	customers := m.result.Customers
	path := string(seg) + ".csv"

	return func() tea.Msg {
		err := writeCSV(path, func(f *os.File) error { return rfm.WriteSegmentIDs(f, customers, seg) })
		return exportIDsMsg{path: path, err: err}
	}
}
