package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dumpwatch/internal/analysis"
	"dumpwatch/internal/reporting"
)

// role selects which frequency table is shown.
type role int

const (
	roleSource role = iota
	roleDestination
)

func (r role) String() string {
	if r == roleDestination {
		return "Destination"
	}
	return "Source"
}

// ResultsModel browses the outcome of one run.
type ResultsModel struct {
	data  reporting.Data
	role  role
	table table.Model
}

func NewResultsModel(data reporting.Data) ResultsModel {
	columns := []table.Column{
		{Title: "Endpoint", Width: 36},
		{Title: "Occurrences", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ResultsModel{
		data:  data,
		role:  roleSource,
		table: t,
	}
	m.table.SetRows(m.rows())
	return m
}

func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// currentTable returns the frequency table for the selected role.
func (m ResultsModel) currentTable() *analysis.FrequencyTable {
	if m.role == roleDestination {
		return m.data.Destinations
	}
	return m.data.Sources
}

func (m ResultsModel) rows() []table.Row {
	ft := m.currentTable()
	if ft == nil {
		return nil
	}
	top := ft.Top(0)
	rows := make([]table.Row, len(top))
	for i, e := range top {
		rows[i] = table.Row{analysis.DescribeEndpoint(e.Endpoint), fmt.Sprintf("%d", e.Count)}
	}
	return rows
}
