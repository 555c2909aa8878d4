package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			// Switch between source and destination tables
			if m.role == roleSource {
				m.role = roleDestination
			} else {
				m.role = roleSource
			}
			m.table.SetRows(m.rows())
			m.table.GotoTop()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}
