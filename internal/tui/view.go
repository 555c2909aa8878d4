package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dumpwatch/internal/analysis"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF7DB")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Margin(0, 1)

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D9534F")).
			Bold(true)
)

func (m ResultsModel) View() string {
	title := titleStyle.Render(fmt.Sprintf("dumpwatch - %s", m.data.InputFile))

	// Run summary
	summary := fmt.Sprintf("Lines read: %d\nPackets: %d\nSkipped: %d",
		m.data.Lines, len(m.data.Packets), m.data.Skipped)
	summaryBox := infoStyle.Render(summary)

	// Flags
	var flagStrs []string
	for _, f := range m.data.Flags {
		flagStrs = append(flagStrs, alertStyle.Render(f.Message()))
	}
	if len(flagStrs) == 0 {
		flagStrs = append(flagStrs, analysis.NoFlagsMessage)
	}
	flagBox := infoStyle.Render("Vulnerabilities:\n" + strings.Join(flagStrs, "\n"))

	tableBox := infoStyle.Render(fmt.Sprintf("%s endpoints\n", m.role) + m.table.View())

	// Layout
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, summaryBox, flagBox)
	body := lipgloss.JoinVertical(lipgloss.Left, title, row1, tableBox)

	return body + "\nPress tab to switch tables, q to quit."
}
