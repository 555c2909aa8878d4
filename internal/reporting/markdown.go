package reporting

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"dumpwatch/internal/analysis"
)

func writeMarkdown(w io.Writer, data Data) error {
	var b strings.Builder

	b.WriteString("# Capture Analysis\n\n")

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "The file `%s` was analyzed successfully.\n\n", data.InputFile)
	writeMarkdownTable(&b, []string{"Metric", "Value"}, [][]string{
		{"Lines read", strconv.Itoa(data.Lines)},
		{"Packets extracted", strconv.Itoa(len(data.Packets))},
		{"Lines skipped", strconv.Itoa(data.Skipped)},
	})

	b.WriteString("\n## Detected vulnerabilities\n\n")
	if msgs := flagMessages(data.Flags); len(msgs) > 0 {
		for _, m := range msgs {
			fmt.Fprintf(&b, "- %s\n", m)
		}
	} else {
		b.WriteString(analysis.NoFlagsMessage + "\n")
	}

	b.WriteString("\n## Download\n\n")
	fmt.Fprintf(&b, "The extracted records are available as CSV: [%s](%s)\n", data.CSVFile, data.CSVFile)

	b.WriteString("\n## Top endpoints\n\n### Source\n\n")
	writeEndpointTable(&b, topRows(data.Sources))
	b.WriteString("\n### Destination\n\n")
	writeEndpointTable(&b, topRows(data.Destinations))

	b.WriteString("\n## Charts\n\n")
	fmt.Fprintf(&b, "![Source endpoint chart](%s)\n\n", SourceChartName)
	fmt.Fprintf(&b, "![Destination endpoint chart](%s)\n\n", DestinationChartName)

	fmt.Fprintf(&b, "_Generated %s", data.GeneratedAt.Format("2006-01-02 15:04:05"))
	if data.Version != "" {
		fmt.Fprintf(&b, " by dumpwatch %s", data.Version)
	}
	b.WriteString("_\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeEndpointTable(w io.Writer, rows []endpointRow) {
	if len(rows) == 0 {
		io.WriteString(w, "No packets extracted.\n")
		return
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{r.Endpoint, strconv.Itoa(r.Count)}
	}
	writeMarkdownTable(w, []string{"Endpoint", "Occurrences"}, cells)
}

// writeMarkdownTable renders a GitHub-flavored Markdown table.
func writeMarkdownTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.AppendBulk(rows)
	table.Render()
}
