package reporting

import (
	"fmt"
	"io"

	"github.com/mynameiscfed/termtables"

	"dumpwatch/internal/analysis"
)

// PrintSummary writes the console summary of a run.
func PrintSummary(w io.Writer, data Data) {
	resultsTable := termtables.CreateTable()
	resultsTable.AddTitle("dumpwatch " + data.Version)
	resultsTable.AddRow("Input", data.InputFile)
	resultsTable.AddRow("Lines read", data.Lines)
	resultsTable.AddRow("Packets extracted", len(data.Packets))
	resultsTable.AddRow("Lines skipped", data.Skipped)
	resultsTable.AddSeparator()

	resultsTable.AddRow("Vulnerabilities", "++++++++")
	resultsTable.AddSeparator()
	if msgs := flagMessages(data.Flags); len(msgs) > 0 {
		for i, m := range msgs {
			resultsTable.AddRow(string(data.Flags[i]), m)
		}
	} else {
		resultsTable.AddRow("-", analysis.NoFlagsMessage)
	}
	fmt.Fprintln(w, resultsTable.Render())

	printTopTable(w, "Top Source Endpoints", data.Sources)
	printTopTable(w, "Top Destination Endpoints", data.Destinations)
}

func printTopTable(w io.Writer, title string, table *analysis.FrequencyTable) {
	rows := topRows(table)
	if len(rows) == 0 {
		return
	}

	topTable := termtables.CreateTable()
	topTable.AddTitle(title)
	topTable.AddHeaders("Occurrences", "Endpoint")
	for _, r := range rows {
		topTable.AddRow(r.Count, r.Endpoint)
	}
	fmt.Fprintln(w, topTable.Render())
}
