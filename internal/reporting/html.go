package reporting

import (
	"fmt"
	"html/template"
	"io"

	"dumpwatch/internal/analysis"
)

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Capture Analysis</title>
    <style>
        body { font-family: 'Roboto', sans-serif; background-color: #f7f7f7; margin: 0; padding: 0; color: #333; }
        h1 { background-color: #2980b9; color: white; padding: 20px; text-align: center; margin: 0; }
        h2 { color: #27ae60; margin-bottom: 10px; }
        h3 { color: #e74c3c; }
        .container { width: 80%; margin: 20px auto; padding: 20px; background-color: white; border-radius: 10px; }
        .section { margin-bottom: 30px; }
        .summary { background: #ecf0f1; padding: 15px; border-radius: 8px; }
        .alert { color: #d9534f; font-weight: bold; }
        table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        img { max-width: 100%; border-radius: 8px; }
        a { color: #2980b9; text-decoration: none; font-weight: bold; }
    </style>
</head>
<body>
    <h1>Capture Analysis</h1>
    <div class="container">
        <div class="section summary">
            <h2>Summary</h2>
            <p>The file <code>{{.InputFile}}</code> was analyzed successfully.</p>
            <p><strong>Lines read:</strong> {{.Lines}} &middot; <strong>Packets extracted:</strong> {{.Packets}} &middot; <strong>Lines skipped:</strong> {{.Skipped}}</p>
        </div>

        <div class="section">
            <h2>Detected vulnerabilities</h2>
            {{if .Flags}}
            <ul>
                {{range .Flags}}<li class="alert">{{.}}</li>
                {{end}}
            </ul>
            {{else}}
            <p>{{.NoFlags}}</p>
            {{end}}
        </div>

        <div class="section">
            <h2>Download</h2>
            <p>The extracted records are available as CSV: <a href="{{.CSVFile}}" target="_blank">{{.CSVFile}}</a></p>
        </div>

        <div class="section">
            <h2>Top endpoints</h2>
            <h3>Source</h3>
            <table>
                <thead><tr><th>Endpoint</th><th>Occurrences</th></tr></thead>
                <tbody>
                {{range .TopSources}}<tr><td>{{.Endpoint}}</td><td>{{.Count}}</td></tr>
                {{else}}<tr><td colspan="2">No packets extracted.</td></tr>
                {{end}}
                </tbody>
            </table>
            <h3>Destination</h3>
            <table>
                <thead><tr><th>Endpoint</th><th>Occurrences</th></tr></thead>
                <tbody>
                {{range .TopDestinations}}<tr><td>{{.Endpoint}}</td><td>{{.Count}}</td></tr>
                {{else}}<tr><td colspan="2">No packets extracted.</td></tr>
                {{end}}
                </tbody>
            </table>
        </div>

        <div class="section">
            <h2>Charts</h2>
            <h3>Source endpoints</h3>
            <img src="{{.SourceChart}}" alt="Source endpoint chart">
            <h3>Destination endpoints</h3>
            <img src="{{.DestinationChart}}" alt="Destination endpoint chart">
        </div>

        <p><small>Generated {{.Timestamp}}{{if .Version}} by dumpwatch {{.Version}}{{end}}</small></p>
    </div>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Parse(htmlTemplate))

type htmlReportData struct {
	InputFile        string
	CSVFile          string
	Lines            int
	Packets          int
	Skipped          int
	Flags            []string
	NoFlags          string
	TopSources       []endpointRow
	TopDestinations  []endpointRow
	SourceChart      string
	DestinationChart string
	Timestamp        string
	Version          string
}

func writeHTML(w io.Writer, data Data) error {
	view := htmlReportData{
		InputFile:        data.InputFile,
		CSVFile:          data.CSVFile,
		Lines:            data.Lines,
		Packets:          len(data.Packets),
		Skipped:          data.Skipped,
		Flags:            flagMessages(data.Flags),
		NoFlags:          analysis.NoFlagsMessage,
		TopSources:       topRows(data.Sources),
		TopDestinations:  topRows(data.Destinations),
		SourceChart:      SourceChartName,
		DestinationChart: DestinationChartName,
		Timestamp:        data.GeneratedAt.Format("2006-01-02 15:04:05"),
		Version:          data.Version,
	}

	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("error executing template: %w", err)
	}
	return nil
}
