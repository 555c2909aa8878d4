package reporting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"dumpwatch/internal/analysis"
	"dumpwatch/internal/models"
)

// Report formats.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Artifact file names inside the results directory.
const (
	HTMLReportName       = "analyse_trames.html"
	MarkdownName         = "analyse_trames.md"
	SourceChartName      = "source_ip_occurrences.png"
	DestinationChartName = "destination_ip_occurrences.png"
)

// topLimit caps the endpoint tables shown in reports.
const topLimit = 10

// ErrUnsupportedFormat is returned for an unknown report format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Data is everything a report is built from.
type Data struct {
	InputFile    string
	CSVFile      string // name of the CSV export, relative to the results directory
	Packets      []models.ParsedPacket
	Lines        int
	Skipped      int
	Sources      *analysis.FrequencyTable
	Destinations *analysis.FrequencyTable
	Flags        []analysis.Flag
	Version      string
	GeneratedAt  time.Time
}

// Artifacts lists the files written by Assemble.
type Artifacts struct {
	Dir     string
	CSV     string
	Charts  []string
	Reports []string
}

// Options controls Assemble.
type Options struct {
	Formats  []string
	PadWidth int
}

// Assemble writes the CSV export, the charts and every requested report
// into dir, creating it if needed.
func Assemble(dir string, data Data, opts Options) (*Artifacts, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now()
	}

	art := &Artifacts{Dir: dir}

	// Validate formats before writing anything
	for _, format := range opts.Formats {
		if _, err := reportFileName(format); err != nil {
			return nil, err
		}
	}

	csvPath := filepath.Join(dir, data.CSVFile)
	if err := writeCSVFile(csvPath, data.Packets, opts.PadWidth); err != nil {
		return nil, err
	}
	art.CSV = csvPath
	log.WithField("path", csvPath).Info("CSV export written")

	charts, err := RenderCharts(dir, data.Sources, data.Destinations)
	if err != nil {
		return nil, err
	}
	art.Charts = charts
	checkArtifacts(charts)

	for _, format := range opts.Formats {
		path, err := GenerateReport(dir, format, data)
		if err != nil {
			return nil, err
		}
		art.Reports = append(art.Reports, path)
		log.WithField("path", path).Info("Report generated")
	}

	return art, nil
}

// GenerateReport renders the narrative report in the given format and
// returns the path of the written file.
func GenerateReport(dir, format string, data Data) (string, error) {
	name, err := reportFileName(format)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatHTML:
		err = writeHTML(file, data)
	case FormatMarkdown:
		err = writeMarkdown(file, data)
	}
	if err != nil {
		return "", err
	}

	return path, file.Close()
}

func reportFileName(format string) (string, error) {
	switch format {
	case FormatHTML:
		return HTMLReportName, nil
	case FormatMarkdown:
		return MarkdownName, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

// checkArtifacts logs whether each expected file exists.
func checkArtifacts(paths []string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			log.WithError(err).WithField("path", p).Error("Chart was not created")
			continue
		}
		log.WithField("path", p).Info("Chart created")
	}
}

// flagMessages renders the flags, or the explicit empty result.
func flagMessages(flags []analysis.Flag) []string {
	if len(flags) == 0 {
		return nil
	}
	msgs := make([]string, len(flags))
	for i, f := range flags {
		msgs[i] = f.Message()
	}
	return msgs
}

// endpointRow is one line of an endpoint table in a report.
type endpointRow struct {
	Endpoint string
	Count    int
}

func topRows(table *analysis.FrequencyTable) []endpointRow {
	if table == nil {
		return nil
	}
	top := table.Top(topLimit)
	rows := make([]endpointRow, len(top))
	for i, e := range top {
		rows[i] = endpointRow{Endpoint: analysis.DescribeEndpoint(e.Endpoint), Count: e.Count}
	}
	return rows
}
