package reporting

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dumpwatch/internal/analysis"
	"dumpwatch/internal/models"
)

func sampleData(flags []analysis.Flag) Data {
	src, dst := analysis.Aggregate(
		[]string{"10.0.0.1.22", "10.0.0.3.51000"},
		[]string{"10.0.0.2.22", "10.0.0.2.80"},
	)
	return Data{
		InputFile:    "capture.txt",
		CSVFile:      "trame.csv",
		Packets:      samplePackets,
		Lines:        3,
		Skipped:      1,
		Sources:      src,
		Destinations: dst,
		Flags:        flags,
		Version:      "v0.1.0",
		GeneratedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestAssemble(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	data := sampleData([]analysis.Flag{analysis.FlagMultipleSSHAttempts})

	art, err := Assemble(dir, data, Options{Formats: []string{FormatHTML, FormatMarkdown}, PadWidth: 50})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "trame.csv"), art.CSV)
	assert.Equal(t, []string{
		filepath.Join(dir, SourceChartName),
		filepath.Join(dir, DestinationChartName),
	}, art.Charts)
	require.Len(t, art.Reports, 2)

	for _, p := range append(append([]string{art.CSV}, art.Charts...), art.Reports...) {
		info, err := os.Stat(p)
		require.NoError(t, err, "artifact %s", p)
		assert.NotZero(t, info.Size(), "artifact %s", p)
	}

	html := readFile(t, art.Reports[0])
	assert.Contains(t, html, "capture.txt")
	assert.Contains(t, html, analysis.FlagMultipleSSHAttempts.Message())
	assert.NotContains(t, html, analysis.NoFlagsMessage)
	assert.Contains(t, html, `href="trame.csv"`)
	assert.Contains(t, html, SourceChartName)
	assert.Contains(t, html, "10.0.0.2.22 (ssh)")

	md := readFile(t, art.Reports[1])
	assert.Contains(t, md, "- "+analysis.FlagMultipleSSHAttempts.Message())
	assert.Contains(t, md, "[trame.csv](trame.csv)")
	assert.Contains(t, md, "| Endpoint")
}

func TestAssembleNoFlagsIsExplicit(t *testing.T) {
	dir := t.TempDir()
	art, err := Assemble(dir, sampleData(nil), Options{Formats: []string{FormatHTML, FormatMarkdown}})
	require.NoError(t, err)

	for _, p := range art.Reports {
		assert.Contains(t, readFile(t, p), analysis.NoFlagsMessage)
	}
}

func TestAssembleEmptyRun(t *testing.T) {
	dir := t.TempDir()
	src, dst := analysis.Aggregate(nil, nil)
	data := Data{
		InputFile:    "empty.txt",
		CSVFile:      "trame.csv",
		Packets:      []models.ParsedPacket{},
		Sources:      src,
		Destinations: dst,
		Flags:        []analysis.Flag{},
	}

	art, err := Assemble(dir, data, Options{Formats: []string{FormatHTML}})
	require.NoError(t, err)

	html := readFile(t, art.Reports[0])
	assert.Contains(t, html, analysis.NoFlagsMessage)
	assert.Contains(t, html, "No packets extracted.")
	for _, p := range art.Charts {
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}

func TestAssembleUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	_, err := Assemble(dir, sampleData(nil), Options{Formats: []string{"pdf"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.EqualError(t, err, "unsupported format: pdf")

	// Nothing is written when a format is rejected
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateReportUnsupportedFormat(t *testing.T) {
	_, err := GenerateReport(t.TempDir(), "pdf", sampleData(nil))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, sampleData([]analysis.Flag{analysis.FlagMultipleHTTPAttempts}))
	out := buf.String()

	assert.Contains(t, out, "capture.txt")
	assert.Contains(t, out, "MultipleHTTPAttempts")
	assert.Contains(t, out, "Top Destination Endpoints")

	buf.Reset()
	PrintSummary(&buf, sampleData(nil))
	assert.True(t, strings.Contains(buf.String(), analysis.NoFlagsMessage))
}
