package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"dumpwatch/internal/models"
)

// CSVHeader names the export columns.
var CSVHeader = []string{"Timestamp", "SourceEndpoint", "DestinationEndpoint"}

// WriteCSV writes one ';' separated row per packet. Fields of the data
// rows are left-justified to padWidth; 0 disables padding.
func WriteCSV(w io.Writer, packets []models.ParsedPacket, padWidth int) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	for _, pkt := range packets {
		row := []string{
			pad(FormatTimestamp(pkt.Timestamp), padWidth),
			pad(pkt.Source, padWidth),
			pad(pkt.Destination, padWidth),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatTimestamp prints the shortest decimal form of ts, e.g. "43200.123456".
func FormatTimestamp(ts float64) string {
	s := strconv.FormatFloat(ts, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func pad(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}

func writeCSVFile(path string, packets []models.ParsedPacket, padWidth int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, packets, padWidth); err != nil {
		return fmt.Errorf("error writing CSV: %w", err)
	}
	return file.Close()
}
