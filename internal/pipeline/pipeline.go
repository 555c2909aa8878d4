package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"dumpwatch/internal/analysis"
	"dumpwatch/internal/models"
	"dumpwatch/internal/tcpdump"
)

// ErrInputUnreadable is returned when the capture cannot be opened or read.
var ErrInputUnreadable = errors.New("input capture cannot be read")

// Input formats accepted by RunFile.
const (
	FormatAuto   = "auto"
	FormatText   = "text"
	FormatPcap   = "pcap"
	FormatPcapNG = "pcapng"
)

// Result is everything one run extracts from a capture.
type Result struct {
	Packets      []models.ParsedPacket
	Sources      []string // normalized source endpoint per packet
	Destinations []string // normalized destination endpoint per packet
	Lines        int      // lines read
	Skipped      int      // lines that produced no packet
}

// Run reads r line by line and collects a packet for every matching
// line. Lines that do not match are counted in Skipped. Only a read
// failure is returned as an error.
func Run(r io.Reader) (*Result, error) {
	res := &Result{
		Packets:      make([]models.ParsedPacket, 0),
		Sources:      make([]string, 0),
		Destinations: make([]string, 0),
	}

	// bufio.Reader instead of Scanner: no limit on line length
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			res.Lines++
			res.add(strings.TrimRight(line, "\r\n"))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
		}
	}

	log.WithFields(log.Fields{
		"lines":   res.Lines,
		"packets": len(res.Packets),
		"skipped": res.Skipped,
	}).Debug("Capture processed")

	return res, nil
}

func (res *Result) add(line string) {
	pkt, ok := tcpdump.ParseLine(line)
	if !ok {
		res.Skipped++
		return
	}

	pkt.Source = analysis.NormalizeEndpoint(pkt.Source)
	pkt.Destination = analysis.NormalizeEndpoint(pkt.Destination)

	res.Packets = append(res.Packets, pkt)
	res.Sources = append(res.Sources, pkt.Source)
	res.Destinations = append(res.Destinations, pkt.Destination)
}

// RunFile opens path and runs the pipeline over it. With FormatAuto
// the format is picked from the file extension.
func RunFile(path, format string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}
	defer file.Close()

	if format == "" || format == FormatAuto {
		format = DetectFormat(path)
	}

	switch format {
	case FormatText:
		return Run(file)
	case FormatPcap:
		lines, err := tcpdump.NewPcapLineReader(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
		}
		return Run(lines)
	case FormatPcapNG:
		lines, err := tcpdump.NewPcapNgLineReader(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputUnreadable, err)
		}
		return Run(lines)
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// DetectFormat guesses the input format from the file extension.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pcap", ".cap":
		return FormatPcap
	case ".pcapng":
		return FormatPcapNG
	}
	return FormatText
}
