package tcpdump

import (
	"unicode"
	"unicode/utf8"

	"dumpwatch/internal/models"
)

// ParseLine extracts a packet from one line of tcpdump text output.
//
// The recognized form may appear anywhere in the line:
//
//	match    = clock ws+ "IP" ws+ endpoint ws+ ">" ws+ endpoint ":"
//	clock    = 2DIGIT ":" 2DIGIT ":" 2DIGIT "." 6DIGIT
//	endpoint = 1*( ALPHA / DIGIT / "." / "-" )
//	ws       = Unicode white space
//
// An endpoint is the longest run of host characters, so a port suffix
// (numeric or service name) stays attached to its host. The leftmost
// match decides the result: when its clock is out of range the line
// yields nothing, even if a later part of the line would match.
//
// The boolean result is false when no packet was extracted.
func ParseLine(line string) (models.ParsedPacket, bool) {
	m, ok := findHeader(line)
	if !ok {
		return models.ParsedPacket{}, false
	}

	ts, ok := ParseClock(m.clock)
	if !ok {
		return models.ParsedPacket{}, false
	}

	return models.ParsedPacket{
		Timestamp:   ts,
		Source:      m.source,
		Destination: m.destination,
	}, true
}

// header is the raw text captured by a structural match.
type header struct {
	clock       string
	source      string
	destination string
}

// findHeader returns the leftmost structural match in line.
func findHeader(line string) (header, bool) {
	for start := 0; start+clockLen <= len(line); start++ {
		if !isDigit(line[start]) {
			continue
		}
		if h, ok := matchAt(line, start); ok {
			return h, true
		}
	}
	return header{}, false
}

// matchAt tries the grammar anchored at offset i.
func matchAt(line string, i int) (header, bool) {
	var h header

	if !isClockShape(line[i : i+clockLen]) {
		return h, false
	}
	h.clock = line[i : i+clockLen]
	i += clockLen

	if i = skipSpace(line, i); i < 0 {
		return h, false
	}
	if !hasPrefixAt(line, i, "IP") {
		return h, false
	}
	i += len("IP")
	if i = skipSpace(line, i); i < 0 {
		return h, false
	}

	h.source, i = scanEndpoint(line, i)
	if h.source == "" {
		return h, false
	}
	if i = skipSpace(line, i); i < 0 {
		return h, false
	}
	if !hasPrefixAt(line, i, ">") {
		return h, false
	}
	i++
	if i = skipSpace(line, i); i < 0 {
		return h, false
	}

	h.destination, i = scanEndpoint(line, i)
	if h.destination == "" {
		return h, false
	}
	if !hasPrefixAt(line, i, ":") {
		return h, false
	}

	return h, true
}

// skipSpace consumes one or more white space runes starting at i and
// returns the offset after them, or -1 when there is none.
func skipSpace(line string, i int) int {
	n := i
	for n < len(line) {
		r, size := utf8.DecodeRuneInString(line[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	if n == i {
		return -1
	}
	return n
}

// scanEndpoint returns the run of host characters starting at i and the
// offset just past it.
func scanEndpoint(line string, i int) (string, int) {
	n := i
	for n < len(line) && isHostChar(line[n]) {
		n++
	}
	return line[i:n], n
}

func isHostChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', isDigit(b):
		return true
	case b == '.', b == '-':
		return true
	}
	return false
}

func hasPrefixAt(line string, i int, prefix string) bool {
	return len(line)-i >= len(prefix) && line[i:i+len(prefix)] == prefix
}
