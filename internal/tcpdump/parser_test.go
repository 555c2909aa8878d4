package tcpdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	pkt, ok := ParseLine("12:00:00.123456 IP 10.0.0.1.ssh > 10.0.0.2.80: Flags [S]")
	require.True(t, ok)
	assert.InDelta(t, 43200.123456, pkt.Timestamp, 1e-9)
	assert.Equal(t, "10.0.0.1.ssh", pkt.Source)
	assert.Equal(t, "10.0.0.2.80", pkt.Destination)
}

func TestParseLineHostWithoutPort(t *testing.T) {
	pkt, ok := ParseLine("08:15:30.000001 IP gateway > host-b.lan: ICMP echo request")
	require.True(t, ok)
	assert.Equal(t, "gateway", pkt.Source)
	assert.Equal(t, "host-b.lan", pkt.Destination)
}

func TestParseLineSearchesAnywhere(t *testing.T) {
	pkt, ok := ParseLine("[eth0] 1112:00:00.000000 IP a.http > b.443: tcp 0")
	require.True(t, ok)
	assert.InDelta(t, 43200.0, pkt.Timestamp, 1e-9)
	assert.Equal(t, "a.http", pkt.Source)
	assert.Equal(t, "b.443", pkt.Destination)
}

func TestParseLineUnicodeWhitespace(t *testing.T) {
	pkt, ok := ParseLine("12:00:00.000000 IP\t10.0.0.1.22  >  10.0.0.2.80:")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.1.22", pkt.Source)

	pkt, ok = ParseLine("12:00:00.000000\u00a0IP\u2003a.1 > b.2:")
	require.True(t, ok)
	assert.Equal(t, "b.2", pkt.Destination)
}

func TestParseLineNoMatch(t *testing.T) {
	lines := []string{
		"",
		"not a packet line at all",
		"12:00:00.123456 IP6 fe80::1.546 > ff02::1.547: dhcp6 solicit",
		"12:00:00.123456 ARP, Request who-has 10.0.0.1 tell 10.0.0.2",
		"12:00:00.123456 IP 10.0.0.1.22 > 10.0.0.2.80 Flags [S]",
		"12:00:00.123456 IP 10.0.0.1.22 10.0.0.2.80: Flags [S]",
		"12:00:00.123456IP 10.0.0.1.22 > 10.0.0.2.80:",
		"12:00:00.1234567 IP 10.0.0.1.22 > 10.0.0.2.80:",
		"12:00:00.123456 IP 10.0.0.1:22 > 10.0.0.2.80:",
	}
	for _, line := range lines {
		_, ok := ParseLine(line)
		assert.False(t, ok, "line %q should not match", line)
	}
}

func TestParseLineBadClockStopsAtFirstMatch(t *testing.T) {
	line := "99:00:00.000000 IP a.1 > b.2: x 12:00:00.000000 IP c.3 > d.4:"
	_, ok := ParseLine(line)
	assert.False(t, ok)
}

func TestParseLineSkipsFailedCandidates(t *testing.T) {
	line := "12:00:00.000000 garbage then 13:00:00.500000 IP c.3 > d.4: ok"
	pkt, ok := ParseLine(line)
	require.True(t, ok)
	assert.InDelta(t, 46800.5, pkt.Timestamp, 1e-9)
	assert.Equal(t, "c.3", pkt.Source)
	assert.Equal(t, "d.4", pkt.Destination)
}
