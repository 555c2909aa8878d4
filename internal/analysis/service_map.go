package analysis

import (
	"net"
	"strconv"
	"strings"

	"github.com/google/gopacket/layers"
)

// serviceSuffixes are rewritten in this order. The replacement is a
// plain substring substitution, so "host.sshd" becomes "host.22d";
// existing exports depend on that.
var serviceSuffixes = []struct {
	name string
	port string
}{
	{".ssh", ".22"},
	{".http", ".80"},
}

// NormalizeEndpoint replaces service-name port suffixes with their
// numeric port. Normalizing an already normalized endpoint is a no-op.
func NormalizeEndpoint(endpoint string) string {
	for _, s := range serviceSuffixes {
		endpoint = strings.ReplaceAll(endpoint, s.name, s.port)
	}
	return endpoint
}

// ServiceName returns the IANA service name for a TCP port, or the port
// number as a string.
func ServiceName(port int) string {
	if port < 0 || port > 65535 {
		return strconv.Itoa(port)
	}
	// TCPPort.String renders named ports as "22(ssh)".
	label := layers.TCPPort(port).String()
	if i := strings.IndexByte(label, '('); i >= 0 && strings.HasSuffix(label, ")") {
		return label[i+1 : len(label)-1]
	}
	return strconv.Itoa(port)
}

// EndpointPort returns the numeric port suffix of a normalized
// endpoint, if the last dotted label is a number that fits a port.
// A bare IPv4 address has no port.
func EndpointPort(endpoint string) (int, bool) {
	if net.ParseIP(endpoint) != nil {
		return 0, false
	}
	i := strings.LastIndexByte(endpoint, '.')
	if i < 0 || i == len(endpoint)-1 {
		return 0, false
	}
	port, err := strconv.Atoi(endpoint[i+1:])
	if err != nil || port < 0 || port > 65535 {
		return 0, false
	}
	return port, true
}

// DescribeEndpoint labels an endpoint with its service name when the
// port has one, e.g. "10.0.0.2.22 (ssh)".
func DescribeEndpoint(endpoint string) string {
	port, ok := EndpointPort(endpoint)
	if !ok {
		return endpoint
	}
	name := ServiceName(port)
	if name == strconv.Itoa(port) {
		return endpoint
	}
	return endpoint + " (" + name + ")"
}
