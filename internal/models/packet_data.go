package models

// ParsedPacket holds the fields extracted from one capture line.
// A packet is only ever built with all three fields present.
type ParsedPacket struct {
	Timestamp   float64 // Seconds since midnight, microsecond precision
	Source      string  // host[.port], normalized
	Destination string  // host[.port], normalized
}

// EndpointCount is one row of a frequency table.
type EndpointCount struct {
	Endpoint string
	Count    int
}
