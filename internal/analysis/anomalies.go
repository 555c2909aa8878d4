package analysis

import "strings"

// Flag is an advisory condition raised from destination frequencies.
type Flag string

const (
	FlagMultipleSSHAttempts  Flag = "MultipleSSHAttempts"
	FlagMultipleHTTPAttempts Flag = "MultipleHTTPAttempts"
)

// Message returns the human-readable description of the flag.
func (f Flag) Message() string {
	switch f {
	case FlagMultipleSSHAttempts:
		return "Multiple connection attempts on the SSH port detected."
	case FlagMultipleHTTPAttempts:
		return "Multiple connection attempts on the HTTP port detected."
	}
	return string(f)
}

// NoFlagsMessage is what reports show when no flag was raised.
const NoFlagsMessage = "No vulnerabilities detected."

// Thresholds holds the per-port limits; a flag is raised when the
// number of matching destination occurrences is strictly greater.
type Thresholds struct {
	SSH  int
	HTTP int
}

// DefaultThresholds returns the default configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SSH:  5,
		HTTP: 5,
	}
}

// rule matches destination endpoints by port marker substring.
type rule struct {
	flag      Flag
	marker    string
	threshold int
}

// Flagger evaluates the threshold rules over a destination table.
type Flagger struct {
	rules []rule
}

// NewFlagger creates a flagger. Rules are evaluated, and flags
// returned, in declaration order.
func NewFlagger(cfg Thresholds) *Flagger {
	return &Flagger{
		rules: []rule{
			{flag: FlagMultipleSSHAttempts, marker: ".22", threshold: cfg.SSH},
			{flag: FlagMultipleHTTPAttempts, marker: ".80", threshold: cfg.HTTP},
		},
	}
}

// Evaluate returns the flags raised by dst, or an empty slice.
func (fl *Flagger) Evaluate(dst *FrequencyTable) []Flag {
	flags := make([]Flag, 0, len(fl.rules))
	if dst == nil {
		return flags
	}

	for _, r := range fl.rules {
		marker := r.marker
		hits := dst.CountMatching(func(ep string) bool {
			return strings.Contains(ep, marker)
		})
		if hits > r.threshold {
			flags = append(flags, r.flag)
		}
	}
	return flags
}
