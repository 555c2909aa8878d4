package tcpdump

import "time"

// ClockLayout is the wall-clock form tcpdump prints by default.
const ClockLayout = "15:04:05.000000"

const clockLen = len(ClockLayout)

// clockReference is midnight of the fixed reference date. Only the
// offset from it matters, so every line of a run is comparable.
var clockReference = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseClock converts an HH:MM:SS.ffffff string into seconds since
// midnight. It reports false when s is not exactly in that form or one
// of the fields is out of range.
func ParseClock(s string) (float64, bool) {
	if !isClockShape(s) {
		return 0, false
	}

	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		// Out of range hour, minute or second
		return 0, false
	}

	// Dividing whole microseconds keeps the nearest float to the decimal value
	return float64(t.Sub(clockReference).Microseconds()) / 1e6, true
}

// isClockShape checks the digit/separator layout only, without range checks.
func isClockShape(s string) bool {
	if len(s) != clockLen {
		return false
	}
	for i := 0; i < clockLen; i++ {
		switch i {
		case 2, 5:
			if s[i] != ':' {
				return false
			}
		case 8:
			if s[i] != '.' {
				return false
			}
		default:
			if !isDigit(s[i]) {
				return false
			}
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
