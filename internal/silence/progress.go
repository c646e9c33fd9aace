package silence

import (
	"regexp"
	"strconv"
)

// Example: "  Duration: 00:01:23.45, start: 0.000000, bitrate: 1205 kb/s"
var durationRX = regexp.MustCompile(`Duration:\s+(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// Example: "size=N/A time=00:00:12.34 bitrate=N/A speed= 412x"
var positionRX = regexp.MustCompile(`time=\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// ParseDuration extracts the media duration in seconds from the engine's
// input header line.
func ParseDuration(line string) (float64, bool) {
	return parseClock(durationRX, line)
}

// ParsePosition extracts the current decode position in seconds from the
// engine's statistics line.
func ParsePosition(line string) (float64, bool) {
	return parseClock(positionRX, line)
}

func parseClock(rx *regexp.Regexp, line string) (float64, bool) {
	m := rx.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	h, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	mins, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	s, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	return 3600*h + 60*mins + s, true
}
