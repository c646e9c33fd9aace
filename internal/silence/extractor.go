// Package silence turns silencedetect diagnostics into the intervals worth keeping
package silence

import (
	"math"
	"strconv"
	"strings"
)

// Epsilon is the smallest gap between a silence end and the next silence
// start that still counts as a keepable interval, in seconds
const Epsilon = 0.01

const (
	startMarker = "silence_start: "
	endMarker   = "silence_end: "
)

// KeepInterval is a contiguous non-silent span of the source media
type KeepInterval struct {
	Start    float64 // Seconds from the start of the input
	Duration float64 // Always > Epsilon
}

// End returns the timestamp at which the interval stops
func (k KeepInterval) End() float64 {
	return k.Start + k.Duration
}

// Extractor consumes silencedetect lines one at a time and decides which
// spans of the input to keep. The zero value is ready to use and starts at
// the beginning of the file.
type Extractor struct {
	// LastSilenceEnd is the end of the most recent silence seen so far
	LastSilenceEnd float64

	// inSilence is true between a silence_start and its silence_end
	inSilence bool

	// Trace, if set, receives a note for each marker that was ignored
	Trace func(format string, args ...interface{})
}

// Feed parses a single diagnostic line. It returns the interval that the line
// closes, if any. Lines without markers and markers with unparsable values
// leave the state untouched.
func (e *Extractor) Feed(line string) (KeepInterval, bool) {
	if value, ok, found := markerValue(line, endMarker); found {
		if !ok {
			e.trace("ignoring malformed silence_end in %q", line)
			return KeepInterval{}, false
		}
		e.LastSilenceEnd = value
		e.inSilence = false
		return KeepInterval{}, false
	}

	value, ok, found := markerValue(line, startMarker)
	if !found {
		return KeepInterval{}, false
	}
	if !ok {
		e.trace("ignoring malformed silence_start in %q", line)
		return KeepInterval{}, false
	}
	e.inSilence = true

	gap := value - e.LastSilenceEnd
	if gap <= Epsilon {
		// Negative gaps count as empty too
		e.trace("skipping degenerate span %.3f-%.3f", e.LastSilenceEnd, value)
		return KeepInterval{}, false
	}
	return KeepInterval{Start: e.LastSilenceEnd, Duration: gap}, true
}

// Tail returns the span between the last silence end and the end of the
// media. It reports false when the stream ended inside a silence, when the
// media duration is unknown, or when the remaining span is degenerate.
func (e *Extractor) Tail(mediaDuration float64) (KeepInterval, bool) {
	if e.inSilence || mediaDuration <= 0 {
		return KeepInterval{}, false
	}
	gap := mediaDuration - e.LastSilenceEnd
	if gap <= Epsilon {
		return KeepInterval{}, false
	}
	return KeepInterval{Start: e.LastSilenceEnd, Duration: gap}, true
}

func (e *Extractor) trace(format string, args ...interface{}) {
	if e.Trace != nil {
		e.Trace(format, args...)
	}
}

// markerValue looks for marker in line and parses the token that follows it.
// found reports whether the marker was present at all; ok reports whether the
// token was a finite number.
func markerValue(line, marker string) (value float64, ok bool, found bool) {
	pos := strings.Index(line, marker)
	if pos < 0 {
		return 0, false, false
	}
	fields := strings.Fields(line[pos+len(marker):])
	if len(fields) == 0 {
		return 0, false, true
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false, true
	}
	return value, true, true
}
