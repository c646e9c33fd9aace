// Package engine wraps the external media engine that does all decoding,
// encoding and muxing on behalf of jumpcutter
package engine

import (
	"context"
	"fmt"
	"strconv"
)

// Default silence detection parameters
const (
	DefaultNoise      = 0.03 // Fraction of full scale
	DefaultMinSilence = 0.1  // Seconds
)

// Engine is the set of media operations the pipeline needs
type Engine interface {
	// DetectSilence runs a silence analysis pass over input and calls onLine
	// for each diagnostic line as it arrives. Returning an error from onLine
	// stops the pass and DetectSilence returns that error.
	DetectSilence(ctx context.Context, input string, params DetectParams, onLine func(line string) error) error

	// ExtractRange writes [start, start+duration) of input to output
	ExtractRange(ctx context.Context, input string, start, duration float64, output string) error

	// ConcatCopy joins the files listed in manifest into output without re-encoding
	ConcatCopy(ctx context.Context, manifest, output string) error
}

// DetectParams tunes the silence detector
type DetectParams struct {
	Noise      float64 // Level below which audio is silent, fraction of full scale
	MinSilence float64 // Shortest span reported as silence, in seconds
}

// DefaultDetectParams returns the detector settings used when none are given
func DefaultDetectParams() DetectParams {
	return DetectParams{
		Noise:      DefaultNoise,
		MinSilence: DefaultMinSilence,
	}
}

// Filter returns the silencedetect filter description for these parameters
func (p DetectParams) Filter() string {
	return fmt.Sprintf("silencedetect=n=%s:d=%s", FormatSeconds(p.Noise), FormatSeconds(p.MinSilence))
}

// Validate rejects parameters the detector cannot use
func (p DetectParams) Validate() error {
	if p.Noise <= 0 || p.Noise > 1 {
		return fmt.Errorf("noise threshold must be in (0, 1], got %s", FormatSeconds(p.Noise))
	}
	if p.MinSilence <= 0 {
		return fmt.Errorf("minimum silence duration must be positive, got %s", FormatSeconds(p.MinSilence))
	}
	return nil
}

// ExitError reports an engine invocation that ran but exited unsuccessfully
type ExitError struct {
	Op   string // "silence detection", "extraction" or "concatenation"
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed: engine exited with status %d", e.Op, e.Code)
}

// FormatSeconds renders a timestamp in the shortest form that parses back to
// the same value
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
