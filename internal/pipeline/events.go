package pipeline

import "github.com/linuxmatters/jumpcutter/internal/silence"

// Stage is a state of the run's state machine
type Stage int

const (
	StageInit Stage = iota
	StageScanning
	StageExtracting
	StageConcatenating
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "Starting"
	case StageScanning:
		return "Detecting silence"
	case StageExtracting:
		return "Extracting"
	case StageConcatenating:
		return "Concatenating"
	case StageDone:
		return "Done"
	case StageFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Event reports progress through a run
type Event struct {
	Stage Stage

	// Line is a diagnostic line from the silence scan, echoed for the operator
	Line string

	// Interval is set on StageExtracting events
	Interval silence.KeepInterval

	Kept        int     // Intervals kept so far
	KeptSeconds float64 // Total length of kept intervals
	Position    float64 // Scan position in seconds, 0 if not reported by this event
	Duration    float64 // Input duration in seconds, 0 until known
}

// ProgressFunc receives events synchronously from the run's goroutine
type ProgressFunc func(ev Event)
