package ui

import (
	"github.com/linuxmatters/jumpcutter/internal/pipeline"
)

// ProgressMsg carries a pipeline event to the UI
type ProgressMsg struct {
	Event pipeline.Event
}

// DoneMsg indicates the run has finished, successfully or not
type DoneMsg struct {
	Result *pipeline.Result
	Err    error
}
