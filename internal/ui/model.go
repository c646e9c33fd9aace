// Package ui provides the Bubbletea terminal user interface for jumpcutter
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/jumpcutter/internal/pipeline"
)

// Model is the Bubbletea model for a single jumpcutter run
type Model struct {
	InputPath  string
	OutputPath string

	// Current pipeline state
	Stage       pipeline.Stage
	Position    float64 // seconds of input scanned
	Duration    float64 // input length in seconds, 0 until known
	Kept        int
	KeptSeconds float64
	LastLine    string

	// Timing
	StartTime  time.Time
	StageStart time.Time

	// Completion
	Done      bool
	Cancelled bool
	Result    *pipeline.Result
	Err       error

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a UI model for converting input into output
func NewModel(input, output string) Model {
	now := time.Now()
	return Model{
		InputPath:  input,
		OutputPath: output,
		Stage:      pipeline.StageInit,
		StartTime:  now,
		StageStart: now,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Cancelled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case ProgressMsg:
		m = applyEvent(m, msg.Event)

	case DoneMsg:
		m.Done = true
		m.Result = msg.Result
		m.Err = msg.Err
		if msg.Err != nil {
			m.Stage = pipeline.StageFailed
		} else {
			m.Stage = pipeline.StageDone
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderCompletion(m)
	}
	return renderProcessingView(m)
}

// applyEvent folds a pipeline event into the model
func applyEvent(m Model, ev pipeline.Event) Model {
	// Extraction interleaves with the scan, so only a move to a later
	// phase restarts the stage clock
	if clockPhase(ev.Stage) > clockPhase(m.Stage) {
		m.StageStart = time.Now()
	}
	m.Stage = ev.Stage

	if ev.Duration > 0 {
		m.Duration = ev.Duration
	}
	if ev.Position > m.Position {
		m.Position = ev.Position
	}
	if ev.Kept > m.Kept {
		m.Kept = ev.Kept
		m.KeptSeconds = ev.KeptSeconds
	}
	if ev.Line != "" {
		m.LastLine = ev.Line
	}
	return m
}

// clockPhase orders stages for the stage clock, folding extraction into scanning
func clockPhase(s pipeline.Stage) pipeline.Stage {
	if s == pipeline.StageExtracting {
		return pipeline.StageScanning
	}
	return s
}

// Progress returns the fraction of the input scanned, 0.0 to 1.0
func (m Model) Progress() float64 {
	if m.Stage == pipeline.StageConcatenating || m.Stage == pipeline.StageDone {
		return 1
	}
	if m.Duration <= 0 {
		return 0
	}
	p := m.Position / m.Duration
	if p > 1 {
		p = 1
	}
	return p
}
