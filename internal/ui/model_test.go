package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/jumpcutter/internal/pipeline"
	"github.com/linuxmatters/jumpcutter/internal/silence"
)

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want ui.Model", next)
	}
	return model, cmd
}

func TestUpdateProgress(t *testing.T) {
	m := NewModel("talk.mkv", "talk-cut.mkv")

	m, _ = update(t, m, ProgressMsg{Event: pipeline.Event{Stage: pipeline.StageScanning}})
	if m.Stage != pipeline.StageScanning {
		t.Errorf("Stage = %v, want %v", m.Stage, pipeline.StageScanning)
	}

	m, _ = update(t, m, ProgressMsg{Event: pipeline.Event{
		Stage:    pipeline.StageScanning,
		Line:     "  Duration: 00:00:20.00, start: 0.000000, bitrate: 128 kb/s",
		Duration: 20,
	}})
	if m.Duration != 20 {
		t.Errorf("Duration = %v, want 20", m.Duration)
	}

	m, _ = update(t, m, ProgressMsg{Event: pipeline.Event{
		Stage:       pipeline.StageExtracting,
		Interval:    silence.KeepInterval{Start: 0, Duration: 2.5},
		Kept:        1,
		KeptSeconds: 2.5,
		Position:    2.5,
		Duration:    20,
	}})
	if m.Kept != 1 || m.KeptSeconds != 2.5 {
		t.Errorf("Kept = %d (%.1fs), want 1 (2.5s)", m.Kept, m.KeptSeconds)
	}
	if got := m.Progress(); got != 0.125 {
		t.Errorf("Progress() = %v, want 0.125", got)
	}

	// Position never moves backwards
	m, _ = update(t, m, ProgressMsg{Event: pipeline.Event{Stage: pipeline.StageScanning, Position: 1}})
	if m.Position != 2.5 {
		t.Errorf("Position = %v, want 2.5", m.Position)
	}
	if !strings.Contains(m.LastLine, "Duration:") {
		t.Errorf("LastLine = %q, want the last non-empty engine line", m.LastLine)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		m    Model
		want float64
	}{
		{"unknown_duration", Model{Stage: pipeline.StageScanning, Position: 5}, 0},
		{"halfway", Model{Stage: pipeline.StageScanning, Position: 5, Duration: 10}, 0.5},
		{"clamped", Model{Stage: pipeline.StageScanning, Position: 12, Duration: 10}, 1},
		{"concatenating", Model{Stage: pipeline.StageConcatenating}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdateDone(t *testing.T) {
	m := NewModel("talk.mkv", "talk-cut.mkv")
	result := &pipeline.Result{
		Input:         "/media/talk.mkv",
		Output:        "talk-cut.mkv",
		Intervals:     []silence.KeepInterval{{Start: 0, Duration: 2.5}},
		MediaDuration: 20,
		KeptSeconds:   2.5,
	}

	m, cmd := update(t, m, DoneMsg{Result: result})
	if !m.Done || m.Stage != pipeline.StageDone {
		t.Errorf("Done = %v, Stage = %v; want true, %v", m.Done, m.Stage, pipeline.StageDone)
	}
	if cmd == nil {
		t.Fatal("DoneMsg did not return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("DoneMsg command is not tea.Quit")
	}

	view := m.View()
	for _, want := range []string{"Processing Complete", "talk-cut.mkv", "Segments kept: 1", "Removed: 17.5s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestUpdateDoneWithError(t *testing.T) {
	m := NewModel("talk.mkv", "talk-cut.mkv")

	m, _ = update(t, m, DoneMsg{Err: errors.New("extract failed: engine exited with status 3")})
	if m.Stage != pipeline.StageFailed {
		t.Errorf("Stage = %v, want %v", m.Stage, pipeline.StageFailed)
	}
	if view := m.View(); !strings.Contains(view, "status 3") {
		t.Errorf("view does not show the error:\n%s", view)
	}
}

func TestUpdateQuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	}

	for _, key := range keys {
		t.Run(key.String(), func(t *testing.T) {
			m, cmd := update(t, NewModel("in.mkv", "out.mkv"), key)
			if !m.Cancelled {
				t.Error("Cancelled not set")
			}
			if cmd == nil {
				t.Fatal("no quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("command is not tea.Quit")
			}
		})
	}
}

func TestViewInProgress(t *testing.T) {
	m := NewModel("/media/talk.mkv", "/out/talk-cut.mkv")
	m.Stage = pipeline.StageExtracting
	m.Duration = 20
	m.Position = 10
	m.Kept = 2
	m.KeptSeconds = 8.25
	m.LastLine = "[silencedetect @ 0x1] silence_start: 9.75"

	view := m.View()
	for _, want := range []string{"talk.mkv → talk-cut.mkv", "Extracting", "50%", "Segments kept: 2 (8.2s)", "silence_start: 9.75"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		progress float64
		want     string
	}{
		{0, "░░░░ 0%"},
		{0.5, "██░░ 50%"},
		{1, "████ 100%"},
		{1.5, "████ 100%"},
		{-1, "░░░░ 0%"},
	}

	for _, tt := range tests {
		if got := renderProgressBar(tt.progress, 4); got != tt.want {
			t.Errorf("renderProgressBar(%v, 4) = %q, want %q", tt.progress, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59.9, "0:59"},
		{83, "1:23"},
		{3725, "1:02:05"},
	}

	for _, tt := range tests {
		if got := formatElapsed(seconds(tt.seconds)); got != tt.want {
			t.Errorf("formatElapsed(%vs) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate(abcdefghij, 5) = %q, want %q", got, "abcd…")
	}
}

func TestStageClockIgnoresExtraction(t *testing.T) {
	m := NewModel("talk.mkv", "talk-cut.mkv")
	m, _ = update(t, m, ProgressMsg{Event: pipeline.Event{Stage: pipeline.StageScanning}})

	scanStart := time.Now().Add(-time.Minute)
	m.StageStart = scanStart

	for _, stage := range []pipeline.Stage{
		pipeline.StageExtracting,
		pipeline.StageScanning,
		pipeline.StageExtracting,
		pipeline.StageScanning,
	} {
		m, _ = update(t, m, ProgressMsg{Event: pipeline.Event{Stage: stage}})
		if !m.StageStart.Equal(scanStart) {
			t.Fatalf("stage clock reset on %v", stage)
		}
		if m.Stage != stage {
			t.Errorf("Stage = %v, want %v", m.Stage, stage)
		}
	}

	m, _ = update(t, m, ProgressMsg{Event: pipeline.Event{Stage: pipeline.StageConcatenating}})
	if !m.StageStart.After(scanStart) {
		t.Error("stage clock not reset when concatenation started")
	}
}
