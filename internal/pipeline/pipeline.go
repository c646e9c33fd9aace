// Package pipeline drives a jumpcutter run: scan for silence, extract the
// spans worth keeping as they are found, then join them into the output
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/linuxmatters/jumpcutter/internal/engine"
	"github.com/linuxmatters/jumpcutter/internal/silence"
	"github.com/linuxmatters/jumpcutter/internal/workspace"
)

// ErrNothingToKeep is returned when the scan produced no intervals, so there
// is nothing to concatenate
var ErrNothingToKeep = errors.New("no non-silent segments detected; nothing to do")

// Logger is the subset of a levelled logger the pipeline writes to
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// Options describes a single run
type Options struct {
	Input    string
	Output   string
	TempDir  string // Parent for the scratch workspace; empty means system temp
	Params   engine.DetectParams
	KeepTail bool // Also keep the span after the last silence
}

// Result summarises a finished run
type Result struct {
	Input         string // Canonical input path
	Output        string
	Intervals     []silence.KeepInterval
	MediaDuration float64 // Seconds; 0 if the engine never reported it
	KeptSeconds   float64

	ScanTime    time.Duration // Analysis time, excluding extraction
	ExtractTime time.Duration
	ConcatTime  time.Duration
}

// RemovedSeconds returns how much of the input was cut, if the input duration is known
func (r *Result) RemovedSeconds() float64 {
	if r.MediaDuration <= 0 {
		return 0
	}
	return r.MediaDuration - r.KeptSeconds
}

// Runner executes runs against an engine
type Runner struct {
	Engine   engine.Engine
	Log      Logger       // Optional
	Progress ProgressFunc // Optional
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}

// run holds the state owned by one invocation of Runner.Run
type run struct {
	*Runner
	ctx       context.Context
	input     string
	ws        *workspace.Workspace
	manifest  *workspace.Manifest
	extractor silence.Extractor
	result    *Result
}

// Run performs a complete run. On any error the output path is left untouched
// and the workspace is removed.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if r.Log == nil {
		r.Log = nopLogger{}
	}
	r.emit(Event{Stage: StageInit})

	result, err := r.execute(ctx, opts)
	if err != nil {
		r.emit(Event{Stage: StageFailed})
		return nil, err
	}

	r.emit(Event{Stage: StageDone, Kept: len(result.Intervals), KeptSeconds: result.KeptSeconds, Duration: result.MediaDuration})
	return result, nil
}

func (r *Runner) execute(ctx context.Context, opts Options) (*Result, error) {
	if err := workspace.CheckOutput(opts.Output); err != nil {
		return nil, err
	}
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}

	r.Log.Infof("Create temporary directory")
	ws, err := workspace.New(opts.TempDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			r.Log.Infof("Failed to remove temporary directory %s: %v", ws.Dir(), err)
		}
	}()

	r.Log.Infof("Create concat script")
	manifest, err := ws.CreateManifest()
	if err != nil {
		return nil, err
	}
	manifestOpen := true
	defer func() {
		if manifestOpen {
			manifest.Close()
		}
	}()

	input, err := canonicalize(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to get the canonical path of %q: %w", opts.Input, err)
	}

	st := &run{
		Runner:   r,
		ctx:      ctx,
		input:    input,
		ws:       ws,
		manifest: manifest,
		extractor: silence.Extractor{
			Trace: r.Log.Debugf,
		},
		result: &Result{Input: input, Output: opts.Output},
	}

	r.Log.Infof("Detect silences")
	r.emit(Event{Stage: StageScanning})
	scanStart := time.Now()
	if err := r.Engine.DetectSilence(ctx, input, opts.Params, st.onLine); err != nil {
		return nil, err
	}
	if opts.KeepTail {
		if k, ok := st.extractor.Tail(st.result.MediaDuration); ok {
			if err := st.keep(k); err != nil {
				return nil, err
			}
		}
	}
	st.result.ScanTime = time.Since(scanStart) - st.result.ExtractTime

	manifestOpen = false
	if err := manifest.Close(); err != nil {
		return nil, err
	}
	if manifest.Len() == 0 {
		return nil, ErrNothingToKeep
	}

	r.Log.Infof("Concatenate pieces")
	r.emit(Event{Stage: StageConcatenating, Kept: len(st.result.Intervals), KeptSeconds: st.result.KeptSeconds})
	concatStart := time.Now()
	pending, err := workspace.NewPendingOutput(opts.Output)
	if err != nil {
		return nil, err
	}
	defer pending.Discard()
	if err := r.Engine.ConcatCopy(ctx, ws.ManifestPath(), pending.Path()); err != nil {
		return nil, err
	}
	if err := pending.Commit(); err != nil {
		return nil, err
	}
	st.result.ConcatTime = time.Since(concatStart)

	return st.result, nil
}

// onLine handles one diagnostic line from the silence scan
func (st *run) onLine(line string) error {
	ev := Event{Stage: StageScanning, Line: line, Duration: st.result.MediaDuration}
	if d, ok := silence.ParseDuration(line); ok && st.result.MediaDuration == 0 {
		st.result.MediaDuration = d
		ev.Duration = d
	}
	if pos, ok := silence.ParsePosition(line); ok {
		ev.Position = pos
	}
	st.emit(ev)

	k, ok := st.extractor.Feed(line)
	if !ok {
		return nil
	}
	return st.keep(k)
}

// keep extracts one interval into the workspace before the scan moves on
func (st *run) keep(k silence.KeepInterval) error {
	st.Log.Debugf("keep %s-%s", engine.FormatSeconds(k.Start), engine.FormatSeconds(k.End()))

	piece := st.ws.NextPiecePath()
	if err := st.manifest.Append(piece); err != nil {
		return err
	}

	st.result.Intervals = append(st.result.Intervals, k)
	st.result.KeptSeconds += k.Duration
	st.emit(Event{
		Stage:       StageExtracting,
		Interval:    k,
		Kept:        len(st.result.Intervals),
		KeptSeconds: st.result.KeptSeconds,
		Position:    k.End(),
		Duration:    st.result.MediaDuration,
	})

	start := time.Now()
	err := st.Engine.ExtractRange(st.ctx, st.input, k.Start, k.Duration, piece)
	st.result.ExtractTime += time.Since(start)
	return err
}

func (r *Runner) emit(ev Event) {
	if r.Progress != nil {
		r.Progress(ev)
	}
}

// canonicalize resolves path to an absolute path with symlinks evaluated
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
