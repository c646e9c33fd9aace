package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"syscall"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// DefaultBinary is the engine executable looked up on PATH
const DefaultBinary = "ffmpeg"

// maxLineLength bounds a single diagnostic line
const maxLineLength = 1024 * 1024

// FFmpeg runs the ffmpeg command-line tool as the media engine
type FFmpeg struct {
	// Binary is the executable name or path (default "ffmpeg")
	Binary string

	// Output receives the diagnostics of extraction and concatenation runs.
	// Nil discards them.
	Output io.Writer
}

// NewFFmpeg creates an engine that runs binary, or ffmpeg from PATH if binary is empty
func NewFFmpeg(binary string, output io.Writer) *FFmpeg {
	if binary == "" {
		binary = DefaultBinary
	}
	return &FFmpeg{Binary: binary, Output: output}
}

// DetectSilence streams the engine's stderr to onLine while it analyses input
func (f *FFmpeg) DetectSilence(ctx context.Context, input string, params DetectParams, onLine func(line string) error) error {
	cmd, err := f.command(ctx, detectArgs(input, params))
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to capture engine diagnostics: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", f.Binary, err)
	}

	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(ScanLines)

	for scanner.Scan() {
		if err := onLine(scanner.Text()); err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("failed to read engine diagnostics: %w", err)
	}

	return f.wait(ctx, "silence detection", cmd.Wait())
}

// ExtractRange cuts one time range of input into output
func (f *FFmpeg) ExtractRange(ctx context.Context, input string, start, duration float64, output string) error {
	return f.run(ctx, "extraction", extractArgs(input, start, duration, output))
}

// ConcatCopy joins the pieces listed in manifest with a stream copy
func (f *FFmpeg) ConcatCopy(ctx context.Context, manifest, output string) error {
	return f.run(ctx, "concatenation", concatArgs(manifest, output))
}

func (f *FFmpeg) run(ctx context.Context, op string, args []string) error {
	cmd, err := f.command(ctx, args)
	if err != nil {
		return err
	}
	out := f.Output
	if out == nil {
		out = io.Discard
	}
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", f.Binary, err)
	}
	return f.wait(ctx, op, cmd.Wait())
}

// command resolves the binary up front so a missing engine is reported as a
// launch failure rather than an exit status
func (f *FFmpeg) command(ctx context.Context, args []string) (*exec.Cmd, error) {
	path, err := exec.LookPath(f.Binary)
	if err != nil {
		// A PATH search miss carries no errno; report it like a missing file
		if errors.Is(err, exec.ErrNotFound) {
			err = errors.Join(err, syscall.ENOENT)
		}
		return nil, fmt.Errorf("failed to find media engine: %w", err)
	}
	return exec.CommandContext(ctx, path, args...), nil
}

func (f *FFmpeg) wait(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s interrupted: %w", op, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			code = 1 // Killed by a signal
		}
		return &ExitError{Op: op, Code: code}
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

// globalArgs keeps the engine quiet on startup and away from the terminal's stdin
func globalArgs() []string {
	return []string{"-hide_banner", "-nostdin"}
}

func detectArgs(input string, params DetectParams) []string {
	stream := ffmpeg.Input(input).
		Output("-", ffmpeg.KwArgs{"af": params.Filter(), "f": "null"})
	return append(globalArgs(), stream.GetArgs()...)
}

func extractArgs(input string, start, duration float64, output string) []string {
	stream := ffmpeg.Input(input, ffmpeg.KwArgs{"ss": FormatSeconds(start), "t": FormatSeconds(duration)}).
		Output(output)
	return append(globalArgs(), stream.GetArgs()...)
}

func concatArgs(manifest, output string) []string {
	stream := ffmpeg.Input(manifest, ffmpeg.KwArgs{"f": "concat", "safe": "0"}).
		Output(output, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput()
	return append(globalArgs(), stream.GetArgs()...)
}
