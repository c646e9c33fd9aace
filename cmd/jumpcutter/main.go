package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/linuxmatters/jumpcutter/internal/cli"
	"github.com/linuxmatters/jumpcutter/internal/engine"
	"github.com/linuxmatters/jumpcutter/internal/logging"
	"github.com/linuxmatters/jumpcutter/internal/pipeline"
	"github.com/linuxmatters/jumpcutter/internal/ui"
	"github.com/mattn/go-isatty"
)

var (
	version = "0.0.1"
)

const defaultConfigPath = "~/.config/jumpcutter/config.json"

// CLI defines the command-line interface
type CLI struct {
	Version VersionFlag     `short:"v" help:"Show version information"`
	Config  kong.ConfigFlag `short:"c" placeholder:"PATH" help:"JSON file with flag defaults"`

	TempDir    string  `name:"tempdir" type:"path" placeholder:"PATH" help:"Parent directory for the scratch workspace (default system temp)"`
	Noise      float64 `default:"0.03" placeholder:"LEVEL" help:"Silence threshold as a fraction of full scale"`
	MinSilence float64 `name:"min-silence" default:"0.1" placeholder:"SECONDS" help:"Minimum silence duration in seconds"`
	KeepTail   bool    `name:"keep-tail" help:"Keep the non-silent span after the last silence"`
	FFmpeg     string  `name:"ffmpeg" default:"ffmpeg" env:"JUMPCUTTER_FFMPEG" placeholder:"PATH" help:"ffmpeg binary to run"`
	Plain      bool    `help:"Disable the interactive progress display"`
	Logs       bool    `help:"Save a run report next to the output file"`
	Debug      bool    `help:"Log every interval decision"`
	LogFile    string  `name:"log-file" type:"path" placeholder:"PATH" help:"Write the log to a file"`

	Input  string `arg:"" name:"input-file" help:"Media file to remove silence from"`
	Output string `arg:"" name:"output-file" help:"Where to write the result; must not exist"`
}

// VersionFlag prints the styled version banner and exits
type VersionFlag bool

// BeforeReset runs before defaults and required arguments are checked, so
// --version works without positional arguments
func (v VersionFlag) BeforeReset(app *kong.Kong, vars kong.Vars) error {
	cli.PrintVersion(vars["version"])
	app.Exit(0)
	return nil
}

// Params returns the detector parameters selected on the command line
func (c *CLI) Params() engine.DetectParams {
	return engine.DetectParams{Noise: c.Noise, MinSilence: c.MinSilence}
}

// newParser builds the kong parser. Extra options are appended, which tests
// use to capture output and exits.
func newParser(cliArgs *CLI, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("jumpcutter"),
		kong.Description("Remove the silent parts of a video"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Configuration(kong.JSON, defaultConfigPath),
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	}
	return kong.New(cliArgs, append(opts, options...)...)
}

func main() {
	cliArgs := &CLI{}
	parser, err := newParser(cliArgs)
	if err != nil {
		panic(err)
	}
	_, err = parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	os.Exit(run(cliArgs))
}

// run performs one conversion and returns the process exit code
func run(cliArgs *CLI) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	interactive := !cliArgs.Plain && isatty.IsTerminal(os.Stdout.Fd())

	logOut, closeLog, err := openLog(cliArgs.LogFile, interactive)
	if err != nil {
		cli.PrintError(err.Error())
		return pipeline.ExitCode(err)
	}
	defer closeLog()
	logger := logging.NewLogger(logOut, cliArgs.Debug)

	// Extraction and concat chatter would tear the TUI
	engineOut := io.Writer(os.Stderr)
	if interactive {
		engineOut = io.Discard
	}

	runner := &pipeline.Runner{
		Engine: engine.NewFFmpeg(cliArgs.FFmpeg, engineOut),
		Log:    logger,
	}
	opts := pipeline.Options{
		Input:    cliArgs.Input,
		Output:   cliArgs.Output,
		TempDir:  cliArgs.TempDir,
		Params:   cliArgs.Params(),
		KeepTail: cliArgs.KeepTail,
	}

	startTime := time.Now()
	var (
		result *pipeline.Result
		shown  bool
	)
	if interactive {
		result, shown, err = runInteractive(ctx, runner, opts)
	} else {
		runner.Progress = echoLines(os.Stderr)
		result, err = runner.Run(ctx, opts)
	}
	if err != nil {
		logger.Debugf("run failed: %v", err)
		if !shown {
			cli.PrintError(err.Error())
		}
		return pipeline.ExitCode(err)
	}

	if cliArgs.Logs {
		path, err := logging.GenerateReport(logging.ReportData{
			InputPath:  result.Input,
			OutputPath: result.Output,
			StartTime:  startTime,
			EndTime:    time.Now(),
			Params:     opts.Params,
			KeepTail:   opts.KeepTail,
			Result:     result,
		})
		switch {
		case errors.Is(err, os.ErrExist):
			logger.Warnf("Report not written, %v", err)
		case err != nil:
			logger.Errorf("Failed to generate log file: %v", err)
		default:
			logger.Infof("Report written to %s", path)
		}
	}

	if !interactive {
		cli.PrintSummary(os.Stdout, result)
	}
	return 0
}

// runInteractive runs the pipeline behind the Bubbletea display. shown
// reports whether the display rendered the outcome itself.
func runInteractive(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (result *pipeline.Result, shown bool, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(ui.NewModel(opts.Input, opts.Output))
	runner.Progress = func(ev pipeline.Event) {
		p.Send(ui.ProgressMsg{Event: ev})
	}

	// Start processing in background
	done := make(chan struct{})
	var runErr error
	go func() {
		defer close(done)
		result, runErr = runner.Run(ctx, opts)
		p.Send(ui.DoneMsg{Result: result, Err: runErr})
	}()

	final, uiErr := p.Run()

	// Quitting the display early abandons the run
	cancel()
	<-done

	if uiErr != nil {
		return nil, false, fmt.Errorf("UI error: %w", uiErr)
	}
	if m, ok := final.(ui.Model); ok {
		shown = m.Done
	}
	return result, shown, runErr
}

// echoLines returns a progress handler that copies scan diagnostics to w
func echoLines(w io.Writer) pipeline.ProgressFunc {
	return func(ev pipeline.Event) {
		if ev.Line != "" {
			fmt.Fprintln(w, ev.Line)
		}
	}
}

// openLog picks the log destination. The TUI owns the terminal, so without
// a log file interactive runs discard the log.
func openLog(path string, interactive bool) (io.Writer, func() error, error) {
	nop := func() error { return nil }
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nop, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f.Close, nil
	}
	if interactive {
		return io.Discard, nop, nil
	}
	return os.Stderr, nop, nil
}
