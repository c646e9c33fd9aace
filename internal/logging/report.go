package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linuxmatters/jumpcutter/internal/engine"
	"github.com/linuxmatters/jumpcutter/internal/pipeline"
)

// ReportData contains everything needed to write a run report
type ReportData struct {
	InputPath  string
	OutputPath string
	StartTime  time.Time
	EndTime    time.Time
	Params     engine.DetectParams
	KeepTail   bool
	Result     *pipeline.Result
}

// ReportPath returns where the report for output is written:
// talk-cut.mkv → talk-cut.log
func ReportPath(output string) string {
	path := strings.TrimSuffix(output, filepath.Ext(output)) + ".log"
	if path == output {
		path = output + ".report.log"
	}
	return path
}

// GenerateReport writes a run report alongside the output file and returns its path.
// An existing report is left alone and reported with an error wrapping os.ErrExist.
//
// Report structure:
// 1. Header - file names and timestamp
// 2. Processing Summary - stage timings
// 3. Silence Detection - detector parameters
// 4. Kept Segments - one row per interval
// 5. Totals - kept and removed time
func GenerateReport(data ReportData) (string, error) {
	path := ReportPath(data.OutputPath)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	WriteReport(f, data)
	return path, nil
}

// WriteReport renders the report to w
func WriteReport(w io.Writer, data ReportData) {
	writeReportHeader(w, data)
	writeProcessingSummary(w, data)
	writeDetectionParams(w, data)
	if data.Result != nil {
		writeKeptSegments(w, data.Result)
		writeTotals(w, data.Result)
	}
}

func writeSection(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("-", len(title)))
}

func writeReportHeader(w io.Writer, data ReportData) {
	fmt.Fprintln(w, "Jumpcutter Run Report")
	fmt.Fprintln(w, "=====================")
	fmt.Fprintf(w, "Input: %s\n", filepath.Base(data.InputPath))
	fmt.Fprintf(w, "Output: %s\n", filepath.Base(data.OutputPath))
	fmt.Fprintf(w, "Processed: %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	if data.Result != nil && data.Result.MediaDuration > 0 {
		fmt.Fprintf(w, "Duration: %s\n", formatClock(data.Result.MediaDuration))
	}
	fmt.Fprintln(w, "")
}

// writeProcessingSummary outputs the time spent in each stage
func writeProcessingSummary(w io.Writer, data ReportData) {
	writeSection(w, "Processing Summary")

	if r := data.Result; r != nil {
		fmt.Fprintf(w, "Detection:      %s\n", formatDuration(r.ScanTime))
		fmt.Fprintf(w, "Extraction:     %s\n", formatDuration(r.ExtractTime))
		fmt.Fprintf(w, "Concatenation:  %s\n", formatDuration(r.ConcatTime))
	}

	total := data.EndTime.Sub(data.StartTime)
	fmt.Fprintf(w, "Total:          %s", formatDuration(total))
	if data.Result != nil && data.Result.MediaDuration > 0 && total > 0 {
		media := time.Duration(data.Result.MediaDuration * float64(time.Second))
		fmt.Fprintf(w, " (%.1fx real-time)", float64(media)/float64(total))
	}
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "")
}

func writeDetectionParams(w io.Writer, data ReportData) {
	writeSection(w, "Silence Detection")
	fmt.Fprintf(w, "Noise threshold:  %s of full scale\n", engine.FormatSeconds(data.Params.Noise))
	fmt.Fprintf(w, "Minimum silence:  %ss\n", engine.FormatSeconds(data.Params.MinSilence))
	fmt.Fprintf(w, "Filter:           %s\n", data.Params.Filter())
	if data.KeepTail {
		fmt.Fprintln(w, "Trailing span:    kept")
	}
	fmt.Fprintln(w, "")
}

func writeKeptSegments(w io.Writer, r *pipeline.Result) {
	writeSection(w, "Kept Segments")

	table := &Table{Headers: []string{"#", "Start", "End", "Length"}}
	for i, k := range r.Intervals {
		table.AddRow(
			fmt.Sprintf("%d", i+1),
			formatClock(k.Start),
			formatClock(k.End()),
			formatSeconds(k.Duration),
		)
	}
	if len(r.Intervals) == 0 {
		fmt.Fprintln(w, "(none)")
	} else {
		fmt.Fprint(w, table.String())
	}
	fmt.Fprintln(w, "")
}

func writeTotals(w io.Writer, r *pipeline.Result) {
	writeSection(w, "Totals")

	fmt.Fprintf(w, "Segments kept:  %d\n", len(r.Intervals))
	fmt.Fprintf(w, "Time kept:      %ss (%s)\n", formatSeconds(r.KeptSeconds), formatPercent(r.KeptSeconds, r.MediaDuration))
	if r.MediaDuration > 0 {
		removed := r.RemovedSeconds()
		fmt.Fprintf(w, "Time removed:   %ss (%s)\n", formatSeconds(removed), formatPercent(removed, r.MediaDuration))
	} else {
		fmt.Fprintf(w, "Time removed:   %s\n", MissingValue)
	}
}

// formatDuration renders an elapsed time for humans
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
