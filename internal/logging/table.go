// This file contains the column formatting used by run reports.

package logging

import (
	"fmt"
	"math"
	"strings"
)

// MissingValue is the placeholder for unavailable values
const MissingValue = "-"

// Table formats aligned columns. The first column is left-aligned, the rest
// are right-aligned so numbers line up on their last digit.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AddRow appends a row of pre-formatted cells
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// String renders the table, or "" when it has no rows
func (t *Table) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, w := range widths {
			cell := MissingValue
			if i < len(cells) && cells[i] != "" {
				cell = cells[i]
			}
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%-*s", w, cell))
			} else {
				sb.WriteString(fmt.Sprintf("  %*s", w, cell))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Headers)
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}

// formatSeconds formats a media timestamp with millisecond precision.
// NaN, Inf and negative values have no meaningful timestamp.
func formatSeconds(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return MissingValue
	}
	return fmt.Sprintf("%.3f", v)
}

// formatClock formats a media timestamp as HH:MM:SS.mmm
func formatClock(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return MissingValue
	}
	ms := int64(math.Round(v * 1000))
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// formatPercent formats part as a percentage of whole
func formatPercent(part, whole float64) string {
	if whole <= 0 || math.IsNaN(part) {
		return MissingValue
	}
	return fmt.Sprintf("%.1f%%", 100*part/whole)
}
