package logging

import (
	"math"
	"strings"
	"testing"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0, "0.000"},
		{"fraction", 2.5, "2.500"},
		{"rounding", 1.23456, "1.235"},
		{"negative", -1, MissingValue},
		{"nan", math.NaN(), MissingValue},
		{"inf", math.Inf(1), MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSeconds(tt.value); got != tt.want {
				t.Errorf("formatSeconds(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"zero", 0, "00:00:00.000"},
		{"seconds", 12.125, "00:00:12.125"},
		{"minutes", 83.45, "00:01:23.450"},
		{"hours", 3725.5, "01:02:05.500"},
		{"rounds_up", 59.9996, "00:01:00.000"},
		{"nan", math.NaN(), MissingValue},
		{"negative", -0.5, MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatClock(tt.value); got != tt.want {
				t.Errorf("formatClock(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name        string
		part, whole float64
		want        string
	}{
		{"half", 5, 10, "50.0%"},
		{"all", 10, 10, "100.0%"},
		{"unknown_whole", 5, 0, MissingValue},
		{"nan", math.NaN(), 10, MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPercent(tt.part, tt.whole); got != tt.want {
				t.Errorf("formatPercent(%v, %v) = %q, want %q", tt.part, tt.whole, got, tt.want)
			}
		})
	}
}

func TestTableString(t *testing.T) {
	table := &Table{Headers: []string{"#", "Start", "Length"}}
	table.AddRow("1", "00:00:00.000", "2.500")
	table.AddRow("10", "00:00:04.000", "")

	got := table.String()
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), got)
	}

	want := []string{
		"#          Start  Length",
		"1   00:00:00.000   2.500",
		"10  00:00:04.000       -",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTableEmpty(t *testing.T) {
	table := &Table{Headers: []string{"#"}}
	if got := table.String(); got != "" {
		t.Errorf("String() = %q, want empty", got)
	}
}
