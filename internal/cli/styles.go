package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/linuxmatters/jumpcutter/internal/pipeline"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#D7005F") // Jumpcutter magenta
	successColor = lipgloss.Color("#00AA00") // Green
	mutedColor   = lipgloss.Color("#888888") // Gray
	textColor    = lipgloss.Color("#FFFFFF") // White
)

// Styles
var (
	// Title style - bold magenta with scissors emoji
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// Error message style
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// Success message style
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	// Key-value pair styles
	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

// PrintVersion prints version information
func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("Jumpcutter ✂"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// PrintSummary prints the outcome of a successful run
func PrintSummary(w io.Writer, result *pipeline.Result) {
	fmt.Fprintf(w, "%s %s → %s\n",
		SuccessStyle.Render("✓"),
		filepath.Base(result.Input),
		ValueStyle.Render(filepath.Base(result.Output)))
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Segments kept:"), ValueStyle.Render(fmt.Sprintf("%d", len(result.Intervals))))
	fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Time kept:"), ValueStyle.Render(fmt.Sprintf("%.1fs", result.KeptSeconds)))
	if result.MediaDuration > 0 {
		fmt.Fprintf(w, "  %s %s\n", KeyStyle.Render("Time removed:"),
			ValueStyle.Render(fmt.Sprintf("%.1fs of %.1fs", result.RemovedSeconds(), result.MediaDuration)))
	}
}
