package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const boxWidth = 60

var (
	accentColor = lipgloss.Color("#D7005F")
	activeColor = lipgloss.Color("#FFA500")
	doneColor   = lipgloss.Color("#00AA00")
	mutedColor  = lipgloss.Color("#888888")

	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// renderProcessingView renders the in-progress view
func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderStageBox(m))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press q to cancel"))
	b.WriteString("\n")

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(accentColor).
		Render("Jumpcutter ✂ - Silence Remover")

	subtitle := lipgloss.NewStyle().
		Foreground(mutedColor).
		Italic(true).
		Render(fmt.Sprintf("%s → %s", filepath.Base(m.InputPath), filepath.Base(m.OutputPath)))

	return title + "\n" + subtitle
}

// renderStageBox renders the current stage with its progress details
func renderStageBox(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder

	icon := lipgloss.NewStyle().Foreground(activeColor).Render("⚙")
	content.WriteString(fmt.Sprintf("%s %s (%s)\n", icon, m.Stage, formatElapsed(time.Since(m.StageStart))))

	content.WriteString(renderProgressBar(m.Progress(), 40))
	content.WriteString("\n\n")

	elapsed := time.Since(m.StartTime)
	if m.Duration > 0 {
		content.WriteString(fmt.Sprintf("⏱  Elapsed: %s | Scanned: %s of %s\n",
			formatElapsed(elapsed), formatElapsed(seconds(m.Position)), formatElapsed(seconds(m.Duration))))
	} else {
		content.WriteString(fmt.Sprintf("⏱  Elapsed: %s\n", formatElapsed(elapsed)))
	}
	content.WriteString(fmt.Sprintf("✂  Segments kept: %d (%.1fs)", m.Kept, m.KeptSeconds))

	if m.LastLine != "" {
		content.WriteString("\n")
		content.WriteString(mutedStyle.Render(truncate(m.LastLine, boxWidth-4)))
	}

	return box.Render(content.String())
}

// renderProgressBar renders a progress bar
func renderProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}

// renderCompletion renders the final state once the run has ended
func renderCompletion(m Model) string {
	var b strings.Builder

	if m.Err != nil {
		icon := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("✗")
		b.WriteString(fmt.Sprintf("%s %s\n   Error: %v\n", icon, filepath.Base(m.InputPath), m.Err))
		return b.String()
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(doneColor).
		Render("✨ Processing Complete!")
	b.WriteString(header)
	b.WriteString("\n")

	if r := m.Result; r != nil {
		b.WriteString(fmt.Sprintf(" %s → %s\n", filepath.Base(r.Input), filepath.Base(r.Output)))
		b.WriteString(fmt.Sprintf("   Segments kept: %d | Kept: %.1fs", len(r.Intervals), r.KeptSeconds))
		if r.MediaDuration > 0 {
			b.WriteString(fmt.Sprintf(" | Removed: %.1fs", r.RemovedSeconds()))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("   Took %s\n", formatElapsed(time.Since(m.StartTime))))

	return b.String()
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// formatElapsed renders a duration as M:SS or H:MM:SS
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
