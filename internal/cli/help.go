package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFA500")).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAAA")).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// helpEntry is one line of the Arguments or Flags section
type helpEntry struct {
	name  string // "<input-file>" or "-c, --config=PATH"
	help  string
	notes []string // "default: 0.03", "$JUMPCUTTER_FFMPEG"
}

// StyledHelpPrinter creates a custom help printer with Lipgloss styling
func StyledHelpPrinter(options kong.HelpOptions) func(options kong.HelpOptions, ctx *kong.Context) error {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		sb.WriteString(helpTitleStyle.Render("Jumpcutter ✂"))
		sb.WriteString("\n")
		if ctx.Model.Help != "" {
			sb.WriteString(helpDescStyle.Render(ctx.Model.Help))
			sb.WriteString("\n")
		}

		args := argumentEntries(ctx.Model.Node)

		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(ctx.Model.Name)
		sb.WriteString(" [flags]")
		for _, arg := range args {
			sb.WriteString(" ")
			sb.WriteString(arg.name)
		}
		sb.WriteString("\n")

		writeHelpSection(&sb, "Arguments:", helpArgStyle, args)
		writeHelpSection(&sb, "Flags:", helpFlagStyle, flagEntries(ctx.Model.Node))

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	}
}

func writeHelpSection(sb *strings.Builder, title string, nameStyle lipgloss.Style, entries []helpEntry) {
	if len(entries) == 0 {
		return
	}
	sb.WriteString("\n")
	sb.WriteString(helpSectionStyle.Render(title))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(nameStyle.Render(e.name))
		if e.help != "" {
			sb.WriteString("  ")
			sb.WriteString(e.help)
		}
		if len(e.notes) > 0 {
			sb.WriteString(" ")
			sb.WriteString(helpDefaultStyle.Render("(" + strings.Join(e.notes, ", ") + ")"))
		}
		sb.WriteString("\n")
	}
}

func argumentEntries(node *kong.Node) []helpEntry {
	var entries []helpEntry
	for _, arg := range node.Positional {
		entries = append(entries, helpEntry{name: arg.Summary(), help: arg.Help})
	}
	return entries
}

func flagEntries(node *kong.Node) []helpEntry {
	entries := []helpEntry{{name: "-h, --help", help: "Show context-sensitive help."}}

	for _, f := range node.Flags {
		if f.Name == "help" || f.Hidden {
			continue
		}
		entries = append(entries, helpEntry{
			name:  flagName(f),
			help:  f.Help,
			notes: flagNotes(f),
		})
	}
	return entries
}

// flagName renders "-s, --name=VALUE"; bool flags take no value
func flagName(f *kong.Flag) string {
	name := "--" + f.Name
	if f.Short != 0 {
		name = fmt.Sprintf("-%c, %s", f.Short, name)
	}
	if f.IsBool() {
		return name
	}
	placeholder := f.PlaceHolder
	if placeholder == "" {
		placeholder = strings.ToUpper(f.Name)
	}
	return name + "=" + placeholder
}

// flagNotes lists the default value and environment variables of a flag.
// Bool flags default to off, which goes without saying.
func flagNotes(f *kong.Flag) []string {
	var notes []string
	if f.HasDefault && f.Default != "" && !f.IsBool() {
		notes = append(notes, "default: "+f.Default)
	}
	for _, env := range f.Envs {
		notes = append(notes, "$"+env)
	}
	return notes
}
