package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Reporter receives pipeline milestones. Exactly one Result is emitted per
// pipeline invocation; everything else is best-effort progress reporting.
type Reporter interface {
	Progress(percent int, text string)
	Stats(stats ExportStats, criteria *FilterCriteria)
	ChatsList(chats []Chat)
	Result(message string)
}

// ConsoleReporter writes styled milestones to the terminal.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to stderr, keeping stdout
// free for machine-readable output.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stderr}
}

// NewConsoleReporterTo creates a reporter writing to w.
func NewConsoleReporterTo(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

func (r *ConsoleReporter) Progress(percent int, text string) {
	fmt.Fprintf(r.out, "%s %s\n", progressStyle.Render(fmt.Sprintf("[%3d%%]", percent)), text)
}

func (r *ConsoleReporter) Stats(stats ExportStats, criteria *FilterCriteria) {
	fmt.Fprintf(r.out, "%s chats %d/%d, messages %d/%d\n",
		dimStyle.Render("stats:"),
		stats.FilteredChats, stats.OriginalChats,
		stats.FilteredMessages, stats.OriginalMessages)
	if criteria.Active() {
		fmt.Fprintf(r.out, "%s search=%q type=%s mode=%s\n",
			dimStyle.Render("filter:"),
			criteria.SearchText, criteria.MessageType, criteria.FilterMode)
	}
}

func (r *ConsoleReporter) ChatsList(chats []Chat) {
	fmt.Fprintf(r.out, "%s %d candidate chat(s)\n", dimStyle.Render("chats:"), len(chats))
	for i := range chats {
		fmt.Fprintf(r.out, "  %s %s (%d messages)\n",
			dimStyle.Render(truncateRunes(chats[i].ID, 8)), chats[i].Title, len(chats[i].Messages))
	}
}

func (r *ConsoleReporter) Result(message string) {
	fmt.Fprintf(r.out, "%s\n", message)
}

// PrintSuccess prints a success message to stdout.
func PrintSuccess(message string) {
	fmt.Printf("%s %s\n", successStyle.Render("✓"), message)
}

// PrintError prints an error message to stderr.
func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorStyle.Render("✗"), message)
}

// PrintWarning prints a warning message to stderr.
func PrintWarning(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", warningStyle.Render("⚠"), message)
}

// NopReporter discards all milestones.
type NopReporter struct{}

func (NopReporter) Progress(int, string)               {}
func (NopReporter) Stats(ExportStats, *FilterCriteria) {}
func (NopReporter) ChatsList([]Chat)                   {}
func (NopReporter) Result(string)                      {}
