package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Output receives every status line. Tests may replace it.
var Output io.Writer = os.Stderr

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	PathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	PromptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

func render(style lipgloss.Style, format string, a ...interface{}) {
	fmt.Fprintln(Output, style.Render(fmt.Sprintf(format, a...)))
}

func Header(format string, a ...interface{}) {
	render(HeaderStyle, format, a...)
}

func Info(format string, a ...interface{}) {
	render(InfoStyle, format, a...)
}

func Success(format string, a ...interface{}) {
	render(SuccessStyle, format, a...)
}

func Warning(format string, a ...interface{}) {
	render(WarningStyle, format, a...)
}

func Error(format string, a ...interface{}) {
	render(ErrorStyle, format, a...)
}

func Path(format string, a ...interface{}) {
	render(PathStyle, "  "+format, a...)
}

func Prompt(format string, a ...interface{}) string {
	return PromptStyle.Render(fmt.Sprintf(format, a...))
}

// --- Summaries ---

func PrintUndoSummary(undone, failed []string) {
	printHistorySummary("Undo", "undid", "undo", undone, failed)
}

func PrintRedoSummary(redone, failed []string) {
	printHistorySummary("Redo", "redid", "redo", redone, failed)
}

func printHistorySummary(title, past, verb string, done, failed []string) {
	Header("\n--- %s Summary ---", title)
	if len(done) == 0 && len(failed) == 0 {
		Info("No files were touched.")
		return
	}
	if len(done) > 0 {
		Success("Successfully %s %d file(s):", past, len(done))
		for _, f := range done {
			Path("- %s", f)
		}
	}
	if len(failed) > 0 {
		Error("Failed to %s %d file(s) (changed since the last run?):", verb, len(failed))
		for _, f := range failed {
			Path("- %s", f)
		}
	}
}
