package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/fsplit/model"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	promptStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// RenderSummary formats the outcome of a split for the terminal.
func RenderSummary(summary model.Summary) string {
	var b strings.Builder

	if summary.Message != "" {
		b.WriteString(headerStyle.Render(summary.Message))
		b.WriteString("\n\n")
	}

	hasContent := false
	section := func(title string, style lipgloss.Style, items []string) {
		if len(items) == 0 {
			return
		}
		hasContent = true
		b.WriteString(style.Render(title))
		b.WriteString("\n")
		for _, item := range items {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(item)))
		}
	}

	section("Created:", successStyle, summary.Created)
	section("Modified:", successStyle, summary.Modified)
	section("Made public:", successStyle, summary.Renamed)
	section("Failed:", errorStyle, summary.Failed)

	if !hasContent && summary.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
	}

	return b.String()
}
