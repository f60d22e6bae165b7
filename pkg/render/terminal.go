package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/swiftconcur/parser/pkg/warning"
)

// terminalStyles is the shared style set for terminal output.
type terminalStyles struct {
	Critical lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
	Header   lipgloss.Style
	File     lipgloss.Style
	Muted    lipgloss.Style
	Pointer  lipgloss.Style
}

func defaultTerminalStyles() *terminalStyles {
	return &terminalStyles{
		Critical: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F56")).Bold(true),
		High:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBD2E")).Bold(true),
		Medium:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9500")),
		Low:      lipgloss.NewStyle().Foreground(lipgloss.Color("#0077B6")),
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("#0077B6")).Bold(true),
		File:     lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")),
		Pointer:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFBD2E")),
	}
}

// TerminalFormatter renders a styled report for interactive use.
type TerminalFormatter struct {
	styles *terminalStyles
}

// NewTerminalFormatter returns a terminal formatter with the default styles.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{styles: defaultTerminalStyles()}
}

func (f *TerminalFormatter) Format(run *warning.Run) (string, error) {
	var sb strings.Builder

	sb.WriteString(f.styles.Header.Render("Swift Concurrency Warnings"))
	sb.WriteString("\n")
	if run.TotalWarnings == 0 {
		sb.WriteString(f.styles.Muted.Render("no concurrency warnings found"))
		sb.WriteString("\n")
		return sb.String(), nil
	}
	fmt.Fprintf(&sb, "%d warning(s)\n\n", run.TotalWarnings)

	for _, w := range run.Warnings {
		badge := f.severityStyle(w.Severity).Render(strings.ToUpper(string(w.Severity)))
		loc := fmt.Sprintf("%s:%d", w.FilePath, w.LineNumber)
		if w.ColumnNumber != nil {
			loc = fmt.Sprintf("%s:%d", loc, *w.ColumnNumber)
		}
		fmt.Fprintf(&sb, "%s %s %s\n", badge, TypeLabel(w.Type), f.styles.File.Render(loc))
		fmt.Fprintf(&sb, "  %s\n", w.Message)

		if w.CodeContext.Line != "" {
			for _, line := range w.CodeContext.Before {
				fmt.Fprintf(&sb, "    %s\n", f.styles.Muted.Render(line))
			}
			fmt.Fprintf(&sb, "  %s %s\n", f.styles.Pointer.Render(">"), w.CodeContext.Line)
			for _, line := range w.CodeContext.After {
				fmt.Fprintf(&sb, "    %s\n", f.styles.Muted.Render(line))
			}
		}

		if w.SuggestedFix != "" {
			fmt.Fprintf(&sb, "  %s\n", f.styles.Muted.Render("fix: "+w.SuggestedFix))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (f *TerminalFormatter) severityStyle(s warning.Severity) lipgloss.Style {
	switch s {
	case warning.SeverityCritical:
		return f.styles.Critical
	case warning.SeverityHigh:
		return f.styles.High
	case warning.SeverityMedium:
		return f.styles.Medium
	default:
		return f.styles.Low
	}
}
