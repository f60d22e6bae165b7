package render

import (
	"fmt"
	"strings"

	"github.com/swiftconcur/parser/pkg/warning"
)

// MarkdownFormatter emits a report suitable for PR comments and CI
// summaries.
type MarkdownFormatter struct{}

func (MarkdownFormatter) Format(run *warning.Run) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Swift Concurrency Warnings Report\n\n")
	fmt.Fprintf(&sb, "**Total Warnings:** %d\n", run.TotalWarnings)
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", run.CreatedAt.Format("2006-01-02 15:04:05 UTC"))

	if run.CommitSHA != "" {
		fmt.Fprintf(&sb, "**Commit:** `%s`\n", run.CommitSHA)
	}
	if run.Branch != "" {
		fmt.Fprintf(&sb, "**Branch:** `%s`\n", run.Branch)
	}

	sb.WriteString("\n## Warnings\n\n")

	for _, w := range run.Warnings {
		fmt.Fprintf(&sb, "### %s %s - %s\n\n", severityEmoji(w.Severity), TypeLabel(w.Type), w.FilePath)
		fmt.Fprintf(&sb, "**Line:** %d\n", w.LineNumber)
		fmt.Fprintf(&sb, "**Message:** %s\n\n", w.Message)

		if w.CodeContext.Line != "" {
			sb.WriteString("```swift\n")
			for _, line := range w.CodeContext.Before {
				fmt.Fprintf(&sb, "  %s\n", line)
			}
			fmt.Fprintf(&sb, "> %s\n", w.CodeContext.Line)
			for _, line := range w.CodeContext.After {
				fmt.Fprintf(&sb, "  %s\n", line)
			}
			sb.WriteString("```\n\n")
		}

		if w.SuggestedFix != "" {
			fmt.Fprintf(&sb, "**Suggested fix:** %s\n\n", w.SuggestedFix)
		}

		sb.WriteString("---\n\n")
	}

	return sb.String(), nil
}
