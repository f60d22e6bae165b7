// Package render formats warning runs for CI logs, chat, and terminals.
package render

import (
	"fmt"

	"github.com/swiftconcur/parser/pkg/warning"
)

// Formatter renders a warning run to a string.
type Formatter interface {
	Format(run *warning.Run) (string, error)
}

// New returns the formatter for a format name: "json", "markdown", "slack",
// or "terminal".
func New(format string) (Formatter, error) {
	switch format {
	case "json":
		return JSONFormatter{}, nil
	case "markdown":
		return MarkdownFormatter{}, nil
	case "slack":
		return SlackFormatter{}, nil
	case "terminal":
		return NewTerminalFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TypeLabel returns the human-readable name of a warning type.
func TypeLabel(t warning.Type) string {
	switch t {
	case warning.TypeActorIsolation:
		return "Actor Isolation"
	case warning.TypeSendableConformance:
		return "Sendable Conformance"
	case warning.TypeDataRace:
		return "Data Race"
	case warning.TypePerformanceRegression:
		return "Performance Regression"
	default:
		return "Unknown"
	}
}

func severityEmoji(s warning.Severity) string {
	switch s {
	case warning.SeverityCritical:
		return "🚨"
	case warning.SeverityHigh:
		return "⚠️"
	case warning.SeverityMedium:
		return "⚡"
	default:
		return "ℹ️"
	}
}
