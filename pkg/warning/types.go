// Package warning defines the normalized warning model shared by every
// parsing strategy, plus the filtering and threshold collaborators that
// consume the final warning list.
package warning

import "fmt"

// Type classifies a concurrency warning.
type Type string

const (
	// TypeActorIsolation covers actor-isolated member access violations,
	// main-actor violations, and task lifecycle issues.
	TypeActorIsolation Type = "actor_isolation"
	// TypeSendableConformance covers missing or violated Sendable guarantees.
	TypeSendableConformance Type = "sendable_conformance"
	// TypeDataRace covers data races and concurrent mutation of shared state.
	TypeDataRace Type = "data_race"
	// TypePerformanceRegression covers async-path overhead and deadlock risks.
	TypePerformanceRegression Type = "performance_regression"
	// TypeUnknown marks a message with no concurrency vocabulary. Warnings of
	// this type are filtered out before construction and never reach output.
	TypeUnknown Type = "unknown"
)

// Severity ranks a warning. It is derived from the classified Type and is
// never set independently.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// CodeContext holds source lines around a diagnostic: up to N lines before,
// the diagnostic line itself, and up to N lines after. All fields are empty
// when the source file could not be read or the line was out of range.
type CodeContext struct {
	Before []string `json:"before"`
	Line   string   `json:"line"`
	After  []string `json:"after"`
}

// EmptyContext returns an all-empty context with non-nil slices so the JSON
// output carries [] rather than null, matching the wire format consumers
// already parse.
func EmptyContext() CodeContext {
	return CodeContext{Before: []string{}, After: []string{}}
}

// Warning is the normalized unit of output produced by a parser.
type Warning struct {
	ID           string      `json:"id"`
	Type         Type        `json:"warning_type"`
	Severity     Severity    `json:"severity"`
	FilePath     string      `json:"file_path"`
	LineNumber   int         `json:"line_number"`
	ColumnNumber *int        `json:"column_number"` // null when the format carries no column
	Message      string      `json:"message"`
	CodeContext  CodeContext `json:"code_context"`
	SuggestedFix string      `json:"suggested_fix,omitempty"`
}

// ID derives the stable warning identifier from a diagnostic's location and
// message length. Two parses of byte-identical input yield identical ids.
func ID(filePath string, line int, message string) string {
	return fmt.Sprintf("%s:%d:%d", filePath, line, len(message))
}
