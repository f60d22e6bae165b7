package parse

import (
	"testing"

	"github.com/swiftconcur/parser/pkg/warning"
)

func TestXcodeBuild_DiagnosticShape(t *testing.T) {
	input := `{"type": "warning", "message": "actor-isolated property 'shared' can not be referenced from a non-isolated context"}`

	warns, err := NewXcodeBuildParser(2).Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}

	w := warns[0]
	if w.Type != warning.TypeActorIsolation {
		t.Errorf("type = %v, want actor_isolation", w.Type)
	}
	if w.Severity != warning.SeverityHigh {
		t.Errorf("severity = %v, want high", w.Severity)
	}
	if w.FilePath != "unknown" {
		t.Errorf("file = %q, want unknown default", w.FilePath)
	}
	if w.LineNumber != 0 {
		t.Errorf("line = %d, want 0 default", w.LineNumber)
	}
	if w.SuggestedFix == "" {
		t.Error("expected a suggested fix")
	}
}

func TestXcodeBuild_FullDiagnostic(t *testing.T) {
	input := `{"type": "warning", "message": "data race detected in concurrent access", "file": "/src/Store.swift", "line": 12, "column": 7, "severity": "warning"}`

	warns, err := NewXcodeBuildParser(2).Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}

	w := warns[0]
	if w.Type != warning.TypeDataRace || w.Severity != warning.SeverityCritical {
		t.Errorf("got (%v, %v), want (data_race, critical)", w.Type, w.Severity)
	}
	if w.FilePath != "/src/Store.swift" || w.LineNumber != 12 || col(w) != 7 {
		t.Errorf("location = %s:%d:%d, want /src/Store.swift:12:7", w.FilePath, w.LineNumber, col(w))
	}
	if w.ID != warning.ID("/src/Store.swift", 12, "data race detected in concurrent access") {
		t.Errorf("unexpected id %q", w.ID)
	}
}

func TestXcodeBuild_GenericShapeCamelCaseLocation(t *testing.T) {
	// Wrong value type for "line" knocks out the first shape; the camelCase
	// shape still decodes and supplies the location.
	input := `{"type": "warning", "message": "capture of 'self' requires 'Sendable' conformance", "line": "oops", "filePath": "/src/Net.swift", "lineNumber": 78, "columnNumber": 15}`

	warns, err := NewXcodeBuildParser(0).Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
	w := warns[0]
	if w.Type != warning.TypeSendableConformance {
		t.Errorf("type = %v, want sendable_conformance", w.Type)
	}
	if w.FilePath != "/src/Net.swift" || w.LineNumber != 78 || col(w) != 15 {
		t.Errorf("location = %s:%d:%d, want /src/Net.swift:78:15", w.FilePath, w.LineNumber, col(w))
	}
}

func TestXcodeBuild_SkipsNonWarnings(t *testing.T) {
	input := `{"type": "error", "message": "data race detected in concurrent access"}
{"type": "note", "message": "actor-isolated property 'x' can not be referenced"}
{"type": "Warning", "message": "data race detected"}`

	warns, err := NewXcodeBuildParser(0).Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 0 {
		t.Errorf("got %d warnings, want 0 (type match is case-sensitive)", len(warns))
	}
}

func TestXcodeBuild_SkipsNonConcurrencyWarnings(t *testing.T) {
	input := `{"type": "warning", "message": "variable 'unused' was never used"}
{"type": "warning", "message": "actor-isolated property 'shared' can not be referenced"}`

	warns, err := NewXcodeBuildParser(0).Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
	if warns[0].Type != warning.TypeActorIsolation {
		t.Errorf("type = %v, want actor_isolation", warns[0].Type)
	}
}

func TestXcodeBuild_SkipsMalformedLines(t *testing.T) {
	input := `not json at all
{"type": "warning"
{"message": "no type field"}
{"type": "warning", "message": "race condition in shared state"}
`

	warns, err := NewXcodeBuildParser(0).Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warns))
	}
	if warns[0].Type != warning.TypeDataRace {
		t.Errorf("type = %v, want data_race", warns[0].Type)
	}
}

func TestXcodeBuild_EmptyInput(t *testing.T) {
	warns, err := NewXcodeBuildParser(0).Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 0 {
		t.Errorf("got %d warnings, want 0", len(warns))
	}
}

// Parsing byte-identical input twice must yield identical ids in identical
// order.
func TestXcodeBuild_Idempotent(t *testing.T) {
	input := `{"type": "warning", "message": "data race in loop", "file": "/a.swift", "line": 1}
{"type": "warning", "message": "race condition on cache", "file": "/b.swift", "line": 2}`

	p := NewXcodeBuildParser(0)
	first, err := p.Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("got %d and %d warnings, want 2 and 2", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("id %d differs across parses: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

// Every line of warning type with data-race vocabulary yields exactly one
// critical warning per line.
func TestXcodeBuild_OneCriticalWarningPerLine(t *testing.T) {
	input := `{"type": "warning", "message": "data race in A", "file": "/a.swift", "line": 1}
{"type": "warning", "message": "data race in B", "file": "/b.swift", "line": 2}
{"type": "warning", "message": "data race in C", "file": "/c.swift", "line": 3}`

	warns, err := NewXcodeBuildParser(0).Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(warns) != 3 {
		t.Fatalf("got %d warnings, want 3", len(warns))
	}
	for _, w := range warns {
		if w.Severity != warning.SeverityCritical {
			t.Errorf("severity = %v, want critical", w.Severity)
		}
	}
}
