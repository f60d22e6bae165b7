package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftconcur/parser/pkg/warning"
)

func sampleRun() *warning.Run {
	run := warning.NewRun([]warning.Warning{
		{
			ID:         "/src/Store.swift:12:38",
			Type:       warning.TypeDataRace,
			Severity:   warning.SeverityCritical,
			FilePath:   "/src/Store.swift",
			LineNumber: 12,
			Message:    "data race detected on shared state",
			CodeContext: warning.CodeContext{
				Before: []string{"var total = 0"},
				Line:   "total += delta",
				After:  []string{"return total"},
			},
			SuggestedFix: "Use an actor to serialize access to shared mutable state",
		},
		{
			ID:          "/src/View.swift:3:20",
			Type:        warning.TypeActorIsolation,
			Severity:    warning.SeverityHigh,
			FilePath:    "/src/View.swift",
			LineNumber:  3,
			Message:     "property is actor-isolated",
			CodeContext: warning.EmptyContext(),
		},
	})
	run.CommitSHA = "abc123"
	run.Branch = "main"
	return run
}

func TestNew(t *testing.T) {
	for _, format := range []string{"json", "markdown", "slack", "terminal"} {
		f, err := New(format)
		require.NoError(t, err, format)
		require.NotNil(t, f, format)
	}

	_, err := New("xml")
	assert.Error(t, err)
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(sampleRun())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, float64(2), decoded["total_warnings"])
	assert.Equal(t, "abc123", decoded["commit_sha"])

	warns := decoded["warnings"].([]any)
	require.Len(t, warns, 2)
	first := warns[0].(map[string]any)
	assert.Equal(t, "data_race", first["warning_type"])
	assert.Equal(t, "critical", first["severity"])
}

// A warning with no context must still serialize its context arrays as [],
// never null.
func TestJSONFormatter_EmptyContextArrays(t *testing.T) {
	run := sampleRun()
	out, err := JSONFormatter{}.Format(run)
	require.NoError(t, err)

	assert.Contains(t, out, `"before": []`)
	assert.Contains(t, out, `"after": []`)
	assert.NotContains(t, out, `"before": null`)
	assert.NotContains(t, out, `"after": null`)
}

// An absent column serializes as an explicit null, a present one as its
// number; the key is always emitted.
func TestJSONFormatter_ColumnNumber(t *testing.T) {
	run := sampleRun()
	col := 7
	run.Warnings[0].ColumnNumber = &col

	out, err := JSONFormatter{}.Format(run)
	require.NoError(t, err)

	assert.Contains(t, out, `"column_number": 7`)
	assert.Contains(t, out, `"column_number": null`)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := MarkdownFormatter{}.Format(sampleRun())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# Swift Concurrency Warnings Report\n"))
	assert.Contains(t, out, "**Total Warnings:** 2")
	assert.Contains(t, out, "**Commit:** `abc123`")
	assert.Contains(t, out, "**Branch:** `main`")
	assert.Contains(t, out, "### 🚨 Data Race - /src/Store.swift")
	assert.Contains(t, out, "```swift\n  var total = 0\n> total += delta\n  return total\n```")
	assert.Contains(t, out, "**Suggested fix:** Use an actor")

	// The second warning has no context, so it gets no code fence.
	assert.Equal(t, 1, strings.Count(out, "```swift"))
}

func TestSlackFormatter(t *testing.T) {
	out, err := SlackFormatter{}.Format(sampleRun())
	require.NoError(t, err)

	var msg struct {
		Blocks []map[string]any `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &msg))

	// header, summary, divider, two warning sections
	require.Len(t, msg.Blocks, 5)
	assert.Equal(t, "header", msg.Blocks[0]["type"])
	assert.Equal(t, "divider", msg.Blocks[2]["type"])

	summary := msg.Blocks[1]["text"].(map[string]any)["text"].(string)
	assert.Equal(t, "⚠️ Found 2 Swift concurrency warnings", summary)

	first := msg.Blocks[3]
	assert.Contains(t, first["text"].(map[string]any)["text"], "*Data Race* in `/src/Store.swift`")
	accessory := first["accessory"].(map[string]any)
	assert.Equal(t, "/src/Store.swift:12:38", accessory["value"])
}

func TestSlackFormatter_NoWarnings(t *testing.T) {
	out, err := SlackFormatter{}.Format(warning.NewRun(nil))
	require.NoError(t, err)

	assert.Contains(t, out, "✅ No Swift concurrency warnings found!")
	assert.NotContains(t, out, "divider")
}

func TestSlackFormatter_TruncatesLongRuns(t *testing.T) {
	warns := make([]warning.Warning, 14)
	for i := range warns {
		warns[i] = warning.Warning{
			ID:          fmt.Sprintf("/src/F%d.swift:1:9", i),
			Type:        warning.TypeDataRace,
			Severity:    warning.SeverityCritical,
			FilePath:    fmt.Sprintf("/src/F%d.swift", i),
			LineNumber:  1,
			Message:     "data race",
			CodeContext: warning.EmptyContext(),
		}
	}

	out, err := SlackFormatter{}.Format(warning.NewRun(warns))
	require.NoError(t, err)

	assert.Contains(t, out, "_... and 4 more warnings_")
	assert.Equal(t, 10, strings.Count(out, `"type": "button"`))
}

func TestTerminalFormatter(t *testing.T) {
	out, err := NewTerminalFormatter().Format(sampleRun())
	require.NoError(t, err)

	assert.Contains(t, out, "Data Race")
	assert.Contains(t, out, "/src/Store.swift:12")
	assert.Contains(t, out, "data race detected on shared state")
}

func TestTypeLabel(t *testing.T) {
	assert.Equal(t, "Actor Isolation", TypeLabel(warning.TypeActorIsolation))
	assert.Equal(t, "Sendable Conformance", TypeLabel(warning.TypeSendableConformance))
	assert.Equal(t, "Data Race", TypeLabel(warning.TypeDataRace))
	assert.Equal(t, "Performance Regression", TypeLabel(warning.TypePerformanceRegression))
	assert.Equal(t, "Unknown", TypeLabel(warning.TypeUnknown))
}
