package parse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/swiftconcur/parser/pkg/classify"
	"github.com/swiftconcur/parser/pkg/snippet"
	"github.com/swiftconcur/parser/pkg/warning"
)

// unknownFile is the file path recorded when a diagnostic carries none.
const unknownFile = "unknown"

// xcDiagnostic is the current xcodebuild JSON diagnostic record.
type xcDiagnostic struct {
	Type                string `json:"type"`
	Message             string `json:"message"`
	File                string `json:"file"`
	Line                int    `json:"line"`
	Column              *int   `json:"column"`
	Severity            string `json:"severity"`
	CharacterRangeStart int    `json:"characterRangeStart"`
	CharacterRangeEnd   int    `json:"characterRangeEnd"`
	CategoryIdent       string `json:"categoryIdent"`
}

// xcMessage is the older xcodebuild record shape with camelCase location keys.
type xcMessage struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	FilePath     string `json:"filePath"`
	LineNumber   int    `json:"lineNumber"`
	ColumnNumber *int   `json:"columnNumber"`
}

// XcodeBuildParser parses newline-delimited JSON diagnostics, one record per
// line. Unparseable lines and records without the required fields are
// skipped, never an error.
type XcodeBuildParser struct {
	contextLines int
}

// NewXcodeBuildParser returns a JSON-lines parser attaching contextLines of
// source context to each warning.
func NewXcodeBuildParser(contextLines int) *XcodeBuildParser {
	return &XcodeBuildParser{contextLines: contextLines}
}

func (p *XcodeBuildParser) Name() string { return "xcodebuild" }

// Parse scans the input line by line, best effort per line.
func (p *XcodeBuildParser) Parse(data []byte) ([]warning.Warning, error) {
	warns := []warning.Warning{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if w, ok := p.parseLine(line); ok {
			warns = append(warns, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning diagnostics: %w", err)
	}
	return warns, nil
}

// parseLine tries the three record shapes in order. The first shape that
// decodes cleanly decides the line's fate; only a decode failure moves on to
// the next shape.
func (p *XcodeBuildParser) parseLine(line []byte) (warning.Warning, bool) {
	var diag xcDiagnostic
	if err := json.Unmarshal(line, &diag); err == nil && diag.Type != "" && diag.Message != "" {
		return p.accept(diag.Type, diag.Message, diag.File, diag.Line, diag.Column)
	}

	var msg xcMessage
	if err := json.Unmarshal(line, &msg); err == nil && msg.Type != "" && msg.Message != "" {
		return p.accept(msg.Type, msg.Message, msg.FilePath, msg.LineNumber, msg.ColumnNumber)
	}

	return p.parseGeneric(line)
}

// parseGeneric probes arbitrary JSON for type/message plus either naming
// convention for the location fields.
func (p *XcodeBuildParser) parseGeneric(line []byte) (warning.Warning, bool) {
	var obj map[string]any
	if err := json.Unmarshal(line, &obj); err != nil {
		return warning.Warning{}, false
	}

	msgType, ok := obj["type"].(string)
	if !ok {
		return warning.Warning{}, false
	}
	message, ok := obj["message"].(string)
	if !ok {
		return warning.Warning{}, false
	}

	file := stringOr(obj, "file", "filePath")
	lineNo := intOr(obj, "line", "lineNumber")
	column := intPtr(obj, "column", "columnNumber")

	return p.accept(msgType, message, file, lineNo, column)
}

// accept applies the shared admission rules: the record must be of type
// "warning" (case-sensitive) and classify to a concurrency category. A nil
// column means the record carried none.
func (p *XcodeBuildParser) accept(msgType, message, file string, line int, column *int) (warning.Warning, bool) {
	if msgType != "warning" {
		return warning.Warning{}, false
	}

	wtype, severity := classify.Categorize(message)
	if wtype == warning.TypeUnknown {
		return warning.Warning{}, false
	}

	if file == "" {
		file = unknownFile
	}

	return warning.Warning{
		ID:           warning.ID(file, line, message),
		Type:         wtype,
		Severity:     severity,
		FilePath:     file,
		LineNumber:   line,
		ColumnNumber: column,
		Message:      message,
		CodeContext:  snippet.Extract(file, line, p.contextLines),
		SuggestedFix: classify.SuggestFix(wtype, message),
	}, true
}

func stringOr(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := obj[k].(string); ok {
			return s
		}
	}
	return ""
}

func intOr(obj map[string]any, keys ...string) int {
	for _, k := range keys {
		if f, ok := obj[k].(float64); ok {
			return int(f)
		}
	}
	return 0
}

func intPtr(obj map[string]any, keys ...string) *int {
	for _, k := range keys {
		if f, ok := obj[k].(float64); ok {
			n := int(f)
			return &n
		}
	}
	return nil
}
