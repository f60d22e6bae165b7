package parse

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/swiftconcur/parser/pkg/classify"
	"github.com/swiftconcur/parser/pkg/snippet"
	"github.com/swiftconcur/parser/pkg/warning"
)

// warningLine matches a Swift compiler warning in plain xcodebuild console
// output, e.g.
//
//	/path/to/Item.swift:37:24: warning: main actor-isolated property 'count' can not be mutated from a Sendable closure
var warningLine = regexp.MustCompile(
	`^(?P<file>[^:]+\.swift):(?P<line>\d+):(?P<column>\d+):\s*warning:\s*(?P<message>.+)$`)

// RawLogParser parses free-text build logs line by line. It is the most
// permissive strategy and the terminal fallback in the dispatch chain: it
// never errors on malformed lines, only skips them.
type RawLogParser struct {
	contextLines int
}

// NewRawLogParser returns a raw log parser attaching contextLines of source
// context to each warning.
func NewRawLogParser(contextLines int) *RawLogParser {
	return &RawLogParser{contextLines: contextLines}
}

func (p *RawLogParser) Name() string { return "rawlog" }

// Parse scans the input for compiler warning lines.
func (p *RawLogParser) Parse(data []byte) ([]warning.Warning, error) {
	warns := []warning.Warning{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if w, ok := p.parseLine(strings.TrimSpace(scanner.Text())); ok {
			warns = append(warns, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning log: %w", err)
	}
	return warns, nil
}

func (p *RawLogParser) parseLine(line string) (warning.Warning, bool) {
	m := warningLine.FindStringSubmatch(line)
	if m == nil {
		return warning.Warning{}, false
	}

	file := m[warningLine.SubexpIndex("file")]
	lineNo, _ := strconv.Atoi(m[warningLine.SubexpIndex("line")])
	column, _ := strconv.Atoi(m[warningLine.SubexpIndex("column")])
	message := strings.TrimSpace(m[warningLine.SubexpIndex("message")])

	wtype, severity := classify.Categorize(message)
	if wtype == warning.TypeUnknown {
		return warning.Warning{}, false
	}

	return warning.Warning{
		ID:           warning.ID(file, lineNo, message),
		Type:         wtype,
		Severity:     severity,
		FilePath:     file,
		LineNumber:   lineNo,
		ColumnNumber: &column,
		Message:      message,
		CodeContext:  snippet.Extract(file, lineNo, p.contextLines),
		SuggestedFix: classify.SuggestFix(wtype, message),
	}, true
}
