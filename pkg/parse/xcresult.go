package parse

import (
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/swiftconcur/parser/pkg/classify"
	"github.com/swiftconcur/parser/pkg/snippet"
	"github.com/swiftconcur/parser/pkg/warning"
)

// ErrNoIssueArray reports a document that is not a result bundle: neither a
// top-level "_values" array nor a bare top-level array. This is the tree
// strategy's single structural check; it is a terminal error, not an empty
// result, so the dispatcher will not silently fall back on a document that
// claimed to be this format.
var ErrNoIssueArray = errors.New("no issue array at top level")

// locationPaths are the nested key paths that may hold the issue's URL,
// tried in order. The first is the current bundle layout; the rest cover
// older bundle revisions.
var locationPaths = [][]string{
	{"documentLocationInCreatingWorkspace", "url", "_value"},
	{"documentLocationInCreatingWorkspace", "url"},
	{"documentLocation", "url", "_value"},
	{"location", "url", "_value"},
}

// urlPatterns extract a file path and line number from the location URL.
// The line number key has three spellings across bundle revisions; starting
// line is preferred over ending line over a bare line=.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`file://(?P<path>[^#]+)#.*StartingLineNumber=(?P<line>\d+)`),
	regexp.MustCompile(`file://(?P<path>[^#]+)#.*EndingLineNumber=(?P<line>\d+)`),
	regexp.MustCompile(`file://(?P<path>[^#?]+).*?[?&#]line=(?P<line>\d+)`),
}

// XcresultParser parses a result-bundle JSON document: a single tree whose
// issue list sits under a reserved "_values" key (or as the bare top-level
// array). Issues that are not warnings, or whose location URL cannot be
// parsed, are skipped.
type XcresultParser struct {
	contextLines int
}

// NewXcresultParser returns a result-bundle parser attaching contextLines of
// source context to each warning.
func NewXcresultParser(contextLines int) *XcresultParser {
	return &XcresultParser{contextLines: contextLines}
}

func (p *XcresultParser) Name() string { return "xcresult" }

// Parse decodes the full document and walks its issue array. No column
// number is ever available in this format, and it predates fix suggestions,
// so warnings carry neither.
func (p *XcresultParser) Parse(data []byte) ([]warning.Warning, error) {
	issues, err := issueArray(data)
	if err != nil {
		return nil, err
	}

	warns := []warning.Warning{}
	for _, raw := range issues {
		var issue map[string]any
		if err := json.Unmarshal(raw, &issue); err != nil {
			continue
		}

		issueType, ok := stringField(issue, "issueType")
		if !ok || !strings.Contains(strings.ToLower(issueType), "warning") {
			continue
		}
		message, ok := stringField(issue, "message")
		if !ok {
			continue
		}

		url, ok := locationURL(issue)
		if !ok {
			continue
		}
		file, line, ok := parseLocationURL(url)
		if !ok {
			continue
		}

		wtype, severity := classify.Categorize(message)
		if wtype == warning.TypeUnknown {
			continue
		}

		warns = append(warns, warning.Warning{
			ID:          warning.ID(file, line, message),
			Type:        wtype,
			Severity:    severity,
			FilePath:    file,
			LineNumber:  line,
			Message:     message,
			CodeContext: snippet.Extract(file, line, p.contextLines),
		})
	}
	return warns, nil
}

// issueArray locates the issue collection. A decode failure or a document
// with neither layout is a structural error.
func issueArray(data []byte) ([]json.RawMessage, error) {
	var root struct {
		Values []json.RawMessage `json:"_values"`
	}
	if err := json.Unmarshal(data, &root); err == nil && root.Values != nil {
		return root.Values, nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}
	return nil, ErrNoIssueArray
}

// stringField reads a field that is either a wrapped {"_value": "..."}
// string or a plain string.
func stringField(obj map[string]any, key string) (string, bool) {
	switch v := obj[key].(type) {
	case string:
		return v, true
	case map[string]any:
		s, ok := v["_value"].(string)
		return s, ok
	default:
		return "", false
	}
}

// locationURL probes the known key paths for the issue's URL.
func locationURL(issue map[string]any) (string, bool) {
	for _, path := range locationPaths {
		if s, ok := lookupString(issue, path); ok {
			return s, true
		}
	}
	return "", false
}

func lookupString(obj map[string]any, path []string) (string, bool) {
	cur := any(obj)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = m[key]
		if !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

// parseLocationURL extracts the file path and line number from an
// Xcode-style location URL.
func parseLocationURL(url string) (string, int, bool) {
	for _, pat := range urlPatterns {
		m := pat.FindStringSubmatch(url)
		if m == nil {
			continue
		}
		line, err := strconv.Atoi(m[pat.SubexpIndex("line")])
		if err != nil {
			line = 0
		}
		return m[pat.SubexpIndex("path")], line, true
	}
	return "", 0, false
}
