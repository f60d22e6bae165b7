// Package parse turns raw build output into normalized concurrency warnings.
//
// Three mutually substitutable strategies cover the input encodings an Apple
// toolchain build can produce:
//
//   - XcodeBuildParser — newline-delimited JSON diagnostics
//   - XcresultParser   — a nested result-bundle JSON document
//   - RawLogParser     — free-text compiler output
//
// The Dispatcher sniffs the input, runs a primary strategy, and falls back
// to the raw log strategy when the primary finds nothing.
package parse

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/swiftconcur/parser/pkg/warning"
)

// Parser is a single parsing strategy over a fully buffered input.
// Strategies are best effort per record: malformed records are skipped, and
// only structural failures (unreadable input, a result bundle with no issue
// array) surface as errors.
type Parser interface {
	Name() string
	Parse(data []byte) ([]warning.Warning, error)
}

// xcresultMarker is the result-bundle collection key the sniffer looks for.
const xcresultMarker = "_values"

// Dispatcher selects parsing strategies and runs the fallback chain.
type Dispatcher struct {
	contextLines int
	log          *slog.Logger
}

// NewDispatcher returns a dispatcher whose strategies attach contextLines of
// source context to each warning.
func NewDispatcher(contextLines int) *Dispatcher {
	return &Dispatcher{contextLines: contextLines, log: slog.Default()}
}

// WithLogger replaces the dispatcher's logger.
func (d *Dispatcher) WithLogger(log *slog.Logger) *Dispatcher {
	d.log = log
	return d
}

// Parse buffers r in full and dispatches on the content. Buffering up front
// is what makes the second pass possible on single-pass pipes.
func (d *Dispatcher) Parse(r io.Reader) ([]warning.Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return d.ParseBytes(data)
}

// ParseBytes runs the strategy chain over a buffered input. A non-empty
// result from any strategy is final. An empty result moves to the next
// strategy in the chain; the last strategy's result is final even if empty.
// Emptiness is the only failure signal shared by all three formats, so
// "wrong format" and "right format, zero warnings" are deliberately treated
// the same.
func (d *Dispatcher) ParseBytes(data []byte) ([]warning.Warning, error) {
	chain := d.chain(data)

	var warns []warning.Warning
	for i, p := range chain {
		var err error
		warns, err = p.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name(), err)
		}
		d.log.Debug("strategy finished", "strategy", p.Name(), "warnings", len(warns))
		if len(warns) > 0 {
			return warns, nil
		}
		if i < len(chain)-1 {
			d.log.Debug("empty result, falling back", "next", chain[i+1].Name())
		}
	}
	return warns, nil
}

// chain sniffs the input and returns the ordered strategy list: the
// structured guess first, the permissive raw log parser as terminal
// fallback. Content starting with '{' and containing the result-bundle
// collection marker is treated as an xcresult document; any other content is
// assumed to be line-oriented JSON diagnostics until proven empty.
func (d *Dispatcher) chain(data []byte) []Parser {
	trimmed := bytes.TrimSpace(data)

	var primary Parser
	if len(trimmed) > 0 && trimmed[0] == '{' && bytes.Contains(trimmed, []byte(xcresultMarker)) {
		primary = NewXcresultParser(d.contextLines)
	} else {
		primary = NewXcodeBuildParser(d.contextLines)
	}
	return []Parser{primary, NewRawLogParser(d.contextLines)}
}
