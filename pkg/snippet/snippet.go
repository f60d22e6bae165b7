// Package snippet extracts source lines around a diagnostic location.
// Extraction is best effort: an unreadable file or out-of-range line yields
// an empty context, never an error.
package snippet

import (
	"bufio"
	"os"

	"github.com/swiftconcur/parser/pkg/warning"
)

// Extract reads the file at path and returns up to width lines strictly
// before the 1-based target line, the line itself, and up to width lines
// strictly after, clipped at file boundaries.
func Extract(path string, line, width int) warning.CodeContext {
	ctx := warning.EmptyContext()

	f, err := os.Open(path)
	if err != nil {
		return ctx
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil {
		return ctx
	}

	if line < 1 || line > len(lines) {
		return ctx
	}
	target := line - 1

	start := target - width
	if start < 0 {
		start = 0
	}
	end := target + 1 + width
	if end > len(lines) {
		end = len(lines)
	}

	ctx.Before = append(ctx.Before, lines[start:target]...)
	ctx.Line = lines[target]
	ctx.After = append(ctx.After, lines[target+1:end]...)
	return ctx
}
