package render

import (
	"encoding/json"
	"fmt"

	"github.com/swiftconcur/parser/pkg/warning"
)

// JSONFormatter emits the run as pretty-printed JSON for automation.
type JSONFormatter struct{}

func (JSONFormatter) Format(run *warning.Run) (string, error) {
	out, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run: %w", err)
	}
	return string(out), nil
}
