package render

import (
	"encoding/json"
	"fmt"

	"github.com/swiftconcur/parser/pkg/warning"
)

// slackItemLimit caps how many warnings a Slack message details.
const slackItemLimit = 10

// SlackFormatter emits a Slack Block Kit message body.
type SlackFormatter struct{}

func (SlackFormatter) Format(run *warning.Run) (string, error) {
	blocks := []map[string]any{
		{
			"type": "header",
			"text": map[string]any{
				"type": "plain_text",
				"text": "Swift Concurrency Warnings Report",
			},
		},
	}

	summary := "✅ No Swift concurrency warnings found!"
	if run.TotalWarnings > 0 {
		plural := "s"
		if run.TotalWarnings == 1 {
			plural = ""
		}
		summary = fmt.Sprintf("⚠️ Found %d Swift concurrency warning%s", run.TotalWarnings, plural)
	}
	blocks = append(blocks, section(summary))

	if len(run.Warnings) > 0 {
		blocks = append(blocks, map[string]any{"type": "divider"})

		for i, w := range run.Warnings {
			if i >= slackItemLimit {
				blocks = append(blocks, section(fmt.Sprintf("_... and %d more warnings_", len(run.Warnings)-slackItemLimit)))
				break
			}
			block := section(fmt.Sprintf("*%s* in `%s`\nLine %d: %s",
				TypeLabel(w.Type), w.FilePath, w.LineNumber, w.Message))
			block["accessory"] = map[string]any{
				"type":  "button",
				"text":  map[string]any{"type": "plain_text", "text": "View"},
				"value": w.ID,
			}
			blocks = append(blocks, block)
		}
	}

	out, err := json.MarshalIndent(map[string]any{"blocks": blocks}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode slack message: %w", err)
	}
	return string(out), nil
}

func section(text string) map[string]any {
	return map[string]any{
		"type": "section",
		"text": map[string]any{"type": "mrkdwn", "text": text},
	}
}
