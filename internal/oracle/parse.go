package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ExtractCommand pulls a Command out of raw model output. Models wrap JSON
// in markdown fences or emit slightly broken JSON often enough that both
// get handled here: fences are stripped first, and a failed parse goes
// through jsonrepair before giving up.
func ExtractCommand(text string) (Command, error) {
	clean := stripFences(strings.TrimSpace(text))

	var cmd Command
	if err := json.Unmarshal([]byte(clean), &cmd); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(clean)
		if repairErr != nil {
			return Command{}, fmt.Errorf("no parsable command in model output: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &cmd); err != nil {
			return Command{}, fmt.Errorf("no parsable command in model output: %w", err)
		}
	}

	if cmd.Action == "" {
		return Command{}, fmt.Errorf("model output carries no action")
	}
	return cmd, nil
}

func stripFences(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
