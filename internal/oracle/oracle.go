package oracle

import "context"

// Action values the oracle may return.
const (
	ActionList    = "list"
	ActionFind    = "find"
	ActionMove    = "move"
	ActionDelete  = "delete"
	ActionExecute = "execute"
	ActionError   = "error"
)

// Command is the oracle's structured output. Every field is untrusted
// input: path fields must pass through the resolver and the safety gate
// before any filesystem access, whatever their origin.
type Command struct {
	Action          string `json:"action"`
	FileType        string `json:"file_type,omitempty"`
	SourcePath      string `json:"source_path,omitempty"`
	DestinationPath string `json:"destination_path,omitempty"`
	Message         string `json:"message,omitempty"`
}

// Mutating reports whether the command changes filesystem state or runs a
// process, i.e. requires user confirmation before dispatch.
func (c Command) Mutating() bool {
	switch c.Action {
	case ActionMove, ActionDelete, ActionExecute:
		return true
	}
	return false
}

// Oracle maps a free-text instruction to a structured command. The real
// implementation calls a language model; tests inject a deterministic one.
type Oracle interface {
	Translate(ctx context.Context, instruction string) (Command, error)
}
