package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Tool names exposed to the LLM. The three resource tools double as
// locate tools when given a "filter" argument.
const (
	ToolGetScripture  = "get_scripture_passage"
	ToolGetNotes      = "get_translation_notes"
	ToolGetQuestions  = "get_translation_questions"
	ToolGetWord       = "get_translation_word"
	ToolGetAcademy    = "get_translation_academy"
	ToolSearchAll     = "search_all"
	ToolCreateNote    = "create_note"
	ToolGetUserNotes  = "get_notes"
	ToolUpdateNote    = "update_note"
	ToolDeleteNote    = "delete_note"
)

// KnownTool reports whether name is one of the declared tool names.
func KnownTool(name string) bool {
	switch name {
	case ToolGetScripture, ToolGetNotes, ToolGetQuestions, ToolGetWord,
		ToolGetAcademy, ToolSearchAll, ToolCreateNote, ToolGetUserNotes,
		ToolUpdateNote, ToolDeleteNote:
		return true
	}
	return false
}

// ToolCall is the persisted signature of one executed tool invocation:
// the tool name and its arguments, never the resolved result. Replay
// re-executes signatures against live endpoints, so Args must be
// sufficient to regenerate the same class of result.
type ToolCall struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// StringArg returns the named argument as a trimmed string.
// Missing or non-string arguments yield "".
func (c ToolCall) StringArg(name string) string {
	v, ok := c.Args[name]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Mutating reports whether the call writes user note state. Mutating
// calls are recorded in history but never re-executed on replay.
func (c ToolCall) Mutating() bool {
	switch c.Tool {
	case ToolCreateNote, ToolUpdateNote, ToolDeleteNote:
		return true
	}
	return false
}

// EncodeToolCalls serializes signatures for the message JSONB column.
// A nil slice encodes as an empty array so the column is never NULL.
func EncodeToolCalls(calls []ToolCall) ([]byte, error) {
	if calls == nil {
		calls = []ToolCall{}
	}
	data, err := json.Marshal(calls)
	if err != nil {
		return nil, fmt.Errorf("encode tool calls: %w", err)
	}
	return data, nil
}

// DecodeToolCalls parses the message JSONB column back into signatures.
func DecodeToolCalls(data []byte) ([]ToolCall, error) {
	if len(data) == 0 {
		return []ToolCall{}, nil
	}
	var calls []ToolCall
	if err := json.Unmarshal(data, &calls); err != nil {
		return nil, fmt.Errorf("decode tool calls: %w", err)
	}
	if calls == nil {
		calls = []ToolCall{}
	}
	return calls, nil
}
