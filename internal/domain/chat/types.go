// Package chat implements the conversational reasoning dispatcher.
package chat

import (
	"nyx-server/internal/domain/tool"
)

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one prior message of the conversation history.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// DispatchParams carries everything the dispatcher needs for one turn.
type DispatchParams struct {
	History         []Turn `json:"history"`
	Prompt          string `json:"prompt"`
	Context         string `json:"context,omitempty"` // extra grounding, e.g. document text
	CurrentDateTime string `json:"current_date_time"`
}

// Result is the dispatcher's answer for one turn. When the model called
// a tool, ToolCall records it and Attachment carries any produced media.
type Result struct {
	Content    string           `json:"content"`
	ToolCall   *tool.Call       `json:"tool_call,omitempty"`
	Attachment *tool.Attachment `json:"attachment,omitempty"`
}
