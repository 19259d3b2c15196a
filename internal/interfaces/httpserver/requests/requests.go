// Package requests defines the HTTP request payloads.
package requests

import "encoding/json"

// Turn is one prior message of the conversation.
type Turn struct {
	Role string `json:"role" binding:"required,oneof=user model"`
	Text string `json:"text" binding:"required"`
}

// DispatchRequest starts one reasoning turn.
type DispatchRequest struct {
	Prompt  string `json:"prompt" binding:"required"`
	History []Turn `json:"history"`
	Context string `json:"context"`
	Stream  bool   `json:"stream"`
}

// TitleRequest asks for a conversation title.
type TitleRequest struct {
	FirstMessage string `json:"first_message" binding:"required"`
}

// DeckRequest asks for a generated presentation description.
type DeckRequest struct {
	Topic     string `json:"topic" binding:"required"`
	NumSlides int    `json:"num_slides" binding:"required"`
}

// DeckExportRequest renders a previously generated deck to a file. Spec
// is the payload returned by deck generation, passed back verbatim.
type DeckExportRequest struct {
	Spec json.RawMessage `json:"spec" binding:"required"`
}
