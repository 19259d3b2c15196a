// Package responses maps domain results and errors to HTTP payloads.
package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nyx-server/internal/domain/deck"
	"nyx-server/internal/domain/llm"
	"nyx-server/internal/domain/tool"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Attachment mirrors tool.Attachment on the wire.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// DispatchResponse is the outcome of one reasoning turn.
type DispatchResponse struct {
	Content    string      `json:"content"`
	ToolName   string      `json:"tool_name,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// TitleResponse carries a generated conversation title.
type TitleResponse struct {
	Title string `json:"title"`
}

// StarterResponse carries a suggested opening question.
type StarterResponse struct {
	Starter string `json:"starter"`
}

// DeckResponse wraps a generated presentation description.
type DeckResponse struct {
	Spec *deck.PresentationSpec `json:"spec"`
}

// ToolStatusEvent is one lifecycle update streamed during a dispatch.
type ToolStatusEvent struct {
	InvocationID string `json:"invocation_id"`
	Tool         string `json:"tool"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

// NewAttachment converts a domain attachment, nil-safe.
func NewAttachment(a *tool.Attachment) *Attachment {
	if a == nil {
		return nil
	}
	return &Attachment{Name: a.Name, URL: a.URL, Type: a.Type}
}

// HandleError maps domain errors to status codes. Quota exhaustion maps
// to 429, other provider failures and schema violations to 502, and
// anything unclassified to 500.
func HandleError(c *gin.Context, err error, message string) {
	if pe, ok := llm.AsProviderError(err); ok {
		if pe.Quota() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error:   "quota_exhausted",
				Message: "Limite de uso do provedor atingido. Tente novamente em instantes.",
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, ErrorResponse{
			Error:   "provider_error",
			Message: message,
		})
		return
	}

	var schemaErr *deck.SchemaError
	if errors.As(err, &schemaErr) {
		c.AbortWithStatusJSON(http.StatusBadGateway, ErrorResponse{
			Error:   "schema_error",
			Message: "A resposta do modelo não seguiu o formato esperado. Tente novamente.",
		})
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: message,
	})
}

// BadRequest reports a malformed client payload.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}
