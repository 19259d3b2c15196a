package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Provider defines the contract for calling the generative language API.
type Provider interface {
	// GenerateContent performs a single non-streaming model call. When the
	// request carries a ResponseSchema the model is constrained to emit one
	// JSON payload matching it.
	GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// GenerateImage produces a single image for the prompt and returns it as
	// an inline media blob.
	GenerateImage(ctx context.Context, model, prompt string) (*Media, error)

	// StartMediaOperation kicks off a long-running media generation job.
	StartMediaOperation(ctx context.Context, req MediaRequest) (*Operation, error)

	// CheckOperation refreshes the state of a long-running operation.
	CheckOperation(ctx context.Context, op *Operation) (*Operation, error)

	// DownloadMedia fetches generated media bytes from the provider's file
	// endpoint, authenticating with the API key query parameter.
	DownloadMedia(ctx context.Context, uri string) ([]byte, string, error)
}

// GenerateRequest mirrors the generateContent request shape.
type GenerateRequest struct {
	Model             string          `json:"-"`
	Contents          []Content       `json:"contents"`
	SystemInstruction *Content        `json:"systemInstruction,omitempty"`
	Tools             []Tool          `json:"tools,omitempty"`
	ResponseSchema    json.RawMessage `json:"-"`
}

// Content is one turn of model context: a role plus ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a single piece of content inside a turn.
type Part struct {
	Text             string            `json:"text,omitempty"`
	InlineData       *Blob             `json:"inlineData,omitempty"`
	FileData         *FileData         `json:"fileData,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

// Blob carries inline base64 media.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// FileData references media by URI.
type FileData struct {
	MIMEType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri"`
}

// FunctionCall is a tool directive emitted by the model.
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// FunctionResponse feeds a tool's output back into the model context.
type FunctionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// Tool groups the function declarations offered to the model.
type Tool struct {
	FunctionDeclarations []FunctionDeclaration `json:"functionDeclarations"`
}

// FunctionDeclaration describes one callable function contract.
type FunctionDeclaration struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// GenerateResponse captures the generateContent payload.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
	Usage      *Usage      `json:"usageMetadata,omitempty"`
}

// Candidate represents one completion candidate.
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// Usage contains token accounting metadata.
type Usage struct {
	PromptTokens    int `json:"promptTokenCount"`
	CandidateTokens int `json:"candidatesTokenCount"`
	TotalTokens     int `json:"totalTokenCount"`
}

// Text concatenates the text parts of the first candidate.
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Candidates) == 0 {
		return ""
	}
	var out string
	for _, p := range r.Candidates[0].Content.Parts {
		out += p.Text
	}
	return out
}

// FunctionCall returns the first tool directive of the first candidate, if any.
func (r *GenerateResponse) FunctionCall() *FunctionCall {
	if r == nil || len(r.Candidates) == 0 {
		return nil
	}
	for _, p := range r.Candidates[0].Content.Parts {
		if p.FunctionCall != nil {
			return p.FunctionCall
		}
	}
	return nil
}

// MediaRequest starts a long-running media generation job.
type MediaRequest struct {
	Model       string `json:"-"`
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// Media is one generated media artifact, either by URI or inline.
type Media struct {
	URI      string `json:"uri,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"` // base64, when returned inline
}

// Operation tracks a long-running media generation job.
type Operation struct {
	Name  string          `json:"name"`
	Done  bool            `json:"done"`
	Error *OperationError `json:"error,omitempty"`
	Media []Media         `json:"media,omitempty"`
}

// OperationError is the failure payload of a long-running operation.
type OperationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *OperationError) Error() string {
	return e.Message
}

// ProviderError marks a failed provider round trip. Callers use StatusCode to
// distinguish quota exhaustion from generic connectivity failures.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// Quota reports whether the provider rejected the call for rate/quota reasons.
func (e *ProviderError) Quota() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// AsProviderError unwraps err into a *ProviderError when possible.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
