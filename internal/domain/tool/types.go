// Package tool defines the closed set of assistant tools and their executor.
package tool

import (
	"fmt"

	"nyx-server/internal/domain/llm"
)

// Name identifies a tool. The set is closed: every Name listed here has
// a registered handler, and unknown names are rejected at parse time.
type Name string

const (
	NameGenerateImage Name = "generateImageTool"
	NameGenerateVideo Name = "generateVideoTool"
	NameSearchWeb     Name = "searchWebTool"
	NameCalculator    Name = "calculatorTool"
)

// All lists every tool name. Used to verify handler registration.
func All() []Name {
	return []Name{NameGenerateImage, NameGenerateVideo, NameSearchWeb, NameCalculator}
}

// ParseName validates a model-emitted tool name against the closed set.
func ParseName(s string) (Name, error) {
	for _, n := range All() {
		if s == string(n) {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

// Call is a tool invocation request emitted by the model.
type Call struct {
	ID   string         `json:"id"`
	Name Name           `json:"name"`
	Args map[string]any `json:"args"`
}

// StringArg extracts a string argument, empty when absent.
func (c *Call) StringArg(key string) string {
	v, _ := c.Args[key].(string)
	return v
}

// Attachment is a media artifact produced by a tool.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"` // MIME type
}

// Result is the outcome of a successful tool execution. Media tools set
// Attachment; text tools set Content.
type Result struct {
	Attachment *Attachment `json:"attachment,omitempty"`
	Content    string      `json:"content,omitempty"`
}

// Status tracks the lifecycle of a tool invocation.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// validTransitions encodes the invocation lifecycle:
// queued -> running -> succeeded | failed.
var validTransitions = map[Status][]Status{
	StatusQueued:    {StatusRunning},
	StatusRunning:   {StatusSucceeded, StatusFailed},
	StatusSucceeded: {},
	StatusFailed:    {},
}

// Invocation is a single tool execution with its lifecycle state.
type Invocation struct {
	ID     string `json:"id"`
	Call   Call   `json:"call"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Transition moves the invocation to a new status, rejecting moves the
// lifecycle does not allow.
func (i *Invocation) Transition(to Status) error {
	for _, allowed := range validTransitions[i.Status] {
		if allowed == to {
			i.Status = to
			return nil
		}
	}
	return fmt.Errorf("invalid tool status transition %s -> %s", i.Status, to)
}

// Terminal reports whether the invocation has finished.
func (i *Invocation) Terminal() bool {
	return i.Status == StatusSucceeded || i.Status == StatusFailed
}

// Observer receives invocation status changes as they happen.
type Observer interface {
	ToolStatusChanged(inv Invocation)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(inv Invocation)

func (f ObserverFunc) ToolStatusChanged(inv Invocation) { f(inv) }

// ExecutionError wraps a tool failure. The dispatcher appends an
// apology to the turn while preserving any content generated so far.
type ExecutionError struct {
	Tool Name
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %s: %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Definitions returns the function declarations advertised to the model.
func Definitions() []llm.FunctionDeclaration {
	return []llm.FunctionDeclaration{
		{
			Name:        string(NameGenerateImage),
			Description: "Gera uma imagem a partir de uma descrição textual. Use quando o usuário pedir uma imagem, foto, desenho ou ilustração.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{
						"type":        "string",
						"description": "Descrição detalhada da imagem a ser gerada.",
					},
				},
				"required": []string{"prompt"},
			},
		},
		{
			Name:        string(NameGenerateVideo),
			Description: "Gera um vídeo curto a partir de uma descrição textual. Use quando o usuário pedir um vídeo ou animação.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{
						"type":        "string",
						"description": "Descrição detalhada do vídeo a ser gerado.",
					},
				},
				"required": []string{"prompt"},
			},
		},
		{
			Name:        string(NameSearchWeb),
			Description: "Pesquisa informações atuais na web. Use para fatos recentes, notícias ou dados que você não conhece.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Termos de busca.",
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        string(NameCalculator),
			Description: "Avalia expressões matemáticas com precisão. Use para qualquer cálculo aritmético.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"expression": map[string]any{
						"type":        "string",
						"description": "Expressão matemática, por exemplo '2 + 2 * 10'.",
					},
				},
				"required": []string{"expression"},
			},
		},
	}
}
