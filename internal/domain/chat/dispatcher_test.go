package chat

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyx-server/internal/domain/llm"
	"nyx-server/internal/domain/tool"
)

type scriptedProvider struct {
	responses []*llm.GenerateResponse
	errs      []error
	requests  []llm.GenerateRequest
}

func (p *scriptedProvider) GenerateContent(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	p.requests = append(p.requests, req)
	i := len(p.requests) - 1
	if i < len(p.errs) && p.errs[i] != nil {
		return nil, p.errs[i]
	}
	return p.responses[i], nil
}

func (p *scriptedProvider) GenerateImage(ctx context.Context, model, prompt string) (*llm.Media, error) {
	return &llm.Media{MIMEType: "image/png", Data: "cGl4ZWxz"}, nil
}

func (p *scriptedProvider) StartMediaOperation(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error) {
	panic("not used")
}

func (p *scriptedProvider) CheckOperation(ctx context.Context, op *llm.Operation) (*llm.Operation, error) {
	panic("not used")
}

func (p *scriptedProvider) DownloadMedia(ctx context.Context, uri string) ([]byte, string, error) {
	panic("not used")
}

func textResponse(text string) *llm.GenerateResponse {
	return &llm.GenerateResponse{Candidates: []llm.Candidate{{
		Content: llm.Content{Role: "model", Parts: []llm.Part{{Text: text}}},
	}}}
}

func toolCallResponse(name string, args map[string]any) *llm.GenerateResponse {
	return &llm.GenerateResponse{Candidates: []llm.Candidate{{
		Content: llm.Content{Role: "model", Parts: []llm.Part{{
			FunctionCall: &llm.FunctionCall{Name: name, Args: args},
		}}},
	}}}
}

func newDispatcher(t *testing.T, provider llm.Provider, handlers map[tool.Name]tool.Handler) *Dispatcher {
	t.Helper()
	all := map[tool.Name]tool.Handler{
		tool.NameGenerateImage: tool.HandlerFunc(func(ctx context.Context, call *tool.Call) (*tool.Result, error) {
			return &tool.Result{Attachment: &tool.Attachment{Name: "imagem-gerada", URL: "data:image/png;base64,cGl4ZWxz", Type: "image/png"}}, nil
		}),
		tool.NameGenerateVideo: tool.HandlerFunc(func(ctx context.Context, call *tool.Call) (*tool.Result, error) {
			return &tool.Result{Attachment: &tool.Attachment{Name: "video-gerado", URL: "data:video/mp4;base64,bXA0", Type: "video/mp4"}}, nil
		}),
		tool.NameSearchWeb: tool.HandlerFunc(func(ctx context.Context, call *tool.Call) (*tool.Result, error) {
			return &tool.Result{Content: "resultado da busca"}, nil
		}),
		tool.NameCalculator: tool.HandlerFunc(func(ctx context.Context, call *tool.Call) (*tool.Result, error) {
			return &tool.Result{Content: "2 + 2 = 4"}, nil
		}),
	}
	for name, h := range handlers {
		all[name] = h
	}
	executor, err := tool.NewExecutor(all, time.Second, zerolog.Nop())
	require.NoError(t, err)
	return NewDispatcher(provider, executor, "gemini-test", zerolog.Nop())
}

func TestDispatchPlainText(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.GenerateResponse{textResponse("Olá! Como posso ajudar?")}}
	d := newDispatcher(t, provider, nil)

	result, err := d.Dispatch(context.Background(), DispatchParams{
		History:         []Turn{{Role: RoleUser, Text: "oi"}, {Role: RoleModel, Text: "oi!"}},
		Prompt:          "tudo bem?",
		CurrentDateTime: "2026-08-29 10:00",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Olá! Como posso ajudar?", result.Content)
	assert.Nil(t, result.ToolCall)
	assert.Nil(t, result.Attachment)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	require.Len(t, req.Contents, 3)
	assert.Equal(t, "tudo bem?", req.Contents[2].Parts[0].Text)
	require.NotNil(t, req.SystemInstruction)
	assert.Contains(t, req.SystemInstruction.Parts[0].Text, "2026-08-29 10:00")
	require.Len(t, req.Tools, 1)
	assert.Len(t, req.Tools[0].FunctionDeclarations, len(tool.All()))
}

func TestDispatchMediaToolCall(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.GenerateResponse{
		toolCallResponse(string(tool.NameGenerateImage), map[string]any{"prompt": "um gato"}),
	}}
	d := newDispatcher(t, provider, nil)

	var statuses []tool.Status
	observer := tool.ObserverFunc(func(inv tool.Invocation) {
		statuses = append(statuses, inv.Status)
	})

	result, err := d.Dispatch(context.Background(), DispatchParams{Prompt: "gere uma imagem de um gato"}, observer)
	require.NoError(t, err)

	require.NotNil(t, result.Attachment)
	assert.Equal(t, "image/png", result.Attachment.Type)
	require.NotNil(t, result.ToolCall)
	assert.Equal(t, tool.NameGenerateImage, result.ToolCall.Name)
	assert.Equal(t, "Aqui está a imagem que você pediu.", result.Content)
	assert.Equal(t, []tool.Status{tool.StatusQueued, tool.StatusRunning, tool.StatusSucceeded}, statuses)
}

func TestDispatchTextToolFeedsBack(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.GenerateResponse{
		toolCallResponse(string(tool.NameCalculator), map[string]any{"expression": "2 + 2"}),
		textResponse("O resultado é 4."),
	}}
	d := newDispatcher(t, provider, nil)

	result, err := d.Dispatch(context.Background(), DispatchParams{Prompt: "quanto é 2 + 2?"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "O resultado é 4.", result.Content)
	require.Len(t, provider.requests, 2)

	followUp := provider.requests[1]
	last := followUp.Contents[len(followUp.Contents)-1]
	require.NotNil(t, last.Parts[0].FunctionResponse)
	assert.Equal(t, string(tool.NameCalculator), last.Parts[0].FunctionResponse.Name)
	assert.Equal(t, "2 + 2 = 4", last.Parts[0].FunctionResponse.Response["output"])
}

func TestDispatchToolFailureAppendsApology(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.GenerateResponse{
		{Candidates: []llm.Candidate{{Content: llm.Content{Role: "model", Parts: []llm.Part{
			{Text: "Vou gerar a imagem."},
			{FunctionCall: &llm.FunctionCall{Name: string(tool.NameGenerateImage), Args: map[string]any{"prompt": "x"}}},
		}}}}},
	}}
	d := newDispatcher(t, provider, map[tool.Name]tool.Handler{
		tool.NameGenerateImage: tool.HandlerFunc(func(ctx context.Context, call *tool.Call) (*tool.Result, error) {
			return nil, assert.AnError
		}),
	})

	result, err := d.Dispatch(context.Background(), DispatchParams{Prompt: "gere uma imagem"}, nil)
	require.NoError(t, err, "tool failures must not fail the turn")

	assert.Contains(t, result.Content, "Vou gerar a imagem.")
	assert.Contains(t, result.Content, "Desculpe")
	assert.Nil(t, result.Attachment)
}

func TestDispatchUnknownToolDegrades(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.GenerateResponse{
		toolCallResponse("formatDiskTool", nil),
	}}
	d := newDispatcher(t, provider, nil)

	result, err := d.Dispatch(context.Background(), DispatchParams{Prompt: "faça algo"}, nil)
	require.NoError(t, err)
	assert.Contains(t, result.Content, "Desculpe")
}

func TestDispatchProviderErrorPropagates(t *testing.T) {
	provider := &scriptedProvider{
		responses: []*llm.GenerateResponse{nil},
		errs:      []error{&llm.ProviderError{StatusCode: 429, Message: "quota exceeded"}},
	}
	d := newDispatcher(t, provider, nil)

	_, err := d.Dispatch(context.Background(), DispatchParams{Prompt: "oi"}, nil)
	require.Error(t, err)

	pe, ok := llm.AsProviderError(err)
	require.True(t, ok)
	assert.True(t, pe.Quota())
}
