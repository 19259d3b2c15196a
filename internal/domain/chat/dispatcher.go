package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"nyx-server/internal/domain/llm"
	"nyx-server/internal/domain/tool"
)

const toolApology = "\n\nDesculpe, tive um problema ao executar essa ação. Pode tentar novamente?"

const systemPersona = `Você é a Nyx, uma assistente de IA prestativa e direta.
Responda sempre em português do Brasil, de forma clara e natural.
Use as ferramentas disponíveis quando o pedido exigir: imagens, vídeos, pesquisas na web ou cálculos.
Nunca invente resultados de ferramentas.`

// Dispatcher runs one reasoning turn: a model call that may emit a tool
// call, followed by the tool's execution.
type Dispatcher struct {
	provider llm.Provider
	executor *tool.Executor
	model    string
	logger   zerolog.Logger
}

func NewDispatcher(provider llm.Provider, executor *tool.Executor, model string, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		provider: provider,
		executor: executor,
		model:    model,
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}
}

// Dispatch handles a single conversation turn. Tool failures degrade to
// an apologetic sentence appended to whatever content the model already
// produced; provider failures (including quota exhaustion) propagate to
// the caller untouched so the transport layer can map them.
func (d *Dispatcher) Dispatch(ctx context.Context, params DispatchParams, observer tool.Observer) (*Result, error) {
	contents := d.buildContents(params)

	resp, err := d.provider.GenerateContent(ctx, llm.GenerateRequest{
		Model:             d.model,
		Contents:          contents,
		SystemInstruction: d.systemInstruction(params),
		Tools:             []llm.Tool{{FunctionDeclarations: tool.Definitions()}},
	})
	if err != nil {
		return nil, err
	}

	fc := resp.FunctionCall()
	if fc == nil {
		return &Result{Content: resp.Text()}, nil
	}

	name, err := tool.ParseName(fc.Name)
	if err != nil {
		d.logger.Warn().Str("tool", fc.Name).Msg("model emitted unknown tool")
		return &Result{Content: strings.TrimSpace(resp.Text() + toolApology)}, nil
	}

	call := tool.Call{Name: name, Args: fc.Args}
	result, err := d.executor.Execute(ctx, call, observer)
	if err != nil {
		var execErr *tool.ExecutionError
		if errors.As(err, &execErr) {
			// Preserve whatever the model said before the tool failed.
			return &Result{
				Content:  strings.TrimSpace(resp.Text() + toolApology),
				ToolCall: &call,
			}, nil
		}
		return nil, err
	}

	out := &Result{
		Content:    resp.Text(),
		ToolCall:   &call,
		Attachment: result.Attachment,
	}

	// Text tools feed their output back so the model can compose the answer.
	if result.Content != "" {
		followUp, err := d.composeWithToolOutput(ctx, contents, params, fc, result.Content)
		if err != nil {
			return nil, err
		}
		out.Content = followUp
	} else if out.Content == "" {
		out.Content = defaultCaption(name)
	}

	return out, nil
}

func (d *Dispatcher) composeWithToolOutput(ctx context.Context, contents []llm.Content, params DispatchParams, fc *llm.FunctionCall, output string) (string, error) {
	contents = append(contents,
		llm.Content{Role: string(RoleModel), Parts: []llm.Part{{FunctionCall: fc}}},
		llm.Content{Role: string(RoleUser), Parts: []llm.Part{{
			FunctionResponse: &llm.FunctionResponse{
				Name:     fc.Name,
				Response: map[string]any{"output": output},
			},
		}}},
	)

	resp, err := d.provider.GenerateContent(ctx, llm.GenerateRequest{
		Model:             d.model,
		Contents:          contents,
		SystemInstruction: d.systemInstruction(params),
		Tools:             []llm.Tool{{FunctionDeclarations: tool.Definitions()}},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (d *Dispatcher) systemInstruction(params DispatchParams) *llm.Content {
	text := systemPersona
	if params.CurrentDateTime != "" {
		text += fmt.Sprintf("\nData e hora atuais: %s.", params.CurrentDateTime)
	}
	if params.Context != "" {
		text += fmt.Sprintf("\n\nContexto adicional fornecido pelo usuário:\n%s", params.Context)
	}
	return &llm.Content{Parts: []llm.Part{{Text: text}}}
}

func (d *Dispatcher) buildContents(params DispatchParams) []llm.Content {
	contents := make([]llm.Content, 0, len(params.History)+1)
	for _, turn := range params.History {
		contents = append(contents, llm.Content{
			Role:  string(turn.Role),
			Parts: []llm.Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, llm.Content{
		Role:  string(RoleUser),
		Parts: []llm.Part{{Text: params.Prompt}},
	})
	return contents
}

func defaultCaption(name tool.Name) string {
	switch name {
	case tool.NameGenerateImage:
		return "Aqui está a imagem que você pediu."
	case tool.NameGenerateVideo:
		return "Aqui está o vídeo que você pediu."
	default:
		return ""
	}
}
