package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"nyx-server/internal/domain/llm"
)

const titlePrompt = `Crie um título curto, com no máximo 5 palavras, em português do Brasil, para uma conversa que começa com a mensagem abaixo. Responda apenas com o título, sem aspas e sem pontuação final.

Mensagem: %s`

const starterPrompt = `Sugira uma única pergunta curta e interessante, em português do Brasil, que um usuário poderia fazer para começar uma conversa com uma assistente de IA. Responda apenas com a pergunta.`

// Titler generates conversation titles and starter suggestions.
type Titler struct {
	provider llm.Provider
	model    string
	logger   zerolog.Logger
}

func NewTitler(provider llm.Provider, model string, logger zerolog.Logger) *Titler {
	return &Titler{
		provider: provider,
		model:    model,
		logger:   logger.With().Str("component", "titler").Logger(),
	}
}

// GenerateTitle produces a short title for a conversation opened with
// firstMessage. The result is capped at five words.
func (t *Titler) GenerateTitle(ctx context.Context, firstMessage string) (string, error) {
	resp, err := t.provider.GenerateContent(ctx, llm.GenerateRequest{
		Model: t.model,
		Contents: []llm.Content{{
			Role:  string(RoleUser),
			Parts: []llm.Part{{Text: fmt.Sprintf(titlePrompt, firstMessage)}},
		}},
	})
	if err != nil {
		return "", err
	}

	title := strings.Trim(strings.TrimSpace(resp.Text()), `"'`)
	words := strings.Fields(title)
	if len(words) > 5 {
		words = words[:5]
	}
	return strings.Join(words, " "), nil
}

// Starter suggests an opening question for an empty conversation.
func (t *Titler) Starter(ctx context.Context) (string, error) {
	resp, err := t.provider.GenerateContent(ctx, llm.GenerateRequest{
		Model: t.model,
		Contents: []llm.Content{{
			Role:  string(RoleUser),
			Parts: []llm.Part{{Text: starterPrompt}},
		}},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}
