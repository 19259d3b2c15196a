package tool

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"nyx-server/internal/domain/llm"
)

// promptStrips removes conversational framing the model tends to echo
// into image prompts, leaving only the scene description.
var promptStrips = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(por favor[,\s]*)?(gere|crie|faça|desenhe|produza)\s+`),
	regexp.MustCompile(`(?i)^\s*(uma|um)\s+(imagem|foto|fotografia|ilustração|desenho|figura)\s+(de|do|da|dos|das|que mostre|mostrando|representando)?\s*`),
	regexp.MustCompile(`(?i)^\s*(uma|um)\s+(imagem|foto|fotografia|ilustração|desenho|figura)\s*`),
}

// CleanImagePrompt strips request framing from an image prompt.
func CleanImagePrompt(prompt string) string {
	cleaned := strings.TrimSpace(prompt)
	for _, re := range promptStrips {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return strings.TrimSpace(prompt)
	}
	return cleaned
}

// ImageGenerator produces images from text prompts.
type ImageGenerator struct {
	provider llm.Provider
	model    string
	logger   zerolog.Logger
}

func NewImageGenerator(provider llm.Provider, model string, logger zerolog.Logger) *ImageGenerator {
	return &ImageGenerator{
		provider: provider,
		model:    model,
		logger:   logger.With().Str("component", "image_tool").Logger(),
	}
}

func (g *ImageGenerator) Handle(ctx context.Context, call *Call) (*Result, error) {
	prompt := CleanImagePrompt(call.StringArg("prompt"))
	if prompt == "" {
		return nil, fmt.Errorf("image generation requires a prompt")
	}

	media, err := g.provider.GenerateImage(ctx, g.model, prompt)
	if err != nil {
		return nil, err
	}
	if media == nil {
		return nil, fmt.Errorf("image generation returned no media")
	}

	url := media.URI
	if url == "" {
		url = fmt.Sprintf("data:%s;base64,%s", media.MIMEType, media.Data)
	}

	return &Result{
		Attachment: &Attachment{
			Name: "imagem-gerada",
			URL:  url,
			Type: media.MIMEType,
		},
	}, nil
}
