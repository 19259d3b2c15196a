package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyx-server/internal/domain/llm"
)

func TestCleanImagePrompt(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		expected string
	}{
		{
			name:     "strips imperative framing",
			prompt:   "Gere uma imagem de um gato preto",
			expected: "um gato preto",
		},
		{
			name:     "strips polite framing",
			prompt:   "por favor, crie uma ilustração mostrando o sistema solar",
			expected: "o sistema solar",
		},
		{
			name:     "plain prompt untouched",
			prompt:   "um farol ao pôr do sol",
			expected: "um farol ao pôr do sol",
		},
		{
			name:     "framing only keeps original",
			prompt:   "gere uma imagem",
			expected: "gere uma imagem",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanImagePrompt(tt.prompt))
		})
	}
}

type imageProvider struct {
	fakeProvider
	media  *llm.Media
	err    error
	prompt string
}

func (p *imageProvider) GenerateImage(ctx context.Context, model, prompt string) (*llm.Media, error) {
	p.prompt = prompt
	return p.media, p.err
}

func TestImageGeneratorHandle(t *testing.T) {
	provider := &imageProvider{media: &llm.Media{MIMEType: "image/png", Data: "aW1n"}}
	gen := NewImageGenerator(provider, "imagen-test", zerolog.Nop())

	result, err := gen.Handle(context.Background(), &Call{
		Name: NameGenerateImage,
		Args: map[string]any{"prompt": "crie uma imagem de montanhas nevadas"},
	})
	require.NoError(t, err)

	assert.Equal(t, "montanhas nevadas", provider.prompt)
	require.NotNil(t, result.Attachment)
	assert.Equal(t, "data:image/png;base64,aW1n", result.Attachment.URL)
	assert.Equal(t, "image/png", result.Attachment.Type)
}

func TestImageGeneratorPropagatesProviderError(t *testing.T) {
	provider := &imageProvider{err: errors.New("quota exceeded")}
	gen := NewImageGenerator(provider, "imagen-test", zerolog.Nop())

	_, err := gen.Handle(context.Background(), &Call{
		Name: NameGenerateImage,
		Args: map[string]any{"prompt": "qualquer coisa"},
	})
	require.Error(t, err)
}

func TestImageGeneratorNoMediaReturnsError(t *testing.T) {
	provider := &imageProvider{}
	gen := NewImageGenerator(provider, "imagen-test", zerolog.Nop())

	result, err := gen.Handle(context.Background(), &Call{
		Name: NameGenerateImage,
		Args: map[string]any{"prompt": "um gato preto"},
	})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestImageGeneratorRequiresPrompt(t *testing.T) {
	gen := NewImageGenerator(&imageProvider{}, "imagen-test", zerolog.Nop())
	_, err := gen.Handle(context.Background(), &Call{Name: NameGenerateImage, Args: map[string]any{}})
	require.Error(t, err)
}
