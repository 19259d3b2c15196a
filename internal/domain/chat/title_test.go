package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyx-server/internal/domain/llm"
)

func TestGenerateTitle(t *testing.T) {
	cases := []struct {
		name  string
		model string
		want  string
	}{
		{"plain", "Planejando a viagem", "Planejando a viagem"},
		{"strips quotes", `"Receitas de bolo"`, "Receitas de bolo"},
		{"caps at five words", "Um título muito longo demais para caber", "Um título muito longo demais"},
		{"trims whitespace", "  Dúvida de matemática \n", "Dúvida de matemática"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &scriptedProvider{responses: []*llm.GenerateResponse{textResponse(tc.model)}}
			titler := NewTitler(provider, "title-model", zerolog.Nop())

			title, err := titler.GenerateTitle(context.Background(), "oi")
			require.NoError(t, err)
			assert.Equal(t, tc.want, title)
		})
	}
}

func TestGenerateTitleSendsFirstMessage(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.GenerateResponse{textResponse("Título")}}
	titler := NewTitler(provider, "title-model", zerolog.Nop())

	_, err := titler.GenerateTitle(context.Background(), "como funciona a fotossíntese?")
	require.NoError(t, err)
	require.Len(t, provider.requests, 1)
	assert.Equal(t, "title-model", provider.requests[0].Model)
	assert.Contains(t, provider.requests[0].Contents[0].Parts[0].Text, "como funciona a fotossíntese?")
}

func TestGenerateTitleProviderError(t *testing.T) {
	provider := &scriptedProvider{errs: []error{&llm.ProviderError{StatusCode: 429, Message: "quota"}}}
	titler := NewTitler(provider, "title-model", zerolog.Nop())

	_, err := titler.GenerateTitle(context.Background(), "oi")
	var pe *llm.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.True(t, pe.Quota())
}

func TestStarter(t *testing.T) {
	provider := &scriptedProvider{responses: []*llm.GenerateResponse{textResponse(" Qual é a sua cor favorita? ")}}
	titler := NewTitler(provider, "title-model", zerolog.Nop())

	starter, err := titler.Starter(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Qual é a sua cor favorita?", starter)
}
