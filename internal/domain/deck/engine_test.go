package deck

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyx-server/internal/domain/llm"
)

type stubProvider struct {
	text string
	err  error
	req  llm.GenerateRequest
}

func (p *stubProvider) GenerateContent(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	p.req = req
	if p.err != nil {
		return nil, p.err
	}
	return &llm.GenerateResponse{Candidates: []llm.Candidate{{
		Content: llm.Content{Role: "model", Parts: []llm.Part{{Text: p.text}}},
	}}}, nil
}

func (p *stubProvider) GenerateImage(ctx context.Context, model, prompt string) (*llm.Media, error) {
	panic("not used")
}

func (p *stubProvider) StartMediaOperation(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error) {
	panic("not used")
}

func (p *stubProvider) CheckOperation(ctx context.Context, op *llm.Operation) (*llm.Operation, error) {
	panic("not used")
}

func (p *stubProvider) DownloadMedia(ctx context.Context, uri string) ([]byte, string, error) {
	panic("not used")
}

func TestEngineGenerate(t *testing.T) {
	payload, err := json.Marshal(validSpec(4))
	require.NoError(t, err)

	provider := &stubProvider{text: string(payload)}
	engine := NewEngine(provider, NewValidator(zerolog.Nop()), "layout-test", zerolog.Nop())

	spec, err := engine.Generate(context.Background(), "história do café", 4)
	require.NoError(t, err)

	assert.Len(t, spec.Slides, 5, "content slides plus the title slide")
	assert.NotEmpty(t, provider.req.ResponseSchema, "layout call must be schema constrained")
	assert.Contains(t, provider.req.Contents[0].Parts[0].Text, "história do café")
	assert.Contains(t, provider.req.Contents[0].Parts[0].Text, "concept_title_center")
	assert.Contains(t, provider.req.Contents[0].Parts[0].Text, "Playfair Display")
}

func TestEngineGenerateSlideCountMismatch(t *testing.T) {
	payload, err := json.Marshal(validSpec(2))
	require.NoError(t, err)

	provider := &stubProvider{text: string(payload)}
	engine := NewEngine(provider, NewValidator(zerolog.Nop()), "layout-test", zerolog.Nop())

	_, err = engine.Generate(context.Background(), "qualquer tema", 4)
	require.Error(t, err)

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestEngineGenerateProviderErrorPropagates(t *testing.T) {
	provider := &stubProvider{err: &llm.ProviderError{StatusCode: 429, Message: "quota"}}
	engine := NewEngine(provider, NewValidator(zerolog.Nop()), "layout-test", zerolog.Nop())

	_, err := engine.Generate(context.Background(), "tema", 3)
	require.Error(t, err)

	pe, ok := llm.AsProviderError(err)
	require.True(t, ok)
	assert.True(t, pe.Quota())
}

func TestResponseSchemaShape(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal(ResponseSchema(), &schema))

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, field := range []string{"presentation_title", "fontPair", "colorPalette", "slides"} {
		assert.Contains(t, props, field)
	}
}
