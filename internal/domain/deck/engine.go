package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog"

	"nyx-server/internal/domain/llm"
	"nyx-server/internal/infrastructure/metrics"
)

var (
	responseSchemaOnce sync.Once
	responseSchema     json.RawMessage
)

// ResponseSchema returns the JSON schema the layout model is
// constrained to. Reflected once from PresentationSpec.
func ResponseSchema() json.RawMessage {
	responseSchemaOnce.Do(func() {
		reflector := jsonschema.Reflector{
			DoNotReference: true,
			Anonymous:      true,
		}
		schema := reflector.Reflect(&PresentationSpec{})
		schema.Version = ""
		b, err := json.Marshal(schema)
		if err != nil {
			panic(fmt.Sprintf("deck: reflecting response schema: %v", err))
		}
		responseSchema = b
	})
	return responseSchema
}

// Engine produces a validated PresentationSpec through one
// schema-constrained model call. Single round trip, no retries.
type Engine struct {
	provider  llm.Provider
	validator *Validator
	model     string
	logger    zerolog.Logger
}

func NewEngine(provider llm.Provider, validator *Validator, model string, logger zerolog.Logger) *Engine {
	return &Engine{
		provider:  provider,
		validator: validator,
		model:     model,
		logger:    logger.With().Str("component", "deck_engine").Logger(),
	}
}

// Generate builds the layout prompt for topic, issues the model call and
// validates the returned payload. numContentSlides excludes the title
// slide; callers clamp it before reaching here.
func (e *Engine) Generate(ctx context.Context, topic string, numContentSlides int) (*PresentationSpec, error) {
	prompt := ComposeLayoutPrompt(topic, numContentSlides)

	resp, err := e.provider.GenerateContent(ctx, llm.GenerateRequest{
		Model: e.model,
		Contents: []llm.Content{{
			Role:  "user",
			Parts: []llm.Part{{Text: prompt}},
		}},
		ResponseSchema: ResponseSchema(),
	})
	if err != nil {
		metrics.DeckGenerationsTotal.WithLabelValues("provider_error").Inc()
		return nil, err
	}

	spec, err := e.validator.Validate([]byte(resp.Text()), numContentSlides)
	if err != nil {
		metrics.DeckGenerationsTotal.WithLabelValues("schema_error").Inc()
		e.logger.Error().Err(err).Str("topic", topic).Msg("deck payload failed validation")
		return nil, err
	}

	metrics.DeckGenerationsTotal.WithLabelValues("success").Inc()
	e.logger.Info().
		Str("topic", topic).
		Int("slides", len(spec.Slides)).
		Str("title", spec.PresentationTitle).
		Msg("deck generated")
	return spec, nil
}
