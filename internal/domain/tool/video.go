package tool

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"nyx-server/internal/domain/llm"
	"nyx-server/internal/domain/retry"
)

// cinematicSuffix steers the video model away from the artificial look
// of default generations.
const cinematicSuffix = ", in real camera quality, with low contrast and minimal motion blur, cinematic style."

// PollState tracks a long-running video operation:
// submitted -> polling -> done | failed | timed_out.
type PollState string

const (
	PollSubmitted PollState = "submitted"
	PollPolling   PollState = "polling"
	PollDone      PollState = "done"
	PollFailed    PollState = "failed"
	PollTimedOut  PollState = "timed_out"
)

// ErrVideoTimeout is returned when the operation does not finish within
// the wait budget.
var ErrVideoTimeout = errors.New("video generation timed out")

// VideoGenerator produces short videos through a long-running operation
// that is polled with backoff until done, failed or out of budget.
type VideoGenerator struct {
	provider llm.Provider
	model    string
	policy   retry.Policy
	logger   zerolog.Logger
}

func NewVideoGenerator(provider llm.Provider, model string, policy retry.Policy, logger zerolog.Logger) *VideoGenerator {
	return &VideoGenerator{
		provider: provider,
		model:    model,
		policy:   policy,
		logger:   logger.With().Str("component", "video_tool").Logger(),
	}
}

func (g *VideoGenerator) Handle(ctx context.Context, call *Call) (*Result, error) {
	prompt := strings.TrimSpace(call.StringArg("prompt"))
	if prompt == "" {
		return nil, fmt.Errorf("video generation requires a prompt")
	}
	if !strings.HasSuffix(prompt, cinematicSuffix) {
		prompt = strings.TrimSuffix(prompt, ".") + cinematicSuffix
	}

	media, err := g.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	data, contentType, err := g.provider.DownloadMedia(ctx, media.URI)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = media.MIMEType
	}

	return &Result{
		Attachment: &Attachment{
			Name: "video-gerado",
			URL:  fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)),
			Type: contentType,
		},
	}, nil
}

func (g *VideoGenerator) generate(ctx context.Context, prompt string) (*llm.Media, error) {
	state := PollSubmitted

	op, err := g.provider.StartMediaOperation(ctx, llm.MediaRequest{
		Model:       g.model,
		Prompt:      prompt,
		AspectRatio: "16:9",
	})
	if err != nil {
		return nil, err
	}

	g.logger.Debug().
		Str("operation", op.Name).
		Str("state", string(state)).
		Msg("video operation submitted")

	state = PollPolling
	start := time.Now()

	for attempt := 1; ; attempt++ {
		if g.policy.Expired(start) {
			state = PollTimedOut
			g.logger.Warn().
				Str("operation", op.Name).
				Str("state", string(state)).
				Dur("elapsed", time.Since(start)).
				Msg("video operation exceeded wait budget")
			return nil, ErrVideoTimeout
		}
		if err := g.policy.Wait(ctx, attempt); err != nil {
			return nil, err
		}

		op, err = g.provider.CheckOperation(ctx, op)
		if err != nil {
			return nil, err
		}
		if !op.Done {
			continue
		}

		if op.Error != nil {
			state = PollFailed
			g.logger.Error().
				Str("operation", op.Name).
				Str("state", string(state)).
				Msg("video operation failed")
			return nil, fmt.Errorf("video operation failed: %s", op.Error.Message)
		}
		if len(op.Media) == 0 {
			state = PollFailed
			g.logger.Error().
				Str("operation", op.Name).
				Str("state", string(state)).
				Msg("video operation finished without media")
			return nil, fmt.Errorf("video operation finished without media")
		}

		state = PollDone
		g.logger.Info().
			Str("operation", op.Name).
			Str("state", string(state)).
			Dur("elapsed", time.Since(start)).
			Msg("video operation finished")

		return &op.Media[0], nil
	}
}
