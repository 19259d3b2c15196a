package tool

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyx-server/internal/domain/llm"
	"nyx-server/internal/domain/retry"
)

type fakeProvider struct {
	startFn    func(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error)
	checkFn    func(ctx context.Context, op *llm.Operation) (*llm.Operation, error)
	downloadFn func(ctx context.Context, uri string) ([]byte, string, error)
}

func (f *fakeProvider) GenerateContent(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	panic("not used")
}

func (f *fakeProvider) GenerateImage(ctx context.Context, model, prompt string) (*llm.Media, error) {
	panic("not used")
}

func (f *fakeProvider) StartMediaOperation(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error) {
	return f.startFn(ctx, req)
}

func (f *fakeProvider) CheckOperation(ctx context.Context, op *llm.Operation) (*llm.Operation, error) {
	return f.checkFn(ctx, op)
}

func (f *fakeProvider) DownloadMedia(ctx context.Context, uri string) ([]byte, string, error) {
	return f.downloadFn(ctx, uri)
}

func pollPolicy(maxWait time.Duration) retry.Policy {
	return retry.Policy{
		InitialDelay:    time.Millisecond,
		MaxDelay:        time.Millisecond,
		MaxWait:         maxWait,
		BackoffStrategy: retry.BackoffFixed,
	}
}

func TestVideoGeneratorCompletes(t *testing.T) {
	checks := 0
	var startedPrompt string
	provider := &fakeProvider{
		startFn: func(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error) {
			startedPrompt = req.Prompt
			return &llm.Operation{Name: "operations/v1"}, nil
		},
		checkFn: func(ctx context.Context, op *llm.Operation) (*llm.Operation, error) {
			checks++
			if checks < 3 {
				return &llm.Operation{Name: op.Name}, nil
			}
			return &llm.Operation{
				Name:  op.Name,
				Done:  true,
				Media: []llm.Media{{URI: "https://files.example.com/v1.mp4", MIMEType: "video/mp4"}},
			}, nil
		},
		downloadFn: func(ctx context.Context, uri string) ([]byte, string, error) {
			assert.Equal(t, "https://files.example.com/v1.mp4", uri)
			return []byte("mp4bytes"), "video/mp4", nil
		},
	}

	gen := NewVideoGenerator(provider, "veo-test", pollPolicy(time.Minute), zerolog.Nop())
	result, err := gen.Handle(context.Background(), &Call{
		Name: NameGenerateVideo,
		Args: map[string]any{"prompt": "um farol em uma tempestade"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, checks)
	assert.True(t, len(startedPrompt) > 0)
	assert.Contains(t, startedPrompt, "cinematic style.")
	require.NotNil(t, result.Attachment)
	assert.Equal(t, "video/mp4", result.Attachment.Type)

	expected := "data:video/mp4;base64," + base64.StdEncoding.EncodeToString([]byte("mp4bytes"))
	assert.Equal(t, expected, result.Attachment.URL)
}

func TestVideoGeneratorTimesOut(t *testing.T) {
	provider := &fakeProvider{
		startFn: func(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error) {
			return &llm.Operation{Name: "operations/slow"}, nil
		},
		checkFn: func(ctx context.Context, op *llm.Operation) (*llm.Operation, error) {
			return &llm.Operation{Name: op.Name}, nil
		},
	}

	gen := NewVideoGenerator(provider, "veo-test", pollPolicy(20*time.Millisecond), zerolog.Nop())
	_, err := gen.Handle(context.Background(), &Call{
		Name: NameGenerateVideo,
		Args: map[string]any{"prompt": "nunca termina"},
	})
	require.ErrorIs(t, err, ErrVideoTimeout)
}

func TestVideoGeneratorCancelled(t *testing.T) {
	provider := &fakeProvider{
		startFn: func(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error) {
			return &llm.Operation{Name: "operations/cancelled"}, nil
		},
		checkFn: func(ctx context.Context, op *llm.Operation) (*llm.Operation, error) {
			return &llm.Operation{Name: op.Name}, nil
		},
	}

	policy := retry.Policy{
		InitialDelay:    time.Hour,
		MaxWait:         24 * time.Hour,
		BackoffStrategy: retry.BackoffFixed,
	}
	gen := NewVideoGenerator(provider, "veo-test", policy, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := gen.Handle(ctx, &Call{
			Name: NameGenerateVideo,
			Args: map[string]any{"prompt": "cancelado"},
		})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("poll loop did not observe cancellation")
	}
}

func TestVideoGeneratorOperationError(t *testing.T) {
	provider := &fakeProvider{
		startFn: func(ctx context.Context, req llm.MediaRequest) (*llm.Operation, error) {
			return &llm.Operation{Name: "operations/bad"}, nil
		},
		checkFn: func(ctx context.Context, op *llm.Operation) (*llm.Operation, error) {
			return &llm.Operation{
				Name:  op.Name,
				Done:  true,
				Error: &llm.OperationError{Code: 400, Message: "prompt rejected"},
			}, nil
		},
	}

	gen := NewVideoGenerator(provider, "veo-test", pollPolicy(time.Minute), zerolog.Nop())
	_, err := gen.Handle(context.Background(), &Call{
		Name: NameGenerateVideo,
		Args: map[string]any{"prompt": "inválido"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt rejected")
}
