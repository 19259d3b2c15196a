package tool

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"nyx-server/internal/infrastructure/metrics"
)

// Handler executes a single tool call.
type Handler interface {
	Handle(ctx context.Context, call *Call) (*Result, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, call *Call) (*Result, error)

func (f HandlerFunc) Handle(ctx context.Context, call *Call) (*Result, error) {
	return f(ctx, call)
}

// Executor dispatches tool calls to their registered handlers.
type Executor struct {
	handlers map[Name]Handler
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewExecutor builds an executor over the given handlers. Every tool in
// the closed set must have a handler; a missing one is a wiring bug and
// fails construction rather than surfacing as a silent no-op at runtime.
func NewExecutor(handlers map[Name]Handler, timeout time.Duration, logger zerolog.Logger) (*Executor, error) {
	for _, name := range All() {
		if handlers[name] == nil {
			return nil, fmt.Errorf("tool executor: no handler registered for %s", name)
		}
	}
	for name := range handlers {
		if _, err := ParseName(string(name)); err != nil {
			return nil, fmt.Errorf("tool executor: %w", err)
		}
	}
	return &Executor{
		handlers: handlers,
		timeout:  timeout,
		logger:   logger.With().Str("component", "tool_executor").Logger(),
	}, nil
}

// Execute runs a tool call through its lifecycle, reporting status
// changes to observer. A nil observer is allowed.
func (e *Executor) Execute(ctx context.Context, call Call, observer Observer) (*Result, error) {
	if call.ID == "" {
		call.ID = uuid.New().String()
	}
	handler, ok := e.handlers[call.Name]
	if !ok {
		return nil, &ExecutionError{Tool: call.Name, Err: fmt.Errorf("unknown tool")}
	}

	inv := Invocation{ID: call.ID, Call: call, Status: StatusQueued}
	notify := func() {
		if observer != nil {
			observer.ToolStatusChanged(inv)
		}
	}
	notify()

	inv.Transition(StatusRunning)
	notify()

	e.logger.Info().
		Str("tool", string(call.Name)).
		Str("invocation_id", inv.ID).
		Msg("executing tool")

	execCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := handler.Handle(execCtx, &call)
	metrics.ToolDuration.WithLabelValues(string(call.Name)).Observe(time.Since(start).Seconds())

	if err != nil {
		inv.Error = err.Error()
		inv.Transition(StatusFailed)
		notify()
		metrics.ToolExecutionsTotal.WithLabelValues(string(call.Name), "error").Inc()
		e.logger.Error().
			Err(err).
			Str("tool", string(call.Name)).
			Str("invocation_id", inv.ID).
			Msg("tool execution failed")
		return nil, &ExecutionError{Tool: call.Name, Err: err}
	}

	inv.Transition(StatusSucceeded)
	notify()
	metrics.ToolExecutionsTotal.WithLabelValues(string(call.Name), "success").Inc()
	return result, nil
}
