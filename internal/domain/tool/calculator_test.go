package tool

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorHandle(t *testing.T) {
	calc := NewCalculator(zerolog.Nop())

	tests := []struct {
		name       string
		expression string
		expected   string
	}{
		{name: "integer result", expression: "2 + 2", expected: "2 + 2 = 4"},
		{name: "fractional result", expression: "10 / 4", expected: "10 / 4 = 2.5"},
		{name: "power", expression: "2^10", expected: "2^10 = 1024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := calc.Handle(context.Background(), &Call{
				Name: NameCalculator,
				Args: map[string]any{"expression": tt.expression},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Content)
		})
	}
}

func TestCalculatorHandleErrors(t *testing.T) {
	calc := NewCalculator(zerolog.Nop())

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "missing expression", args: map[string]any{}},
		{name: "unsupported token", args: map[string]any{"expression": "rm -rf /"}},
		{name: "division by zero", args: map[string]any{"expression": "1/0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Handle(context.Background(), &Call{Name: NameCalculator, Args: tt.args})
			require.Error(t, err)
		})
	}
}
