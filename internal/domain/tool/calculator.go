package tool

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"nyx-server/internal/domain/mathexpr"
)

// Calculator evaluates arithmetic expressions locally.
type Calculator struct {
	logger zerolog.Logger
}

func NewCalculator(logger zerolog.Logger) *Calculator {
	return &Calculator{logger: logger.With().Str("component", "calculator_tool").Logger()}
}

func (c *Calculator) Handle(ctx context.Context, call *Call) (*Result, error) {
	expr := strings.TrimSpace(call.StringArg("expression"))
	if expr == "" {
		return nil, fmt.Errorf("calculator requires an expression")
	}

	value, err := mathexpr.Eval(expr)
	if err != nil {
		return nil, err
	}

	return &Result{
		Content: fmt.Sprintf("%s = %s", expr, formatNumber(value)),
	}, nil
}

// formatNumber renders integers without a decimal point and everything
// else with minimal digits.
func formatNumber(v float64) string {
	if v > -1e15 && v < 1e15 && v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
