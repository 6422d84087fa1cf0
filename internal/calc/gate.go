package calc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/csheth/calc/internal/expr"
	"github.com/csheth/calc/internal/logging"
)

// Evaluator computes the value of a display-string expression. Failures carry
// a human readable message that the gate classifies.
type Evaluator interface {
	Evaluate(ctx context.Context, expression string) (string, error)
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(ctx context.Context, expression string) (string, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, expression string) (string, error) {
	return f(ctx, expression)
}

// Outcome is what the display shows after a calculation attempt.
type Outcome struct {
	Value string
	Error bool
}

var errNoEvaluator = errors.New("no evaluator configured")

var divideByZeroMarkers = []string{
	"divide by zero",
	"division by zero",
}

// Calculate evaluates display when it is a complete expression. Error
// sentinels, blank strings and expressions ending in an operator are refused
// without calling ev, and come back unchanged with Error set.
func Calculate(ctx context.Context, ev Evaluator, display string) Outcome {
	if expr.IsMessage(display) || expr.IsEmpty(display) || expr.EndsWithOperator(display) {
		return Outcome{Value: display, Error: true}
	}
	logger := logging.FromContext(ctx)
	if ev == nil {
		logging.LogError(logger, "calculate", errNoEvaluator)
		return Outcome{Value: expr.ErrorSentinel, Error: true}
	}

	result, err := ev.Evaluate(ctx, display)
	if err != nil {
		logging.LogError(logger, "calculate", err, slog.String("expression", display))
		return Classify(err)
	}
	result = strings.TrimSpace(result)
	if result == "" {
		logging.LogError(logger, "calculate", errors.New("evaluator returned an empty result"), slog.String("expression", display))
		return Outcome{Value: expr.ErrorSentinel, Error: true}
	}
	return Outcome{Value: result}
}

// Classify converts an evaluator failure into a display outcome.
func Classify(err error) Outcome {
	if err == nil {
		return Outcome{Value: expr.ErrorSentinel, Error: true}
	}
	message := err.Error()
	if message == expr.DivideByZeroMessage {
		return Outcome{Value: expr.DivideByZeroMessage, Error: true}
	}
	lowered := strings.ToLower(message)
	for _, marker := range divideByZeroMarkers {
		if strings.Contains(lowered, marker) {
			return Outcome{Value: expr.DivideByZeroMessage, Error: true}
		}
	}
	return Outcome{Value: expr.ErrorSentinel, Error: true}
}
