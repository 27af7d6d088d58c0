package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
)

var (
	ErrNoExpression = errors.New("no arithmetic expression found")
	ErrEvaluation   = errors.New("expression could not be evaluated")
)

// Result is a successful evaluation.
type Result struct {
	Expression string
	Value      float64
}

// Formatted renders the value as an integer when it is one, otherwise with
// up to ten decimals.
func (r Result) Formatted() string {
	return FormatNumber(r.Value)
}

// Calculator evaluates expressions with a fixed set of math functions.
type Calculator struct {
	options []expr.Option
}

func New() *Calculator {
	return &Calculator{options: compileOptions()}
}

// Calculate extracts the expression from text and evaluates it.
func (c *Calculator) Calculate(text string) (Result, error) {
	expression := Extract(text)
	if expression == "" {
		return Result{}, ErrNoExpression
	}
	value, err := c.Evaluate(expression)
	if err != nil {
		return Result{Expression: expression}, err
	}
	return Result{Expression: expression, Value: value}, nil
}

// Evaluate runs an already extracted expression.
func (c *Calculator) Evaluate(expression string) (float64, error) {
	program, err := expr.Compile(expression, c.options...)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrEvaluation, expression, err)
	}

	out, err := expr.Run(program, environment())
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrEvaluation, expression, err)
	}

	value, ok := toFloat(out)
	if !ok {
		return 0, fmt.Errorf("%w: %q: non numeric result %T", ErrEvaluation, expression, out)
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, fmt.Errorf("%w: %q: result is not finite", ErrEvaluation, expression)
	}
	return value, nil
}

func environment() map[string]any {
	return map[string]any{
		"pi": math.Pi,
	}
}

func compileOptions() []expr.Option {
	unary := map[string]func(float64) float64{
		"sqrt":  math.Sqrt,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"log":   math.Log10,
		"log10": math.Log10,
		"ln":    math.Log,
		"exp":   math.Exp,
		"deg":   func(d float64) float64 { return d * math.Pi / 180 },
	}

	opts := []expr.Option{
		expr.Env(environment()),
		expr.AsFloat64(),
	}
	for name, fn := range unary {
		opts = append(opts, expr.Function(name, wrapUnary(name, fn)))
	}
	return opts
}

func wrapUnary(name string, fn func(float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		x, ok := toFloat(params[0])
		if !ok {
			return nil, fmt.Errorf("%s: non numeric argument %T", name, params[0])
		}
		return fn(x), nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

// FormatNumber prints integral values without decimals and trims trailing
// zeros from the rest.
func FormatNumber(v float64) string {
	if r := math.Round(v); math.Abs(v-r) < 1e-12 && math.Abs(r) < 1e15 {
		return strconv.FormatInt(int64(r), 10)
	}
	s := strconv.FormatFloat(v, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
