package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "calcule 2+3*4", "2+3*4"},
		{"unicode operators", "calcule (145 + 268) × 3 – 42", "(145 + 268) * 3 - 42"},
		{"word operators", "combien font 12 fois 3", "12 * 3"},
		{"divided by", "combien fait 10 divisé par 4", "10 / 4"},
		{"cross between digits", "calcule 6x7", "6*7"},
		{"decimal comma", "calcule 2,5 + 1", "2.5 + 1"},
		{"square", "combien vaut 3²", "3^2"},
		{"inline degrees", "calcule sin 30°", "sin(deg(30))"},
		{"glued degrees", "calcule sin30", "sin(deg(30))"},
		{"parenthesised degrees", "calcule cos(60°)", "cos(deg(60))"},
		{"radians untouched", "calcule sin(0.5)", "sin(0.5)"},
		{"bare sqrt", "calcule sqrt16", "sqrt(16)"},
		{"log10 call kept", "calcule log10(100)", "log10(100)"},
		{"exponent notation", "calcule 1e3+1", "(1*10^(3))+1"},
		{"unbalanced open", "calcule (2+3", "(2+3)"},
		{"unbalanced close", "calcule 2+3)", "2+3"},
		{"no digits", "calcule ceci", ""},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in))
		})
	}
}

func TestCalculate(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"precedence", "calcule 2+3*4", "14"},
		{"parentheses", "calcule (145 + 268) × 3 – 42", "1197"},
		{"division", "combien fait 7 / 2", "3.5"},
		{"power", "calcule 2^10", "1024"},
		{"square", "combien vaut 12²", "144"},
		{"sqrt", "calcule sqrt(16)", "4"},
		{"sin degrees", "calcule sin 30°", "0.5"},
		{"cos degrees", "calcule cos(60°)", "0.5"},
		{"log", "calcule log10 1000", "3"},
		{"pi", "calcule 2*pi", "6.2831853072"},
		{"exponent notation", "calcule 1e3+1", "1001"},
		{"negative exponent", "calcule 2,5e-3*2", "0.005"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Calculate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Formatted())
		})
	}
}

func TestCalculate_Errors(t *testing.T) {
	c := New()

	t.Run("no expression", func(t *testing.T) {
		_, err := c.Calculate("calcule quelque chose")
		assert.ErrorIs(t, err, ErrNoExpression)
	})

	t.Run("division by zero", func(t *testing.T) {
		_, err := c.Calculate("calcule 1/0")
		assert.ErrorIs(t, err, ErrEvaluation)
	})

	t.Run("syntax", func(t *testing.T) {
		_, err := c.Evaluate("2 + * 3")
		assert.ErrorIs(t, err, ErrEvaluation)
	})

	t.Run("negative sqrt", func(t *testing.T) {
		_, err := c.Evaluate("sqrt(-1)")
		assert.ErrorIs(t, err, ErrEvaluation)
	})
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "14", FormatNumber(14))
	assert.Equal(t, "0.3333333333", FormatNumber(1.0/3))
	assert.Equal(t, "-2", FormatNumber(-2.0000000000001))
	assert.Equal(t, "0.1", FormatNumber(0.1))
}
