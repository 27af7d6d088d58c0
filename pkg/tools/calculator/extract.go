package calculator

import (
	"regexp"
	"strings"
)

var (
	wordOperators = strings.NewReplacer(
		"multiplié par", "*", "multiplie par", "*", "divisé par", "/", "divise par", "/",
		"puissance", "^", "fois", "*", "plus", "+", "moins", "-",
		"×", "*", "·", "*", "∙", "*", "÷", "/", "−", "-", "–", "-", "—", "-",
	)
	// digit x digit
	crossPattern = regexp.MustCompile(`(\d)\s*x\s*(\d)`)
	// 1e3, 2,5e-4, 6.02E23
	exponentPattern = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)e([+-]?\d+)\b`)

	mathBlockPattern = regexp.MustCompile(`(?:sqrt|log10|log|ln|exp|sin|cos|tan|pi|deg|\d|\s|[+\-*/%().,^°²³'])+`)
	mathTokenPattern = regexp.MustCompile(`sqrt|log10|log|ln|exp|sin|cos|tan|\d`)

	squarePattern = regexp.MustCompile(`(\d+(?:\.\d+)?|\))\s*²`)
	cubePattern   = regexp.MustCompile(`(\d+(?:\.\d+)?|\))\s*³`)
	// sin45, sin 45°, sin'45, sin 45deg: degrees
	inlineDegPattern = regexp.MustCompile(`\b(sin|cos|tan)\s*'?\s*([0-9]+(?:\.[0-9]+)?)\s*(?:°|deg\b)?`)
	// sin(45°), sin(45 deg): degrees; sin(0.5) stays in radians
	parenDegPattern = regexp.MustCompile(`\b(sin|cos|tan)\s*\(\s*([0-9]+(?:\.[0-9]+)?)\s*(?:°|deg)\s*\)`)
	// sqrt16, log10 100, exp2
	bareCallPattern = regexp.MustCompile(`\b(sqrt|log10|log|ln|exp)\s*([0-9]+(?:\.[0-9]+)?)([^0-9.(]|$)`)
	decimalComma    = regexp.MustCompile(`(\d),(\d)`)
)

// Extract pulls an arithmetic expression out of free text and rewrites it
// into the evaluator's syntax:
//
//	"calcule (145 + 268) × 3 – 42" -> "(145 + 268) * 3 - 42"
//	"2,5^2"                        -> "2.5^2"
//	"sin 45°"                      -> "sin(deg(45))"
//	"sqrt16"                       -> "sqrt(16)"
//	"1e3+1"                        -> "(1*10^(3))+1"
//
// It returns "" when the text holds no digits.
func Extract(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return ""
	}
	t = wordOperators.Replace(t)
	t = exponentPattern.ReplaceAllString(t, "($1*10^($2))")
	t = crossPattern.ReplaceAllString(t, "$1*$2")

	expr := longestBlock(t)
	if expr == "" {
		return ""
	}

	expr = decimalComma.ReplaceAllString(expr, "$1.$2")
	expr = squarePattern.ReplaceAllString(expr, "$1^2")
	expr = cubePattern.ReplaceAllString(expr, "$1^3")
	expr = parenDegPattern.ReplaceAllString(expr, "$1(deg($2))")
	expr = inlineDegPattern.ReplaceAllString(expr, "$1(deg($2))")
	expr = bareCallPattern.ReplaceAllString(expr, "$1($2)$3")
	expr = strings.ReplaceAll(expr, "°", "")
	expr = strings.ReplaceAll(expr, "'", "")

	return strings.TrimSpace(balanceParentheses(expr))
}

// longestBlock returns the longest run of math characters that contains a
// function name or a digit
func longestBlock(t string) string {
	best := ""
	for _, b := range mathBlockPattern.FindAllString(t, -1) {
		b = strings.TrimSpace(b)
		if !mathTokenPattern.MatchString(b) || !strings.ContainsAny(b, "0123456789") {
			continue
		}
		if len(b) > len(best) {
			best = b
		}
	}
	return strings.Trim(best, ".,")
}

// balanceParentheses drops unmatched closing parentheses and closes the
// ones left open
func balanceParentheses(s string) string {
	var b strings.Builder
	open := 0
	for _, r := range s {
		switch r {
		case '(':
			open++
		case ')':
			if open == 0 {
				continue
			}
			open--
		}
		b.WriteRune(r)
	}
	return b.String() + strings.Repeat(")", open)
}
