// Package textnorm canonicalises free text so that routing rules and the
// retrieval matcher compare like with like.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// symbolReplacer folds typographic variants onto one ASCII form.
var symbolReplacer = strings.NewReplacer(
	// dashes
	"‐", "-", "‑", "-", "‒", "-", "–", "-", "—", "-", "―", "-", "−", "-",
	// quotes
	"‘", "'", "’", "'", "‛", "'", "`", "'", "´", "'",
	"“", "\"", "”", "\"", "„", "\"", "«", "\"", "»", "\"",
	// operators
	"×", "*", "·", "*", "∙", "*", "÷", "/",
	"…", "...",
	// ligatures
	"œ", "oe", "æ", "ae", "ß", "ss",
)

// Normalize lower-cases text, strips diacritics, folds punctuation variants,
// collapses whitespace and trims non-alphanumeric noise at both ends.
// It never fails; the result may be empty.
func Normalize(text string) string {
	return strings.TrimFunc(Fold(text), func(r rune) bool {
		return !isAlnum(r)
	})
}

// Fold is Normalize without the trimming, for callers that need leading or
// trailing symbols such as a closing parenthesis or "²".
func Fold(text string) string {
	if text == "" {
		return ""
	}

	s := stripDiacritics(text)
	s = strings.ToLower(s)
	s = symbolReplacer.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Tokens splits the normalized form of text on anything that is not a letter
// or a digit.
func Tokens(text string) []string {
	return strings.FieldsFunc(Normalize(text), func(r rune) bool {
		return !isAlnum(r)
	})
}

// Phrase returns the tokens of text joined by single spaces. Two phrases can
// be compared for whole-word containment with ContainsPhrase.
func Phrase(text string) string {
	return strings.Join(Tokens(text), " ")
}

// ContainsPhrase reports whether needle occurs in haystack on token
// boundaries. Both arguments must already be phrases.
func ContainsPhrase(haystack, needle string) bool {
	if needle == "" || haystack == "" {
		return false
	}
	return strings.Contains(" "+haystack+" ", " "+needle+" ")
}

// Keywords returns the distinct significant tokens of text in first-seen
// order: at least three characters long and not a stop-word.
func Keywords(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range Tokens(text) {
		if len(tok) < 3 || IsStopword(tok) || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
