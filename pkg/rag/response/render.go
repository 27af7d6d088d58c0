package response

import (
	"fmt"
	"strconv"
	"strings"

	"ai-tutor-be/pkg/rag/corpus"
	"ai-tutor-be/pkg/tools/weather"
	"ai-tutor-be/pkg/tools/websearch"
	"ai-tutor-be/pkg/utils"
)

// DefaultMaxAnswerChars caps the section excerpt quoted in an answer
const DefaultMaxAnswerChars = 2200

// ToolReply prefixes body with the tool banner.
func ToolReply(tool, body string) string {
	return "🛠️ **Outil " + tool + "**\n\n" + body
}

// Answer quotes a matched section and cites its source.
func Answer(section *corpus.Section, maxChars int) string {
	if maxChars <= 0 {
		maxChars = DefaultMaxAnswerChars
	}

	var b strings.Builder
	if section.Title != "" {
		b.WriteString("**")
		b.WriteString(section.Title)
		b.WriteString("**\n\n")
	}
	b.WriteString(utils.Truncate(strings.TrimSpace(section.Body), maxChars))
	b.WriteString("\n\n---\n📎 **Source** : `")
	b.WriteString(section.Source)
	b.WriteString("`")
	return b.String()
}

func Calculation(expression, result string) string {
	return ToolReply(ToolCalculator, fmt.Sprintf("Expression reconnue: `%s`\nRésultat: **%s**", expression, result))
}

func Weather(r weather.Report) string {
	return ToolReply(ToolWeather, fmt.Sprintf(
		"Ville: **%s**\nTempérature: **%s°C**\nVent: **%s km/h**",
		r.City, formatFloat(r.Temperature), formatFloat(r.WindSpeed),
	))
}

func Todo(markdown string) string {
	return ToolReply(ToolTodo, markdown)
}

// WebResults renders search hits as a numbered markdown list.
func WebResults(results []websearch.Result) string {
	if len(results) == 0 {
		return NoWebResults
	}

	lines := []string{"**Résultats web :**"}
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "(sans titre)"
		}
		if r.URL != "" {
			lines = append(lines, fmt.Sprintf("- %d. [%s](%s)  \n  %s", i+1, title, r.URL, r.Snippet))
		} else {
			lines = append(lines, fmt.Sprintf("- %d. %s  \n  %s", i+1, title, r.Snippet))
		}
	}
	return strings.Join(lines, "\n")
}

// ExplicitWebSearch is the reply to "cherche sur le web ..."
func ExplicitWebSearch(results []websearch.Result) string {
	return ToolReply(ToolWebSearch, WebResults(results))
}

// ConsentedWebSearch is the reply after the user accepted the offer.
func ConsentedWebSearch(results []websearch.Result) string {
	return "🛠️ **Recherche Web (suite à ton consentement)**\n\n" + WebResults(results)
}

// HandlerFailure names the tool that failed. The session is left untouched
// by the caller, so the user can simply retry.
func HandlerFailure(tool string, err error) string {
	return fmt.Sprintf("⚠️ Désolé, l'outil **%s** n'a pas pu répondre : %v", tool, err)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
