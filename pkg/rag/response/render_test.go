package response

import (
	"errors"
	"strings"
	"testing"

	"ai-tutor-be/pkg/rag/corpus"
	"ai-tutor-be/pkg/tools/weather"
	"ai-tutor-be/pkg/tools/websearch"

	"github.com/stretchr/testify/assert"
)

func TestAnswer(t *testing.T) {
	section := &corpus.Section{
		Source: "cours/ia.md",
		Title:  "Intelligence Artificielle",
		Body:   "L'IA regroupe les techniques qui imitent l'intelligence humaine.\n",
	}

	got := Answer(section, 0)
	assert.Equal(t,
		"**Intelligence Artificielle**\n\n"+
			"L'IA regroupe les techniques qui imitent l'intelligence humaine."+
			"\n\n---\n📎 **Source** : `cours/ia.md`",
		got)
}

func TestAnswer_TruncatesLongBody(t *testing.T) {
	section := &corpus.Section{
		Source: "long.txt",
		Body:   strings.Repeat("mot ", 1000),
	}

	got := Answer(section, 100)
	excerpt := strings.SplitN(got, "\n\n---\n", 2)[0]
	assert.LessOrEqual(t, len([]rune(excerpt)), 101)
	assert.True(t, strings.HasSuffix(excerpt, "…"))
	assert.False(t, strings.HasPrefix(got, "**"), "untitled sections have no heading")
}

func TestWebResults(t *testing.T) {
	results := []websearch.Result{
		{Title: "Go", URL: "https://go.dev", Snippet: "The Go language"},
		{Snippet: "sans lien"},
	}

	assert.Equal(t,
		"**Résultats web :**\n"+
			"- 1. [Go](https://go.dev)  \n  The Go language\n"+
			"- 2. (sans titre)  \n  sans lien",
		WebResults(results))
	assert.Equal(t, NoWebResults, WebResults(nil))
	assert.True(t, strings.HasPrefix(ConsentedWebSearch(nil), "🛠️ **Recherche Web (suite à ton consentement)**"))
	assert.True(t, strings.HasPrefix(ExplicitWebSearch(nil), "🛠️ **Outil Recherche Web (DuckDuckGo)**"))
}

func TestToolReplies(t *testing.T) {
	assert.Equal(t,
		"🛠️ **Outil Calculatrice**\n\nExpression reconnue: `2+3*4`\nRésultat: **14**",
		Calculation("2+3*4", "14"))

	assert.Equal(t,
		"🛠️ **Outil Météo**\n\nVille: **Lyon**\nTempérature: **12.5°C**\nVent: **7 km/h**",
		Weather(weather.Report{City: "Lyon", Temperature: 12.5, WindSpeed: 7}))

	msg := HandlerFailure(ToolWeather, errors.New("timeout"))
	assert.Contains(t, msg, "**Météo**")
	assert.Contains(t, msg, "timeout")
}
