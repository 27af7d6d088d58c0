package weather

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ai-tutor-be/pkg/textnorm"
)

var (
	cityAfterPattern = regexp.MustCompile(`(?i)(?:^|\s)(?:à|a|pour|au|aux|sur|in|at|for)\s+([\p{L}'’ -]{2,})`)
	cityCutPattern   = regexp.MustCompile(`[?,!.;:()\[\]{}\n\r]`)
	cityTokenPattern = regexp.MustCompile(`[\p{L}'’-]{2,}`)
)

var cityStopwords = map[string]bool{
	"aujourd'hui": true, "auj": true, "demain": true, "ce": true, "soir": true, "matin": true,
	"stp": true, "svp": true, "merci": true, "s'il": true, "te": true, "plait": true,
	"moi": true, "please": true, "today": true, "tomorrow": true, "meteo": true, "weather": true,
	"quelle": true, "quel": true, "est": true, "la": true, "le": true, "les": true, "de": true,
	"du": true, "a": true, "pour": true, "il": true, "fait": true, "fait-il": true, "temps": true,
	"donne": true, "donner": true, "donnes": true, "au": true, "aux": true, "the": true,
	"what": true, "is": true, "in": true, "temperature": true, "actuelle": true, "prevision": true,
	"previsions": true, "forecast": true, "va-t-il": true, "pleuvoir": true, "ville": true,
}

// ExtractCity pulls a city name out of a free-text weather request:
// "quelle est la météo à Paris aujourd'hui ?" gives "Paris",
// "météo pour lyon stp" gives "Lyon". fallback is returned when nothing
// looks like a place.
func ExtractCity(text, fallback string) string {
	t := strings.TrimSpace(text)
	if t == "" {
		return fallback
	}

	candidate := t
	if m := cityAfterPattern.FindStringSubmatch(t); m != nil {
		candidate = m[1]
	}
	candidate = cityCutPattern.Split(candidate, 2)[0]

	var kept []string
	for _, tok := range cityTokenPattern.FindAllString(candidate, -1) {
		tok = strings.Trim(tok, "-'’")
		if len(tok) < 2 || cityStopwords[textnorm.Fold(tok)] {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return fallback
	}

	return cases.Title(language.French).String(strings.Join(kept, " "))
}
