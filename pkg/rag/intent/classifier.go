// Package intent maps an utterance to exactly one Intent through an ordered
// list of pure rules. The first rule that matches wins; nothing here talks to
// an external service.
package intent

import (
	"regexp"
	"strings"

	"ai-tutor-be/pkg/store"
	"ai-tutor-be/pkg/textnorm"
)

// Utterance carries the forms of the user's text the rules look at
type Utterance struct {
	Raw    string // as typed
	Folded string // lower-cased, accent-free, symbols folded, untrimmed
	Phrase string // alphanumeric tokens joined by single spaces
}

func NewUtterance(text string) Utterance {
	return Utterance{
		Raw:    strings.TrimSpace(text),
		Folded: textnorm.Fold(text),
		Phrase: textnorm.Phrase(text),
	}
}

// Rule is one step of the classification cascade
type Rule struct {
	Name  string
	Match func(u Utterance, s store.Session) (Intent, bool)
}

type Classifier struct {
	rules []Rule
}

// NewClassifier returns the classifier with the default cascade:
// confirmation, e-mail, calc, current events, explicit web search, weather,
// todo, smalltalk, then retrieval as the fallback.
func NewClassifier() *Classifier {
	return &Classifier{rules: DefaultRules()}
}

// NewClassifierWithRules builds a classifier over a custom cascade.
// Retrieval remains the fallback.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

func DefaultRules() []Rule {
	return []Rule{
		{Name: "confirmation", Match: matchConfirmation},
		{Name: "email", Match: matchEmail},
		{Name: "calc", Match: matchCalc},
		{Name: "current-events", Match: matchCurrentEvents},
		{Name: "web-trigger", Match: matchWebTrigger},
		{Name: "weather", Match: matchWeather},
		{Name: "todo", Match: matchTodo},
		{Name: "smalltalk", Match: matchSmalltalk},
	}
}

// Classify never fails: text no rule claims is a Retrieval question
func (c *Classifier) Classify(text string, s store.Session) Intent {
	u := NewUtterance(text)
	for _, r := range c.rules {
		if in, ok := r.Match(u, s); ok {
			in.Rule = r.Name
			return in
		}
	}
	in := Retrieval(u.Raw)
	in.Rule = "default"
	return in
}

// ---- 1. confirmation -------------------------------------------------------

var (
	affirmativeWords   = map[string]bool{"oui": true, "yes": true, "ok": true, "okay": true, "ouais": true, "yep": true, "yeah": true, "volontiers": true, "certainement": true, "absolument": true}
	negativeWords      = map[string]bool{"non": true, "no": true, "nope": true, "nan": true, "jamais": true}
	affirmativePhrases = []string{"d accord", "vas y", "bien sur", "avec plaisir", "je veux bien"}
	negativePhrases    = []string{"pas besoin", "laisse tomber", "pas la peine", "surtout pas"}
)

// matchConfirmation only runs while an offer is pending. A one-letter answer
// (o, y, n) must be the whole utterance; a full word only needs to lead it.
func matchConfirmation(u Utterance, s store.Session) (Intent, bool) {
	if !s.AwaitingConsent() || u.Phrase == "" {
		return Intent{}, false
	}

	switch u.Phrase {
	case "o", "y":
		return Confirmation(true), true
	case "n":
		return Confirmation(false), true
	}

	first := strings.Fields(u.Phrase)[0]
	switch {
	case affirmativeWords[first]:
		return Confirmation(true), true
	case negativeWords[first]:
		return Confirmation(false), true
	}

	for _, p := range negativePhrases {
		if hasPrefixPhrase(u.Phrase, p) {
			return Confirmation(false), true
		}
	}
	for _, p := range affirmativePhrases {
		if hasPrefixPhrase(u.Phrase, p) {
			return Confirmation(true), true
		}
	}
	return Intent{}, false
}

// ---- 2. e-mail command -----------------------------------------------------

func matchEmail(u Utterance, _ store.Session) (Intent, bool) {
	addr, ok := ExtractEmailCommand(u.Raw)
	if !ok {
		return Intent{}, false
	}
	return EmailCommand(addr), true
}

// ---- 3. calc ---------------------------------------------------------------

var (
	calcKeywordPattern = regexp.MustCompile(`\b(calcule|calculer|calculez|combien (fait|font|vaut|valent)|compute|calculate|how much is)\b`)
	// an operator between two operands: "2+3", "(1 + 2) * 4", "10 / 3"
	calcOperatorPattern = regexp.MustCompile(`[0-9)]\s*[-+*/^%]\s*[0-9(]`)
	calcFunctionPattern = regexp.MustCompile(`\b(sqrt|racine|sin|cos|tan|log|log10|ln|exp)\s*\(?\s*[0-9]`)
	calcPowerPattern    = regexp.MustCompile(`[0-9)]\s*[²³]`)
)

// matchCalc is strict so that "les 7 couches du modele OSI" stays a question
func matchCalc(u Utterance, _ store.Session) (Intent, bool) {
	f := u.Folded
	if calcKeywordPattern.MatchString(f) ||
		calcOperatorPattern.MatchString(f) ||
		calcFunctionPattern.MatchString(f) ||
		calcPowerPattern.MatchString(f) {
		return Calc(u.Raw), true
	}
	return Intent{}, false
}

// ---- 4. current events -----------------------------------------------------

var currentEventsPattern = regexp.MustCompile(
	`\b(qui est (le|la|l) (actuel |actuelle )?(president|presidente|premier ministre|premiere ministre|pape|roi|reine|pdg|ceo|maire|chancelier)` +
		`|who is the (current )?(president|prime minister|pope|king|queen|ceo|mayor)` +
		`|actualite|actualites|actus|news|dernieres nouvelles|derniere nouvelle|en ce moment|cette semaine|breaking` +
		`|resultat du match|score du match|cours de la bourse|cours du bitcoin)\b`)

func matchCurrentEvents(u Utterance, _ store.Session) (Intent, bool) {
	if currentEventsPattern.MatchString(u.Phrase) {
		return WebSearch(u.Raw, false), true
	}
	return Intent{}, false
}

// ---- 5. explicit web search -----------------------------------------------

var webTriggerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(peux tu |pourrais tu |tu peux )?(fais |fait )?(une )?(re)?cherche(r|s|z)?( moi)? (sur|dans|via|en) (le web|internet|google|le net|ligne)( pour| sur| a propos de| de)?\b`),
	regexp.MustCompile(`^(search|look up)( on)?( the web| the internet| online| google)( for)?\b`),
	regexp.MustCompile(`^(recherche web|web search|websearch)\b`),
}

// matchWebTrigger keeps the part of the utterance after the trigger as query
func matchWebTrigger(u Utterance, _ store.Session) (Intent, bool) {
	for _, re := range webTriggerPatterns {
		loc := re.FindStringIndex(u.Phrase)
		if loc == nil {
			continue
		}
		query := strings.TrimSpace(u.Phrase[loc[1]:])
		return WebSearch(query, true), true
	}
	return Intent{}, false
}

// ---- 6. weather -------------------------------------------------------------

var weatherPattern = regexp.MustCompile(
	`\b(meteo|weather|temperature|temperatures|forecast|previsions|quel temps|temps qu il fait|fait il (beau|chaud|froid)|va t il pleuvoir|il pleut|pleuvoir|neiger)\b`)

func matchWeather(u Utterance, _ store.Session) (Intent, bool) {
	if weatherPattern.MatchString(u.Phrase) {
		return Weather(u.Raw), true
	}
	return Intent{}, false
}

// ---- 7. todo ----------------------------------------------------------------

var (
	todoAddPattern   = regexp.MustCompile(`^(ajoute|ajouter|rajoute|add|todo add|add task)\b`)
	todoDonePattern  = regexp.MustCompile(`^(termine|terminer|fini|finis|done|coche|complete|valide)\b.*\b[0-9]+\b`)
	// a bare clear verb must be the whole utterance or name the list:
	// "reset du mot de passe" is a question
	todoClearPattern = regexp.MustCompile(`^(vide|vider|efface|supprime|reset|clear)( tout)?$|^(vide|vider|efface|supprime|reset|clear) (la liste|ma liste|mes taches|les taches|la todo|todo|tasks|the list|list)\b`)
	todoListPattern  = regexp.MustCompile(`^(liste|list|todo|tasks|taches|mes taches|ma liste|ma todo)$|\b(mes taches|ma todo|todo list|liste des taches|liste de taches|list tasks|show tasks|affiche la liste)\b`)
)

func matchTodo(u Utterance, _ store.Session) (Intent, bool) {
	p := u.Phrase
	if todoAddPattern.MatchString(p) ||
		todoDonePattern.MatchString(p) ||
		todoClearPattern.MatchString(p) ||
		todoListPattern.MatchString(p) {
		return Todo(u.Raw), true
	}
	return Intent{}, false
}

// ---- 8. smalltalk -----------------------------------------------------------

var smalltalkPhrases = map[string]bool{
	"bonjour": true, "salut": true, "hello": true, "hi": true, "hey": true,
	"coucou": true, "bonsoir": true, "merci": true, "merci beaucoup": true,
	"ca va": true, "comment ca va": true, "comment vas tu": true, "bonjour ca va": true,
	"salut ca va": true, "au revoir": true, "bye": true, "thanks": true, "thank you": true,
	"bonne journee": true, "bonne soiree": true,
}

func matchSmalltalk(u Utterance, _ store.Session) (Intent, bool) {
	if smalltalkPhrases[u.Phrase] {
		return Smalltalk(u.Raw), true
	}
	return Intent{}, false
}

func hasPrefixPhrase(phrase, prefix string) bool {
	return phrase == prefix || strings.HasPrefix(phrase, prefix+" ")
}
