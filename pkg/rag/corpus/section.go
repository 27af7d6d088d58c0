package corpus

import (
	"regexp"
	"strings"

	"ai-tutor-be/pkg/textnorm"
)

// RawSection is the raw text of one source document as supplied by a Loader.
// Build splits it into Sections at heading boundaries.
type RawSection struct {
	Source string // stable identifier, e.g. a path relative to the docs directory
	Text   string
}

// Section is a titled chunk of a source document, the atomic retrievable unit.
// Sections are immutable once built.
type Section struct {
	ID       string
	Source   string
	Title    string
	Body     string
	Keywords []string // normalized, stop-words removed, first-seen order

	titlePhrase string
	aliases     []string
	keywordSet  map[string]struct{}
	terms       map[string]struct{}
}

// TitlePhrase is the normalized title as space-joined tokens ("" when untitled)
func (s Section) TitlePhrase() string {
	return s.titlePhrase
}

// Aliases returns the title phrase followed by alternative names of the
// section (acronym, parenthesised abbreviation). Never contains "".
func (s Section) Aliases() []string {
	return s.aliases
}

// HasKeyword reports whether tok belongs to the section's keyword set
func (s Section) HasKeyword(tok string) bool {
	_, ok := s.keywordSet[tok]
	return ok
}

// Mentions reports whether tok appears anywhere in the title or body
func (s Section) Mentions(tok string) bool {
	_, ok := s.terms[tok]
	return ok
}

var parenPattern = regexp.MustCompile(`\(([^)]*)\)`)

func newSection(id, source, title, body string) Section {
	sec := Section{
		ID:     id,
		Source: source,
		Title:  strings.TrimSpace(title),
		Body:   strings.TrimSpace(body),
	}

	sec.titlePhrase = textnorm.Phrase(sec.Title)
	sec.Keywords = textnorm.Keywords(sec.Title + "\n" + sec.Body)

	sec.keywordSet = make(map[string]struct{}, len(sec.Keywords))
	for _, k := range sec.Keywords {
		sec.keywordSet[k] = struct{}{}
	}

	sec.terms = make(map[string]struct{})
	for _, tok := range textnorm.Tokens(sec.Title) {
		sec.terms[tok] = struct{}{}
	}
	bodyTerms := make(map[string]struct{})
	for _, tok := range textnorm.Tokens(sec.Body) {
		sec.terms[tok] = struct{}{}
		bodyTerms[tok] = struct{}{}
	}

	sec.aliases = titleAliases(sec.Title, func(acr string) bool {
		_, ok := bodyTerms[acr]
		return ok
	})

	return sec
}

// titleAliases derives the names a query may use for a section:
// "Domain Name System (DNS)" -> [domain name system dns, domain name system, dns]
// "Intelligence Artificielle" -> [intelligence artificielle, ia]
//
// The acronym is kept only when used(acronym) holds, that is when the
// section's own text writes it out; "Machine Learning" with no "ML" in its
// body gets no "ml" alias.
func titleAliases(title string, used func(string) bool) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" || seen[p] || allStopwords(p) {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(textnorm.Phrase(title))

	bare := strings.TrimSpace(parenPattern.ReplaceAllString(title, " "))
	add(textnorm.Phrase(bare))

	for _, m := range parenPattern.FindAllStringSubmatch(title, -1) {
		toks := textnorm.Tokens(m[1])
		if len(toks) == 1 && len(toks[0]) >= 2 && !textnorm.IsStopword(toks[0]) {
			add(toks[0])
		}
	}

	if acr := acronym(bare); acr != "" && used != nil && used(acr) {
		add(acr)
	}

	return out
}

// acronym builds initials from the significant words of a title, or "" when
// the title has fewer than two of them or the initials form a stop-word.
func acronym(title string) string {
	var b strings.Builder
	n := 0
	for _, tok := range textnorm.Tokens(title) {
		if textnorm.IsStopword(tok) || !isWord(tok) {
			continue
		}
		b.WriteByte(tok[0])
		n++
	}
	if n < 2 {
		return ""
	}
	acr := b.String()
	if textnorm.IsStopword(acr) {
		return ""
	}
	return acr
}

func allStopwords(phrase string) bool {
	for _, tok := range strings.Fields(phrase) {
		if !textnorm.IsStopword(tok) {
			return false
		}
	}
	return true
}

func isWord(tok string) bool {
	c := tok[0]
	return c >= 'a' && c <= 'z'
}
