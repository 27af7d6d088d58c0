package intent

import (
	"regexp"
	"strings"

	"ai-tutor-be/pkg/textnorm"
)

var (
	sendVerbs = map[string]bool{
		"envoie": true, "envoies": true, "envoi": true, "envoyer": true, "envoyez": true,
		"renvoie": true, "transmets": true, "transmettre": true, "send": true, "forward": true,
	}
	// what is being sent, or how
	sendObjects = map[string]bool{
		"reponse": true, "response": true, "answer": true, "mail": true, "email": true,
		"courriel": true,
	}
)

const knownTLDs = `(fr|com|net|org|io|be|ch|ca|eu|de|uk|info|edu)`

var (
	emailPattern   = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9-]+(?:\.[a-z0-9-]+)*\.[a-z]{2,}`)
	arobasePattern = regexp.MustCompile(`\s*\barobase\b\s*`)
	atPattern      = regexp.MustCompile(`\s*@\s*`)
	// "yahoo . fr", "yahoo .fr", "yahoo. fr"; spaced dots only count before a
	// known TLD so that a sentence ending after the address stays out
	spacedDotPattern = regexp.MustCompile(`\s+\.\s*` + knownTLDs + `\b`)
	dotSpacePattern  = regexp.MustCompile(`\.\s+` + knownTLDs + `\b`)
	// "exemple;fr", "exemple, com": a separator typed instead of the TLD dot
	tldTypoPattern = regexp.MustCompile(`(@[a-z0-9.-]+?)\s*[;,:]\s*` + knownTLDs + `\b`)
)

// ExtractEmailCommand recognises a request to send the last answer by
// e-mail and returns the address. It needs a send verb (envoie, envoyer,
// send...), a word naming the answer or the mail, and an address that
// survives typo correction. Words are matched as whole tokens outside the
// address, so "gmail" never counts as "mail".
func ExtractEmailCommand(text string) (string, bool) {
	t := textnorm.Fold(text)
	if t == "" {
		return "", false
	}

	addr := ExtractAddress(t)
	if addr == "" {
		return "", false
	}

	var verb, object bool
	for _, tok := range textnorm.Tokens(withoutAddresses(t)) {
		verb = verb || sendVerbs[tok]
		object = object || sendObjects[tok]
	}
	if !verb || !object {
		return "", false
	}
	return addr, true
}

// withoutAddresses drops every word holding an "@"
func withoutAddresses(t string) string {
	var kept []string
	for _, f := range strings.Fields(t) {
		if !strings.Contains(f, "@") {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// ExtractAddress returns the first e-mail address in text after repairing
// the usual typing slips: spaces around "@" and ".", "arobase" spelled out,
// and ";" or "," before a known top-level domain.
func ExtractAddress(text string) string {
	t := strings.ToLower(text)
	t = arobasePattern.ReplaceAllString(t, "@")
	t = atPattern.ReplaceAllString(t, "@")
	t = tldTypoPattern.ReplaceAllString(t, "$1.$2")
	t = spacedDotPattern.ReplaceAllString(t, ".$1")
	t = dotSpacePattern.ReplaceAllString(t, ".$1")

	return emailPattern.FindString(t)
}
