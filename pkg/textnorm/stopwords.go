package textnorm

// stopwords holds French and English function words, already normalized.
var stopwords = map[string]bool{
	// French
	"le": true, "la": true, "les": true, "un": true, "une": true, "des": true,
	"de": true, "du": true, "d": true, "l": true, "au": true, "aux": true,
	"et": true, "ou": true, "en": true, "dans": true, "sur": true, "sous": true,
	"par": true, "pour": true, "avec": true, "sans": true, "ce": true, "ces": true,
	"cet": true, "cette": true, "est": true, "sont": true, "qui": true, "que": true,
	"qu": true, "quoi": true, "quel": true, "quelle": true, "quels": true, "quelles": true,
	"comment": true, "pourquoi": true, "quand": true, "combien": true, "je": true,
	"tu": true, "il": true, "elle": true, "nous": true, "vous": true, "ils": true,
	"elles": true, "me": true, "te": true, "se": true, "mon": true, "ma": true,
	"mes": true, "ton": true, "ta": true, "tes": true, "son": true, "sa": true,
	"ses": true, "leur": true, "leurs": true, "ne": true, "pas": true, "plus": true,
	"y": true, "a": true, "c": true, "s": true, "j": true, "n": true, "t": true,
	"moi": true, "toi": true, "fait": true, "faire": true, "etre": true, "avoir": true,
	"peux": true, "peut": true, "explique": true, "expliquer": true, "donne": true,
	"donner": true, "stp": true, "svp": true,
	// English
	"the": true, "an": true, "is": true, "are": true, "was": true, "were": true,
	"of": true, "to": true, "in": true, "on": true, "for": true, "with": true,
	"and": true, "or": true, "what": true, "which": true, "who": true, "how": true,
	"why": true, "when": true, "where": true, "does": true, "do": true, "can": true,
	"it": true, "this": true, "that": true, "my": true, "your": true,
	"about": true, "tell": true, "please": true,
}

// IsStopword reports whether a normalized token carries no topical meaning.
func IsStopword(tok string) bool {
	return stopwords[tok]
}
