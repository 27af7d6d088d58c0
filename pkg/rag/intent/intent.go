package intent

import "fmt"

// Kind tags the variant of an Intent
type Kind string

const (
	KindConfirmation Kind = "CONFIRMATION"  // yes/no answer to a pending web-search offer
	KindEmailCommand Kind = "EMAIL_COMMAND" // send the last answer to an address
	KindCalc         Kind = "CALC"
	KindWebSearch    Kind = "WEB_SEARCH"
	KindWeather      Kind = "WEATHER"
	KindTodo         Kind = "TODO"
	KindSmalltalk    Kind = "SMALLTALK"
	KindRetrieval    Kind = "RETRIEVAL" // default: answer from internal documents
)

// Kinds lists every variant in rule precedence order
func Kinds() []Kind {
	return []Kind{
		KindConfirmation,
		KindEmailCommand,
		KindCalc,
		KindWebSearch,
		KindWeather,
		KindTodo,
		KindSmalltalk,
		KindRetrieval,
	}
}

// Intent is the classification of one utterance. Exactly one Kind is set;
// the other fields are meaningful only for the kinds noted.
type Intent struct {
	Kind Kind

	Affirmative bool   // Confirmation
	Address     string // EmailCommand

	// Payload is the text handed to the handler: the query for WebSearch,
	// the original utterance for every other kind (the calculator, weather
	// and todo handlers parse it themselves).
	Payload string

	// Explicit is set on WebSearch when the user asked for the web, as
	// opposed to the current-events fast path.
	Explicit bool

	Rule string // name of the rule that produced the intent
}

func (i Intent) String() string {
	switch i.Kind {
	case KindConfirmation:
		if i.Affirmative {
			return "Confirmation(yes)"
		}
		return "Confirmation(no)"
	case KindEmailCommand:
		return fmt.Sprintf("EmailCommand(%s)", i.Address)
	case KindSmalltalk, KindCalc:
		return string(i.Kind)
	default:
		return fmt.Sprintf("%s(%q)", i.Kind, i.Payload)
	}
}

func Confirmation(yes bool) Intent {
	return Intent{Kind: KindConfirmation, Affirmative: yes}
}

func EmailCommand(address string) Intent {
	return Intent{Kind: KindEmailCommand, Address: address}
}

func Calc(text string) Intent {
	return Intent{Kind: KindCalc, Payload: text}
}

func WebSearch(query string, explicit bool) Intent {
	return Intent{Kind: KindWebSearch, Payload: query, Explicit: explicit}
}

func Weather(city string) Intent {
	return Intent{Kind: KindWeather, Payload: city}
}

func Todo(command string) Intent {
	return Intent{Kind: KindTodo, Payload: command}
}

func Smalltalk(text string) Intent {
	return Intent{Kind: KindSmalltalk, Payload: text}
}

func Retrieval(question string) Intent {
	return Intent{Kind: KindRetrieval, Payload: question}
}
