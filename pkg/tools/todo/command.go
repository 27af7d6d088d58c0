package todo

import (
	"regexp"
	"strconv"
	"strings"

	"ai-tutor-be/pkg/textnorm"
)

type Action string

const (
	ActionAdd     Action = "add"
	ActionDone    Action = "done"
	ActionList    Action = "list"
	ActionClear   Action = "clear"
	ActionUnknown Action = "unknown"
)

// Command is the canonical form of a todo request.
type Command struct {
	Action Action
	Text   string
	ID     int
	// RawID keeps what followed "done:" when it was not a number.
	RawID string
}

// String renders the canonical command: "add: <text>", "done: <n>", "list"
// or "clear".
func (c Command) String() string {
	switch c.Action {
	case ActionAdd:
		return "add: " + c.Text
	case ActionDone:
		if c.RawID != "" {
			return "done: " + c.RawID
		}
		return "done: " + strconv.Itoa(c.ID)
	default:
		return string(c.Action)
	}
}

var (
	addPattern   = regexp.MustCompile(`(?i)^\s*(?:todo\s+)?(?:ajoute|ajouter|rajoute|add(?:\s+task)?)\b\s*:?\s*(.*)$`)
	donePattern  = regexp.MustCompile(`(?i)^\s*(?:termine|terminer|fini|finis|done|coche|complete|valide)\b\s*:?\s*(?:la\s+)?(?:tache\s+|task\s+)?(?:n°|no\.?|#)?\s*(\S*)`)
	clearPattern = regexp.MustCompile(`^(vide|vider|efface|supprime|reset|clear)(( tout)?$| (la liste|ma liste|mes taches|les taches|la todo|todo|tasks|the list|list)\b)`)
	listPattern  = regexp.MustCompile(`\b(liste|list|todo|tasks|taches|tache)\b`)
	numberToken  = regexp.MustCompile(`^[0-9]+$`)
)

// ParseCommand maps a natural language request to a Command. The task text
// keeps its original casing and accents.
func ParseCommand(text string) Command {
	raw := strings.TrimSpace(text)

	if m := addPattern.FindStringSubmatch(raw); m != nil {
		return Command{Action: ActionAdd, Text: strings.TrimSpace(m[1])}
	}

	folded := strings.TrimSpace(textnorm.Fold(raw))
	if m := donePattern.FindStringSubmatch(folded); m != nil {
		token := strings.Trim(m[1], ".,;:!?")
		if !numberToken.MatchString(token) {
			return Command{Action: ActionDone, RawID: token}
		}
		id, err := strconv.Atoi(token)
		if err != nil {
			return Command{Action: ActionDone, RawID: token}
		}
		return Command{Action: ActionDone, ID: id}
	}

	phrase := textnorm.Phrase(raw)
	switch {
	case clearPattern.MatchString(phrase):
		return Command{Action: ActionClear}
	case listPattern.MatchString(phrase):
		return Command{Action: ActionList}
	}
	return Command{Action: ActionUnknown}
}
