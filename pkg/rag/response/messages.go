// Package response holds the user-facing French texts of the assistant and
// renders handler results as markdown.
package response

const (
	WebSearchOffer = "Je n’ai rien trouvé dans **les documents internes**.\n\n" +
		"👉 Veux-tu que je cherche **sur le web** ? Réponds par **oui** ou **non**."

	StayInternal = "👍 D'accord, je reste sur tes documents internes. Comment puis-je t'aider autrement ?"

	NoPreviousAnswer = "Je n’ai pas de réponse précédente à envoyer."

	EmailSubject = "Réponse de l'assistant"
	EmailSent    = "E-mail envoyé ✅"

	NoWebResults = "Aucun résultat web pour cette recherche."
	EmptyTodo    = "La liste est vide."
)

// Tool names as shown in reply headers and failure messages
const (
	ToolCalculator = "Calculatrice"
	ToolWeather    = "Météo"
	ToolTodo       = "TODO"
	ToolWebSearch  = "Recherche Web (DuckDuckGo)"
	ToolSmalltalk  = "Discussion"
	ToolMailer     = "E-mail"
)
