package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	OllamaDefaultBaseURL = "http://localhost:11434"
	OllamaDefaultModel   = "llama3.2:3b"

	HuggingFaceDefaultBaseURL = "https://router.huggingface.co/v1"

	SmalltalkTemperature = 0.5
	SmalltalkMaxTokens   = 256
	// number of previous history messages sent along with a greeting
	SmalltalkHistoryWindow = 6

	SmalltalkSystemPrompt = `Tu es un assistant académique amical et bref.
Réponds en une ou deux phrases, dans la langue de l'utilisateur.
Ne donne pas d'informations de cours : pour cela l'utilisateur pose une question sur ses documents.`
)
