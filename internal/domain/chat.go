package domain

// ChatMessage is one turn of an assistant conversation in the
// OpenAI-compatible wire shape used by the chat completion API.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
