package chat

const (
	ChatRoleUser   = "user"
	ChatRoleAgent  = "assistant"
	ChatRoleSystem = "system"
)

// ChatMessage is a single message sent to or received from an LLM provider.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is a provider's reply.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
}

// System and User are shorthands for building prompts.
func System(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleSystem, Content: content}
}

func User(content string) ChatMessage {
	return ChatMessage{Role: ChatRoleUser, Content: content}
}
