package llm

// Role is the sender of a chat message. Answer generation only ever sends
// a system prompt and a user turn.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is a single chat message.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest holds the parameters of one answer-generation call.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// CompletionResponse is the provider's reply. Only the generated text is
// consumed downstream; Model records which model actually served the
// request.
type CompletionResponse struct {
	Content string
	Model   string
}
