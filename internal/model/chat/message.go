package chat

// Roles a Message may carry. The completion backend only ever sees
// these two plus the persona's system entry, which is not stored.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a session. Immutable once appended.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
