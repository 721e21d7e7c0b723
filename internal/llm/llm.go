package llm

import "context"

// Message is one role-tagged entry in a chat prompt.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Backend is the inference boundary: it accepts an ordered prompt and
// eventually yields raw text or fails. Nothing beyond that is assumed
// about the underlying provider.
type Backend interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, messages []Message) (string, error)

func (f BackendFunc) Complete(ctx context.Context, messages []Message) (string, error) {
	return f(ctx, messages)
}
