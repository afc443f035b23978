package chat

import "context"

// LLMClient produces the assistant side of the conversation.
type LLMClient interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}
