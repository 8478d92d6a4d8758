package llm

import "context"

// Gateway defines the interface for chat-completion text generation
type Gateway interface {
	// Complete sends one system+user message pair and returns the
	// model's text response as-is
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GetName returns the name of the gateway implementation
	GetName() string
}
