package llm

import "context"

// Provider is the Completion Service contract: text in, text out. Adapters
// build the full prompt; providers only carry it to the model.
type Provider interface {
	Generate(ctx context.Context, systemInstruction string, prompt string) (string, error)
}
