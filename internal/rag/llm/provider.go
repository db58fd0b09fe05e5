package llm

import "context"

// Provider generates an answer for a fully assembled prompt. Prompt assembly
// (mode guidance, retrieved context, metadata) happens upstream in the rag
// service, providers only run the model.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
