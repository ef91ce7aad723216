package llm

import (
	"context"
)

// LLMClient is the completion capability the pipeline depends on: submit
// a text prompt, receive a text completion. Implementations classify
// provider failures into the error kinds in errors.go so callers can
// distinguish credential problems from capacity problems.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
