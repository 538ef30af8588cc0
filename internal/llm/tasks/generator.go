package tasks

import (
	"context"

	"formforge/internal/llm"
)

// Generator is the slice of the generation client the tasks consume.
// *llm.Client satisfies it; tests substitute canned responses.
type Generator interface {
	GenerateJSON(ctx context.Context, req llm.Request) (string, error)
}
