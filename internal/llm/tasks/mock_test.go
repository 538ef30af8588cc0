package tasks

import (
	"context"

	"formforge/internal/llm"
)

// mockGenerator returns canned completions, recording the requests it saw.
type mockGenerator struct {
	content  string
	err      error
	requests []llm.Request
}

func (m *mockGenerator) GenerateJSON(ctx context.Context, req llm.Request) (string, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.content, nil
}
