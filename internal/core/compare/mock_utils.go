package compare

import (
	"context"
	"sync"
)

// MockLLMClient is a scripted completion client for tests. Responses
// are popped from Queue first, then Response repeats. GenerateFunc, when
// set, overrides everything. Safe for the comparator's concurrent use.
type MockLLMClient struct {
	mu           sync.Mutex
	Response     string
	Err          error
	Queue        []string
	GenerateFunc func(prompt string) (string, error)
	Prompts      []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Queue) > 0 {
		resp := m.Queue[0]
		m.Queue = m.Queue[1:]
		return resp, nil
	}
	return m.Response, nil
}

// Calls reports how many completions were requested.
func (m *MockLLMClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
