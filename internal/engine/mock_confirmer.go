package engine

import (
	"context"
	"sync"
)

// MockConfirmer is a test implementation of the Confirmer interface.
type MockConfirmer struct {
	err     error
	prompts []string
	mu      sync.Mutex
	answer  bool
}

// NewMockConfirmer creates a confirmer that always gives answer.
func NewMockConfirmer(answer bool) *MockConfirmer {
	return &MockConfirmer{answer: answer}
}

// WithError makes every Confirm call fail with err.
func (m *MockConfirmer) WithError(err error) *MockConfirmer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Confirm records the prompt and returns the preset answer.
func (m *MockConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return false, m.err
	}
	return m.answer, nil
}

// Prompts returns every prompt seen so far.
func (m *MockConfirmer) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}
