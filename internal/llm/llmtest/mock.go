// Package llmtest provides a scriptable llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/resume-builder/internal/llm"
)

// MockClient implements llm.Client for testing. Unset funcs return empty results.
// Every call is recorded so tests can inspect the prompts that were sent.
type MockClient struct {
	GenerateContentFunc    func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateJSONFunc       func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GenerateStructuredFunc func(ctx context.Context, req llm.StructuredRequest) (string, error)
	CloseFunc              func() error

	mu       sync.Mutex
	requests []llm.StructuredRequest
}

var _ llm.Client = (*MockClient)(nil)

// GenerateContent implements llm.Client.
func (m *MockClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(llm.StructuredRequest{Prompt: prompt, Tier: tier})
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

// GenerateJSON implements llm.Client.
func (m *MockClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(llm.StructuredRequest{Prompt: prompt, Tier: tier})
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

// GenerateStructured implements llm.Client.
func (m *MockClient) GenerateStructured(ctx context.Context, req llm.StructuredRequest) (string, error) {
	m.record(req)
	if m.GenerateStructuredFunc != nil {
		return m.GenerateStructuredFunc(ctx, req)
	}
	return "{}", nil
}

// GetModel implements llm.Client.
func (m *MockClient) GetModel(llm.ModelTier) string {
	return "mock-model"
}

// Close implements llm.Client.
func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Requests returns the calls made so far, in order.
func (m *MockClient) Requests() []llm.StructuredRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.StructuredRequest(nil), m.requests...)
}

func (m *MockClient) record(req llm.StructuredRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
}
