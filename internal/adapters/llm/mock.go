package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockLLM is the local-mode stand-in for the Gemini client. It answers the
// search-analysis prompt with a well-formed "no search" verdict so the
// pipeline behaves sensibly without credentials, and echoes everything else.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "Only respond with valid JSON.") {
		return `{"needsSearch": false, "searchQuery": null, "reasoning": "mock classifier always answers from model knowledge"}`, nil
	}
	return fmt.Sprintf("This is a mock reply. You asked: %q", prompt), nil
}
