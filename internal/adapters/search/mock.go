package search

import (
	"context"

	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

// MockSearch is the local-mode stand-in for SerpAPI. It returns a fixed
// pair of results for any query.
type MockSearch struct{}

func NewMockSearch() *MockSearch {
	return &MockSearch{}
}

func (m *MockSearch) Search(ctx context.Context, query string) (*domain.SearchResultSet, error) {
	return &domain.SearchResultSet{
		OrganicResults: []domain.SearchResultItem{
			{
				Title:   "Mock result for " + query,
				Snippet: "This result was produced by the local mock search provider.",
				Link:    "https://example.com/mock-1",
			},
			{
				Title:   "Second mock result",
				Snippet: "Enable the real provider with SERP_API_KEY to search the web.",
				Link:    "https://example.com/mock-2",
			},
		},
	}, nil
}
