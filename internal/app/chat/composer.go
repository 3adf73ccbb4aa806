package chat

import (
	"strings"

	"github.com/ojeda-dev/ayun-chat/internal/app/prompt"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

const (
	// maxResultBlocks is how many organic results make it into the prompt.
	// Deliberately an unconditional prefix: no ranking, no deduplication.
	maxResultBlocks = 3

	noResultsPlaceholder = "No search results found."
)

// EffectiveQuery is the query the search step and the composer agree on:
// the classifier's suggestion when present, the raw user message otherwise.
func EffectiveQuery(decision domain.SearchDecision, userMessage string) string {
	if decision.SearchQuery != "" {
		return decision.SearchQuery
	}
	return userMessage
}

// Compose builds the message-level prompt from the classifier decision and
// the search outcome. With no search needed it is the user message itself;
// with results it is the search-enhanced template; with a failed search it
// is the recommendation template.
func Compose(userMessage string, decision domain.SearchDecision, results *domain.SearchResultSet) string {
	if !decision.NeedsSearch {
		return userMessage
	}

	query := EffectiveQuery(decision, userMessage)

	if results != nil {
		return prompt.Render(prompt.SearchEnhanced, map[string]string{
			prompt.PlaceholderSearchQuery:   query,
			prompt.PlaceholderSearchResults: formatResults(results),
			prompt.PlaceholderUserRequest:   userMessage,
		})
	}

	return prompt.Render(prompt.SearchRecommendation, map[string]string{
		prompt.PlaceholderSearchQuery: query,
		prompt.PlaceholderUserRequest: userMessage,
	})
}

// WithContext wraps the composed prompt with the prior turns. On the first
// turn there is no role scaffolding at all: the composed prompt goes to the
// model unchanged.
func WithContext(prior []*domain.Message, composed string) string {
	if len(prior) == 0 {
		return composed
	}

	lines := make([]string, 0, len(prior))
	for _, m := range prior {
		lines = append(lines, string(m.Role)+": "+m.Content)
	}

	return strings.Join(lines, "\n") + "\n\nUser: " + composed + "\nAssistant:"
}

func formatResults(set *domain.SearchResultSet) string {
	items := set.OrganicResults
	if len(items) == 0 {
		return noResultsPlaceholder
	}
	if len(items) > maxResultBlocks {
		items = items[:maxResultBlocks]
	}

	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, "Title: "+item.Title+"\nSnippet: "+item.Snippet+"\nURL: "+item.Link)
	}
	return strings.Join(blocks, "\n\n")
}
