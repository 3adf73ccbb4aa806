package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojeda-dev/ayun-chat/internal/app/chat"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

// fakeLLM replays scripted replies in call order: the first call is always
// the classifier, the second the final generation.
type fakeLLM struct {
	replies []string
	errs    []error
	prompts []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)

	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var out string
	if i < len(f.replies) {
		out = f.replies[i]
	}
	return out, err
}

type fakeSearch struct {
	set     *domain.SearchResultSet
	err     error
	queries []string
}

func (f *fakeSearch) Search(ctx context.Context, query string) (*domain.SearchResultSet, error) {
	f.queries = append(f.queries, query)
	return f.set, f.err
}

func userTurn(content string) *domain.Message {
	return &domain.Message{Role: domain.RoleUser, Content: content}
}

func assistantTurn(content string) *domain.Message {
	return &domain.Message{Role: domain.RoleAssistant, Content: content}
}

func TestHandleTurnRejectsEmptyTurnList(t *testing.T) {
	llm := &fakeLLM{}
	search := &fakeSearch{}
	p := chat.NewPipeline(llm, search)

	_, err := p.HandleTurn(context.Background(), nil)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, llm.prompts, "no external calls on invalid input")
	assert.Empty(t, search.queries)
}

func TestHandleTurnRejectsNonUserLastTurn(t *testing.T) {
	llm := &fakeLLM{}
	search := &fakeSearch{}
	p := chat.NewPipeline(llm, search)

	turns := []*domain.Message{
		userTurn("hi"),
		assistantTurn("hello"),
	}

	_, err := p.HandleTurn(context.Background(), turns)

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, llm.prompts, "no external calls on invalid input")
	assert.Empty(t, search.queries)
}

func TestHandleTurnSearchEnhanced(t *testing.T) {
	llm := &fakeLLM{
		replies: []string{
			`{"needsSearch": true, "searchQuery": "weather Paris today", "reasoning": "time-sensitive"}`,
			"It is sunny in Paris.",
		},
	}
	search := &fakeSearch{
		set: &domain.SearchResultSet{
			OrganicResults: []domain.SearchResultItem{
				{Title: "Paris Weather", Snippet: "Sunny, 24C", Link: "https://weather.example/paris"},
				{Title: "Meteo Paris", Snippet: "Clear skies", Link: "https://meteo.example/paris"},
			},
		},
	}
	p := chat.NewPipeline(llm, search)

	payload, err := p.HandleTurn(context.Background(), []*domain.Message{
		userTurn("What's the weather in Paris today?"),
	})
	require.NoError(t, err)

	assert.True(t, payload.SearchAnalysis.NeedsSearch)
	assert.Equal(t, "It is sunny in Paris.", payload.Content)
	assert.Equal(t, domain.RoleAssistant, payload.Role)
	require.NotNil(t, payload.SearchResults)
	assert.Len(t, payload.SearchResults.OrganicResults, 2)

	require.Equal(t, []string{"weather Paris today"}, search.queries)

	// The generation prompt carries both result blocks, in order.
	require.Len(t, llm.prompts, 2)
	final := llm.prompts[1]
	assert.Contains(t, final, `I have performed a Google search for: "weather Paris today"`)
	assert.Equal(t, 2, strings.Count(final, "Title: "))
	assert.Less(t,
		strings.Index(final, "Paris Weather"),
		strings.Index(final, "Meteo Paris"))
}

func TestHandleTurnNoSearchNeeded(t *testing.T) {
	llm := &fakeLLM{
		replies: []string{
			`{"needsSearch": false, "searchQuery": "", "reasoning": "conceptual question"}`,
			"Recursion is a function calling itself.",
		},
	}
	search := &fakeSearch{}
	p := chat.NewPipeline(llm, search)

	payload, err := p.HandleTurn(context.Background(), []*domain.Message{
		userTurn("Explain recursion"),
	})
	require.NoError(t, err)

	assert.Empty(t, search.queries, "search step must never run")
	assert.Nil(t, payload.SearchResults)
	assert.False(t, payload.SearchAnalysis.NeedsSearch)

	// With no search and no prior turns, the model sees the user message
	// verbatim.
	require.Len(t, llm.prompts, 2)
	assert.Equal(t, "Explain recursion", llm.prompts[1])
}

func TestHandleTurnClassifierFailureDegrades(t *testing.T) {
	llm := &fakeLLM{
		replies: []string{"", "Here is what I know."},
		errs:    []error{errors.New("model unavailable"), nil},
	}
	search := &fakeSearch{}
	p := chat.NewPipeline(llm, search)

	payload, err := p.HandleTurn(context.Background(), []*domain.Message{
		userTurn("Tell me about black holes"),
	})
	require.NoError(t, err, "classifier failure must not fail the turn")

	assert.Equal(t, "Unable to analyze search needs", payload.SearchAnalysis.Reasoning)
	assert.False(t, payload.SearchAnalysis.NeedsSearch)
	assert.Nil(t, payload.SearchResults)
	assert.Equal(t, "Here is what I know.", payload.Content)
	assert.Empty(t, search.queries)
}

func TestHandleTurnSearchFailureFallsBackToRecommendation(t *testing.T) {
	llm := &fakeLLM{
		replies: []string{
			`{"needsSearch": true, "searchQuery": "latest Go release", "reasoning": "version info changes"}`,
			"Go 1.25 is the latest I know of.",
		},
	}
	search := &fakeSearch{err: errors.New("provider down")}
	p := chat.NewPipeline(llm, search)

	payload, err := p.HandleTurn(context.Background(), []*domain.Message{
		userTurn("What is the latest Go release?"),
	})
	require.NoError(t, err)

	require.Len(t, llm.prompts, 2)
	final := llm.prompts[1]
	assert.Contains(t, final, "a web search would be recommended")
	assert.NotContains(t, final, "I have performed a Google search")
	assert.Nil(t, payload.SearchResults)
}

func TestHandleTurnGenerationFailureIsUpstream(t *testing.T) {
	llm := &fakeLLM{
		replies: []string{`{"needsSearch": false, "searchQuery": "", "reasoning": "n/a"}`, ""},
		errs:    []error{nil, errors.New("quota exceeded")},
	}
	p := chat.NewPipeline(llm, &fakeSearch{})

	_, err := p.HandleTurn(context.Background(), []*domain.Message{userTurn("hi")})

	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestHandleTurnWrapsPriorContext(t *testing.T) {
	llm := &fakeLLM{
		replies: []string{
			`{"needsSearch": false, "searchQuery": "", "reasoning": "follow-up"}`,
			"Sure, here is more detail.",
		},
	}
	p := chat.NewPipeline(llm, &fakeSearch{})

	turns := []*domain.Message{
		userTurn("Explain recursion"),
		assistantTurn("Recursion is a function calling itself."),
		userTurn("Can you give an example?"),
	}

	_, err := p.HandleTurn(context.Background(), turns)
	require.NoError(t, err)

	require.Len(t, llm.prompts, 2)
	final := llm.prompts[1]
	assert.True(t, strings.HasPrefix(final, "user: Explain recursion\nassistant: Recursion is a function calling itself."))
	assert.True(t, strings.HasSuffix(final, "\n\nUser: Can you give an example?\nAssistant:"))
}

func TestHandleTurnEmptyQueryFallsBackToUserMessage(t *testing.T) {
	llm := &fakeLLM{
		replies: []string{
			`{"needsSearch": true, "searchQuery": "", "reasoning": "needs fresh data"}`,
			"Answer.",
		},
	}
	search := &fakeSearch{set: &domain.SearchResultSet{}}
	p := chat.NewPipeline(llm, search)

	_, err := p.HandleTurn(context.Background(), []*domain.Message{
		userTurn("bitcoin price"),
	})
	require.NoError(t, err)

	require.Equal(t, []string{"bitcoin price"}, search.queries)
}
