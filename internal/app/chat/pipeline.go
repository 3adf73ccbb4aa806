// Package chat implements the search-augmented response pipeline: a
// classifier that decides whether a user message warrants a web search, a
// composer that blends results into the prompt, and the sequential pipeline
// driving classify → search → compose → generate for one turn.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ojeda-dev/ayun-chat/internal/domain"
	"github.com/ojeda-dev/ayun-chat/internal/observability"
)

// Pipeline runs one request/response cycle. It holds no state across
// invocations; concurrent turns are safe by construction.
type Pipeline struct {
	classifier *Classifier
	search     domain.SearchClient
	llm        domain.LLMClient
}

func NewPipeline(llm domain.LLMClient, search domain.SearchClient) *Pipeline {
	return &Pipeline{
		classifier: NewClassifier(llm),
		search:     search,
		llm:        llm,
	}
}

// HandleTurn validates the turn sequence and drives the four stages in
// order. Classifier and search failures degrade locally; a failed final
// generation surfaces as domain.ErrUpstream.
func (p *Pipeline) HandleTurn(ctx context.Context, turns []*domain.Message) (*domain.ResponsePayload, error) {
	if len(turns) == 0 {
		return nil, fmt.Errorf("%w: empty turn list", domain.ErrInvalidInput)
	}

	last := turns[len(turns)-1]
	if last.Role != domain.RoleUser {
		return nil, fmt.Errorf("%w: last turn must be from user", domain.ErrInvalidInput)
	}

	log := observability.LoggerFromContext(ctx)
	userMessage := last.Content

	start := time.Now()
	decision := p.classifier.AnalyzeSearchNeeds(ctx, userMessage)
	log.Info("classify stage done",
		"needs_search", decision.NeedsSearch,
		"elapsed_ms", time.Since(start).Milliseconds())

	results := p.runSearch(ctx, decision, userMessage)

	composed := Compose(userMessage, decision, results)
	final := WithContext(turns[:len(turns)-1], composed)

	start = time.Now()
	content, err := p.llm.Generate(ctx, final)
	if err != nil {
		log.Error("generation failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	log.Info("generate stage done",
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds())

	return &domain.ResponsePayload{
		Content:        content,
		Role:           domain.RoleAssistant,
		SearchAnalysis: decision,
		SearchResults:  results,
	}, nil
}

// runSearch is the executor stage: zero or one provider calls per turn. Any
// provider failure is absorbed and reported as a nil result set, which the
// composer turns into the recommendation prompt.
func (p *Pipeline) runSearch(ctx context.Context, decision domain.SearchDecision, userMessage string) *domain.SearchResultSet {
	if !decision.NeedsSearch {
		return nil
	}

	log := observability.LoggerFromContext(ctx)

	query := EffectiveQuery(decision, userMessage)
	if strings.TrimSpace(query) == "" {
		log.Warn("search requested but no usable query, skipping")
		return nil
	}

	start := time.Now()
	results, err := p.search.Search(ctx, query)
	if err != nil || results == nil {
		log.Warn("search failed, continuing without results",
			"query", query,
			"error", err)
		return nil
	}
	log.Info("search stage done",
		"query", query,
		"result_count", len(results.OrganicResults),
		"elapsed_ms", time.Since(start).Milliseconds())

	return results
}
