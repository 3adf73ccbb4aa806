package chat

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ojeda-dev/ayun-chat/internal/app/prompt"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
	"github.com/ojeda-dev/ayun-chat/internal/observability"
)

// defaultReasoning is the reasoning carried by the fallback decision when
// the classifier could not produce a usable verdict.
const defaultReasoning = "Unable to analyze search needs"

// Classifier decides whether a user message warrants a web search by asking
// the language model and parsing its structured reply. It never fails: any
// model or parse error degrades to "no search".
type Classifier struct {
	llm domain.LLMClient
}

func NewClassifier(llm domain.LLMClient) *Classifier {
	return &Classifier{llm: llm}
}

// rawDecision mirrors the JSON the model is asked to emit. NeedsSearch is a
// pointer so a reply that parses as JSON but omits the field still counts
// as malformed. SearchQuery is any: models sometimes emit null or a number
// there, and anything that is not a string coerces to "".
type rawDecision struct {
	NeedsSearch *bool  `json:"needsSearch"`
	SearchQuery any    `json:"searchQuery"`
	Reasoning   string `json:"reasoning"`
}

// AnalyzeSearchNeeds runs the classification prompt for one user message.
func (c *Classifier) AnalyzeSearchNeeds(ctx context.Context, userMessage string) domain.SearchDecision {
	log := observability.LoggerFromContext(ctx)

	analysisPrompt := prompt.Render(prompt.SearchAnalysis, map[string]string{
		prompt.PlaceholderUserMessage: userMessage,
	})

	raw, err := c.llm.Generate(ctx, analysisPrompt)
	if err != nil {
		log.Warn("search-need classification failed, defaulting to no search", "error", err)
		return defaultDecision()
	}

	var parsed rawDecision
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		log.Warn("classifier returned non-JSON output, defaulting to no search", "error", err)
		return defaultDecision()
	}
	if parsed.NeedsSearch == nil {
		log.Warn("classifier output missing needsSearch, defaulting to no search")
		return defaultDecision()
	}

	query, _ := parsed.SearchQuery.(string)

	return domain.SearchDecision{
		NeedsSearch: *parsed.NeedsSearch,
		SearchQuery: query,
		Reasoning:   parsed.Reasoning,
	}
}

func defaultDecision() domain.SearchDecision {
	return domain.SearchDecision{
		NeedsSearch: false,
		SearchQuery: "",
		Reasoning:   defaultReasoning,
	}
}

// stripCodeFence removes a wrapping fenced code block (with an optional
// language tag) from model output, since Gemini routinely fences JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the rest of the fence line (language tag, if any).
		s = s[i+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
