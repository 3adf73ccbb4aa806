package domain

// SearchDecision is the classifier's verdict on whether a web search would
// improve the answer to the current user message. SearchQuery is empty when
// NeedsSearch is false, and may also be empty when the model declined to
// suggest one; callers then fall back to the raw user message.
type SearchDecision struct {
	NeedsSearch bool   `json:"needsSearch"`
	SearchQuery string `json:"searchQuery"`
	Reasoning   string `json:"reasoning"`
}

// SearchResultItem is a single organic result from the search provider.
type SearchResultItem struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// SearchResultSet is the provider's normalized response. An empty or absent
// OrganicResults list is a valid outcome, distinct from a failed search
// (which is represented as a nil *SearchResultSet).
type SearchResultSet struct {
	OrganicResults []SearchResultItem `json:"organic_results,omitempty"`
}

// ResponsePayload is what one pipeline invocation hands back to the caller.
// SearchAnalysis and SearchResults are diagnostic: they let the client show
// why (and with what) the answer was search-augmented.
type ResponsePayload struct {
	Content        string
	Role           Role
	SearchAnalysis SearchDecision
	SearchResults  *SearchResultSet
}
