// Package prompt holds the parameterized prompt templates the chat pipeline
// renders. Rendering is literal substring replacement, not a template
// engine, so placeholder names must not be substrings of each other.
package prompt

import (
	"fmt"
	"strings"
)

type TemplateID string

const (
	// SearchAnalysis asks the model whether a web search would help and
	// constrains the reply to a small JSON object.
	SearchAnalysis TemplateID = "search_analysis"
	// SearchEnhanced blends a results block into the final prompt.
	SearchEnhanced TemplateID = "search_enhanced"
	// SearchRecommendation is used when search was warranted but produced
	// nothing usable.
	SearchRecommendation TemplateID = "search_recommendation"
)

// Placeholder names, bound by callers via Render.
const (
	PlaceholderUserMessage   = "userMessage"
	PlaceholderSearchQuery   = "searchQuery"
	PlaceholderSearchResults = "searchResults"
	PlaceholderUserRequest   = "userRequest"
)

const searchAnalysisTemplate = `Analyze the following user message and determine if a Google search would be helpful to provide a better response.

User message: "{userMessage}"

Consider the following factors:
1. Does the message ask for current events, recent information, or time-sensitive data?
2. Does it request specific facts, statistics, or data that might be outdated?
3. Does it ask about products, services, or information that changes frequently?
4. Does it request information about specific people, places, or events that might need verification?
5. Does it ask for recommendations or reviews that would benefit from current information?

Respond in the following JSON format:
{
  "needsSearch": true/false,
  "searchQuery": "specific search terms if search is needed, otherwise null",
  "reasoning": "brief explanation of why search is or isn't needed"
}

Only respond with valid JSON.`

const searchEnhancedTemplate = `I have performed a Google search for: "{searchQuery}"

Search Results:
{searchResults}

Based on these search results, please provide a comprehensive answer to the user's request: {userRequest}

Please cite the sources when appropriate and provide the most current information available.`

const searchRecommendationTemplate = `The user's request may benefit from current information. Please note that a search could provide more up-to-date information for: "{searchQuery}"

User's request: {userRequest}

Please provide a helpful response, but note that for the most current information, a web search would be recommended.`

type template struct {
	text         string
	placeholders []string
}

var templates = map[TemplateID]template{
	SearchAnalysis: {
		text:         searchAnalysisTemplate,
		placeholders: []string{PlaceholderUserMessage},
	},
	SearchEnhanced: {
		text: searchEnhancedTemplate,
		placeholders: []string{
			PlaceholderSearchQuery,
			PlaceholderSearchResults,
			PlaceholderUserRequest,
		},
	},
	SearchRecommendation: {
		text: searchRecommendationTemplate,
		placeholders: []string{
			PlaceholderSearchQuery,
			PlaceholderUserRequest,
		},
	},
}

// Render substitutes the given bindings into the named template. Unknown
// template ids render as the empty string; Validate catches that class of
// mistake at startup, so runtime rendering never fails.
func Render(id TemplateID, bindings map[string]string) string {
	tpl, ok := templates[id]
	if !ok {
		return ""
	}

	out := tpl.text
	for name, value := range bindings {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// Validate checks that every declared placeholder actually occurs in its
// template text. Called once at process start so a broken template fails
// fast instead of silently emitting unsubstituted braces.
func Validate() error {
	for id, tpl := range templates {
		for _, name := range tpl.placeholders {
			if !strings.Contains(tpl.text, "{"+name+"}") {
				return fmt.Errorf("template %s: missing placeholder {%s}", id, name)
			}
		}
	}
	return nil
}
