package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiClient implements domain.LLMClient on Vertex AI (Gemini),
// non-streaming. The same client serves classification and generation.
type GeminiClient struct {
	client      *genai.Client
	modelName   string
	callTimeout time.Duration
}

type GeminiConfig struct {
	ProjectID   string
	Location    string
	ModelName   string
	CallTimeout time.Duration
}

// NewGeminiClient creates an LLM client backed by Vertex AI.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.ProjectID == "" || cfg.Location == "" {
		return nil, fmt.Errorf("project and location are required for the Vertex AI client")
	}

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.ProjectID,
		Location: cfg.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Vertex AI client: %w", err)
	}

	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}

	return &GeminiClient{
		client:      client,
		modelName:   modelName,
		callTimeout: callTimeout,
	}, nil
}

// Generate implements domain.LLMClient: one text prompt in, generated text
// out. A timeout counts as a failed call; the caller decides whether that
// degrades or surfaces.
func (g *GeminiClient) Generate(ctx context.Context, promptText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(promptText, genai.RoleUser),
	}

	temp := float32(0.7)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: outputTokens,
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	// An empty candidate is not an error: the caller surfaces it as an
	// empty assistant message.
	return res.Text(), nil
}
