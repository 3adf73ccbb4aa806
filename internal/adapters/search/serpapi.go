// Package search implements the web-search capability on SerpAPI.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/ojeda-dev/ayun-chat/internal/domain"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// Client implements domain.SearchClient against SerpAPI. Requests go
// through a token-bucket limiter so a burst of chat turns cannot blow
// through the provider quota.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	baseURL     string
	apiKey      string
	engine      string
	callTimeout time.Duration
}

type Config struct {
	APIKey  string
	Engine  string
	BaseURL string

	RequestsPerSecond float64
	Burst             int
	CallTimeout       time.Duration
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	engine := cfg.Engine
	if engine == "" {
		engine = "google"
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2.0
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	callTimeout := cfg.CallTimeout
	if callTimeout <= 0 {
		callTimeout = 30 * time.Second
	}

	return &Client{
		httpClient:  &http.Client{},
		limiter:     rate.NewLimiter(rate.Limit(rps), burst),
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		engine:      engine,
		callTimeout: callTimeout,
	}
}

// Search runs one query against the configured engine and returns the
// normalized organic results. Any transport, provider, or decode failure is
// an error; the pipeline absorbs it as "search unavailable".
func (c *Client) Search(ctx context.Context, query string) (*domain.SearchResultSet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("search rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("engine", c.engine)
	params.Set("q", query)
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned status %d", resp.StatusCode)
	}

	var results domain.SearchResultSet
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	return &results, nil
}
