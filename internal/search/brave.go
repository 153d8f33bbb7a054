package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ppiankov/veracity/internal/model"
)

// BraveProvider searches the Brave Search API. Requires a subscription
// token; the adapter is only registered when one is configured.
type BraveProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Brave API structures
type braveResponse struct {
	Web struct {
		Results []struct {
			URL         string `json:"url"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

// NewBraveProvider creates a Brave Search adapter
func NewBraveProvider(apiKey string, timeout time.Duration) (*BraveProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("brave API key is required")
	}
	return &BraveProvider{
		apiKey:     apiKey,
		baseURL:    "https://api.search.brave.com/res/v1",
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the provider name
func (p *BraveProvider) Name() string {
	return "brave"
}

// Search queries the Brave web search endpoint
func (p *BraveProvider) Search(ctx context.Context, query string, maxResults int) ([]model.SearchHit, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/web/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed braveResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hits := make([]model.SearchHit, 0, len(parsed.Web.Results))
	for _, item := range parsed.Web.Results {
		hits = append(hits, model.SearchHit{
			URL:     item.URL,
			Title:   item.Title,
			Snippet: item.Description,
		})
		if len(hits) == maxResults {
			break
		}
	}
	return hits, nil
}
