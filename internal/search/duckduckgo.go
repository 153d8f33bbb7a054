package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ppiankov/veracity/internal/model"
)

// DuckDuckGoProvider searches the DuckDuckGo instant-answer API. The API
// needs no key, which makes it a reasonable zero-configuration default.
type DuckDuckGoProvider struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// DuckDuckGo API structures
type ddgTopic struct {
	FirstURL string     `json:"FirstURL"`
	Text     string     `json:"Text"`
	Topics   []ddgTopic `json:"Topics"`
}

type ddgResponse struct {
	Heading       string     `json:"Heading"`
	AbstractURL   string     `json:"AbstractURL"`
	AbstractText  string     `json:"AbstractText"`
	RelatedTopics []ddgTopic `json:"RelatedTopics"`
}

// NewDuckDuckGoProvider creates a DuckDuckGo search adapter
func NewDuckDuckGoProvider(userAgent string, timeout time.Duration) *DuckDuckGoProvider {
	return &DuckDuckGoProvider{
		baseURL:    "https://api.duckduckgo.com",
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Name returns the provider name
func (p *DuckDuckGoProvider) Name() string {
	return "duckduckgo"
}

// Search queries the instant-answer API and flattens related topics
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, maxResults int) ([]model.SearchHit, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("no_redirect", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed ddgResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	var hits []model.SearchHit
	if parsed.AbstractURL != "" {
		hits = append(hits, model.SearchHit{
			URL:     parsed.AbstractURL,
			Title:   parsed.Heading,
			Snippet: parsed.AbstractText,
		})
	}
	hits = append(hits, flattenTopics(parsed.RelatedTopics)...)

	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}
	return hits, nil
}

// flattenTopics walks the nested topic tree in document order
func flattenTopics(topics []ddgTopic) []model.SearchHit {
	var hits []model.SearchHit
	for _, topic := range topics {
		if topic.FirstURL != "" {
			hits = append(hits, model.SearchHit{
				URL:     topic.FirstURL,
				Title:   topicTitle(topic.Text),
				Snippet: topic.Text,
			})
		}
		if len(topic.Topics) > 0 {
			hits = append(hits, flattenTopics(topic.Topics)...)
		}
	}
	return hits
}

// topicTitle uses the leading clause of the topic text as a title
func topicTitle(text string) string {
	if idx := strings.Index(text, " - "); idx > 0 {
		return text[:idx]
	}
	if len(text) > 80 {
		return text[:80]
	}
	return text
}
