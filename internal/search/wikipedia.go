package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/veracity/internal/model"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// WikipediaProvider searches the MediaWiki API
type WikipediaProvider struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Wikipedia API structures
type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// NewWikipediaProvider creates a Wikipedia search adapter
func NewWikipediaProvider(userAgent string, timeout time.Duration) *WikipediaProvider {
	return &WikipediaProvider{
		baseURL:    "https://en.wikipedia.org",
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Name returns the provider name
func (p *WikipediaProvider) Name() string {
	return "wikipedia"
}

// Search queries the MediaWiki fulltext search API
func (p *WikipediaProvider) Search(ctx context.Context, query string, maxResults int) ([]model.SearchHit, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(maxResults))
	params.Set("format", "json")

	endpoint := p.baseURL + "/w/api.php?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed wikiSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hits := make([]model.SearchHit, 0, len(parsed.Query.Search))
	for _, item := range parsed.Query.Search {
		hits = append(hits, model.SearchHit{
			URL:     p.baseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(item.Title, " ", "_")),
			Title:   item.Title,
			Snippet: stripMarkup(item.Snippet),
		})
	}
	return hits, nil
}

// stripMarkup removes the highlight tags MediaWiki embeds in snippets
func stripMarkup(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}
