// Package fetch enriches candidates with page metadata, most usefully a
// publish date for the recency ranking signal. Fetching is optional and
// polite: robots.txt is honored, requests are rate limited per domain,
// and any failure leaves the candidate unchanged.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/worker"
)

const maxRedirects = 3

// metaDateLayouts are tried in order against meta tag values
var metaDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// Fetcher retrieves pages and extracts publish dates
type Fetcher struct {
	cfg       model.EnrichmentConfig
	userAgent string
	client    *http.Client
	limiter   *worker.KeyedLimiter
	logger    *zap.Logger

	mu     sync.Mutex
	robots map[string]*robotstxt.RobotsData // Keyed by scheme://host
}

// NewFetcher creates a page fetcher
func NewFetcher(cfg model.EnrichmentConfig, userAgent string, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		cfg:       cfg,
		userAgent: userAgent,
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		limiter: worker.NewKeyedLimiter(cfg.PerDomainRPS, 1),
		logger:  logger,
	}
}

// Enrich fills in PublishedAt for candidates where the page reveals one.
// Candidates are processed in order; failures are logged and skipped.
func (f *Fetcher) Enrich(ctx context.Context, candidates []model.Candidate) []model.Candidate {
	if !f.cfg.FetchPages {
		return candidates
	}

	enriched := make([]model.Candidate, len(candidates))
	copy(enriched, candidates)

	for i, c := range enriched {
		if c.PublishedAt != nil {
			continue
		}
		publishedAt, err := f.fetchDate(ctx, c)
		if err != nil {
			f.logger.Debug("page enrichment skipped",
				zap.String("url", c.URL),
				zap.Error(err))
			continue
		}
		if publishedAt != nil {
			enriched[i].PublishedAt = publishedAt
		}
	}
	return enriched
}

// fetchDate retrieves one page and looks for a publish date in the meta
// tags, falling back to the Last-Modified header
func (f *Fetcher) fetchDate(ctx context.Context, c model.Candidate) (*time.Time, error) {
	pageURL := c.CanonicalURL
	if pageURL == "" {
		pageURL = c.URL
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	allowed, err := f.robotsAllowed(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", parsed.Host)
	}

	if err := f.limiter.Wait(ctx, c.Domain); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, f.cfg.MaxBodyBytes)
	if publishedAt := dateFromHTML(body); publishedAt != nil {
		return publishedAt, nil
	}

	if lastModified := resp.Header.Get("Last-Modified"); lastModified != "" {
		if t, err := http.ParseTime(lastModified); err == nil {
			return &t, nil
		}
	}
	return nil, nil
}

// robotsAllowed checks and caches the host's robots.txt verdict
func (f *Fetcher) robotsAllowed(ctx context.Context, pageURL *url.URL) (bool, error) {
	key := pageURL.Scheme + "://" + pageURL.Host

	f.mu.Lock()
	data, ok := f.robots[key]
	f.mu.Unlock()

	if !ok {
		fetched, err := f.fetchRobots(ctx, key)
		if err != nil {
			return false, err
		}
		data = fetched
		f.mu.Lock()
		if f.robots == nil {
			f.robots = make(map[string]*robotstxt.RobotsData)
		}
		f.robots[key] = data
		f.mu.Unlock()
	}

	return data.TestAgent(pageURL.Path, f.userAgent), nil
}

func (f *Fetcher) fetchRobots(ctx context.Context, base string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/robots.txt", nil)
	if err != nil {
		return nil, fmt.Errorf("create robots request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("read robots.txt: %w", err)
	}

	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}

// dateFromHTML scans meta and time tags for a publish date
func dateFromHTML(r io.Reader) *time.Time {
	tokenizer := html.NewTokenizer(r)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return nil
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if value := dateAttr(token); value != "" {
				if t := parseMetaDate(value); t != nil {
					return t
				}
			}
		}
	}
}

// dateAttr returns the candidate date string from a meta or time tag
func dateAttr(token html.Token) string {
	switch token.Data {
	case "meta":
		var key, content string
		for _, attr := range token.Attr {
			switch attr.Key {
			case "property", "name", "itemprop":
				key = strings.ToLower(attr.Val)
			case "content":
				content = attr.Val
			}
		}
		switch key {
		case "article:published_time", "og:published_time", "date", "datepublished", "dc.date":
			return content
		}
	case "time":
		for _, attr := range token.Attr {
			if attr.Key == "datetime" {
				return attr.Val
			}
		}
	}
	return ""
}

func parseMetaDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range metaDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}
