package search

import (
	"context"
	"sort"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// FixtureProvider is a deterministic in-memory provider. It backs test
// mode: the rest of the pipeline cannot tell it apart from a live adapter.
type FixtureProvider struct {
	name string
	hits []model.SearchHit

	// Fail makes every search return an error, for failure-isolation tests
	Fail bool
}

// NewFixtureProvider creates a fixture provider serving the given hits
func NewFixtureProvider(name string, hits []model.SearchHit) *FixtureProvider {
	return &FixtureProvider{name: name, hits: hits}
}

// Name returns the provider name
func (p *FixtureProvider) Name() string {
	return p.name
}

// Search returns hits sharing at least one query token, ordered by token
// overlap with ties broken by fixture order. With no token overlap at all
// the full fixture set is returned, so sparse fixtures still yield
// evidence for any query.
func (p *FixtureProvider) Search(ctx context.Context, query string, maxResults int) ([]model.SearchHit, error) {
	if p.Fail {
		return nil, context.DeadlineExceeded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	queryTokens := tokenize(query)

	type scored struct {
		hit     model.SearchHit
		overlap int
		index   int
	}

	matches := make([]scored, 0, len(p.hits))
	for i, hit := range p.hits {
		overlap := tokenOverlap(queryTokens, tokenize(hit.Title+" "+hit.Snippet))
		matches = append(matches, scored{hit: hit, overlap: overlap, index: i})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].overlap != matches[b].overlap {
			return matches[a].overlap > matches[b].overlap
		}
		return matches[a].index < matches[b].index
	})

	hits := make([]model.SearchHit, 0, maxResults)
	for _, m := range matches {
		hits = append(hits, m.hit)
		if len(hits) == maxResults {
			break
		}
	}
	return hits, nil
}

func tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ",.;:!?\"'()%")
		if len(w) > 2 {
			tokens[w] = true
		}
	}
	return tokens
}

func tokenOverlap(a, b map[string]bool) int {
	count := 0
	for t := range a {
		if b[t] {
			count++
		}
	}
	return count
}
