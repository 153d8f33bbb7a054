package gather

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/search"
	"github.com/ppiankov/veracity/internal/strategy"
)

func testSearchConfig() model.SearchConfig {
	return model.SearchConfig{
		MaxResultsPerQuery: 5,
		CallTimeout:        time.Second,
		GatherTimeout:      5 * time.Second,
		MaxOutbound:        4,
		RatePerProvider:    1000,
		Burst:              100,
	}
}

func testDedupConfig() model.DedupConfig {
	return model.DedupConfig{TitleSimilarity: 0.80, PerDomainArmCap: 3, CombinedDomainCap: 4}
}

func TestGatherer_RoundRobinInterleave(t *testing.T) {
	registry := search.NewRegistry()
	registry.Register(search.NewFixtureProvider("alpha", []model.SearchHit{
		{URL: "https://one.example.com/a1", Title: "alpha first"},
		{URL: "https://two.example.org/a2", Title: "alpha second"},
	}))
	registry.Register(search.NewFixtureProvider("beta", []model.SearchHit{
		{URL: "https://three.example.net/b1", Title: "beta first"},
	}))

	g := NewGatherer(registry, testSearchConfig(), testDedupConfig(), nil)

	arm := g.Gather(context.Background(), strategy.ArmPlan{
		Name:      model.ArmFor,
		Queries:   []string{"zzz"},
		Providers: []string{"alpha", "beta"},
	}, 10)

	var providers []string
	for _, c := range arm.Candidates {
		providers = append(providers, c.Provider)
	}
	want := []string{"alpha", "beta", "alpha"}
	if !reflect.DeepEqual(providers, want) {
		t.Errorf("Expected round-robin order %v, got %v", want, providers)
	}
}

func TestGatherer_ProviderFailureIsIsolated(t *testing.T) {
	failing := search.NewFixtureProvider("broken", nil)
	failing.Fail = true

	registry := search.NewRegistry()
	registry.Register(failing)
	registry.Register(search.NewFixtureProvider("healthy", []model.SearchHit{
		{URL: "https://ok.example.com/1", Title: "healthy result"},
	}))

	g := NewGatherer(registry, testSearchConfig(), testDedupConfig(), nil)

	arm := g.Gather(context.Background(), strategy.ArmPlan{
		Name:      model.ArmFor,
		Queries:   []string{"anything"},
		Providers: []string{"broken", "healthy"},
	}, 10)

	if len(arm.Candidates) != 1 {
		t.Fatalf("Expected the healthy provider's candidate, got %d candidates", len(arm.Candidates))
	}
	if arm.Candidates[0].Provider != "healthy" {
		t.Errorf("Expected candidate from healthy provider, got %s", arm.Candidates[0].Provider)
	}
}

func TestGatherer_AllProvidersFailing(t *testing.T) {
	failing := search.NewFixtureProvider("broken", nil)
	failing.Fail = true

	registry := search.NewRegistry()
	registry.Register(failing)

	g := NewGatherer(registry, testSearchConfig(), testDedupConfig(), nil)

	arm := g.Gather(context.Background(), strategy.ArmPlan{
		Name:      model.ArmAgainst,
		Queries:   []string{"anything"},
		Providers: []string{"broken"},
	}, 10)

	if len(arm.Candidates) != 0 {
		t.Errorf("Expected no candidates, got %d", len(arm.Candidates))
	}
	if arm.Name != model.ArmAgainst {
		t.Errorf("Expected arm name preserved, got %s", arm.Name)
	}
}

func TestGatherer_MaxPerArm(t *testing.T) {
	var hits []model.SearchHit
	for _, host := range []string{"a", "b", "c", "d", "e", "f"} {
		hits = append(hits, model.SearchHit{
			URL:   "https://" + host + ".example-" + host + ".com/p",
			Title: "distinct page on host " + host,
		})
	}

	registry := search.NewRegistry()
	registry.Register(search.NewFixtureProvider("big", hits))

	g := NewGatherer(registry, testSearchConfig(), testDedupConfig(), nil)

	arm := g.Gather(context.Background(), strategy.ArmPlan{
		Name:      model.ArmFor,
		Queries:   []string{"zzz"},
		Providers: []string{"big"},
	}, 4)

	if len(arm.Candidates) != 4 {
		t.Errorf("Expected maxPerArm to cap candidates at 4, got %d", len(arm.Candidates))
	}
}

func TestGatherer_CandidateFieldsPopulated(t *testing.T) {
	registry := search.NewRegistry()
	registry.Register(search.NewFixtureProvider("fix", []model.SearchHit{
		{URL: "https://News.Example.com/story/gdp?utm_source=x", Title: "GDP grew", Snippet: "economy"},
	}))

	g := NewGatherer(registry, testSearchConfig(), testDedupConfig(), nil)

	arm := g.Gather(context.Background(), strategy.ArmPlan{
		Name:      model.ArmFor,
		Queries:   []string{"gdp"},
		Providers: []string{"fix"},
	}, 5)

	if len(arm.Candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(arm.Candidates))
	}
	c := arm.Candidates[0]
	if c.CanonicalURL != "https://news.example.com/story/gdp" {
		t.Errorf("Unexpected canonical URL %q", c.CanonicalURL)
	}
	if c.Domain != "example.com" {
		t.Errorf("Unexpected domain %q", c.Domain)
	}
	if c.SourceType != model.SourceNews {
		t.Errorf("Expected news source type, got %s", c.SourceType)
	}
	if c.Fingerprint == "" {
		t.Error("Expected fingerprint to be set")
	}
}
