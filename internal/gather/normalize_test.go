package gather

import (
	"reflect"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func TestCanonicalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTPS://Example.COM/Path?utm_source=x&id=7", "https://example.com/Path?id=7"},
		{"https://example.com/page#section-2", "https://example.com/page"},
		{"https://example.com/a?fbclid=abc&gclid=def", "https://example.com/a"},
		{"https://example.com/a?q=height", "https://example.com/a?q=height"},
	}

	for _, tt := range tests {
		if got := CanonicalizeURL(tt.in); got != tt.want {
			t.Errorf("CanonicalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDomain_RegisteredDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://news.example.com/a", "example.com"},
		{"https://example.co.uk/b", "example.co.uk"},
		{"https://sub.stats.gov.uk/c", "stats.gov.uk"},
	}

	for _, tt := range tests {
		if got := Domain(tt.in); got != tt.want {
			t.Errorf("Domain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func candidateFor(url, title string) model.Candidate {
	canonical := CanonicalizeURL(url)
	return model.Candidate{
		URL:          url,
		CanonicalURL: canonical,
		Title:        title,
		Domain:       Domain(canonical),
		Fingerprint:  Fingerprint(canonical, title),
	}
}

func TestNormalize_ExactDuplicates(t *testing.T) {
	candidates := []model.Candidate{
		candidateFor("https://example.com/a", "Eiffel Tower height"),
		candidateFor("https://example.com/a?utm_source=feed", "Eiffel Tower height"),
		candidateFor("https://other.org/b", "Different page entirely"),
	}

	normalized := Normalize(candidates, 0.80, 3)
	if len(normalized) != 2 {
		t.Fatalf("Expected 2 candidates after exact dedup, got %d", len(normalized))
	}
	// Earliest instance survives
	if normalized[0].URL != "https://example.com/a" {
		t.Errorf("Expected earliest duplicate kept, got %s", normalized[0].URL)
	}
}

func TestNormalize_NearDuplicateTitles(t *testing.T) {
	candidates := []model.Candidate{
		candidateFor("https://a.example.com/1", "The Eiffel Tower is 330 meters tall"),
		candidateFor("https://b.example.org/2", "The Eiffel Tower is 330 meters tall today"),
		candidateFor("https://c.example.net/3", "Completely unrelated topic about rivers"),
	}

	normalized := Normalize(candidates, 0.80, 3)
	if len(normalized) != 2 {
		t.Fatalf("Expected near-duplicate removed, got %d candidates", len(normalized))
	}
	if normalized[0].URL != "https://a.example.com/1" {
		t.Errorf("Expected earliest-ranked instance kept, got %s", normalized[0].URL)
	}
}

func TestNormalize_PerDomainCap(t *testing.T) {
	var candidates []model.Candidate
	for _, page := range []string{"alpha", "beta", "gamma", "delta", "epsilon"} {
		candidates = append(candidates, candidateFor(
			"https://example.com/"+page, "Article about "+page))
	}
	candidates = append(candidates, candidateFor("https://other.org/x", "Some other domain"))

	normalized := Normalize(candidates, 0.80, 3)

	perDomain := make(map[string]int)
	for _, c := range normalized {
		perDomain[c.Domain]++
	}
	if perDomain["example.com"] != 3 {
		t.Errorf("Expected domain cap of 3 for example.com, got %d", perDomain["example.com"])
	}
	if perDomain["other.org"] != 1 {
		t.Errorf("Expected other.org to survive, got %d", perDomain["other.org"])
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	candidates := []model.Candidate{
		candidateFor("https://example.com/a", "Eiffel Tower height"),
		candidateFor("https://example.com/a", "Eiffel Tower height"),
		candidateFor("https://news.example.org/b", "GDP growth in 2023"),
		candidateFor("https://example.com/c", "Another page"),
	}

	once := Normalize(candidates, 0.80, 3)
	twice := Normalize(once, 0.80, 3)

	if !reflect.DeepEqual(once, twice) {
		t.Error("Expected Normalize to be idempotent on its own output")
	}
}
