package model

import "time"

// SourceType is a structural classification of where evidence came from.
// Classification is derived from URL structure only (TLD, path shape),
// never from a hardcoded list of site names.
type SourceType string

const (
	SourcePeerReview SourceType = "peer_review"
	SourceGovernment SourceType = "government"
	SourceNews       SourceType = "news"
	SourceBlog       SourceType = "blog"
	SourceSocial     SourceType = "social"
	SourceWeb        SourceType = "web"
)

// SearchHit is the raw result shape returned by a search provider adapter
type SearchHit struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Candidate is one retrieved document reference, created by the gatherer
// and treated as read-only by all later stages (comparison results are
// attached exactly once by the comparator).
type Candidate struct {
	URL          string     `json:"url"`
	CanonicalURL string     `json:"canonical_url"`
	Title        string     `json:"title"`
	Snippet      string     `json:"snippet,omitempty"`
	Domain       string     `json:"domain"`
	SourceType   SourceType `json:"source_type"`
	Fingerprint  string     `json:"fingerprint"`
	Provider     string     `json:"provider"`

	// PublishedAt is filled by the optional page-metadata fetcher; nil means
	// recency is unknown and the ranker falls back to a neutral score.
	PublishedAt *time.Time `json:"published_at,omitempty"`

	// Comparison is set when the candidate carried a number comparable to
	// one asserted by the claim. Nil means the candidate is numerically
	// neutral, not contradicting.
	Comparison *ComparisonResult `json:"comparison,omitempty"`
}

// ArmName identifies one side of the evidence search
type ArmName string

const (
	ArmFor     ArmName = "for"
	ArmAgainst ArmName = "against"
)

// EvidenceArm is one side's bucket of ranked candidates. Built up during
// gather/rank/guardrail stages by a single owning goroutine, frozen after
// guardrails are applied.
type EvidenceArm struct {
	Name       ArmName     `json:"name"`
	Queries    []string    `json:"queries"`
	Strategy   string      `json:"strategy"`
	Candidates []Candidate `json:"candidates"`
}

// ComparisonResult records a numeric/temporal judgment between a claim
// number and a number found in a candidate. Never mutated after creation.
type ComparisonResult struct {
	Matches       bool       `json:"matches"`
	Type          NumberType `json:"type"`
	ClaimValue    float64    `json:"claim_value"`
	EvidenceValue float64    `json:"evidence_value"`
	Difference    float64    `json:"difference"`
	DifferencePct float64    `json:"difference_percent"`
	ToleranceUsed float64    `json:"tolerance_used"`
	Reasoning     string     `json:"reasoning"`
}
