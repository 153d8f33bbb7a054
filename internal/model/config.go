package model

import "time"

// Config is the complete veracity configuration. It is constructed once at
// process start (defaults, config file, env, flags) and passed by pointer
// into the engine; nothing reads ambient global state after that.
type Config struct {
	Search     SearchConfig     `yaml:"search"`
	Dedup      DedupConfig      `yaml:"dedup"`
	Rank       RankConfig       `yaml:"rank"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Assist     AssistConfig     `yaml:"assist"`
	Cache      CacheConfig      `yaml:"cache"`
	Enrichment EnrichmentConfig `yaml:"enrichment"`
}

// SearchConfig controls evidence gathering against search providers
type SearchConfig struct {
	// Providers lists enabled provider names in preference order
	// (wikipedia, duckduckgo, brave, fixture)
	Providers []string `yaml:"providers"`

	// BraveAPIKey enables the Brave Search adapter when set
	BraveAPIKey string `yaml:"brave_api_key"`

	MaxResultsPerQuery int           `yaml:"max_results_per_query"`
	MaxPerArm          int           `yaml:"max_per_arm"`
	CallTimeout        time.Duration `yaml:"call_timeout"`   // Hard timeout per provider call
	GatherTimeout      time.Duration `yaml:"gather_timeout"` // Claim-level bound on total gathering
	MaxOutbound        int           `yaml:"max_outbound"`   // Global cap on simultaneous provider calls
	RatePerProvider    float64       `yaml:"rate_per_provider"`
	Burst              int           `yaml:"burst"`
	UserAgent          string        `yaml:"user_agent"`
}

// DedupConfig controls URL normalization and duplicate removal
type DedupConfig struct {
	TitleSimilarity   float64 `yaml:"title_similarity"`    // Near-dup Jaccard threshold
	PerDomainArmCap   int     `yaml:"per_domain_arm_cap"`  // Max candidates per domain within one arm
	CombinedDomainCap int     `yaml:"combined_domain_cap"` // Max per domain across both arms (guardrail)
}

// RankConfig holds ranking weights. lexical + type prior + recency must be
// documented and stable; defaults follow the methodology notes.
type RankConfig struct {
	TopK          int     `yaml:"top_k"`
	LexicalWeight float64 `yaml:"lexical_weight"`
	PriorWeight   float64 `yaml:"prior_weight"`
	RecencyWeight float64 `yaml:"recency_weight"`
}

// ScoringConfig documents the verdict model. The weights are tunable
// defaults, not a fixed contract; the thresholds are part of the published
// methodology.
type ScoringConfig struct {
	AgreementWeight     float64 `yaml:"agreement_weight"`
	SupportWeight       float64 `yaml:"support_weight"`
	ContradictionWeight float64 `yaml:"contradiction_weight"`
	MatchBoost          float64 `yaml:"match_boost"` // Credibility boost for numerically confirming candidates
	SupportedThreshold  float64 `yaml:"supported_threshold"`
	RefutedThreshold    float64 `yaml:"refuted_threshold"`
}

// PipelineConfig controls multi-claim orchestration
type PipelineConfig struct {
	// MultiClaim processes every extracted claim; when false the whole
	// input is checked as a single primary claim.
	MultiClaim          bool `yaml:"multi_claim"`
	MaxConcurrentClaims int  `yaml:"max_concurrent_claims"`
}

// AssistConfig configures the optional AI-assist layer. Empty provider
// means assist is disabled and deterministic fallbacks are used.
type AssistConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, ""
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// CacheConfig controls provider-response caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// EnrichmentConfig controls the optional page-metadata fetcher
type EnrichmentConfig struct {
	FetchPages   bool          `yaml:"fetch_pages"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	PerDomainRPS float64       `yaml:"per_domain_rps"`
}

// DefaultConfig returns the documented defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Providers:          []string{"wikipedia", "duckduckgo"},
			MaxResultsPerQuery: 8,
			MaxPerArm:          12,
			CallTimeout:        8 * time.Second,
			GatherTimeout:      30 * time.Second,
			MaxOutbound:        6,
			RatePerProvider:    2.0,
			Burst:              4,
			UserAgent:          "Veracity/0.1 (+https://github.com/ppiankov/veracity)",
		},
		Dedup: DedupConfig{
			TitleSimilarity:   0.80,
			PerDomainArmCap:   3,
			CombinedDomainCap: 4,
		},
		Rank: RankConfig{
			TopK:          10,
			LexicalWeight: 0.55,
			PriorWeight:   0.30,
			RecencyWeight: 0.15,
		},
		Scoring: ScoringConfig{
			AgreementWeight:     0.45,
			SupportWeight:       0.35,
			ContradictionWeight: 0.20,
			MatchBoost:          0.10,
			SupportedThreshold:  0.65,
			RefutedThreshold:    0.35,
		},
		Pipeline: PipelineConfig{
			MultiClaim:          true,
			MaxConcurrentClaims: 4,
		},
		Assist: AssistConfig{
			Provider:  "",
			Timeout:   20,
			MaxTokens: 800,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Enrichment: EnrichmentConfig{
			FetchPages:   false,
			Timeout:      6 * time.Second,
			MaxBodyBytes: 512_000,
			PerDomainRPS: 1.0,
		},
	}
}
