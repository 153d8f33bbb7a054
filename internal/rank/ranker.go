// Package rank orders evidence candidates by lexical relevance, source
// type prior and recency. The weights are part of the published
// methodology: 0.55 lexical + 0.30 type prior + 0.15 recency.
package rank

import (
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/veracity/internal/classify"
	"github.com/ppiankov/veracity/internal/model"
)

const (
	neutralRecency = 0.5
	recencyHorizon = 2 * 365 * 24 * time.Hour // Scores decay to zero over two years
)

// Ranker scores and orders candidates
type Ranker struct {
	cfg model.RankConfig
	now func() time.Time
}

// NewRanker creates a ranker with the given weights
func NewRanker(cfg model.RankConfig) *Ranker {
	return &Ranker{cfg: cfg, now: time.Now}
}

// Rank returns the top-k candidates ordered by score. The sort is stable:
// equal scores keep discovery order, so output is deterministic for
// identical input.
func (r *Ranker) Rank(claimText string, candidates []model.Candidate, topK int) []model.Candidate {
	claimTokens := tokens(claimText)

	type scored struct {
		candidate model.Candidate
		score     float64
	}

	scoredList := make([]scored, len(candidates))
	for i, c := range candidates {
		scoredList[i] = scored{candidate: c, score: r.Score(claimTokens, c)}
	}

	sort.SliceStable(scoredList, func(a, b int) bool {
		return scoredList[a].score > scoredList[b].score
	})

	if topK <= 0 || topK > len(scoredList) {
		topK = len(scoredList)
	}

	ranked := make([]model.Candidate, topK)
	for i := 0; i < topK; i++ {
		ranked[i] = scoredList[i].candidate
	}
	return ranked
}

// Score combines the three ranking signals for one candidate
func (r *Ranker) Score(claimTokens map[string]bool, c model.Candidate) float64 {
	lexical := jaccard(claimTokens, tokens(c.Title+" "+c.Snippet))
	prior := classify.Prior(c.SourceType)
	recency := r.recency(c.PublishedAt)

	return r.cfg.LexicalWeight*lexical + r.cfg.PriorWeight*prior + r.cfg.RecencyWeight*recency
}

// recency maps publish age onto 0..1, with a neutral score when the
// publish date is unknown
func (r *Ranker) recency(publishedAt *time.Time) float64 {
	if publishedAt == nil {
		return neutralRecency
	}
	age := r.now().Sub(*publishedAt)
	if age < 0 {
		age = 0
	}
	if age >= recencyHorizon {
		return 0
	}
	return 1 - float64(age)/float64(recencyHorizon)
}

func tokens(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ",.;:!?\"'()%")
		if len(w) > 1 {
			set[w] = true
		}
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if b[t] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
