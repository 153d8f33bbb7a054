// Package assist is the optional AI layer. Every method has a
// deterministic fallback, so the pipeline produces the same class of
// output whether or not a language model is configured; the model only
// refines, never decides.
package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// Assistant refines pipeline artifacts. Implementations must be safe for
// concurrent use.
type Assistant interface {
	// RefineQueries rewrites an arm's search queries for better recall.
	// The result must stay within 1..3 queries.
	RefineQueries(ctx context.Context, claim model.Claim, arm model.ArmName, queries []string) ([]string, error)

	// TriagePassages reorders candidates by judged relevance to the claim.
	// It may drop candidates, never invent them.
	TriagePassages(ctx context.Context, claim model.Claim, candidates []model.Candidate) ([]model.Candidate, error)

	// SurfaceContradictions reviews the consensus contradictions and may
	// annotate or extend them with findings from the candidate snippets.
	SurfaceContradictions(ctx context.Context, claim model.Claim, report model.ConsensusReport) ([]model.Contradiction, error)

	// DraftExplanation writes the human-readable verdict explanation.
	DraftExplanation(ctx context.Context, result model.ClaimResult) (string, error)
}

// Fallback is the deterministic, network-free assistant used when no
// provider is configured or a provider call fails
type Fallback struct{}

// NewFallback creates the deterministic assistant
func NewFallback() *Fallback {
	return &Fallback{}
}

// RefineQueries returns the planner's queries unchanged
func (f *Fallback) RefineQueries(_ context.Context, _ model.Claim, _ model.ArmName, queries []string) ([]string, error) {
	return queries, nil
}

// TriagePassages trusts the ranker's order
func (f *Fallback) TriagePassages(_ context.Context, _ model.Claim, candidates []model.Candidate) ([]model.Candidate, error) {
	return candidates, nil
}

// SurfaceContradictions returns the numeric contradictions already found
func (f *Fallback) SurfaceContradictions(_ context.Context, _ model.Claim, report model.ConsensusReport) ([]model.Contradiction, error) {
	return report.Contradictions, nil
}

// DraftExplanation renders a templated explanation from the breakdown
func (f *Fallback) DraftExplanation(_ context.Context, result model.ClaimResult) (string, error) {
	total := len(result.For.Candidates) + len(result.Against.Candidates)

	var b strings.Builder
	fmt.Fprintf(&b, "Verdict %s (score %.2f) from %d sources.", result.Verdict, result.Score, total)
	fmt.Fprintf(&b, " Agreement among numerically comparable sources: %.0f%%.", result.Consensus.Agreement*100)
	if n := len(result.Consensus.Contradictions); n > 0 {
		fmt.Fprintf(&b, " %d direct contradiction(s) between supporting and opposing sources.", n)
	}
	if result.Consensus.MeanCredibility > 0 {
		fmt.Fprintf(&b, " Mean source credibility %.2f.", result.Consensus.MeanCredibility)
	}
	return b.String(), nil
}
