package assist

import (
	"context"

	"go.uber.org/zap"

	"github.com/ppiankov/veracity/internal/model"
)

// Graceful wraps an assistant so that any failure degrades to the
// deterministic fallback instead of failing the claim. Assist is
// best-effort; a down model never blocks a verdict.
type Graceful struct {
	primary  Assistant
	fallback *Fallback
	logger   *zap.Logger
}

// NewGraceful wraps primary with fallback-on-error behavior
func NewGraceful(primary Assistant, logger *zap.Logger) *Graceful {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Graceful{primary: primary, fallback: NewFallback(), logger: logger}
}

// RefineQueries degrades to the planner's queries on failure
func (g *Graceful) RefineQueries(ctx context.Context, claim model.Claim, arm model.ArmName, queries []string) ([]string, error) {
	refined, err := g.primary.RefineQueries(ctx, claim, arm, queries)
	if err != nil {
		g.logger.Warn("assist degraded", zap.String("op", "refine_queries"), zap.Error(err))
		return g.fallback.RefineQueries(ctx, claim, arm, queries)
	}
	return refined, nil
}

// TriagePassages degrades to the ranker's order on failure
func (g *Graceful) TriagePassages(ctx context.Context, claim model.Claim, candidates []model.Candidate) ([]model.Candidate, error) {
	triaged, err := g.primary.TriagePassages(ctx, claim, candidates)
	if err != nil {
		g.logger.Warn("assist degraded", zap.String("op", "triage_passages"), zap.Error(err))
		return g.fallback.TriagePassages(ctx, claim, candidates)
	}
	return triaged, nil
}

// SurfaceContradictions degrades to the comparator's findings on failure
func (g *Graceful) SurfaceContradictions(ctx context.Context, claim model.Claim, report model.ConsensusReport) ([]model.Contradiction, error) {
	contradictions, err := g.primary.SurfaceContradictions(ctx, claim, report)
	if err != nil {
		g.logger.Warn("assist degraded", zap.String("op", "surface_contradictions"), zap.Error(err))
		return g.fallback.SurfaceContradictions(ctx, claim, report)
	}
	return contradictions, nil
}

// DraftExplanation degrades to the templated explanation on failure
func (g *Graceful) DraftExplanation(ctx context.Context, result model.ClaimResult) (string, error) {
	explanation, err := g.primary.DraftExplanation(ctx, result)
	if err != nil {
		g.logger.Warn("assist degraded", zap.String("op", "draft_explanation"), zap.Error(err))
		return g.fallback.DraftExplanation(ctx, result)
	}
	return explanation, nil
}
