// Package pipeline orchestrates the full fact-check flow: claim
// extraction, evidence planning and gathering, ranking, consensus,
// scoring and rendering.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/veracity/internal/assist"
	"github.com/ppiankov/veracity/internal/compare"
	"github.com/ppiankov/veracity/internal/consensus"
	"github.com/ppiankov/veracity/internal/fetch"
	"github.com/ppiankov/veracity/internal/gather"
	"github.com/ppiankov/veracity/internal/guardrail"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/rank"
	"github.com/ppiankov/veracity/internal/score"
	"github.com/ppiankov/veracity/internal/search"
	"github.com/ppiankov/veracity/internal/strategy"
)

// Checker runs the evidence pipeline for one claim at a time
type Checker struct {
	planner   *strategy.Planner
	gatherer  *gather.Gatherer
	fetcher   *fetch.Fetcher
	ranker    *rank.Ranker
	enforcer  *guardrail.Enforcer
	analyzer  *consensus.Analyzer
	scorer    *score.Scorer
	assistant assist.Assistant
	cfg       *model.Config
	logger    *zap.Logger
}

// NewChecker wires the pipeline stages. The gatherer's outbound semaphore
// is shared, so one checker serves any number of concurrent claims.
func NewChecker(cfg *model.Config, registry *search.Registry, assistant assist.Assistant, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if assistant == nil {
		assistant = assist.NewFallback()
	}
	return &Checker{
		planner:   strategy.NewPlanner(cfg.Search.Providers),
		gatherer:  gather.NewGatherer(registry, cfg.Search, cfg.Dedup, logger),
		fetcher:   fetch.NewFetcher(cfg.Enrichment, cfg.Search.UserAgent, logger),
		ranker:    rank.NewRanker(cfg.Rank),
		enforcer:  guardrail.NewEnforcer(cfg.Dedup.CombinedDomainCap),
		analyzer:  consensus.NewAnalyzer(cfg.Scoring.MatchBoost),
		scorer:    score.NewScorer(cfg.Scoring),
		assistant: assistant,
		cfg:       cfg,
		logger:    logger,
	}
}

// CheckClaim runs every stage for one claim. It never returns an error:
// any failure, including a panic in a stage, is captured as an error
// verdict so one bad claim cannot sink its siblings.
func (c *Checker) CheckClaim(ctx context.Context, claim model.Claim) (result model.ClaimResult) {
	result = model.ClaimResult{
		Claim:   claim,
		Stage:   model.StagePending,
		Verdict: model.VerdictError,
	}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("claim pipeline panicked",
				zap.Int("claim_id", claim.ID),
				zap.Any("panic", r))
			result.Stage = model.StageError
			result.Verdict = model.VerdictError
			result.Error = fmt.Sprintf("internal error: %v", r)
		}
	}()

	plan, err := c.planner.Plan(claim)
	if err != nil {
		result.Stage = model.StageError
		result.Error = err.Error()
		return result
	}

	result.Stage = model.StageGathering
	result.For = c.runArm(ctx, claim, plan, model.ArmFor)
	result.Against = c.runArm(ctx, claim, plan, model.ArmAgainst)
	result.For, result.Against = c.enforcer.Apply(result.For, result.Against)

	result.Stage = model.StageScoring
	result.Consensus = c.analyzer.Analyze(result.For, result.Against)
	if contradictions, err := c.assistant.SurfaceContradictions(ctx, claim, result.Consensus); err == nil {
		result.Consensus.Contradictions = contradictions
	}

	result.Score, result.Breakdown = c.scorer.Score(result.Consensus)
	result.Verdict = c.scorer.Verdict(result.Score)

	if explanation, err := c.assistant.DraftExplanation(ctx, result); err == nil {
		result.Explanation = explanation
	}

	result.Stage = model.StageDone
	return result
}

// runArm gathers, enriches, annotates and ranks one arm's evidence
func (c *Checker) runArm(ctx context.Context, claim model.Claim, plan strategy.Plan, name model.ArmName) model.EvidenceArm {
	armPlan, ok := plan.Arm(name)
	if !ok {
		return model.EvidenceArm{Name: name}
	}

	if refined, err := c.assistant.RefineQueries(ctx, claim, name, armPlan.Queries); err == nil && len(refined) > 0 {
		armPlan.Queries = refined
	}

	arm := c.gatherer.Gather(ctx, armPlan, c.cfg.Search.MaxPerArm)
	arm.Candidates = c.fetcher.Enrich(ctx, arm.Candidates)
	arm.Candidates = compare.Annotate(claim, arm.Candidates)
	arm.Candidates = c.ranker.Rank(claim.Text, arm.Candidates, c.cfg.Rank.TopK)

	if triaged, err := c.assistant.TriagePassages(ctx, claim, arm.Candidates); err == nil {
		arm.Candidates = triaged
	}
	return arm
}
