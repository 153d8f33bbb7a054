package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/veracity/internal/extract"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/search"
)

// Engine is the top-level entry point: text in, aggregate verdict out
type Engine struct {
	extractor *extract.Extractor
	checker   *Checker
	cfg       *model.Config
	logger    *zap.Logger
}

// NewEngine creates an engine over the given provider registry
func NewEngine(cfg *model.Config, registry *search.Registry, checker *Checker, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if checker == nil {
		checker = NewChecker(cfg, registry, nil, logger)
	}
	return &Engine{
		extractor: extract.NewExtractor(),
		checker:   checker,
		cfg:       cfg,
		logger:    logger,
	}
}

// CheckText extracts claims from the input and checks them with bounded
// concurrency. Claim failures are isolated: a claim that errors appears
// in the result with an error verdict while the rest complete normally.
func (e *Engine) CheckText(ctx context.Context, text string) (*model.AggregateResult, error) {
	var claims []model.Claim
	if e.cfg.Pipeline.MultiClaim {
		claims = e.extractor.Extract(text)
	} else {
		claims = []model.Claim{e.extractor.ExtractSingle(text)}
	}

	e.logger.Info("checking claims",
		zap.Int("claims", len(claims)),
		zap.Bool("multi_claim", e.cfg.Pipeline.MultiClaim))

	results := make([]model.ClaimResult, len(claims))

	group, groupCtx := errgroup.WithContext(ctx)
	limit := e.cfg.Pipeline.MaxConcurrentClaims
	if limit <= 0 {
		limit = 1
	}
	group.SetLimit(limit)

	for i, claim := range claims {
		i, claim := i, claim
		group.Go(func() error {
			results[i] = e.checker.CheckClaim(groupCtx, claim)
			e.logger.Debug("claim checked",
				zap.Int("claim_id", claim.ID),
				zap.String("verdict", string(results[i].Verdict)),
				zap.Float64("score", results[i].Score))
			return nil
		})
	}
	// CheckClaim never returns an error; Wait only propagates ctx state
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	breakdown := make(map[model.Verdict]int)
	for _, r := range results {
		breakdown[r.Verdict]++
	}

	return &model.AggregateResult{
		RunID:     uuid.NewString(),
		Input:     text,
		CheckedAt: time.Now().UTC(),
		Claims:    results,
		Breakdown: breakdown,
		Verdict:   model.DeriveAggregateVerdict(breakdown),
	}, nil
}
