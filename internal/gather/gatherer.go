// Package gather fans claim queries out across search providers,
// normalizes the raw hits into candidates, and enforces per-arm dedup and
// diversity rules.
package gather

import (
	"context"
	"errors"
	"sync"

	"github.com/ppiankov/veracity/internal/classify"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/search"
	"github.com/ppiankov/veracity/internal/strategy"
	"github.com/ppiankov/veracity/internal/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Gatherer collects evidence candidates for one arm of a claim
type Gatherer struct {
	registry   *search.Registry
	classifier *classify.Classifier
	limiter    *worker.KeyedLimiter
	outbound   *semaphore.Weighted // Global bound on simultaneous provider calls
	cfg        model.SearchConfig
	dedup      model.DedupConfig
	logger     *zap.Logger
}

// NewGatherer creates a gatherer over the registered providers. The
// outbound semaphore is shared across all claims so the global cap holds
// regardless of claim concurrency.
func NewGatherer(registry *search.Registry, cfg model.SearchConfig, dedup model.DedupConfig, logger *zap.Logger) *Gatherer {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxOutbound := cfg.MaxOutbound
	if maxOutbound <= 0 {
		maxOutbound = 4
	}
	return &Gatherer{
		registry:   registry,
		classifier: classify.NewClassifier(),
		limiter:    worker.NewKeyedLimiter(cfg.RatePerProvider, cfg.Burst),
		outbound:   semaphore.NewWeighted(int64(maxOutbound)),
		cfg:        cfg,
		dedup:      dedup,
		logger:     logger,
	}
}

// Gather runs every query of the arm against every selected provider and
// returns at most maxPerArm normalized candidates. Provider failures and
// timeouts degrade to empty result sets; the arm never fails. When the
// claim-level gather deadline passes, whatever was already collected is
// used.
func (g *Gatherer) Gather(ctx context.Context, arm strategy.ArmPlan, maxPerArm int) model.EvidenceArm {
	providers := g.registry.Select(arm.Providers)

	gatherCtx := ctx
	if g.cfg.GatherTimeout > 0 {
		var cancel context.CancelFunc
		gatherCtx, cancel = context.WithTimeout(ctx, g.cfg.GatherTimeout)
		defer cancel()
	}

	// One slot per (provider, query) pair keeps collection order
	// deterministic regardless of goroutine completion order.
	slots := make([][]model.SearchHit, len(providers)*len(arm.Queries))

	var wg sync.WaitGroup
	for pi, provider := range providers {
		for qi, query := range arm.Queries {
			wg.Add(1)
			go func(slot int, p search.Provider, q string) {
				defer wg.Done()
				slots[slot] = g.searchOne(gatherCtx, p, q)
			}(pi*len(arm.Queries)+qi, provider, query)
		}
	}
	wg.Wait()

	// Per provider: concatenate its queries in order, then interleave
	// round-robin across providers so no single provider dominates the
	// head of the list.
	perProvider := make([][]model.SearchHit, len(providers))
	for pi := range providers {
		for qi := range arm.Queries {
			perProvider[pi] = append(perProvider[pi], slots[pi*len(arm.Queries)+qi]...)
		}
	}
	interleaved := interleave(perProvider)

	candidates := make([]model.Candidate, 0, len(interleaved))
	for _, ih := range interleaved {
		candidates = append(candidates, g.toCandidate(ih.hit, providers[ih.provider].Name()))
	}

	normalized := Normalize(candidates, g.dedup.TitleSimilarity, g.dedup.PerDomainArmCap)
	if maxPerArm > 0 && len(normalized) > maxPerArm {
		normalized = normalized[:maxPerArm]
	}

	return model.EvidenceArm{
		Name:       arm.Name,
		Queries:    arm.Queries,
		Strategy:   arm.Strategy,
		Candidates: normalized,
	}
}

// searchOne runs a single provider call under the global outbound
// semaphore, the per-provider rate limiter, and the per-call timeout.
// Any failure is logged and reduced to an empty result set.
func (g *Gatherer) searchOne(ctx context.Context, provider search.Provider, query string) []model.SearchHit {
	if err := g.outbound.Acquire(ctx, 1); err != nil {
		g.logger.Warn("gather deadline before provider call",
			zap.String("provider", provider.Name()), zap.String("query", query))
		return nil
	}
	defer g.outbound.Release(1)

	if err := g.limiter.Wait(ctx, provider.Name()); err != nil {
		g.logger.Warn("gather deadline while rate limited",
			zap.String("provider", provider.Name()), zap.String("query", query))
		return nil
	}

	callCtx := ctx
	if g.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.cfg.CallTimeout)
		defer cancel()
	}

	hits, err := provider.Search(callCtx, query, g.cfg.MaxResultsPerQuery)
	if err != nil {
		kind := model.ErrProvider
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			kind = model.ErrGatherTimeout
		}
		g.logger.Warn("provider search failed",
			zap.String("provider", provider.Name()),
			zap.String("query", query),
			zap.NamedError("kind", kind),
			zap.Error(err))
		return nil
	}
	return hits
}

func (g *Gatherer) toCandidate(hit model.SearchHit, providerName string) model.Candidate {
	canonical := CanonicalizeURL(hit.URL)
	return model.Candidate{
		URL:          hit.URL,
		CanonicalURL: canonical,
		Title:        hit.Title,
		Snippet:      hit.Snippet,
		Domain:       Domain(canonical),
		SourceType:   g.classifier.Classify(canonical),
		Fingerprint:  Fingerprint(canonical, hit.Title),
		Provider:     providerName,
	}
}

type indexedHit struct {
	hit      model.SearchHit
	provider int
}

// interleave merges per-provider hit lists round-robin, preserving each
// provider's internal order
func interleave(perProvider [][]model.SearchHit) []indexedHit {
	var merged []indexedHit
	for depth := 0; ; depth++ {
		found := false
		for pi, hits := range perProvider {
			if depth < len(hits) {
				merged = append(merged, indexedHit{hit: hits[depth], provider: pi})
				found = true
			}
		}
		if !found {
			return merged
		}
	}
}
