package model

import "time"

// Verdict is the per-claim outcome label
type Verdict string

const (
	VerdictSupported    Verdict = "supported"
	VerdictRefuted      Verdict = "refuted"
	VerdictInconclusive Verdict = "inconclusive"
	VerdictError        Verdict = "error"
)

// AggregateVerdict summarizes all claim verdicts for one input
type AggregateVerdict string

const (
	AggregateFullySupported   AggregateVerdict = "fully_supported"
	AggregatePartiallyRefuted AggregateVerdict = "partially_refuted"
	AggregateMixed            AggregateVerdict = "mixed"
	AggregateInconclusive     AggregateVerdict = "inconclusive"
)

// ClaimStage tracks how far a claim's pipeline run progressed
type ClaimStage string

const (
	StagePending    ClaimStage = "pending"
	StageExtracting ClaimStage = "extracting"
	StageGathering  ClaimStage = "gathering"
	StageScoring    ClaimStage = "scoring"
	StageDone       ClaimStage = "done"
	StageError      ClaimStage = "error"
)

// Contradiction flags a pair of candidates in opposite arms whose
// comparison results disagree on the same claim number
type Contradiction struct {
	Type       NumberType `json:"type"`
	ClaimValue float64    `json:"claim_value"`
	ForURL     string     `json:"for_url"`
	AgainstURL string     `json:"against_url"`
	Note       string     `json:"note"`
}

// ConsensusReport aggregates cross-arm agreement for one claim.
// Recomputed fresh per run, never cached across claims.
type ConsensusReport struct {
	DomainOverlap   float64         `json:"domain_overlap"` // Fraction of domains present in both arms
	Agreement       float64         `json:"agreement"`      // Credibility-weighted balance, 0..1 (1 = all support)
	SupportWeight   float64         `json:"support_weight"` // Credibility-weighted total of the for arm
	OpposeWeight    float64         `json:"oppose_weight"`  // Credibility-weighted total of the against arm
	MeanCredibility float64         `json:"mean_credibility"`
	Contradictions  []Contradiction `json:"contradictions,omitempty"`
}

// ScoreBreakdown documents exactly how the final score was assembled
type ScoreBreakdown struct {
	Agreement     float64 `json:"agreement"`
	Support       float64 `json:"support"`
	Contradiction float64 `json:"contradiction"`
	Formula       string  `json:"formula"`
}

// ClaimResult is the complete outcome for one claim. Created when the
// claim's pipeline run starts, populated stage by stage, immutable once
// the orchestrator returns it.
type ClaimResult struct {
	Claim       Claim           `json:"claim"`
	For         EvidenceArm     `json:"for"`
	Against     EvidenceArm     `json:"against"`
	Consensus   ConsensusReport `json:"consensus"`
	Score       float64         `json:"score"`
	Breakdown   ScoreBreakdown  `json:"breakdown"`
	Verdict     Verdict         `json:"verdict"`
	Explanation string          `json:"explanation,omitempty"`
	Stage       ClaimStage      `json:"stage"`
	Error       string          `json:"error,omitempty"` // Cause when Verdict == error
}

// AggregateResult is the final multi-claim summary returned to callers.
// Constructed once, after every claim has reached done or error.
type AggregateResult struct {
	RunID     string           `json:"run_id"`
	Input     string           `json:"input"`
	CheckedAt time.Time        `json:"checked_at"`
	Claims    []ClaimResult    `json:"claims"`
	Breakdown map[Verdict]int  `json:"verdict_breakdown"`
	Verdict   AggregateVerdict `json:"aggregated_verdict"`
}

// DeriveAggregateVerdict applies the aggregation rule: any refuted claim
// makes the whole input partially_refuted; all supported means fully
// supported; all inconclusive/error means inconclusive; anything else mixed.
func DeriveAggregateVerdict(breakdown map[Verdict]int) AggregateVerdict {
	total := 0
	for _, n := range breakdown {
		total += n
	}
	if total == 0 {
		return AggregateInconclusive
	}
	if breakdown[VerdictRefuted] > 0 {
		return AggregatePartiallyRefuted
	}
	if breakdown[VerdictSupported] == total {
		return AggregateFullySupported
	}
	if breakdown[VerdictInconclusive]+breakdown[VerdictError] == total {
		return AggregateInconclusive
	}
	return AggregateMixed
}
