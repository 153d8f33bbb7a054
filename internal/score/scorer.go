// Package score turns a consensus report into a final 0..1 score and a
// verdict. The combination is linear and monotonic: more supporting
// weight never lowers the score, more contradiction never raises it.
package score

import (
	"fmt"

	"github.com/ppiankov/veracity/internal/model"
)

// Scorer computes claim scores from consensus reports
type Scorer struct {
	cfg model.ScoringConfig
}

// NewScorer creates a scorer with the given weights and thresholds
func NewScorer(cfg model.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score combines agreement, net support and contradiction into one value
// clamped to 0..1. A claim with no numeric signal in either direction
// lands mid-range, so absence of evidence reads as inconclusive rather
// than refuted.
func (s *Scorer) Score(report model.ConsensusReport) (float64, model.ScoreBreakdown) {
	agreement := report.Agreement
	support := supportSignal(report)
	contradiction := contradictionSignal(report)

	value := s.cfg.AgreementWeight*agreement +
		s.cfg.SupportWeight*support -
		s.cfg.ContradictionWeight*contradiction

	if value > 1 {
		value = 1
	}
	if value < 0 {
		value = 0
	}

	breakdown := model.ScoreBreakdown{
		Agreement:     agreement,
		Support:       support,
		Contradiction: contradiction,
		Formula: fmt.Sprintf("%.2f*agreement(%.2f) + %.2f*support(%.2f) - %.2f*contradiction(%.2f) = %.2f",
			s.cfg.AgreementWeight, agreement,
			s.cfg.SupportWeight, support,
			s.cfg.ContradictionWeight, contradiction,
			value),
	}
	return value, breakdown
}

// Verdict maps a score onto the three-way verdict
func (s *Scorer) Verdict(score float64) model.Verdict {
	switch {
	case score >= s.cfg.SupportedThreshold:
		return model.VerdictSupported
	case score <= s.cfg.RefutedThreshold:
		return model.VerdictRefuted
	default:
		return model.VerdictInconclusive
	}
}

// supportSignal maps net credibility-weighted support onto 0..1, with 0.5
// when the arms carry no numeric signal. The +1 in the denominator keeps
// a single weak source from saturating the signal.
func supportSignal(report model.ConsensusReport) float64 {
	net := report.SupportWeight - report.OpposeWeight
	total := report.SupportWeight + report.OpposeWeight
	return 0.5 * (1 + net/(total+1))
}

// contradictionSignal saturates with the count of explicit contradictions
func contradictionSignal(report model.ConsensusReport) float64 {
	n := float64(len(report.Contradictions))
	return n / (n + 1)
}
