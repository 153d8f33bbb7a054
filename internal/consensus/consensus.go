// Package consensus measures how the two evidence arms relate: shared
// domains, numeric agreement, credibility-weighted support versus
// opposition, and explicit contradictions between arms.
package consensus

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/ppiankov/veracity/internal/classify"
	"github.com/ppiankov/veracity/internal/model"
)

// Analyzer builds a consensus report from ranked, capped evidence arms
type Analyzer struct {
	matchBoost float64
}

// NewAnalyzer creates an analyzer. matchBoost is added to a candidate's
// structural prior when its numeric comparison matches the claim, and
// subtracted when it contradicts.
func NewAnalyzer(matchBoost float64) *Analyzer {
	return &Analyzer{matchBoost: matchBoost}
}

// Analyze computes the consensus report for one claim's evidence
func (a *Analyzer) Analyze(forArm, againstArm model.EvidenceArm) model.ConsensusReport {
	report := model.ConsensusReport{
		DomainOverlap:  domainOverlap(forArm.Candidates, againstArm.Candidates),
		Contradictions: a.contradictions(forArm, againstArm),
	}

	var credibilities []float64
	for _, c := range append(append([]model.Candidate{}, forArm.Candidates...), againstArm.Candidates...) {
		cred := a.credibility(c)
		credibilities = append(credibilities, cred)

		if c.Comparison == nil {
			continue
		}
		if c.Comparison.Matches {
			report.SupportWeight += cred
		} else {
			report.OpposeWeight += cred
		}
	}

	total := report.SupportWeight + report.OpposeWeight
	if total > 0 {
		report.Agreement = report.SupportWeight / total
	} else {
		report.Agreement = 0.5 // No numeric signal either way
	}

	if len(credibilities) > 0 {
		if mean, err := stats.Mean(credibilities); err == nil {
			report.MeanCredibility = mean
		}
	}

	return report
}

// credibility is the candidate's structural prior, nudged by the numeric
// comparison outcome when one exists. Clamped to 0..1.
func (a *Analyzer) credibility(c model.Candidate) float64 {
	cred := classify.Prior(c.SourceType)
	if c.Comparison != nil {
		if c.Comparison.Matches {
			cred += a.matchBoost
		} else {
			cred -= a.matchBoost
		}
	}
	if cred > 1 {
		cred = 1
	}
	if cred < 0 {
		cred = 0
	}
	return cred
}

// contradictions pairs for-arm and against-arm candidates that judged the
// same claim value differently. Order follows arm rank, so output is
// deterministic.
func (a *Analyzer) contradictions(forArm, againstArm model.EvidenceArm) []model.Contradiction {
	var found []model.Contradiction
	for _, fc := range forArm.Candidates {
		if fc.Comparison == nil {
			continue
		}
		for _, ac := range againstArm.Candidates {
			if ac.Comparison == nil {
				continue
			}
			if fc.Comparison.Type != ac.Comparison.Type ||
				fc.Comparison.ClaimValue != ac.Comparison.ClaimValue ||
				fc.Comparison.Matches == ac.Comparison.Matches {
				continue
			}
			found = append(found, model.Contradiction{
				Type:       fc.Comparison.Type,
				ClaimValue: fc.Comparison.ClaimValue,
				ForURL:     fc.URL,
				AgainstURL: ac.URL,
				Note: fmt.Sprintf("sources report %v and %v for the same claimed value",
					fc.Comparison.EvidenceValue, ac.Comparison.EvidenceValue),
			})
		}
	}
	return found
}

// domainOverlap is the Jaccard similarity of the two arms' domain sets
func domainOverlap(forCands, againstCands []model.Candidate) float64 {
	forDomains := domainSet(forCands)
	againstDomains := domainSet(againstCands)
	if len(forDomains) == 0 && len(againstDomains) == 0 {
		return 0
	}

	intersection := 0
	for d := range forDomains {
		if againstDomains[d] {
			intersection++
		}
	}
	union := len(forDomains) + len(againstDomains) - intersection
	return float64(intersection) / float64(union)
}

func domainSet(candidates []model.Candidate) map[string]bool {
	set := make(map[string]bool)
	for _, c := range candidates {
		if c.Domain != "" {
			set[c.Domain] = true
		}
	}
	return set
}
