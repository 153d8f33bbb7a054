// Package guardrail applies the post-rank diversity cap across both
// evidence arms jointly, so a single source cannot dominate the combined
// pool even when it stays under each arm's own cap.
package guardrail

import "github.com/ppiankov/veracity/internal/model"

// Enforcer caps per-domain candidates across the combined for+against pool
type Enforcer struct {
	combinedCap int
}

// NewEnforcer creates an enforcer with the given combined per-domain cap
func NewEnforcer(combinedCap int) *Enforcer {
	return &Enforcer{combinedCap: combinedCap}
}

// Apply walks both arms in combined rank order (rank position first, the
// for arm before the against arm at equal position) and drops candidates
// once their domain reaches the cap. Each arm's internal order is
// preserved; the drop is deterministic.
func (e *Enforcer) Apply(forArm, againstArm model.EvidenceArm) (model.EvidenceArm, model.EvidenceArm) {
	if e.combinedCap <= 0 {
		return forArm, againstArm
	}

	counts := make(map[string]int)
	keepFor := make([]bool, len(forArm.Candidates))
	keepAgainst := make([]bool, len(againstArm.Candidates))

	maxLen := len(forArm.Candidates)
	if len(againstArm.Candidates) > maxLen {
		maxLen = len(againstArm.Candidates)
	}

	for pos := 0; pos < maxLen; pos++ {
		if pos < len(forArm.Candidates) {
			domain := forArm.Candidates[pos].Domain
			if counts[domain] < e.combinedCap {
				counts[domain]++
				keepFor[pos] = true
			}
		}
		if pos < len(againstArm.Candidates) {
			domain := againstArm.Candidates[pos].Domain
			if counts[domain] < e.combinedCap {
				counts[domain]++
				keepAgainst[pos] = true
			}
		}
	}

	forArm.Candidates = filter(forArm.Candidates, keepFor)
	againstArm.Candidates = filter(againstArm.Candidates, keepAgainst)
	return forArm, againstArm
}

func filter(candidates []model.Candidate, keep []bool) []model.Candidate {
	kept := make([]model.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if keep[i] {
			kept = append(kept, c)
		}
	}
	return kept
}
