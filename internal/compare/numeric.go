// Package compare judges whether candidate evidence numerically agrees
// with a claim's asserted values. Tolerances are fixed per number type:
//
//	percent        3 percentage points
//	year           exact match only
//	number >= 1000 5% relative (of the larger magnitude, so the judgment
//	               is symmetric)
//	number < 1000  1 absolute unit
//
// Candidates without a comparable number are neutral, never contradicting.
package compare

import (
	"fmt"
	"math"

	"github.com/ppiankov/veracity/internal/extract"
	"github.com/ppiankov/veracity/internal/model"
)

const (
	percentTolerance  = 3.0
	relativeTolerance = 0.05
	absoluteTolerance = 1.0
	relativeCutoff    = 1000.0
)

// Numeric compares a claim value against an evidence value of the same
// type and returns the full judgment with reasoning
func Numeric(claimValue, evidenceValue float64, numType model.NumberType) model.ComparisonResult {
	diff := evidenceValue - claimValue
	absDiff := math.Abs(diff)

	larger := math.Max(math.Abs(claimValue), math.Abs(evidenceValue))
	diffPct := 0.0
	if larger > 0 {
		diffPct = absDiff / larger * 100
	}

	result := model.ComparisonResult{
		Type:          numType,
		ClaimValue:    claimValue,
		EvidenceValue: evidenceValue,
		Difference:    diff,
		DifferencePct: diffPct,
	}

	switch numType {
	case model.NumberPercent:
		result.ToleranceUsed = percentTolerance
		result.Matches = absDiff <= percentTolerance
		result.Reasoning = fmt.Sprintf(
			"claim %.2f%% vs evidence %.2f%%: difference %.2f points against tolerance %.1f points",
			claimValue, evidenceValue, absDiff, percentTolerance)

	case model.NumberYear:
		result.ToleranceUsed = 0
		result.Matches = claimValue == evidenceValue
		result.Reasoning = fmt.Sprintf(
			"claim year %.0f vs evidence year %.0f: years must match exactly",
			claimValue, evidenceValue)

	default:
		if larger >= relativeCutoff {
			result.ToleranceUsed = relativeTolerance
			relative := 0.0
			if larger > 0 {
				relative = absDiff / larger
			}
			result.Matches = relative <= relativeTolerance
			result.Reasoning = fmt.Sprintf(
				"claim %.2f vs evidence %.2f: relative difference %.2f%% against tolerance %.0f%%",
				claimValue, evidenceValue, relative*100, relativeTolerance*100)
		} else {
			result.ToleranceUsed = absoluteTolerance
			result.Matches = absDiff <= absoluteTolerance
			result.Reasoning = fmt.Sprintf(
				"claim %.2f vs evidence %.2f: absolute difference %.2f against tolerance %.1f",
				claimValue, evidenceValue, absDiff, absoluteTolerance)
		}
	}

	return result
}

// Annotate attaches a comparison result to every candidate that carries
// exactly one distinct comparable value for one of the claim's numbers.
// Candidates with no comparable number, or with conflicting values of the
// same type (ambiguous), stay neutral.
func Annotate(claim model.Claim, candidates []model.Candidate) []model.Candidate {
	if len(claim.Numbers) == 0 {
		return candidates
	}

	annotated := make([]model.Candidate, len(candidates))
	for i, candidate := range candidates {
		annotated[i] = candidate

		evidenceNumbers := extract.Numbers(candidate.Title + " " + candidate.Snippet)
		if len(evidenceNumbers) == 0 {
			continue
		}

		for _, claimNum := range claim.Numbers {
			value, ok := singleValueOfType(evidenceNumbers, claimNum.Type)
			if !ok {
				continue
			}
			result := Numeric(claimNum.Value, value, claimNum.Type)
			annotated[i].Comparison = &result
			break
		}
	}
	return annotated
}

// singleValueOfType returns the evidence value for a type when it is
// unambiguous: all numbers of that type agree on one value
func singleValueOfType(numbers []model.Number, numType model.NumberType) (float64, bool) {
	var value float64
	found := false
	for _, n := range numbers {
		if n.Type != numType {
			continue
		}
		if found && n.Value != value {
			return 0, false // Conflicting values; treat as ambiguous
		}
		value = n.Value
		found = true
	}
	return value, found
}
