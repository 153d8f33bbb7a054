package score

import (
	"strings"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func testScoringConfig() model.ScoringConfig {
	return model.ScoringConfig{
		AgreementWeight:     0.45,
		SupportWeight:       0.35,
		ContradictionWeight: 0.20,
		MatchBoost:          0.10,
		SupportedThreshold:  0.65,
		RefutedThreshold:    0.35,
	}
}

func TestScore_StrongSupportIsSupported(t *testing.T) {
	scorer := NewScorer(testScoringConfig())

	report := model.ConsensusReport{
		Agreement:     1.0,
		SupportWeight: 2.4,
		OpposeWeight:  0,
	}

	value, _ := scorer.Score(report)
	if scorer.Verdict(value) != model.VerdictSupported {
		t.Errorf("Expected supported verdict for strong agreement, score %f", value)
	}
}

func TestScore_StrongOppositionIsRefuted(t *testing.T) {
	scorer := NewScorer(testScoringConfig())

	report := model.ConsensusReport{
		Agreement:      0,
		SupportWeight:  0,
		OpposeWeight:   2.0,
		Contradictions: []model.Contradiction{{Type: model.NumberGeneric, ClaimValue: 330}},
	}

	value, _ := scorer.Score(report)
	if scorer.Verdict(value) != model.VerdictRefuted {
		t.Errorf("Expected refuted verdict for strong opposition, score %f", value)
	}
}

func TestScore_NoSignalIsInconclusive(t *testing.T) {
	scorer := NewScorer(testScoringConfig())

	report := model.ConsensusReport{Agreement: 0.5}

	value, _ := scorer.Score(report)
	if scorer.Verdict(value) != model.VerdictInconclusive {
		t.Errorf("Expected inconclusive verdict without signal, score %f", value)
	}
}

func TestScore_ClampedToUnitRange(t *testing.T) {
	scorer := NewScorer(testScoringConfig())

	extremes := []model.ConsensusReport{
		{Agreement: 1.0, SupportWeight: 100},
		{Agreement: 0, OpposeWeight: 100, Contradictions: make([]model.Contradiction, 10)},
	}

	for _, report := range extremes {
		value, _ := scorer.Score(report)
		if value < 0 || value > 1 {
			t.Errorf("Expected score in [0,1], got %f for %+v", value, report)
		}
	}
}

func TestScore_MonotonicInSupport(t *testing.T) {
	scorer := NewScorer(testScoringConfig())

	prev := -1.0
	for _, w := range []float64{0, 0.5, 1.0, 2.0, 5.0} {
		value, _ := scorer.Score(model.ConsensusReport{Agreement: 0.5, SupportWeight: w})
		if value < prev {
			t.Errorf("Expected score to be non-decreasing in support weight, %f after %f", value, prev)
		}
		prev = value
	}
}

func TestScore_ContradictionsLowerScore(t *testing.T) {
	scorer := NewScorer(testScoringConfig())

	base := model.ConsensusReport{Agreement: 0.7, SupportWeight: 1.0, OpposeWeight: 0.4}
	clean, _ := scorer.Score(base)

	base.Contradictions = []model.Contradiction{{Type: model.NumberGeneric, ClaimValue: 42}}
	contradicted, _ := scorer.Score(base)

	if contradicted >= clean {
		t.Errorf("Expected contradictions to lower the score: %f vs %f", contradicted, clean)
	}
}

func TestScore_BreakdownFormula(t *testing.T) {
	scorer := NewScorer(testScoringConfig())

	_, breakdown := scorer.Score(model.ConsensusReport{Agreement: 0.8, SupportWeight: 1.2})

	if breakdown.Formula == "" {
		t.Fatal("Expected formula string in breakdown")
	}
	for _, part := range []string{"agreement", "support", "contradiction", "="} {
		if !strings.Contains(breakdown.Formula, part) {
			t.Errorf("Expected formula to mention %q, got %q", part, breakdown.Formula)
		}
	}
}

func TestVerdict_Thresholds(t *testing.T) {
	scorer := NewScorer(testScoringConfig())

	cases := []struct {
		score float64
		want  model.Verdict
	}{
		{0.65, model.VerdictSupported},
		{0.80, model.VerdictSupported},
		{0.64, model.VerdictInconclusive},
		{0.50, model.VerdictInconclusive},
		{0.36, model.VerdictInconclusive},
		{0.35, model.VerdictRefuted},
		{0.10, model.VerdictRefuted},
	}

	for _, c := range cases {
		if got := scorer.Verdict(c.score); got != c.want {
			t.Errorf("Verdict(%f): expected %s, got %s", c.score, c.want, got)
		}
	}
}
