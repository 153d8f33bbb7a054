package consensus

import (
	"math"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func matching(value float64) *model.ComparisonResult {
	return &model.ComparisonResult{
		Matches:       true,
		Type:          model.NumberGeneric,
		ClaimValue:    value,
		EvidenceValue: value,
	}
}

func mismatching(claimValue, evidenceValue float64) *model.ComparisonResult {
	return &model.ComparisonResult{
		Matches:       false,
		Type:          model.NumberGeneric,
		ClaimValue:    claimValue,
		EvidenceValue: evidenceValue,
	}
}

func TestAnalyze_AgreementFromMatches(t *testing.T) {
	analyzer := NewAnalyzer(0.10)

	forArm := model.EvidenceArm{Name: model.ArmFor, Candidates: []model.Candidate{
		{URL: "https://a.gov/1", Domain: "a.gov", SourceType: model.SourceGovernment, Comparison: matching(330)},
		{URL: "https://b.org/1", Domain: "b.org", SourceType: model.SourceWeb, Comparison: matching(330)},
	}}
	againstArm := model.EvidenceArm{Name: model.ArmAgainst, Candidates: []model.Candidate{
		{URL: "https://c.net/1", Domain: "c.net", SourceType: model.SourceBlog},
	}}

	report := analyzer.Analyze(forArm, againstArm)

	if report.Agreement != 1.0 {
		t.Errorf("Expected full agreement when every comparison matches, got %f", report.Agreement)
	}
	if report.SupportWeight <= 0 || report.OpposeWeight != 0 {
		t.Errorf("Expected positive support and zero opposition, got %f/%f",
			report.SupportWeight, report.OpposeWeight)
	}
}

func TestAnalyze_NoNumericSignalIsNeutral(t *testing.T) {
	analyzer := NewAnalyzer(0.10)

	forArm := model.EvidenceArm{Name: model.ArmFor, Candidates: []model.Candidate{
		{URL: "https://a.org/1", Domain: "a.org", SourceType: model.SourceWeb},
	}}

	report := analyzer.Analyze(forArm, model.EvidenceArm{Name: model.ArmAgainst})
	if report.Agreement != 0.5 {
		t.Errorf("Expected neutral 0.5 agreement without comparisons, got %f", report.Agreement)
	}
}

func TestAnalyze_DomainOverlap(t *testing.T) {
	analyzer := NewAnalyzer(0.10)

	forArm := model.EvidenceArm{Candidates: []model.Candidate{
		{Domain: "shared.org"},
		{Domain: "only-for.org"},
	}}
	againstArm := model.EvidenceArm{Candidates: []model.Candidate{
		{Domain: "shared.org"},
		{Domain: "only-against.org"},
	}}

	report := analyzer.Analyze(forArm, againstArm)
	if math.Abs(report.DomainOverlap-1.0/3.0) > 1e-9 {
		t.Errorf("Expected overlap 1/3, got %f", report.DomainOverlap)
	}
}

func TestAnalyze_CredibilityBoostAndPenalty(t *testing.T) {
	analyzer := NewAnalyzer(0.10)

	// Same source type; the match outcome should separate the weights.
	forArm := model.EvidenceArm{Candidates: []model.Candidate{
		{URL: "https://a.org/1", Domain: "a.org", SourceType: model.SourceWeb, Comparison: matching(100)},
	}}
	againstArm := model.EvidenceArm{Candidates: []model.Candidate{
		{URL: "https://b.org/1", Domain: "b.org", SourceType: model.SourceWeb, Comparison: mismatching(100, 200)},
	}}

	report := analyzer.Analyze(forArm, againstArm)
	if report.SupportWeight <= report.OpposeWeight {
		t.Errorf("Expected matching evidence to carry more weight: support %f, oppose %f",
			report.SupportWeight, report.OpposeWeight)
	}
}

func TestAnalyze_ContradictionsBetweenArms(t *testing.T) {
	analyzer := NewAnalyzer(0.10)

	forArm := model.EvidenceArm{Candidates: []model.Candidate{
		{URL: "https://for.org/1", Domain: "for.org", SourceType: model.SourceNews, Comparison: matching(330)},
	}}
	againstArm := model.EvidenceArm{Candidates: []model.Candidate{
		{URL: "https://against.org/1", Domain: "against.org", SourceType: model.SourceNews, Comparison: mismatching(330, 324)},
	}}

	report := analyzer.Analyze(forArm, againstArm)

	if len(report.Contradictions) != 1 {
		t.Fatalf("Expected 1 contradiction, got %d", len(report.Contradictions))
	}
	c := report.Contradictions[0]
	if c.ForURL != "https://for.org/1" || c.AgainstURL != "https://against.org/1" {
		t.Errorf("Expected contradiction URLs from both arms, got %+v", c)
	}
	if c.ClaimValue != 330 {
		t.Errorf("Expected claim value 330, got %v", c.ClaimValue)
	}
}

func TestAnalyze_MeanCredibility(t *testing.T) {
	analyzer := NewAnalyzer(0)

	forArm := model.EvidenceArm{Candidates: []model.Candidate{
		{Domain: "a.gov", SourceType: model.SourceGovernment}, // prior 0.85
		{Domain: "b.org", SourceType: model.SourceSocial},     // prior 0.20
	}}

	report := analyzer.Analyze(forArm, model.EvidenceArm{})
	if math.Abs(report.MeanCredibility-0.525) > 1e-9 {
		t.Errorf("Expected mean credibility 0.525, got %f", report.MeanCredibility)
	}
}

func TestAnalyze_EmptyArms(t *testing.T) {
	analyzer := NewAnalyzer(0.10)

	report := analyzer.Analyze(model.EvidenceArm{}, model.EvidenceArm{})
	if report.DomainOverlap != 0 || report.MeanCredibility != 0 {
		t.Errorf("Expected zeroed report for empty arms, got %+v", report)
	}
	if report.Agreement != 0.5 {
		t.Errorf("Expected neutral agreement for empty arms, got %f", report.Agreement)
	}
}
