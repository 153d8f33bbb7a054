package guardrail

import (
	"fmt"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func candidateFrom(domain string, n int) model.Candidate {
	return model.Candidate{
		URL:    fmt.Sprintf("https://%s/article-%d", domain, n),
		Domain: domain,
	}
}

func TestApply_CapsCombinedPool(t *testing.T) {
	enforcer := NewEnforcer(4)

	forArm := model.EvidenceArm{Name: model.ArmFor}
	againstArm := model.EvidenceArm{Name: model.ArmAgainst}
	for i := 0; i < 3; i++ {
		forArm.Candidates = append(forArm.Candidates, candidateFrom("example.com", i))
		againstArm.Candidates = append(againstArm.Candidates, candidateFrom("example.com", 10+i))
	}

	gotFor, gotAgainst := enforcer.Apply(forArm, againstArm)

	total := len(gotFor.Candidates) + len(gotAgainst.Candidates)
	if total != 4 {
		t.Errorf("Expected 4 combined candidates from one domain, got %d", total)
	}
}

func TestApply_KeepsEarliestByCombinedRank(t *testing.T) {
	enforcer := NewEnforcer(2)

	// Alternating rank positions mean the first kept entries are the
	// top-ranked one from each arm.
	forArm := model.EvidenceArm{Name: model.ArmFor, Candidates: []model.Candidate{
		candidateFrom("example.com", 1),
		candidateFrom("example.com", 2),
	}}
	againstArm := model.EvidenceArm{Name: model.ArmAgainst, Candidates: []model.Candidate{
		candidateFrom("example.com", 3),
		candidateFrom("example.com", 4),
	}}

	gotFor, gotAgainst := enforcer.Apply(forArm, againstArm)

	if len(gotFor.Candidates) != 1 || gotFor.Candidates[0].URL != "https://example.com/article-1" {
		t.Errorf("Expected top for-arm candidate kept, got %+v", gotFor.Candidates)
	}
	if len(gotAgainst.Candidates) != 1 || gotAgainst.Candidates[0].URL != "https://example.com/article-3" {
		t.Errorf("Expected top against-arm candidate kept, got %+v", gotAgainst.Candidates)
	}
}

func TestApply_DistinctDomainsUntouched(t *testing.T) {
	enforcer := NewEnforcer(4)

	forArm := model.EvidenceArm{Name: model.ArmFor, Candidates: []model.Candidate{
		candidateFrom("alpha.org", 1),
		candidateFrom("beta.org", 1),
	}}
	againstArm := model.EvidenceArm{Name: model.ArmAgainst, Candidates: []model.Candidate{
		candidateFrom("gamma.org", 1),
		candidateFrom("delta.org", 1),
	}}

	gotFor, gotAgainst := enforcer.Apply(forArm, againstArm)

	if len(gotFor.Candidates) != 2 || len(gotAgainst.Candidates) != 2 {
		t.Errorf("Expected no drops for distinct domains, got %d/%d",
			len(gotFor.Candidates), len(gotAgainst.Candidates))
	}
}

func TestApply_PreservesArmOrder(t *testing.T) {
	enforcer := NewEnforcer(2)

	forArm := model.EvidenceArm{Name: model.ArmFor, Candidates: []model.Candidate{
		candidateFrom("a.org", 1),
		candidateFrom("crowded.com", 1),
		candidateFrom("crowded.com", 2),
		candidateFrom("b.org", 1),
		candidateFrom("crowded.com", 3),
	}}
	againstArm := model.EvidenceArm{Name: model.ArmAgainst}

	gotFor, _ := enforcer.Apply(forArm, againstArm)

	want := []string{
		"https://a.org/article-1",
		"https://crowded.com/article-1",
		"https://crowded.com/article-2",
		"https://b.org/article-1",
	}
	if len(gotFor.Candidates) != len(want) {
		t.Fatalf("Expected %d candidates, got %d", len(want), len(gotFor.Candidates))
	}
	for i, url := range want {
		if gotFor.Candidates[i].URL != url {
			t.Errorf("Position %d: expected %s, got %s", i, url, gotFor.Candidates[i].URL)
		}
	}
}

func TestApply_ZeroCapDisables(t *testing.T) {
	enforcer := NewEnforcer(0)

	forArm := model.EvidenceArm{Name: model.ArmFor, Candidates: []model.Candidate{
		candidateFrom("example.com", 1),
		candidateFrom("example.com", 2),
	}}

	gotFor, _ := enforcer.Apply(forArm, model.EvidenceArm{Name: model.ArmAgainst})
	if len(gotFor.Candidates) != 2 {
		t.Errorf("Expected cap disabled at zero, got %d candidates", len(gotFor.Candidates))
	}
}
