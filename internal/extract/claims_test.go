package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/veracity/internal/model"
)

func TestExtractor_SingleSentence(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract("The Eiffel Tower is 330 meters tall.")

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}

	claim := claims[0]
	if claim.Tier != model.TierPrimary {
		t.Errorf("Expected primary tier, got %s", claim.Tier)
	}
	if claim.Cues.Negation {
		t.Error("Expected no negation cue")
	}

	foundNumber := false
	for _, n := range claim.Numbers {
		if n.Value == 330 && n.Type == model.NumberGeneric {
			foundNumber = true
		}
	}
	if !foundNumber {
		t.Errorf("Expected number {330, number}, got %v", claim.Numbers)
	}
}

func TestExtractor_PercentAndYear(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract("US GDP grew 3.2% in Q4 2023.")

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}

	claim := claims[0]
	foundPercent := false
	foundYear := false
	for _, n := range claim.Numbers {
		if n.Value == 3.2 && n.Type == model.NumberPercent {
			foundPercent = true
		}
		if n.Value == 2023 && n.Type == model.NumberYear {
			foundYear = true
		}
	}
	if !foundPercent {
		t.Errorf("Expected number {3.2, percent}, got %v", claim.Numbers)
	}
	if !foundYear {
		t.Errorf("Expected number {2023, year}, got %v", claim.Numbers)
	}
	if claim.Scope.YearHint != "2023" {
		t.Errorf("Expected year hint 2023, got %q", claim.Scope.YearHint)
	}
}

func TestExtractor_NegationAndEntities(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract("Vaccines do not cause autism.")

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}

	claim := claims[0]
	if !claim.Cues.Negation {
		t.Error("Expected negation cue to be set")
	}

	for _, want := range []string{"vaccines", "autism"} {
		found := false
		for _, entity := range claim.Entities {
			if strings.EqualFold(entity, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected entity %q, got %v", want, claim.Entities)
		}
	}
}

func TestExtractor_TierCoverage(t *testing.T) {
	extractor := NewExtractor()

	text := "The Amazon rainforest produces 20% of the world's oxygen. " +
		"Deforestation rates increased in 2023. " +
		"Some researchers disagree about the exact numbers. " +
		"Brazil hosts the largest share of the forest."

	claims := extractor.Extract(text)

	if len(claims) < 4 {
		t.Fatalf("Expected 4 claims, got %d", len(claims))
	}

	tiers := make(map[model.Tier]int)
	for _, claim := range claims {
		tiers[claim.Tier]++
	}

	for _, tier := range []model.Tier{model.TierPrimary, model.TierSecondary, model.TierTertiary} {
		if tiers[tier] == 0 {
			t.Errorf("Expected at least one %s claim, got distribution %v", tier, tiers)
		}
	}

	// Claim IDs follow sentence order
	for i, claim := range claims {
		if claim.ID != i {
			t.Errorf("Expected claim %d to have ID %d, got %d", i, i, claim.ID)
		}
	}
}

func TestExtractor_NeverEmpty(t *testing.T) {
	extractor := NewExtractor()

	for _, input := range []string{"", "   ", "ok", "word word word"} {
		claims := extractor.Extract(input)
		if len(claims) == 0 {
			t.Errorf("Expected at least one claim for input %q", input)
		}
		if len(claims) == 1 && claims[0].Tier != model.TierPrimary {
			t.Errorf("Expected synthetic claim to be primary for input %q, got %s", input, claims[0].Tier)
		}
	}
}

func TestExtractor_Attribution(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract("According to the World Bank, inflation fell sharply.")

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if !strings.Contains(strings.ToLower(claims[0].Cues.Attribution), "world bank") {
		t.Errorf("Expected attribution to mention the World Bank, got %q", claims[0].Cues.Attribution)
	}
}

func TestExtractor_Comparison(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract("France produces more wine than Italy.")

	if len(claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(claims))
	}
	if !claims[0].Cues.Comparison {
		t.Error("Expected comparison cue to be set")
	}
}
