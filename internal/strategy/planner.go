// Package strategy derives per-claim search plans: two arms (for/against),
// each with a small set of query variants and a provider preference order.
// Planning is fully deterministic so identical input always produces the
// same evidence trail.
package strategy

import (
	"fmt"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

const maxQueriesPerArm = 3

// ArmPlan describes the searches for one side of a claim
type ArmPlan struct {
	Name      model.ArmName
	Strategy  string
	Queries   []string
	Providers []string
}

// Plan is the complete search strategy for a single claim
type Plan struct {
	Claim model.Claim
	Arms  []ArmPlan
}

// Arm returns the plan for the named arm
func (p Plan) Arm(name model.ArmName) (ArmPlan, bool) {
	for _, arm := range p.Arms {
		if arm.Name == name {
			return arm, true
		}
	}
	return ArmPlan{}, false
}

// Planner builds search plans from interpreted claims
type Planner struct {
	providers []string
}

// NewPlanner creates a planner with the given provider preference order
func NewPlanner(providers []string) *Planner {
	return &Planner{providers: providers}
}

// Plan derives both arms for a claim. It fails only when the claim text is
// empty, which indicates a broken extraction upstream.
func (p *Planner) Plan(claim model.Claim) (Plan, error) {
	base := collapseQuery(claim.Text)
	if base == "" {
		return Plan{}, fmt.Errorf("%w: claim %d has no queryable text", model.ErrPlanInvalid, claim.ID)
	}

	entityQuery := strings.Join(claim.Entities, " ")
	if claim.Scope.YearHint != "" && entityQuery != "" && !strings.Contains(entityQuery, claim.Scope.YearHint) {
		entityQuery += " " + claim.Scope.YearHint
	}

	forQueries := dedupeQueries([]string{
		base,
		joinNonEmpty(entityQuery, "evidence"),
		joinNonEmpty(base, "source"),
	})

	var againstQueries []string
	if claim.Cues.Negation {
		// The claim itself is a denial; the against arm searches for the
		// asserted counter-position.
		againstQueries = dedupeQueries([]string{
			joinNonEmpty(base, "counter evidence"),
			joinNonEmpty(entityQuery, "contradiction"),
		})
	} else {
		againstQueries = dedupeQueries([]string{
			joinNonEmpty(base, "fact check"),
			joinNonEmpty(entityQuery, "fact check"),
		})
	}

	providers := append([]string(nil), p.providers...)

	return Plan{
		Claim: claim,
		Arms: []ArmPlan{
			{Name: model.ArmFor, Strategy: "corroborate", Queries: forQueries, Providers: providers},
			{Name: model.ArmAgainst, Strategy: "counter", Queries: againstQueries, Providers: providers},
		},
	}, nil
}

// collapseQuery flattens whitespace and caps query length at 16 words so
// provider APIs get a focused phrase rather than a paragraph
func collapseQuery(text string) string {
	words := strings.Fields(text)
	if len(words) > 16 {
		words = words[:16]
	}
	return strings.TrimRight(strings.Join(words, " "), ".!?")
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	// A qualifier with no base phrase is not a usable query
	if len(kept) < 2 && len(parts) > 1 && strings.TrimSpace(parts[0]) == "" {
		return ""
	}
	return strings.Join(kept, " ")
}

func dedupeQueries(queries []string) []string {
	seen := make(map[string]bool)
	var unique []string
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" || seen[strings.ToLower(q)] {
			continue
		}
		seen[strings.ToLower(q)] = true
		unique = append(unique, q)
		if len(unique) == maxQueriesPerArm {
			break
		}
	}
	return unique
}
