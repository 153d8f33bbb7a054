package assist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

const maxQueriesPerArm = 3

// completer is the minimal surface an LLM backend must offer
type completer interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

const systemPrompt = "You are an evidence-analysis assistant. Answer in the exact plain-text format requested, with no preamble and no markdown."

// Client implements Assistant on top of a completion backend. Methods
// return errors on backend or parse failure; callers wanting graceful
// degradation wrap the client with Graceful.
type Client struct {
	backend completer
}

// NewClient creates an LLM-backed assistant
func NewClient(backend completer) *Client {
	return &Client{backend: backend}
}

// RefineQueries asks the model to rewrite the arm's queries
func (c *Client) RefineQueries(ctx context.Context, claim model.Claim, arm model.ArmName, queries []string) ([]string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Claim: %s\n", claim.Text)
	fmt.Fprintf(&b, "Search intent: find evidence %s this claim.\n", intentVerb(arm))
	b.WriteString("Current queries:\n")
	for _, q := range queries {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	fmt.Fprintf(&b, "Rewrite these into at most %d sharper web search queries, one per line.", maxQueriesPerArm)

	resp, err := c.backend.Complete(ctx, systemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("refine queries: %w", err)
	}

	refined := nonEmptyLines(resp, maxQueriesPerArm)
	if len(refined) == 0 {
		return nil, fmt.Errorf("refine queries: %s returned no usable queries", c.backend.Name())
	}
	return refined, nil
}

// TriagePassages asks the model to order candidates by relevance. The
// model answers with candidate indexes; anything it omits is dropped.
func (c *Client) TriagePassages(ctx context.Context, claim model.Claim, candidates []model.Candidate) ([]model.Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Claim: %s\n", claim.Text)
	b.WriteString("Candidate passages:\n")
	for i, cand := range candidates {
		fmt.Fprintf(&b, "%d. %s :: %s\n", i, cand.Title, cand.Snippet)
	}
	b.WriteString("List the numbers of the passages relevant to verifying the claim, most relevant first, comma separated. Omit irrelevant ones.")

	resp, err := c.backend.Complete(ctx, systemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("triage passages: %w", err)
	}

	indexes := parseIndexes(resp, len(candidates))
	if len(indexes) == 0 {
		return nil, fmt.Errorf("triage passages: %s returned no usable indexes", c.backend.Name())
	}

	triaged := make([]model.Candidate, 0, len(indexes))
	for _, i := range indexes {
		triaged = append(triaged, candidates[i])
	}
	return triaged, nil
}

// SurfaceContradictions asks the model for a one-line note per known
// contradiction. The numeric contradictions themselves come from the
// comparator; the model only annotates.
func (c *Client) SurfaceContradictions(ctx context.Context, claim model.Claim, report model.ConsensusReport) ([]model.Contradiction, error) {
	if len(report.Contradictions) == 0 {
		return report.Contradictions, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Claim: %s\n", claim.Text)
	b.WriteString("Numeric contradictions found between sources:\n")
	for i, con := range report.Contradictions {
		fmt.Fprintf(&b, "%d. %s vs %s: %s\n", i, con.ForURL, con.AgainstURL, con.Note)
	}
	b.WriteString("For each, write one short line explaining the likely reason for the disagreement, in the same order.")

	resp, err := c.backend.Complete(ctx, systemPrompt, b.String())
	if err != nil {
		return nil, fmt.Errorf("surface contradictions: %w", err)
	}

	notes := nonEmptyLines(resp, len(report.Contradictions))
	annotated := make([]model.Contradiction, len(report.Contradictions))
	copy(annotated, report.Contradictions)
	for i := range annotated {
		if i < len(notes) {
			annotated[i].Note = notes[i]
		}
	}
	return annotated, nil
}

// DraftExplanation asks the model to write the verdict explanation
func (c *Client) DraftExplanation(ctx context.Context, result model.ClaimResult) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Claim: %s\n", result.Claim.Text)
	fmt.Fprintf(&b, "Verdict: %s (score %.2f)\n", result.Verdict, result.Score)
	fmt.Fprintf(&b, "Agreement: %.2f, support weight: %.2f, oppose weight: %.2f\n",
		result.Consensus.Agreement, result.Consensus.SupportWeight, result.Consensus.OpposeWeight)
	fmt.Fprintf(&b, "Sources: %d for, %d against, %d contradictions\n",
		len(result.For.Candidates), len(result.Against.Candidates), len(result.Consensus.Contradictions))
	b.WriteString("Write a 2-3 sentence neutral explanation of this verdict. Do not change the verdict or cite URLs not listed.")

	resp, err := c.backend.Complete(ctx, systemPrompt, b.String())
	if err != nil {
		return "", fmt.Errorf("draft explanation: %w", err)
	}

	explanation := strings.TrimSpace(resp)
	if explanation == "" {
		return "", fmt.Errorf("draft explanation: %s returned empty text", c.backend.Name())
	}
	return explanation, nil
}

func intentVerb(arm model.ArmName) string {
	if arm == model.ArmAgainst {
		return "against"
	}
	return "supporting"
}

// nonEmptyLines splits a completion into trimmed lines, dropping list
// markers and capping the count
func nonEmptyLines(text string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == limit {
			break
		}
	}
	return lines
}

// parseIndexes extracts unique in-range candidate indexes from a
// comma-separated answer
func parseIndexes(text string, n int) []int {
	seen := make(map[int]bool)
	var indexes []int
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n' || r == ' '
	}) {
		i, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(field), "."))
		if err != nil || i < 0 || i >= n || seen[i] {
			continue
		}
		seen[i] = true
		indexes = append(indexes, i)
	}
	return indexes
}
