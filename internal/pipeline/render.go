package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

// Renderer writes aggregate results as JSON or Markdown
type Renderer struct {
	maxSourcesPerArm int
}

// NewRenderer creates a renderer. maxSourcesPerArm bounds how many
// sources the Markdown report lists per arm; zero means all.
func NewRenderer(maxSourcesPerArm int) *Renderer {
	return &Renderer{maxSourcesPerArm: maxSourcesPerArm}
}

// RenderJSON writes the result as indented JSON to path, or to stdout
// when path is empty or "-"
func (r *Renderer) RenderJSON(result *model.AggregateResult, path string) error {
	if path == "" || path == "-" {
		return r.WriteJSON(os.Stdout, result)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return r.WriteJSON(f, result)
}

// WriteJSON encodes the result as indented JSON
func (r *Renderer) WriteJSON(w io.Writer, result *model.AggregateResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// RenderMarkdown writes the Markdown report to path, or to stdout when
// path is empty or "-"
func (r *Renderer) RenderMarkdown(result *model.AggregateResult, path string) error {
	if path == "" || path == "-" {
		return r.WriteMarkdown(os.Stdout, result)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return r.WriteMarkdown(f, result)
}

// WriteMarkdown renders the full human-readable report
func (r *Renderer) WriteMarkdown(w io.Writer, result *model.AggregateResult) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Fact-Check Report\n\n")
	fmt.Fprintf(&b, "**Verdict:** %s\n\n", result.Verdict)
	fmt.Fprintf(&b, "**Input:** %s\n\n", result.Input)
	fmt.Fprintf(&b, "**Checked:** %s · Run `%s`\n\n", result.CheckedAt.Format("2006-01-02 15:04 UTC"), result.RunID)

	fmt.Fprintf(&b, "| Verdict | Claims |\n|---|---|\n")
	for _, v := range []model.Verdict{model.VerdictSupported, model.VerdictRefuted, model.VerdictInconclusive, model.VerdictError} {
		if n := result.Breakdown[v]; n > 0 {
			fmt.Fprintf(&b, "| %s | %d |\n", v, n)
		}
	}
	b.WriteString("\n")

	for _, claim := range result.Claims {
		r.writeClaim(&b, claim)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-line-per-claim summary to stdout
func (r *Renderer) RenderSummary(result *model.AggregateResult) {
	fmt.Printf("Verdict: %s (%d claims)\n", result.Verdict, len(result.Claims))
	for _, claim := range result.Claims {
		fmt.Printf("  [%s] %.2f  %s\n", claim.Verdict, claim.Score, truncate(claim.Claim.Text, 80))
	}
}

func (r *Renderer) writeClaim(b *strings.Builder, claim model.ClaimResult) {
	fmt.Fprintf(b, "## Claim %d: %s\n\n", claim.Claim.ID+1, claim.Claim.Text)
	fmt.Fprintf(b, "**%s** (score %.2f, tier %s)\n\n", claim.Verdict, claim.Score, claim.Claim.Tier)

	if claim.Error != "" {
		fmt.Fprintf(b, "Error: %s\n\n", claim.Error)
		return
	}
	if claim.Explanation != "" {
		fmt.Fprintf(b, "%s\n\n", claim.Explanation)
	}

	fmt.Fprintf(b, "- Agreement: %.0f%%, mean credibility %.2f, domain overlap %.0f%%\n",
		claim.Consensus.Agreement*100, claim.Consensus.MeanCredibility, claim.Consensus.DomainOverlap*100)
	fmt.Fprintf(b, "- Score: %s\n\n", claim.Breakdown.Formula)

	if len(claim.Consensus.Contradictions) > 0 {
		b.WriteString("**Contradictions:**\n\n")
		for _, con := range claim.Consensus.Contradictions {
			fmt.Fprintf(b, "- %s (<%s> vs <%s>)\n", con.Note, con.ForURL, con.AgainstURL)
		}
		b.WriteString("\n")
	}

	r.writeArm(b, "Supporting sources", claim.For)
	r.writeArm(b, "Opposing sources", claim.Against)
}

func (r *Renderer) writeArm(b *strings.Builder, heading string, arm model.EvidenceArm) {
	if len(arm.Candidates) == 0 {
		return
	}

	candidates := arm.Candidates
	if r.maxSourcesPerArm > 0 && len(candidates) > r.maxSourcesPerArm {
		candidates = candidates[:r.maxSourcesPerArm]
	}

	fmt.Fprintf(b, "**%s:**\n\n", heading)
	for _, c := range candidates {
		marker := ""
		if c.Comparison != nil {
			if c.Comparison.Matches {
				marker = " ✓"
			} else {
				marker = " ✗"
			}
		}
		fmt.Fprintf(b, "- [%s](%s) (%s)%s\n", titleOrURL(c), c.URL, c.SourceType, marker)
	}
	b.WriteString("\n")
}

func titleOrURL(c model.Candidate) string {
	if strings.TrimSpace(c.Title) != "" {
		return c.Title
	}
	return c.URL
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
