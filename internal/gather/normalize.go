package gather

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
	"golang.org/x/net/publicsuffix"
)

// trackingParams are query parameters that identify campaigns, not
// content; they are stripped during canonicalization
var trackingParams = map[string]bool{
	"fbclid": true, "gclid": true, "msclkid": true, "mc_cid": true,
	"mc_eid": true, "ref": true, "source": true, "igshid": true,
}

// CanonicalizeURL normalizes scheme and host casing, drops the fragment,
// and strips tracking query parameters. Content-bearing parameters stay.
func CanonicalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""

	query := parsed.Query()
	for param := range query {
		if trackingParams[param] || strings.HasPrefix(param, "utm_") {
			query.Del(param)
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// Domain returns the registered domain (eTLD+1) for grouping candidates;
// subdomains of one site count against the same diversity cap
func Domain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}

// Fingerprint hashes canonical URL plus title for duplicate detection
func Fingerprint(canonicalURL, title string) string {
	hash := sha256.Sum256([]byte(canonicalURL + "|" + strings.ToLower(strings.TrimSpace(title))))
	return hex.EncodeToString(hash[:])
}

// Normalize applies the canonical dedup policy in fixed order: exact
// fingerprint duplicates, then near-duplicate titles, then the per-domain
// cap. Reordering these passes changes output and is a behavior change.
// The input order (discovery order) decides which instance survives.
func Normalize(candidates []model.Candidate, titleSimilarity float64, perDomainCap int) []model.Candidate {
	afterExact := dropExactDuplicates(candidates)
	afterNear := dropNearDuplicates(afterExact, titleSimilarity)
	return capPerDomain(afterNear, perDomainCap)
}

func dropExactDuplicates(candidates []model.Candidate) []model.Candidate {
	seen := make(map[string]bool)
	kept := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if seen[c.Fingerprint] {
			continue
		}
		seen[c.Fingerprint] = true
		kept = append(kept, c)
	}
	return kept
}

func dropNearDuplicates(candidates []model.Candidate, threshold float64) []model.Candidate {
	kept := make([]model.Candidate, 0, len(candidates))
	keptTokens := make([]map[string]bool, 0, len(candidates))

	for _, c := range candidates {
		tokens := titleTokens(c.Title)
		duplicate := false
		for _, existing := range keptTokens {
			if jaccard(tokens, existing) >= threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		kept = append(kept, c)
		keptTokens = append(keptTokens, tokens)
	}
	return kept
}

func capPerDomain(candidates []model.Candidate, limit int) []model.Candidate {
	if limit <= 0 {
		return candidates
	}
	counts := make(map[string]int)
	kept := make([]model.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if counts[c.Domain] >= limit {
			continue
		}
		counts[c.Domain]++
		kept = append(kept, c)
	}
	return kept
}

func titleTokens(title string) map[string]bool {
	tokens := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		w = strings.Trim(w, ",.;:!?\"'()")
		if w != "" {
			tokens[w] = true
		}
	}
	return tokens
}

// jaccard computes token-set similarity; two empty sets count as identical
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for t := range a {
		if b[t] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
