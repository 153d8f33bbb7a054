// Package classify assigns a structural source type to evidence URLs.
// Classification looks only at URL shape: TLD suffixes, path patterns and
// generic host tokens. It never consults a list of site names, so no
// specific outlet can be favored or punished by name.
package classify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

var (
	doiPathPattern    = regexp.MustCompile(`/(?:doi|pubmed|pmc)(?:/|$)|/10\.\d{4,}/`)
	socialPathPattern = regexp.MustCompile(`/(?:status|posts|r|threads|@[\w.-]+)(?:/|$)`)
)

// Classifier maps URLs to structural source types
type Classifier struct{}

// NewClassifier creates a source-type classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the structural source type for a URL. Unparseable URLs
// fall back to the generic web type.
func (c *Classifier) Classify(rawURL string) model.SourceType {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.SourceWeb
	}

	host := strings.ToLower(parsed.Hostname())
	path := strings.ToLower(parsed.Path)

	switch {
	case isAcademic(host, path):
		return model.SourcePeerReview
	case isGovernment(host):
		return model.SourceGovernment
	case isSocial(host, path):
		return model.SourceSocial
	case isBlog(host, path):
		return model.SourceBlog
	case isNews(host, path):
		return model.SourceNews
	default:
		return model.SourceWeb
	}
}

func isAcademic(host, path string) bool {
	if strings.HasSuffix(host, ".edu") || strings.Contains(host, ".edu.") {
		return true
	}
	// Academic TLD conventions: .ac.uk, .ac.jp, ...
	if strings.Contains(host, ".ac.") || strings.HasSuffix(host, ".ac") {
		return true
	}
	if hostToken(host, "journal") || hostToken(host, "journals") {
		return true
	}
	return doiPathPattern.MatchString(path)
}

func isGovernment(host string) bool {
	for _, suffix := range []string{".gov", ".mil", ".int"} {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	// Country-scoped government hosts: foo.gov.uk, bar.gouv.fr
	return strings.Contains(host, ".gov.") || strings.Contains(host, ".gouv.")
}

func isSocial(host, path string) bool {
	for _, token := range []string{"forum", "community", "social"} {
		if hostToken(host, token) {
			return true
		}
	}
	return socialPathPattern.MatchString(path)
}

func isBlog(host, path string) bool {
	if hostToken(host, "blog") {
		return true
	}
	return strings.Contains(path, "/blog/") || strings.HasPrefix(path, "/blog")
}

func isNews(host, path string) bool {
	for _, token := range []string{"news", "press", "times", "daily", "herald", "tribune"} {
		if hostToken(host, token) {
			return true
		}
	}
	for _, p := range []string{"/news/", "/story/", "/article/"} {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// hostToken reports whether a dot- or hyphen-delimited label of the host
// equals the token ("news.example.org", "daily-record.example")
func hostToken(host, token string) bool {
	for _, label := range strings.FieldsFunc(host, func(r rune) bool { return r == '.' || r == '-' }) {
		if label == token {
			return true
		}
	}
	return false
}

// Prior returns the fixed trust prior per source type. Keyed strictly by
// structural type, never by domain name.
func Prior(t model.SourceType) float64 {
	switch t {
	case model.SourcePeerReview:
		return 1.0
	case model.SourceGovernment:
		return 0.85
	case model.SourceNews:
		return 0.70
	case model.SourceBlog:
		return 0.40
	case model.SourceSocial:
		return 0.20
	default:
		return 0.50
	}
}
