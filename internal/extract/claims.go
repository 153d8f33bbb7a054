// Package extract turns free-form input text into discrete, interpreted
// claims: one per sentence, with tier, entities, numbers, linguistic cues
// and scope hints attached.
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/veracity/internal/model"
)

var (
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	yearPattern    = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	numberPattern  = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)

	attributionPattern = regexp.MustCompile(`(?i)according to ([^,.;]+)`)
	saidPattern        = regexp.MustCompile(`([A-Z][\w .]+?) (?:said|says|stated|reported)`)
	geoPattern         = regexp.MustCompile(`\bin (?:the )?([A-Z][A-Za-z]+(?: [A-Z][A-Za-z]+)*)`)
)

// Extractor splits input text into interpreted claims
type Extractor struct {
	negationWords   []string
	comparisonWords []string
	stopwords       map[string]bool
	causalVerbs     []string
}

// NewExtractor creates a claim extractor with the default cue lexicon
func NewExtractor() *Extractor {
	return &Extractor{
		negationWords:   []string{"not", "never", "no longer", "n't", "neither", "nor"},
		comparisonWords: []string{"more", "less", "than", "fewer", "greater", "higher", "lower"},
		causalVerbs:     []string{"cause", "causes", "caused"},
		stopwords: map[string]bool{
			"the": true, "a": true, "an": true, "this": true, "that": true,
			"these": true, "those": true, "it": true, "its": true, "they": true,
			"in": true, "on": true, "at": true, "of": true, "for": true,
			"and": true, "or": true, "but": true, "with": true, "by": true,
			"according": true, "to": true, "as": true, "is": true, "are": true,
			"was": true, "were": true, "he": true, "she": true, "we": true,
		},
	}
}

// Extract splits text into claims. It never fails: when no sentence
// survives splitting, the whole trimmed input becomes a single primary
// claim so downstream stages always have something to check.
func (e *Extractor) Extract(text string) []model.Claim {
	sentences := splitSentences(text)

	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			trimmed = text
		}
		return []model.Claim{e.interpret(0, trimmed, model.TierPrimary)}
	}

	tiers := assignTiers(sentences)

	claims := make([]model.Claim, 0, len(sentences))
	for i, sentence := range sentences {
		claims = append(claims, e.interpret(i, sentence, tiers[i]))
	}
	return claims
}

// ExtractSingle interprets the whole input as one primary claim,
// regardless of how many sentences it contains
func (e *Extractor) ExtractSingle(text string) model.Claim {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		trimmed = text
	}
	return e.interpret(0, trimmed, model.TierPrimary)
}

// interpret builds a single claim from one sentence
func (e *Extractor) interpret(id int, sentence string, tier model.Tier) model.Claim {
	return model.Claim{
		ID:       id,
		Text:     sentence,
		Tier:     tier,
		Entities: e.extractEntities(sentence),
		Numbers:  extractNumbers(sentence),
		Cues:     e.extractCues(sentence),
		Scope:    extractScope(sentence),
	}
}

// splitSentences breaks text on terminators, skipping abbreviation-like
// splits by requiring whitespace after the terminator
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= 3 {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	for i, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				flush()
			}
		}
	}
	flush()

	return sentences
}

// assignTiers ranks sentences by salience (position, length, entity
// density) and labels the top tercile primary, the middle secondary and
// the rest tertiary. With three or more sentences every tier appears at
// least once; with fewer, tiers are assigned from primary downward.
func assignTiers(sentences []string) []model.Tier {
	n := len(sentences)
	type ranked struct {
		index    int
		salience float64
	}

	scored := make([]ranked, n)
	for i, s := range sentences {
		position := 1.0 - float64(i)/float64(n)
		length := float64(len(s)) / 200.0
		if length > 1.0 {
			length = 1.0
		}
		words := strings.Fields(s)
		capitalized := 0
		for _, w := range words {
			if len(w) > 0 && w[0] >= 'A' && w[0] <= 'Z' {
				capitalized++
			}
		}
		density := 0.0
		if len(words) > 0 {
			density = float64(capitalized) / float64(len(words))
		}
		scored[i] = ranked{index: i, salience: 0.5*position + 0.3*length + 0.2*density}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].salience != scored[b].salience {
			return scored[a].salience > scored[b].salience
		}
		return scored[a].index < scored[b].index
	})

	primaryCut := (n + 2) / 3
	secondaryCut := primaryCut + (n+1)/3

	tiers := make([]model.Tier, n)
	for rank, r := range scored {
		switch {
		case rank < primaryCut:
			tiers[r.index] = model.TierPrimary
		case rank < secondaryCut:
			tiers[r.index] = model.TierSecondary
		default:
			tiers[r.index] = model.TierTertiary
		}
	}
	return tiers
}

// extractEntities finds capitalized token groups plus the object of causal
// verbs, which captures lowercase subjects of cause/effect assertions
func (e *Extractor) extractEntities(sentence string) []string {
	var entities []string
	seen := make(map[string]bool)

	add := func(entity string) {
		entity = strings.Trim(entity, " ,.;:!?\"'")
		// Drop leading stopwords so sentence-initial articles don't stick
		// to the group ("The Eiffel Tower" -> "Eiffel Tower")
		parts := strings.Fields(entity)
		for len(parts) > 0 && e.stopwords[strings.ToLower(parts[0])] {
			parts = parts[1:]
		}
		entity = strings.Join(parts, " ")
		if entity == "" {
			return
		}
		key := strings.ToLower(entity)
		if e.stopwords[key] || seen[key] {
			return
		}
		seen[key] = true
		entities = append(entities, entity)
	}

	words := strings.Fields(sentence)

	// Capitalized token groups ("Eiffel Tower", "US GDP")
	var group []string
	for _, w := range words {
		trimmed := strings.Trim(w, ",.;:!?\"'()")
		if len(trimmed) > 0 && trimmed[0] >= 'A' && trimmed[0] <= 'Z' {
			group = append(group, trimmed)
			continue
		}
		if len(group) > 0 {
			add(strings.Join(group, " "))
			group = nil
		}
	}
	if len(group) > 0 {
		add(strings.Join(group, " "))
	}

	// Objects of causal verbs ("... cause autism")
	for i, w := range words {
		lower := strings.ToLower(strings.Trim(w, ",.;:!?\"'"))
		for _, verb := range e.causalVerbs {
			if lower == verb && i+1 < len(words) {
				add(words[i+1])
			}
		}
	}

	return entities
}

// Numbers extracts classified numeric values from arbitrary text. The
// comparator uses it on candidate titles and snippets.
func Numbers(text string) []model.Number {
	return extractNumbers(text)
}

// extractNumbers classifies numeric tokens as percent, year, or generic.
// Percent and year spans are claimed first so a generic pass cannot
// double-count them.
func extractNumbers(sentence string) []model.Number {
	var numbers []model.Number
	claimed := make([][2]int, 0, 4)

	overlaps := func(start, end int) bool {
		for _, span := range claimed {
			if start < span[1] && end > span[0] {
				return true
			}
		}
		return false
	}

	for _, m := range percentPattern.FindAllStringSubmatchIndex(sentence, -1) {
		if v, err := strconv.ParseFloat(sentence[m[2]:m[3]], 64); err == nil {
			numbers = append(numbers, model.Number{Value: v, Type: model.NumberPercent})
			claimed = append(claimed, [2]int{m[0], m[1]})
		}
	}

	for _, m := range yearPattern.FindAllStringSubmatchIndex(sentence, -1) {
		if overlaps(m[0], m[1]) {
			continue
		}
		if v, err := strconv.ParseFloat(sentence[m[2]:m[3]], 64); err == nil {
			numbers = append(numbers, model.Number{Value: v, Type: model.NumberYear})
			claimed = append(claimed, [2]int{m[0], m[1]})
		}
	}

	for _, m := range numberPattern.FindAllStringIndex(sentence, -1) {
		if overlaps(m[0], m[1]) {
			continue
		}
		if v, err := strconv.ParseFloat(sentence[m[0]:m[1]], 64); err == nil {
			numbers = append(numbers, model.Number{Value: v, Type: model.NumberGeneric})
		}
	}

	return numbers
}

// extractCues detects negation, comparison and attribution signals
func (e *Extractor) extractCues(sentence string) model.Cues {
	lower := strings.ToLower(sentence)
	cues := model.Cues{}

	for _, w := range e.negationWords {
		// Contractions ("don't") cannot be matched on word boundaries
		if strings.Contains(w, "'") && strings.Contains(lower, w) {
			cues.Negation = true
			break
		}
		if containsWord(lower, w) {
			cues.Negation = true
			break
		}
	}

	for _, w := range e.comparisonWords {
		if containsWord(lower, w) {
			cues.Comparison = true
			break
		}
	}

	if m := attributionPattern.FindStringSubmatch(sentence); m != nil {
		cues.Attribution = strings.TrimSpace(m[1])
	} else if m := saidPattern.FindStringSubmatch(sentence); m != nil {
		cues.Attribution = strings.TrimSpace(m[1])
	}

	return cues
}

// extractScope derives year and geography hints
func extractScope(sentence string) model.Scope {
	scope := model.Scope{}

	if m := yearPattern.FindStringSubmatch(sentence); m != nil {
		scope.YearHint = m[1]
	}
	if m := geoPattern.FindStringSubmatch(sentence); m != nil {
		scope.GeoHint = strings.TrimSpace(m[1])
	}

	return scope
}

// containsWord matches a whole word or phrase inside lowered text
func containsWord(lower, word string) bool {
	idx := 0
	for {
		pos := strings.Index(lower[idx:], word)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(lower[start-1])
		afterOK := end == len(lower) || !isLetter(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
