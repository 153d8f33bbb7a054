package model

// Tier classifies the importance of a claim within its source text
type Tier string

const (
	TierPrimary   Tier = "primary"   // Central assertions (lead sentences, entity-dense)
	TierSecondary Tier = "secondary" // Supporting assertions
	TierTertiary  Tier = "tertiary"  // Peripheral detail
)

// NumberType classifies a numeric value found in a claim or candidate
type NumberType string

const (
	NumberPercent NumberType = "percent"
	NumberYear    NumberType = "year"
	NumberGeneric NumberType = "number"
)

// Number is a numeric assertion extracted from text
type Number struct {
	Value float64    `json:"value"`
	Type  NumberType `json:"type"`
}

// Cues captures linguistic signals detected in a claim sentence
type Cues struct {
	Negation    bool   `json:"negation,omitempty"`    // "not", "never", ...
	Comparison  bool   `json:"comparison,omitempty"`  // "more", "less", "than", ...
	Attribution string `json:"attribution,omitempty"` // Attributed source after "according to"/"said"
}

// Scope captures contextual hints that narrow a claim
type Scope struct {
	YearHint string `json:"year_hint,omitempty"`
	GeoHint  string `json:"geo_hint,omitempty"`
}

// Claim represents a single factual assertion extracted from input text.
// Immutable after extraction; ID is a stable 0-based sequence per input.
type Claim struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Tier     Tier     `json:"tier"`
	Entities []string `json:"entities,omitempty"`
	Numbers  []Number `json:"numbers,omitempty"`
	Cues     Cues     `json:"cues"`
	Scope    Scope    `json:"scope"`
}

// HasNumberType reports whether the claim asserts a number of the given type
func (c Claim) HasNumberType(t NumberType) bool {
	for _, n := range c.Numbers {
		if n.Type == t {
			return true
		}
	}
	return false
}
