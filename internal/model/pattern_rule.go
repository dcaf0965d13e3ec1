package model

import "time"

// RuleTier classifies the strength of a pattern rule.
type RuleTier string

// Rule tier constants. High-tier rules are near-certain signals;
// medium-tier rules need corroboration; low-tier rules are tie-breakers.
const (
	TierHigh   RuleTier = "high"
	TierMedium RuleTier = "medium"
	TierLow    RuleTier = "low"
)

// BaseConfidence returns the starting confidence contributed by a rule
// of this tier before corroboration bonuses.
func (t RuleTier) BaseConfidence() float64 {
	switch t {
	case TierHigh:
		return 0.90
	case TierMedium:
		return 0.75
	case TierLow:
		return 0.62
	}
	return 0.50
}

// Rank orders tiers for comparison (higher is stronger).
func (t RuleTier) Rank() int {
	switch t {
	case TierHigh:
		return 3
	case TierMedium:
		return 2
	case TierLow:
		return 1
	}
	return 0
}

// PatternRule is a single matching criterion tagged with a target
// category, sub-category and strength tier. Rules are static
// configuration: loaded once, never mutated during classification, and
// evaluated independently of one another.
type PatternRule struct {
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	SubCategory string    `json:"sub_category,omitempty"`
	// Keywords is a literal substring set; the rule matches when every
	// keyword appears in the transcript (case-insensitive). Ignored when
	// IsRegex is set.
	Keywords []string `json:"keywords,omitempty"`
	// Pattern is a regular expression applied case-insensitively when
	// IsRegex is set.
	Pattern string   `json:"pattern,omitempty"`
	Tier    RuleTier `json:"tier"`
	// Confidence is the rule's base weight. Zero means "use the tier
	// default" (see RuleTier.BaseConfidence).
	Confidence float64 `json:"confidence,omitempty"`
	ID         int     `json:"id"`
	IsRegex    bool    `json:"is_regex"`
	IsActive   bool    `json:"is_active"`
}

// Weight returns the rule's base confidence, falling back to the tier
// default when no explicit weight is configured.
func (r *PatternRule) Weight() float64 {
	if r.Confidence > 0 {
		return r.Confidence
	}
	return r.Tier.BaseConfidence()
}
