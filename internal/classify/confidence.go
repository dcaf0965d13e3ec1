// Package classify implements the deterministic classification core:
// confidence aggregation, the taxonomy cascade, and the per-call
// orchestrator. Classification is a pure function of the call, its
// transcript, and the rule set.
package classify

import "github.com/rhinobuilders/callsift/internal/model"

// scoring holds the per-category corroboration increment and ceiling.
// The ceiling stays below 1.0 so a score always reads as "likely, not
// certain".
type scoring struct {
	increment float64
	ceiling   float64
}

var scoringByCategory = map[model.Category]scoring{
	model.CategorySpam:         {increment: 0.05, ceiling: 0.95},
	model.CategoryOperations:   {increment: 0.08, ceiling: 0.92},
	model.CategoryOtherInquiry: {increment: 0.10, ceiling: 0.90},
	model.CategoryCustomer:     {increment: 0.08, ceiling: 0.95},
}

// Confidence combines every rule that matched for one candidate
// category into a single bounded score: the strongest rule's weight
// plus a small bonus per corroborating match, capped at the category
// ceiling. The base dominates, so a flood of weak matches can never
// overwhelm one strong signal.
func Confidence(category model.Category, matches []model.PatternRule) float64 {
	if len(matches) == 0 {
		return 0
	}

	s, ok := scoringByCategory[category]
	if !ok {
		s = scoring{increment: 0.05, ceiling: 0.95}
	}

	base := 0.0
	for i := range matches {
		if w := matches[i].Weight(); w > base {
			base = w
		}
	}

	confidence := base + s.increment*float64(len(matches)-1)
	if confidence > s.ceiling {
		confidence = s.ceiling
	}
	return confidence
}

// strongest returns the matched rule with the highest weight, breaking
// ties by catalogue order. Its sub-category is the one reported for the
// winning stage.
func strongest(matches []model.PatternRule) model.PatternRule {
	best := matches[0]
	for _, rule := range matches[1:] {
		if rule.Weight() > best.Weight() {
			best = rule
		}
	}
	return best
}

// hasTier reports whether any match carries the given tier.
func hasTier(matches []model.PatternRule, tier model.RuleTier) bool {
	for i := range matches {
		if matches[i].Tier == tier {
			return true
		}
	}
	return false
}
