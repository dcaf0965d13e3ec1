package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rhinobuilders/callsift/internal/model"
)

// Matcher evaluates transcripts against a fixed rule set. It is
// read-only after construction and safe for concurrent use.
type Matcher struct {
	compiled map[int]*regexp.Regexp
	rules    []model.PatternRule
}

// NewMatcher builds a matcher over the given rules, pre-compiling every
// regex criterion. Rules with an invalid pattern are rejected so a bad
// catalogue entry fails loudly at load time instead of silently never
// matching.
func NewMatcher(ruleSet []model.PatternRule) (*Matcher, error) {
	m := &Matcher{
		rules:    ruleSet,
		compiled: make(map[int]*regexp.Regexp),
	}

	for _, rule := range ruleSet {
		if !rule.IsRegex {
			continue
		}
		re, err := regexp.Compile(`(?i)` + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): invalid pattern: %w", rule.ID, rule.Name, err)
		}
		m.compiled[rule.ID] = re
	}

	return m, nil
}

// Rules returns the matcher's rule set in catalogue order.
func (m *Matcher) Rules() []model.PatternRule {
	return m.rules
}

// Match returns every active rule the text satisfies, in catalogue
// order. Rules are independent: no match depends on another rule.
func (m *Matcher) Match(text string) []model.PatternRule {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var matches []model.PatternRule
	for _, rule := range m.rules {
		if !rule.IsActive {
			continue
		}
		if m.matchesRule(lower, rule) {
			matches = append(matches, rule)
		}
	}
	return matches
}

// MatchByCategory groups matching rules by their target category.
func (m *Matcher) MatchByCategory(text string) map[model.Category][]model.PatternRule {
	grouped := make(map[model.Category][]model.PatternRule)
	for _, rule := range m.Match(text) {
		grouped[rule.Category] = append(grouped[rule.Category], rule)
	}
	return grouped
}

func (m *Matcher) matchesRule(lower string, rule model.PatternRule) bool {
	if rule.IsRegex {
		re, ok := m.compiled[rule.ID]
		return ok && re.MatchString(lower)
	}

	if len(rule.Keywords) == 0 {
		return false
	}
	for _, kw := range rule.Keywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
