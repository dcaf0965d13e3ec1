package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhinobuilders/callsift/internal/model"
)

func rule(id int, tier model.RuleTier, confidence float64) model.PatternRule {
	return model.PatternRule{ID: id, Name: "rule", Category: model.CategorySpam, Tier: tier, Confidence: confidence, IsActive: true}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		category model.Category
		matches  []model.PatternRule
		want     float64
	}{
		{
			name:     "no matches",
			category: model.CategorySpam,
			matches:  nil,
			want:     0,
		},
		{
			name:     "single high tier match",
			category: model.CategorySpam,
			matches:  []model.PatternRule{rule(1, model.TierHigh, 0)},
			want:     0.90,
		},
		{
			name:     "single medium tier match",
			category: model.CategoryOperations,
			matches:  []model.PatternRule{rule(1, model.TierMedium, 0)},
			want:     0.75,
		},
		{
			name:     "single low tier match",
			category: model.CategoryCustomer,
			matches:  []model.PatternRule{rule(1, model.TierLow, 0)},
			want:     0.62,
		},
		{
			name:     "explicit confidence overrides tier default",
			category: model.CategorySpam,
			matches:  []model.PatternRule{rule(1, model.TierLow, 0.80)},
			want:     0.80,
		},
		{
			name:     "corroboration adds the category increment",
			category: model.CategoryOperations,
			matches:  []model.PatternRule{rule(1, model.TierMedium, 0), rule(2, model.TierLow, 0)},
			want:     0.83,
		},
		{
			name:     "strongest match sets the base",
			category: model.CategoryOtherInquiry,
			matches:  []model.PatternRule{rule(1, model.TierLow, 0), rule(2, model.TierMedium, 0)},
			want:     0.85,
		},
		{
			name:     "capped at the category ceiling",
			category: model.CategorySpam,
			matches: []model.PatternRule{
				rule(1, model.TierHigh, 0),
				rule(2, model.TierHigh, 0),
				rule(3, model.TierHigh, 0),
				rule(4, model.TierHigh, 0),
			},
			want: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Confidence(tt.category, tt.matches), 1e-9)
		})
	}
}

func TestConfidence_MoreMatchesNeverLower(t *testing.T) {
	matches := []model.PatternRule{rule(1, model.TierLow, 0)}
	prev := Confidence(model.CategoryCustomer, matches)
	for i := 2; i <= 10; i++ {
		matches = append(matches, rule(i, model.TierLow, 0))
		got := Confidence(model.CategoryCustomer, matches)
		assert.GreaterOrEqual(t, got, prev, "confidence dropped at %d matches", i)
		assert.LessOrEqual(t, got, 0.95)
		prev = got
	}
}

func TestStrongest(t *testing.T) {
	a := rule(1, model.TierMedium, 0)
	b := rule(2, model.TierHigh, 0)
	c := rule(3, model.TierHigh, 0)

	assert.Equal(t, 2, strongest([]model.PatternRule{a, b, c}).ID, "highest weight wins")
	assert.Equal(t, 2, strongest([]model.PatternRule{b, c}).ID, "ties break to catalogue order")
	assert.Equal(t, 1, strongest([]model.PatternRule{a}).ID)
}

func TestHasTier(t *testing.T) {
	matches := []model.PatternRule{rule(1, model.TierLow, 0), rule(2, model.TierMedium, 0)}
	assert.True(t, hasTier(matches, model.TierMedium))
	assert.False(t, hasTier(matches, model.TierHigh))
	assert.False(t, hasTier(nil, model.TierLow))
}
