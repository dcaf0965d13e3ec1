package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryIsValid(t *testing.T) {
	for _, category := range Categories {
		assert.True(t, category.IsValid(), string(category))
	}
	assert.False(t, Category("marketing").IsValid())
	assert.False(t, Category("").IsValid())
}

func TestRuleTierWeights(t *testing.T) {
	assert.InDelta(t, 0.90, TierHigh.BaseConfidence(), 0.001)
	assert.InDelta(t, 0.75, TierMedium.BaseConfidence(), 0.001)
	assert.InDelta(t, 0.62, TierLow.BaseConfidence(), 0.001)
	assert.InDelta(t, 0.50, RuleTier("bogus").BaseConfidence(), 0.001)

	assert.Greater(t, TierHigh.Rank(), TierMedium.Rank())
	assert.Greater(t, TierMedium.Rank(), TierLow.Rank())
}

func TestPatternRuleWeight(t *testing.T) {
	tierDefault := PatternRule{Tier: TierMedium}
	assert.InDelta(t, 0.75, tierDefault.Weight(), 0.001)

	explicit := PatternRule{Tier: TierMedium, Confidence: 0.82}
	assert.InDelta(t, 0.82, explicit.Weight(), 0.001)
}

func TestLevelForConfidence(t *testing.T) {
	assert.Equal(t, ConfidenceHigh, LevelForConfidence(0.85))
	assert.Equal(t, ConfidenceMedium, LevelForConfidence(0.70))
	assert.Equal(t, ConfidenceLow, LevelForConfidence(0.69))
}

func TestTranscriptHelpers(t *testing.T) {
	var nilTranscript *Transcript
	assert.Zero(t, nilTranscript.SpeakerCount())
	assert.Zero(t, nilTranscript.WordCount())

	transcript := &Transcript{
		Text: "hi I need a quote for my driveway",
		Utterances: []Utterance{
			{Speaker: "agent", Text: "hello"},
			{Speaker: "caller", Text: "hi"},
			{Speaker: "agent", Text: "how can I help"},
		},
	}
	assert.Equal(t, 2, transcript.SpeakerCount())
	assert.Equal(t, 8, transcript.WordCount())
}
