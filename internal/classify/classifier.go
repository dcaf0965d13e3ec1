package classify

import (
	"github.com/rhinobuilders/callsift/internal/extract"
	"github.com/rhinobuilders/callsift/internal/model"
	"github.com/rhinobuilders/callsift/internal/rules"
)

// Classifier resolves calls to categories using a fixed rule cascade.
// It is stateless after construction and safe for concurrent use.
type Classifier struct {
	matcher *rules.Matcher
}

// NewClassifier builds a classifier over the given rule set.
func NewClassifier(ruleSet []model.PatternRule) (*Classifier, error) {
	matcher, err := rules.NewMatcher(ruleSet)
	if err != nil {
		return nil, err
	}
	return &Classifier{matcher: matcher}, nil
}

// Classify produces a classification for a call. It is total: every
// call receives a category, and the same inputs always produce the
// same result.
func (c *Classifier) Classify(call model.Call, transcript *model.Transcript) model.ClassificationResult {
	d := c.resolve(call, transcript)

	text := ""
	if transcript != nil {
		text = transcript.Text
	}

	var entities model.Entities
	if d.category != model.CategoryIncomplete {
		entities = extract.Entities(text)
	}

	return model.ClassificationResult{
		CallID:      call.ID,
		Category:    d.category,
		SubCategory: d.subCategory,
		Confidence:  d.confidence,
		Reasoning:   d.reasoning,
		KeyTopics:   KeyTopics(text),
		Entities:    entities,
		Summary:     summarize(call, d.category, d.subCategory, entities),
	}
}
