package model

// ConfidenceLevel buckets a confidence score for reporting.
type ConfidenceLevel string

// Confidence level constants.
const (
	ConfidenceHigh   ConfidenceLevel = "high"   // >= 0.85
	ConfidenceMedium ConfidenceLevel = "medium" // >= 0.70
	ConfidenceLow    ConfidenceLevel = "low"
)

// LevelForConfidence buckets a [0,1] confidence score.
func LevelForConfidence(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= 0.85:
		return ConfidenceHigh
	case confidence >= 0.70:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Entities holds the optional caller details pulled out of a transcript.
// Absent entities are empty strings.
type Entities struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Amount  string `json:"amount,omitempty"`
}

// ClassificationResult is the outcome of classifying one call. It is
// created exactly once per call and never mutated afterwards; the batch
// runner only reads and aggregates it.
type ClassificationResult struct {
	CallID      string   `json:"call_id"`
	Category    Category `json:"category"`
	SubCategory string   `json:"sub_category"`
	Confidence  float64  `json:"confidence"`
	Reasoning   []string `json:"reasoning"`
	KeyTopics   []string `json:"key_topics"`
	Entities    Entities `json:"extracted"`
	Summary     string   `json:"summary"`
}

// Level returns the confidence bucket for this result.
func (r *ClassificationResult) Level() ConfidenceLevel {
	return LevelForConfidence(r.Confidence)
}
