package model

// Category is the fixed call taxonomy. Every classification result
// carries exactly one of these values.
type Category string

// Category constants.
const (
	CategoryIncomplete   Category = "incomplete"
	CategorySpam         Category = "spam"
	CategoryOperations   Category = "operations"
	CategoryOtherInquiry Category = "other_inquiry"
	CategoryCustomer     Category = "customer"
)

// Categories lists every valid category in cascade order.
var Categories = []Category{
	CategoryIncomplete,
	CategorySpam,
	CategoryOperations,
	CategoryOtherInquiry,
	CategoryCustomer,
}

// IsValid reports whether c is a member of the fixed taxonomy.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Incomplete sub-reasons reported by the incompleteness gate.
const (
	IncompleteNoRecording         = "no_recording"
	IncompleteTranscriptionFailed = "transcription_failed"
	IncompleteTooShort            = "too_short"
	IncompleteMissedCall          = "missed_call"
	IncompleteBriefExchange       = "brief_exchange"
	IncompleteWrongNumber         = "wrong_number"
	IncompleteUnclear             = "unclear_content"
)
