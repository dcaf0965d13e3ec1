package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rhinobuilders/callsift/internal/model"
)

// Cascade thresholds. The cascade order itself is the tie-break
// mechanism and must not be re-ordered ad hoc.
const (
	// minTranscriptChars is the floor below which a transcript carries
	// no classifiable content.
	minTranscriptChars = 15
	// minTranscriptWords is the word-count floor for the same gate.
	minTranscriptWords = 5
	// hangupSeconds separates instant hang-ups from calls that failed
	// to transcribe for other reasons.
	hangupSeconds = 15
	// shortCallSeconds is the duration floor for the statistical
	// fallback.
	shortCallSeconds = 20
	// longCallSeconds is the duration ceiling above which an otherwise
	// unmatched inbound call defaults to customer.
	longCallSeconds = 180
)

var (
	rejectionPattern = regexp.MustCompile(`(?i)not interested|no thank|don'?t call|stop calling|remove (me|us) from`)
	servicePattern   = regexp.MustCompile(`(?i)project|quote|estimate|work|address|property|house|home`)
)

// briefWords are filler tokens; a short transcript made entirely of
// these is a greeting exchange with no classifiable substance.
var briefWords = map[string]struct{}{
	"hello": {}, "good": {}, "morning": {}, "afternoon": {}, "hi": {},
	"hey": {}, "okay": {}, "bye": {}, "yes": {}, "no": {}, "alright": {},
	"all": {}, "right": {}, "thanks": {}, "thank": {}, "you": {},
	"too": {}, "take": {}, "care": {}, "nice": {}, "day": {},
	"later": {}, "have": {}, "a": {}, "great": {}, "weekend": {},
	"hold": {}, "on": {}, "please": {}, "sorry": {}, "one": {},
	"moment": {}, "just": {},
}

// decision is the outcome of one cascade stage.
type decision struct {
	category    model.Category
	subCategory string
	confidence  float64
	reasoning   []string
}

// resolve runs the fixed decision cascade and stops at the first
// decisive stage.
func (c *Classifier) resolve(call model.Call, transcript *model.Transcript) decision {
	text := ""
	if transcript != nil {
		text = strings.TrimSpace(transcript.Text)
	}

	// Stage 1: incompleteness gate. A call with no usable content
	// cannot be classified further, so this dominates everything.
	if d, ok := incompletenessGate(call, text); ok {
		return d
	}

	grouped := c.matcher.MatchByCategory(text)

	// Stage 2: non-lead categories, most specific signals first.
	if d, ok := jobSeekerStage(grouped); ok {
		return d
	}
	if d, ok := spamStage(grouped); ok {
		return d
	}
	if d, ok := operationsStage(grouped); ok {
		return d
	}
	if d, ok := otherInquiryStage(grouped); ok {
		return d
	}

	// Stage 3: customer lead. Competing other-inquiry signals were
	// already consumed by the earlier stage.
	if d, ok := customerStage(grouped); ok {
		return d
	}

	// Stage 4: heuristic and statistical fallbacks.
	return fallback(call, transcript, text)
}

func incompletenessGate(call model.Call, text string) (decision, bool) {
	if len(text) < minTranscriptChars {
		switch {
		case call.Duration < hangupSeconds:
			return decision{
				category:    model.CategoryIncomplete,
				subCategory: model.IncompleteTooShort,
				confidence:  0.85,
				reasoning:   []string{fmt.Sprintf("Transcript too short to classify (%ds call)", call.Duration)},
			}, true
		case !call.Answered && !call.Voicemail:
			return decision{
				category:    model.CategoryIncomplete,
				subCategory: model.IncompleteMissedCall,
				confidence:  0.95,
				reasoning:   []string{"Missed call with no voicemail"},
			}, true
		case !call.HasRecording:
			return decision{
				category:    model.CategoryIncomplete,
				subCategory: model.IncompleteNoRecording,
				confidence:  0.95,
				reasoning:   []string{"No recording available"},
			}, true
		default:
			return decision{
				category:    model.CategoryIncomplete,
				subCategory: model.IncompleteTranscriptionFailed,
				confidence:  0.90,
				reasoning:   []string{"Recording present but no usable transcript"},
			}, true
		}
	}

	words := strings.Fields(normalizeWords(text))
	if len(words) < minTranscriptWords {
		return decision{
			category:    model.CategoryIncomplete,
			subCategory: model.IncompleteTooShort,
			confidence:  0.85,
			reasoning:   []string{fmt.Sprintf("Very short transcript: %d words", len(words))},
		}, true
	}

	if isGreetingsOnly(words) {
		return decision{
			category:    model.CategoryIncomplete,
			subCategory: model.IncompleteBriefExchange,
			confidence:  0.85,
			reasoning:   []string{"Brief exchange - greetings only"},
		}, true
	}

	return decision{}, false
}

func jobSeekerStage(grouped map[model.Category][]model.PatternRule) (decision, bool) {
	for _, rule := range grouped[model.CategoryOtherInquiry] {
		if rule.SubCategory != "job_seeker" {
			continue
		}
		return decision{
			category:    model.CategoryOtherInquiry,
			subCategory: "job_seeker",
			confidence:  Confidence(model.CategoryOtherInquiry, []model.PatternRule{rule}),
			reasoning:   []string{"Job seeker inquiry - not a customer lead"},
		}, true
	}
	return decision{}, false
}

func spamStage(grouped map[model.Category][]model.PatternRule) (decision, bool) {
	matches := grouped[model.CategorySpam]
	if len(matches) == 0 {
		return decision{}, false
	}

	// A single weak spam match is insufficient when a customer-topic
	// indicator is also present; that avoids spam labels on calls that
	// merely mention a spam-adjacent word in passing.
	decisive := hasTier(matches, model.TierHigh) ||
		len(matches) >= 2 ||
		len(grouped[model.CategoryCustomer]) == 0
	if !decisive {
		return decision{}, false
	}

	return stageDecision(model.CategorySpam, matches, "spam"), true
}

func operationsStage(grouped map[model.Category][]model.PatternRule) (decision, bool) {
	matches := grouped[model.CategoryOperations]
	if len(matches) == 0 {
		return decision{}, false
	}

	decisive := hasTier(matches, model.TierHigh) || len(matches) >= 2
	if !decisive {
		return decision{}, false
	}

	return stageDecision(model.CategoryOperations, matches, "operations"), true
}

func otherInquiryStage(grouped map[model.Category][]model.PatternRule) (decision, bool) {
	matches := grouped[model.CategoryOtherInquiry]
	if len(matches) == 0 {
		return decision{}, false
	}
	return stageDecision(model.CategoryOtherInquiry, matches, "other inquiry"), true
}

func customerStage(grouped map[model.Category][]model.PatternRule) (decision, bool) {
	matches := grouped[model.CategoryCustomer]
	if len(matches) == 0 {
		return decision{}, false
	}
	return stageDecision(model.CategoryCustomer, matches, "customer"), true
}

// stageDecision builds the decision for a decisive rule-backed stage:
// confidence from the aggregator, sub-category from the strongest rule.
func stageDecision(category model.Category, matches []model.PatternRule, label string) decision {
	best := strongest(matches)

	reasoning := make([]string, 0, 2)
	if len(matches) == 1 {
		reasoning = append(reasoning, fmt.Sprintf("Matched %s pattern: %s", label, best.Name))
	} else {
		reasoning = append(reasoning, fmt.Sprintf("Matched %d %s patterns", len(matches), label))
		reasoning = append(reasoning, "Strongest signal: "+best.Name)
	}

	return decision{
		category:    category,
		subCategory: best.SubCategory,
		confidence:  Confidence(category, matches),
		reasoning:   reasoning,
	}
}

func fallback(call model.Call, transcript *model.Transcript, text string) decision {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "wrong number") {
		return decision{
			category:    model.CategoryIncomplete,
			subCategory: model.IncompleteWrongNumber,
			confidence:  0.85,
			reasoning:   []string{"Caller had the wrong number"},
		}
	}

	if rejectionPattern.MatchString(text) {
		return decision{
			category:    model.CategorySpam,
			subCategory: "cold_call",
			confidence:  0.70,
			reasoning:   []string{"Rejection language detected - likely unwanted call"},
		}
	}

	if call.Direction == model.DirectionOutbound {
		return decision{
			category:    model.CategoryOperations,
			subCategory: "outbound_followup",
			confidence:  0.60,
			reasoning:   []string{"Outbound call - likely operations follow-up"},
		}
	}

	if call.Voicemail && transcript.WordCount() > 10 {
		return decision{
			category:    model.CategoryCustomer,
			subCategory: "voicemail_inquiry",
			confidence:  0.55,
			reasoning:   []string{"Inbound voicemail with content - likely customer"},
		}
	}

	if transcript.SpeakerCount() >= 2 && call.Duration > 60 && servicePattern.MatchString(text) {
		return decision{
			category:    model.CategoryCustomer,
			subCategory: "general_inquiry",
			confidence:  0.55,
			reasoning:   []string{"Inbound conversation with service discussion"},
		}
	}

	if call.Duration < shortCallSeconds {
		return decision{
			category:    model.CategoryIncomplete,
			subCategory: model.IncompleteTooShort,
			confidence:  0.50,
			reasoning:   []string{"Short call below duration floor"},
		}
	}

	if call.Duration > longCallSeconds {
		return decision{
			category:    model.CategoryCustomer,
			subCategory: "general_inquiry",
			confidence:  0.60,
			reasoning:   []string{fmt.Sprintf("Extended %dm call - length suggests a substantive conversation", call.Duration/60)},
		}
	}

	return decision{
		category:    model.CategoryIncomplete,
		subCategory: model.IncompleteUnclear,
		confidence:  0.50,
		reasoning:   []string{"Unable to classify with confidence - flagged for manual review"},
	}
}

func normalizeWords(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '!', '?':
			return ' '
		}
		return r
	}, text)
}

func isGreetingsOnly(words []string) bool {
	if len(words) >= 20 {
		return false
	}
	for _, w := range words {
		if _, ok := briefWords[strings.ToLower(w)]; !ok {
			return false
		}
	}
	return true
}
