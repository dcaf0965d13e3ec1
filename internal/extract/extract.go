// Package extract pulls caller entities out of raw transcript text.
// All functions are pure: they never fail, and absent matches simply
// yield empty results.
package extract

import (
	"regexp"
	"strings"

	"github.com/rhinobuilders/callsift/internal/model"
)

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:my name is|name's)\s+([A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)this is\s+([A-Z][a-z]+)\s+(?:calling|from|with|here)`),
	regexp.MustCompile(`(?i)\bi'?m\s+([A-Z][a-z]+)\s+(?:calling|from|with)`),
	regexp.MustCompile(`\b([A-Z][a-z]+)\s+here\b`),
}

// nameStopWords are greeting tokens the self-identification patterns
// tend to capture by mistake.
var nameStopWords = map[string]struct{}{
	"this": {}, "hello": {}, "good": {}, "yes": {}, "yeah": {},
	"hi": {}, "hey": {}, "okay": {}, "just": {}, "sorry": {},
	"morning": {}, "afternoon": {}, "calling": {}, "speaking": {},
}

var addressPattern = regexp.MustCompile(
	`(?i)\b(\d+)\s+((?:[A-Z][a-z]+\s+)*[A-Z][a-z]+)\s+` +
		`(street|st|road|rd|avenue|ave|drive|dr|way|court|ct|circle|cir|lane|ln|boulevard|blvd|place|pl)\b`)

var amountPattern = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)

// Name returns the caller's self-identified first name, or "" when no
// identification phrase matches.
func Name(text string) string {
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := m[1]
		if _, stop := nameStopWords[strings.ToLower(candidate)]; stop {
			continue
		}
		return candidate
	}
	return ""
}

// Address returns the first street address mentioned in the text: a
// house number, a capitalized word run, and a recognized street suffix.
func Address(text string) string {
	return addressPattern.FindString(text)
}

// Amount returns the first dollar amount mentioned in the text,
// including the currency symbol.
func Amount(text string) string {
	return amountPattern.FindString(text)
}

// Entities extracts all supported entities from the text in one pass.
func Entities(text string) model.Entities {
	return model.Entities{
		Name:    Name(text),
		Address: Address(text),
		Amount:  Amount(text),
	}
}
