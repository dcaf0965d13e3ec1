package classify

import "regexp"

// maxKeyTopics bounds the reported topic list.
const maxKeyTopics = 3

var keyTopics = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)concrete|slab|foundation|driveway|patio|sidewalk`), "Concrete Work"},
	{regexp.MustCompile(`(?i)remodel|renovation|kitchen|bathroom`), "Remodeling"},
	{regexp.MustCompile(`(?i)\badu\b|addition|garage conversion|accessory`), "ADU/Addition"},
	{regexp.MustCompile(`(?i)drainage|waterproof|moisture|leak|basement`), "Drainage"},
	{regexp.MustCompile(`(?i)siding|window|roofing|exterior`), "Exterior"},
	{regexp.MustCompile(`(?i)estimate|quote|\bbid\b|pricing`), "Estimate Request"},
	{regexp.MustCompile(`(?i)schedule|appointment|visit|come out`), "Appointment"},
	{regexp.MustCompile(`(?i)permit|inspection|license`), "Permit"},
}

// KeyTopics returns up to three topics mentioned in the transcript, in
// the fixed table order so output stays deterministic.
func KeyTopics(text string) []string {
	if len(text) < 50 {
		return nil
	}

	var topics []string
	for _, topic := range keyTopics {
		if topic.re.MatchString(text) {
			topics = append(topics, topic.label)
			if len(topics) == maxKeyTopics {
				break
			}
		}
	}
	return topics
}
