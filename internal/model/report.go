package model

// SourceStats accumulates per-channel counts used for conversion rates.
type SourceStats struct {
	Total     int `json:"total"`
	Customers int `json:"customers"`
}

// ConversionRate returns the share of this channel's calls that were
// classified as customer leads.
func (s SourceStats) ConversionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Customers) / float64(s.Total)
}

// BatchStats accumulates aggregate statistics over one classification
// run. Merging is commutative, so independent workers can keep local
// stats and combine them at the end.
type BatchStats struct {
	ByCategory          map[Category]int        `json:"by_category"`
	ByDirection         map[CallDirection]int   `json:"by_direction"`
	ByConfidence        map[ConfidenceLevel]int `json:"by_confidence"`
	IncompleteReasons   map[string]int          `json:"incomplete_reasons"`
	BySource            map[string]SourceStats  `json:"by_source"`
	confidenceSums      map[Category]float64
	RunID               string `json:"run_id"`
	Total               int    `json:"total"`
	WithTranscript      int    `json:"with_transcript"`
	MissedCustomerLeads int    `json:"missed_customer_leads"`
}

// NewBatchStats returns an empty, initialized stats accumulator.
func NewBatchStats(runID string) *BatchStats {
	return &BatchStats{
		RunID:             runID,
		ByCategory:        make(map[Category]int),
		ByDirection:       make(map[CallDirection]int),
		ByConfidence:      make(map[ConfidenceLevel]int),
		IncompleteReasons: make(map[string]int),
		BySource:          make(map[string]SourceStats),
		confidenceSums:    make(map[Category]float64),
	}
}

// Add folds one classified call into the statistics.
func (s *BatchStats) Add(call Call, result ClassificationResult) {
	s.Total++
	s.ByCategory[result.Category]++
	s.ByDirection[call.Direction]++
	s.ByConfidence[result.Level()]++
	s.confidenceSums[result.Category] += result.Confidence

	if result.Category == CategoryIncomplete {
		s.IncompleteReasons[result.SubCategory]++
	}

	source := call.Source
	if source == "" {
		source = "direct"
	}
	src := s.BySource[source]
	src.Total++
	if result.Category == CategoryCustomer {
		src.Customers++
	}
	s.BySource[source] = src

	if result.Category == CategoryCustomer && !call.Answered {
		s.MissedCustomerLeads++
	}
}

// Merge combines another accumulator into this one.
func (s *BatchStats) Merge(other *BatchStats) {
	if other == nil {
		return
	}
	s.Total += other.Total
	s.WithTranscript += other.WithTranscript
	s.MissedCustomerLeads += other.MissedCustomerLeads
	for k, v := range other.ByCategory {
		s.ByCategory[k] += v
	}
	for k, v := range other.ByDirection {
		s.ByDirection[k] += v
	}
	for k, v := range other.ByConfidence {
		s.ByConfidence[k] += v
	}
	for k, v := range other.IncompleteReasons {
		s.IncompleteReasons[k] += v
	}
	for k, v := range other.BySource {
		src := s.BySource[k]
		src.Total += v.Total
		src.Customers += v.Customers
		s.BySource[k] = src
	}
	for k, v := range other.confidenceSums {
		s.confidenceSums[k] += v
	}
}

// AvgConfidence returns the mean confidence for a category, or zero when
// no calls landed there.
func (s *BatchStats) AvgConfidence(category Category) float64 {
	count := s.ByCategory[category]
	if count == 0 {
		return 0
	}
	return s.confidenceSums[category] / float64(count)
}

// SpamRate returns spam calls as a share of inbound calls.
func (s *BatchStats) SpamRate() float64 {
	inbound := s.ByDirection[DirectionInbound]
	if inbound == 0 {
		return 0
	}
	return float64(s.ByCategory[CategorySpam]) / float64(inbound)
}
