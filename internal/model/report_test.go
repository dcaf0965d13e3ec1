package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func statsCall(id string, direction CallDirection, answered bool, source string) Call {
	return Call{
		ID:        id,
		StartTime: time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC),
		Direction: direction,
		Duration:  60,
		Answered:  answered,
		Source:    source,
	}
}

func TestBatchStats_Add(t *testing.T) {
	stats := NewBatchStats("run-1")

	stats.Add(statsCall("a", DirectionInbound, true, "google_ads"),
		ClassificationResult{CallID: "a", Category: CategoryCustomer, Confidence: 0.90})
	stats.Add(statsCall("b", DirectionInbound, false, "google_ads"),
		ClassificationResult{CallID: "b", Category: CategoryCustomer, Confidence: 0.70})
	stats.Add(statsCall("c", DirectionInbound, true, ""),
		ClassificationResult{CallID: "c", Category: CategorySpam, Confidence: 0.95})
	stats.Add(statsCall("d", DirectionOutbound, true, "direct"),
		ClassificationResult{CallID: "d", Category: CategoryIncomplete, SubCategory: IncompleteTooShort, Confidence: 0.85})

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.ByCategory[CategoryCustomer])
	assert.Equal(t, 3, stats.ByDirection[DirectionInbound])
	assert.Equal(t, 1, stats.MissedCustomerLeads)
	assert.Equal(t, 1, stats.IncompleteReasons[IncompleteTooShort])

	// Empty source buckets under "direct"
	assert.Equal(t, 2, stats.BySource["direct"].Total)
	assert.Equal(t, 2, stats.BySource["google_ads"].Total)
	assert.Equal(t, 2, stats.BySource["google_ads"].Customers)
	assert.InDelta(t, 1.0, stats.BySource["google_ads"].ConversionRate(), 0.001)

	// Spam rate is over inbound calls only
	assert.InDelta(t, 1.0/3.0, stats.SpamRate(), 0.001)
	assert.InDelta(t, 0.80, stats.AvgConfidence(CategoryCustomer), 0.001)
	assert.Zero(t, stats.AvgConfidence(CategoryOperations))
}

func TestBatchStats_Merge(t *testing.T) {
	a := NewBatchStats("run-1")
	a.Add(statsCall("a", DirectionInbound, true, "google_ads"),
		ClassificationResult{CallID: "a", Category: CategoryCustomer, Confidence: 0.90})

	b := NewBatchStats("run-1")
	b.Add(statsCall("b", DirectionInbound, false, "google_ads"),
		ClassificationResult{CallID: "b", Category: CategoryCustomer, Confidence: 0.70})
	b.Add(statsCall("c", DirectionInbound, true, "direct"),
		ClassificationResult{CallID: "c", Category: CategorySpam, Confidence: 0.95})

	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, 3, a.Total)
	assert.Equal(t, 2, a.ByCategory[CategoryCustomer])
	assert.Equal(t, 1, a.MissedCustomerLeads)
	assert.Equal(t, 2, a.BySource["google_ads"].Total)
	assert.InDelta(t, 0.80, a.AvgConfidence(CategoryCustomer), 0.001)
}
