package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinobuilders/callsift/internal/model"
)

func fixtureData() ([]model.Call, []model.ClassificationResult, *model.BatchStats) {
	calls := []model.Call{
		{
			ID:            "CAL-1",
			StartTime:     time.Date(2025, 10, 6, 9, 0, 0, 0, time.UTC),
			Direction:     model.DirectionInbound,
			Duration:      120,
			Answered:      true,
			CustomerPhone: "+15105551234",
			Source:        "google_ads",
		},
		{
			ID:        "CAL-2",
			StartTime: time.Date(2025, 10, 6, 10, 0, 0, 0, time.UTC),
			Direction: model.DirectionInbound,
			Duration:  25,
			Answered:  true,
		},
	}
	results := []model.ClassificationResult{
		{
			CallID:      "CAL-1",
			Category:    model.CategoryCustomer,
			SubCategory: "concrete_inquiry",
			Confidence:  0.90,
			Reasoning:   []string{"Matched concrete pattern: concrete work"},
			KeyTopics:   []string{"Concrete", "Estimate Request"},
			Entities:    model.Entities{Name: "Maria", Address: "12 Oak Street", Amount: "$500"},
			Summary:     "Maria - Concrete work inquiry",
		},
		{
			CallID:      "CAL-2",
			Category:    model.CategorySpam,
			SubCategory: "robocall",
			Confidence:  0.95,
			Summary:     "Robocall spam",
		},
	}
	stats := model.NewBatchStats("run-1")
	for i := range results {
		stats.Add(calls[i], results[i])
	}
	return calls, results, stats
}

func TestCSVWriter(t *testing.T) {
	calls, results, stats := fixtureData()

	var buf bytes.Buffer
	err := NewCSVWriter(&buf).Write(context.Background(), calls, results, stats)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	first := records[1]
	assert.Equal(t, "CAL-1", first[0])
	assert.Equal(t, "inbound", first[1])
	assert.Equal(t, "120", first[2])
	assert.Equal(t, "customer", first[3])
	assert.Equal(t, "concrete_inquiry", first[4])
	assert.Equal(t, "0.90", first[5])
	assert.Equal(t, "Maria", first[7])
	assert.Equal(t, "12 Oak Street", first[8])
	assert.Equal(t, "$500", first[9])
	assert.Equal(t, "Concrete; Estimate Request", first[10])

	second := records[2]
	assert.Equal(t, "CAL-2", second[0])
	assert.Equal(t, "spam", second[3])
	assert.Empty(t, second[7])
}

func TestCSVWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := NewCSVWriter(&buf).Write(context.Background(), nil, nil, model.NewBatchStats(""))
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1) // header only
}

func TestCSVWriter_CanceledContext(t *testing.T) {
	calls, results, stats := fixtureData()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewCSVWriter(&buf).Write(ctx, calls, results, stats)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJSONWriter(t *testing.T) {
	calls, results, stats := fixtureData()

	var buf bytes.Buffer
	err := NewJSONWriter(&buf).Write(context.Background(), calls, results, stats)
	require.NoError(t, err)

	var report struct {
		Stats struct {
			RunID string `json:"run_id"`
			Total int    `json:"total"`
		} `json:"stats"`
		Results []struct {
			Call struct {
				ID        string `json:"id"`
				Direction string `json:"direction"`
			} `json:"call"`
			Result struct {
				Category   string  `json:"category"`
				Confidence float64 `json:"confidence"`
			} `json:"result"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, "run-1", report.Stats.RunID)
	assert.Equal(t, 2, report.Stats.Total)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "CAL-1", report.Results[0].Call.ID)
	assert.Equal(t, "inbound", report.Results[0].Call.Direction)
	assert.Equal(t, "customer", report.Results[0].Result.Category)
	assert.InDelta(t, 0.90, report.Results[0].Result.Confidence, 0.001)
}
