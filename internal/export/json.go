package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rhinobuilders/callsift/internal/model"
)

// jsonReport is the top-level document the JSON writer emits.
type jsonReport struct {
	Stats   *model.BatchStats `json:"stats,omitempty"`
	Results []jsonResult      `json:"results"`
}

// jsonCall mirrors the ingest record field names so exports round-trip
// cleanly with the telephony platform's format.
type jsonCall struct {
	ID            string    `json:"id"`
	StartTime     time.Time `json:"start_time"`
	Direction     string    `json:"direction"`
	Duration      int       `json:"duration"`
	Answered      bool      `json:"answered"`
	Voicemail     bool      `json:"voicemail"`
	CustomerPhone string    `json:"customer_phone_number,omitempty"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerCity  string    `json:"customer_city,omitempty"`
	CustomerState string    `json:"customer_state,omitempty"`
	Source        string    `json:"source,omitempty"`
}

// jsonResult pairs a classification with the call it belongs to.
type jsonResult struct {
	Call   jsonCall                   `json:"call"`
	Result model.ClassificationResult `json:"result"`
}

func toJSONCall(call model.Call) jsonCall {
	return jsonCall{
		ID:            call.ID,
		StartTime:     call.StartTime,
		Direction:     string(call.Direction),
		Duration:      call.Duration,
		Answered:      call.Answered,
		Voicemail:     call.Voicemail,
		CustomerPhone: call.CustomerPhone,
		CustomerName:  call.CustomerName,
		CustomerCity:  call.CustomerCity,
		CustomerState: call.CustomerState,
		Source:        call.Source,
	}
}

// JSONWriter implements the ReportWriter interface for JSON output.
type JSONWriter struct {
	out io.Writer
}

// NewJSONWriter creates a JSON report writer targeting out.
func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out}
}

// Write emits the full report as a single JSON document.
func (w *JSONWriter) Write(ctx context.Context, calls []model.Call, results []model.ClassificationResult, stats *model.BatchStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	callsByID := make(map[string]model.Call, len(calls))
	for _, call := range calls {
		callsByID[call.ID] = call
	}

	report := jsonReport{
		Stats:   stats,
		Results: make([]jsonResult, 0, len(results)),
	}
	for _, result := range results {
		report.Results = append(report.Results, jsonResult{
			Call:   toJSONCall(callsByID[result.CallID]),
			Result: result,
		})
	}

	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}

	return nil
}
