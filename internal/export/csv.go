// Package export writes classification reports to local files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rhinobuilders/callsift/internal/model"
)

var csvHeader = []string{
	"id",
	"direction",
	"duration",
	"category",
	"sub_category",
	"confidence",
	"summary",
	"name",
	"address",
	"amount",
	"key_topics",
	"reasoning",
}

// CSVWriter implements the ReportWriter interface for CSV output.
type CSVWriter struct {
	out io.Writer
}

// NewCSVWriter creates a CSV report writer targeting out.
func NewCSVWriter(out io.Writer) *CSVWriter {
	return &CSVWriter{out: out}
}

// Write emits one row per classified call. Stats are not part of the
// CSV format; they only gate empty exports.
func (w *CSVWriter) Write(ctx context.Context, calls []model.Call, results []model.ClassificationResult, _ *model.BatchStats) error {
	callsByID := make(map[string]model.Call, len(calls))
	for _, call := range calls {
		callsByID[call.ID] = call
	}

	cw := csv.NewWriter(w.out)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, result := range results {
		if err := ctx.Err(); err != nil {
			return err
		}

		call := callsByID[result.CallID]
		row := []string{
			result.CallID,
			string(call.Direction),
			strconv.Itoa(call.Duration),
			string(result.Category),
			result.SubCategory,
			strconv.FormatFloat(result.Confidence, 'f', 2, 64),
			result.Summary,
			result.Entities.Name,
			result.Entities.Address,
			result.Entities.Amount,
			strings.Join(result.KeyTopics, "; "),
			strings.Join(result.Reasoning, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", result.CallID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
