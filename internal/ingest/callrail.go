// Package ingest reads the JSON export files produced by the telephony
// platform and the transcription service.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
)

// CallRecord mirrors one row of the telephony platform's JSON export.
// Missing fields decode to zero values; only the ID is mandatory.
type CallRecord struct {
	ID                   string            `json:"id"`
	Direction            string            `json:"direction"`
	StartTime            string            `json:"start_time"`
	CustomerPhone        string            `json:"customer_phone"`
	CustomerName         string            `json:"customer_name"`
	CustomerCity         string            `json:"customer_city"`
	CustomerState        string            `json:"customer_state"`
	Source               string            `json:"source"`
	TranscriptText       string            `json:"transcript_text"`
	Utterances           []model.Utterance `json:"utterances,omitempty"`
	TranscriptConfidence float64           `json:"transcript_confidence"`
	Duration             int               `json:"duration"`
	Answered             bool              `json:"answered"`
	Voicemail            bool              `json:"voicemail"`
	HasRecording         *bool             `json:"has_recording,omitempty"`
}

// timeLayouts are the start_time formats seen in platform exports.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ReadExport reads a call export file and returns the calls plus a
// transcript for every record that carries text or utterances.
func ReadExport(path string) ([]model.Call, []model.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeExport(f)
}

// DecodeExport decodes a JSON array of call records.
func DecodeExport(r io.Reader) ([]model.Call, []model.Transcript, error) {
	var records []CallRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", common.ErrInvalidExport, err)
	}

	calls := make([]model.Call, 0, len(records))
	var transcripts []model.Transcript

	for i, rec := range records {
		if rec.ID == "" {
			return nil, nil, fmt.Errorf("record %d: %w", i, common.ErrMissingCallID)
		}

		call, err := rec.toCall()
		if err != nil {
			return nil, nil, fmt.Errorf("record %d (%s): %w", i, rec.ID, err)
		}
		calls = append(calls, call)

		if rec.TranscriptText != "" || len(rec.Utterances) > 0 {
			transcripts = append(transcripts, model.Transcript{
				CallID:     rec.ID,
				Text:       rec.TranscriptText,
				Utterances: rec.Utterances,
				Confidence: rec.TranscriptConfidence,
			})
		}
	}

	return calls, transcripts, nil
}

func (rec *CallRecord) toCall() (model.Call, error) {
	direction := model.CallDirection(rec.Direction)
	switch direction {
	case model.DirectionInbound, model.DirectionOutbound:
	case "":
		direction = model.DirectionInbound
	default:
		return model.Call{}, fmt.Errorf("%w: unknown direction %q", common.ErrInvalidExport, rec.Direction)
	}

	var start time.Time
	if rec.StartTime != "" {
		var err error
		start, err = parseTime(rec.StartTime)
		if err != nil {
			return model.Call{}, err
		}
	}

	duration := rec.Duration
	if duration < 0 {
		duration = 0
	}

	// Exports predating the recording flag omit it; an answered call
	// or a voicemail implies a recording exists.
	hasRecording := rec.Answered || rec.Voicemail
	if rec.HasRecording != nil {
		hasRecording = *rec.HasRecording
	}

	return model.Call{
		ID:            rec.ID,
		StartTime:     start,
		Direction:     direction,
		Duration:      duration,
		Answered:      rec.Answered,
		Voicemail:     rec.Voicemail,
		HasRecording:  hasRecording,
		CustomerPhone: rec.CustomerPhone,
		CustomerName:  rec.CustomerName,
		CustomerCity:  rec.CustomerCity,
		CustomerState: rec.CustomerState,
		Source:        rec.Source,
	}, nil
}

func parseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable start_time %q", common.ErrInvalidExport, value)
}
