package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
)

// TranscriptRecord mirrors one row of the transcription service's
// JSON export, delivered separately from the call metadata.
type TranscriptRecord struct {
	CallID     string            `json:"call_id"`
	Text       string            `json:"text"`
	Utterances []model.Utterance `json:"utterances,omitempty"`
	Confidence float64           `json:"confidence"`
}

// ReadTranscripts reads a standalone transcript export file.
func ReadTranscripts(path string) ([]model.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript export: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodeTranscripts(f)
}

// DecodeTranscripts decodes a JSON array of transcript records.
func DecodeTranscripts(r io.Reader) ([]model.Transcript, error) {
	var records []TranscriptRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidExport, err)
	}

	transcripts := make([]model.Transcript, 0, len(records))
	for i, rec := range records {
		if rec.CallID == "" {
			return nil, fmt.Errorf("record %d: %w", i, common.ErrMissingCallID)
		}
		transcripts = append(transcripts, model.Transcript{
			CallID:     rec.CallID,
			Text:       rec.Text,
			Utterances: rec.Utterances,
			Confidence: rec.Confidence,
		})
	}

	return transcripts, nil
}
