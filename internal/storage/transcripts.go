package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
)

// SaveTranscripts upserts transcripts keyed by call ID and returns the
// number of rows written.
func (s *SQLiteStorage) SaveTranscripts(ctx context.Context, transcripts []model.Transcript) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if len(transcripts) == 0 {
		return 0, fmt.Errorf("%w: transcripts", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO transcripts (call_id, text, utterances, confidence)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(call_id) DO UPDATE SET
			text = excluded.text,
			utterances = excluded.utterances,
			confidence = excluded.confidence
	`

	written := 0
	for i := range transcripts {
		t := &transcripts[i]
		if t.CallID == "" {
			_ = tx.Rollback()
			return 0, fmt.Errorf("transcript at index %d: %w", i, common.ErrMissingCallID)
		}

		var utterances []byte
		if len(t.Utterances) > 0 {
			utterances, err = json.Marshal(t.Utterances)
			if err != nil {
				_ = tx.Rollback()
				return 0, fmt.Errorf("failed to marshal utterances for %s: %w", t.CallID, err)
			}
		}

		if _, err := tx.ExecContext(ctx, query, t.CallID, t.Text, utterances, t.Confidence); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to save transcript %s: %w", t.CallID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transcripts: %w", err)
	}

	return written, nil
}

// GetTranscript retrieves the transcript for a call.
func (s *SQLiteStorage) GetTranscript(ctx context.Context, callID string) (*model.Transcript, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(callID, "callID"); err != nil {
		return nil, err
	}

	var transcript model.Transcript
	var utterances sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT call_id, text, utterances, confidence FROM transcripts WHERE call_id = ?`,
		callID).Scan(&transcript.CallID, &transcript.Text, &utterances, &transcript.Confidence)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transcript for call %s: %w", callID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get transcript: %w", err)
	}

	if utterances.Valid && utterances.String != "" {
		if err := json.Unmarshal([]byte(utterances.String), &transcript.Utterances); err != nil {
			return nil, fmt.Errorf("failed to unmarshal utterances for %s: %w", callID, err)
		}
	}

	return &transcript, nil
}
