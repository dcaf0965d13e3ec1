package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
	"github.com/rhinobuilders/callsift/internal/service"
)

const resultColumns = `call_id, category, sub_category, confidence, reasoning, key_topics,
	entity_name, entity_address, entity_amount, summary`

// SaveResult upserts the classification for one call. Re-running a
// batch overwrites the previous result for the same call.
func (s *SQLiteStorage) SaveResult(ctx context.Context, result *model.ClassificationResult, runID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateResult(result); err != nil {
		return err
	}
	if err := validateString(runID, "runID"); err != nil {
		return err
	}

	reasoning, err := json.Marshal(result.Reasoning)
	if err != nil {
		return fmt.Errorf("failed to marshal reasoning: %w", err)
	}
	topics, err := json.Marshal(result.KeyTopics)
	if err != nil {
		return fmt.Errorf("failed to marshal key topics: %w", err)
	}

	query := `
		INSERT INTO classifications (
			call_id, run_id, category, sub_category, confidence,
			reasoning, key_topics, entity_name, entity_address, entity_amount, summary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(call_id) DO UPDATE SET
			run_id = excluded.run_id,
			category = excluded.category,
			sub_category = excluded.sub_category,
			confidence = excluded.confidence,
			reasoning = excluded.reasoning,
			key_topics = excluded.key_topics,
			entity_name = excluded.entity_name,
			entity_address = excluded.entity_address,
			entity_amount = excluded.entity_amount,
			summary = excluded.summary,
			classified_at = CURRENT_TIMESTAMP
	`

	_, err = s.db.ExecContext(ctx, query,
		result.CallID, runID, result.Category, result.SubCategory, result.Confidence,
		string(reasoning), string(topics),
		result.Entities.Name, result.Entities.Address, result.Entities.Amount,
		result.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to save classification for %s: %w", result.CallID, err)
	}

	return nil
}

// GetResult retrieves the stored classification for a call.
func (s *SQLiteStorage) GetResult(ctx context.Context, callID string) (*model.ClassificationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(callID, "callID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM classifications WHERE call_id = ?`, callID)

	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("classification for call %s: %w", callID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get classification: %w", err)
	}
	return result, nil
}

// GetResults retrieves classifications matching the filter, joined
// against calls for date filtering, newest call first.
func (s *SQLiteStorage) GetResults(ctx context.Context, filter service.ResultFilter) ([]model.ClassificationResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "calls.start_time >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "calls.start_time <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Category != "" {
		conditions = append(conditions, "c.category = ?")
		args = append(args, filter.Category)
	}
	if filter.SubCategory != "" {
		conditions = append(conditions, "c.sub_category = ?")
		args = append(args, filter.SubCategory)
	}
	if filter.RunID != "" {
		conditions = append(conditions, "c.run_id = ?")
		args = append(args, filter.RunID)
	}
	if filter.MaxConfidence > 0 {
		conditions = append(conditions, "c.confidence <= ?")
		args = append(args, filter.MaxConfidence)
	}

	query := `
		SELECT c.call_id, c.category, c.sub_category, c.confidence, c.reasoning, c.key_topics,
			c.entity_name, c.entity_address, c.entity_amount, c.summary
		FROM classifications c
		JOIN calls ON calls.id = c.call_id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY calls.start_time DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.ClassificationResult
	for rows.Next() {
		result, scanErr := scanResult(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan classification: %w", scanErr)
		}
		results = append(results, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classifications: %w", err)
	}

	return results, nil
}

// GetBatchStats rebuilds aggregate statistics for one run from the
// stored calls and classifications.
func (s *SQLiteStorage) GetBatchStats(ctx context.Context, runID string) (*model.BatchStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(runID, "runID"); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + callColumns + `,
			c.category, c.sub_category, c.confidence
		FROM classifications c
		JOIN calls ON calls.id = c.call_id
		WHERE c.run_id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	stats := model.NewBatchStats(runID)
	for rows.Next() {
		var call model.Call
		var phone, name, city, state, source, subCategory sql.NullString
		var result model.ClassificationResult
		err := rows.Scan(
			&call.ID, &call.StartTime, &call.Direction, &call.Duration,
			&call.Answered, &call.Voicemail, &call.HasRecording,
			&phone, &name, &city, &state, &source,
			&result.Category, &subCategory, &result.Confidence,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch stats row: %w", err)
		}
		call.Source = source.String
		result.CallID = call.ID
		result.SubCategory = subCategory.String
		stats.Add(call, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch stats: %w", err)
	}

	return stats, nil
}

// ClearResults removes stored classifications. An empty runID clears
// every run.
func (s *SQLiteStorage) ClearResults(ctx context.Context, runID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	query := "DELETE FROM classifications"
	var args []any
	if runID != "" {
		query += " WHERE run_id = ?"
		args = append(args, runID)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear classifications: %w", err)
	}
	return nil
}

func scanResult(row rowScanner) (*model.ClassificationResult, error) {
	var result model.ClassificationResult
	var subCategory, reasoning, topics sql.NullString
	var entityName, entityAddress, entityAmount, summary sql.NullString

	err := row.Scan(
		&result.CallID, &result.Category, &subCategory, &result.Confidence,
		&reasoning, &topics,
		&entityName, &entityAddress, &entityAmount, &summary,
	)
	if err != nil {
		return nil, err
	}

	result.SubCategory = subCategory.String
	result.Summary = summary.String
	result.Entities = model.Entities{
		Name:    entityName.String,
		Address: entityAddress.String,
		Amount:  entityAmount.String,
	}

	if reasoning.Valid && reasoning.String != "" {
		if err := json.Unmarshal([]byte(reasoning.String), &result.Reasoning); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reasoning: %w", err)
		}
	}
	if topics.Valid && topics.String != "" {
		if err := json.Unmarshal([]byte(topics.String), &result.KeyTopics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal key topics: %w", err)
		}
	}

	return &result, nil
}
