package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
	"github.com/rhinobuilders/callsift/internal/service"
)

const callColumns = `id, start_time, direction, duration, answered, voicemail, has_recording,
	customer_phone, customer_name, customer_city, customer_state, source`

// SaveCalls inserts calls, skipping any that already exist. It returns
// the number of new rows.
func (s *SQLiteStorage) SaveCalls(ctx context.Context, calls []model.Call) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateCalls(calls); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT OR IGNORE INTO calls (` + callColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	inserted := 0
	for i := range calls {
		c := &calls[i]
		result, execErr := tx.ExecContext(ctx, query,
			c.ID, c.StartTime, c.Direction, c.Duration, c.Answered, c.Voicemail, c.HasRecording,
			c.CustomerPhone, c.CustomerName, c.CustomerCity, c.CustomerState, c.Source,
		)
		if execErr != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to save call %s: %w", c.ID, execErr)
		}
		rows, raErr := result.RowsAffected()
		if raErr != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit calls: %w", err)
	}

	return inserted, nil
}

// GetCall retrieves a call by ID.
func (s *SQLiteStorage) GetCall(ctx context.Context, id string) (*model.Call, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+callColumns+` FROM calls WHERE id = ?`, id)

	call, err := scanCall(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("call %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get call: %w", err)
	}
	return call, nil
}

// GetCalls retrieves calls matching the filter, newest first.
func (s *SQLiteStorage) GetCalls(ctx context.Context, filter service.CallFilter) ([]model.Call, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "start_time >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "start_time <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}
	if filter.Direction != "" {
		conditions = append(conditions, "direction = ?")
		args = append(args, filter.Direction)
	}

	query := `SELECT ` + callColumns + ` FROM calls`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY start_time DESC"
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
		return nil, fmt.Errorf("failed to get calls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectCalls(rows)
}

// GetCallsToClassify retrieves calls that have no stored classification.
// With a non-empty runID only that run's classifications count, so a
// fresh run re-classifies everything.
func (s *SQLiteStorage) GetCallsToClassify(ctx context.Context, runID string) ([]model.Call, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + callColumns + ` FROM calls
		WHERE NOT EXISTS (
			SELECT 1 FROM classifications c WHERE c.call_id = calls.id
		)
		ORDER BY start_time ASC
	`
	var args []any
	if runID != "" {
		query = `
			SELECT ` + callColumns + ` FROM calls
			WHERE NOT EXISTS (
				SELECT 1 FROM classifications c WHERE c.call_id = calls.id AND c.run_id = ?
			)
			ORDER BY start_time ASC
		`
		args = append(args, runID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get calls to classify: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectCalls(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCall(row rowScanner) (*model.Call, error) {
	var call model.Call
	var phone, name, city, state, source sql.NullString
	err := row.Scan(
		&call.ID, &call.StartTime, &call.Direction, &call.Duration,
		&call.Answered, &call.Voicemail, &call.HasRecording,
		&phone, &name, &city, &state, &source,
	)
	if err != nil {
		return nil, err
	}
	call.CustomerPhone = phone.String
	call.CustomerName = name.String
	call.CustomerCity = city.String
	call.CustomerState = state.String
	call.Source = source.String
	return &call, nil
}

func collectCalls(rows *sql.Rows) ([]model.Call, error) {
	var calls []model.Call
	for rows.Next() {
		call, err := scanCall(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan call: %w", err)
		}
		calls = append(calls, *call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calls: %w", err)
	}
	return calls, nil
}
