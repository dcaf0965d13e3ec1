package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
)

const patternRuleColumns = `id, name, category, sub_category, keywords, pattern,
	is_regex, tier, confidence, is_active, created_at, updated_at`

// SavePatternRule creates or updates a pattern rule. A rule with ID 0
// is inserted and gets its assigned ID written back.
func (s *SQLiteStorage) SavePatternRule(ctx context.Context, rule *model.PatternRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePatternRule(rule); err != nil {
		return err
	}

	keywords, err := marshalKeywords(rule.Keywords)
	if err != nil {
		return err
	}

	if rule.ID == 0 {
		query := `
			INSERT INTO pattern_rules (name, category, sub_category, keywords, pattern, is_regex, tier, confidence, is_active)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		result, execErr := s.db.ExecContext(ctx, query,
			rule.Name, rule.Category, rule.SubCategory, keywords, rule.Pattern,
			rule.IsRegex, rule.Tier, rule.Confidence, rule.IsActive,
		)
		if execErr != nil {
			return fmt.Errorf("failed to create pattern rule: %w", execErr)
		}
		id, idErr := result.LastInsertId()
		if idErr != nil {
			return fmt.Errorf("failed to get pattern rule ID: %w", idErr)
		}
		rule.ID = int(id)
		rule.CreatedAt = time.Now()
		rule.UpdatedAt = time.Now()
		return nil
	}

	query := `
		INSERT INTO pattern_rules (id, name, category, sub_category, keywords, pattern, is_regex, tier, confidence, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			sub_category = excluded.sub_category,
			keywords = excluded.keywords,
			pattern = excluded.pattern,
			is_regex = excluded.is_regex,
			tier = excluded.tier,
			confidence = excluded.confidence,
			is_active = excluded.is_active
	`
	if _, err := s.db.ExecContext(ctx, query,
		rule.ID, rule.Name, rule.Category, rule.SubCategory, keywords, rule.Pattern,
		rule.IsRegex, rule.Tier, rule.Confidence, rule.IsActive,
	); err != nil {
		return fmt.Errorf("failed to save pattern rule %d: %w", rule.ID, err)
	}
	return nil
}

// GetPatternRule retrieves a pattern rule by ID.
func (s *SQLiteStorage) GetPatternRule(ctx context.Context, id int) (*model.PatternRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+patternRuleColumns+` FROM pattern_rules WHERE id = ?`, id)

	rule, err := scanPatternRule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pattern rule %d: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pattern rule: %w", err)
	}
	return rule, nil
}

// GetActivePatternRules retrieves all active pattern rules in catalogue
// order. This is the set the classifier evaluates.
func (s *SQLiteStorage) GetActivePatternRules(ctx context.Context) ([]model.PatternRule, error) {
	return s.getPatternRules(ctx, `WHERE is_active = 1`)
}

// GetAllPatternRules retrieves every pattern rule, active or not.
func (s *SQLiteStorage) GetAllPatternRules(ctx context.Context) ([]model.PatternRule, error) {
	return s.getPatternRules(ctx, ``)
}

func (s *SQLiteStorage) getPatternRules(ctx context.Context, where string) ([]model.PatternRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + patternRuleColumns + ` FROM pattern_rules ` + where + ` ORDER BY id ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.PatternRule
	for rows.Next() {
		rule, scanErr := scanPatternRule(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan pattern rule: %w", scanErr)
		}
		rules = append(rules, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pattern rules: %w", err)
	}

	return rules, nil
}

// SetPatternRuleActive toggles a rule without deleting it, so disabled
// rules keep their ID and history.
func (s *SQLiteStorage) SetPatternRuleActive(ctx context.Context, id int, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE pattern_rules SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update pattern rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pattern rule %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// DeletePatternRule deletes a pattern rule.
func (s *SQLiteStorage) DeletePatternRule(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM pattern_rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete pattern rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("pattern rule %d: %w", id, common.ErrNotFound)
	}
	return nil
}

// SeedPatternRules inserts catalogue rules that are not already
// present, preserving local edits to existing rows. It returns the
// number of rules added.
func (s *SQLiteStorage) SeedPatternRules(ctx context.Context, rules []model.PatternRule) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if len(rules) == 0 {
		return 0, fmt.Errorf("%w: rules", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT OR IGNORE INTO pattern_rules (id, name, category, sub_category, keywords, pattern, is_regex, tier, confidence, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	inserted := 0
	for i := range rules {
		rule := &rules[i]
		if err := validatePatternRule(rule); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("rule at index %d: %w", i, err)
		}
		keywords, kwErr := marshalKeywords(rule.Keywords)
		if kwErr != nil {
			_ = tx.Rollback()
			return 0, kwErr
		}
		result, execErr := tx.ExecContext(ctx, query,
			rule.ID, rule.Name, rule.Category, rule.SubCategory, keywords, rule.Pattern,
			rule.IsRegex, rule.Tier, rule.Confidence, rule.IsActive,
		)
		if execErr != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to seed pattern rule %d: %w", rule.ID, execErr)
		}
		rows, raErr := result.RowsAffected()
		if raErr != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		inserted += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit pattern rules: %w", err)
	}

	return inserted, nil
}

func marshalKeywords(keywords []string) (string, error) {
	if len(keywords) == 0 {
		return "", nil
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return "", fmt.Errorf("failed to marshal keywords: %w", err)
	}
	return string(data), nil
}

func scanPatternRule(row rowScanner) (*model.PatternRule, error) {
	var rule model.PatternRule
	var subCategory, keywords, pattern sql.NullString

	err := row.Scan(
		&rule.ID, &rule.Name, &rule.Category, &subCategory, &keywords, &pattern,
		&rule.IsRegex, &rule.Tier, &rule.Confidence, &rule.IsActive,
		&rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.SubCategory = subCategory.String
	rule.Pattern = pattern.String
	if keywords.Valid && keywords.String != "" {
		if err := json.Unmarshal([]byte(keywords.String), &rule.Keywords); err != nil {
			return nil, fmt.Errorf("failed to unmarshal keywords: %w", err)
		}
	}

	return &rule, nil
}
