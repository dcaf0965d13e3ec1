// Package storage provides the data persistence layer for callsift.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rhinobuilders/callsift/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrEmptySlice     = errors.New("slice cannot be empty")
	ErrInvalidCall    = errors.New("invalid call")
	ErrInvalidResult  = errors.New("invalid classification result")
	ErrInvalidPattern = errors.New("invalid pattern rule")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCalls validates a slice of calls.
func validateCalls(calls []model.Call) error {
	if calls == nil {
		return fmt.Errorf("%w: calls", ErrNilParameter)
	}
	if len(calls) == 0 {
		return fmt.Errorf("%w: calls", ErrEmptySlice)
	}

	for i := range calls {
		if err := validateCall(&calls[i]); err != nil {
			return fmt.Errorf("call at index %d: %w", i, err)
		}
	}
	return nil
}

// validateCall validates a single call.
func validateCall(call *model.Call) error {
	if call == nil {
		return fmt.Errorf("%w: call", ErrNilParameter)
	}
	if call.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidCall)
	}
	if call.StartTime.IsZero() {
		return fmt.Errorf("%w: missing start time", ErrInvalidCall)
	}
	if call.Direction != model.DirectionInbound && call.Direction != model.DirectionOutbound {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidCall, call.Direction)
	}
	if call.Duration < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidCall)
	}
	return nil
}

// validateResult validates a classification result.
func validateResult(result *model.ClassificationResult) error {
	if result == nil {
		return fmt.Errorf("%w: result", ErrNilParameter)
	}
	if result.CallID == "" {
		return fmt.Errorf("%w: missing call ID", ErrInvalidResult)
	}
	if !result.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidResult, result.Category)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidResult)
	}
	return nil
}

// validatePatternRule validates a pattern rule.
func validatePatternRule(rule *model.PatternRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	if err := validateString(rule.Name, "name"); err != nil {
		return err
	}
	if !rule.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidPattern, rule.Category)
	}
	if len(rule.Keywords) == 0 && rule.Pattern == "" {
		return fmt.Errorf("%w: needs keywords or a pattern", ErrInvalidPattern)
	}
	if rule.Confidence < 0 || rule.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidPattern)
	}
	switch rule.Tier {
	case model.TierHigh, model.TierMedium, model.TierLow:
	default:
		return fmt.Errorf("%w: unknown tier %q", ErrInvalidPattern, rule.Tier)
	}
	return nil
}
