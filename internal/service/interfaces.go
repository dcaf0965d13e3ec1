// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/rhinobuilders/callsift/internal/model"
)

// CallFilter defines filtering options for call queries.
type CallFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Source    string
	Direction model.CallDirection
	Limit     int
	Offset    int
}

// ResultFilter defines filtering options for classification queries.
type ResultFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Category      model.Category
	SubCategory   string
	RunID         string
	MaxConfidence float64
	Limit         int
	Offset        int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Call operations
	SaveCalls(ctx context.Context, calls []model.Call) (int, error)
	GetCall(ctx context.Context, id string) (*model.Call, error)
	GetCalls(ctx context.Context, filter CallFilter) ([]model.Call, error)
	GetCallsToClassify(ctx context.Context, runID string) ([]model.Call, error)

	// Transcript operations
	SaveTranscripts(ctx context.Context, transcripts []model.Transcript) (int, error)
	GetTranscript(ctx context.Context, callID string) (*model.Transcript, error)

	// Classification operations
	SaveResult(ctx context.Context, result *model.ClassificationResult, runID string) error
	GetResult(ctx context.Context, callID string) (*model.ClassificationResult, error)
	GetResults(ctx context.Context, filter ResultFilter) ([]model.ClassificationResult, error)
	GetBatchStats(ctx context.Context, runID string) (*model.BatchStats, error)
	ClearResults(ctx context.Context, runID string) error

	// Pattern rule operations
	SavePatternRule(ctx context.Context, rule *model.PatternRule) error
	GetPatternRule(ctx context.Context, id int) (*model.PatternRule, error)
	GetActivePatternRules(ctx context.Context) ([]model.PatternRule, error)
	GetAllPatternRules(ctx context.Context) ([]model.PatternRule, error)
	SetPatternRuleActive(ctx context.Context, id int, active bool) error
	DeletePatternRule(ctx context.Context, id int) error
	SeedPatternRules(ctx context.Context, rules []model.PatternRule) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Classifier resolves a single call and its transcript to a category.
// Implementations must be deterministic and safe for concurrent use.
type Classifier interface {
	Classify(call model.Call, transcript *model.Transcript) model.ClassificationResult
}

// ReportWriter exports a batch of classification results somewhere a
// human reads them.
type ReportWriter interface {
	Write(ctx context.Context, calls []model.Call, results []model.ClassificationResult, stats *model.BatchStats) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// DefaultRetryOptions returns sensible defaults for transient failures.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}
