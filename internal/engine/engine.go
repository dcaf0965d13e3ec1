// Package engine implements the batch runner that classifies stored
// calls and aggregates run statistics.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
	"github.com/rhinobuilders/callsift/internal/service"
)

// ClassificationEngine orchestrates the classification of calls.
type ClassificationEngine struct {
	storage    service.Storage
	classifier service.Classifier
	workers    int
	progress   bool
}

// Config holds configuration options for the classification engine.
type Config struct {
	Workers      int
	ShowProgress bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:      runtime.NumCPU(),
		ShowProgress: true,
	}
}

// New creates a new classification engine with the given dependencies.
func New(storage service.Storage, classifier service.Classifier) *ClassificationEngine {
	return NewWithConfig(storage, classifier, DefaultConfig())
}

// NewWithConfig creates a new classification engine with custom configuration.
func NewWithConfig(storage service.Storage, classifier service.Classifier, config Config) *ClassificationEngine {
	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	return &ClassificationEngine{
		storage:    storage,
		classifier: classifier,
		workers:    workers,
		progress:   config.ShowProgress,
	}
}

// ClassifyCalls classifies every pending call and returns the run
// statistics. An empty runID starts a fresh run with a generated ID.
func (e *ClassificationEngine) ClassifyCalls(ctx context.Context, runID string) (*model.BatchStats, error) {
	if runID == "" {
		runID = uuid.NewString()
	}

	slog.Info("Starting classification run", "run_id", runID, "workers", e.workers)

	calls, err := e.storage.GetCallsToClassify(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get calls to classify: %w", err)
	}

	if len(calls) == 0 {
		slog.Info("No calls to classify", "run_id", runID)
		return model.NewBatchStats(runID), nil
	}

	slog.Info("Found calls to classify", "count", len(calls))

	var bar *progressbar.ProgressBar
	if e.progress {
		bar = progressbar.Default(int64(len(calls)), "classifying")
	}

	stats := model.NewBatchStats(runID)
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range calls {
		call := calls[i]
		g.Go(func() error {
			result, err := e.classifyOne(gctx, call, runID)
			if err != nil {
				return err
			}

			mu.Lock()
			stats.Add(call, *result)
			mu.Unlock()

			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Classification run complete",
		"run_id", runID,
		"total", stats.Total,
		"customers", stats.ByCategory[model.CategoryCustomer],
		"spam", stats.ByCategory[model.CategorySpam])

	return stats, nil
}

// ClassifyCall re-classifies a single call and persists the result.
func (e *ClassificationEngine) ClassifyCall(ctx context.Context, callID, runID string) (*model.ClassificationResult, error) {
	if runID == "" {
		runID = uuid.NewString()
	}

	call, err := e.storage.GetCall(ctx, callID)
	if err != nil {
		return nil, fmt.Errorf("failed to get call: %w", err)
	}

	return e.classifyOne(ctx, *call, runID)
}

func (e *ClassificationEngine) classifyOne(ctx context.Context, call model.Call, runID string) (*model.ClassificationResult, error) {
	transcript, err := e.storage.GetTranscript(ctx, call.ID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to get transcript for %s: %w", call.ID, err)
	}

	result := e.classifier.Classify(call, transcript)

	saveErr := common.WithRetry(ctx, func() error {
		return e.storage.SaveResult(ctx, &result, runID)
	}, service.DefaultRetryOptions())
	if saveErr != nil {
		common.LogError(saveErr, "Failed to save classification", common.Fields{
			"call_id": call.ID,
			"run_id":  runID,
		})
		return nil, fmt.Errorf("failed to save classification for %s: %w", call.ID, saveErr)
	}

	slog.Debug("Classified call",
		"call_id", call.ID,
		"category", result.Category,
		"sub_category", result.SubCategory,
		"confidence", result.Confidence)

	return &result, nil
}
