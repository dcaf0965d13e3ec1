package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhinobuilders/callsift/internal/classify"
	"github.com/rhinobuilders/callsift/internal/common"
	"github.com/rhinobuilders/callsift/internal/model"
	"github.com/rhinobuilders/callsift/internal/rules"
	"github.com/rhinobuilders/callsift/internal/service"
)

// mockStorage is an in-memory Storage for engine tests.
type mockStorage struct {
	mu          sync.Mutex
	calls       map[string]model.Call
	transcripts map[string]model.Transcript
	results     map[string]model.ClassificationResult
	runIDs      map[string]string
	saveErrs    int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		calls:       make(map[string]model.Call),
		transcripts: make(map[string]model.Transcript),
		results:     make(map[string]model.ClassificationResult),
		runIDs:      make(map[string]string),
	}
}

func (m *mockStorage) SaveCalls(_ context.Context, calls []model.Call) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	added := 0
	for _, c := range calls {
		if _, ok := m.calls[c.ID]; !ok {
			m.calls[c.ID] = c
			added++
		}
	}
	return added, nil
}

func (m *mockStorage) GetCall(_ context.Context, id string) (*model.Call, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	call, ok := m.calls[id]
	if !ok {
		return nil, fmt.Errorf("call %s: %w", id, common.ErrNotFound)
	}
	return &call, nil
}

func (m *mockStorage) GetCalls(_ context.Context, _ service.CallFilter) ([]model.Call, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Call, 0, len(m.calls))
	for _, c := range m.calls {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockStorage) GetCallsToClassify(_ context.Context, runID string) ([]model.Call, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Call
	for id, c := range m.calls {
		if m.runIDs[id] == runID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *mockStorage) SaveTranscripts(_ context.Context, transcripts []model.Transcript) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range transcripts {
		m.transcripts[t.CallID] = t
	}
	return len(transcripts), nil
}

func (m *mockStorage) GetTranscript(_ context.Context, callID string) (*model.Transcript, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transcripts[callID]
	if !ok {
		return nil, fmt.Errorf("transcript for call %s: %w", callID, common.ErrNotFound)
	}
	return &t, nil
}

func (m *mockStorage) SaveResult(_ context.Context, result *model.ClassificationResult, runID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErrs > 0 {
		m.saveErrs--
		return &common.RetryableError{Err: fmt.Errorf("transient save failure"), Retryable: true}
	}
	m.results[result.CallID] = *result
	m.runIDs[result.CallID] = runID
	return nil
}

func (m *mockStorage) GetResult(_ context.Context, callID string) (*model.ClassificationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[callID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &r, nil
}

func (m *mockStorage) GetResults(_ context.Context, _ service.ResultFilter) ([]model.ClassificationResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ClassificationResult, 0, len(m.results))
	for _, r := range m.results {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockStorage) GetBatchStats(_ context.Context, runID string) (*model.BatchStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := model.NewBatchStats(runID)
	for id, r := range m.results {
		if m.runIDs[id] != runID {
			continue
		}
		stats.Add(m.calls[id], r)
	}
	return stats, nil
}

func (m *mockStorage) ClearResults(_ context.Context, _ string) error { return nil }

func (m *mockStorage) SavePatternRule(_ context.Context, _ *model.PatternRule) error { return nil }
func (m *mockStorage) GetPatternRule(_ context.Context, _ int) (*model.PatternRule, error) {
	return nil, common.ErrNotFound
}
func (m *mockStorage) GetActivePatternRules(_ context.Context) ([]model.PatternRule, error) {
	return rules.Catalog(), nil
}
func (m *mockStorage) GetAllPatternRules(_ context.Context) ([]model.PatternRule, error) {
	return rules.Catalog(), nil
}
func (m *mockStorage) SetPatternRuleActive(_ context.Context, _ int, _ bool) error { return nil }
func (m *mockStorage) DeletePatternRule(_ context.Context, _ int) error            { return nil }
func (m *mockStorage) SeedPatternRules(_ context.Context, r []model.PatternRule) (int, error) {
	return len(r), nil
}

func (m *mockStorage) Migrate(_ context.Context) error { return nil }
func (m *mockStorage) Close() error                    { return nil }

func newTestEngine(t *testing.T, store *mockStorage) *ClassificationEngine {
	t.Helper()
	classifier, err := classify.NewClassifier(rules.Catalog())
	require.NoError(t, err)
	return NewWithConfig(store, classifier, Config{Workers: 4, ShowProgress: false})
}

func seedCalls(t *testing.T, store *mockStorage, n int, text string) {
	t.Helper()
	ctx := context.Background()
	start := time.Date(2025, 10, 6, 8, 0, 0, 0, time.UTC)

	calls := make([]model.Call, 0, n)
	transcripts := make([]model.Transcript, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("call-%03d", i)
		calls = append(calls, model.Call{
			ID:           id,
			StartTime:    start.Add(time.Duration(i) * time.Minute),
			Direction:    model.DirectionInbound,
			Duration:     90,
			Answered:     true,
			HasRecording: true,
		})
		transcripts = append(transcripts, model.Transcript{CallID: id, Text: text})
	}

	_, err := store.SaveCalls(ctx, calls)
	require.NoError(t, err)
	_, err = store.SaveTranscripts(ctx, transcripts)
	require.NoError(t, err)
}

func TestClassifyCalls(t *testing.T) {
	store := newMockStorage()
	engine := newTestEngine(t, store)

	seedCalls(t, store, 25, "Hi, I need an estimate for a concrete driveway at my house.")

	stats, err := engine.ClassifyCalls(context.Background(), "run-1")
	require.NoError(t, err)

	assert.Equal(t, "run-1", stats.RunID)
	assert.Equal(t, 25, stats.Total)
	assert.Equal(t, 25, stats.ByCategory[model.CategoryCustomer])
	assert.Len(t, store.results, 25)
}

func TestClassifyCalls_Empty(t *testing.T) {
	store := newMockStorage()
	engine := newTestEngine(t, store)

	stats, err := engine.ClassifyCalls(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestClassifyCalls_GeneratesRunID(t *testing.T) {
	store := newMockStorage()
	engine := newTestEngine(t, store)

	seedCalls(t, store, 1, "Hello, are you guys hiring right now for concrete work?")

	stats, err := engine.ClassifyCalls(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, stats.RunID)
}

func TestClassifyCalls_SkipsAlreadyClassified(t *testing.T) {
	store := newMockStorage()
	engine := newTestEngine(t, store)

	seedCalls(t, store, 10, "We want to remodel our kitchen, can someone come out for a quote?")

	stats, err := engine.ClassifyCalls(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Total)

	// A second pass over the same run finds nothing left.
	stats, err = engine.ClassifyCalls(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestClassifyCalls_MissingTranscript(t *testing.T) {
	store := newMockStorage()
	engine := newTestEngine(t, store)

	ctx := context.Background()
	_, err := store.SaveCalls(ctx, []model.Call{{
		ID:        "call-1",
		StartTime: time.Date(2025, 10, 6, 8, 0, 0, 0, time.UTC),
		Direction: model.DirectionInbound,
		Duration:  8,
	}})
	require.NoError(t, err)

	stats, err := engine.ClassifyCalls(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ByCategory[model.CategoryIncomplete])
}

func TestClassifyCalls_RetriesTransientSaveFailure(t *testing.T) {
	store := newMockStorage()
	store.saveErrs = 1
	engine := newTestEngine(t, store)

	seedCalls(t, store, 1, "Hi, I need a quote on a retaining wall for my backyard.")

	stats, err := engine.ClassifyCalls(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}

func TestClassifyCall_Single(t *testing.T) {
	store := newMockStorage()
	engine := newTestEngine(t, store)

	seedCalls(t, store, 1, "My foundation has a crack and I need someone to come look at it.")

	result, err := engine.ClassifyCall(context.Background(), "call-000", "run-1")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCustomer, result.Category)

	_, err = engine.ClassifyCall(context.Background(), "nope", "run-1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
