package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rhinobuilders/callsift/internal/cli"
	"github.com/rhinobuilders/callsift/internal/model"
	"github.com/rhinobuilders/callsift/internal/service"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show classification statistics",
		Long: `Show aggregate statistics for classified calls: category breakdown,
per-source lead conversion, and missed customer leads.

Examples:
  callsift report                      # All classified calls
  callsift report --run-id july        # A single run
  callsift report --low-confidence 0.6 # List calls needing review`,
		RunE: runReport,
	}

	cmd.Flags().String("run-id", "", "Limit the report to a single classification run")
	cmd.Flags().Float64("low-confidence", 0, "Also list results at or below this confidence")

	_ = viper.BindPFlag("report.run_id", cmd.Flags().Lookup("run-id"))
	_ = viper.BindPFlag("report.low_confidence", cmd.Flags().Lookup("low-confidence"))

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	runID := viper.GetString("report.run_id")

	var stats *model.BatchStats
	if runID != "" {
		stats, err = store.GetBatchStats(ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to load run stats: %w", err)
		}
	} else {
		stats, err = aggregateAllRuns(cmd, store)
		if err != nil {
			return err
		}
	}

	fmt.Println(cli.RenderBatchReport(stats))

	if threshold := viper.GetFloat64("report.low_confidence"); threshold > 0 {
		if err := printLowConfidence(cmd, store, runID, threshold); err != nil {
			return err
		}
	}

	return nil
}

// aggregateAllRuns rebuilds stats across every classified call,
// regardless of which run produced the result.
func aggregateAllRuns(cmd *cobra.Command, store service.Storage) (*model.BatchStats, error) {
	ctx := cmd.Context()

	calls, err := store.GetCalls(ctx, service.CallFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load calls: %w", err)
	}
	callsByID := make(map[string]model.Call, len(calls))
	for _, call := range calls {
		callsByID[call.ID] = call
	}

	results, err := store.GetResults(ctx, service.ResultFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}

	stats := model.NewBatchStats("")
	for _, result := range results {
		call, ok := callsByID[result.CallID]
		if !ok {
			continue
		}
		stats.Add(call, result)
	}
	return stats, nil
}

func printLowConfidence(cmd *cobra.Command, store service.Storage, runID string, threshold float64) error {
	results, err := store.GetResults(cmd.Context(), service.ResultFilter{
		RunID:         runID,
		MaxConfidence: threshold,
	})
	if err != nil {
		return fmt.Errorf("failed to load low-confidence results: %w", err)
	}
	if len(results) == 0 {
		return nil
	}

	fmt.Println(cli.StyleTitle(fmt.Sprintf("Needs review (confidence <= %.2f)", threshold)))
	for _, result := range results {
		line := fmt.Sprintf("%-20s %-14s %-20s %.2f  %s",
			result.CallID, result.Category, result.SubCategory, result.Confidence, result.Summary)
		fmt.Println(cli.SubtleStyle.Render(line))
	}

	return nil
}
