package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rhinobuilders/callsift/internal/classify"
	"github.com/rhinobuilders/callsift/internal/cli"
	"github.com/rhinobuilders/callsift/internal/engine"
	"github.com/rhinobuilders/callsift/internal/rules"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify imported calls",
		Long: `Classify every imported call that has not been classified yet.

Calls are matched against the active pattern rules and sorted into
customer leads, spam, operations and incomplete calls. Classification
is deterministic: the same calls and rules always produce the same
results.

Examples:
  callsift classify                 # Classify all unclassified calls
  callsift classify --run-id july   # Tag results with a named run
  callsift classify --workers 8     # Use 8 parallel workers`,
		RunE: runClassify,
	}

	cmd.Flags().String("run-id", "", "Run identifier for this batch (default: generated)")
	cmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	_ = viper.BindPFlag("classification.run_id", cmd.Flags().Lookup("run-id"))
	_ = viper.BindPFlag("classification.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("classification.no_progress", cmd.Flags().Lookup("no-progress"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(os.Stdout)
	ctx := handler.HandleInterrupts(cmd.Context(), true)

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	// Load the active rule set, seeding the built-in catalog on first run.
	ruleSet, err := store.GetActivePatternRules(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pattern rules: %w", err)
	}
	if len(ruleSet) == 0 {
		seeded, seedErr := store.SeedPatternRules(ctx, rules.Catalog())
		if seedErr != nil {
			return fmt.Errorf("failed to seed pattern rules: %w", seedErr)
		}
		slog.Info("Seeded built-in pattern rules", "count", seeded)

		ruleSet, err = store.GetActivePatternRules(ctx)
		if err != nil {
			return fmt.Errorf("failed to load pattern rules: %w", err)
		}
	}

	classifier, err := classify.NewClassifier(ruleSet)
	if err != nil {
		return fmt.Errorf("failed to build classifier: %w", err)
	}

	engineConfig := engine.DefaultConfig()
	if workers := viper.GetInt("classification.workers"); workers > 0 {
		engineConfig.Workers = workers
	}
	engineConfig.ShowProgress = !viper.GetBool("classification.no_progress")

	eng := engine.NewWithConfig(store, classifier, engineConfig)

	slog.Info(cli.FormatTitle("Classifying calls"), "rules", len(ruleSet))

	stats, err := eng.ClassifyCalls(ctx, viper.GetString("classification.run_id"))
	if err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Println(cli.RenderBatchReport(stats))

	return nil
}
