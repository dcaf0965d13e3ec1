package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rhinobuilders/callsift/internal/cli"
	"github.com/rhinobuilders/callsift/internal/ingest"
	"github.com/rhinobuilders/callsift/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <export.json>",
		Short: "Import calls from a call tracking export",
		Long: `Import calls and transcripts from a JSON call tracking export.

Calls are deduplicated automatically: a call ID that already exists in
the database is left untouched, so re-importing the same export is safe.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("transcripts", "", "Separate transcript file to import alongside the export")
	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")

	_ = viper.BindPFlag("import.transcripts", cmd.Flags().Lookup("transcripts"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	exportPath := args[0]

	slog.Info(cli.FormatTitle("Importing calls"))
	slog.Info("Reading export", "path", exportPath)

	calls, transcripts, err := ingest.ReadExport(exportPath)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	// Optional separate transcript file.
	if transcriptPath := viper.GetString("import.transcripts"); transcriptPath != "" {
		extra, readErr := ingest.ReadTranscripts(transcriptPath)
		if readErr != nil {
			return fmt.Errorf("failed to read transcripts: %w", readErr)
		}
		transcripts = append(transcripts, extra...)
	}

	calls = skipUnusableCalls(calls)

	slog.Info(fmt.Sprintf("Parsed %d calls, %d transcripts", len(calls), len(transcripts)))

	if viper.GetBool("import.dry_run") {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to database"))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	insertedCalls, err := store.SaveCalls(ctx, calls)
	if err != nil {
		return fmt.Errorf("failed to save calls: %w", err)
	}

	insertedTranscripts := 0
	if len(transcripts) > 0 {
		insertedTranscripts, err = store.SaveTranscripts(ctx, transcripts)
		if err != nil {
			return fmt.Errorf("failed to save transcripts: %w", err)
		}
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Import complete: %d new calls, %d transcripts (%d calls already present)",
		insertedCalls, insertedTranscripts, len(calls)-insertedCalls)))

	return nil
}

// skipUnusableCalls drops records the database would reject, warning
// per call so a bad export row never aborts the whole import.
func skipUnusableCalls(calls []model.Call) []model.Call {
	kept := calls[:0]
	for _, call := range calls {
		if call.StartTime.IsZero() {
			slog.Warn("Skipping call without a start time", "call_id", call.ID)
			continue
		}
		kept = append(kept, call)
	}
	return kept
}
