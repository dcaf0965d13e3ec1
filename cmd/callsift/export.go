package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rhinobuilders/callsift/internal/cli"
	"github.com/rhinobuilders/callsift/internal/config"
	"github.com/rhinobuilders/callsift/internal/export"
	"github.com/rhinobuilders/callsift/internal/model"
	"github.com/rhinobuilders/callsift/internal/service"
	"github.com/rhinobuilders/callsift/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export classified calls",
		Long: `Export classified calls as CSV, JSON, or to a Google Sheets report.

Examples:
  callsift export --format csv -o calls.csv
  callsift export --format json --run-id july
  callsift export --format sheets`,
		RunE: runExport,
	}

	cmd.Flags().StringP("format", "f", "csv", "Export format (csv, json, sheets)")
	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().String("run-id", "", "Limit the export to a single classification run")
	cmd.Flags().String("category", "", "Limit the export to one category")
	cmd.Flags().StringP("start-date", "s", "", "Only include calls on or after this date (format: 2006-01-02)")
	cmd.Flags().StringP("end-date", "e", "", "Only include calls on or before this date (format: 2006-01-02)")

	_ = viper.BindPFlag("export.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("export.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("export.run_id", cmd.Flags().Lookup("run-id"))
	_ = viper.BindPFlag("export.category", cmd.Flags().Lookup("category"))
	_ = viper.BindPFlag("export.start_date", cmd.Flags().Lookup("start-date"))
	_ = viper.BindPFlag("export.end_date", cmd.Flags().Lookup("end-date"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	filter := service.ResultFilter{
		RunID: viper.GetString("export.run_id"),
	}
	if categoryFlag := viper.GetString("export.category"); categoryFlag != "" {
		category := model.Category(categoryFlag)
		if !category.IsValid() {
			return fmt.Errorf("unknown category %q", categoryFlag)
		}
		filter.Category = category
	}
	if raw := viper.GetString("export.start_date"); raw != "" {
		startDate, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			return fmt.Errorf("invalid start date (use YYYY-MM-DD): %w", parseErr)
		}
		filter.StartDate = &startDate
	}
	if raw := viper.GetString("export.end_date"); raw != "" {
		endDate, parseErr := time.Parse("2006-01-02", raw)
		if parseErr != nil {
			return fmt.Errorf("invalid end date (use YYYY-MM-DD): %w", parseErr)
		}
		// Inclusive: cover the whole end day.
		endDate = endDate.Add(24*time.Hour - time.Second)
		filter.EndDate = &endDate
	}

	results, err := store.GetResults(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	if len(results) == 0 {
		slog.Info(cli.FormatWarning("Nothing to export - run callsift classify first"))
		return nil
	}

	calls, err := store.GetCalls(ctx, service.CallFilter{})
	if err != nil {
		return fmt.Errorf("failed to load calls: %w", err)
	}

	callsByID := make(map[string]model.Call, len(calls))
	for _, call := range calls {
		callsByID[call.ID] = call
	}
	stats := model.NewBatchStats(filter.RunID)
	for _, result := range results {
		if call, ok := callsByID[result.CallID]; ok {
			stats.Add(call, result)
		}
	}

	writer, cleanup, err := buildReportWriter(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := writer.Write(ctx, calls, results, stats); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Exported %d classified calls", len(results))))

	return nil
}

func buildReportWriter(cmd *cobra.Command) (service.ReportWriter, func(), error) {
	format := viper.GetString("export.format")
	noop := func() {}

	switch format {
	case "csv", "json":
		out, cleanup, err := openOutput(viper.GetString("export.output"))
		if err != nil {
			return nil, noop, err
		}
		if format == "csv" {
			return export.NewCSVWriter(out), cleanup, nil
		}
		return export.NewJSONWriter(out), cleanup, nil
	case "sheets":
		sheetsConfig, err := config.LoadSheetsConfig()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to load sheets config: %w", err)
		}
		writer, err := sheets.NewWriter(cmd.Context(), *sheetsConfig, slog.Default())
		if err != nil {
			return nil, noop, fmt.Errorf("failed to create sheets writer: %w", err)
		}
		return writer, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown export format %q (csv, json, sheets)", format)
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
