package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rhinobuilders/callsift/internal/cli"
	"github.com/rhinobuilders/callsift/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage pattern rules",
		Long: `Manage the pattern rules used to classify calls.

The built-in catalog is seeded automatically on first classify; these
commands let you inspect it, disable rules that misfire for your
business, and re-seed after upgrades.`,
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesSeedCmd())
	cmd.AddCommand(rulesEnableCmd())
	cmd.AddCommand(rulesDisableCmd())
	cmd.AddCommand(rulesDeleteCmd())

	return cmd
}

func rulesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all pattern rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			ruleSet, err := store.GetAllPatternRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to load pattern rules: %w", err)
			}
			if len(ruleSet) == 0 {
				fmt.Println(cli.FormatWarning("No pattern rules found - run: callsift rules seed"))
				return nil
			}

			fmt.Println(cli.TableHeaderStyle.Render(
				fmt.Sprintf("%5s  %-32s %-14s %-22s %-7s %s", "ID", "Name", "Category", "Sub-category", "Tier", "Active")))
			for _, rule := range ruleSet {
				active := "yes"
				style := cli.TableCellStyle
				if !rule.IsActive {
					active = "no"
					style = cli.SubtleStyle
				}
				fmt.Println(style.Render(fmt.Sprintf("%5d  %-32s %-14s %-22s %-7s %s",
					rule.ID, rule.Name, rule.Category, rule.SubCategory, rule.Tier, active)))
			}

			return nil
		},
	}
	return cmd
}

func rulesSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the built-in pattern rule catalog",
		Long: `Insert any built-in rules that are missing from the database.

Existing rules are never overwritten, so local tweaks survive a re-seed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			inserted, err := store.SeedPatternRules(ctx, rules.Catalog())
			if err != nil {
				return fmt.Errorf("failed to seed pattern rules: %w", err)
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Seeded %d new rules (catalog v%d)", inserted, rules.CatalogVersion)))
			return nil
		},
	}
}

func rulesEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <id>",
		Short: "Enable a pattern rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setRuleActive(cmd, args[0], true)
		},
	}
}

func rulesDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <id>",
		Short: "Disable a pattern rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setRuleActive(cmd, args[0], false)
		},
	}
}

func rulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pattern rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid rule id %q", args[0])
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeletePatternRule(ctx, id); err != nil {
				return fmt.Errorf("failed to delete rule %d: %w", id, err)
			}

			slog.Info(cli.FormatSuccess(fmt.Sprintf("Deleted rule %d", id)))
			return nil
		},
	}
}

func setRuleActive(cmd *cobra.Command, rawID string, active bool) error {
	ctx := cmd.Context()

	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid rule id %q", rawID)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SetPatternRuleActive(ctx, id, active); err != nil {
		return fmt.Errorf("failed to update rule %d: %w", id, err)
	}

	state := "enabled"
	if !active {
		state = "disabled"
	}
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Rule %d %s", id, state)))

	return nil
}
