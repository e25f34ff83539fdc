package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/prismagen/internal/ports/primary"
	"github.com/example/prismagen/internal/wire"
)

var errHistoryDisabled = errors.New("generation history is unavailable (disabled or its database could not be opened)")

// HistoryCmd returns the history command with its prune subcommand attached.
func HistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded generation runs",
		Long:  "Show recorded generation runs and the files each one wrote, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd)
			limit, _ := cmd.Flags().GetInt("limit")
			model, _ := cmd.Flags().GetString("model")

			service := wire.HistoryService()
			if service == nil {
				return errHistoryDisabled
			}

			if limit <= 0 {
				limit = 20
			}

			runs, err := service.ListRuns(ctx, primary.HistoryFilters{Model: model, Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to fetch history: %w", err)
			}

			printRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old runs",
		Long:  "Delete runs older than the specified number of days (default 30)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext(cmd)
			out := cmd.OutOrStdout()
			days, _ := cmd.Flags().GetInt("days")

			service := wire.HistoryService()
			if service == nil {
				return errHistoryDisabled
			}

			if days <= 0 {
				days = 30
			}

			count, err := service.PruneRuns(ctx, days)
			if err != nil {
				return fmt.Errorf("failed to prune history: %w", err)
			}

			if count == 0 {
				fmt.Fprintf(out, "No runs older than %d days found.\n", days)
			} else {
				fmt.Fprintf(out, "Pruned %s older than %d days.\n", countNoun(count, "run"), days)
			}
			return nil
		},
	}

	historyCmd.Flags().IntP("limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().String("model", "", "Filter by model name")
	pruneCmd.Flags().Int("days", 30, "Delete runs older than N days")

	historyCmd.AddCommand(pruneCmd)
	return historyCmd
}

func printRuns(out io.Writer, runs []*primary.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return
	}

	for _, run := range runs {
		module := run.Module
		if module == "" {
			module = "-"
		}

		fmt.Fprintf(out, "%s | %s %s | %-12s | %s | %s\n",
			formatTimestamp(run.CreatedAt),
			statusIcon(run.Status),
			run.ID,
			run.Model,
			module,
			run.Artifacts,
		)
		if run.Error != "" {
			fmt.Fprintf(out, "    error: %s\n", run.Error)
		}
		for _, f := range run.Files {
			fmt.Fprintf(out, "    %-17s %s\n", f.Target, f.Path)
		}
	}
}

func statusIcon(status string) string {
	switch status {
	case "completed":
		return color.New(color.FgGreen).Sprint("✓")
	case "failed":
		return color.New(color.FgRed).Sprint("✗")
	default:
		return "?"
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
