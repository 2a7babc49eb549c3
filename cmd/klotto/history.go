package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/model"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or manage the generation history",
		Long: `History lists the number sets generated so far, newest first.

The history is a local JSON file capped at the most recent sets. It is
also what the generator consults to avoid repeating a set.

With --stats, history instead summarizes which numbers were generated
most and least often. With --clear, the history is emptied.

Examples:
  # The most recent generated sets
  klotto history

  # Which numbers the generator favors
  klotto history --stats

  # Start over
  klotto history --clear`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("last", "l", config.DefaultHistoryLimit,
		"How many of the newest sets to list")
	cmd.Flags().Bool("stats", false,
		"Summarize the most and least generated numbers")
	cmd.Flags().Bool("clear", false,
		"Delete all history entries")

	addReportFlags(cmd)

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyReportFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	history, err := openHistory(cfg)
	if err != nil {
		return err
	}

	clearAll, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}
	if clearAll {
		if err := history.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("Generation history cleared.")
		return nil
	}

	showStats, err := cmd.Flags().GetBool("stats")
	if err != nil {
		return err
	}
	if showStats {
		rep := model.NewReport()
		rep.History = history.Statistics()
		return outputReport(cfg, rep)
	}

	last, err := cmd.Flags().GetInt("last")
	if err != nil {
		return err
	}

	entries := history.Recent(last)
	if len(entries) == 0 {
		fmt.Println("No generated sets recorded yet.")
		fmt.Println("\nUse 'klotto generate' to pick numbers.")
		return nil
	}

	fmt.Printf("Generation history (%d of %d sets, newest first):\n\n", len(entries), history.Len())
	for i, entry := range entries {
		fmt.Printf("  %3d. %s  (%s)\n", i+1, formatBalls(entry.Numbers), entry.CreatedAt)
	}

	return nil
}
