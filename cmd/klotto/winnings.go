package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/stats"
)

// Sources of saved sets for the winnings check.
const (
	sourceAll       = "all"
	sourceHistory   = "history"
	sourceFavorites = "favorites"
)

// NewWinningsCmd creates the winnings command.
func NewWinningsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "winnings",
		Short: "Check saved sets against every stored draw",
		Long: `Winnings runs every saved number set against all stored draws.

For each set it lists the rounds where the set matched three or more
main numbers, which are the rounds where it would have won a prize,
together with the prize rank reached.

Sets come from the generation history, the favorites list, or both.

Examples:
  # Check everything that was ever generated or saved
  klotto winnings

  # Only the favorites
  klotto winnings --source favorites

  # Markdown report
  klotto winnings --markdown -o winnings.md`,
		RunE: runWinningsCmd,
	}

	cmd.Flags().StringP("source", "s", sourceAll,
		"Where to take sets from: all, history, or favorites")

	addReportFlags(cmd)

	return cmd
}

// runWinningsCmd executes the winnings command.
func runWinningsCmd(cmd *cobra.Command, _ []string) error {
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

	source, err := cmd.Flags().GetString("source")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	sets, err := collectSavedSets(cfg, source)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		return fmt.Errorf("no saved sets in %s (generate some numbers or add favorites first)", source)
	}

	db, err := openDrawDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Read-only usage

	draws, err := db.AllDraws(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load draws: %w", err)
	}
	if len(draws) == 0 {
		return errors.New("no draws stored yet (run 'klotto sync' first)")
	}

	analyzer := stats.NewAnalyzer(draws)

	rep := model.NewReport()
	rep.Winnings = make([]model.WinningsReport, 0, len(sets))
	for _, numbers := range sets {
		rep.Winnings = append(rep.Winnings, *analyzer.CheckWinnings(numbers))
	}

	return outputReport(cfg, rep)
}

// collectSavedSets gathers number sets from the requested stores.
// Duplicate sets across stores are kept; each saved entry is reported
// on its own.
func collectSavedSets(cfg *config.Config, source string) ([][]int, error) {
	var sets [][]int

	if source == sourceAll || source == sourceHistory {
		history, err := openHistory(cfg)
		if err != nil {
			return nil, err
		}
		for _, entry := range history.All() {
			sets = append(sets, entry.Numbers)
		}
	}

	if source == sourceAll || source == sourceFavorites {
		favorites, err := openFavorites(cfg)
		if err != nil {
			return nil, err
		}
		for _, fav := range favorites.All() {
			sets = append(sets, fav.Numbers)
		}
	}

	switch source {
	case sourceAll, sourceHistory, sourceFavorites:
		return sets, nil
	default:
		return nil, fmt.Errorf("unknown source %q (use all, history, or favorites)", source)
	}
}
