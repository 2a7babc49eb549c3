package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/stats"
	"github.com/twbeatles/klotto-generator/internal/store"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show frequency statistics over stored draws",
		Long: `Stats analyzes the stored draw history.

It reports how often each number was drawn, the hot and cold top ten,
how the drawn numbers spread across decade ranges, the pairs that
appeared together most often, and the most recent draws.

Examples:
  # Statistics over the whole stored history
  klotto stats

  # Only the last 52 draws (roughly one year)
  klotto stats --last 52

  # Markdown report with a range distribution chart
  klotto stats --markdown -o stats.md`,
		RunE: runStatsCmd,
	}

	cmd.Flags().IntP("last", "l", 0,
		"Restrict the analysis to the newest N draws (0 = all)")
	cmd.Flags().Int("trend", config.DefaultRecentTrend,
		"How many of the newest draws to list as the recent trend")

	addReportFlags(cmd)

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
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

	last, err := cmd.Flags().GetInt("last")
	if err != nil {
		return err
	}
	trend, err := cmd.Flags().GetInt("trend")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	draws, err := loadDrawsForStats(cmd, cfg, last, logger)
	if err != nil {
		return err
	}
	if len(draws) == 0 {
		return errors.New("no draws stored yet (run 'klotto sync' first)")
	}

	analyzer := stats.NewAnalyzer(draws, stats.WithRecentTrend(trend))

	rep := model.NewReport()
	rep.Stats = analyzer.Frequency()
	return outputReport(cfg, rep)
}

// loadDrawsForStats loads draws from the database, refreshing the JSON
// fallback cache on success. When the database is unavailable or empty,
// the cache serves the newest draws instead, so statistics keep working
// from a data directory copied without the SQLite file.
func loadDrawsForStats(cmd *cobra.Command, cfg *config.Config, last int, logger *slog.Logger) ([]model.Draw, error) {
	cache := store.NewDrawCache(filepath.Join(cfg.DataDir, store.DrawCacheFileName))

	draws, err := loadDrawsFromDB(cmd, cfg, last)
	if err == nil && len(draws) > 0 {
		if saveErr := cache.Save(draws); saveErr != nil {
			logger.Debug("failed to refresh draw cache", "error", saveErr)
		}
		return draws, nil
	}

	cached, loadErr := cache.Load()
	if loadErr != nil || len(cached) == 0 {
		// Nothing cached either; the database result stands.
		return draws, err
	}
	logger.Warn("draw database unavailable; using the cached draws", "error", err)
	if last > 0 && last < len(cached) {
		cached = cached[:last]
	}
	return cached, nil
}

// loadDrawsFromDB reads the newest draws from the SQLite store.
func loadDrawsFromDB(cmd *cobra.Command, cfg *config.Config, last int) ([]model.Draw, error) {
	db, err := openDrawDB(cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close() //nolint:errcheck // Read-only usage

	ctx := cmd.Context()
	var draws []model.Draw
	if last > 0 {
		draws, err = db.RecentDraws(ctx, last)
	} else {
		draws, err = db.AllDraws(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draws: %w", err)
	}
	return draws, nil
}
