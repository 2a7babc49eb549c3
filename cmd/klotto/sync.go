package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/lottery"
	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/pipeline"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronize the local draw database from Dhlottery",
		Long: `Sync downloads official draw results into the local database.

The default incremental mode fetches only the rounds between the newest
stored draw and the latest round estimated from the weekly schedule
(round 1 was held on 2002-12-07, one draw every Saturday evening).

With --full, sync instead walks forward round by round from the newest
stored draw and stops after several consecutive fetch failures, which
marks the end of the published history. Use it to build the database
from scratch; it also fills prize data missing from older rounds.

Requests are paced to stay polite to the public Dhlottery endpoint.

Examples:
  # Catch up with the newest rounds
  klotto sync

  # Download the full history into an empty database
  klotto sync --full

  # Faster catch-up with more concurrent fetches
  klotto sync --workers 8 --delay 100ms`,
		RunE: runSyncCmd,
	}

	cmd.Flags().Bool("full", false,
		"Backfill from the first missing round instead of catching up")
	cmd.Flags().IntP("workers", "w", config.DefaultSyncWorkers,
		"Concurrent fetches in incremental mode")
	cmd.Flags().Duration("delay", config.DefaultFetchDelay,
		"Pause between consecutive requests")
	cmd.Flags().Int("failure-limit", config.DefaultFailureLimit,
		"Consecutive fetch failures that end a backfill")

	addReportFlags(cmd)

	return cmd
}

// runSyncCmd executes the sync command.
func runSyncCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildSyncConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	return runSync(cmd, cfg, full, logger)
}

// buildSyncConfig layers the sync settings: defaults, config file, flags.
func buildSyncConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("workers") {
		if cfg.SyncWorkers, err = cmd.Flags().GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("delay") {
		if cfg.FetchDelay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("failure-limit") {
		if cfg.FailureLimit, err = cmd.Flags().GetInt("failure-limit"); err != nil {
			return nil, err
		}
	}

	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runSync executes the synchronization pipeline.
func runSync(cmd *cobra.Command, cfg *config.Config, full bool, logger *slog.Logger) error {
	db, err := openDrawDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Closed after all writes completed

	client := lottery.NewClient(
		lottery.WithTimeout(cfg.Timeout),
		lottery.WithClientLogger(logger),
	)

	pipelineOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	syncOpts := []pipeline.SyncOption{
		pipeline.WithSyncWorkers(cfg.SyncWorkers),
		pipeline.WithSyncFetchDelay(cfg.FetchDelay),
		pipeline.WithSyncFailureLimit(cfg.FailureLimit),
	}

	var p *pipeline.Pipeline
	var syncReport *model.SyncReport
	if full {
		p = pipeline.BackfillPipeline(client, db, pipelineOpts, syncOpts...)
		syncReport = model.NewSyncReport(model.SyncModeBackfill)
	} else {
		p = pipeline.IncrementalPipeline(client, db, pipelineOpts, syncOpts...)
		syncReport = model.NewSyncReport(model.SyncModeIncremental)
	}

	startTime := time.Now()
	execErr := p.Execute(cmd.Context(), syncReport)
	if execErr != nil {
		logger.Error("sync failed", "mode", syncReport.Mode, "error", execErr)
	}
	logger.Debug("sync pipeline finished",
		"mode", syncReport.Mode,
		"synced", syncReport.SyncedCount(),
		"failed", syncReport.FailedCount(),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	rep := model.NewReport()
	rep.Sync = syncReport
	if err := outputReport(cfg, rep); err != nil {
		return err
	}
	return execErr
}
