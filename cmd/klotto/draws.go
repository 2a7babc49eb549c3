package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/model"
)

// NewDrawsCmd creates the draws command.
func NewDrawsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draws [round]",
		Short: "List stored draw results",
		Long: `Draws lists official draw results from the local database.

Without arguments it shows the newest rounds, including the winning
numbers, the bonus number, and the published prize figures. With a
round number it shows that single draw.

Examples:
  # The ten newest stored draws
  klotto draws

  # The last year of draws
  klotto draws --last 52

  # One specific round
  klotto draws 1105`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDrawsCmd,
	}

	cmd.Flags().IntP("last", "l", config.DefaultDrawsLimit,
		"How many of the newest draws to list")

	addReportFlags(cmd)

	return cmd
}

// runDrawsCmd executes the draws command.
func runDrawsCmd(cmd *cobra.Command, args []string) error {
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

	db, err := openDrawDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Read-only usage

	ctx := cmd.Context()
	rep := model.NewReport()

	if len(args) == 1 {
		drawNo, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid round number %q: %w", args[0], err)
		}
		draw, err := db.GetDraw(ctx, drawNo)
		if err != nil {
			return err
		}
		if draw == nil {
			return fmt.Errorf("draw %d is not stored (run 'klotto sync' first)", drawNo)
		}
		rep.Draws = []model.Draw{*draw}
		return outputReport(cfg, rep)
	}

	last, err := cmd.Flags().GetInt("last")
	if err != nil {
		return err
	}
	draws, err := db.RecentDraws(ctx, last)
	if err != nil {
		return fmt.Errorf("failed to load draws: %w", err)
	}
	if len(draws) == 0 {
		return errors.New("no draws stored yet (run 'klotto sync' first)")
	}

	rep.Draws = draws
	return outputReport(cfg, rep)
}
