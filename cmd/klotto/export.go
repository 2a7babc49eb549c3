package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/report"
)

// Exportable data kinds.
const (
	dataDraws     = "draws"
	dataHistory   = "history"
	dataFavorites = "favorites"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export draws, history, or favorites to a file",
		Long: `Export writes stored data as CSV, JSON, or a Markdown table.

Draws are exported oldest round first with the published prize figures.
CSV files start with a UTF-8 byte order mark so spreadsheet applications
detect the Korean column headers correctly.

Examples:
  # Full draw history as CSV
  klotto export --data draws -o draws.csv

  # Favorites as JSON to stdout
  klotto export --data favorites --format json

  # Generation history as a Markdown table
  klotto export --data history --format markdown -o history.md`,
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("data", "d", dataDraws,
		"What to export: draws, history, or favorites")
	cmd.Flags().StringP("format", "f", "csv",
		"Output format: csv, json, or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Output file path (default: stdout)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	dataKind, err := cmd.Flags().GetString("data")
	if err != nil {
		return err
	}
	formatName, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	format, err := report.ParseExportFormat(formatName)
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // Best effort close on the error path

	exporter := report.NewExporter(output, format)
	if err := exportData(cmd, cfg, exporter, dataKind); err != nil {
		return err
	}
	return closeOutput()
}

// exportData routes the export to the requested data kind.
func exportData(cmd *cobra.Command, cfg *config.Config, exporter *report.Exporter, dataKind string) error {
	switch dataKind {
	case dataDraws:
		db, err := openDrawDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close() //nolint:errcheck // Read-only usage

		ctx := cmd.Context()
		lastNo, err := db.LastDrawNo(ctx)
		if err != nil {
			return err
		}
		if lastNo == 0 {
			return errors.New("no draws stored yet (run 'klotto sync' first)")
		}
		// Ascending order so the file reads chronologically.
		draws, err := db.DrawRange(ctx, 1, lastNo)
		if err != nil {
			return err
		}
		return exporter.ExportDraws(draws)

	case dataHistory:
		history, err := openHistory(cfg)
		if err != nil {
			return err
		}
		return exporter.ExportHistory(history.All())

	case dataFavorites:
		favorites, err := openFavorites(cfg)
		if err != nil {
			return err
		}
		return exporter.ExportFavorites(favorites.All())

	default:
		return fmt.Errorf("unknown data kind %q (use draws, history, or favorites)", dataKind)
	}
}
