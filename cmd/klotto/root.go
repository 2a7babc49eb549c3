// Package main provides the entry point for the klotto CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/database"
	"github.com/twbeatles/klotto-generator/internal/log"
	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/report"
	"github.com/twbeatles/klotto-generator/internal/store"
)

// NewRootCmd creates the root command for klotto.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "klotto",
		Short: "Korean Lotto 6/45 number generator and draw database",
		Long: `klotto is a command-line toolkit for the Korean Lotto 6/45 game.

It keeps a local SQLite database of official draw results synchronized
from Dhlottery, generates number combinations (purely random or weighted
by draw statistics), and checks saved sets and purchased tickets against
past winning draws.

Start with 'klotto sync' to download the draw history, then
'klotto generate' to pick numbers.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .klotto.yaml in current directory or XDG config directory)")
	cmd.PersistentFlags().String("db", "",
		"Database directory (default: XDG data directory)")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewWinningsCmd())
	cmd.AddCommand(NewDrawsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewFavoritesCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewTicketCmd())
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// buildBaseConfig creates a Config from the persistent flags and the
// configuration file. Command-specific flags are applied on top by the
// individual commands, so explicit flags always win over file settings.
func buildBaseConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.ApplyFile(file); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
		cfg.Profiles = file
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.Profiles = &config.File{Profiles: make(map[string]config.Profile)}
	}

	// Default data locations follow the XDG layout; the config file and
	// the --db flag override them.
	if cfg.DBDir == "" {
		cfg.DBDir = config.XDGDataDir()
	}
	if cfg.DataDir == "" {
		cfg.DataDir = config.XDGDataDir()
	}
	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// addReportFlags registers the shared output-format flags.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// applyReportFlags copies the shared output-format flags onto the config.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error
	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	return nil
}

// openOutput returns the destination for report or export output.
// The returned closer is a no-op when writing to stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-chosen output path
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// outputReport renders the report in the format the config asks for.
func outputReport(cfg *config.Config, rep *model.Report) error {
	output, closeOutput, err := openOutput(cfg.ReportFile)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // Best effort close on the error path

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	if _, err := writer.Write(rep); err != nil {
		return err
	}
	return closeOutput()
}

// openDrawDB opens the draw database in the configured directory.
func openDrawDB(cfg *config.Config) (*database.DrawDB, error) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// openHistory opens the generation history store in the data directory.
func openHistory(cfg *config.Config) (*store.History, error) {
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(cfg.DataDir, store.HistoryFileName)
	h, err := store.OpenHistory(path, store.WithMaxEntries(cfg.MaxHistory))
	if err != nil {
		return nil, fmt.Errorf("failed to open history file %s: %w", path, err)
	}
	return h, nil
}

// openFavorites opens the favorites store in the data directory.
func openFavorites(cfg *config.Config) (*store.Favorites, error) {
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	path := filepath.Join(cfg.DataDir, store.FavoritesFileName)
	f, err := store.OpenFavorites(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites file %s: %w", path, err)
	}
	return f, nil
}
