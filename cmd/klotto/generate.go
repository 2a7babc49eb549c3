package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/generator"
	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/stats"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Lotto 6/45 number sets",
		Long: `Generate produces number combinations for the Lotto 6/45 game.

By default sets are weighted by how often each number appeared in the
stored draw history ("hot" strategy) and kept odd/even balanced. Without
a synced draw database every strategy falls back to uniform sampling.

Generated sets are appended to the local history file, which is also
used to avoid repeating a set that was generated before.

Strategies:
  hot     favor frequently drawn numbers (default)
  cold    favor rarely drawn numbers
  mixed   rotate hot/cold/unbalanced across the sets of one run
  random  plain uniform sampling, ignoring statistics

Examples:
  # Five balanced hot-weighted sets
  klotto generate

  # Three cold sets with 7 and 14 pinned
  klotto generate --sets 3 --strategy cold --fixed 7,14

  # One-off picks that are not recorded in the history
  klotto generate --sets 1 --no-save

  # Use a named profile from the config file
  klotto generate --profile mine

  # Machine-readable output
  klotto generate --json -o picks.json`,
		RunE: runGenerateCmd,
	}

	cmd.Flags().IntP("sets", "n", config.DefaultSets,
		fmt.Sprintf("Number of sets to generate (1-%d)", config.MaxSets))
	cmd.Flags().StringP("strategy", "s", config.DefaultStrategy,
		"Generation strategy: hot, cold, mixed, or random")
	cmd.Flags().Bool("no-balance", false,
		"Disable the odd/even balance filter")
	cmd.Flags().IntSliceP("fixed", "F", nil,
		fmt.Sprintf("Numbers pinned into every set (at most %d)", config.MaxFixedNumbers))
	cmd.Flags().IntSliceP("exclude", "E", nil,
		"Numbers that never appear in generated sets")
	cmd.Flags().Bool("allow-consecutive", false,
		"Allow more than two consecutive number pairs per set")
	cmd.Flags().Bool("no-save", false,
		"Do not record generated sets in the history file")
	cmd.Flags().StringP("profile", "p", "",
		"Generation profile from the config file")

	addReportFlags(cmd)

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildGenerateConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	return runGenerate(cmd, cfg, logger)
}

// buildGenerateConfig layers the generation settings: built-in defaults,
// then the config file profile, then explicit CLI flags.
func buildGenerateConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return nil, err
	}

	// Apply the profile before flags so flags win.
	cfg.Profile, err = cmd.Flags().GetString("profile")
	if err != nil {
		return nil, err
	}
	if cfg.Profile != "" {
		if _, ok := cfg.Profiles.Profiles[cfg.Profile]; !ok {
			return nil, fmt.Errorf("unknown profile %q (define it in the config file)", cfg.Profile)
		}
		cfg.Apply(cfg.Profiles.GetProfile(cfg.Profile))
	} else {
		cfg.Apply(cfg.Profiles.Defaults)
	}

	if cmd.Flags().Changed("sets") {
		if cfg.Sets, err = cmd.Flags().GetInt("sets"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("strategy") {
		if cfg.Strategy, err = cmd.Flags().GetString("strategy"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("fixed") {
		if cfg.FixedNumbers, err = cmd.Flags().GetIntSlice("fixed"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("exclude") {
		if cfg.ExcludeNumbers, err = cmd.Flags().GetIntSlice("exclude"); err != nil {
			return nil, err
		}
	}

	noBalance, err := cmd.Flags().GetBool("no-balance")
	if err != nil {
		return nil, err
	}
	if noBalance {
		cfg.Balance = false
	}

	allowConsecutive, err := cmd.Flags().GetBool("allow-consecutive")
	if err != nil {
		return nil, err
	}
	if allowConsecutive {
		cfg.LimitConsecutive = false
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	if noSave {
		cfg.SaveHistory = false
	}

	if err := applyReportFlags(cmd, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// runGenerate executes the generation.
func runGenerate(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	strategy, err := generator.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	// Weighted strategies need draw statistics. A missing or empty
	// database is not fatal: the generator degrades to uniform sampling,
	// exactly like generating before the first sync.
	var counts map[int]int
	if strategy != generator.StrategyRandom {
		counts = loadFrequencyCounts(cmd, cfg, logger)
	}

	history, err := openHistory(cfg)
	if err != nil {
		return err
	}

	opts := []generator.Option{generator.WithFrequency(counts)}
	if cfg.CheckHistory {
		opts = append(opts, generator.WithHistory(history))
	}
	gen := generator.NewGenerator(opts...)

	params := generator.Params{
		Strategy:         strategy,
		Balance:          cfg.Balance,
		LimitConsecutive: cfg.LimitConsecutive,
		Fixed:            cfg.FixedNumbers,
		Exclude:          cfg.ExcludeNumbers,
	}

	sets, err := gen.GenerateSets(cfg.Sets, params)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if cfg.SaveHistory {
		for _, numbers := range sets {
			if _, err := history.Add(numbers); err != nil {
				logger.Warn("failed to record set in history", "error", err)
				break
			}
		}
	}

	rep := model.NewReport()
	for _, numbers := range sets {
		rep.Picks = append(rep.Picks, model.NewPick(numbers, strategy.String()))
	}

	return outputReport(cfg, rep)
}

// loadFrequencyCounts loads per-number appearance counts from the draw
// database. It returns nil when no statistics are available.
func loadFrequencyCounts(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) map[int]int {
	db, err := openDrawDB(cfg)
	if err != nil {
		logger.Warn("draw database unavailable; falling back to uniform sampling", "error", err)
		return nil
	}
	defer db.Close() //nolint:errcheck // Read-only usage

	draws, err := db.AllDraws(cmd.Context())
	if err != nil {
		logger.Warn("failed to load draws; falling back to uniform sampling", "error", err)
		return nil
	}
	if len(draws) == 0 {
		logger.Warn("no draws stored yet; falling back to uniform sampling (run 'klotto sync')")
		return nil
	}

	return stats.NewAnalyzer(draws).Frequency().NumberCounts
}
