package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/model"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [numbers...]",
		Short: "Analyze a number set and compare it with a stored draw",
		Long: `Check analyzes one set of six numbers.

It reports the sum, the odd/even and low/high splits, the decade range
spread, and a quality score from 0 to 100. Sets lose points for sums
outside the 100-175 band and for being all-odd, all-even, all-low, or
all-high, the shapes that rarely win.

When the database holds draws, the set is also compared against one of
them: the latest by default, or the round given with --draw. The
comparison shows the matched numbers, whether the bonus was hit, and
the prize rank the set would have reached.

Examples:
  # Analyze a set and compare with the latest stored draw
  klotto check 3 11 18 24 36 44

  # Compare with a specific round
  klotto check 3 11 18 24 36 44 --draw 1105

  # Machine-readable result
  klotto check 3 11 18 24 36 44 --json`,
		Args: cobra.ExactArgs(model.NumbersPerSet),
		RunE: runCheckCmd,
	}

	cmd.Flags().IntP("draw", "d", 0,
		"Round to compare against (0 = latest stored draw)")
	cmd.Flags().BoolP("json", "j", false,
		"Output the result in JSON format")

	return cmd
}

// CheckResult holds the analysis and the optional draw comparison for
// one number set.
type CheckResult struct {
	// Numbers is the checked set, sorted ascending.
	Numbers []int `json:"numbers"`

	// Analysis is the quality analysis of the set.
	Analysis *model.Analysis `json:"analysis"`

	// Match is the comparison against a stored draw. Nil when the
	// database holds no draws.
	Match *model.MatchResult `json:"match,omitempty"`

	// WinningNumbers are the main numbers of the compared draw.
	WinningNumbers []int `json:"winning_numbers,omitempty"`

	// Bonus is the bonus number of the compared draw.
	Bonus int `json:"bonus,omitempty"`
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	numbers, err := parseNumberArgs(args)
	if err != nil {
		return err
	}

	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}

	drawNo, err := cmd.Flags().GetInt("draw")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	result := &CheckResult{
		Numbers:  numbers,
		Analysis: model.NewAnalysis(numbers),
	}

	if err := fillDrawComparison(cmd.Context(), cfg, drawNo, result); err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return outputCheckText(result)
}

// parseNumberArgs converts the positional arguments into a validated,
// sorted number set.
func parseNumberArgs(args []string) ([]int, error) {
	numbers := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", arg, err)
		}
		numbers = append(numbers, n)
	}
	if err := model.ValidateNumbers(numbers); err != nil {
		return nil, err
	}
	sort.Ints(numbers)
	return numbers, nil
}

// fillDrawComparison compares the set against the requested draw.
// A missing database or an empty store leaves the comparison nil; a
// round the user named explicitly must exist.
func fillDrawComparison(ctx context.Context, cfg *config.Config, drawNo int, result *CheckResult) error {
	db, err := openDrawDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Read-only usage

	var draw *model.Draw
	if drawNo > 0 {
		draw, err = db.GetDraw(ctx, drawNo)
		if err != nil {
			return err
		}
		if draw == nil {
			return fmt.Errorf("draw %d is not stored (run 'klotto sync' first)", drawNo)
		}
	} else {
		draw, err = db.LatestDraw(ctx)
		if err != nil {
			return err
		}
		if draw == nil {
			// Nothing synced yet; the analysis alone is still useful.
			return nil
		}
	}

	match := draw.Match(result.Numbers)
	result.Match = &match
	result.WinningNumbers = draw.Numbers
	result.Bonus = draw.Bonus
	return nil
}

// outputCheckText renders the result in human-readable text format.
func outputCheckText(result *CheckResult) error {
	fmt.Printf("Set: %s\n", formatBalls(result.Numbers))
	fmt.Println(strings.Repeat("=", 50))

	a := result.Analysis
	fmt.Printf("\nSum:       %d", a.Sum)
	if a.Sum >= model.OptimalSumMin && a.Sum <= model.OptimalSumMax {
		fmt.Printf(" (within %d-%d)", model.OptimalSumMin, model.OptimalSumMax)
	} else {
		fmt.Printf(" (outside %d-%d)", model.OptimalSumMin, model.OptimalSumMax)
	}
	fmt.Printf("\nOdd/Even:  %d:%d\n", a.OddCount, a.EvenCount)
	fmt.Printf("Low/High:  %d:%d (low = 1-%d)\n", a.LowCount, a.HighCount, model.LowNumberMax)

	fmt.Print("Ranges:    ")
	parts := make([]string, 0, 5)
	for _, label := range model.RangeLabels() {
		if count := a.Ranges[label]; count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", label, count))
		}
	}
	fmt.Println(strings.Join(parts, "  "))

	fmt.Printf("Score:     %d/100\n", a.Score)
	if a.Optimal {
		fmt.Println("Shape:     optimal (sum and odd/even split in the preferred bands)")
	} else {
		fmt.Println("Shape:     not optimal")
	}

	if result.Match == nil {
		fmt.Println("\nNo stored draws to compare against (run 'klotto sync' first).")
		return nil
	}

	m := result.Match
	fmt.Printf("\nDraw %d (%s)\n", m.DrawNo, m.Date)
	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("Winning:   %s + bonus %02d\n", formatBalls(result.WinningNumbers), result.Bonus)
	if m.MatchCount > 0 {
		fmt.Printf("Matched:   %s (%d numbers)\n", formatBalls(m.Matched), m.MatchCount)
	} else {
		fmt.Println("Matched:   none")
	}
	if m.BonusMatched {
		fmt.Println("Bonus:     hit")
	}
	if m.Rank.Won() {
		info := model.GetRankInfo(m.Rank)
		fmt.Printf("Rank:      %s (%s)\n", m.Rank, info.Prize)
	} else {
		fmt.Println("Rank:      no prize")
	}

	return nil
}

// formatBalls renders a number set as zero-padded two-digit balls.
func formatBalls(numbers []int) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, fmt.Sprintf("%02d", n))
	}
	return strings.Join(parts, " ")
}
