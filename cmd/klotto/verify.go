package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/twbeatles/klotto-generator/internal/database"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the integrity of the local draw database",
		Long: `Verify inspects the local draw database.

It reports how many rounds are stored, the newest round, any gaps in
the round sequence, and rows that fail validation (out-of-range or
duplicate numbers, bonus collisions). Gaps and invalid rows are fixed
by re-running 'klotto sync --full'.

Examples:
  klotto verify
  klotto verify --json`,
		RunE: runVerifyCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output the result in JSON format")

	return cmd
}

// VerifyResult summarizes the state of the draw database.
type VerifyResult struct {
	// Path is the SQLite file that was inspected.
	Path string `json:"path"`

	// TotalRows is how many rows the draws table holds.
	TotalRows int `json:"total_rows"`

	// InvalidRows is how many rows fail draw validation.
	InvalidRows int `json:"invalid_rows"`

	// LatestDrawNo is the newest stored round, zero when empty.
	LatestDrawNo int `json:"latest_draw_no"`

	// LatestDate is the drawing date of the newest round.
	LatestDate string `json:"latest_date,omitempty"`

	// Missing lists rounds absent between round 1 and the newest round.
	Missing []int `json:"missing,omitempty"`
}

// OK reports whether the database is complete and every row is valid.
func (r *VerifyResult) OK() bool {
	return r.TotalRows > 0 && r.InvalidRows == 0 && len(r.Missing) == 0
}

// runVerifyCmd executes the verify command.
func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildBaseConfig(cmd)
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Verify must not create an empty database just to report on it.
	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck // Read-only usage

	ctx := cmd.Context()
	result := &VerifyResult{Path: db.Path()}

	result.TotalRows, result.InvalidRows, err = db.AuditRows(ctx)
	if err != nil {
		return fmt.Errorf("failed to audit rows: %w", err)
	}

	latest, err := db.LatestDraw(ctx)
	if err != nil {
		return fmt.Errorf("failed to read latest draw: %w", err)
	}
	if latest != nil {
		result.LatestDrawNo = latest.DrawNo
		result.LatestDate = latest.Date
	}

	result.Missing, err = db.MissingDraws(ctx)
	if err != nil {
		return fmt.Errorf("failed to find missing draws: %w", err)
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return outputVerifyText(result)
}

// outputVerifyText renders the result in human-readable text format.
func outputVerifyText(result *VerifyResult) error {
	fmt.Printf("Database: %s\n", result.Path)
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\nStored rounds:  %d\n", result.TotalRows)
	if result.LatestDrawNo > 0 {
		fmt.Printf("Latest round:   %d (%s)\n", result.LatestDrawNo, result.LatestDate)
	} else {
		fmt.Println("Latest round:   none")
	}
	fmt.Printf("Invalid rows:   %d\n", result.InvalidRows)
	fmt.Printf("Missing rounds: %d\n", len(result.Missing))

	if len(result.Missing) > 0 {
		fmt.Println("\nMissing:")
		for _, chunk := range chunkInts(result.Missing, 12) {
			parts := make([]string, 0, len(chunk))
			for _, n := range chunk {
				parts = append(parts, fmt.Sprintf("%d", n))
			}
			fmt.Printf("  %s\n", strings.Join(parts, ", "))
		}
	}

	if result.OK() {
		fmt.Println("\nDatabase is complete and every row is valid.")
	} else {
		fmt.Println("\nRun 'klotto sync --full' to repair gaps and refresh invalid rows.")
	}

	return nil
}

// chunkInts splits values into slices of at most size elements.
func chunkInts(values []int, size int) [][]int {
	var chunks [][]int
	for len(values) > size {
		chunks = append(chunks, values[:size])
		values = values[size:]
	}
	if len(values) > 0 {
		chunks = append(chunks, values)
	}
	return chunks
}
