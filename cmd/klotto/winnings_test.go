package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/store"
)

// TestNewWinningsCmd tests the winnings command creation.
func TestNewWinningsCmd(t *testing.T) {
	t.Parallel()

	cmd := NewWinningsCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "winnings" {
			t.Errorf("expected use 'winnings', got %q", cmd.Use)
		}
	})

	t.Run("has source flag with shorthand", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("source")
		if flag == nil {
			t.Fatal("expected source flag")
		}
		if flag.Shorthand != "s" {
			t.Errorf("expected shorthand 's', got %q", flag.Shorthand)
		}
		if flag.DefValue != sourceAll {
			t.Errorf("expected default %q, got %q", sourceAll, flag.DefValue)
		}
	})

	t.Run("has report flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"json", "markdown", "output"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected flag %q to exist", name)
			}
		}
	})
}

// seedHistory records the given sets in the history file inside dir.
func seedHistory(t *testing.T, dir string, sets ...[]int) {
	t.Helper()

	history, err := store.OpenHistory(filepath.Join(dir, store.HistoryFileName))
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	for _, numbers := range sets {
		if _, err := history.Add(numbers); err != nil {
			t.Fatalf("failed to seed history: %v", err)
		}
	}
}

// seedFavorites saves the given sets as favorites inside dir.
func seedFavorites(t *testing.T, dir string, sets ...[]int) {
	t.Helper()

	favorites, err := store.OpenFavorites(filepath.Join(dir, store.FavoritesFileName))
	if err != nil {
		t.Fatalf("failed to open favorites: %v", err)
	}
	for _, numbers := range sets {
		if _, err := favorites.Add(numbers, ""); err != nil {
			t.Fatalf("failed to seed favorites: %v", err)
		}
	}
}

// readReport reads a FullJSONWriter report file.
func readReport(t *testing.T, path string) *model.Report {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	var wrapper struct {
		Report *model.Report `json:"report"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	return wrapper.Report
}

// TestRunWinnings tests checking saved sets against stored draws.
func TestRunWinnings(t *testing.T) {
	t.Parallel()

	t.Run("history set that won round one", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeTestConfig(t, dir)
		seedDrawDB(t, dir)
		// The full winning set of round 1.
		seedHistory(t, dir, []int{10, 23, 29, 33, 37, 40})
		outPath := filepath.Join(dir, "winnings.json")

		err := runCommand("winnings", "--config", cfgPath, "--json", "-o", outPath)
		if err != nil {
			t.Fatalf("winnings failed: %v", err)
		}

		rep := readReport(t, outPath)
		if len(rep.Winnings) != 1 {
			t.Fatalf("expected 1 winnings report, got %d", len(rep.Winnings))
		}
		w := rep.Winnings[0]
		if w.TotalDraws != len(testDraws) {
			t.Errorf("expected %d draws checked, got %d", len(testDraws), w.TotalDraws)
		}
		if len(w.Hits) == 0 {
			t.Fatal("expected at least one hit")
		}
		first := w.Hits[0]
		if first.DrawNo != 1 || first.Rank != model.RankFirst {
			t.Errorf("expected first prize at round 1, got round %d rank %v", first.DrawNo, first.Rank)
		}
	})

	t.Run("favorites only source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeTestConfig(t, dir)
		seedDrawDB(t, dir)
		seedHistory(t, dir, []int{1, 2, 3, 4, 5, 6})
		seedFavorites(t, dir, []int{9, 13, 21, 25, 32, 42})
		outPath := filepath.Join(dir, "winnings.json")

		err := runCommand("winnings", "--config", cfgPath, "--source", "favorites", "--json", "-o", outPath)
		if err != nil {
			t.Fatalf("winnings failed: %v", err)
		}

		rep := readReport(t, outPath)
		if len(rep.Winnings) != 1 {
			t.Fatalf("expected only the favorite to be checked, got %d reports", len(rep.Winnings))
		}
		if rep.Winnings[0].Numbers[0] != 9 {
			t.Errorf("expected the favorite set, got %v", rep.Winnings[0].Numbers)
		}
	})

	t.Run("both stores with all source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeTestConfig(t, dir)
		seedDrawDB(t, dir)
		seedHistory(t, dir, []int{1, 2, 3, 4, 5, 6})
		seedFavorites(t, dir, []int{9, 13, 21, 25, 32, 42})
		outPath := filepath.Join(dir, "winnings.json")

		err := runCommand("winnings", "--config", cfgPath, "--json", "-o", outPath)
		if err != nil {
			t.Fatalf("winnings failed: %v", err)
		}

		rep := readReport(t, outPath)
		if len(rep.Winnings) != 2 {
			t.Errorf("expected 2 winnings reports, got %d", len(rep.Winnings))
		}
	})

	t.Run("unknown source is an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeTestConfig(t, dir)
		seedDrawDB(t, dir)

		err := runCommand("winnings", "--config", cfgPath, "--source", "dreams")
		if err == nil {
			t.Fatal("expected error for unknown source")
		}
		if !strings.Contains(err.Error(), "unknown source") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("no saved sets is an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeTestConfig(t, dir)
		seedDrawDB(t, dir)

		err := runCommand("winnings", "--config", cfgPath)
		if err == nil {
			t.Fatal("expected error when nothing is saved")
		}
		if !strings.Contains(err.Error(), "no saved sets") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("empty database is an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		cfgPath := writeTestConfig(t, dir)
		seedHistory(t, dir, []int{1, 2, 3, 4, 5, 6})

		err := runCommand("winnings", "--config", cfgPath)
		if err == nil {
			t.Fatal("expected error for empty database")
		}
		if !strings.Contains(err.Error(), "no draws stored") {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
