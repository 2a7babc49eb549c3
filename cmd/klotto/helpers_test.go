package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/twbeatles/klotto-generator/internal/database"
	"github.com/twbeatles/klotto-generator/internal/model"
)

// testDraws are the first three official Lotto 6/45 rounds. Using real
// data keeps validation, matching, and export assertions honest.
var testDraws = []model.Draw{
	{
		DrawNo:            1,
		Date:              "2002-12-07",
		Numbers:           []int{10, 23, 29, 33, 37, 40},
		Bonus:             16,
		FirstPrizeAmount:  0,
		FirstPrizeWinners: 0,
		TotalSales:        3681782000,
	},
	{
		DrawNo:           2,
		Date:             "2002-12-14",
		Numbers:          []int{9, 13, 21, 25, 32, 42},
		Bonus:            2,
		FirstPrizeAmount: 2002006800,
	},
	{
		DrawNo:  3,
		Date:    "2002-12-21",
		Numbers: []int{11, 16, 19, 21, 27, 31},
		Bonus:   30,
	},
}

// seedDrawDB creates a draw database in dir and stores testDraws.
func seedDrawDB(t *testing.T, dir string) {
	t.Helper()

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx := context.Background()
	for i := range testDraws {
		if err := db.UpsertDraw(ctx, &testDraws[i]); err != nil {
			t.Fatalf("failed to seed draw %d: %v", testDraws[i].DrawNo, err)
		}
	}
}

// writeTestConfig writes a minimal config file pointing both the draw
// database and the JSON stores at dir, so test runs never touch the
// real XDG directories. It returns the config file path.
func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "klotto.yaml")
	content := fmt.Sprintf("dbDir: %s\ndataDir: %s\n", dir, dir)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// writeTestConfigWithContent writes an explicit config file into dir
// and returns its path.
func writeTestConfigWithContent(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "klotto.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// captureStdout runs fn while os.Stdout is redirected to a pipe and
// returns everything fn printed. Tests using it must not run in
// parallel.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	if err := w.Close(); err != nil {
		os.Stdout = oldStdout
		t.Fatalf("failed to close pipe writer: %v", err)
	}
	os.Stdout = oldStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return buf.String(), fnErr
}

// runCommand executes the root command with the given arguments.
func runCommand(args ...string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
