package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// File names used inside the data directory.
const (
	// HistoryFileName holds generated number sets.
	HistoryFileName = "history.json"

	// FavoritesFileName holds user-saved sets with memos.
	FavoritesFileName = "favorites.json"

	// DrawCacheFileName holds the bounded draw fallback cache.
	DrawCacheFileName = "winning_stats.json"
)

// readJSONFile loads a JSON file into v. A missing file is not an
// error: v is left untouched so stores start empty on first use.
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path) //nolint:gosec // Paths come from our own config
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSONFileAtomic writes v as indented JSON through a temp file and
// rename, creating the parent directory if needed. The rename makes the
// update atomic on the same filesystem.
func writeJSONFileAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		// Leave no temp file behind on rename failure.
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

// sortedCopy returns the numbers sorted ascending without mutating the input.
func sortedCopy(numbers []int) []int {
	c := make([]int, len(numbers))
	copy(c, numbers)
	sort.Ints(c)
	return c
}

// equalNumbers reports whether a and b hold the same values in the same order.
func equalNumbers(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
