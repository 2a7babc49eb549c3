package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/twbeatles/klotto-generator/internal/model"
)

// testDraw returns a stored draw with prize figures for report tests.
func testDraw() model.Draw {
	return model.Draw{
		DrawNo:            1122,
		Date:              "2024-06-01",
		Numbers:           []int{3, 11, 18, 24, 36, 44},
		Bonus:             7,
		FirstPrizeAmount:  2345678900,
		FirstPrizeWinners: 12,
		TotalSales:        111111111000,
	}
}

// createTestReport creates a report with every section filled in.
func createTestReport() *model.Report {
	draw := testDraw()

	report := model.NewReport()
	report.GeneratedAt = time.Date(2024, time.June, 2, 10, 30, 0, 0, time.UTC)
	report.Picks = []model.Pick{
		model.NewPick([]int{3, 11, 18, 24, 36, 44}, "hot"),
		model.NewPick([]int{2, 14, 21, 27, 33, 40}, "cold"),
	}
	report.Stats = &model.FrequencyStats{
		TotalDraws:  2,
		HotNumbers:  []model.NumberCount{{Number: 3, Count: 2}, {Number: 11, Count: 1}},
		ColdNumbers: []model.NumberCount{{Number: 45, Count: 0}},
		Ranges:      map[string]int{"1-10": 3, "11-20": 3, "21-30": 2, "31-40": 2, "41-45": 2},
		TopPairs:    []model.PairCount{{First: 3, Second: 11, Count: 2}},
		Recent:      []model.Draw{draw},
	}
	report.Winnings = []model.WinningsReport{
		{
			Numbers:    []int{3, 11, 18, 25, 37, 43},
			TotalDraws: 2,
			Hits: []model.MatchResult{
				{
					DrawNo:     1122,
					Date:       "2024-06-01",
					Matched:    []int{3, 11, 18},
					MatchCount: 3,
					Rank:       model.RankFifth,
				},
			},
		},
	}
	report.Sync = &model.SyncReport{
		Mode:            model.SyncModeIncremental,
		StartedAt:       report.GeneratedAt,
		StoredCount:     1120,
		LastStored:      1120,
		EstimatedLatest: 1122,
		Planned:         []int{1121, 1122},
		Synced:          []int{1121, 1122},
		Latest:          &draw,
		Elapsed:         1500 * time.Millisecond,
	}
	report.Draws = []model.Draw{draw}
	return report
}

// TestSimpleWriter tests the human-readable report writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "KLOTTO REPORT") {
			t.Error("expected output to contain header")
		}
		if !strings.Contains(output, "Generated: 2024-06-02") {
			t.Error("expected output to contain generation time")
		}
	})

	t.Run("writes generated sets", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "GENERATED SETS") {
			t.Error("expected output to contain generated sets section")
		}
		if !strings.Contains(output, "03 11 18 24 36 44") {
			t.Error("expected output to contain the first set")
		}
		if !strings.Contains(output, "(hot)") {
			t.Error("expected output to contain the strategy")
		}
	})

	t.Run("formats prize amounts with digit grouping", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "2,345,678,900원") {
			t.Error("expected output to contain the grouped prize amount")
		}
	})

	t.Run("writes winnings hits", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "WINNINGS CHECK") {
			t.Error("expected output to contain winnings section")
		}
		if !strings.Contains(output, "Round 1122") {
			t.Error("expected output to contain the winning round")
		}
		if !strings.Contains(output, "5th prize") {
			t.Error("expected output to contain the prize rank")
		}
	})

	t.Run("writes sync status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "SYNC RESULT") {
			t.Error("expected output to contain sync section")
		}
		if !strings.Contains(output, "Status:           Complete") {
			t.Error("expected output to contain the sync status")
		}
		if !strings.Contains(output, "2 of 2 planned") {
			t.Error("expected output to contain the synced count")
		}
	})

	t.Run("verbose mode includes set analysis", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf, WithVerbose(true))

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "score") {
			t.Error("expected verbose output to contain the set analysis")
		}
		if !strings.Contains(output, "Total sales: 111,111,111,000원") {
			t.Error("expected verbose output to contain total sales")
		}
	})

	t.Run("skips sections that are not present", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		report := model.NewReport()
		report.Picks = []model.Pick{model.NewPick([]int{1, 2, 3, 4, 5, 6}, "random")}

		_, err := w.Write(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if strings.Contains(output, "SYNC RESULT") {
			t.Error("did not expect sync section without sync data")
		}
		if strings.Contains(output, "NUMBER STATISTICS") {
			t.Error("did not expect stats section without stats data")
		}
	})

	t.Run("handles timed out sync", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		report := createTestReport()
		report.Sync.TimedOut = true

		_, err := w.Write(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "TIMED OUT") {
			t.Error("expected output to indicate timeout")
		}
	})

	t.Run("shows ticket without a stored draw", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewSimpleWriter(&buf)

		report := model.NewReport()
		report.Ticket = &model.TicketCheck{
			Ticket: &model.Ticket{
				DrawNo: 1130,
				Games:  [][]int{{1, 2, 11, 21, 43, 44}},
			},
		}

		_, err := w.Write(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "Game A: 01 02 11 21 43 44") {
			t.Error("expected output to contain the ticket game")
		}
		if !strings.Contains(output, "Round not stored yet") {
			t.Error("expected output to mention the missing round")
		}
	})
}

// TestJSONWriter tests the JSON report writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("outputs valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed model.Report
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if len(parsed.Picks) != 2 {
			t.Errorf("expected 2 picks, got %d", len(parsed.Picks))
		}
		if parsed.Draws[0].DrawNo != 1122 {
			t.Errorf("expected draw 1122, got %d", parsed.Draws[0].DrawNo)
		}
	})

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) > 1 {
			t.Errorf("expected compact output (1 line), got %d lines", len(lines))
		}
	})

	t.Run("pretty print with indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithPrettyPrint())

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) < 5 {
			t.Errorf("expected multi-line output, got %d lines", len(lines))
		}
	})

	t.Run("uses custom prefix and indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewJSONWriter(&buf, WithIndent(">>", "\t"))

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, ">>") {
			t.Error("expected custom prefix '>>' in output")
		}
		if !strings.Contains(output, "\t") {
			t.Error("expected tab indentation in output")
		}
	})
}

// TestFullJSONWriter tests the full JSON writer with metadata.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("includes version in output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewFullJSONWriter(&buf, "1.2.3", WithPrettyPrint())

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var parsed JSONReport
		if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}

		if parsed.Version != "1.2.3" {
			t.Errorf("expected version %q, got %q", "1.2.3", parsed.Version)
		}
		if parsed.Report == nil || len(parsed.Report.Draws) != 1 {
			t.Error("expected wrapped report with one draw")
		}
	})
}

// TestMultiWriter tests writing to multiple outputs.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes to all writers", func(t *testing.T) {
		t.Parallel()

		var buf1, buf2 bytes.Buffer
		w1 := NewSimpleWriter(&buf1)
		w2 := NewJSONWriter(&buf2)

		multi := NewMultiWriter(w1, w2)

		_, err := multi.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if buf1.Len() == 0 {
			t.Error("expected buf1 to have content")
		}
		if buf2.Len() == 0 {
			t.Error("expected buf2 to have content")
		}

		if strings.Contains(buf1.String(), "{") {
			t.Error("expected buf1 (simple) to not be JSON")
		}
		if !strings.Contains(buf2.String(), "{") {
			t.Error("expected buf2 (JSON) to contain JSON")
		}
	})

	t.Run("handles empty writers list", func(t *testing.T) {
		t.Parallel()

		multi := NewMultiWriter()

		n, err := multi.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 bytes written for empty writers, got %d", n)
		}
	})
}

// TestMarkdownWriter tests the Markdown report writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes report header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "# Klotto Report") {
			t.Error("expected output to contain H1 header")
		}
		if !strings.Contains(output, "Generated At") {
			t.Error("expected output to contain generation time row")
		}
	})

	t.Run("writes generated sets table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Generated Sets") {
			t.Error("expected output to contain generated sets header")
		}
		if !strings.Contains(output, "03 11 18 24 36 44") {
			t.Error("expected output to contain the first set")
		}
	})

	t.Run("includes range pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "mermaid") {
			t.Error("expected output to contain a mermaid block")
		}
		if !strings.Contains(output, "pie") {
			t.Error("expected output to contain a pie chart")
		}
	})

	t.Run("notes winning rounds", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "## Winnings Check") {
			t.Error("expected output to contain winnings header")
		}
		if !strings.Contains(output, "[!NOTE]") {
			t.Error("expected NOTE alert for winning rounds")
		}
	})

	t.Run("warns when ticket round is missing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		report := model.NewReport()
		report.Ticket = &model.TicketCheck{
			Ticket: &model.Ticket{
				DrawNo: 1130,
				Games:  [][]int{{1, 2, 11, 21, 43, 44}},
			},
		}

		_, err := w.Write(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "[!WARNING]") {
			t.Error("expected WARNING alert for missing round")
		}
	})

	t.Run("shows sync errors in status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		report := createTestReport()
		report.Sync.RecordError(errors.New("connection refused"))

		_, err := w.Write(report)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "connection refused") {
			t.Error("expected error message in output")
		}
		if !strings.Contains(output, "[!CAUTION]") {
			t.Error("expected CAUTION alert for sync error")
		}
	})

	t.Run("writes footer with link", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w := NewMarkdownWriter(&buf)

		_, err := w.Write(createTestReport())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "https://github.com/twbeatles/klotto-generator") {
			t.Error("expected footer with repository link")
		}
	})
}

// TestFormatWon tests the KRW amount formatter.
func TestFormatWon(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "0원"},
		{5000, "5,000원"},
		{50000, "50,000원"},
		{2345678900, "2,345,678,900원"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			if got := formatWon(tt.amount); got != tt.expected {
				t.Errorf("formatWon(%d) = %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}

// TestFormatNumbers tests the ball number formatter.
func TestFormatNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		numbers  []int
		expected string
	}{
		{"full set", []int{3, 11, 18, 24, 36, 44}, "03 11 18 24 36 44"},
		{"single digit", []int{7}, "07"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatNumbers(tt.numbers); got != tt.expected {
				t.Errorf("formatNumbers(%v) = %q, want %q", tt.numbers, got, tt.expected)
			}
		})
	}
}

// TestTruncateString tests the string truncation helper.
func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a longer string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"ab", 5, "ab"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			result := truncateString(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q",
					tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}
