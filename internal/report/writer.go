package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/twbeatles/klotto-generator/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Writer defines the interface for report output.
// Implementations write command results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// wonPrinter formats integers with the digit grouping Dhlottery uses
// for prize and sales figures.
var wonPrinter = message.NewPrinter(language.Korean)

// formatWon renders a KRW amount with thousands separators,
// for example "2,345,678,900원".
func formatWon(amount int64) string {
	return wonPrinter.Sprintf("%d원", amount)
}

// formatNumbers renders a number set as zero-padded two-digit balls,
// for example "03 11 18 24 36 44".
func formatNumbers(numbers []int) string {
	parts := make([]string, 0, len(numbers))
	for _, n := range numbers {
		parts = append(parts, fmt.Sprintf("%02d", n))
	}
	return strings.Join(parts, " ")
}
