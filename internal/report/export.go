package report

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/twbeatles/klotto-generator/internal/model"
	"github.com/twbeatles/klotto-generator/internal/store"
)

// ErrUnknownFormat is returned when an export format name cannot be parsed.
var ErrUnknownFormat = errors.New("unknown export format")

// ExportFormat selects the on-disk format produced by an Exporter.
type ExportFormat int

const (
	// FormatCSV writes comma-separated rows with a UTF-8 BOM.
	FormatCSV ExportFormat = iota

	// FormatJSON writes the rows as an indented JSON array.
	FormatJSON

	// FormatMarkdown writes the rows as a Markdown table.
	FormatMarkdown
)

// String returns the format name as used on the command line.
func (f ExportFormat) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// ParseExportFormat maps a command line format name to an ExportFormat.
func ParseExportFormat(name string) (ExportFormat, error) {
	switch name {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return FormatCSV, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// utf8BOM marks exported CSV files as UTF-8. Excel assumes a legacy
// 8-bit encoding for CSV files without it and garbles the Korean headers.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Exporter writes raw store rows in a machine-readable format. Rows are
// written in the order given; CSV and Markdown output carry the Korean
// column headers of the original spreadsheet layouts.
type Exporter struct {
	baseWriter

	// format selects CSV, JSON, or Markdown output.
	format ExportFormat
}

// NewExporter creates an Exporter writing the given format to output.
func NewExporter(output io.Writer, format ExportFormat) *Exporter {
	return &Exporter{
		baseWriter: newBaseWriter(output),
		format:     format,
	}
}

// ExportDraws writes official draw rows including prize figures.
func (e *Exporter) ExportDraws(draws []model.Draw) error {
	if draws == nil {
		draws = []model.Draw{}
	}
	if e.format == FormatJSON {
		return e.writeJSON(draws)
	}

	header := []string{
		"회차", "추첨일",
		"번호1", "번호2", "번호3", "번호4", "번호5", "번호6",
		"보너스", "1등 상금(원)", "1등 당첨자", "총 판매액(원)",
	}
	rows := make([][]string, 0, len(draws))
	for _, draw := range draws {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(draw.DrawNo), draw.Date)
		row = append(row, numberCells(draw.Numbers)...)
		row = append(row,
			strconv.Itoa(draw.Bonus),
			strconv.FormatInt(draw.FirstPrizeAmount, 10),
			strconv.Itoa(draw.FirstPrizeWinners),
			strconv.FormatInt(draw.TotalSales, 10),
		)
		rows = append(rows, row)
	}
	return e.writeRows(header, rows)
}

// ExportHistory writes generated set rows from the history store.
func (e *Exporter) ExportHistory(entries []store.Entry) error {
	if entries == nil {
		entries = []store.Entry{}
	}
	if e.format == FormatJSON {
		return e.writeJSON(entries)
	}

	header := []string{"번호1", "번호2", "번호3", "번호4", "번호5", "번호6", "생성일"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		row := make([]string, 0, len(header))
		row = append(row, numberCells(entry.Numbers)...)
		row = append(row, entry.CreatedAt)
		rows = append(rows, row)
	}
	return e.writeRows(header, rows)
}

// ExportFavorites writes user-saved set rows with their memos.
func (e *Exporter) ExportFavorites(favorites []store.Favorite) error {
	if favorites == nil {
		favorites = []store.Favorite{}
	}
	if e.format == FormatJSON {
		return e.writeJSON(favorites)
	}

	header := []string{"번호1", "번호2", "번호3", "번호4", "번호5", "번호6", "메모", "생성일"}
	rows := make([][]string, 0, len(favorites))
	for _, favorite := range favorites {
		row := make([]string, 0, len(header))
		row = append(row, numberCells(favorite.Numbers)...)
		row = append(row, favorite.Memo, favorite.CreatedAt)
		rows = append(rows, row)
	}
	return e.writeRows(header, rows)
}

// writeRows writes a header and rows in the configured tabular format.
func (e *Exporter) writeRows(header []string, rows [][]string) error {
	if e.format == FormatMarkdown {
		return e.writeMarkdown(header, rows)
	}
	return e.writeCSV(header, rows)
}

// writeCSV writes a BOM, the header, and the rows as CSV.
func (e *Exporter) writeCSV(header []string, rows [][]string) error {
	if _, err := e.output.Write(utf8BOM); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(e.output)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeJSON writes the rows as an indented JSON array. HTML escaping is
// disabled so memo text round trips byte for byte.
func (e *Exporter) writeJSON(v interface{}) error {
	enc := json.NewEncoder(e.output)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeMarkdown writes the rows as a single Markdown table.
func (e *Exporter) writeMarkdown(header []string, rows [][]string) error {
	md := markdown.NewMarkdown(e.output)
	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	return md.Build()
}

// numberCells renders a set as six cells, truncating longer sets and
// padding shorter ones with empty cells so every row has the same width.
func numberCells(numbers []int) []string {
	cells := make([]string, 0, model.NumbersPerSet)
	for _, n := range numbers {
		if len(cells) == model.NumbersPerSet {
			break
		}
		cells = append(cells, strconv.Itoa(n))
	}
	for len(cells) < model.NumbersPerSet {
		cells = append(cells, "")
	}
	return cells
}
