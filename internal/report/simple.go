package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/twbeatles/klotto-generator/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format. Sections that are
// not present on the report are skipped.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writePicks(&sb, report.Picks)
	w.writeSync(&sb, report.Sync)
	w.writeDraws(&sb, report.Draws)
	w.writeStats(&sb, report.Stats)
	w.writeWinnings(&sb, report.Winnings)
	w.writeTicket(&sb, report.Ticket)
	w.writeHistory(&sb, report.History)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report banner with the generation time.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                            KLOTTO REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
}

// writeSectionHeader writes a dashed banner introducing a section.
func (w *SimpleWriter) writeSectionHeader(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// writePicks writes the generated number sets.
func (w *SimpleWriter) writePicks(sb *strings.Builder, picks []model.Pick) {
	if len(picks) == 0 {
		return
	}

	w.writeSectionHeader(sb, "GENERATED SETS")

	for i, pick := range picks {
		sb.WriteString(fmt.Sprintf("  [%d] %s", i+1, formatNumbers(pick.Numbers)))
		if pick.Strategy != "" {
			sb.WriteString(fmt.Sprintf("  (%s)", pick.Strategy))
		}
		sb.WriteString("\n")

		if w.verbose && pick.Analysis != nil {
			a := pick.Analysis
			sb.WriteString(fmt.Sprintf("      sum %d, odd:even %d:%d, low:high %d:%d, score %d\n",
				a.Sum, a.OddCount, a.EvenCount, a.LowCount, a.HighCount, a.Score))
		}
	}
	sb.WriteString("\n")
}

// writeSync writes the outcome of a synchronization run.
func (w *SimpleWriter) writeSync(sb *strings.Builder, sync *model.SyncReport) {
	if sync == nil {
		return
	}

	w.writeSectionHeader(sb, "SYNC RESULT")

	sb.WriteString(fmt.Sprintf("  Mode:             %s\n", sync.Mode))
	sb.WriteString(fmt.Sprintf("  Stored before:    %d draws\n", sync.StoredCount))
	if sync.LastStored > 0 {
		sb.WriteString(fmt.Sprintf("  Last stored:      round %d\n", sync.LastStored))
	}
	if sync.EstimatedLatest > 0 {
		sb.WriteString(fmt.Sprintf("  Estimated latest: round %d\n", sync.EstimatedLatest))
	}
	if sync.PlannedCount() > 0 {
		sb.WriteString(fmt.Sprintf("  Synced:           %d of %d planned\n", sync.SyncedCount(), sync.PlannedCount()))
	} else {
		sb.WriteString(fmt.Sprintf("  Synced:           %d draws\n", sync.SyncedCount()))
	}
	if sync.FailedCount() > 0 {
		sb.WriteString(fmt.Sprintf("  Failed rounds:    %v\n", sync.Failed))
	}
	if sync.Latest != nil {
		sb.WriteString(fmt.Sprintf("  Latest draw:      [%d] %s  %s + %02d\n",
			sync.Latest.DrawNo, sync.Latest.Date, formatNumbers(sync.Latest.Numbers), sync.Latest.Bonus))
	}
	sb.WriteString(fmt.Sprintf("  Elapsed:          %s\n", sync.Elapsed.Round(time.Millisecond)))

	switch {
	case sync.TimedOut:
		sb.WriteString("  Status:           TIMED OUT (partial results)\n")
	case sync.Error != nil:
		sb.WriteString(fmt.Sprintf("  Status:           ERROR - %s\n", sync.ErrorMessage))
	case sync.UpToDate:
		sb.WriteString("  Status:           Already up to date\n")
	default:
		sb.WriteString("  Status:           Complete\n")
	}
	sb.WriteString("\n")
}

// writeDraws writes stored draw listings with prize figures.
func (w *SimpleWriter) writeDraws(sb *strings.Builder, draws []model.Draw) {
	if len(draws) == 0 {
		return
	}

	w.writeSectionHeader(sb, "DRAW RESULTS")

	for _, draw := range draws {
		sb.WriteString(fmt.Sprintf("  [%4d] %s  %s + %02d\n",
			draw.DrawNo, draw.Date, formatNumbers(draw.Numbers), draw.Bonus))
		if draw.FirstPrizeAmount > 0 {
			sb.WriteString(fmt.Sprintf("         1st prize: %s (%d winners)\n",
				formatWon(draw.FirstPrizeAmount), draw.FirstPrizeWinners))
		}
		if w.verbose && draw.TotalSales > 0 {
			sb.WriteString(fmt.Sprintf("         Total sales: %s\n", formatWon(draw.TotalSales)))
		}
	}
	sb.WriteString("\n")
}

// writeStats writes the frequency statistics section.
func (w *SimpleWriter) writeStats(sb *strings.Builder, stats *model.FrequencyStats) {
	if stats == nil {
		return
	}

	w.writeSectionHeader(sb, "NUMBER STATISTICS")

	sb.WriteString(fmt.Sprintf("  Draws analyzed: %d\n\n", stats.TotalDraws))

	sb.WriteString("  Hot numbers (most drawn):\n")
	w.writeCounts(sb, stats.HotNumbers)
	sb.WriteString("  Cold numbers (least drawn):\n")
	w.writeCounts(sb, stats.ColdNumbers)

	sb.WriteString("  Range distribution:\n")
	for _, label := range model.RangeLabels() {
		sb.WriteString(fmt.Sprintf("    %-6s %d\n", label, stats.Ranges[label]))
	}
	sb.WriteString("\n")

	if len(stats.TopPairs) > 0 {
		sb.WriteString("  Frequent pairs:\n")
		for _, pair := range stats.TopPairs {
			sb.WriteString(fmt.Sprintf("    %02d + %02d: %d\n", pair.First, pair.Second, pair.Count))
		}
		sb.WriteString("\n")
	}

	if w.verbose && len(stats.Recent) > 0 {
		sb.WriteString("  Recent draws:\n")
		for _, draw := range stats.Recent {
			sb.WriteString(fmt.Sprintf("    [%4d] %s  %s + %02d\n",
				draw.DrawNo, draw.Date, formatNumbers(draw.Numbers), draw.Bonus))
		}
		sb.WriteString("\n")
	}
}

// writeCounts writes an indented number/count list.
func (w *SimpleWriter) writeCounts(sb *strings.Builder, counts []model.NumberCount) {
	for _, nc := range counts {
		sb.WriteString(fmt.Sprintf("    %02d: %d\n", nc.Number, nc.Count))
	}
	sb.WriteString("\n")
}

// writeWinnings writes the winnings check section.
func (w *SimpleWriter) writeWinnings(sb *strings.Builder, reports []model.WinningsReport) {
	if len(reports) == 0 {
		return
	}

	w.writeSectionHeader(sb, "WINNINGS CHECK")

	for _, rep := range reports {
		sb.WriteString(fmt.Sprintf("  Set %s  (checked against %d draws)\n",
			formatNumbers(rep.Numbers), rep.TotalDraws))
		if !rep.WonAnything() {
			sb.WriteString("    No winning rounds\n\n")
			continue
		}

		for _, hit := range rep.Hits {
			sb.WriteString(fmt.Sprintf("    * Round %d", hit.DrawNo))
			if hit.Date != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", hit.Date))
			}
			sb.WriteString(fmt.Sprintf(": %d matched", hit.MatchCount))
			if hit.BonusMatched {
				sb.WriteString(" + bonus")
			}
			sb.WriteString(fmt.Sprintf(", %s prize\n", hit.Rank))

			if w.verbose && len(hit.Matched) > 0 {
				sb.WriteString(fmt.Sprintf("      Matched: %s\n", formatNumbers(hit.Matched)))
			}
		}
		sb.WriteString("\n")
	}
}

// writeTicket writes the decoded ticket and its match results.
func (w *SimpleWriter) writeTicket(sb *strings.Builder, ticket *model.TicketCheck) {
	if ticket == nil || ticket.Ticket == nil {
		return
	}

	w.writeSectionHeader(sb, "TICKET CHECK")

	sb.WriteString(fmt.Sprintf("  Round: %d\n", ticket.Ticket.DrawNo))
	if ticket.Draw != nil {
		sb.WriteString(fmt.Sprintf("  Winning numbers: %s + %02d\n",
			formatNumbers(ticket.Draw.Numbers), ticket.Draw.Bonus))
	}
	sb.WriteString("\n")

	for i, game := range ticket.Ticket.Games {
		sb.WriteString(fmt.Sprintf("  Game %c: %s", 'A'+i, formatNumbers(game)))
		if i < len(ticket.Results) {
			res := ticket.Results[i]
			sb.WriteString(fmt.Sprintf("  %d matched", res.MatchCount))
			if res.BonusMatched {
				sb.WriteString(" + bonus")
			}
			if res.Rank.Won() {
				sb.WriteString(fmt.Sprintf(", %s prize", res.Rank))
			}
		}
		sb.WriteString("\n")
	}

	if ticket.Draw == nil {
		sb.WriteString("\n  Round not stored yet. Run a sync to check results.\n")
	}
	sb.WriteString("\n")
}

// writeHistory writes statistics over locally generated sets.
func (w *SimpleWriter) writeHistory(sb *strings.Builder, history *model.HistoryStats) {
	if history == nil {
		return
	}

	w.writeSectionHeader(sb, "GENERATION HISTORY")

	sb.WriteString(fmt.Sprintf("  Sets generated: %d\n\n", history.TotalSets))
	if len(history.MostCommon) > 0 {
		sb.WriteString("  Most picked:\n")
		w.writeCounts(sb, history.MostCommon)
	}
	if len(history.LeastCommon) > 0 {
		sb.WriteString("  Least picked:\n")
		w.writeCounts(sb, history.LeastCommon)
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by klotto\n")
	sb.WriteString("https://github.com/twbeatles/klotto-generator\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
