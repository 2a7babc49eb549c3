package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/twbeatles/klotto-generator/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format. Sections that are not
// present on the report are skipped.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writePicks(md, report.Picks)
	w.writeSync(md, report.Sync)
	w.writeDraws(md, report.Draws)
	w.writeStats(md, report.Stats)
	w.writeWinnings(md, report.Winnings)
	w.writeTicket(md, report.Ticket)
	w.writeHistory(md, report.History)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with generation information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Klotto Report")
	md.PlainText("")

	rows := [][]string{
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if len(report.Picks) > 0 {
		rows = append(rows, []string{"Generated Sets", strconv.Itoa(len(report.Picks))})
	}
	if report.Stats != nil {
		rows = append(rows, []string{"Draws Analyzed", strconv.Itoa(report.Stats.TotalDraws)})
	}
	if len(report.Winnings) > 0 {
		rows = append(rows, []string{"Sets Checked", strconv.Itoa(len(report.Winnings))})
	}
	if len(report.Draws) > 0 {
		rows = append(rows, []string{"Draws Listed", strconv.Itoa(len(report.Draws))})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writePicks writes the generated number sets with their analysis.
func (w *MarkdownWriter) writePicks(md *markdown.Markdown, picks []model.Pick) {
	if len(picks) == 0 {
		return
	}

	md.H2("Generated Sets")
	md.PlainText("")

	optimal := 0
	rows := make([][]string, 0, len(picks))
	for i, pick := range picks {
		row := []string{
			strconv.Itoa(i + 1),
			"`" + formatNumbers(pick.Numbers) + "`",
			pick.Strategy,
			"-", "-", "-",
		}
		if a := pick.Analysis; a != nil {
			row[3] = strconv.Itoa(a.Sum)
			row[4] = fmt.Sprintf("%d:%d", a.OddCount, a.EvenCount)
			row[5] = strconv.Itoa(a.Score)
			if a.Optimal {
				optimal++
			}
		}
		rows = append(rows, row)
	}

	md.Table(markdown.TableSet{
		Header: []string{"#", "Numbers", "Strategy", "Sum", "Odd:Even", "Score"},
		Rows:   rows,
	})
	md.PlainText("")

	if optimal == len(picks) {
		md.Tip("Every generated set falls within the statistically common shape (sum 100-175, 2 to 4 odd numbers).")
	} else {
		md.Note(fmt.Sprintf("%d of %d sets fall within the statistically common shape (sum 100-175, 2 to 4 odd numbers).",
			optimal, len(picks)))
	}
	md.PlainText("")
}

// writeSync writes the outcome of a synchronization run.
func (w *MarkdownWriter) writeSync(md *markdown.Markdown, sync *model.SyncReport) {
	if sync == nil {
		return
	}

	md.H2("Synchronization")
	md.PlainText("")

	rows := [][]string{
		{"Mode", sync.Mode},
		{"Stored Before", strconv.Itoa(sync.StoredCount)},
	}
	if sync.LastStored > 0 {
		rows = append(rows, []string{"Last Stored Round", strconv.Itoa(sync.LastStored)})
	}
	if sync.EstimatedLatest > 0 {
		rows = append(rows, []string{"Estimated Latest", strconv.Itoa(sync.EstimatedLatest)})
	}
	rows = append(rows,
		[]string{"Synced", strconv.Itoa(sync.SyncedCount())},
		[]string{"Failed", strconv.Itoa(sync.FailedCount())},
	)
	if sync.Latest != nil {
		rows = append(rows, []string{"Latest Draw",
			fmt.Sprintf("round %d (%s)", sync.Latest.DrawNo, sync.Latest.Date)})
	}
	rows = append(rows,
		[]string{"Elapsed", sync.Elapsed.Round(time.Millisecond).String()},
		[]string{"Status", w.syncStatusText(sync)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	switch {
	case sync.TimedOut:
		md.Warningf("Synchronization timed out after storing %d of %d planned rounds.",
			sync.SyncedCount(), sync.PlannedCount())
	case sync.Error != nil:
		md.Cautionf("Synchronization failed: %s", sync.ErrorMessage)
	case sync.FailedCount() > 0:
		md.Warningf("%d round(s) could not be fetched: %v", sync.FailedCount(), sync.Failed)
	case sync.UpToDate:
		md.Tip("The local store already holds every published round.")
	}
	md.PlainText("")
}

// syncStatusText returns the status text based on the sync run state.
func (w *MarkdownWriter) syncStatusText(sync *model.SyncReport) string {
	if sync.TimedOut {
		return "⚠️ Timed Out (partial results)"
	}
	if sync.ErrorMessage != "" {
		return "❌ Error - " + truncateString(sync.ErrorMessage, 60)
	}
	if sync.UpToDate {
		return "✅ Already up to date"
	}
	return "✅ Complete"
}

// writeDraws writes stored draw listings with prize figures.
func (w *MarkdownWriter) writeDraws(md *markdown.Markdown, draws []model.Draw) {
	if len(draws) == 0 {
		return
	}

	md.H2("Draw Results")
	md.PlainText("")

	rows := make([][]string, 0, len(draws))
	for _, draw := range draws {
		first, winners, sales := "-", "-", "-"
		if draw.FirstPrizeAmount > 0 {
			first = formatWon(draw.FirstPrizeAmount)
			winners = strconv.Itoa(draw.FirstPrizeWinners)
		}
		if draw.TotalSales > 0 {
			sales = formatWon(draw.TotalSales)
		}
		rows = append(rows, []string{
			strconv.Itoa(draw.DrawNo),
			draw.Date,
			"`" + formatNumbers(draw.Numbers) + "`",
			fmt.Sprintf("%02d", draw.Bonus),
			first,
			winners,
			sales,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Round", "Date", "Numbers", "Bonus", "1st Prize", "Winners", "Total Sales"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeStats writes the frequency statistics section.
func (w *MarkdownWriter) writeStats(md *markdown.Markdown, stats *model.FrequencyStats) {
	if stats == nil {
		return
	}

	md.H2("Number Statistics")
	md.PlainText("")
	md.PlainTextf("Statistics cover %d stored draws.", stats.TotalDraws)
	md.PlainText("")

	md.PlainText("### 🔥 Hot Numbers")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Number", "Count"},
		Rows:   countRows(stats.HotNumbers),
	})
	md.PlainText("")

	md.PlainText("### ❄️ Cold Numbers")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Number", "Count"},
		Rows:   countRows(stats.ColdNumbers),
	})
	md.PlainText("")

	w.writeRangeChart(md, stats)

	if len(stats.TopPairs) > 0 {
		md.PlainText("### Frequent Pairs")
		md.PlainText("")

		rows := make([][]string, 0, len(stats.TopPairs))
		for _, pair := range stats.TopPairs {
			rows = append(rows, []string{
				fmt.Sprintf("%02d + %02d", pair.First, pair.Second),
				strconv.Itoa(pair.Count),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Pair", "Count"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	if len(stats.Recent) > 0 {
		md.PlainText("### Recent Draws")
		md.PlainText("")

		rows := make([][]string, 0, len(stats.Recent))
		for _, draw := range stats.Recent {
			rows = append(rows, []string{
				strconv.Itoa(draw.DrawNo),
				draw.Date,
				"`" + formatNumbers(draw.Numbers) + "`",
				fmt.Sprintf("%02d", draw.Bonus),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Round", "Date", "Numbers", "Bonus"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeRangeChart writes a mermaid pie chart for the decade range
// distribution.
func (w *MarkdownWriter) writeRangeChart(md *markdown.Markdown, stats *model.FrequencyStats) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Number Range Distribution"),
		piechart.WithShowData(true),
	)

	for _, label := range model.RangeLabels() {
		if count := stats.Ranges[label]; count > 0 {
			chart.LabelAndIntValue(label, uint64(count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeWinnings writes the winnings check section.
func (w *MarkdownWriter) writeWinnings(md *markdown.Markdown, reports []model.WinningsReport) {
	if len(reports) == 0 {
		return
	}

	md.H2("Winnings Check")
	md.PlainText("")

	for _, rep := range reports {
		md.PlainTextf("### Set `%s`", formatNumbers(rep.Numbers))
		md.PlainText("")

		if !rep.WonAnything() {
			md.PlainTextf("No winning rounds among %d stored draws.", rep.TotalDraws)
			md.PlainText("")
			continue
		}

		rows := make([][]string, 0, len(rep.Hits))
		for _, hit := range rep.Hits {
			bonus := "-"
			if hit.BonusMatched {
				bonus = "✅"
			}
			rows = append(rows, []string{
				strconv.Itoa(hit.DrawNo),
				hit.Date,
				"`" + formatNumbers(hit.Matched) + "`",
				bonus,
				hit.Rank.String(),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Round", "Date", "Matched", "Bonus", "Rank"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	w.writeWinningsAlert(md, reports)
}

// writeWinningsAlert writes an alert summarizing the winnings check.
func (w *MarkdownWriter) writeWinningsAlert(md *markdown.Markdown, reports []model.WinningsReport) {
	best := model.RankNone
	hits := 0
	for _, rep := range reports {
		hits += len(rep.Hits)
		for _, hit := range rep.Hits {
			if hit.Rank == model.RankNone {
				continue
			}
			if best == model.RankNone || hit.Rank < best {
				best = hit.Rank
			}
		}
	}

	switch {
	case best == model.RankFirst || best == model.RankSecond:
		md.Importantf("A checked set reached the %s prize. Verify against the official Dhlottery results.", best)
	case hits > 0:
		md.Note(fmt.Sprintf("%d winning round(s) found across the checked sets.", hits))
	default:
		md.Tip("None of the checked sets would have won a prize so far.")
	}
	md.PlainText("")
}

// writeTicket writes the decoded ticket and its match results.
func (w *MarkdownWriter) writeTicket(md *markdown.Markdown, ticket *model.TicketCheck) {
	if ticket == nil || ticket.Ticket == nil {
		return
	}

	md.H2("Ticket Check")
	md.PlainText("")
	md.PlainTextf("Round %d, %d game(s).", ticket.Ticket.DrawNo, len(ticket.Ticket.Games))
	md.PlainText("")

	if ticket.Draw == nil {
		rows := make([][]string, 0, len(ticket.Ticket.Games))
		for i, game := range ticket.Ticket.Games {
			rows = append(rows, []string{
				fmt.Sprintf("%c", 'A'+i),
				"`" + formatNumbers(game) + "`",
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Game", "Numbers"},
			Rows:   rows,
		})
		md.PlainText("")

		md.Warningf("Round %d is not in the local store yet. Run a sync to check results.", ticket.Ticket.DrawNo)
		md.PlainText("")
		return
	}

	md.PlainTextf("Winning numbers: `%s + %02d`", formatNumbers(ticket.Draw.Numbers), ticket.Draw.Bonus)
	md.PlainText("")

	rows := make([][]string, 0, len(ticket.Ticket.Games))
	for i, game := range ticket.Ticket.Games {
		matched, bonus, rank := "-", "-", "-"
		if i < len(ticket.Results) {
			res := ticket.Results[i]
			matched = strconv.Itoa(res.MatchCount)
			if res.BonusMatched {
				bonus = "✅"
			}
			rank = res.Rank.String()
		}
		rows = append(rows, []string{
			fmt.Sprintf("%c", 'A'+i),
			"`" + formatNumbers(game) + "`",
			matched,
			bonus,
			rank,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Game", "Numbers", "Matched", "Bonus", "Rank"},
		Rows:   rows,
	})
	md.PlainText("")

	if best := ticket.BestRank(); best.Won() {
		md.Importantf("Best rank on this ticket: %s. Verify against the official Dhlottery results.", best)
	} else {
		md.Note("No winning games on this ticket.")
	}
	md.PlainText("")
}

// writeHistory writes statistics over locally generated sets.
func (w *MarkdownWriter) writeHistory(md *markdown.Markdown, history *model.HistoryStats) {
	if history == nil {
		return
	}

	md.H2("Generation History")
	md.PlainText("")
	md.PlainTextf("%d set(s) generated so far.", history.TotalSets)
	md.PlainText("")

	if len(history.MostCommon) > 0 {
		md.PlainText("### Most Picked")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Number", "Count"},
			Rows:   countRows(history.MostCommon),
		})
		md.PlainText("")
	}

	if len(history.LeastCommon) > 0 {
		md.PlainText("### Least Picked")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Number", "Count"},
			Rows:   countRows(history.LeastCommon),
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [klotto](https://github.com/twbeatles/klotto-generator)*")
}

// countRows flattens a number/count list into table rows.
func countRows(counts []model.NumberCount) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, nc := range counts {
		rows = append(rows, []string{
			fmt.Sprintf("%02d", nc.Number),
			strconv.Itoa(nc.Count),
		})
	}
	return rows
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
