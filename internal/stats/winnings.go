package stats

import (
	"sort"

	"github.com/twbeatles/klotto-generator/internal/model"
)

// CheckWinnings compares one set of numbers against every analyzed draw
// and collects the rounds where the set would have won a prize (three or
// more matches). Hits are ordered newest first.
func (a *Analyzer) CheckWinnings(numbers []int) *model.WinningsReport {
	sorted := append([]int(nil), numbers...)
	sort.Ints(sorted)

	report := &model.WinningsReport{
		Numbers:    sorted,
		TotalDraws: len(a.draws),
		Hits:       []model.MatchResult{},
	}

	for _, draw := range a.draws {
		result := draw.Match(sorted)
		if result.Rank.Won() {
			report.Hits = append(report.Hits, result)
		}
	}
	return report
}
