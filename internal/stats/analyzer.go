package stats

import (
	"sort"

	"github.com/twbeatles/klotto-generator/internal/model"
)

const (
	// defaultRecentTrend is how many recent draws the trend list holds
	// unless overridden.
	defaultRecentTrend = 10

	// topListSize is the length of the hot, cold, and pair top lists.
	topListSize = 10
)

// Analyzer computes statistics over stored draws.
type Analyzer struct {
	// draws are the draws under analysis, newest first.
	draws []model.Draw

	// recentTrend is how many draws the recent trend list holds.
	recentTrend int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithRecentTrend sets how many draws the recent trend list holds.
func WithRecentTrend(count int) Option {
	return func(a *Analyzer) {
		a.recentTrend = count
	}
}

// NewAnalyzer creates an Analyzer over stored draws. Draws are expected
// newest first.
func NewAnalyzer(draws []model.Draw, opts ...Option) *Analyzer {
	a := &Analyzer{
		draws:       draws,
		recentTrend: defaultRecentTrend,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// TotalDraws returns how many draws the analyzer covers.
func (a *Analyzer) TotalDraws() int {
	return len(a.draws)
}

// Frequency computes the full statistics block: per-number counts, hot
// and cold lists, decade ranges, pair frequencies, and the recent trend.
// It returns nil when there are no draws to analyze.
func (a *Analyzer) Frequency() *model.FrequencyStats {
	if len(a.draws) == 0 {
		return nil
	}

	numberCounts := make(map[int]int, model.MaxNumber)
	bonusCounts := make(map[int]int, model.MaxNumber)
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		numberCounts[n] = 0
		bonusCounts[n] = 0
	}

	allNumbers := make([]int, 0, len(a.draws)*model.NumbersPerSet)
	for _, draw := range a.draws {
		for _, n := range draw.Numbers {
			numberCounts[n]++
			allNumbers = append(allNumbers, n)
		}
		bonusCounts[draw.Bonus]++
	}

	ordered := orderedCounts(numberCounts)

	return &model.FrequencyStats{
		TotalDraws:   len(a.draws),
		NumberCounts: numberCounts,
		BonusCounts:  bonusCounts,
		HotNumbers:   append([]model.NumberCount(nil), ordered[:topListSize]...),
		ColdNumbers:  append([]model.NumberCount(nil), ordered[len(ordered)-topListSize:]...),
		Ranges:       model.RangeDistribution(allNumbers),
		TopPairs:     a.topPairs(),
		Recent:       a.Recent(a.recentTrend),
	}
}

// Recent returns the newest draws, up to count. A count below one or
// beyond the stored draws returns everything.
func (a *Analyzer) Recent(count int) []model.Draw {
	if count <= 0 || count > len(a.draws) {
		count = len(a.draws)
	}
	return append([]model.Draw(nil), a.draws[:count]...)
}

// orderedCounts lists every ball number with its count, most frequent
// first. Equal counts are ordered by the smaller number so the hot and
// cold lists are stable across runs.
func orderedCounts(counts map[int]int) []model.NumberCount {
	ordered := make([]model.NumberCount, 0, len(counts))
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		ordered = append(ordered, model.NumberCount{Number: n, Count: counts[n]})
	}

	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Count != ordered[j].Count {
			return ordered[i].Count > ordered[j].Count
		}
		return ordered[i].Number < ordered[j].Number
	})
	return ordered
}

// topPairs finds the number pairs that appeared together most often.
// Ties are broken by the smaller pair so the list is stable across runs.
func (a *Analyzer) topPairs() []model.PairCount {
	pairCounts := make(map[[2]int]int)
	for _, draw := range a.draws {
		for i := 0; i < len(draw.Numbers); i++ {
			for j := i + 1; j < len(draw.Numbers); j++ {
				// Numbers are sorted, so the pair is already ordered.
				pair := [2]int{draw.Numbers[i], draw.Numbers[j]}
				pairCounts[pair]++
			}
		}
	}

	pairs := make([]model.PairCount, 0, len(pairCounts))
	for pair, count := range pairCounts {
		pairs = append(pairs, model.PairCount{First: pair[0], Second: pair[1], Count: count})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Count != pairs[j].Count {
			return pairs[i].Count > pairs[j].Count
		}
		if pairs[i].First != pairs[j].First {
			return pairs[i].First < pairs[j].First
		}
		return pairs[i].Second < pairs[j].Second
	})

	if len(pairs) > topListSize {
		pairs = pairs[:topListSize]
	}
	return pairs
}
