package model

// Thresholds used by the set quality analysis. They reflect the shape
// of historical winning sets: sums mostly fall between 100 and 175,
// and all-odd, all-even, all-low, or all-high sets are rare.
const (
	// OptimalSumMin is the lower bound of the preferred sum range.
	OptimalSumMin = 100

	// OptimalSumMax is the upper bound of the preferred sum range.
	OptimalSumMax = 175

	// LowNumberMax is the largest ball number counted as "low".
	// Numbers 1-22 are low, 23-45 are high.
	LowNumberMax = 22
)

// RangeLabels returns the decade-range buckets used for distribution
// reporting, in display order. The last bucket is shorter because the
// ball range ends at 45.
func RangeLabels() []string {
	return []string{"1-10", "11-20", "21-30", "31-40", "41-45"}
}

// RangeDistribution buckets the given numbers into the decade ranges
// returned by RangeLabels. Every label is present in the result, with
// a zero count when no number falls into it.
func RangeDistribution(numbers []int) map[string]int {
	dist := make(map[string]int, 5)
	for _, label := range RangeLabels() {
		dist[label] = 0
	}
	for _, n := range numbers {
		dist[rangeLabelOf(n)]++
	}
	return dist
}

// rangeLabelOf returns the decade-range bucket for a single number.
func rangeLabelOf(n int) string {
	switch {
	case n <= 10:
		return "1-10"
	case n <= 20:
		return "11-20"
	case n <= 30:
		return "21-30"
	case n <= 40:
		return "31-40"
	default:
		return "41-45"
	}
}

// Analysis describes the statistical shape of one set of six numbers.
// It is a derived view, computed from the numbers alone without
// consulting draw history.
type Analysis struct {
	// Sum is the total of the six numbers.
	Sum int `json:"sum"`

	// OddCount is how many of the numbers are odd.
	OddCount int `json:"odd_count"`

	// EvenCount is how many of the numbers are even.
	EvenCount int `json:"even_count"`

	// LowCount is how many numbers are 22 or less.
	LowCount int `json:"low_count"`

	// HighCount is how many numbers are 23 or more.
	HighCount int `json:"high_count"`

	// Ranges buckets the numbers into decade ranges. Keys match RangeLabels.
	Ranges map[string]int `json:"ranges"`

	// Score grades the set from 0 to 100. Sets lose points for sums
	// outside the preferred range, for having no odd or no even
	// numbers, and for having no low or no high numbers.
	Score int `json:"score"`

	// Optimal reports whether the sum is within the preferred range
	// and the odd/even split is between 2:4 and 4:2.
	Optimal bool `json:"optimal"`
}

// NewAnalysis computes the quality analysis for a set of six numbers.
// It returns nil when numbers does not contain exactly six values.
func NewAnalysis(numbers []int) *Analysis {
	if len(numbers) != NumbersPerSet {
		return nil
	}

	a := &Analysis{Ranges: RangeDistribution(numbers)}
	for _, n := range numbers {
		a.Sum += n
		if n%2 == 1 {
			a.OddCount++
		}
		if n <= LowNumberMax {
			a.LowCount++
		}
	}
	a.EvenCount = NumbersPerSet - a.OddCount
	a.HighCount = NumbersPerSet - a.LowCount

	a.Score = 100
	if a.Sum < OptimalSumMin || a.Sum > OptimalSumMax {
		a.Score -= 20
	}
	if a.OddCount == 0 || a.EvenCount == 0 {
		a.Score -= 15
	}
	if a.LowCount == 0 || a.HighCount == 0 {
		a.Score -= 15
	}
	if a.Score < 0 {
		a.Score = 0
	}

	a.Optimal = a.Sum >= OptimalSumMin && a.Sum <= OptimalSumMax &&
		a.OddCount >= 2 && a.OddCount <= 4
	return a
}
