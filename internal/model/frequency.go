package model

// NumberCount pairs a ball number with how often it appeared.
type NumberCount struct {
	// Number is the ball number (1-45).
	Number int `json:"number"`

	// Count is how many draws the number appeared in.
	Count int `json:"count"`
}

// PairCount records how often two ball numbers appeared together in
// the same draw. First is always less than Second.
type PairCount struct {
	// First is the smaller number of the pair.
	First int `json:"first"`

	// Second is the larger number of the pair.
	Second int `json:"second"`

	// Count is how many draws contained both numbers.
	Count int `json:"count"`
}

// FrequencyStats aggregates number statistics over a set of stored draws.
// It is computed by the stats package and rendered by report writers.
type FrequencyStats struct {
	// TotalDraws is the number of draws the statistics cover.
	TotalDraws int `json:"total_draws"`

	// NumberCounts maps every ball number (1-45) to its appearance
	// count among main numbers. Numbers that never appeared map to zero.
	NumberCounts map[int]int `json:"number_counts"`

	// BonusCounts maps every ball number (1-45) to its appearance
	// count as the bonus number.
	BonusCounts map[int]int `json:"bonus_counts"`

	// HotNumbers lists the ten most frequently drawn numbers,
	// most frequent first.
	HotNumbers []NumberCount `json:"hot_numbers"`

	// ColdNumbers lists the ten least frequently drawn numbers,
	// least frequent last.
	ColdNumbers []NumberCount `json:"cold_numbers"`

	// Ranges buckets all drawn main numbers into decade ranges.
	// Keys match RangeLabels.
	Ranges map[string]int `json:"ranges"`

	// TopPairs lists the ten number pairs that appeared together most
	// often, most frequent first.
	TopPairs []PairCount `json:"top_pairs,omitempty"`

	// Recent holds the most recent draws, newest first, for trend display.
	Recent []Draw `json:"recent,omitempty"`
}

// HistoryStats aggregates number statistics over locally generated sets.
type HistoryStats struct {
	// TotalSets is the number of generated sets the statistics cover.
	TotalSets int `json:"total_sets"`

	// NumberCounts maps each picked number to how often it was generated.
	NumberCounts map[int]int `json:"number_counts"`

	// MostCommon lists the ten most frequently generated numbers.
	MostCommon []NumberCount `json:"most_common"`

	// LeastCommon lists the ten least frequently generated numbers.
	LeastCommon []NumberCount `json:"least_common"`
}
