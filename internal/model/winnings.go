package model

// WinningsReport is the result of checking one number set against every
// stored draw. Only draws with three or more matches are listed; those
// are the rounds where the set would have won a prize.
type WinningsReport struct {
	// Numbers is the checked set, sorted ascending.
	Numbers []int `json:"numbers"`

	// TotalDraws is how many stored draws were checked.
	TotalDraws int `json:"total_draws"`

	// Hits lists the draws where the set reached a prize rank,
	// newest round first.
	Hits []MatchResult `json:"hits,omitempty"`
}

// WonAnything reports whether the set reached a prize rank in any draw.
func (w *WinningsReport) WonAnything() bool {
	return len(w.Hits) > 0
}

// CountByRank tallies the hits per prize rank.
func (w *WinningsReport) CountByRank() map[Rank]int {
	counts := make(map[Rank]int, 5)
	for _, hit := range w.Hits {
		counts[hit.Rank]++
	}
	return counts
}
