package model

// Rank represents the prize tier a number set reaches against a draw.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Rank int

const (
	// RankNone indicates fewer than three matched numbers. No prize.
	RankNone Rank = iota

	// RankFirst indicates all six main numbers matched.
	RankFirst

	// RankSecond indicates five main numbers plus the bonus number matched.
	RankSecond

	// RankThird indicates five main numbers matched without the bonus.
	RankThird

	// RankFourth indicates four main numbers matched.
	RankFourth

	// RankFifth indicates three main numbers matched.
	RankFifth
)

// String returns a human-readable representation of the prize rank.
func (r Rank) String() string {
	switch r {
	case RankFirst:
		return "1st"
	case RankSecond:
		return "2nd"
	case RankThird:
		return "3rd"
	case RankFourth:
		return "4th"
	case RankFifth:
		return "5th"
	default:
		return "none"
	}
}

// Won reports whether the rank pays out a prize.
func (r Rank) Won() bool {
	return r != RankNone
}

// DetermineRank maps a match count and bonus hit to the official
// Lotto 6/45 prize tiers: six matches win first prize, five matches
// win second with the bonus or third without it, four matches win
// fourth, and three matches win fifth.
func DetermineRank(matchCount int, bonusMatched bool) Rank {
	switch {
	case matchCount == 6:
		return RankFirst
	case matchCount == 5 && bonusMatched:
		return RankSecond
	case matchCount == 5:
		return RankThird
	case matchCount == 4:
		return RankFourth
	case matchCount == 3:
		return RankFifth
	default:
		return RankNone
	}
}

// RankInfo contains metadata about a prize tier: the winning condition,
// how the prize is funded, and the published odds of hitting it.
type RankInfo struct {
	Condition string
	Prize     string
	Odds      string
}

// rankInfoMapping maps prize ranks to their metadata.
// This centralized mapping keeps prize descriptions consistent across
// report writers.
var rankInfoMapping = map[Rank]RankInfo{
	RankFirst: {
		Condition: "6 main numbers matched",
		Prize:     "Share of the prize pool (typically around 2 billion KRW)",
		Odds:      "1 in 8,145,060",
	},
	RankSecond: {
		Condition: "5 main numbers + bonus matched",
		Prize:     "Share of the prize pool (typically around 50 million KRW)",
		Odds:      "1 in 1,357,510",
	},
	RankThird: {
		Condition: "5 main numbers matched",
		Prize:     "Share of the prize pool (typically around 1.5 million KRW)",
		Odds:      "1 in 35,724",
	},
	RankFourth: {
		Condition: "4 main numbers matched",
		Prize:     "Fixed 50,000 KRW",
		Odds:      "1 in 733",
	},
	RankFifth: {
		Condition: "3 main numbers matched",
		Prize:     "Fixed 5,000 KRW",
		Odds:      "1 in 45",
	},
}

// GetRankInfo returns the prize metadata for a rank.
// Returns a zero-prize RankInfo for RankNone or unknown ranks.
func GetRankInfo(r Rank) RankInfo {
	if info, ok := rankInfoMapping[r]; ok {
		return info
	}
	return RankInfo{
		Condition: "fewer than 3 main numbers matched",
		Prize:     "No prize",
		Odds:      "-",
	}
}
