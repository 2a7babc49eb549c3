package model

import (
	"errors"
	"fmt"
	"sort"
)

// Lotto 6/45 game rules. Every drawing selects six main numbers and one
// bonus number from the range 1 to 45.
const (
	// MinNumber is the smallest ball number in Lotto 6/45.
	MinNumber = 1

	// MaxNumber is the largest ball number in Lotto 6/45.
	MaxNumber = 45

	// NumbersPerSet is the count of main numbers in a draw or a picked set.
	NumbersPerSet = 6
)

// Validation errors for draws and number sets.
//
// Design decision: We use sentinel errors (errors.New) rather than custom
// error types because callers only need to distinguish error categories
// with errors.Is, not extract structured data from them.
var (
	// ErrInvalidDrawNo is returned when a draw round is zero or negative.
	ErrInvalidDrawNo = errors.New("draw round must be positive")

	// ErrInvalidNumberCount is returned when a set does not contain
	// exactly six numbers.
	ErrInvalidNumberCount = errors.New("number set must contain exactly six numbers")

	// ErrNumberOutOfRange is returned when a ball number falls outside 1-45.
	ErrNumberOutOfRange = errors.New("ball number out of range 1-45")

	// ErrDuplicateNumber is returned when the same ball number appears
	// more than once in a set.
	ErrDuplicateNumber = errors.New("duplicate ball number in set")

	// ErrInvalidBonus is returned when the bonus number is out of range
	// or collides with one of the main numbers.
	ErrInvalidBonus = errors.New("invalid bonus number")
)

// Draw is a single official Lotto 6/45 drawing as published by
// Dhlottery. Numbers holds the six main numbers in ascending order.
//
// Prize fields are optional: rows recorded before prize data was
// collected carry zero values there.
type Draw struct {
	// DrawNo is the official draw round. Round 1 was held on 2002-12-07.
	DrawNo int `json:"draw_no"`

	// Date is the drawing date in YYYY-MM-DD form.
	Date string `json:"date"`

	// Numbers holds the six winning main numbers sorted ascending.
	Numbers []int `json:"numbers"`

	// Bonus is the bonus number. It never appears among Numbers.
	Bonus int `json:"bonus"`

	// FirstPrizeAmount is the first prize per winner in KRW.
	FirstPrizeAmount int64 `json:"first_prize_amount,omitempty"`

	// FirstPrizeWinners is the number of first prize winners.
	FirstPrizeWinners int `json:"first_prize_winners,omitempty"`

	// TotalSales is the total ticket sales of the round in KRW.
	TotalSales int64 `json:"total_sales,omitempty"`
}

// Normalize sorts the main numbers in place and then validates the
// draw. Rows loaded from external sources (the Dhlottery API, CSV
// imports) pass through here before being stored.
func (d *Draw) Normalize() error {
	sort.Ints(d.Numbers)
	return d.Validate()
}

// Validate checks the draw against Lotto 6/45 rules: a positive draw
// round, six unique in-range main numbers, and a bonus number that
// does not collide with them.
func (d *Draw) Validate() error {
	if d.DrawNo <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDrawNo, d.DrawNo)
	}
	if err := ValidateNumbers(d.Numbers); err != nil {
		return fmt.Errorf("draw %d: %w", d.DrawNo, err)
	}
	if d.Bonus < MinNumber || d.Bonus > MaxNumber {
		return fmt.Errorf("draw %d: %w: got %d", d.DrawNo, ErrInvalidBonus, d.Bonus)
	}
	if containsNumber(d.Numbers, d.Bonus) {
		return fmt.Errorf("draw %d: %w: %d appears among the main numbers", d.DrawNo, ErrInvalidBonus, d.Bonus)
	}
	return nil
}

// Match compares a picked set against the draw and reports the matched
// numbers, whether the bonus was hit, and the resulting prize rank.
// The picked set is not validated here; pass it through ValidateNumbers
// first if it comes from user input.
func (d *Draw) Match(numbers []int) MatchResult {
	matched := make([]int, 0, NumbersPerSet)
	for _, n := range numbers {
		if containsNumber(d.Numbers, n) {
			matched = append(matched, n)
		}
	}
	sort.Ints(matched)

	bonusMatched := containsNumber(numbers, d.Bonus)
	return MatchResult{
		DrawNo:       d.DrawNo,
		Date:         d.Date,
		Matched:      matched,
		MatchCount:   len(matched),
		BonusMatched: bonusMatched,
		Rank:         DetermineRank(len(matched), bonusMatched),
	}
}

// MatchResult is the outcome of comparing one picked set against one draw.
type MatchResult struct {
	// DrawNo is the round the set was compared against.
	DrawNo int `json:"draw_no"`

	// Date is the drawing date of that round, if known.
	Date string `json:"date,omitempty"`

	// Matched lists the picked numbers that appear in the draw, ascending.
	Matched []int `json:"matched"`

	// MatchCount is len(Matched).
	MatchCount int `json:"match_count"`

	// BonusMatched reports whether the draw's bonus number appears in the set.
	BonusMatched bool `json:"bonus_matched"`

	// Rank is the prize rank the set would have won, or RankNone.
	Rank Rank `json:"rank"`
}

// ValidateNumbers checks that numbers forms a valid set of six main
// numbers: exactly six values, each within 1-45, with no duplicates.
// Order does not matter.
func ValidateNumbers(numbers []int) error {
	if len(numbers) != NumbersPerSet {
		return fmt.Errorf("%w: got %d", ErrInvalidNumberCount, len(numbers))
	}
	seen := make(map[int]bool, NumbersPerSet)
	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("%w: got %d", ErrNumberOutOfRange, n)
		}
		if seen[n] {
			return fmt.Errorf("%w: %d", ErrDuplicateNumber, n)
		}
		seen[n] = true
	}
	return nil
}

// containsNumber reports whether n appears in numbers.
func containsNumber(numbers []int, n int) bool {
	for _, v := range numbers {
		if v == n {
			return true
		}
	}
	return false
}
