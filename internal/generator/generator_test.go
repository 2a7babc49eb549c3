package generator

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/twbeatles/klotto-generator/internal/model"
)

// testCounts returns draw frequencies with a clear hot/cold split.
func testCounts() map[int]int {
	counts := make(map[int]int, model.MaxNumber)
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		counts[n] = n % 7 // arbitrary but uneven
	}
	counts[7] = 30
	counts[43] = 0
	return counts
}

// seededGenerator returns a deterministic generator for tests.
func seededGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()

	opts = append([]Option{
		WithFrequency(testCounts()),
		WithRand(rand.New(rand.NewSource(42))), //nolint:gosec // deterministic test seed
	}, opts...)
	return NewGenerator(opts...)
}

// assertValidSet fails unless numbers is a complete, sorted, distinct
// set within the ball number range.
func assertValidSet(t *testing.T, numbers []int) {
	t.Helper()

	if len(numbers) != model.NumbersPerSet {
		t.Fatalf("set has %d numbers, expected %d: %v", len(numbers), model.NumbersPerSet, numbers)
	}
	if !sort.IntsAreSorted(numbers) {
		t.Errorf("set is not sorted: %v", numbers)
	}
	for i, n := range numbers {
		if n < model.MinNumber || n > model.MaxNumber {
			t.Errorf("number %d is out of range: %v", n, numbers)
		}
		if i > 0 && numbers[i-1] == n {
			t.Errorf("duplicate number %d: %v", n, numbers)
		}
	}
}

// alwaysDuplicate reports every set as already generated.
type alwaysDuplicate struct{}

func (alwaysDuplicate) IsDuplicate([]int) bool { return true }

// TestGeneratorGenerateSet tests single set generation.
func TestGeneratorGenerateSet(t *testing.T) {
	t.Parallel()

	t.Run("produces a complete sorted set", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t)
		numbers, err := g.GenerateSet(Params{Strategy: StrategyHot, Balance: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertValidSet(t, numbers)
	})

	t.Run("includes fixed numbers and omits excluded ones", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t)
		params := Params{
			Strategy: StrategyHot,
			Fixed:    []int{7, 14},
			Exclude:  []int{1, 2, 3},
		}

		for i := 0; i < 20; i++ {
			numbers, err := g.GenerateSet(params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertValidSet(t, numbers)

			if !containsInt(numbers, 7) || !containsInt(numbers, 14) {
				t.Errorf("fixed numbers missing: %v", numbers)
			}
			for _, banned := range params.Exclude {
				if containsInt(numbers, banned) {
					t.Errorf("excluded number %d present: %v", banned, numbers)
				}
			}
		}
	})

	t.Run("same seed produces the same sets", func(t *testing.T) {
		t.Parallel()

		params := Params{Strategy: StrategyCold, Balance: true}
		first := seededGenerator(t)
		second := seededGenerator(t)

		for i := 0; i < 5; i++ {
			a, err := first.GenerateSet(params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			b, err := second.GenerateSet(params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalIntSets(a, b) {
				t.Errorf("set %d differs: %v vs %v", i, a, b)
			}
		}
	})

	t.Run("balance mode keeps two to four odd numbers", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t)
		for i := 0; i < 50; i++ {
			numbers, err := g.GenerateSet(Params{Strategy: StrategyHot, Balance: true})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			assertValidSet(t, numbers)

			odds := 0
			for _, n := range numbers {
				if n%2 == 1 {
					odds++
				}
			}
			if odds < minOddNumbers || odds > maxOddNumbers {
				t.Errorf("odd count %d outside %d..%d: %v", odds, minOddNumbers, maxOddNumbers, numbers)
			}
		}
	})

	t.Run("works without frequency data", func(t *testing.T) {
		t.Parallel()

		g := NewGenerator(WithRand(rand.New(rand.NewSource(7)))) //nolint:gosec // deterministic test seed
		numbers, err := g.GenerateSet(Params{Strategy: StrategyHot, Balance: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertValidSet(t, numbers)
	})

	t.Run("duplicate rejection falls back to the last candidate", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t, WithHistory(alwaysDuplicate{}))
		numbers, err := g.GenerateSet(Params{Strategy: StrategyHot})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertValidSet(t, numbers)
	})
}

// TestGeneratorParamValidation tests rejection of impossible parameters.
func TestGeneratorParamValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{
			name:    "fixed number out of range",
			params:  Params{Fixed: []int{46}},
			wantErr: model.ErrNumberOutOfRange,
		},
		{
			name:    "excluded number out of range",
			params:  Params{Exclude: []int{0}},
			wantErr: model.ErrNumberOutOfRange,
		},
		{
			name:    "duplicate fixed number",
			params:  Params{Fixed: []int{5, 5}},
			wantErr: model.ErrDuplicateNumber,
		},
		{
			name:    "too many fixed numbers",
			params:  Params{Fixed: []int{1, 2, 3, 4, 5, 6, 7}},
			wantErr: ErrNotEnoughCandidates,
		},
		{
			name:    "excluding almost everything",
			params:  Params{Exclude: rangeInts(1, 40)},
			wantErr: ErrNotEnoughCandidates,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := seededGenerator(t)
			if _, err := g.GenerateSet(tt.params); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestGeneratorBalanceExhaustion tests the balance filter draining the pool.
func TestGeneratorBalanceExhaustion(t *testing.T) {
	t.Parallel()

	// With every even number excluded, balance mode cannot finish a set:
	// after four odds the filter bars all remaining candidates.
	evens := make([]int, 0, 22)
	for n := 2; n <= 44; n += 2 {
		evens = append(evens, n)
	}

	t.Run("weighted generation reports the dead end", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t)
		params := Params{Strategy: StrategyHot, Balance: true, Exclude: evens}
		if _, err := g.GenerateSet(params); !errors.Is(err, ErrNotEnoughCandidates) {
			t.Errorf("expected ErrNotEnoughCandidates, got %v", err)
		}
	})

	t.Run("uniform generation ignores balance and succeeds", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t)
		params := Params{Strategy: StrategyRandom, Exclude: evens}
		numbers, err := g.GenerateSet(params)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertValidSet(t, numbers)
		for _, n := range numbers {
			if n%2 == 0 {
				t.Errorf("excluded even number %d present: %v", n, numbers)
			}
		}
	})
}

// TestGeneratorGenerateSets tests multi-set generation.
func TestGeneratorGenerateSets(t *testing.T) {
	t.Parallel()

	t.Run("produces the requested number of sets", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t)
		sets, err := g.GenerateSets(5, Params{Strategy: StrategyMixed})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sets) != 5 {
			t.Fatalf("got %d sets, expected 5", len(sets))
		}
		for _, numbers := range sets {
			assertValidSet(t, numbers)
		}
	})

	t.Run("count below one yields no sets", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t)
		sets, err := g.GenerateSets(0, Params{Strategy: StrategyHot})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sets) != 0 {
			t.Errorf("got %d sets, expected none", len(sets))
		}
	})

	t.Run("invalid params fail before generating", func(t *testing.T) {
		t.Parallel()

		g := seededGenerator(t)
		if _, err := g.GenerateSets(3, Params{Fixed: []int{99}}); !errors.Is(err, model.ErrNumberOutOfRange) {
			t.Errorf("expected ErrNumberOutOfRange, got %v", err)
		}
	})
}

// TestConsecutivePairs tests the adjacent pair counter.
func TestConsecutivePairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		numbers []int
		want    int
	}{
		{name: "no pairs", numbers: []int{1, 10, 20, 30, 40, 45}, want: 0},
		{name: "one pair", numbers: []int{1, 2, 10, 20, 30, 40}, want: 1},
		{name: "run of three makes two pairs", numbers: []int{1, 2, 3, 10, 20, 30}, want: 2},
		{name: "two separate pairs", numbers: []int{1, 2, 10, 11, 20, 30}, want: 2},
		{name: "fully consecutive", numbers: []int{1, 2, 3, 4, 5, 6}, want: 5},
		{name: "empty", numbers: nil, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := consecutivePairs(tt.numbers); got != tt.want {
				t.Errorf("consecutivePairs(%v) = %d, expected %d", tt.numbers, got, tt.want)
			}
		})
	}
}

// rangeInts returns the integers from low to high inclusive.
func rangeInts(low, high int) []int {
	values := make([]int, 0, high-low+1)
	for n := low; n <= high; n++ {
		values = append(values, n)
	}
	return values
}
