package generator

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"github.com/twbeatles/klotto-generator/internal/model"
)

const (
	// maxGenerateAttempts bounds the retry loop for a single set.
	// After this many rejected candidates the last one is kept anyway,
	// so generation always terminates.
	maxGenerateAttempts = 100

	// maxConsecutivePairs is the highest number of adjacent number
	// pairs (like 7,8) allowed in a set when limiting is enabled.
	maxConsecutivePairs = 2

	// maxOddNumbers and minOddNumbers bound the odd count per set in
	// balance mode.
	maxOddNumbers = 4
	minOddNumbers = 2
)

// ErrNotEnoughCandidates is returned when the fixed and excluded numbers
// leave too few candidates to fill a set, or when the balance filter
// exhausts the candidate pool on every attempt.
var ErrNotEnoughCandidates = errors.New("not enough candidate numbers to fill a set")

// HistoryChecker reports whether a candidate set was generated before.
// The history store implements it; generation rejects repeats when a
// checker is installed.
type HistoryChecker interface {
	IsDuplicate(numbers []int) bool
}

// Generator produces lotto number sets by weighted random selection.
//
// Design decision: The generator receives draw frequencies as a plain
// map instead of querying the database itself. This keeps it free of
// storage concerns and makes tests trivial: hand it a map and a seeded
// random source and the output is fully deterministic.
type Generator struct {
	// counts maps each ball number to how many stored draws it
	// appeared in. Empty means no statistics are available and every
	// strategy degrades to uniform sampling.
	counts map[int]int

	// maxCount is the highest value in counts, used by the cold
	// strategy to invert weights.
	maxCount int

	// rng is the random source for candidate selection.
	rng *rand.Rand

	// history rejects sets that were generated before. Nil disables
	// the check.
	history HistoryChecker
}

// Option configures a Generator.
type Option func(*Generator)

// WithFrequency installs per-number appearance counts from stored draws.
// Without it the generator samples uniformly.
func WithFrequency(counts map[int]int) Option {
	return func(g *Generator) {
		g.counts = counts
	}
}

// WithRand sets a custom random source. Tests use a fixed seed.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithHistory installs a duplicate check against previously generated
// sets.
func WithHistory(history HistoryChecker) Option {
	return func(g *Generator) {
		g.history = history
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // statistical sampling, not security
	}

	for _, opt := range opts {
		opt(g)
	}

	for _, count := range g.counts {
		if count > g.maxCount {
			g.maxCount = count
		}
	}

	return g
}

// Params controls a single generation run.
type Params struct {
	// Strategy selects the weighting scheme.
	Strategy Strategy

	// Balance keeps the odd count per set between two and four.
	// The mixed strategy ignores it and applies its own rotation.
	Balance bool

	// LimitConsecutive rejects sets with more than two adjacent
	// number pairs.
	LimitConsecutive bool

	// Fixed numbers are always included in every set.
	Fixed []int

	// Exclude numbers never appear in any set.
	Exclude []int
}

// mixedCycle is the per-set rotation applied by StrategyMixed.
var mixedCycle = []struct {
	preferHot bool
	balance   bool
}{
	{preferHot: true, balance: true},
	{preferHot: false, balance: true},
	{preferHot: true, balance: false},
}

// effective resolves the weighting scheme for the set at the given index.
func (p Params) effective(setIndex int) (preferHot, balance, uniform bool) {
	switch p.Strategy {
	case StrategyCold:
		return false, p.Balance, false
	case StrategyMixed:
		entry := mixedCycle[setIndex%len(mixedCycle)]
		return entry.preferHot, entry.balance, false
	case StrategyRandom:
		return false, false, true
	default:
		return true, p.Balance, false
	}
}

// validate rejects parameter combinations that cannot produce a set.
func (p Params) validate() error {
	if len(p.Fixed) > model.NumbersPerSet {
		return ErrNotEnoughCandidates
	}
	for i, n := range p.Fixed {
		if n < model.MinNumber || n > model.MaxNumber {
			return model.ErrNumberOutOfRange
		}
		if containsInt(p.Fixed[:i], n) {
			return model.ErrDuplicateNumber
		}
	}
	for _, n := range p.Exclude {
		if n < model.MinNumber || n > model.MaxNumber {
			return model.ErrNumberOutOfRange
		}
	}

	available := 0
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		if containsInt(p.Fixed, n) || containsInt(p.Exclude, n) {
			continue
		}
		available++
	}
	if available < model.NumbersPerSet-len(p.Fixed) {
		return ErrNotEnoughCandidates
	}
	return nil
}

// GenerateSet produces one sorted set of six numbers.
func (g *Generator) GenerateSet(params Params) ([]int, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	preferHot, balance, uniform := params.effective(0)
	return g.generateValid(preferHot, balance, uniform, params, nil)
}

// GenerateSets produces the given number of sorted sets. A count below
// one yields an empty result.
//
// Sets within one run are kept distinct from each other whenever a
// history checker is installed, matching the duplicate check against
// past runs.
func (g *Generator) GenerateSets(count int, params Params) ([][]int, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	sets := make([][]int, 0, count)
	for i := 0; i < count; i++ {
		preferHot, balance, uniform := params.effective(i)
		numbers, err := g.generateValid(preferHot, balance, uniform, params, sets)
		if err != nil {
			return nil, err
		}
		sets = append(sets, numbers)
	}
	return sets, nil
}

// generateValid runs the retry loop around a single set.
//
// Rejections for consecutive runs or duplicates are stylistic: when every
// attempt is rejected, the last complete candidate is kept so generation
// cannot loop forever. Incomplete candidates (the balance filter drained
// the pool) are never kept.
func (g *Generator) generateValid(preferHot, balance, uniform bool, params Params, seen [][]int) ([]int, error) {
	var numbers []int
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		numbers = g.generateOnce(preferHot, balance, uniform, params)
		if g.acceptable(numbers, params, seen) {
			return numbers, nil
		}
	}

	if len(numbers) != model.NumbersPerSet {
		return nil, ErrNotEnoughCandidates
	}
	return numbers, nil
}

// acceptable applies the post-generation constraints.
func (g *Generator) acceptable(numbers []int, params Params, seen [][]int) bool {
	if len(numbers) != model.NumbersPerSet {
		return false
	}
	if params.LimitConsecutive && consecutivePairs(numbers) > maxConsecutivePairs {
		return false
	}
	if g.history != nil {
		if g.history.IsDuplicate(numbers) {
			return false
		}
		for _, s := range seen {
			if equalIntSets(s, numbers) {
				return false
			}
		}
	}
	return true
}

// generateOnce builds one candidate set. The result may be shorter than
// six numbers when the balance filter drains the candidate pool.
func (g *Generator) generateOnce(preferHot, balance, uniform bool, params Params) []int {
	if uniform || len(g.counts) == 0 {
		return g.randomSet(params.Fixed, params.Exclude)
	}
	return g.weightedSet(preferHot, balance, params.Fixed, params.Exclude)
}

// randomSet samples the remaining slots uniformly.
func (g *Generator) randomSet(fixed, exclude []int) []int {
	available := make([]int, 0, model.MaxNumber)
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		if containsInt(fixed, n) || containsInt(exclude, n) {
			continue
		}
		available = append(available, n)
	}

	g.rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	remaining := model.NumbersPerSet - len(fixed)
	result := make([]int, 0, model.NumbersPerSet)
	result = append(result, fixed...)
	result = append(result, available[:remaining]...)
	sort.Ints(result)
	return result
}

// candidate is a ball number with its selection weight.
type candidate struct {
	number int
	weight int
}

// weightedSet fills the remaining slots by roulette selection.
func (g *Generator) weightedSet(preferHot, balance bool, fixed, exclude []int) []int {
	candidates := make([]candidate, 0, model.MaxNumber)
	for n := model.MinNumber; n <= model.MaxNumber; n++ {
		if containsInt(fixed, n) || containsInt(exclude, n) {
			continue
		}
		weight := g.counts[n] + 1
		if !preferHot {
			weight = g.maxCount - g.counts[n] + 1
		}
		candidates = append(candidates, candidate{number: n, weight: weight})
	}

	result := make([]int, 0, model.NumbersPerSet)
	result = append(result, fixed...)

	for len(result) < model.NumbersPerSet && len(candidates) > 0 {
		pool := candidates
		if balance {
			pool = filterBalanced(candidates, result)
		}
		if len(pool) == 0 {
			break
		}

		picked := g.spin(pool)
		result = append(result, picked)
		candidates = removeCandidate(candidates, picked)
	}

	sort.Ints(result)
	return result
}

// filterBalanced bars candidates that would break the odd/even balance.
// An odd number is barred once four odds are chosen. An even number is
// barred when filling the remaining slots entirely with odds could no
// longer reach two odds.
func filterBalanced(candidates []candidate, chosen []int) []candidate {
	remainingSlots := model.NumbersPerSet - len(chosen)
	currentOdd := 0
	for _, n := range chosen {
		if n%2 == 1 {
			currentOdd++
		}
	}

	valid := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		odd := c.number%2 == 1
		if odd && currentOdd >= maxOddNumbers {
			continue
		}
		if !odd && currentOdd+(remainingSlots-1) < minOddNumbers {
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

// spin picks one candidate by roulette selection over the weights.
func (g *Generator) spin(pool []candidate) int {
	total := 0
	for _, c := range pool {
		total += c.weight
	}
	if total <= 0 {
		return pool[g.rng.Intn(len(pool))].number
	}

	r := g.rng.Float64() * float64(total)
	cumulative := 0.0
	for _, c := range pool {
		cumulative += float64(c.weight)
		if cumulative >= r {
			return c.number
		}
	}
	return pool[len(pool)-1].number
}

// removeCandidate drops the picked number from the pool.
func removeCandidate(candidates []candidate, number int) []candidate {
	remaining := make([]candidate, 0, len(candidates)-1)
	for _, c := range candidates {
		if c.number != number {
			remaining = append(remaining, c)
		}
	}
	return remaining
}

// consecutivePairs counts adjacent number pairs in a sorted set.
// The set 1,2,3,10,20,30 has two pairs: (1,2) and (2,3).
func consecutivePairs(numbers []int) int {
	pairs := 0
	for i := 0; i < len(numbers)-1; i++ {
		if numbers[i+1] == numbers[i]+1 {
			pairs++
		}
	}
	return pairs
}

// containsInt reports whether the slice contains the value.
func containsInt(values []int, target int) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// equalIntSets reports whether two sorted sets hold the same numbers.
func equalIntSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
