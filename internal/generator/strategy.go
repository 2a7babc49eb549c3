package generator

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned when a strategy name is not recognized.
var ErrUnknownStrategy = errors.New("unknown generation strategy")

// Strategy selects how candidate numbers are weighted during generation.
type Strategy int

const (
	// StrategyHot favors numbers that were drawn frequently.
	StrategyHot Strategy = iota

	// StrategyCold favors numbers that were drawn rarely.
	StrategyCold

	// StrategyMixed rotates per set: hot with balance, cold with
	// balance, then hot without balance.
	StrategyMixed

	// StrategyRandom ignores draw statistics and samples uniformly.
	StrategyRandom
)

// String returns the name of the strategy as used on the command line.
func (s Strategy) String() string {
	switch s {
	case StrategyHot:
		return "hot"
	case StrategyCold:
		return "cold"
	case StrategyMixed:
		return "mixed"
	case StrategyRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a command line name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "hot":
		return StrategyHot, nil
	case "cold":
		return StrategyCold, nil
	case "mixed":
		return StrategyMixed, nil
	case "random":
		return StrategyRandom, nil
	default:
		return StrategyHot, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
