package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrInvalidSets is returned when the set count is zero or negative.
	ErrInvalidSets = errors.New("invalid set count: must be positive")

	// ErrTooManySets is returned when the set count exceeds MaxSets.
	ErrTooManySets = errors.New("too many sets: at most 20 per run")

	// ErrInvalidStrategy is returned when the strategy is not one of
	// "hot", "cold", "mixed", or "random".
	ErrInvalidStrategy = errors.New("invalid strategy: must be hot, cold, mixed, or random")

	// ErrTooManyFixedNumbers is returned when more than MaxFixedNumbers
	// numbers are pinned. Pinning all six would leave nothing to generate.
	ErrTooManyFixedNumbers = errors.New("too many fixed numbers: at most 5")

	// ErrInvalidFixedNumber is returned when a fixed number is outside
	// 1-45 or appears more than once.
	ErrInvalidFixedNumber = errors.New("invalid fixed number: must be unique and within 1-45")

	// ErrInvalidExcludeNumber is returned when an excluded number is
	// outside 1-45 or appears more than once.
	ErrInvalidExcludeNumber = errors.New("invalid exclude number: must be unique and within 1-45")

	// ErrFixedExcludeConflict is returned when the same number is both
	// fixed and excluded.
	ErrFixedExcludeConflict = errors.New("conflicting numbers: a number cannot be both fixed and excluded")

	// ErrTooManyExcluded is returned when the exclusions leave fewer
	// than six candidate numbers.
	ErrTooManyExcluded = errors.New("too many excluded numbers: fewer than six candidates remain")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidSyncWorkers is returned when the sync worker count is not
	// positive. Zero workers would mean no fetching at all.
	ErrInvalidSyncWorkers = errors.New("invalid sync workers: must be positive")

	// ErrInvalidFetchDelay is returned when the fetch delay is negative.
	// A negative delay is invalid; use 0 for no delay between requests.
	ErrInvalidFetchDelay = errors.New("invalid fetch delay: must be non-negative")

	// ErrInvalidFailureLimit is returned when the backfill failure limit
	// is not positive. The backfill needs at least one failure to stop on.
	ErrInvalidFailureLimit = errors.New("invalid failure limit: must be positive")

	// ErrInvalidMaxHistory is returned when the history cap is not positive.
	ErrInvalidMaxHistory = errors.New("invalid max history: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
