package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/twbeatles/klotto-generator/internal/model"
)

// Default configuration values.
// These values reflect the Lotto 6/45 game rules and the Dhlottery API's
// tolerance for automated clients.
const (
	// DefaultSets is the number of sets generated when no count is given.
	// Five sets match one standard paper ticket, which holds five games.
	DefaultSets = 5

	// MaxSets caps how many sets one generate run may produce. The cap
	// keeps output readable and prevents accidental huge history growth
	// from a mistyped count.
	MaxSets = 20

	// MaxFixedNumbers caps how many numbers can be pinned into every
	// generated set. Pinning all six would leave nothing to generate.
	MaxFixedNumbers = 5

	// DefaultStrategy is the generation strategy used when none is given.
	// Hot weighting favors frequently drawn numbers, which is what most
	// users reach for first.
	DefaultStrategy = "hot"

	// DefaultTimeout is the per-request timeout against the Dhlottery API.
	// The API usually answers in well under a second; 10 seconds leaves
	// room for slow mobile connections without hanging a sync forever.
	DefaultTimeout = 10 * time.Second

	// DefaultFetchDelay is the pause between consecutive API requests.
	// This is a politeness setting: Dhlottery serves the public and a
	// sync run can ask for hundreds of rounds in one go.
	DefaultFetchDelay = 200 * time.Millisecond

	// DefaultSyncWorkers is the number of concurrent fetches during an
	// incremental sync. A small number keeps the load on Dhlottery
	// negligible while still making a long catch-up noticeably faster.
	DefaultSyncWorkers = 4

	// DefaultFailureLimit is how many consecutive fetch failures a
	// backfill tolerates before concluding it has walked past the
	// newest published round.
	DefaultFailureLimit = 3

	// DefaultMaxHistory caps the number of generated sets kept in the
	// local history file. Old entries are dropped first.
	DefaultMaxHistory = 500

	// DefaultRecentTrend is how many of the newest draws the stats
	// command shows as the recent trend.
	DefaultRecentTrend = 10

	// DefaultHistoryLimit is how many history entries are listed by default.
	DefaultHistoryLimit = 50

	// DefaultDrawsLimit is how many stored draws are listed by default.
	DefaultDrawsLimit = 10

	// AppName is the application name used for XDG directory paths.
	AppName = "klotto"
)

// Config holds all configuration options for klotto.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., GenerateConfig, SyncConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
// If the configuration grows significantly, consider refactoring into sub-structs.
type Config struct {
	// Sets is how many number sets to generate in one run (1 to MaxSets).
	Sets int

	// Strategy selects the generation weighting: "hot", "cold", "mixed",
	// or "random". Strategies other than random require stored draws.
	Strategy string

	// Balance enables the odd/even balance filter during generation.
	// Balanced sets avoid all-odd and all-even combinations.
	Balance bool

	// LimitConsecutive rejects sets with more than two consecutive
	// number pairs (e.g. 5-6-7-8 has three pairs and is rejected).
	LimitConsecutive bool

	// CheckHistory rejects sets that were already generated before,
	// using the local history file.
	CheckHistory bool

	// SaveHistory appends generated sets to the local history file.
	SaveHistory bool

	// FixedNumbers are pinned into every generated set (at most
	// MaxFixedNumbers of them).
	FixedNumbers []int

	// ExcludeNumbers never appear in generated sets.
	ExcludeNumbers []int

	// Profile is the name of a generation profile from the config file.
	// When set, the profile's values are applied before CLI flags.
	Profile string

	// Timeout is the per-request timeout against the Dhlottery API.
	Timeout time.Duration

	// FetchDelay is the pause between consecutive API requests during
	// sync and backfill runs.
	FetchDelay time.Duration

	// SyncWorkers is the number of concurrent fetches during an
	// incremental sync. Backfill always runs sequentially because its
	// stop condition depends on request order.
	SyncWorkers int

	// FailureLimit is how many consecutive fetch failures end a backfill.
	FailureLimit int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .klotto in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Profiles holds generation profiles loaded from the config file.
	// This is populated by LoadConfigFile and used by the generate command.
	Profiles *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// DBDir is the directory path for storing the SQLite draw database.
	// Defaults to the XDG data directory (~/.local/share/klotto on Linux).
	DBDir string

	// DataDir is the directory for the JSON history and favorites files.
	// Defaults to the XDG data directory, same as DBDir.
	DataDir string

	// MaxHistory caps the number of generated sets kept in history.
	MaxHistory int
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., set count, timeout).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Sets:             DefaultSets,
		Strategy:         DefaultStrategy,
		Balance:          true,
		LimitConsecutive: true,
		CheckHistory:     true,
		SaveHistory:      true,
		Timeout:          DefaultTimeout,
		FetchDelay:       DefaultFetchDelay,
		SyncWorkers:      DefaultSyncWorkers,
		FailureLimit:     DefaultFailureLimit,
		MaxHistory:       DefaultMaxHistory,
	}
}

// XDGDataDir returns the XDG data directory for klotto.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/klotto
// On macOS: ~/Library/Application Support/klotto
// On Windows: %LOCALAPPDATA%\klotto
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for klotto.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/klotto
// On macOS: ~/Library/Application Support/klotto
// On Windows: %APPDATA%\klotto
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for klotto.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.cache/klotto
// On macOS: ~/Library/Caches/klotto
// On Windows: %LOCALAPPDATA%\klotto\cache
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any work begins.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Sets <= 0 {
		return ErrInvalidSets
	}
	if c.Sets > MaxSets {
		return ErrTooManySets
	}

	switch c.Strategy {
	case "hot", "cold", "mixed", "random":
	default:
		return ErrInvalidStrategy
	}

	if len(c.FixedNumbers) > MaxFixedNumbers {
		return ErrTooManyFixedNumbers
	}
	if err := validateNumberList(c.FixedNumbers); err != nil {
		return ErrInvalidFixedNumber
	}
	if err := validateNumberList(c.ExcludeNumbers); err != nil {
		return ErrInvalidExcludeNumber
	}
	for _, f := range c.FixedNumbers {
		for _, e := range c.ExcludeNumbers {
			if f == e {
				return ErrFixedExcludeConflict
			}
		}
	}

	// Excluding too many numbers leaves fewer than six candidates.
	if model.MaxNumber-len(c.ExcludeNumbers) < model.NumbersPerSet {
		return ErrTooManyExcluded
	}

	// Timeout must be positive; zero timeout would cause immediate failures.
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// SyncWorkers must be positive; zero would mean no fetching at all.
	if c.SyncWorkers <= 0 {
		return ErrInvalidSyncWorkers
	}

	// FetchDelay must be non-negative.
	if c.FetchDelay < 0 {
		return ErrInvalidFetchDelay
	}

	if c.FailureLimit <= 0 {
		return ErrInvalidFailureLimit
	}

	if c.MaxHistory <= 0 {
		return ErrInvalidMaxHistory
	}

	// JSONReport and MarkdownReport are mutually exclusive.
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}

// validateNumberList checks that every number is within the ball range
// and appears at most once.
func validateNumberList(numbers []int) error {
	seen := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		if n < model.MinNumber || n > model.MaxNumber {
			return model.ErrNumberOutOfRange
		}
		if seen[n] {
			return model.ErrDuplicateNumber
		}
		seen[n] = true
	}
	return nil
}
