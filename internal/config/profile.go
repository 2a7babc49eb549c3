package config

import (
	"fmt"
	"time"
)

// Profile holds a named generation preset. Profiles let users keep
// several number-picking styles (their own numbers pinned, a cold-number
// experiment) in one config file and switch with --profile.
type Profile struct {
	// Sets overrides how many sets to generate.
	// If zero, the global set count is used.
	Sets int `yaml:"sets,omitempty"`

	// Strategy overrides the generation strategy
	// ("hot", "cold", "mixed", "random").
	Strategy string `yaml:"strategy,omitempty"`

	// Fixed are numbers pinned into every generated set.
	Fixed []int `yaml:"fixed,omitempty"`

	// Exclude are numbers that never appear in generated sets.
	Exclude []int `yaml:"exclude,omitempty"`

	// Balance overrides the odd/even balance filter.
	// Nil means the global setting is kept.
	Balance *bool `yaml:"balance,omitempty"`

	// LimitConsecutive overrides the consecutive-pair filter.
	// Nil means the global setting is kept.
	LimitConsecutive *bool `yaml:"limitConsecutive,omitempty"`
}

// File represents the structure of the .klotto configuration file.
type File struct {
	// DBDir is the directory holding the SQLite draw database.
	// Empty means the XDG data directory.
	DBDir string `yaml:"dbDir,omitempty"`

	// DataDir is the directory holding the history and favorites files.
	// Empty means the XDG data directory.
	DataDir string `yaml:"dataDir,omitempty"`

	// Timeout is the per-request timeout against the Dhlottery API,
	// in Go duration syntax ("10s", "1m30s").
	Timeout string `yaml:"timeout,omitempty"`

	// FetchDelay is the pause between consecutive API requests,
	// in Go duration syntax ("200ms").
	FetchDelay string `yaml:"fetchDelay,omitempty"`

	// SyncWorkers is the number of concurrent fetches during an
	// incremental sync. Zero means the built-in default.
	SyncWorkers int `yaml:"syncWorkers,omitempty"`

	// Profiles maps profile names to generation presets.
	Profiles map[string]Profile `yaml:"profiles,omitempty"`

	// Defaults contains the default preset applied to all profiles
	// unless overridden in the named profile.
	Defaults Profile `yaml:"defaults,omitempty"`
}

// ApplyFile copies the file-level settings (paths and HTTP tuning) onto
// the configuration. Only values the file actually sets are applied.
// Profile presets are not applied here; commands that generate numbers
// apply those separately so --profile can choose among them.
func (c *Config) ApplyFile(f *File) error {
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
	if f.DataDir != "" {
		c.DataDir = f.DataDir
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout in config file: %w", err)
		}
		c.Timeout = d
	}
	if f.FetchDelay != "" {
		d, err := time.ParseDuration(f.FetchDelay)
		if err != nil {
			return fmt.Errorf("invalid fetchDelay in config file: %w", err)
		}
		c.FetchDelay = d
	}
	if f.SyncWorkers != 0 {
		c.SyncWorkers = f.SyncWorkers
	}
	return nil
}

// GetProfile returns the preset for a profile name.
// It merges the named profile with the defaults.
func (cf *File) GetProfile(name string) Profile {
	// Start with defaults
	result := cf.Defaults

	// Override with the named profile if present
	if profile, ok := cf.Profiles[name]; ok {
		if profile.Sets != 0 {
			result.Sets = profile.Sets
		}
		if profile.Strategy != "" {
			result.Strategy = profile.Strategy
		}
		if len(profile.Fixed) > 0 {
			result.Fixed = profile.Fixed
		}
		if len(profile.Exclude) > 0 {
			result.Exclude = profile.Exclude
		}
		if profile.Balance != nil {
			result.Balance = profile.Balance
		}
		if profile.LimitConsecutive != nil {
			result.LimitConsecutive = profile.LimitConsecutive
		}
	}

	return result
}

// Apply copies the preset's values onto the configuration. Only values
// the preset actually sets are applied; everything else keeps its
// current value. CLI flags are applied after profiles, so explicit
// flags always win.
func (c *Config) Apply(p Profile) {
	if p.Sets != 0 {
		c.Sets = p.Sets
	}
	if p.Strategy != "" {
		c.Strategy = p.Strategy
	}
	if len(p.Fixed) > 0 {
		c.FixedNumbers = p.Fixed
	}
	if len(p.Exclude) > 0 {
		c.ExcludeNumbers = p.Exclude
	}
	if p.Balance != nil {
		c.Balance = *p.Balance
	}
	if p.LimitConsecutive != nil {
		c.LimitConsecutive = *p.LimitConsecutive
	}
}
