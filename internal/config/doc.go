// Package config provides configuration structures and utilities for klotto.
// It defines the main configuration options for number generation, draw
// synchronization, and report output preferences.
package config
