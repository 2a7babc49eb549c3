// Package stats computes draw statistics for number generation and
// reporting.
//
// The Analyzer works on a slice of stored draws, newest first, the order
// the database hands them out in. It produces appearance counts per ball
// number, hot and cold top-ten lists, decade-range distributions, pair
// frequencies, and a recent-draw trend. A separate check compares a
// picked set against every analyzed draw and collects the rounds where
// it would have won a prize.
//
// Design decision: The analyzer takes draws as a plain slice instead of
// holding a database handle. Commands decide the window (all draws or
// the last N) by choosing what to load; the analyzer stays a pure
// computation that tests can feed directly.
package stats
