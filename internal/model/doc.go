// Package model defines the core data structures used throughout klotto.
//
// This package contains the following main types:
//   - Draw: An official Lotto 6/45 drawing with winning numbers and prize data
//   - Pick: A generated set of six numbers with its quality analysis
//   - FrequencyStats: Aggregate statistics computed over stored draws
//   - SyncReport: The outcome of a draw synchronization run
//   - Report: The top-level container handed to report writers
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (database, generator, stats, pipeline, report)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
