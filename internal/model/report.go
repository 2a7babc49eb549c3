package model

import "time"

// Report is the top-level container handed to report writers. Each
// command fills in the sections relevant to it and leaves the rest nil;
// writers render only the sections that are present.
//
// Design decision: We use a single container with optional sections
// rather than one writer interface per result type because it keeps the
// writer interface small and lets commands combine sections (generate
// output plus the stats that informed it) in one document.
type Report struct {
	// GeneratedAt is when the report was assembled.
	GeneratedAt time.Time `json:"generated_at"`

	// Picks holds generated number sets.
	Picks []Pick `json:"picks,omitempty"`

	// Stats holds frequency statistics over stored draws.
	Stats *FrequencyStats `json:"stats,omitempty"`

	// Winnings holds the results of checking sets against all stored
	// draws, one entry per checked set.
	Winnings []WinningsReport `json:"winnings,omitempty"`

	// Sync holds the outcome of a synchronization run.
	Sync *SyncReport `json:"sync,omitempty"`

	// Draws holds stored draws for listing, newest first.
	Draws []Draw `json:"draws,omitempty"`

	// Ticket holds a decoded ticket and its check result.
	Ticket *TicketCheck `json:"ticket,omitempty"`

	// History holds statistics over locally generated sets.
	History *HistoryStats `json:"history,omitempty"`
}

// NewReport creates an empty report stamped with the current time.
func NewReport() *Report {
	return &Report{GeneratedAt: time.Now()}
}
