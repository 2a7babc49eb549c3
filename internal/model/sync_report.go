package model

import "time"

// SyncMode distinguishes the two ways draws are pulled from Dhlottery.
const (
	// SyncModeIncremental fetches only the rounds between the newest
	// stored draw and the estimated latest official round.
	SyncModeIncremental = "incremental"

	// SyncModeBackfill walks forward from the newest stored draw until
	// the API stops returning results.
	SyncModeBackfill = "backfill"
)

// SyncReport is the outcome of one draw synchronization run. Pipeline
// steps fill it in as they execute; report writers render it afterwards.
type SyncReport struct {
	// Mode is SyncModeIncremental or SyncModeBackfill.
	Mode string `json:"mode"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// === Store state before the run ===

	// StoredCount is how many draws the local store held before the run.
	StoredCount int `json:"stored_count"`

	// LastStored is the newest stored draw round before the run.
	// Zero when the store was empty.
	LastStored int `json:"last_stored"`

	// EstimatedLatest is the latest official round estimated from the
	// draw schedule. Zero in backfill mode, which probes the API instead.
	EstimatedLatest int `json:"estimated_latest,omitempty"`

	// === Run results ===

	// Planned lists the rounds the run decided to fetch, ascending.
	Planned []int `json:"planned,omitempty"`

	// Synced lists the rounds fetched and stored successfully, ascending.
	Synced []int `json:"synced,omitempty"`

	// Failed lists the rounds that could not be fetched or stored, ascending.
	Failed []int `json:"failed,omitempty"`

	// UpToDate is true when the store already held every available round.
	UpToDate bool `json:"up_to_date"`

	// Latest is the newest stored draw after the run, if any.
	Latest *Draw `json:"latest,omitempty"`

	// Elapsed is how long the run took.
	Elapsed time.Duration `json:"elapsed"`

	// PerformedSteps lists the pipeline steps that were executed.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// TimedOut is true if the run was cancelled before completing.
	TimedOut bool `json:"timed_out"`

	// Error contains any error that occurred during the run.
	// It is kept out of JSON output; ErrorMessage carries the text.
	Error error `json:"-"`

	// ErrorMessage is the string representation of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewSyncReport creates an empty report for a run in the given mode.
func NewSyncReport(mode string) *SyncReport {
	return &SyncReport{
		Mode:      mode,
		StartedAt: time.Now(),
	}
}

// SyncedCount returns how many rounds were stored by the run.
func (r *SyncReport) SyncedCount() int { return len(r.Synced) }

// FailedCount returns how many rounds could not be fetched or stored.
func (r *SyncReport) FailedCount() int { return len(r.Failed) }

// PlannedCount returns how many rounds the run set out to fetch.
func (r *SyncReport) PlannedCount() int { return len(r.Planned) }

// RecordError captures an error on the report, mirroring it into the
// serializable ErrorMessage field.
func (r *SyncReport) RecordError(err error) {
	if err == nil {
		return
	}
	r.Error = err
	r.ErrorMessage = err.Error()
}
