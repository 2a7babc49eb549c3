package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/model"
)

// BackfillStep walks rounds forward from the newest stored one until the
// service stops answering. It is how the full history is loaded into an
// empty store.
//
// Design decision: Backfill is sequential rather than concurrent because
// its stop condition depends on request order: the walk ends after a run
// of consecutive failures, which signals the end of the published
// history. Concurrent fetches would make "consecutive" meaningless.
type BackfillStep struct {
	// fetcher fetches one draw per call.
	fetcher Fetcher

	// store receives the fetched draws.
	store DrawStore

	// delay is the pause between consecutive requests.
	delay time.Duration

	// failureLimit is how many consecutive fetch failures end the walk.
	failureLimit int

	// logger for structured logging.
	logger *slog.Logger
}

// BackfillStepOption configures a BackfillStep.
type BackfillStepOption func(*BackfillStep)

// WithBackfillDelay sets the pause between consecutive requests.
func WithBackfillDelay(d time.Duration) BackfillStepOption {
	return func(s *BackfillStep) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithBackfillFailureLimit sets how many consecutive fetch failures end
// the walk. Default is config.DefaultFailureLimit if not specified.
func WithBackfillFailureLimit(n int) BackfillStepOption {
	return func(s *BackfillStep) {
		if n > 0 {
			s.failureLimit = n
		}
	}
}

// WithBackfillLogger sets a custom logger for the backfill step.
func WithBackfillLogger(logger *slog.Logger) BackfillStepOption {
	return func(s *BackfillStep) {
		s.logger = logger
	}
}

// NewBackfillStep creates a new sequential backfill step.
func NewBackfillStep(fetcher Fetcher, store DrawStore, opts ...BackfillStepOption) *BackfillStep {
	s := &BackfillStep{
		fetcher:      fetcher,
		store:        store,
		delay:        config.DefaultFetchDelay,
		failureLimit: config.DefaultFailureLimit,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *BackfillStep) Name() string {
	return "backfill"
}

// Do executes the backfill step. The walk starts at the round after the
// newest stored one (round 1 on an empty store) and continues until
// failureLimit consecutive fetches fail.
//
// The rounds that trip the stop counter are the probe past the newest
// published round, not real failures, so they are withheld from the
// report's Failed list until a later round proves they should have
// existed.
func (s *BackfillStep) Do(ctx context.Context, report *model.SyncReport) error {
	start := report.LastStored + 1

	s.logger.Info("backfilling draws",
		"from", start,
		"failure_limit", s.failureLimit,
	)

	// Fetch failures not yet known to be real. Flushed into the report
	// when a later round succeeds, discarded when the walk stops.
	pending := make([]int, 0, s.failureLimit)

	for drawNo := start; ; drawNo++ {
		// Pace requests, honoring cancellation
		if drawNo > start && s.delay > 0 {
			select {
			case <-ctx.Done():
				report.TimedOut = true
				return ctx.Err()
			case <-time.After(s.delay):
			}
		}

		select {
		case <-ctx.Done():
			report.TimedOut = true
			return ctx.Err()
		default:
		}

		draw, err := s.fetcher.FetchDraw(ctx, drawNo)
		if err != nil {
			pending = append(pending, drawNo)
			s.logger.Debug("fetch failed",
				"draw_no", drawNo,
				"consecutive", len(pending),
				"error", err,
			)
			if len(pending) >= s.failureLimit {
				// Walked past the newest published round
				break
			}
			continue
		}

		// A later round exists, so the pending rounds really failed.
		if len(pending) > 0 {
			report.Failed = append(report.Failed, pending...)
			pending = pending[:0]
		}

		if err := s.store.UpsertDraw(ctx, draw); err != nil {
			s.logger.Warn("failed to store draw",
				"draw_no", drawNo,
				"error", err,
			)
			report.Failed = append(report.Failed, drawNo)
			continue
		}

		report.Synced = append(report.Synced, drawNo)

		s.logger.Debug("synced draw",
			"draw_no", draw.DrawNo,
			"date", draw.Date,
		)
	}

	if len(report.Synced) == 0 && len(report.Failed) == 0 {
		report.UpToDate = true
	}

	s.logger.Info("backfill completed",
		"synced", len(report.Synced),
		"failed", len(report.Failed),
	)

	return nil
}
