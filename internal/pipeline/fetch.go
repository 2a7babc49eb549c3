package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/model"
	"golang.org/x/sync/errgroup"
)

// FetchStep fetches the planned rounds concurrently and stores them.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each round gets its own goroutine, but only 'workers' goroutines run
// simultaneously. Request starts are paced from the dispatch loop so the
// Dhlottery service never sees a burst, regardless of the worker count.
type FetchStep struct {
	// fetcher fetches one draw per call.
	fetcher Fetcher

	// store receives the fetched draws.
	store DrawStore

	// workers is the maximum number of concurrent fetches.
	workers int

	// delay is the pause between consecutive request starts.
	delay time.Duration

	// logger for structured logging.
	logger *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithFetchWorkers sets the maximum number of concurrent fetches.
// Default is config.DefaultSyncWorkers if not specified.
func WithFetchWorkers(n int) FetchStepOption {
	return func(s *FetchStep) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithFetchDelay sets the pause between consecutive request starts.
func WithFetchDelay(d time.Duration) FetchStepOption {
	return func(s *FetchStep) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a new concurrent fetch step.
func NewFetchStep(fetcher Fetcher, store DrawStore, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		fetcher: fetcher,
		store:   store,
		workers: config.DefaultSyncWorkers,
		delay:   config.DefaultFetchDelay,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step. Per-round failures are recorded in the
// report rather than aborting the run; a missing round must not stop
// the rest of the catch-up. Cancellation stops dispatching new rounds,
// waits for in-flight fetches, and marks the report timed out.
func (s *FetchStep) Do(ctx context.Context, report *model.SyncReport) error {
	if report.UpToDate || len(report.Planned) == 0 {
		s.logger.Debug("skipping fetch, store is up to date")
		return nil
	}

	s.logger.Info("fetching draws",
		"planned", len(report.Planned),
		"workers", s.workers,
	)

	// Goroutines append to the report concurrently.
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

dispatch:
	for i, drawNo := range report.Planned {
		drawNo := drawNo
		// Pace request starts
		if i > 0 && s.delay > 0 {
			select {
			case <-gctx.Done():
				break dispatch
			case <-time.After(s.delay):
			}
		}

		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			draw, err := s.fetcher.FetchDraw(gctx, drawNo)
			if err != nil {
				s.logger.Warn("failed to fetch draw",
					"draw_no", drawNo,
					"error", err,
				)
				mu.Lock()
				report.Failed = append(report.Failed, drawNo)
				mu.Unlock()
				// Don't return the error - we want to continue other rounds.
				// The failure is recorded in the report.
				return nil
			}

			if err := s.store.UpsertDraw(gctx, draw); err != nil {
				s.logger.Warn("failed to store draw",
					"draw_no", drawNo,
					"error", err,
				)
				mu.Lock()
				report.Failed = append(report.Failed, drawNo)
				mu.Unlock()
				return nil
			}

			mu.Lock()
			report.Synced = append(report.Synced, drawNo)
			mu.Unlock()

			s.logger.Debug("synced draw",
				"draw_no", draw.DrawNo,
				"date", draw.Date,
			)

			return nil
		})
	}

	// Wait for in-flight fetches to finish
	err := g.Wait()

	// Goroutines finish out of order; the report lists rounds ascending.
	sort.Ints(report.Synced)
	sort.Ints(report.Failed)

	if err != nil {
		report.TimedOut = true
		return err
	}

	s.logger.Info("fetch completed",
		"synced", len(report.Synced),
		"failed", len(report.Failed),
	)

	return nil
}
