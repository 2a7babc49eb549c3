package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/twbeatles/klotto-generator/internal/config"
	"github.com/twbeatles/klotto-generator/internal/lottery"
	"github.com/twbeatles/klotto-generator/internal/model"
)

// DrawStore is the slice of the draw database the sync steps use.
// *database.DrawDB satisfies it.
//
// Design decision: The interface is declared here, on the consumer side,
// so the steps can be tested against an in-memory store without touching
// SQLite. It lists only the methods the steps actually call.
type DrawStore interface {
	// CountDraws returns how many draws are stored.
	CountDraws(ctx context.Context) (int, error)

	// LastDrawNo returns the newest stored round number, or zero when
	// the store is empty.
	LastDrawNo(ctx context.Context) (int, error)

	// UpsertDraw inserts or updates a draw by its round number.
	UpsertDraw(ctx context.Context, draw *model.Draw) error

	// LatestDraw returns the newest stored draw, or nil when the store
	// is empty.
	LatestDraw(ctx context.Context) (*model.Draw, error)
}

// Fetcher fetches one official draw result by round number.
// *lottery.Client satisfies it.
type Fetcher interface {
	FetchDraw(ctx context.Context, drawNo int) (*model.Draw, error)
}

// ProbeStoreStep records the state of the local store before the run:
// how many draws it holds and the newest stored round. Later steps plan
// their work from these values.
type ProbeStoreStep struct {
	// store is the draw database to probe.
	store DrawStore

	// logger for structured logging.
	logger *slog.Logger
}

// ProbeStoreStepOption configures a ProbeStoreStep.
type ProbeStoreStepOption func(*ProbeStoreStep)

// WithProbeStoreLogger sets a custom logger for the probe step.
func WithProbeStoreLogger(logger *slog.Logger) ProbeStoreStepOption {
	return func(s *ProbeStoreStep) {
		s.logger = logger
	}
}

// NewProbeStoreStep creates a new store probing step.
func NewProbeStoreStep(store DrawStore, opts ...ProbeStoreStepOption) *ProbeStoreStep {
	s := &ProbeStoreStep{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ProbeStoreStep) Name() string {
	return "probe_store"
}

// Do executes the probe step. A probe failure is critical: without the
// stored state the run cannot plan anything.
func (s *ProbeStoreStep) Do(ctx context.Context, report *model.SyncReport) error {
	count, err := s.store.CountDraws(ctx)
	if err != nil {
		return fmt.Errorf("failed to count stored draws: %w", err)
	}

	last, err := s.store.LastDrawNo(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last stored round: %w", err)
	}

	report.StoredCount = count
	report.LastStored = last

	s.logger.Debug("probed store",
		"stored_count", count,
		"last_stored", last,
	)

	return nil
}

// EstimateStep estimates the latest official round from the draw calendar.
// Draws are held once a week, so the estimate needs no network access.
type EstimateStep struct {
	// now returns the current time. Injectable so tests can pin the clock.
	now func() time.Time

	// logger for structured logging.
	logger *slog.Logger
}

// EstimateStepOption configures an EstimateStep.
type EstimateStepOption func(*EstimateStep)

// WithEstimateClock sets the clock used for the estimate.
func WithEstimateClock(now func() time.Time) EstimateStepOption {
	return func(s *EstimateStep) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEstimateLogger sets a custom logger for the estimate step.
func WithEstimateLogger(logger *slog.Logger) EstimateStepOption {
	return func(s *EstimateStep) {
		s.logger = logger
	}
}

// NewEstimateStep creates a new estimate step.
func NewEstimateStep(opts ...EstimateStepOption) *EstimateStep {
	s := &EstimateStep{
		now:    time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *EstimateStep) Name() string {
	return "estimate"
}

// Do executes the estimate step. It never fails.
func (s *EstimateStep) Do(_ context.Context, report *model.SyncReport) error {
	report.EstimatedLatest = lottery.EstimateLatestDrawNo(s.now())

	s.logger.Debug("estimated latest round",
		"estimated_latest", report.EstimatedLatest,
	)

	return nil
}

// PlanStep decides which rounds to fetch: everything between the newest
// stored round and the estimated latest official round. An empty plan
// marks the report up to date.
type PlanStep struct {
	// logger for structured logging.
	logger *slog.Logger
}

// PlanStepOption configures a PlanStep.
type PlanStepOption func(*PlanStep)

// WithPlanLogger sets a custom logger for the plan step.
func WithPlanLogger(logger *slog.Logger) PlanStepOption {
	return func(s *PlanStep) {
		s.logger = logger
	}
}

// NewPlanStep creates a new planning step.
func NewPlanStep(opts ...PlanStepOption) *PlanStep {
	s := &PlanStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *PlanStep) Name() string {
	return "plan"
}

// Do executes the plan step. It reads LastStored and EstimatedLatest
// from the report, so ProbeStoreStep and EstimateStep must run first.
func (s *PlanStep) Do(_ context.Context, report *model.SyncReport) error {
	from := report.LastStored + 1
	to := report.EstimatedLatest

	if to < from {
		report.UpToDate = true
		s.logger.Info("store is up to date",
			"last_stored", report.LastStored,
			"estimated_latest", report.EstimatedLatest,
		)
		return nil
	}

	planned := make([]int, 0, to-from+1)
	for n := from; n <= to; n++ {
		planned = append(planned, n)
	}
	report.Planned = planned

	s.logger.Info("planned fetch",
		"from", from,
		"to", to,
		"count", len(planned),
	)

	return nil
}

// ReportStep captures the post-run store state for the report writers.
// It runs last in both sync modes.
type ReportStep struct {
	// store is the draw database to read.
	store DrawStore

	// logger for structured logging.
	logger *slog.Logger
}

// ReportStepOption configures a ReportStep.
type ReportStepOption func(*ReportStep)

// WithReportLogger sets a custom logger for the report step.
func WithReportLogger(logger *slog.Logger) ReportStepOption {
	return func(s *ReportStep) {
		s.logger = logger
	}
}

// NewReportStep creates a new report step.
func NewReportStep(store DrawStore, opts ...ReportStepOption) *ReportStep {
	s := &ReportStep{
		store:  store,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ReportStep) Name() string {
	return "report"
}

// Do executes the report step. The latest stored draw is nil when the
// store is still empty after the run.
func (s *ReportStep) Do(ctx context.Context, report *model.SyncReport) error {
	latest, err := s.store.LatestDraw(ctx)
	if err != nil {
		return fmt.Errorf("failed to read latest stored draw: %w", err)
	}
	report.Latest = latest

	if latest != nil {
		s.logger.Debug("captured latest stored draw",
			"draw_no", latest.DrawNo,
			"date", latest.Date,
		)
	}

	return nil
}

// SyncConfig holds configuration shared by the sync pipelines.
type SyncConfig struct {
	// Workers is the number of concurrent fetches in incremental mode.
	Workers int

	// FetchDelay is the pause between consecutive request starts.
	FetchDelay time.Duration

	// FailureLimit is how many consecutive fetch failures end a backfill.
	FailureLimit int

	// Now is the clock used to estimate the latest official round.
	Now func() time.Time
}

// SyncOption configures a SyncConfig.
type SyncOption func(*SyncConfig)

// WithSyncWorkers sets the number of concurrent fetches.
func WithSyncWorkers(n int) SyncOption {
	return func(c *SyncConfig) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithSyncFetchDelay sets the pause between consecutive request starts.
func WithSyncFetchDelay(d time.Duration) SyncOption {
	return func(c *SyncConfig) {
		if d >= 0 {
			c.FetchDelay = d
		}
	}
}

// WithSyncFailureLimit sets how many consecutive fetch failures end a
// backfill.
func WithSyncFailureLimit(n int) SyncOption {
	return func(c *SyncConfig) {
		if n > 0 {
			c.FailureLimit = n
		}
	}
}

// WithSyncClock sets the clock used for the latest-round estimate.
func WithSyncClock(now func() time.Time) SyncOption {
	return func(c *SyncConfig) {
		if now != nil {
			c.Now = now
		}
	}
}

// defaultSyncConfig returns a SyncConfig with the application defaults.
func defaultSyncConfig() *SyncConfig {
	return &SyncConfig{
		Workers:      config.DefaultSyncWorkers,
		FetchDelay:   config.DefaultFetchDelay,
		FailureLimit: config.DefaultFailureLimit,
		Now:          time.Now,
	}
}

// IncrementalPipeline creates the standard catch-up pipeline:
// probe store, estimate, plan, fetch, report.
//
// Design decision: We provide pre-assembled pipelines because:
// 1. The sync command always wants the same stage ordering
// 2. It keeps the stage wiring out of the CLI layer
// 3. Both modes share their probe and report stages
//
// The first variadic parameter accepts pipeline options (WithLogger, etc).
// The second accepts sync config options (WithSyncWorkers, etc).
func IncrementalPipeline(fetcher Fetcher, store DrawStore, pipelineOpts []Option, syncOpts ...SyncOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := defaultSyncConfig()
	for _, opt := range syncOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewProbeStoreStep(store),
		NewEstimateStep(WithEstimateClock(cfg.Now)),
		NewPlanStep(),
		NewFetchStep(fetcher, store,
			WithFetchWorkers(cfg.Workers),
			WithFetchDelay(cfg.FetchDelay),
		),
		NewReportStep(store),
	)

	return p
}

// BackfillPipeline creates the full-history pipeline:
// probe store, backfill, report.
func BackfillPipeline(fetcher Fetcher, store DrawStore, pipelineOpts []Option, syncOpts ...SyncOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := defaultSyncConfig()
	for _, opt := range syncOpts {
		opt(cfg)
	}

	p.AddSteps(
		NewProbeStoreStep(store),
		NewBackfillStep(fetcher, store,
			WithBackfillDelay(cfg.FetchDelay),
			WithBackfillFailureLimit(cfg.FailureLimit),
		),
		NewReportStep(store),
	)

	return p
}
