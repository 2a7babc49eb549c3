package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/twbeatles/klotto-generator/internal/lottery"
	"github.com/twbeatles/klotto-generator/internal/model"
)

// memStore is an in-memory DrawStore for tests.
type memStore struct {
	mu        sync.Mutex
	draws     map[int]model.Draw
	countErr  error
	upsertErr error
}

// newMemStore creates a memStore pre-seeded with the given draws.
func newMemStore(draws ...*model.Draw) *memStore {
	s := &memStore{draws: make(map[int]model.Draw)}
	for _, d := range draws {
		s.draws[d.DrawNo] = *d
	}
	return s
}

// CountDraws implements DrawStore.
func (s *memStore) CountDraws(_ context.Context) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.draws), nil
}

// LastDrawNo implements DrawStore.
func (s *memStore) LastDrawNo(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := 0
	for no := range s.draws {
		if no > last {
			last = no
		}
	}
	return last, nil
}

// UpsertDraw implements DrawStore.
func (s *memStore) UpsertDraw(_ context.Context, draw *model.Draw) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws[draw.DrawNo] = *draw
	return nil
}

// LatestDraw implements DrawStore.
func (s *memStore) LatestDraw(_ context.Context) (*model.Draw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *model.Draw
	for no := range s.draws {
		if latest == nil || no > latest.DrawNo {
			d := s.draws[no]
			latest = &d
		}
	}
	return latest, nil
}

// fetchFunc adapts a function to the Fetcher interface.
type fetchFunc func(ctx context.Context, drawNo int) (*model.Draw, error)

// FetchDraw implements Fetcher.
func (f fetchFunc) FetchDraw(ctx context.Context, drawNo int) (*model.Draw, error) {
	return f(ctx, drawNo)
}

// makeDraw builds a valid draw for the given round.
func makeDraw(drawNo int) *model.Draw {
	return &model.Draw{
		DrawNo:  drawNo,
		Date:    "2024-06-01",
		Numbers: []int{3, 11, 18, 24, 36, 44},
		Bonus:   7,
	}
}

// serveUpTo returns a fetcher that answers rounds up to maxRound and
// fails everything above, like the live service does for rounds that
// have not been held yet.
func serveUpTo(maxRound int) fetchFunc {
	return func(_ context.Context, drawNo int) (*model.Draw, error) {
		if drawNo > maxRound {
			return nil, lottery.ErrDrawNotFound
		}
		return makeDraw(drawNo), nil
	}
}

// equalInts reports whether two int slices hold the same values in order.
func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestProbeStoreStep tests the store probing step.
func TestProbeStoreStep(t *testing.T) {
	t.Parallel()

	t.Run("records stored count and newest round", func(t *testing.T) {
		t.Parallel()

		store := newMemStore(makeDraw(1103), makeDraw(1104), makeDraw(1105))
		step := NewProbeStoreStep(store)

		report := model.NewSyncReport(model.SyncModeIncremental)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.StoredCount != 3 {
			t.Errorf("expected stored count 3, got %d", report.StoredCount)
		}
		if report.LastStored != 1105 {
			t.Errorf("expected last stored 1105, got %d", report.LastStored)
		}
	})

	t.Run("reports zero on an empty store", func(t *testing.T) {
		t.Parallel()

		step := NewProbeStoreStep(newMemStore())

		report := model.NewSyncReport(model.SyncModeIncremental)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.StoredCount != 0 {
			t.Errorf("expected stored count 0, got %d", report.StoredCount)
		}
		if report.LastStored != 0 {
			t.Errorf("expected last stored 0, got %d", report.LastStored)
		}
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		storeErr := errors.New("database locked")
		store := newMemStore()
		store.countErr = storeErr
		step := NewProbeStoreStep(store)

		report := model.NewSyncReport(model.SyncModeIncremental)
		err := step.Do(context.Background(), report)

		if !errors.Is(err, storeErr) {
			t.Errorf("expected wrapped store error, got %v", err)
		}
	})

	t.Run("returns step name", func(t *testing.T) {
		t.Parallel()

		step := NewProbeStoreStep(newMemStore())
		if step.Name() != "probe_store" {
			t.Errorf("expected name 'probe_store', got %q", step.Name())
		}
	})
}

// TestEstimateStep tests the latest-round estimate step.
func TestEstimateStep(t *testing.T) {
	t.Parallel()

	t.Run("estimates from a pinned clock", func(t *testing.T) {
		t.Parallel()

		// 2026-01-18 12:00 UTC is 21:00 KST on a Sunday, 8443 days
		// after draw #1 on 2002-12-07: 8443/7 + 1 = 1207.
		clock := func() time.Time {
			return time.Date(2026, time.January, 18, 12, 0, 0, 0, time.UTC)
		}
		step := NewEstimateStep(WithEstimateClock(clock))

		report := model.NewSyncReport(model.SyncModeIncremental)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.EstimatedLatest != 1207 {
			t.Errorf("expected estimated latest 1207, got %d", report.EstimatedLatest)
		}
	})

	t.Run("defaults to the real clock", func(t *testing.T) {
		t.Parallel()

		step := NewEstimateStep()

		report := model.NewSyncReport(model.SyncModeIncremental)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.EstimatedLatest < 1 {
			t.Errorf("expected estimate >= 1, got %d", report.EstimatedLatest)
		}
	})

	t.Run("ignores a nil clock option", func(t *testing.T) {
		t.Parallel()

		step := NewEstimateStep(WithEstimateClock(nil))
		if step.now == nil {
			t.Error("expected default clock to survive a nil option")
		}
	})

	t.Run("returns step name", func(t *testing.T) {
		t.Parallel()

		step := NewEstimateStep()
		if step.Name() != "estimate" {
			t.Errorf("expected name 'estimate', got %q", step.Name())
		}
	})
}

// TestPlanStep tests the fetch planning step.
func TestPlanStep(t *testing.T) {
	t.Parallel()

	t.Run("plans the gap between stored and estimated", func(t *testing.T) {
		t.Parallel()

		step := NewPlanStep()

		report := model.NewSyncReport(model.SyncModeIncremental)
		report.LastStored = 1100
		report.EstimatedLatest = 1103

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !equalInts(report.Planned, []int{1101, 1102, 1103}) {
			t.Errorf("unexpected plan: %v", report.Planned)
		}
		if report.UpToDate {
			t.Error("report should not be up to date")
		}
	})

	t.Run("plans from round one on an empty store", func(t *testing.T) {
		t.Parallel()

		step := NewPlanStep()

		report := model.NewSyncReport(model.SyncModeIncremental)
		report.LastStored = 0
		report.EstimatedLatest = 3

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !equalInts(report.Planned, []int{1, 2, 3}) {
			t.Errorf("unexpected plan: %v", report.Planned)
		}
	})

	t.Run("marks an up-to-date store", func(t *testing.T) {
		t.Parallel()

		step := NewPlanStep()

		report := model.NewSyncReport(model.SyncModeIncremental)
		report.LastStored = 1105
		report.EstimatedLatest = 1105

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !report.UpToDate {
			t.Error("expected report to be up to date")
		}
		if len(report.Planned) != 0 {
			t.Errorf("expected empty plan, got %v", report.Planned)
		}
	})

	t.Run("treats an estimate behind the store as up to date", func(t *testing.T) {
		t.Parallel()

		step := NewPlanStep()

		report := model.NewSyncReport(model.SyncModeIncremental)
		report.LastStored = 1105
		report.EstimatedLatest = 1104

		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !report.UpToDate {
			t.Error("expected report to be up to date")
		}
	})

	t.Run("returns step name", func(t *testing.T) {
		t.Parallel()

		step := NewPlanStep()
		if step.Name() != "plan" {
			t.Errorf("expected name 'plan', got %q", step.Name())
		}
	})
}

// TestReportStep tests the post-run state capture step.
func TestReportStep(t *testing.T) {
	t.Parallel()

	t.Run("captures the newest stored draw", func(t *testing.T) {
		t.Parallel()

		store := newMemStore(makeDraw(1104), makeDraw(1105))
		step := NewReportStep(store)

		report := model.NewSyncReport(model.SyncModeIncremental)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Latest == nil {
			t.Fatal("expected a latest draw")
		}
		if report.Latest.DrawNo != 1105 {
			t.Errorf("expected latest draw 1105, got %d", report.Latest.DrawNo)
		}
	})

	t.Run("leaves latest nil on an empty store", func(t *testing.T) {
		t.Parallel()

		step := NewReportStep(newMemStore())

		report := model.NewSyncReport(model.SyncModeIncremental)
		if err := step.Do(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Latest != nil {
			t.Errorf("expected nil latest draw, got %+v", report.Latest)
		}
	})

	t.Run("returns step name", func(t *testing.T) {
		t.Parallel()

		step := NewReportStep(newMemStore())
		if step.Name() != "report" {
			t.Errorf("expected name 'report', got %q", step.Name())
		}
	})
}

// TestIncrementalPipeline tests the pre-assembled incremental pipeline.
func TestIncrementalPipeline(t *testing.T) {
	t.Parallel()

	t.Run("assembles the stages in order", func(t *testing.T) {
		t.Parallel()

		p := IncrementalPipeline(serveUpTo(10), newMemStore(), nil)

		names := p.StepNames()
		expected := []string{"probe_store", "estimate", "plan", "fetch", "report"}
		if len(names) != len(expected) {
			t.Fatalf("expected %d steps, got %d", len(expected), len(names))
		}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})

	t.Run("catches up the store end to end", func(t *testing.T) {
		t.Parallel()

		// The pinned clock estimates round 1207; the store holds up
		// to 1205, so the run should fetch 1206 and 1207.
		clock := func() time.Time {
			return time.Date(2026, time.January, 18, 12, 0, 0, 0, time.UTC)
		}
		store := newMemStore(makeDraw(1204), makeDraw(1205))

		p := IncrementalPipeline(serveUpTo(1207), store, nil,
			WithSyncClock(clock),
			WithSyncFetchDelay(0),
		)

		report := model.NewSyncReport(model.SyncModeIncremental)
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.StoredCount != 2 {
			t.Errorf("expected stored count 2, got %d", report.StoredCount)
		}
		if report.LastStored != 1205 {
			t.Errorf("expected last stored 1205, got %d", report.LastStored)
		}
		if !equalInts(report.Planned, []int{1206, 1207}) {
			t.Errorf("unexpected plan: %v", report.Planned)
		}
		if !equalInts(report.Synced, []int{1206, 1207}) {
			t.Errorf("unexpected synced rounds: %v", report.Synced)
		}
		if len(report.Failed) != 0 {
			t.Errorf("expected no failed rounds, got %v", report.Failed)
		}
		if report.UpToDate {
			t.Error("report should not be up to date")
		}
		if report.Latest == nil || report.Latest.DrawNo != 1207 {
			t.Errorf("expected latest draw 1207, got %+v", report.Latest)
		}
		if len(report.PerformedSteps) != 5 {
			t.Errorf("expected 5 performed steps, got %v", report.PerformedSteps)
		}
	})

	t.Run("reports an up-to-date store without fetching", func(t *testing.T) {
		t.Parallel()

		clock := func() time.Time {
			return time.Date(2026, time.January, 18, 12, 0, 0, 0, time.UTC)
		}
		store := newMemStore(makeDraw(1207))

		fetchCalled := false
		fetcher := fetchFunc(func(_ context.Context, drawNo int) (*model.Draw, error) {
			fetchCalled = true
			return makeDraw(drawNo), nil
		})

		p := IncrementalPipeline(fetcher, store, nil,
			WithSyncClock(clock),
			WithSyncFetchDelay(0),
		)

		report := model.NewSyncReport(model.SyncModeIncremental)
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !report.UpToDate {
			t.Error("expected report to be up to date")
		}
		if fetchCalled {
			t.Error("fetcher should not have been called")
		}
		if report.Latest == nil || report.Latest.DrawNo != 1207 {
			t.Errorf("expected latest draw 1207, got %+v", report.Latest)
		}
	})
}

// TestBackfillPipeline tests the pre-assembled backfill pipeline.
func TestBackfillPipeline(t *testing.T) {
	t.Parallel()

	t.Run("assembles the stages in order", func(t *testing.T) {
		t.Parallel()

		p := BackfillPipeline(serveUpTo(10), newMemStore(), nil)

		names := p.StepNames()
		expected := []string{"probe_store", "backfill", "report"}
		if len(names) != len(expected) {
			t.Fatalf("expected %d steps, got %d", len(expected), len(names))
		}
		for i, name := range names {
			if name != expected[i] {
				t.Errorf("step %d: got %q, expected %q", i, name, expected[i])
			}
		}
	})

	t.Run("loads the full history into an empty store", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()

		p := BackfillPipeline(serveUpTo(4), store, nil, WithSyncFetchDelay(0))

		report := model.NewSyncReport(model.SyncModeBackfill)
		if err := p.Execute(context.Background(), report); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !equalInts(report.Synced, []int{1, 2, 3, 4}) {
			t.Errorf("unexpected synced rounds: %v", report.Synced)
		}
		if report.Latest == nil || report.Latest.DrawNo != 4 {
			t.Errorf("expected latest draw 4, got %+v", report.Latest)
		}

		count, err := store.CountDraws(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 4 {
			t.Errorf("expected 4 stored draws, got %d", count)
		}
	})
}

// TestSyncOptions tests the sync configuration options.
func TestSyncOptions(t *testing.T) {
	t.Parallel()

	t.Run("WithSyncWorkers sets the worker count", func(t *testing.T) {
		t.Parallel()

		cfg := defaultSyncConfig()
		WithSyncWorkers(8)(cfg)

		if cfg.Workers != 8 {
			t.Errorf("expected 8 workers, got %d", cfg.Workers)
		}
	})

	t.Run("WithSyncWorkers ignores invalid values", func(t *testing.T) {
		t.Parallel()

		cfg := defaultSyncConfig()
		defaultWorkers := cfg.Workers
		WithSyncWorkers(0)(cfg)

		if cfg.Workers != defaultWorkers {
			t.Errorf("expected default %d workers, got %d", defaultWorkers, cfg.Workers)
		}
	})

	t.Run("WithSyncFetchDelay sets the delay", func(t *testing.T) {
		t.Parallel()

		cfg := defaultSyncConfig()
		WithSyncFetchDelay(time.Second)(cfg)

		if cfg.FetchDelay != time.Second {
			t.Errorf("expected 1s delay, got %v", cfg.FetchDelay)
		}
	})

	t.Run("WithSyncFetchDelay ignores negative values", func(t *testing.T) {
		t.Parallel()

		cfg := defaultSyncConfig()
		defaultDelay := cfg.FetchDelay
		WithSyncFetchDelay(-time.Second)(cfg)

		if cfg.FetchDelay != defaultDelay {
			t.Errorf("expected default delay %v, got %v", defaultDelay, cfg.FetchDelay)
		}
	})

	t.Run("WithSyncFailureLimit sets the limit", func(t *testing.T) {
		t.Parallel()

		cfg := defaultSyncConfig()
		WithSyncFailureLimit(5)(cfg)

		if cfg.FailureLimit != 5 {
			t.Errorf("expected failure limit 5, got %d", cfg.FailureLimit)
		}
	})

	t.Run("WithSyncClock sets the clock", func(t *testing.T) {
		t.Parallel()

		pinned := time.Date(2026, time.January, 18, 12, 0, 0, 0, time.UTC)
		cfg := defaultSyncConfig()
		WithSyncClock(func() time.Time { return pinned })(cfg)

		if !cfg.Now().Equal(pinned) {
			t.Errorf("expected pinned clock, got %v", cfg.Now())
		}
	})
}
