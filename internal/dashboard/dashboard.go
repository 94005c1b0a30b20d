// Package dashboard loads the portfolio snapshot behind the dashboard view.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Veraticus/finyo-console/internal/aggregate"
	"github.com/Veraticus/finyo-console/internal/common"
	"github.com/Veraticus/finyo-console/internal/model"
	"github.com/Veraticus/finyo-console/internal/service"
)

// Snapshot is one joined dashboard load with its derived series. Each
// result degrades on its own; a failed fetch never blanks the others.
type Snapshot struct {
	FetchedAt    time.Time
	Monthly      *aggregate.MonthlySeries
	Summary      service.Result[model.Summary]
	Transactions service.Result[[]model.Transaction]
	Analytics    service.Result[model.Analytics]
	Distribution aggregate.DistributionData
}

// Derive builds a snapshot from the three results, computing the monthly
// series and the decision distribution.
func Derive(summary service.Result[model.Summary], txs service.Result[[]model.Transaction], analytics service.Result[model.Analytics]) Snapshot {
	return Snapshot{
		Summary:      summary,
		Transactions: txs,
		Analytics:    analytics,
		Monthly:      aggregate.MonthlyTotals(txs.Value),
		Distribution: aggregate.Distribution(summary.Value),
		FetchedAt:    time.Now(),
	}
}

// Failures returns the errors of the failed fetches, in display order.
func (s Snapshot) Failures() []error {
	var errs []error
	for _, err := range []error{s.Summary.Err, s.Transactions.Err, s.Analytics.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Fetch issues the three dashboard requests concurrently and waits for all
// of them.
func Fetch(ctx context.Context, src service.DashboardSource) Snapshot {
	var (
		wg        sync.WaitGroup
		summary   service.Result[model.Summary]
		txs       service.Result[[]model.Transaction]
		analytics service.Result[model.Analytics]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		summary = src.GetSummary(ctx)
	}()
	go func() {
		defer wg.Done()
		txs = src.GetTransactions(ctx)
	}()
	go func() {
		defer wg.Done()
		analytics = src.GetAnalytics(ctx)
	}()
	wg.Wait()

	return Derive(summary, txs, analytics)
}

// Ticket identifies one Begin call.
type Ticket uint64

// Orchestrator owns the dashboard snapshot. Begin and Apply must be called
// from the owning goroutine; Snapshot and Loading may be read from anywhere.
type Orchestrator struct {
	src      service.DashboardSource
	snapshot atomic.Pointer[Snapshot]
	logger   *slog.Logger
	ticket   Ticket
	loading  atomic.Bool
	closed   atomic.Bool
}

// New creates an orchestrator reading from src.
func New(src service.DashboardSource) *Orchestrator {
	return &Orchestrator{
		src:    src,
		logger: slog.Default().With("component", "dashboard"),
	}
}

// Begin starts a load and raises the loading flag.
func (o *Orchestrator) Begin() (Ticket, error) {
	if o.closed.Load() {
		return 0, common.ErrViewClosed
	}
	o.ticket++
	o.loading.Store(true)
	o.logger.Debug("Dashboard load started", "ticket", o.ticket)
	return o.ticket, nil
}

// Fetch runs the joined fetch against the orchestrator's source.
func (o *Orchestrator) Fetch(ctx context.Context) Snapshot {
	return Fetch(ctx, o.src)
}

// Apply installs snap if t is the latest load and the view is still open.
// It reports whether the snapshot was installed.
func (o *Orchestrator) Apply(t Ticket, snap Snapshot) bool {
	if o.closed.Load() || t != o.ticket {
		o.logger.Debug("Discarding stale dashboard snapshot", "ticket", t, "current_ticket", o.ticket)
		return false
	}
	o.snapshot.Store(&snap)
	o.loading.Store(false)
	o.logger.Debug("Dashboard load finished", "ticket", t, "failures", len(snap.Failures()))
	return true
}

// Activate loads the dashboard and waits for the snapshot.
func (o *Orchestrator) Activate(ctx context.Context) (Snapshot, error) {
	t, err := o.Begin()
	if err != nil {
		return Snapshot{}, err
	}
	snap := o.Fetch(ctx)
	if !o.Apply(t, snap) {
		return snap, common.ErrViewClosed
	}
	return snap, nil
}

// Snapshot returns the last applied snapshot.
func (o *Orchestrator) Snapshot() (Snapshot, bool) {
	snap := o.snapshot.Load()
	if snap == nil {
		return Snapshot{}, false
	}
	return *snap, true
}

// Loading reports whether a load is outstanding.
func (o *Orchestrator) Loading() bool {
	return o.loading.Load()
}

// Close marks the owning view as torn down.
func (o *Orchestrator) Close() {
	o.closed.Store(true)
}
