// Package scheduler runs background work: the periodic rebalancing sweep
// that assigns counselors to leads left unassigned past the staleness
// threshold.
package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"edulead_backend/internal/events"
	"edulead_backend/internal/leads/assignment"
	"edulead_backend/internal/leads/repository"
	"edulead_backend/platform/clock"
	"edulead_backend/platform/config"
	"edulead_backend/platform/logger"

	"github.com/google/uuid"
)

// LeadStore is the persistence surface the sweep needs.
type LeadStore interface {
	FindStaleUnassigned(ctx context.Context, cutoff time.Time) ([]repository.Lead, error)
	AssignCounselor(ctx context.Context, leadID, counselorID uuid.UUID) error
	CounselorLoads(ctx context.Context) ([]assignment.CounselorLoad, error)
}

// PassStats summarizes one sweep pass.
type PassStats struct {
	Scanned  int
	Assigned int
	Skipped  int
	Failed   int
}

// Sweeper assigns counselors to stale unassigned leads. At most one pass
// runs at a time; an overlapping trigger is dropped, not queued.
type Sweeper struct {
	store     LeadStore
	bus       events.Bus
	clk       clock.Clock
	staleness time.Duration
	log       *logger.Logger
	running   atomic.Bool
}

// NewSweeper creates the sweeper.
func NewSweeper(store LeadStore, bus events.Bus, clk clock.Clock, cfg config.SweepConfig, log *logger.Logger) *Sweeper {
	staleness := cfg.GetStalenessThreshold()
	if staleness <= 0 {
		staleness = 2 * time.Hour
	}
	return &Sweeper{
		store:     store,
		bus:       bus,
		clk:       clk,
		staleness: staleness,
		log:       log,
	}
}

// RunPass executes one sweep. Counselor loads are snapshotted once at the
// start of the pass and maintained locally, so leads assigned within the
// pass count against their counselor for the rest of it. Per-lead failures
// are logged and stepped over.
func (s *Sweeper) RunPass(ctx context.Context) (PassStats, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Info("sweep pass already running, skipping")
		return PassStats{}, nil
	}
	defer s.running.Store(false)

	start := time.Now()
	cutoff := s.clk.Now().Add(-s.staleness)

	stale, err := s.store.FindStaleUnassigned(ctx, cutoff)
	if err != nil {
		return PassStats{}, err
	}

	stats := PassStats{Scanned: len(stale)}
	if len(stale) == 0 {
		s.log.SweepPass(stats.Scanned, stats.Assigned, stats.Skipped, stats.Failed, float64(time.Since(start).Milliseconds()))
		return stats, nil
	}

	snapshot, err := s.store.CounselorLoads(ctx)
	if err != nil {
		return stats, err
	}
	tally := assignment.NewTally(snapshot)

	for _, lead := range stale {
		counselorID, ok := assignment.SelectLeastLoaded(tally)
		if !ok {
			// No counselors exist; nothing further can be assigned.
			stats.Skipped = len(stale) - stats.Assigned - stats.Failed
			break
		}

		if err := s.store.AssignCounselor(ctx, lead.ID, counselorID); err != nil {
			stats.Failed++
			s.log.Error("sweep failed to assign lead", "leadId", lead.ID, "counselorId", counselorID, "error", err)
			continue
		}

		tally.Increment(counselorID)
		stats.Assigned++

		s.bus.Publish(ctx, events.LeadAssigned{
			BaseEvent:   events.NewBaseEvent(),
			LeadID:      lead.ID,
			CounselorID: counselorID,
			AssignedBy:  "sweep",
		})
	}

	s.log.SweepPass(stats.Scanned, stats.Assigned, stats.Skipped, stats.Failed, float64(time.Since(start).Milliseconds()))
	return stats, nil
}
